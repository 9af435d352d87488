// Package config loads application settings from the environment.
// Credentials flow from here into the API client by explicit injection;
// nothing below the entrypoint reads the environment directly.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the viewer's environment-driven settings.
type Config struct {
	// APIURL enables remote fetch when set; otherwise the local .agf
	// snapshot is used.
	APIURL   string `envconfig:"AGF_API_URL"`
	APIToken string `envconfig:"AGF_API_TOKEN"`

	// User is the id the my-items tab resolves against.
	User string `envconfig:"AGF_USER"`

	// Logging. The TUI owns stdout, so logs go to a file when enabled.
	LogLevel string `envconfig:"AGF_LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"AGF_LOG_FILE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
