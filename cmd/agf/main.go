package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/RobboC1980/AGF-sub000/pkg/api"
	"github.com/RobboC1980/AGF-sub000/pkg/config"
	"github.com/RobboC1980/AGF-sub000/pkg/engine"
	"github.com/RobboC1980/AGF-sub000/pkg/export"
	"github.com/RobboC1980/AGF-sub000/pkg/loader"
	"github.com/RobboC1980/AGF-sub000/pkg/model"
	"github.com/RobboC1980/AGF-sub000/pkg/ui"
	"github.com/RobboC1980/AGF-sub000/pkg/version"
)

func main() {
	path := flag.String("path", "", "Repository path containing the .agf snapshot (default: cwd)")
	user := flag.String("user", "", "Current user id for the my-items tab (overrides AGF_USER)")
	versionFlag := flag.Bool("version", false, "Show version")

	robotStats := flag.Bool("robot-stats", false, "Output stats as JSON for scripting and exit")
	robotEntities := flag.Bool("robot-entities", false, "Output filtered entities as JSON and exit")
	exportMD := flag.String("export-md", "", "Export the filtered view to a Markdown file (e.g. report.md) and exit")
	tabFlag := flag.String("tab", "all", "Tab for robot output: all|my-items|overdue|high-priority")
	statusFlag := flag.String("status", "all", "Status facet for robot output")
	priorityFlag := flag.String("priority", "all", "Priority facet for robot output")
	assigneeFlag := flag.String("assignee", "all", "Assignee facet for robot output ('unassigned' selects items without one)")
	searchFlag := flag.String("search", "", "Search query for robot output")
	sortFlag := flag.String("sort", "updated", "Sort field: title|status|priority|points|updated")
	orderFlag := flag.String("order", "desc", "Sort order: asc|desc")
	flag.Parse()

	if *versionFlag {
		fmt.Println("agf", version.Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "agf: bad configuration: %v\n", err)
		os.Exit(1)
	}
	if *user == "" {
		*user = cfg.User
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "agf: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	entities, err := loadEntities(cfg, *path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "agf: %v\n", err)
		os.Exit(1)
	}

	// Robot mode when asked for explicitly, or when stdout is a pipe.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if *robotStats || *robotEntities || *exportMD != "" || !isTTY {
		ctrl := engine.NewController(entities)
		ctrl.SetCurrentUser(*user)
		ctrl.SetTab(engine.Tab(*tabFlag))
		ctrl.SetStatusFilter(*statusFlag)
		ctrl.SetPriorityFilter(*priorityFlag)
		ctrl.SetAssigneeFilter(*assigneeFlag)
		ctrl.SetSearch(*searchFlag)
		ctrl.SetSortField(engine.SortField(*sortFlag))
		ctrl.SetSortOrder(engine.SortOrder(*orderFlag))

		if *exportMD != "" {
			if err := export.WriteMarkdown(*exportMD, ctrl.Entities(), ctrl.Stats()); err != nil {
				fmt.Fprintf(os.Stderr, "agf: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "exported %d entities to %s\n", len(ctrl.Entities()), *exportMD)
			return
		}

		var payload any
		if *robotStats {
			payload = ctrl.Stats()
		} else {
			payload = ctrl.Entities()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			fmt.Fprintf(os.Stderr, "agf: encode output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	theme := ui.DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	m := ui.NewModel(entities, *user, theme)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "agf: %v\n", err)
		os.Exit(1)
	}
}

// loadEntities pulls the collection from the API when one is configured,
// otherwise from the local snapshot. Either way the result is a full
// replacement of the collection.
func loadEntities(cfg config.Config, path string, logger *zap.Logger) ([]model.BaseEntity, error) {
	if cfg.APIURL != "" {
		client := api.NewClient(api.ClientConfig{
			BaseURL: cfg.APIURL,
			Token:   cfg.APIToken,
			Logger:  logger,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		res, err := client.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch entities: %w", err)
		}
		if len(res.Skipped) > 0 {
			logger.Info("refresh completed with skipped records",
				zap.Int("loaded", len(res.Entities)),
				zap.Int("skipped", len(res.Skipped)))
		}
		return res.Entities, nil
	}
	return loader.LoadEntities(path, logger)
}

// buildLogger writes to the configured log file; the TUI owns stdout, so
// without a file logging is a nop.
func buildLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	return zc.Build()
}
