// Package api is the remote fetch collaborator: a thin REST client that
// pulls raw entity records and hands them to the normalizer. Credentials
// arrive by explicit injection — there is no ambient token lookup anywhere
// in this package, so the engine and its tests never depend on runtime
// globals.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
	"github.com/RobboC1980/AGF-sub000/pkg/normalize"
)

const defaultTimeout = 30 * time.Second

// ClientConfig contains everything needed to construct a Client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. https://tracker.example.com/api.
	BaseURL string
	// Token is the bearer token. Passed in explicitly by the caller.
	Token string
	// HTTPClient overrides the default client (useful for testing).
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is not supplied.
	Timeout time.Duration
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Client fetches entity collections from the tracking API. Each fetch is a
// full replacement of the corresponding collection, never a delta.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{Token: cfg.Token},
		}
	} else if cfg.Token != "" {
		httpClient.Transport = &authTransport{Token: cfg.Token, Base: httpClient.Transport}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		log:        log,
	}
}

// authTransport adds Authorization and a per-request id to every request.
type authTransport struct {
	Token string
	Base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.Token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if t.Base == nil {
		return http.DefaultTransport.RoundTrip(req)
	}
	return t.Base.RoundTrip(req)
}

// APIError describes a non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: unexpected status %d: %s", e.Status, e.Body)
}

// ListEpics fetches the epics collection, normalized.
func (c *Client) ListEpics(ctx context.Context) (normalize.Result, error) {
	return c.list(ctx, "/epics", model.KindEpic)
}

// ListStories fetches the stories collection, normalized.
func (c *Client) ListStories(ctx context.Context) (normalize.Result, error) {
	return c.list(ctx, "/stories", model.KindStory)
}

// ListTasks fetches the tasks collection, normalized.
func (c *Client) ListTasks(ctx context.Context) (normalize.Result, error) {
	return c.list(ctx, "/tasks", model.KindTask)
}

// ListProjects fetches the projects collection, normalized.
func (c *Client) ListProjects(ctx context.Context) (normalize.Result, error) {
	return c.list(ctx, "/projects", model.KindProject)
}

// ListAll fetches all four collections and concatenates them in a stable
// order (projects, epics, stories, tasks). A failure on any collection
// fails the whole refresh; partial replacements would leave mixed state.
func (c *Client) ListAll(ctx context.Context) (normalize.Result, error) {
	var merged normalize.Result
	fetches := []func(context.Context) (normalize.Result, error){
		c.ListProjects, c.ListEpics, c.ListStories, c.ListTasks,
	}
	for _, fetch := range fetches {
		res, err := fetch(ctx)
		if err != nil {
			return normalize.Result{}, err
		}
		merged.Entities = append(merged.Entities, res.Entities...)
		merged.Skipped = append(merged.Skipped, res.Skipped...)
	}
	return merged, nil
}

func (c *Client) list(ctx context.Context, path string, kind model.EntityKind) (normalize.Result, error) {
	raws, err := c.getRaw(ctx, path)
	if err != nil {
		return normalize.Result{}, err
	}

	res := normalize.Batch(raws, kind)
	for _, skip := range res.Skipped {
		c.log.Warn("skipping malformed record from API",
			zap.String("path", path),
			zap.String("kind", string(kind)),
			zap.String("id", skip.ID),
			zap.Error(skip.Err))
	}
	return res, nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]json.RawMessage, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		// Some deployments wrap the collection in {"items": [...]}.
		var wrapped struct {
			Items []json.RawMessage `json:"items"`
		}
		if werr := json.Unmarshal(body, &wrapped); werr != nil || wrapped.Items == nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
		raws = wrapped.Items
	}
	return raws, nil
}
