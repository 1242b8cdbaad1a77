// Package wmclient is a minimal client for the worker-manager REST API.
package wmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskfleet/poolwatch/types"
)

const apiPrefix = "/api/worker-manager/v1"

// Client queries one worker-manager deployment.
type Client struct {
	rootURL     string
	clientID    string
	accessToken string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// New builds a client for the deployment named by creds.RootURL.
func New(creds Credentials, logger zerolog.Logger) (*Client, error) {
	rootURL := strings.TrimSpace(creds.RootURL)
	if rootURL == "" {
		return nil, fmt.Errorf("no root URL configured, set %s or use --from-json-file", EnvRootURL)
	}
	if !strings.HasPrefix(rootURL, "http://") && !strings.HasPrefix(rootURL, "https://") {
		rootURL = "https://" + rootURL
	}
	rootURL = strings.TrimRight(rootURL, "/")

	return &Client{
		rootURL:     rootURL,
		clientID:    strings.TrimSpace(creds.ClientID),
		accessToken: strings.TrimSpace(creds.AccessToken),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

// RootURL returns the deployment root this client talks to.
func (c *Client) RootURL() string {
	return c.rootURL
}

// Ping checks the service is reachable before issuing real queries.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.getJSON(ctx, "/ping", nil, nil); err != nil {
		return fmt.Errorf("worker-manager ping: %w", err)
	}
	c.logger.Debug().Str("root_url", c.rootURL).Msg("worker-manager is available")
	return nil
}

// WorkerPool fetches one pool's configuration.
func (c *Client) WorkerPool(ctx context.Context, poolID string) (types.Record, error) {
	var pool types.Record
	path := "/worker-pool/" + url.PathEscape(poolID)
	if err := c.getJSON(ctx, path, nil, &pool); err != nil {
		return nil, fmt.Errorf("fetch worker pool %s: %w", poolID, err)
	}
	return pool, nil
}

// ListWorkerPools fetches every worker pool, following pagination.
func (c *Client) ListWorkerPools(ctx context.Context) ([]types.Record, error) {
	var pools []types.Record
	token := ""
	for page := 1; ; page++ {
		var body struct {
			WorkerPools       []types.Record `json:"workerPools"`
			ContinuationToken string         `json:"continuationToken"`
		}
		if err := c.getJSON(ctx, "/worker-pools", continuation(token), &body); err != nil {
			return nil, fmt.Errorf("list worker pools page %d: %w", page, err)
		}
		pools = append(pools, body.WorkerPools...)
		c.logger.Info().
			Int("page", page).
			Int("pools", len(pools)).
			Msg("fetching worker pools")
		token = body.ContinuationToken
		if token == "" {
			break
		}
	}
	c.logger.Info().Int("pools", len(pools)).Msg("fetched worker pools")
	return pools, nil
}

// ListWorkersForWorkerPool fetches every worker of one pool, following
// pagination.
func (c *Client) ListWorkersForWorkerPool(ctx context.Context, poolID string) ([]types.Record, error) {
	var workers []types.Record
	token := ""
	path := "/workers/" + url.PathEscape(poolID)
	for page := 1; ; page++ {
		var body struct {
			Workers           []types.Record `json:"workers"`
			ContinuationToken string         `json:"continuationToken"`
		}
		if err := c.getJSON(ctx, path, continuation(token), &body); err != nil {
			return nil, fmt.Errorf("list workers for %s page %d: %w", poolID, page, err)
		}
		workers = append(workers, body.Workers...)
		c.logger.Info().
			Str("pool", poolID).
			Int("page", page).
			Int("workers", len(workers)).
			Msg("fetching workers")
		token = body.ContinuationToken
		if token == "" {
			break
		}
	}
	c.logger.Info().Str("pool", poolID).Int("workers", len(workers)).Msg("fetched workers")
	return workers, nil
}

func continuation(token string) url.Values {
	if token == "" {
		return nil
	}
	return url.Values{"continuationToken": []string{token}}
}

// getJSON performs a GET and decodes the JSON response into out (if
// non-nil). Non-2xx responses come back as errors carrying the status
// and a bounded slice of the body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.rootURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.clientID != "" {
		req.Header.Set("Taskcluster-Client-Id", c.clientID)
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("worker-manager API error %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
