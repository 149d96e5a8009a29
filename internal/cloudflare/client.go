// Package cloudflare talks to the Cloudflare GraphQL Analytics API: a thin
// transport client, two fixed introspection fetchers, a bounded schema search
// engine, and the analytics query builders.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Client issues GraphQL requests against one upstream endpoint with a fixed
// bearer credential. It keeps no state between calls.
type Client struct {
	endpoint string
	apiToken string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient creates a new upstream GraphQL client
func NewClient(endpoint, apiToken string, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiToken: apiToken,
		http:     &http.Client{},
		logger:   logger.Named("cloudflare.client"),
	}
}

// Query sends one GraphQL request and returns the parsed body. A non-success
// HTTP status or a network failure is an error; a non-empty GraphQL errors
// array is not, it is logged and surfaced on the Response with any partial
// data intact.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (*Response, error) {
	reqData := struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables,omitempty"`
	}{
		Query:     query,
		Variables: variables,
	}

	var reqBuf bytes.Buffer
	if err := json.NewEncoder(&reqBuf).Encode(&reqData); err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &reqBuf)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}

	var respData Response
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return nil, fmt.Errorf("failed to decode response payload: %w", err)
	}

	if len(respData.Errors) > 0 {
		c.logger.Warn("upstream reported GraphQL errors",
			zap.Int("count", len(respData.Errors)),
			zap.String("first", respData.Errors[0].Message))
	}

	return &respData, nil
}
