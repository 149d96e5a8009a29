// Package tools defines the MCP tool surface: tool schemas, handlers, the
// uniform result envelope, the response size guard, and the active-account
// precondition check.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/account"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/cloudflare"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/errors"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"
	"go.uber.org/zap"
)

// Upstream is everything the tools need from the Cloudflare API layer
type Upstream interface {
	cloudflare.SchemaFetcher

	// Query executes one caller-supplied GraphQL request
	Query(ctx context.Context, query string, variables map[string]any) (*cloudflare.Response, error)
}

// HandlerFunc executes one tool call. The returned value is serialized into
// the text envelope; the returned error never escapes the registry.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Tool couples a tool schema with its handler
type Tool struct {
	Schema  mcp.ToolSchema
	Handler HandlerFunc
}

// Registry holds the tool surface for one server instance
type Registry struct {
	logger   *zap.Logger
	upstream Upstream
	search   *cloudflare.SearchEngine
	tools    []Tool
	byName   map[string]Tool
}

// NewRegistry creates the registry with all tools registered
func NewRegistry(logger *zap.Logger, upstream Upstream) *Registry {
	r := &Registry{
		logger:   logger.Named("tools"),
		upstream: upstream,
		search:   cloudflare.NewSearchEngine(upstream, logger),
		byName:   make(map[string]Tool),
	}

	r.register(r.schemaOverviewTool())
	r.register(r.typeDetailsTool())
	r.register(r.completeSchemaTool())
	r.register(r.schemaSearchTool())
	r.register(r.queryTool())
	r.register(r.zoneAnalyticsQueryTool())
	r.register(r.accountAnalyticsQueryTool())

	return r
}

func (r *Registry) register(t Tool) {
	r.tools = append(r.tools, t)
	r.byName[t.Schema.Name] = t
}

// ListTools returns the schemas of every registered tool
func (r *Registry) ListTools() []mcp.ToolSchema {
	schemas := make([]mcp.ToolSchema, 0, len(r.tools))
	for _, t := range r.tools {
		schemas = append(schemas, t.Schema)
	}
	return schemas
}

// Call executes one tool. Every outcome, success or failure, is rendered as
// a single text content block; nothing propagates as a raw failure.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) *mcp.CallToolResult {
	tool, ok := r.byName[name]
	if !ok {
		return errorResult(errors.ErrUnknownTool(name))
	}

	if _, ok := account.Active(ctx); !ok {
		return advisoryResult("No active Cloudflare account is selected. " +
			"Configure an account before calling Cloudflare GraphQL tools.")
	}

	payload, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.Warn("tool call failed",
			zap.String("tool", name),
			zap.Error(err))
		return errorResult(err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errorResult(fmt.Errorf("failed to serialize result: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
	}
}

// errorResult renders a failure as the uniform {"error": ...} text payload
func errorResult(err error) *mcp.CallToolResult {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: true,
	}
}

// advisoryResult renders a precondition short-circuit as plain advisory
// text, not an error
func advisoryResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}
