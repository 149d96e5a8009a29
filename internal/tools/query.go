package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/cnst"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/pagination"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/errors"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"
	"github.com/tidwall/sjson"
)

type queryArgs struct {
	Query          string         `json:"query"`
	Variables      map[string]any `json:"variables"`
	PaginationPath string         `json:"paginationPath"`
	PageSize       int            `json:"pageSize"`
	Page           int            `json:"page"`
}

func (r *Registry) queryTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolQuery,
			Description: "Execute an arbitrary GraphQL query against the Cloudflare API. " +
				"Results larger than the response limit are replaced by an advisory; " +
				"supply paginationPath to window a nested array instead.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "GraphQL query text",
					},
					"variables": map[string]any{
						"type":        "object",
						"description": "GraphQL variables object",
					},
					"paginationPath": map[string]any{
						"type":        "string",
						"description": "Dotted path to an array in the result to window, e.g. data.viewer.zones",
					},
					"pageSize": map[string]any{
						"type":        "integer",
						"description": "Window size when paginationPath is set (default 20)",
					},
					"page": map[string]any{
						"type":        "integer",
						"description": "1-indexed window when paginationPath is set (default 1)",
					},
				},
				Required: []string{"query"},
			},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args queryArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			if args.Query == "" {
				return nil, errors.ErrMissingArgument("query")
			}

			resp, err := r.upstream.Query(ctx, args.Query, args.Variables)
			if err != nil {
				return nil, err
			}

			envelope, err := json.Marshal(resp)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize query result: %w", err)
			}

			if args.PaginationPath != "" {
				windowed, meta, ok := pagination.PaginateAtPath(envelope, args.PaginationPath,
					pageOrFirst(args.Page), clampInt(args.PageSize, 1, 1000, 20))
				// A path that misses or resolves to a non-array leaves the
				// result untouched, with no pagination block and no error.
				if ok {
					windowed, err = sjson.SetBytes(windowed, "pagination", meta)
					if err != nil {
						return nil, fmt.Errorf("failed to attach pagination metadata: %w", err)
					}
					envelope = windowed
				}
			}

			if advisory, oversized := guardSize(envelope); oversized {
				return advisory, nil
			}
			return json.RawMessage(envelope), nil
		},
	}
}
