package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/cloudflare"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/cnst"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/errors"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"
)

type analyticsQueryArgs struct {
	ZoneID     string               `json:"zoneId"`
	AccountID  string               `json:"accountId"`
	Metric     string               `json:"metric"`
	TimeRange  cloudflare.TimeRange `json:"timeRange"`
	Dimensions []string             `json:"dimensions"`
	Filters    map[string]any       `json:"filters"`
	Limit      int                  `json:"limit"`
}

func (a *analyticsQueryArgs) validate(scopeField, scope string) error {
	if scope == "" {
		return errors.ErrMissingArgument(scopeField)
	}
	if a.Metric == "" {
		return errors.ErrMissingArgument("metric")
	}
	if a.TimeRange.Since == "" || a.TimeRange.Until == "" {
		return fmt.Errorf("timeRange.since and timeRange.until are required")
	}
	return nil
}

func analyticsInputSchema(scopeField, scopeDescription string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			scopeField: map[string]any{
				"type":        "string",
				"description": scopeDescription,
			},
			"metric": map[string]any{
				"type":        "string",
				"description": "Analytics dataset node to query, e.g. httpRequests1dGroups",
			},
			"timeRange": map[string]any{
				"type":        "object",
				"description": "ISO timestamps bounding the query",
				"properties": map[string]any{
					"since": map[string]any{"type": "string"},
					"until": map[string]any{"type": "string"},
				},
				"required": []string{"since", "until"},
			},
			"dimensions": map[string]any{
				"type":        "array",
				"description": "Dimension names to group by",
				"items":       map[string]any{"type": "string"},
			},
			"filters": map[string]any{
				"type":        "object",
				"description": "Extra filter entries merged over the date bounds (last write wins)",
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Result limit (1-10000, default 100)",
			},
		},
		Required: []string{scopeField, "metric", "timeRange"},
	}
}

func (r *Registry) zoneAnalyticsQueryTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolZoneAnalyticsQuery,
			Description: "Build (but do not execute) a zone-scoped analytics GraphQL " +
				"query with its variables object.",
			InputSchema: analyticsInputSchema("zoneId", "Zone tag to scope the query to"),
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args analyticsQueryArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			if err := args.validate("zoneId", args.ZoneID); err != nil {
				return nil, err
			}
			return cloudflare.BuildZoneAnalyticsQuery(args.ZoneID, args.Metric,
				args.TimeRange, args.Dimensions, args.Filters,
				clampInt(args.Limit, 1, 10000, 100)), nil
		},
	}
}

func (r *Registry) accountAnalyticsQueryTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolAccountAnalyticsQuery,
			Description: "Build (but do not execute) an account-scoped analytics GraphQL " +
				"query with its variables object.",
			InputSchema: analyticsInputSchema("accountId", "Account tag to scope the query to"),
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args analyticsQueryArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			if err := args.validate("accountId", args.AccountID); err != nil {
				return nil, err
			}
			return cloudflare.BuildAccountAnalyticsQuery(args.AccountID, args.Metric,
				args.TimeRange, args.Dimensions, args.Filters,
				clampInt(args.Limit, 1, 10000, 100)), nil
		},
	}
}
