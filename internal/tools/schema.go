package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/cloudflare"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/cnst"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/pagination"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/errors"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"
	"go.uber.org/zap"
)

type (
	schemaOverviewArgs struct {
		PageSize int `json:"pageSize"`
		Page     int `json:"page"`
	}

	schemaOverviewPayload struct {
		QueryTypeName        string                                  `json:"queryTypeName"`
		MutationTypeName     string                                  `json:"mutationTypeName,omitempty"`
		SubscriptionTypeName string                                  `json:"subscriptionTypeName,omitempty"`
		Types                pagination.Page[cloudflare.TypeSummary] `json:"types"`
	}
)

func (r *Registry) schemaOverviewTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolSchemaOverview,
			Description: "Fetch a paginated overview of the Cloudflare GraphQL schema: " +
				"root operation type names plus the flat list of all named types.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"pageSize": map[string]any{
						"type":        "integer",
						"description": "Types per page (10-1000, default 100)",
					},
					"page": map[string]any{
						"type":        "integer",
						"description": "1-indexed page of the type list (default 1)",
					},
				},
			},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args schemaOverviewArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			pageSize := clampInt(args.PageSize, 10, 1000, 100)
			page := pageOrFirst(args.Page)

			overview, err := r.upstream.FetchSchemaOverview(ctx)
			if err != nil {
				return nil, err
			}

			return schemaOverviewPayload{
				QueryTypeName:        overview.QueryTypeName,
				MutationTypeName:     overview.MutationTypeName,
				SubscriptionTypeName: overview.SubscriptionTypeName,
				Types:                pagination.Paginate(overview.Types, page, pageSize),
			}, nil
		},
	}
}

type (
	typeDetailsArgs struct {
		TypeName           string `json:"typeName"`
		FieldsPageSize     int    `json:"fieldsPageSize"`
		FieldsPage         int    `json:"fieldsPage"`
		EnumValuesPageSize int    `json:"enumValuesPageSize"`
		EnumValuesPage     int    `json:"enumValuesPage"`
	}

	typeDetailsPayload struct {
		Name          string                                           `json:"name"`
		Kind          string                                           `json:"kind"`
		Description   *string                                          `json:"description,omitempty"`
		Fields        *pagination.Page[cloudflare.FieldDescriptor]     `json:"fields,omitempty"`
		InputFields   []cloudflare.ArgDescriptor                       `json:"inputFields,omitempty"`
		Interfaces    []cloudflare.TypeRef                             `json:"interfaces,omitempty"`
		EnumValues    *pagination.Page[cloudflare.EnumValueDescriptor] `json:"enumValues,omitempty"`
		PossibleTypes []cloudflare.TypeRef                             `json:"possibleTypes,omitempty"`
	}

	typeNotFoundPayload struct {
		TypeName string `json:"typeName"`
		Found    bool   `json:"found"`
		Message  string `json:"message"`
	}
)

func (r *Registry) typeDetailsTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolTypeDetails,
			Description: "Fetch the full shape of one named GraphQL type with its " +
				"field list and enum value list independently paginated.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"typeName": map[string]any{
						"type":        "string",
						"description": "Name of the type to inspect",
					},
					"fieldsPageSize": map[string]any{
						"type":        "integer",
						"description": "Fields per page (5-500, default 50)",
					},
					"fieldsPage": map[string]any{
						"type":        "integer",
						"description": "1-indexed page of the field list (default 1)",
					},
					"enumValuesPageSize": map[string]any{
						"type":        "integer",
						"description": "Enum values per page (5-500, default 50)",
					},
					"enumValuesPage": map[string]any{
						"type":        "integer",
						"description": "1-indexed page of the enum value list (default 1)",
					},
				},
				Required: []string{"typeName"},
			},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args typeDetailsArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			if args.TypeName == "" {
				return nil, errors.ErrMissingArgument("typeName")
			}

			td, err := r.upstream.FetchTypeDetails(ctx, args.TypeName)
			if err != nil {
				return nil, err
			}
			if td == nil {
				return typeNotFoundPayload{
					TypeName: args.TypeName,
					Found:    false,
					Message:  fmt.Sprintf("type %q not found in schema", args.TypeName),
				}, nil
			}

			payload := typeDetailsPayload{
				Name:          td.Name,
				Kind:          td.Kind,
				Description:   td.Description,
				InputFields:   td.InputFields,
				Interfaces:    td.Interfaces,
				PossibleTypes: td.PossibleTypes,
			}
			if td.Fields != nil {
				fields := pagination.Paginate(td.Fields,
					pageOrFirst(args.FieldsPage),
					clampInt(args.FieldsPageSize, 5, 500, 50))
				payload.Fields = &fields
			}
			if td.EnumValues != nil {
				values := pagination.Paginate(td.EnumValues,
					pageOrFirst(args.EnumValuesPage),
					clampInt(args.EnumValuesPageSize, 5, 500, 50))
				payload.EnumValues = &values
			}
			return payload, nil
		},
	}
}

type (
	completeSchemaArgs struct {
		TypesPageSize          int   `json:"typesPageSize"`
		TypesPage              int   `json:"typesPage"`
		IncludeRootTypeDetails *bool `json:"includeRootTypeDetails"`
		MaxTypeDetailsToFetch  *int  `json:"maxTypeDetailsToFetch"`
	}

	completeSchemaPayload struct {
		QueryTypeName        string                                  `json:"queryTypeName"`
		MutationTypeName     string                                  `json:"mutationTypeName,omitempty"`
		SubscriptionTypeName string                                  `json:"subscriptionTypeName,omitempty"`
		Types                pagination.Page[cloudflare.TypeSummary] `json:"types"`
		RootTypeDetails      map[string]*cloudflare.TypeDescriptor   `json:"rootTypeDetails,omitempty"`
	}
)

func (r *Registry) completeSchemaTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolCompleteSchema,
			Description: "Fetch a paginated type list together with the full shapes of " +
				"up to N root operation types in one call.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"typesPageSize": map[string]any{
						"type":        "integer",
						"description": "Types per page (10-1000, default 100)",
					},
					"typesPage": map[string]any{
						"type":        "integer",
						"description": "1-indexed page of the type list (default 1)",
					},
					"includeRootTypeDetails": map[string]any{
						"type":        "boolean",
						"description": "Also fetch the full shape of the root operation types (default true)",
					},
					"maxTypeDetailsToFetch": map[string]any{
						"type":        "integer",
						"description": "Cap on root type detail fetches (0-10, default 3)",
					},
				},
			},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args completeSchemaArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			pageSize := clampInt(args.TypesPageSize, 10, 1000, 100)
			page := pageOrFirst(args.TypesPage)
			includeDetails := args.IncludeRootTypeDetails == nil || *args.IncludeRootTypeDetails
			maxDetails := 3
			if args.MaxTypeDetailsToFetch != nil {
				maxDetails = *args.MaxTypeDetailsToFetch
				if maxDetails < 0 {
					maxDetails = 0
				}
				if maxDetails > 10 {
					maxDetails = 10
				}
			}

			overview, err := r.upstream.FetchSchemaOverview(ctx)
			if err != nil {
				return nil, err
			}

			payload := completeSchemaPayload{
				QueryTypeName:        overview.QueryTypeName,
				MutationTypeName:     overview.MutationTypeName,
				SubscriptionTypeName: overview.SubscriptionTypeName,
				Types:                pagination.Paginate(overview.Types, page, pageSize),
			}

			if includeDetails && maxDetails > 0 {
				payload.RootTypeDetails = r.fetchRootTypeDetails(ctx, overview, maxDetails)
			}
			return payload, nil
		},
	}
}

// fetchRootTypeDetails fetches the shapes of the root operation types, one
// at a time, up to the caller's budget. A failed fetch skips that type only.
func (r *Registry) fetchRootTypeDetails(ctx context.Context, overview *cloudflare.SchemaOverview, budget int) map[string]*cloudflare.TypeDescriptor {
	roots := make([]string, 0, 3)
	for _, name := range []string{overview.QueryTypeName, overview.MutationTypeName, overview.SubscriptionTypeName} {
		if name != "" {
			roots = append(roots, name)
		}
	}
	if len(roots) > budget {
		roots = roots[:budget]
	}

	details := make(map[string]*cloudflare.TypeDescriptor, len(roots))
	for _, name := range roots {
		td, err := r.upstream.FetchTypeDetails(ctx, name)
		if err != nil {
			r.logger.Warn("skipping root type after failed detail fetch",
				zap.String("type", name),
				zap.Error(err))
			continue
		}
		if td != nil {
			details[name] = td
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

type schemaSearchArgs struct {
	Keyword              string `json:"keyword"`
	MaxDetailsToFetch    int    `json:"maxDetailsToFetch"`
	IncludeInternalTypes bool   `json:"includeInternalTypes"`
}

func (r *Registry) schemaSearchTool() Tool {
	return Tool{
		Schema: mcp.ToolSchema{
			Name: cnst.ToolSchemaSearch,
			Description: "Keyword search across the schema graph: type, field, argument " +
				"and enum value names and descriptions. Deep inspection is bounded by " +
				"maxDetailsToFetch, so coverage is best-effort.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"keyword": map[string]any{
						"type":        "string",
						"description": "Case-insensitive substring to search for",
					},
					"maxDetailsToFetch": map[string]any{
						"type":        "integer",
						"description": "Cap on deep type inspections (1-50, default 10)",
					},
					"includeInternalTypes": map[string]any{
						"type":        "boolean",
						"description": "Also search __-prefixed introspection meta types (default false)",
					},
				},
				Required: []string{"keyword"},
			},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args schemaSearchArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			if args.Keyword == "" {
				return nil, errors.ErrMissingArgument("keyword")
			}

			return r.search.Search(ctx, cloudflare.SearchOptions{
				Keyword:              args.Keyword,
				MaxDetailsToFetch:    clampInt(args.MaxDetailsToFetch, 1, 50, 10),
				IncludeInternalTypes: args.IncludeInternalTypes,
			})
		},
	}
}
