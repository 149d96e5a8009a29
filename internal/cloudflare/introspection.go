package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
)

// schemaOverviewQuery asks only for root type names and the flat type list;
// no fields, so it stays small even for very large schemas.
const schemaOverviewQuery = `query SchemaOverview {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      name
      kind
      description
    }
  }
}`

// typeDetailsQuery fetches the full shape of one named type. The literal
// ofType nesting bounds type unwrapping at three levels, which covers the
// NON_NULL(LIST(NON_NULL(T))) patterns the API uses.
const typeDetailsQuery = `query TypeDetails($name: String!) {
  __type(name: $name) {
    name
    kind
    description
    fields(includeDeprecated: true) {
      name
      description
      args {
        name
        description
        type { kind name ofType { kind name ofType { kind name ofType { kind name } } } }
      }
      type { kind name ofType { kind name ofType { kind name ofType { kind name } } } }
    }
    inputFields {
      name
      description
      type { kind name ofType { kind name ofType { kind name ofType { kind name } } } }
    }
    interfaces { kind name }
    enumValues(includeDeprecated: true) {
      name
      description
    }
    possibleTypes { kind name }
  }
}`

// SchemaFetcher is the introspection surface the search engine and the schema
// tools depend on. *Client implements it.
type SchemaFetcher interface {
	// FetchSchemaOverview retrieves the root operation type names and the
	// flat list of all named types.
	FetchSchemaOverview(ctx context.Context) (*SchemaOverview, error)

	// FetchTypeDetails retrieves the full shape of one named type. A nil
	// descriptor with a nil error means the type does not exist upstream.
	FetchTypeDetails(ctx context.Context, name string) (*TypeDescriptor, error)
}

var _ SchemaFetcher = (*Client)(nil)

// FetchSchemaOverview implements SchemaFetcher
func (c *Client) FetchSchemaOverview(ctx context.Context) (*SchemaOverview, error) {
	resp, err := c.Query(ctx, schemaOverviewQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("schema overview fetch failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("schema overview fetch returned no data")
	}

	var data struct {
		Schema struct {
			QueryType        *struct{ Name string } `json:"queryType"`
			MutationType     *struct{ Name string } `json:"mutationType"`
			SubscriptionType *struct{ Name string } `json:"subscriptionType"`
			Types            []TypeSummary          `json:"types"`
		} `json:"__schema"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse schema overview: %w", err)
	}

	overview := &SchemaOverview{Types: data.Schema.Types}
	if data.Schema.QueryType != nil {
		overview.QueryTypeName = data.Schema.QueryType.Name
	}
	if data.Schema.MutationType != nil {
		overview.MutationTypeName = data.Schema.MutationType.Name
	}
	if data.Schema.SubscriptionType != nil {
		overview.SubscriptionTypeName = data.Schema.SubscriptionType.Name
	}
	return overview, nil
}

// FetchTypeDetails implements SchemaFetcher
func (c *Client) FetchTypeDetails(ctx context.Context, name string) (*TypeDescriptor, error) {
	resp, err := c.Query(ctx, typeDetailsQuery, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("type details fetch for %q failed: %w", name, err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}

	var data struct {
		Type *TypeDescriptor `json:"__type"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse type details for %q: %w", name, err)
	}

	// __type is null for unknown names; that is "not found", not an error
	return data.Type, nil
}
