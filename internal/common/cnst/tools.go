package cnst

// Tool names exposed over MCP
const (
	ToolSchemaOverview        = "graphql_schema_overview"
	ToolTypeDetails           = "graphql_type_details"
	ToolCompleteSchema        = "graphql_complete_schema"
	ToolSchemaSearch          = "graphql_schema_search"
	ToolQuery                 = "graphql_query"
	ToolZoneAnalyticsQuery    = "graphql_zone_analytics_query"
	ToolAccountAnalyticsQuery = "graphql_account_analytics_query"
)

// InternalTypePrefix marks GraphQL introspection meta types such as __Schema
const InternalTypePrefix = "__"
