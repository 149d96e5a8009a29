package cloudflare

import (
	"fmt"
	"strings"
)

type (
	// TimeRange bounds an analytics query with ISO timestamps
	TimeRange struct {
		Since string `json:"since"`
		Until string `json:"until"`
	}

	// AnalyticsQuery is a ready-to-send query plus its variables. It is
	// literal text: metric and dimension names are not validated against the
	// schema here, invalid ones surface later as upstream GraphQL errors.
	AnalyticsQuery struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
)

// BuildZoneAnalyticsQuery templates an analytics query scoped to one zone.
// The variables filter merges the time range bounds with the caller's
// filters; caller filters win on key collision, plain last-write-wins.
func BuildZoneAnalyticsQuery(zoneID, metric string, timeRange TimeRange, dimensions []string, filters map[string]any, limit int) AnalyticsQuery {
	query := fmt.Sprintf(`query ZoneAnalytics($zoneTag: string!, $filter: filter!) {
  viewer {
    zones(filter: { zoneTag: $zoneTag }) {
      %s(limit: %d, filter: $filter) {
%s        count
      }
    }
  }
}`, metric, limit, renderDimensions(dimensions))

	return AnalyticsQuery{
		Query: query,
		Variables: map[string]any{
			"zoneTag": zoneID,
			"filter":  mergeFilters(timeRange, filters),
		},
	}
}

// BuildAccountAnalyticsQuery templates an analytics query scoped to one
// account. Same merge semantics as the zone variant.
func BuildAccountAnalyticsQuery(accountID, metric string, timeRange TimeRange, dimensions []string, filters map[string]any, limit int) AnalyticsQuery {
	query := fmt.Sprintf(`query AccountAnalytics($accountTag: string!, $filter: filter!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      %s(limit: %d, filter: $filter) {
%s        count
      }
    }
  }
}`, metric, limit, renderDimensions(dimensions))

	return AnalyticsQuery{
		Query: query,
		Variables: map[string]any{
			"accountTag": accountID,
			"filter":     mergeFilters(timeRange, filters),
		},
	}
}

func renderDimensions(dimensions []string) string {
	if len(dimensions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("        dimensions {\n")
	for _, d := range dimensions {
		b.WriteString("          ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("        }\n")
	return b.String()
}

// mergeFilters overlays caller filters on the date bounds; callers may
// override date_geq/date_leq
func mergeFilters(timeRange TimeRange, filters map[string]any) map[string]any {
	merged := map[string]any{
		"date_geq": timeRange.Since,
		"date_leq": timeRange.Until,
	}
	for k, v := range filters {
		merged[k] = v
	}
	return merged
}
