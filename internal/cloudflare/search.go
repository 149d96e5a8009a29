package cloudflare

import (
	"context"
	"fmt"
	"strings"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/cnst"
	"go.uber.org/zap"
)

type (
	// SearchOptions controls one schema search invocation
	SearchOptions struct {
		Keyword string
		// MaxDetailsToFetch bounds how many types the deep pass inspects.
		// Coverage beyond this budget is deliberately sacrificed to keep
		// the cost of a single search bounded.
		MaxDetailsToFetch int
		// IncludeInternalTypes also searches the __-prefixed meta types
		IncludeInternalTypes bool
	}

	// TypeMatch records a keyword hit on a type's name or description
	TypeMatch struct {
		TypeName    string `json:"typeName"`
		Kind        string `json:"kind"`
		Description string `json:"description,omitempty"`
		MatchReason string `json:"matchReason"`
	}

	// FieldMatch records a keyword hit on a field of a type
	FieldMatch struct {
		TypeName    string `json:"typeName"`
		FieldName   string `json:"fieldName"`
		Description string `json:"description,omitempty"`
		MatchReason string `json:"matchReason"`
	}

	// ArgMatch records a keyword hit on an argument of a field
	ArgMatch struct {
		TypeName    string `json:"typeName"`
		FieldName   string `json:"fieldName"`
		ArgName     string `json:"argName"`
		Description string `json:"description,omitempty"`
		MatchReason string `json:"matchReason"`
	}

	// EnumValueMatch records a keyword hit on a value of an enum type
	EnumValueMatch struct {
		TypeName    string `json:"typeName"`
		ValueName   string `json:"valueName"`
		Description string `json:"description,omitempty"`
		MatchReason string `json:"matchReason"`
	}

	// SearchSummary counts matches per category
	SearchSummary struct {
		Types      int `json:"types"`
		Fields     int `json:"fields"`
		Args       int `json:"args"`
		EnumValues int `json:"enumValues"`
		Total      int `json:"total"`
	}

	// SearchResult aggregates everything one search produced
	SearchResult struct {
		Keyword          string           `json:"keyword"`
		Summary          SearchSummary    `json:"summary"`
		TypeMatches      []TypeMatch      `json:"typeMatches"`
		FieldMatches     []FieldMatch     `json:"fieldMatches"`
		ArgMatches       []ArgMatch       `json:"argMatches"`
		EnumValueMatches []EnumValueMatch `json:"enumValueMatches"`
	}
)

// SearchEngine performs bounded two-pass keyword search over the schema
// graph: a shallow pass over the flat type list, then a deep pass over a
// budget-limited candidate set of type shapes.
type SearchEngine struct {
	fetcher SchemaFetcher
	logger  *zap.Logger
}

// NewSearchEngine creates a schema search engine on top of a fetcher
func NewSearchEngine(fetcher SchemaFetcher, logger *zap.Logger) *SearchEngine {
	return &SearchEngine{
		fetcher: fetcher,
		logger:  logger.Named("cloudflare.search"),
	}
}

const defaultMaxDetailsToFetch = 10

// Search runs the two-pass keyword search. It fails only when the seeding
// overview fetch fails; any per-type fetch failure in the deep pass degrades
// that one type's contribution to nothing.
func (e *SearchEngine) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	keyword := strings.ToLower(opts.Keyword)
	maxDetails := opts.MaxDetailsToFetch
	if maxDetails <= 0 {
		maxDetails = defaultMaxDetailsToFetch
	}

	overview, err := e.fetcher.FetchSchemaOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("schema search could not seed: %w", err)
	}

	result := &SearchResult{
		Keyword:          opts.Keyword,
		TypeMatches:      []TypeMatch{},
		FieldMatches:     []FieldMatch{},
		ArgMatches:       []ArgMatch{},
		EnumValueMatches: []EnumValueMatch{},
	}

	// Pass 1: shallow scan over the flat type list. Name is checked before
	// description and short-circuits it, so a type yields at most one match.
	for _, t := range overview.Types {
		if !opts.IncludeInternalTypes && strings.HasPrefix(t.Name, cnst.InternalTypePrefix) {
			continue
		}
		if containsFold(t.Name, keyword) {
			result.TypeMatches = append(result.TypeMatches, TypeMatch{
				TypeName:    t.Name,
				Kind:        t.Kind,
				Description: derefDescription(t.Description),
				MatchReason: fmt.Sprintf("name contains %q", opts.Keyword),
			})
		} else if containsFold(derefDescription(t.Description), keyword) {
			result.TypeMatches = append(result.TypeMatches, TypeMatch{
				TypeName:    t.Name,
				Kind:        t.Kind,
				Description: derefDescription(t.Description),
				MatchReason: fmt.Sprintf("description contains %q", opts.Keyword),
			})
		}
	}

	candidates := e.buildCandidateSet(overview, result.TypeMatches, maxDetails, opts.IncludeInternalTypes)

	// Pass 2: deep scan, strictly one fetch at a time. Sequential fetching
	// bounds upstream load at one in-flight request per search and keeps
	// match order reproducible.
	for _, name := range candidates {
		td, err := e.fetcher.FetchTypeDetails(ctx, name)
		if err != nil {
			e.logger.Warn("skipping type after failed detail fetch",
				zap.String("type", name),
				zap.Error(err))
			continue
		}
		if td == nil {
			continue
		}
		e.scanTypeDetails(td, keyword, opts.Keyword, result)
	}

	if !opts.IncludeInternalTypes {
		filterInternalMatches(result)
	}

	result.Summary = SearchSummary{
		Types:      len(result.TypeMatches),
		Fields:     len(result.FieldMatches),
		Args:       len(result.ArgMatches),
		EnumValues: len(result.EnumValueMatches),
	}
	result.Summary.Total = result.Summary.Types + result.Summary.Fields +
		result.Summary.Args + result.Summary.EnumValues

	return result, nil
}

// buildCandidateSet assembles the ordered, deduplicated list of type names
// the deep pass will inspect: pass-1 matches first, then the root operation
// types, then every OBJECT and INTERFACE type in schema order, truncated to
// the fetch budget.
func (e *SearchEngine) buildCandidateSet(overview *SchemaOverview, matches []TypeMatch, budget int, includeInternal bool) []string {
	seen := make(map[string]bool)
	candidates := make([]string, 0, budget)

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		candidates = append(candidates, name)
	}

	for _, m := range matches {
		add(m.TypeName)
	}

	add(overview.QueryTypeName)
	add(overview.MutationTypeName)
	add(overview.SubscriptionTypeName)

	for _, t := range overview.Types {
		if t.Kind != "OBJECT" && t.Kind != "INTERFACE" {
			continue
		}
		if !includeInternal && strings.HasPrefix(t.Name, cnst.InternalTypePrefix) {
			continue
		}
		add(t.Name)
	}

	if len(candidates) > budget {
		candidates = candidates[:budget]
	}
	return candidates
}

// scanTypeDetails records field, argument and enum-value matches for one
// fetched type. Same rule as pass 1 throughout: name before description, at
// most one match per entity per category.
func (e *SearchEngine) scanTypeDetails(td *TypeDescriptor, keyword, literal string, result *SearchResult) {
	for _, f := range td.Fields {
		if containsFold(f.Name, keyword) {
			result.FieldMatches = append(result.FieldMatches, FieldMatch{
				TypeName:    td.Name,
				FieldName:   f.Name,
				Description: derefDescription(f.Description),
				MatchReason: fmt.Sprintf("name contains %q", literal),
			})
		} else if containsFold(derefDescription(f.Description), keyword) {
			result.FieldMatches = append(result.FieldMatches, FieldMatch{
				TypeName:    td.Name,
				FieldName:   f.Name,
				Description: derefDescription(f.Description),
				MatchReason: fmt.Sprintf("description contains %q", literal),
			})
		}

		for _, a := range f.Args {
			if containsFold(a.Name, keyword) {
				result.ArgMatches = append(result.ArgMatches, ArgMatch{
					TypeName:    td.Name,
					FieldName:   f.Name,
					ArgName:     a.Name,
					Description: derefDescription(a.Description),
					MatchReason: fmt.Sprintf("name contains %q", literal),
				})
			} else if containsFold(derefDescription(a.Description), keyword) {
				result.ArgMatches = append(result.ArgMatches, ArgMatch{
					TypeName:    td.Name,
					FieldName:   f.Name,
					ArgName:     a.Name,
					Description: derefDescription(a.Description),
					MatchReason: fmt.Sprintf("description contains %q", literal),
				})
			}
		}
	}

	for _, v := range td.EnumValues {
		if containsFold(v.Name, keyword) {
			result.EnumValueMatches = append(result.EnumValueMatches, EnumValueMatch{
				TypeName:    td.Name,
				ValueName:   v.Name,
				Description: derefDescription(v.Description),
				MatchReason: fmt.Sprintf("name contains %q", literal),
			})
		} else if containsFold(derefDescription(v.Description), keyword) {
			result.EnumValueMatches = append(result.EnumValueMatches, EnumValueMatch{
				TypeName:    td.Name,
				ValueName:   v.Name,
				Description: derefDescription(v.Description),
				MatchReason: fmt.Sprintf("description contains %q", literal),
			})
		}
	}
}

// filterInternalMatches drops matches owned by __-prefixed types. The filter
// runs after collection, not during scanning: internal-type exclusion is a
// post-processing concern, independent of the scan itself.
func filterInternalMatches(result *SearchResult) {
	types := result.TypeMatches[:0]
	for _, m := range result.TypeMatches {
		if !strings.HasPrefix(m.TypeName, cnst.InternalTypePrefix) {
			types = append(types, m)
		}
	}
	result.TypeMatches = types

	fields := result.FieldMatches[:0]
	for _, m := range result.FieldMatches {
		if !strings.HasPrefix(m.TypeName, cnst.InternalTypePrefix) {
			fields = append(fields, m)
		}
	}
	result.FieldMatches = fields

	args := result.ArgMatches[:0]
	for _, m := range result.ArgMatches {
		if !strings.HasPrefix(m.TypeName, cnst.InternalTypePrefix) {
			args = append(args, m)
		}
	}
	result.ArgMatches = args

	values := result.EnumValueMatches[:0]
	for _, m := range result.EnumValueMatches {
		if !strings.HasPrefix(m.TypeName, cnst.InternalTypePrefix) {
			values = append(values, m)
		}
	}
	result.EnumValueMatches = values
}
