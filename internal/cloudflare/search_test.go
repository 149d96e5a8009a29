package cloudflare

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	overview    *SchemaOverview
	overviewErr error
	details     map[string]*TypeDescriptor
	detailErrs  map[string]error
	fetched     []string
}

func (s *stubFetcher) FetchSchemaOverview(_ context.Context) (*SchemaOverview, error) {
	if s.overviewErr != nil {
		return nil, s.overviewErr
	}
	return s.overview, nil
}

func (s *stubFetcher) FetchTypeDetails(_ context.Context, name string) (*TypeDescriptor, error) {
	s.fetched = append(s.fetched, name)
	if err, ok := s.detailErrs[name]; ok {
		return nil, err
	}
	return s.details[name], nil
}

func strptr(s string) *string {
	return &s
}

func newTestEngine(f *stubFetcher) *SearchEngine {
	return NewSearchEngine(f, zap.NewNop())
}

func TestSearchPassOneNameMatches(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			QueryTypeName: "Query",
			Types: []TypeSummary{
				{Name: "Zone", Kind: "OBJECT"},
				{Name: "ZoneFilter", Kind: "OBJECT"},
				{Name: "Account", Kind: "OBJECT"},
			},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	require.Len(t, result.TypeMatches, 2)
	assert.Equal(t, "Zone", result.TypeMatches[0].TypeName)
	assert.Equal(t, "ZoneFilter", result.TypeMatches[1].TypeName)
	assert.Equal(t, `name contains "zone"`, result.TypeMatches[0].MatchReason)
	assert.Equal(t, 2, result.Summary.Types)
}

func TestSearchNameMatchShortCircuitsDescription(t *testing.T) {
	// A type whose name AND description both contain the keyword yields
	// exactly one match, tagged with the name reason.
	f := &stubFetcher{
		overview: &SchemaOverview{
			Types: []TypeSummary{
				{Name: "Zone", Kind: "OBJECT", Description: strptr("A zone is a domain")},
			},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	require.Len(t, result.TypeMatches, 1)
	assert.Equal(t, `name contains "zone"`, result.TypeMatches[0].MatchReason)
}

func TestSearchDescriptionOnlyMatch(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			Types: []TypeSummary{
				{Name: "Domain", Kind: "OBJECT", Description: strptr("Settings for one zone")},
			},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	require.Len(t, result.TypeMatches, 1)
	assert.Equal(t, "Domain", result.TypeMatches[0].TypeName)
	assert.Equal(t, `description contains "zone"`, result.TypeMatches[0].MatchReason)
}

func TestSearchDeepScanFieldArgAndEnumMatches(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			QueryTypeName: "Query",
			Types: []TypeSummary{
				{Name: "Query", Kind: "OBJECT"},
				{Name: "Period", Kind: "ENUM"},
			},
		},
		details: map[string]*TypeDescriptor{
			"Query": {
				Name: "Query",
				Kind: "OBJECT",
				Fields: []FieldDescriptor{
					{
						Name: "zones",
						Args: []ArgDescriptor{
							{Name: "zoneTag"},
							{Name: "limit", Description: strptr("max zones returned")},
						},
					},
					{Name: "accounts"},
				},
			},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	require.Len(t, result.FieldMatches, 1)
	assert.Equal(t, "zones", result.FieldMatches[0].FieldName)

	require.Len(t, result.ArgMatches, 2)
	assert.Equal(t, "zoneTag", result.ArgMatches[0].ArgName)
	assert.Equal(t, `name contains "zone"`, result.ArgMatches[0].MatchReason)
	assert.Equal(t, "limit", result.ArgMatches[1].ArgName)
	assert.Equal(t, `description contains "zone"`, result.ArgMatches[1].MatchReason)
}

func TestSearchEnumValueMatches(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			Types: []TypeSummary{
				{Name: "OrderBy", Kind: "ENUM", Description: strptr("zone ordering")},
			},
		},
		details: map[string]*TypeDescriptor{
			"OrderBy": {
				Name: "OrderBy",
				Kind: "ENUM",
				EnumValues: []EnumValueDescriptor{
					{Name: "zoneName_ASC"},
					{Name: "datetime_DESC"},
				},
			},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	require.Len(t, result.EnumValueMatches, 1)
	assert.Equal(t, "zoneName_ASC", result.EnumValueMatches[0].ValueName)
	assert.Equal(t, "OrderBy", result.EnumValueMatches[0].TypeName)
}

func TestSearchCandidateTruncation(t *testing.T) {
	types := make([]TypeSummary, 0, 30)
	for i := 0; i < 30; i++ {
		types = append(types, TypeSummary{Name: fmt.Sprintf("Type%02d", i), Kind: "OBJECT"})
	}
	f := &stubFetcher{overview: &SchemaOverview{QueryTypeName: "Type00", Types: types}}

	_, err := newTestEngine(f).Search(context.Background(), SearchOptions{
		Keyword:           "nothing-matches-this",
		MaxDetailsToFetch: 5,
	})
	require.NoError(t, err)

	assert.Len(t, f.fetched, 5)
}

func TestSearchCandidateOrderMatchesFirst(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			QueryTypeName: "Query",
			Types: []TypeSummary{
				{Name: "Query", Kind: "OBJECT"},
				{Name: "Account", Kind: "OBJECT"},
				{Name: "ZoneSettings", Kind: "OBJECT"},
			},
		},
	}

	_, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	// Pass-1 match first, then root, then remaining OBJECT types in order
	assert.Equal(t, []string{"ZoneSettings", "Query", "Account"}, f.fetched)
}

func TestSearchDetailFetchFailureSkipsType(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			QueryTypeName: "Query",
			Types: []TypeSummary{
				{Name: "Query", Kind: "OBJECT"},
				{Name: "Zone", Kind: "OBJECT"},
			},
		},
		details: map[string]*TypeDescriptor{
			"Zone": {
				Name:   "Zone",
				Kind:   "OBJECT",
				Fields: []FieldDescriptor{{Name: "zoneTag"}},
			},
		},
		detailErrs: map[string]error{
			"Query": fmt.Errorf("upstream returned status 502"),
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	// The failed type contributes nothing; the search still completes
	require.Len(t, result.FieldMatches, 1)
	assert.Equal(t, "Zone", result.FieldMatches[0].TypeName)
}

func TestSearchOverviewFailureIsFatal(t *testing.T) {
	f := &stubFetcher{overviewErr: fmt.Errorf("upstream returned status 500")}

	_, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	assert.Error(t, err)
}

func TestSearchInternalTypesExcludedByDefault(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			Types: []TypeSummary{
				{Name: "__Schema", Kind: "OBJECT", Description: strptr("zone metadata")},
				{Name: "Zone", Kind: "OBJECT"},
			},
		},
		details: map[string]*TypeDescriptor{
			"Zone": {Name: "Zone", Kind: "OBJECT"},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	for _, m := range result.TypeMatches {
		assert.NotContains(t, m.TypeName, "__")
	}
	require.Len(t, result.TypeMatches, 1)
	assert.Equal(t, "Zone", result.TypeMatches[0].TypeName)
}

func TestSearchInternalTypesIncludedOnRequest(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			Types: []TypeSummary{
				{Name: "__ZoneMeta", Kind: "OBJECT"},
			},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{
		Keyword:              "zone",
		IncludeInternalTypes: true,
	})
	require.NoError(t, err)

	require.Len(t, result.TypeMatches, 1)
	assert.Equal(t, "__ZoneMeta", result.TypeMatches[0].TypeName)
}

func TestSearchIdempotent(t *testing.T) {
	build := func() *stubFetcher {
		return &stubFetcher{
			overview: &SchemaOverview{
				QueryTypeName: "Query",
				Types: []TypeSummary{
					{Name: "Query", Kind: "OBJECT"},
					{Name: "Zone", Kind: "OBJECT"},
					{Name: "ZoneFilter", Kind: "INPUT_OBJECT"},
				},
			},
			details: map[string]*TypeDescriptor{
				"Query": {
					Name:   "Query",
					Kind:   "OBJECT",
					Fields: []FieldDescriptor{{Name: "zones"}},
				},
				"Zone": {Name: "Zone", Kind: "OBJECT"},
			},
		}
	}

	first, err := newTestEngine(build()).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)
	second, err := newTestEngine(build()).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchSummaryCounts(t *testing.T) {
	f := &stubFetcher{
		overview: &SchemaOverview{
			QueryTypeName: "Query",
			Types: []TypeSummary{
				{Name: "Query", Kind: "OBJECT"},
				{Name: "Zone", Kind: "OBJECT"},
			},
		},
		details: map[string]*TypeDescriptor{
			"Query": {
				Name:   "Query",
				Kind:   "OBJECT",
				Fields: []FieldDescriptor{{Name: "zones", Args: []ArgDescriptor{{Name: "zoneTag"}}}},
			},
			"Zone": {Name: "Zone", Kind: "OBJECT"},
		},
	}

	result, err := newTestEngine(f).Search(context.Background(), SearchOptions{Keyword: "zone"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Types)
	assert.Equal(t, 1, result.Summary.Fields)
	assert.Equal(t, 1, result.Summary.Args)
	assert.Equal(t, 0, result.Summary.EnumValues)
	assert.Equal(t, 3, result.Summary.Total)
}
