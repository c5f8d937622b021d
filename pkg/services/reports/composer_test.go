package reports

import (
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/de-tools/library-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

var placeholderRegex = regexp.MustCompile(`\$(\d+)`)

// assertPlaceholders checks that placeholders appear as $1..$n in order and
// that there is exactly one argument for each.
func assertPlaceholders(t *testing.T, q domain.ComposedQuery) {
	t.Helper()
	matches := placeholderRegex.FindAllStringSubmatch(q.SQL, -1)
	assert.Len(t, q.Args, len(matches), q.SQL)
	for i, m := range matches {
		assert.Equal(t, strconv.Itoa(i+1), m[1], q.SQL)
	}
}

func TestCompose(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name        string
		reportID    string
		req         domain.ReportRequest
		expectedSQL string
		expectedArg []any
	}{
		{
			name:        "search second page",
			reportID:    "1",
			req:         domain.ReportRequest{Page: 2, Search: strPtr("Clean")},
			expectedSQL: "SELECT * FROM vw_most_borrowed_books WHERE (title ILIKE $1 OR author ILIKE $2) LIMIT $3 OFFSET $4",
			expectedArg: []any{"%Clean%", "%Clean%", 10, 10},
		},
		{
			name:        "search absent",
			reportID:    "1",
			req:         domain.ReportRequest{Page: 1},
			expectedSQL: "SELECT * FROM vw_most_borrowed_books LIMIT $1 OFFSET $2",
			expectedArg: []any{10, 0},
		},
		{
			name:        "zero min days still filters",
			reportID:    "2",
			req:         domain.ReportRequest{Page: 1, MinDays: intPtr(0)},
			expectedSQL: "SELECT * FROM vw_overdue_loans WHERE days_overdue >= $1 LIMIT $2 OFFSET $3",
			expectedArg: []any{0, 10, 0},
		},
		{
			name:        "min days on later page",
			reportID:    "2",
			req:         domain.ReportRequest{Page: 4, MinDays: intPtr(30)},
			expectedSQL: "SELECT * FROM vw_overdue_loans WHERE days_overdue >= $1 LIMIT $2 OFFSET $3",
			expectedArg: []any{30, 10, 30},
		},
		{
			name:        "filters not declared by the report are ignored",
			reportID:    "3",
			req:         domain.ReportRequest{Page: 1, Search: strPtr("x"), MinDays: intPtr(5)},
			expectedSQL: "SELECT * FROM vw_fines_summary LIMIT $1 OFFSET $2",
			expectedArg: []any{10, 0},
		},
		{
			name:        "search is not applied to the overdue report",
			reportID:    "2",
			req:         domain.ReportRequest{Page: 1, Search: strPtr("Dune")},
			expectedSQL: "SELECT * FROM vw_overdue_loans LIMIT $1 OFFSET $2",
			expectedArg: []any{10, 0},
		},
		{
			name:        "search with sql metacharacters stays an argument",
			reportID:    "1",
			req:         domain.ReportRequest{Page: 1, Search: strPtr("' OR 1=1 --")},
			expectedSQL: "SELECT * FROM vw_most_borrowed_books WHERE (title ILIKE $1 OR author ILIKE $2) LIMIT $3 OFFSET $4",
			expectedArg: []any{"%' OR 1=1 --%", "%' OR 1=1 --%", 10, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := mustResolve(t, registry, tt.reportID)
			q := Compose(desc, tt.req)

			assert.Equal(t, tt.expectedSQL, q.SQL)
			assert.Equal(t, tt.expectedArg, q.Args)
			assertPlaceholders(t, q)
		})
	}
}

func TestCompose_Offset(t *testing.T) {
	desc := mustResolve(t, DefaultRegistry(), "5")
	for page := 1; page <= 50; page++ {
		q := Compose(desc, domain.ReportRequest{Page: page})
		assert.Equal(t, []any{PageSize, (page - 1) * PageSize}, q.Args)
	}

	q := Compose(desc, domain.ReportRequest{Page: MaxPage})
	offset := q.Args[1].(int)
	assert.Equal(t, (MaxPage-1)*PageSize, offset)
	assert.Greater(t, offset, 0)
	assert.LessOrEqual(t, offset, math.MaxInt32)
}

func TestCompose_Deterministic(t *testing.T) {
	registry := DefaultRegistry()
	for _, desc := range registry.List() {
		req := domain.ReportRequest{ReportID: desc.ID, Page: 3, Search: strPtr("a"), MinDays: intPtr(7)}
		first := Compose(desc, req)
		second := Compose(desc, req)
		assert.Equal(t, first, second)
		assertPlaceholders(t, first)
	}
}

func TestCompose_MultipleFilters(t *testing.T) {
	desc := domain.ReportDescriptor{
		ID:       "x",
		ViewName: "vw_loans",
		Filters: []domain.Filter{
			{Kind: domain.FilterSearch, Columns: []string{"title"}},
			{Kind: domain.FilterMinDays, Columns: []string{"days_overdue"}},
		},
	}
	q := Compose(desc, domain.ReportRequest{Page: 2, Search: strPtr("Dune"), MinDays: intPtr(3)})

	assert.Equal(t, "SELECT * FROM vw_loans WHERE (title ILIKE $1) AND days_overdue >= $2 LIMIT $3 OFFSET $4", q.SQL)
	assert.Equal(t, []any{"%Dune%", 3, 10, 10}, q.Args)
	assertPlaceholders(t, q)
}
