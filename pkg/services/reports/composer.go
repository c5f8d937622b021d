package reports

import (
	"strconv"
	"strings"

	"github.com/de-tools/library-reports/pkg/models/domain"
)

// PageSize is the number of rows per report page.
const PageSize = 10

// queryBuilder tracks placeholder numbering so that the n-th placeholder in
// the SQL text always binds args[n-1].
type queryBuilder struct {
	sql  strings.Builder
	args []any
}

func (b *queryBuilder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// Compose builds the paginated, filtered query for a resolved report. It is
// pure: equal inputs produce equal SQL and arguments.
func Compose(desc domain.ReportDescriptor, req domain.ReportRequest) domain.ComposedQuery {
	b := &queryBuilder{}
	b.sql.WriteString("SELECT * FROM ")
	b.sql.WriteString(desc.ViewName)

	var clauses []string
	for _, f := range desc.Filters {
		if clause, ok := filterClause(b, f, req); ok {
			clauses = append(clauses, clause)
		}
	}
	if len(clauses) > 0 {
		b.sql.WriteString(" WHERE ")
		b.sql.WriteString(strings.Join(clauses, " AND "))
	}

	page := req.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := b.bind(PageSize)
	offset := b.bind((page - 1) * PageSize)
	b.sql.WriteString(" LIMIT " + limit + " OFFSET " + offset)

	return domain.ComposedQuery{
		SQL:  b.sql.String(),
		Args: b.args,
	}
}

func filterClause(b *queryBuilder, f domain.Filter, req domain.ReportRequest) (string, bool) {
	switch f.Kind {
	case domain.FilterSearch:
		if req.Search == nil {
			return "", false
		}
		pattern := "%" + *req.Search + "%"
		terms := make([]string, 0, len(f.Columns))
		for _, col := range f.Columns {
			terms = append(terms, col+" ILIKE "+b.bind(pattern))
		}
		return "(" + strings.Join(terms, " OR ") + ")", true
	case domain.FilterMinDays:
		if req.MinDays == nil {
			return "", false
		}
		return f.Columns[0] + " >= " + b.bind(*req.MinDays), true
	default:
		return "", false
	}
}
