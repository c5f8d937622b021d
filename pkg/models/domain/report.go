package domain

// FilterKind identifies a request parameter a report can be filtered by.
type FilterKind string

const (
	// FilterSearch matches free text against one or more columns, case-insensitively.
	FilterSearch FilterKind = "search"
	// FilterMinDays keeps rows whose threshold column is at least the given value.
	FilterMinDays FilterKind = "min_days"
)

// Filter is a report-specific WHERE clause declared by a descriptor.
type Filter struct {
	Kind FilterKind
	// Columns the filter is evaluated against. Search ORs over all of them,
	// a threshold uses the first one.
	Columns []string
}

// ReportDescriptor binds a report identifier to its backing view.
type ReportDescriptor struct {
	ID          string
	ViewName    string
	Title       string
	Description string
	Filters     []Filter
}

// ReportRequest is the validated form of the request parameters.
type ReportRequest struct {
	ReportID string
	Page     int
	Search   *string
	MinDays  *int
}

// ComposedQuery is SQL text with its positional arguments, in placeholder order.
type ComposedQuery struct {
	SQL  string
	Args []any
}

// Row maps a column name to its rendered cell value.
type Row map[string]string

// TabularResult is a report-agnostic table. Columns is empty when there are no rows.
type TabularResult struct {
	Columns []string
	Rows    []Row
}

// ReportPage is one page of a report, ready for presentation.
type ReportPage struct {
	Report      ReportDescriptor
	Request     ReportRequest
	Result      TabularResult
	PageSize    int
	HasPrevious bool
	HasNext     bool
}
