package reports

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/de-tools/library-reports/pkg/models/domain"
)

var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Registry is the closed set of queryable reports. It is read-only once built.
type Registry struct {
	reports map[string]domain.ReportDescriptor
	order   []string
}

// NewRegistry validates the descriptors and builds a registry from them.
func NewRegistry(descriptors ...domain.ReportDescriptor) (*Registry, error) {
	r := &Registry{
		reports: make(map[string]domain.ReportDescriptor, len(descriptors)),
	}

	for _, d := range descriptors {
		if d.ID == "" {
			return nil, fmt.Errorf("report id cannot be empty")
		}
		if _, exists := r.reports[d.ID]; exists {
			return nil, fmt.Errorf("report %q is already registered", d.ID)
		}
		if !identifierRegex.MatchString(d.ViewName) {
			return nil, fmt.Errorf("report %q: invalid view name %q", d.ID, d.ViewName)
		}
		for _, f := range d.Filters {
			if len(f.Columns) == 0 {
				return nil, fmt.Errorf("report %q: filter %q has no columns", d.ID, f.Kind)
			}
			for _, col := range f.Columns {
				if !identifierRegex.MatchString(col) {
					return nil, fmt.Errorf("report %q: invalid filter column %q", d.ID, col)
				}
			}
		}
		r.reports[d.ID] = d
		r.order = append(r.order, d.ID)
	}

	sort.SliceStable(r.order, func(i, j int) bool {
		return lessID(r.order[i], r.order[j])
	})
	return r, nil
}

// DefaultRegistry returns the library reports.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		domain.ReportDescriptor{
			ID:          "1",
			ViewName:    "vw_most_borrowed_books",
			Title:       "Most Borrowed Books",
			Description: "Overall ranking. Supports search and pagination.",
			Filters: []domain.Filter{
				{Kind: domain.FilterSearch, Columns: []string{"title", "author"}},
			},
		},
		domain.ReportDescriptor{
			ID:          "2",
			ViewName:    "vw_overdue_loans",
			Title:       "Overdue Loans",
			Description: "Late loans and computed fines. Filter by days overdue.",
			Filters: []domain.Filter{
				{Kind: domain.FilterMinDays, Columns: []string{"days_overdue"}},
			},
		},
		domain.ReportDescriptor{
			ID:          "3",
			ViewName:    "vw_fines_summary",
			Title:       "Monthly Fines Summary",
			Description: "Monthly fine income, collected and pending.",
		},
		domain.ReportDescriptor{
			ID:          "4",
			ViewName:    "vw_member_activity",
			Title:       "Member Activity",
			Description: "Active members and their late return rate.",
		},
		domain.ReportDescriptor{
			ID:          "5",
			ViewName:    "vw_inventory_health",
			Title:       "Inventory Health",
			Description: "Physical condition of copies by category.",
		},
	)
	if err != nil {
		panic(fmt.Sprintf("invalid default report registry: %v", err))
	}
	return r
}

// Resolve looks up a report by id. It is the only way a view name reaches a query.
func (r *Registry) Resolve(id string) (domain.ReportDescriptor, error) {
	d, ok := r.reports[id]
	if !ok {
		return domain.ReportDescriptor{}, fmt.Errorf("%w: %q", ErrReportNotFound, id)
	}
	return d, nil
}

// List returns all reports ordered by id.
func (r *Registry) List() []domain.ReportDescriptor {
	out := make([]domain.ReportDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.reports[id])
	}
	return out
}

// lessID orders numeric ids numerically and everything else lexically after them.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
