package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/library-reports/pkg/models/domain"
	"github.com/de-tools/library-reports/pkg/models/store"
)

const (
	NullPlaceholder = "-"
	DateLayout      = "2006-01-02"
)

// Shape derives the column headers from the first record and renders every
// cell for display. Row order is preserved.
func Shape(records []store.Record) domain.TabularResult {
	result := domain.TabularResult{
		Columns: []string{},
		Rows:    make([]domain.Row, 0, len(records)),
	}
	if len(records) == 0 {
		return result
	}

	result.Columns = records[0].Keys()
	for _, rec := range records {
		row := make(domain.Row, len(rec))
		for _, f := range rec {
			row[f.Name] = FormatValue(f.Value)
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// FormatValue renders a database value as cell text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NullPlaceholder
	case time.Time:
		return val.UTC().Format(DateLayout)
	case *time.Time:
		if val == nil {
			return NullPlaceholder
		}
		return val.UTC().Format(DateLayout)
	case []byte:
		if val == nil {
			return NullPlaceholder
		}
		return string(val)
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}
