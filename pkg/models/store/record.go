package store

// Field is a single named value of a result row.
type Field struct {
	Name  string
	Value any
}

// Record is a result row with fields in the order the database returned them.
type Record []Field

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Name)
	}
	return keys
}

