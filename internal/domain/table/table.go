package table

import "sort"

// Row maps column names to cell values. Absent keys read as null.
type Row map[string]Value

// Get returns the cell for col, or null when the row has no such cell.
func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}

// Clone returns a shallow-independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of columns over zero or more rows. Components
// treat tables as immutable inputs: transforms return new tables and never
// mutate what they were given.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	return &Table{Columns: append([]string(nil), cols...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table is nil or has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// HasColumn reports whether the named column is part of the schema.
func (t *Table) HasColumn(col string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is part of the schema.
func (t *Table) HasColumns(cols ...string) bool {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return false
		}
	}
	return true
}

// AddColumn appends col to the schema if not already present.
func (t *Table) AddColumn(col string) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
}

// Append adds a row. Cells for columns outside the schema are kept in the
// row but not part of the declared column order.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Clone returns a deep copy: new schema slice, new rows, new cell maps.
func (t *Table) Clone() *Table {
	if t == nil {
		return New()
	}
	out := New(t.Columns...)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, r.Clone())
	}
	return out
}

// Filter returns a new table containing the rows for which keep returns
// true. The schema is preserved.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns...)
	for _, r := range t.Rows {
		if keep(r) {
			out.Append(r.Clone())
		}
	}
	return out
}

// SortStable sorts rows in place using less. Stability is a requirement,
// not an optimization: the deduplicator's tie-break for equal timestamps
// depends on original row order surviving the sort.
func (t *Table) SortStable(less func(a, b Row) bool) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return less(t.Rows[i], t.Rows[j])
	})
}

// Select returns a new table projected to the given columns, skipping names
// the schema does not contain.
func (t *Table) Select(cols ...string) *Table {
	kept := make([]string, 0, len(cols))
	for _, c := range cols {
		if t.HasColumn(c) {
			kept = append(kept, c)
		}
	}
	out := New(kept...)
	for _, r := range t.Rows {
		nr := make(Row, len(kept))
		for _, c := range kept {
			nr[c] = r.Get(c)
		}
		out.Append(nr)
	}
	return out
}
