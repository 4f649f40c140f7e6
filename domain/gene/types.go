package gene

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one row of merged DEG/MI statistics, keyed by gene symbol.
// Values holds only the cells that parsed as numbers; a column absent
// from the map is treated as missing for that gene.
type Record struct {
	Symbol string
	Values map[string]float64
}

// Value returns the named statistic and whether it is present.
func (r Record) Value(col string) (float64, bool) {
	v, ok := r.Values[col]
	return v, ok
}

// Has reports whether the record carries a value for col.
func (r Record) Has(col string) bool {
	_, ok := r.Values[col]
	return ok
}

// Flag reads a binary indicator column. Only an exact 1 counts as set;
// anything else (including a missing cell) reads as false.
func (r Record) Flag(col string) bool {
	v, ok := r.Values[col]
	return ok && v == 1
}

// AdjP returns the adjusted p-value with the missing->1.0 substitution
// applied, so a gene without a p-value ranks least significant.
func (r Record) AdjP() float64 {
	if v, ok := r.Values[ColAdjP]; ok {
		return v
	}
	return 1.0
}

// Table is a symbol-indexed collection of gene records. Records keep
// their insertion order; the symbol is the sole identity key.
type Table struct {
	records []Record
	index   map[string]int
	columns []string
}

// NewTable creates an empty table carrying the resolved column set.
func NewTable(columns []string) *Table {
	return &Table{
		index:   make(map[string]int),
		columns: columns,
	}
}

// Append adds a record, rejecting duplicate symbols.
func (t *Table) Append(r Record) error {
	if _, exists := t.index[r.Symbol]; exists {
		return fmt.Errorf("duplicate gene symbol: %s", r.Symbol)
	}
	t.index[r.Symbol] = len(t.records)
	t.records = append(t.records, r)
	return nil
}

// Subset builds a new table over the same columns from a record slice.
// Caller guarantees the records originate from this table, so symbols
// stay unique.
func (t *Table) Subset(records []Record) *Table {
	sub := NewTable(t.columns)
	for _, r := range records {
		sub.index[r.Symbol] = len(sub.records)
		sub.records = append(sub.records, r)
	}
	return sub
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the records in insertion order.
func (t *Table) Records() []Record {
	return t.records
}

// Get looks a record up by symbol (case-sensitive).
func (t *Table) Get(symbol string) (Record, bool) {
	if i, ok := t.index[symbol]; ok {
		return t.records[i], true
	}
	return Record{}, false
}

// Columns returns the resolved column names.
func (t *Table) Columns() []string {
	return t.columns
}

// HasColumn reports whether the table resolved the named column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Column extracts every present value of a column, in record order.
func (t *Table) Column(col string) []float64 {
	var values []float64
	for _, r := range t.records {
		if v, ok := r.Values[col]; ok {
			values = append(values, v)
		}
	}
	return values
}

// Symbols returns all gene symbols sorted alphabetically, matching the
// annotation picker ordering.
func (t *Table) Symbols() []string {
	symbols := make([]string, 0, len(t.records))
	for _, r := range t.records {
		symbols = append(symbols, r.Symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// SearchSymbols returns the sorted symbols matching the query as a
// case-insensitive substring. An empty query matches everything.
func (t *Table) SearchSymbols(query string) []string {
	if query == "" {
		return t.Symbols()
	}
	q := strings.ToLower(query)
	var matches []string
	for _, r := range t.records {
		if strings.Contains(strings.ToLower(r.Symbol), q) {
			matches = append(matches, r.Symbol)
		}
	}
	sort.Strings(matches)
	return matches
}
