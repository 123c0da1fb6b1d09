package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table holds a parsed CSV file with header-keyed cell access and
// null-token handling, so transformers can declare expected columns up
// front instead of scattering presence checks through transform logic.
type Table struct {
	Header []string
	Rows   [][]string

	columns map[string]int
	nulls   map[string]struct{}
}

// defaultNullTokens are cell values treated as absent. The NNDSS export
// pads empty cells with a single space.
var defaultNullTokens = []string{"", " "}

// ReadTable parses CSV content from r. The first record is the header.
// Ragged rows are tolerated: short rows read as null in their missing
// columns. nullTokens override the default null set when provided.
func ReadTable(r io.Reader, nullTokens ...string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = false

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header row")
	}

	if len(nullTokens) == 0 {
		nullTokens = defaultNullTokens
	}
	nulls := make(map[string]struct{}, len(nullTokens))
	for _, tok := range nullTokens {
		nulls[tok] = struct{}{}
	}

	header := records[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	return &Table{
		Header:  header,
		Rows:    records[1:],
		columns: columns,
		nulls:   nulls,
	}, nil
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Value returns the cell at (row, column). ok is false when the column is
// absent from the header, the row is short, or the cell holds a null token.
func (t *Table) Value(row int, column string) (value string, ok bool) {
	idx, exists := t.columns[column]
	if !exists || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	cells := t.Rows[row]
	if idx >= len(cells) {
		return "", false
	}
	v := cells[idx]
	if _, isNull := t.nulls[v]; isNull {
		return "", false
	}
	return v, true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
