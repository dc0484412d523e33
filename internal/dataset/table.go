package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrColumnNotFound is returned when a requested column is absent from a table.
var ErrColumnNotFound = errors.New("column not found")

// IndexColumn is the column added by Filter to keep each row's previous index.
const IndexColumn = "index"

// Table is an ordered set of rows read from a CSV file with a header line.
// Cell values are kept exactly as read; numeric columns are converted on demand.
type Table struct {
	Index   []int // row labels, contiguous from 0 after a load or a Filter
	columns []string
	colIdx  map[string]int
	records [][]string
}

// Row is a read-only view of a single table row.
type Row struct {
	table *Table
	pos   int
}

func newTable(header []string, records [][]string) *Table {
	t := &Table{
		Index:   make([]int, len(records)),
		columns: header,
		colIdx:  make(map[string]int, len(header)),
		records: records,
	}
	for i, name := range header {
		// first occurrence wins for duplicated header names
		if _, ok := t.colIdx[name]; !ok {
			t.colIdx[name] = i
		}
	}
	for i := range t.Index {
		t.Index[i] = i
	}
	return t
}

// ReadCSV reads a CSV file whose first line is the header.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", path)
	}
	defer file.Close()

	t, err := ParseCSV(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV data from %s", path)
	}
	return t, nil
}

// ParseCSV reads a header-first CSV stream into a Table.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(allRows) == 0 {
		return nil, errors.New("no header line")
	}

	header := make([]string, len(allRows[0]))
	for i, name := range allRows[0] {
		header[i] = strings.TrimSpace(name)
	}
	// Strip a UTF-8 BOM left by spreadsheet exports.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return newTable(header, allRows[1:]), nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Columns returns the column names in header order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIdx[name]
	return ok
}

func (t *Table) columnPos(name string) (int, error) {
	pos, ok := t.colIdx[name]
	if !ok {
		return 0, errors.Wrapf(ErrColumnNotFound, "%q", name)
	}
	return pos, nil
}

// Column returns a copy of the raw values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	pos, err := t.columnPos(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.records))
	for i, rec := range t.records {
		out[i] = rec[pos]
	}
	return out, nil
}

// Float64s parses the named column as floating-point numbers.
// Empty cells and "NaN" become NaN, as a dataframe reader would load them.
func (t *Table) Float64s(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			s = "NaN"
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q, row %d", name, t.Index[i])
		}
		out[i] = v
	}
	return out, nil
}

// Row returns the i-th row by position.
func (t *Table) Row(i int) Row {
	return Row{table: t, pos: i}
}

// Get returns the value of the named column, or "" if it does not exist.
func (r Row) Get(name string) string {
	pos, ok := r.table.colIdx[name]
	if !ok {
		return ""
	}
	return r.table.records[r.pos][pos]
}

// Index returns the row label.
func (r Row) Index() int {
	return r.table.Index[r.pos]
}

// Filter returns a new table holding the rows for which keep is true.
// The result is renumbered from 0 and gains a leading IndexColumn with the
// previous label of every kept row. A table that already has IndexColumn
// keeps it as is, so repeated filters carry the labels of the first one.
func (t *Table) Filter(keep func(Row) bool) *Table {
	header := append([]string(nil), t.columns...)
	labelled := !t.HasColumn(IndexColumn)
	if labelled {
		header = append([]string{IndexColumn}, t.columns...)
	}
	records := make([][]string, 0, len(t.records))
	for i, rec := range t.records {
		row := t.Row(i)
		if !keep(row) {
			continue
		}
		out := make([]string, 0, len(rec)+1)
		if labelled {
			out = append(out, strconv.Itoa(row.Index()))
		}
		out = append(out, rec...)
		records = append(records, out)
	}
	return newTable(header, records)
}
