// Package tabular holds the parsed form of an uploaded CSV dataset and the
// column profiling the API reports back: inferred types, missing-value
// counts, preview rows, and the numeric feature matrix used for training
// and run scoring.
package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ColumnType is the inferred type of a CSV column.
type ColumnType string

const (
	ColumnInteger ColumnType = "integer"
	ColumnFloat   ColumnType = "float"
	ColumnBoolean ColumnType = "boolean"
	ColumnString  ColumnType = "string"
)

// Frame is an immutable in-memory table. Cells are kept as the raw strings
// from the upload; typed views are derived on demand.
type Frame struct {
	columns []string
	colIdx  map[string]int
	rows    [][]string
	types   []ColumnType
	missing []int
}

// ParseCSV reads an entire CSV document. The first record is the header;
// every following record must have the same field count. Duplicate or blank
// header names, a missing header, and zero data rows are all malformed input.
func ParseCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(bufio.NewReader(r))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("csv: blank column name at position %d", i+1)
		}
		if _, dup := colIdx[name]; dup {
			return nil, fmt.Errorf("csv: duplicate column %q", name)
		}
		colIdx[name] = i
		columns[i] = name
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: reading row %d: %w", len(rows)+2, err)
		}
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: no data rows")
	}

	f := &Frame{columns: columns, colIdx: colIdx, rows: rows}
	f.profile()
	return f, nil
}

// IsMissing reports whether a raw cell counts as a missing value.
// Matches empty cells and the NA spellings the source data uses.
func IsMissing(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}

func parseBool(cell string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// profile infers the widest type that fits every non-missing cell of each
// column and counts its missing cells. An all-missing column types as string
// so it never enters the numeric feature set.
func (f *Frame) profile() {
	f.types = make([]ColumnType, len(f.columns))
	f.missing = make([]int, len(f.columns))

	for j := range f.columns {
		couldBool, couldInt, couldFloat := true, true, true
		seen := 0
		for _, row := range f.rows {
			cell := row[j]
			if IsMissing(cell) {
				f.missing[j]++
				continue
			}
			seen++
			cell = strings.TrimSpace(cell)
			if couldBool {
				if _, ok := parseBool(cell); !ok {
					couldBool = false
				}
			}
			if couldInt {
				if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
					couldInt = false
				}
			}
			if couldFloat {
				if _, err := strconv.ParseFloat(cell, 64); err != nil {
					couldFloat = false
				}
			}
		}

		switch {
		case seen == 0:
			f.types[j] = ColumnString
		case couldBool:
			f.types[j] = ColumnBoolean
		case couldInt:
			f.types[j] = ColumnInteger
		case couldFloat:
			f.types[j] = ColumnFloat
		default:
			f.types[j] = ColumnString
		}
	}
}

// Columns returns the header names in file order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// NumRows returns the number of data rows.
func (f *Frame) NumRows() int { return len(f.rows) }

// HasColumn reports whether name is a column of the frame.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colIdx[name]
	return ok
}

// TypeOf returns the inferred type of a column. Unknown columns are string.
func (f *Frame) TypeOf(name string) ColumnType {
	j, ok := f.colIdx[name]
	if !ok {
		return ColumnString
	}
	return f.types[j]
}

// ColumnTypes maps every column name to its inferred type.
func (f *Frame) ColumnTypes() map[string]ColumnType {
	out := make(map[string]ColumnType, len(f.columns))
	for j, name := range f.columns {
		out[name] = f.types[j]
	}
	return out
}

// MissingCount returns the number of missing cells in a column.
func (f *Frame) MissingCount(name string) int {
	j, ok := f.colIdx[name]
	if !ok {
		return 0
	}
	return f.missing[j]
}

// MissingCounts maps every column name to its missing-cell count.
func (f *Frame) MissingCounts() map[string]int {
	out := make(map[string]int, len(f.columns))
	for j, name := range f.columns {
		out[name] = f.missing[j]
	}
	return out
}

// IsNumeric reports whether a column parsed as integer or float.
// Boolean columns are not numeric features.
func (f *Frame) IsNumeric(name string) bool {
	t := f.TypeOf(name)
	return t == ColumnInteger || t == ColumnFloat
}

// NumericColumns returns the numeric column names in file order, skipping
// any name in exclude.
func (f *Frame) NumericColumns(exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	var out []string
	for _, name := range f.columns {
		if !skip[name] && f.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// RawColumn returns the raw cell strings of a column in row order.
func (f *Frame) RawColumn(name string) []string {
	j, ok := f.colIdx[name]
	if !ok {
		return nil
	}
	out := make([]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[j]
	}
	return out
}

// DistinctNonMissing counts the distinct non-missing raw values of a column.
func (f *Frame) DistinctNonMissing(name string) int {
	j, ok := f.colIdx[name]
	if !ok {
		return 0
	}
	set := make(map[string]struct{})
	for _, row := range f.rows {
		if !IsMissing(row[j]) {
			set[strings.TrimSpace(row[j])] = struct{}{}
		}
	}
	return len(set)
}

// FloatColumn parses a numeric column into float64s. Missing cells are an
// error; callers validate target columns for missing values first.
func (f *Frame) FloatColumn(name string) ([]float64, error) {
	j, ok := f.colIdx[name]
	if !ok {
		return nil, fmt.Errorf("tabular: no column %q", name)
	}
	out := make([]float64, len(f.rows))
	for i, row := range f.rows {
		if IsMissing(row[j]) {
			return nil, fmt.Errorf("tabular: column %q has a missing value at row %d", name, i+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
		if err != nil {
			return nil, fmt.Errorf("tabular: column %q row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// NumericMatrix builds the row-major feature matrix for the given numeric
// columns, replacing missing cells with the column median computed over the
// non-missing values (zero when a column is entirely missing).
func (f *Frame) NumericMatrix(features []string) ([][]float64, error) {
	cols := make([][]float64, len(features))
	for k, name := range features {
		j, ok := f.colIdx[name]
		if !ok {
			return nil, fmt.Errorf("tabular: no column %q", name)
		}
		if !f.IsNumeric(name) {
			return nil, fmt.Errorf("tabular: column %q is not numeric", name)
		}

		var present []float64
		parsed := make([]float64, len(f.rows))
		ok2 := make([]bool, len(f.rows))
		for i, row := range f.rows {
			if IsMissing(row[j]) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("tabular: column %q row %d: %w", name, i+1, err)
			}
			parsed[i] = v
			ok2[i] = true
			present = append(present, v)
		}

		med := median(present)
		col := make([]float64, len(f.rows))
		for i := range f.rows {
			if ok2[i] {
				col[i] = parsed[i]
			} else {
				col[i] = med
			}
		}
		cols[k] = col
	}

	X := make([][]float64, len(f.rows))
	for i := range X {
		X[i] = make([]float64, len(features))
		for k := range features {
			X[i][k] = cols[k][i]
		}
	}
	return X, nil
}

// Preview returns up to n leading rows with cells parsed per the inferred
// column type; missing cells come back as nil.
func (f *Frame) Preview(n int) []map[string]any {
	if n > len(f.rows) {
		n = len(f.rows)
	}
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(f.columns))
		for j, name := range f.columns {
			cell := f.rows[i][j]
			if IsMissing(cell) {
				row[name] = nil
				continue
			}
			cell = strings.TrimSpace(cell)
			switch f.types[j] {
			case ColumnBoolean:
				b, _ := parseBool(cell)
				row[name] = b
			case ColumnInteger:
				v, _ := strconv.ParseInt(cell, 10, 64)
				row[name] = v
			case ColumnFloat:
				v, _ := strconv.ParseFloat(cell, 64)
				row[name] = v
			default:
				row[name] = cell
			}
		}
		out = append(out, row)
	}
	return out
}

// median returns the middle value of xs (mean of the two middles for even
// lengths) and 0 for an empty slice.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
