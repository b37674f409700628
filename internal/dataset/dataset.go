// Package dataset holds the in-memory table model shared by the profiler
// and the quality checks. A column has exactly one resolved type; missing
// cells are normalized to the empty string before the type is resolved.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueType is the resolved logical type of a column.
type ValueType string

const (
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeString ValueType = "string"
	TypeDate   ValueType = "date"
)

// IsNumeric reports whether values of this type compare as numbers.
func (t ValueType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column is one named column of a dataset. Cells keep the normalized raw
// text with "" marking a missing value. Numeric columns also carry the
// parsed values so that equality works on the number, not its spelling:
// "5" and "5.00" are the same value in a float column.
type Column struct {
	Name string
	Type ValueType

	cells []string
	nums  []float64 // parallel to cells for numeric columns, NaN at missing
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.cells)
}

// IsMissing reports whether the cell at row i holds no value.
func (c *Column) IsMissing(i int) bool {
	return c.cells[i] == ""
}

// Raw returns the normalized cell text at row i ("" when missing).
func (c *Column) Raw(i int) string {
	return c.cells[i]
}

// Number returns the parsed value at row i. The second result is false
// when the cell is missing or the column is not numeric.
func (c *Column) Number(i int) (float64, bool) {
	if c.nums == nil || math.IsNaN(c.nums[i]) {
		return 0, false
	}
	return c.nums[i], true
}

// Numbers returns the non-missing parsed values in row order. It returns
// nil for non-numeric columns.
func (c *Column) Numbers() []float64 {
	if c.nums == nil {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for _, v := range c.nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.cells {
		if cell == "" {
			n++
		}
	}
	return n
}

// NonMissingCount returns the number of cells holding a value.
func (c *Column) NonMissingCount() int {
	return len(c.cells) - c.MissingCount()
}

// DistinctNonMissing counts the distinct values among non-missing cells.
// Numeric columns compare parsed values, text columns compare raw text.
func (c *Column) DistinctNonMissing() int {
	if c.Type.IsNumeric() {
		seen := make(map[float64]struct{})
		for _, v := range c.nums {
			if !math.IsNaN(v) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[string]struct{})
	for _, cell := range c.cells {
		if cell != "" {
			seen[cell] = struct{}{}
		}
	}
	return len(seen)
}

// Dataset is an immutable, ordered collection of equal-length columns.
type Dataset struct {
	Source string

	columns []*Column
	index   map[string]int
	nrows   int
}

// NumRows returns the row count.
func (d *Dataset) NumRows() int {
	return d.nrows
}

// NumCols returns the column count.
func (d *Dataset) NumCols() int {
	return len(d.columns)
}

// Columns returns the columns in dataset order. Callers must not mutate
// the returned slice.
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// ColumnNames returns the column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// BuilderOptions control cell normalization while rows are appended.
type BuilderOptions struct {
	// MissingMarkers are folded to the canonical missing cell, compared
	// case-insensitively. The empty cell is always missing.
	MissingMarkers []string
	TrimSpace      bool
}

// Builder accumulates rows column-wise and resolves each column's type
// once all rows are in.
type Builder struct {
	source  string
	names   []string
	cells   [][]string
	markers map[string]struct{}
	trim    bool
}

// NewBuilder starts a dataset from a header row. Duplicate or empty
// header names are disambiguated so column names stay unique.
func NewBuilder(source string, headers []string, opts BuilderOptions) *Builder {
	b := &Builder{
		source:  source,
		names:   dedupeNames(headers),
		cells:   make([][]string, len(headers)),
		markers: make(map[string]struct{}, len(opts.MissingMarkers)),
		trim:    opts.TrimSpace,
	}
	for _, m := range opts.MissingMarkers {
		b.markers[strings.ToLower(m)] = struct{}{}
	}
	return b
}

// AppendRow adds one record. Short rows are padded with missing cells and
// cells beyond the header width are dropped.
func (b *Builder) AppendRow(row []string) {
	for i := range b.names {
		cell := ""
		if i < len(row) {
			cell = b.normalize(row[i])
		}
		b.cells[i] = append(b.cells[i], cell)
	}
}

func (b *Builder) normalize(cell string) string {
	if b.trim {
		cell = strings.TrimSpace(cell)
	}
	if cell == "" {
		return ""
	}
	if _, ok := b.markers[strings.ToLower(cell)]; ok {
		return ""
	}
	return cell
}

// Build resolves column types and returns the finished dataset.
func (b *Builder) Build() *Dataset {
	d := &Dataset{
		Source:  b.source,
		columns: make([]*Column, len(b.names)),
		index:   make(map[string]int, len(b.names)),
	}
	for i, name := range b.names {
		col := &Column{
			Name:  name,
			Type:  inferType(b.cells[i]),
			cells: b.cells[i],
		}
		if col.Type.IsNumeric() {
			col.nums = parseNumbers(col.cells)
		}
		d.columns[i] = col
		d.index[name] = i
		d.nrows = len(col.cells)
	}
	return d
}

func dedupeNames(headers []string) []string {
	names := make([]string, len(headers))
	taken := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		candidate := name
		for n := 1; ; n++ {
			if _, dup := taken[candidate]; !dup {
				break
			}
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		taken[candidate] = struct{}{}
		names[i] = candidate
	}
	return names
}

// inferType resolves a whole column to the narrowest type that admits
// every non-missing cell: int, then float, then date, then string.
func inferType(cells []string) ValueType {
	allInt, allFloat, allDate := true, true, true
	sawValue := false
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		sawValue = true
		if allInt && !isIntString(cell) {
			allInt = false
		}
		if allFloat && !isFloatString(cell) {
			allFloat = false
		}
		if allDate && !isDateString(cell) {
			allDate = false
		}
		if !allInt && !allFloat && !allDate {
			return TypeString
		}
	}
	switch {
	case !sawValue:
		return TypeString
	case allInt:
		return TypeInt
	case allFloat:
		return TypeFloat
	case allDate:
		return TypeDate
	default:
		return TypeString
	}
}

func parseNumbers(cells []string) []float64 {
	nums := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			v = math.NaN()
		}
		nums[i] = v
	}
	return nums
}

func isIntString(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloatString(s string) bool {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	// "inf" and "nan" parse but are not column values.
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func isDateString(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
