// Package profiler computes descriptive summaries of datasets: per-column
// statistics, missingness tables, correlation structure, and categorical
// frequency tables. Everything here is pure computation over an immutable
// dataset; rendering and thresholds live elsewhere.
package profiler

import (
	"encoding/json"
	"math"

	"github.com/montanaflynn/stats"

	"edacli/internal/dataset"
)

// JSONFloat marshals NaN and infinities as null so summaries stay valid
// JSON documents.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// NumericSummary holds the descriptive statistics of a numeric column.
type NumericSummary struct {
	Mean      JSONFloat        `json:"mean"`
	Std       JSONFloat        `json:"std"`
	Min       JSONFloat        `json:"min"`
	Max       JSONFloat        `json:"max"`
	Median    JSONFloat        `json:"median"`
	Q25       JSONFloat        `json:"q25"`
	Q75       JSONFloat        `json:"q75"`
	Skewness  JSONFloat        `json:"skewness"`
	Kurtosis  JSONFloat        `json:"kurtosis"`
	Normality *NormalityResult `json:"normality,omitempty"`
}

// TopValue is the most frequent value of a text column.
type TopValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnSummary describes a single column.
type ColumnSummary struct {
	Name         string            `json:"name"`
	Type         dataset.ValueType `json:"type"`
	Count        int               `json:"count"`
	Missing      int               `json:"missing"`
	MissingShare float64           `json:"missing_share"`
	Distinct     int               `json:"distinct"`
	Cardinality  CardinalityClass  `json:"cardinality"`
	Numeric      *NumericSummary   `json:"numeric,omitempty"`
	Top          *TopValue         `json:"top,omitempty"`
}

// DatasetSummary describes a whole dataset, one entry per column in
// dataset order.
type DatasetSummary struct {
	Source  string          `json:"source"`
	Rows    int             `json:"n_rows"`
	Cols    int             `json:"n_cols"`
	Columns []ColumnSummary `json:"columns"`
}

// Summarize computes the per-column summary of a dataset.
func Summarize(ds *dataset.Dataset) *DatasetSummary {
	if ds == nil {
		return &DatasetSummary{}
	}
	s := &DatasetSummary{
		Source:  ds.Source,
		Rows:    ds.NumRows(),
		Cols:    ds.NumCols(),
		Columns: make([]ColumnSummary, 0, ds.NumCols()),
	}
	for _, col := range ds.Columns() {
		s.Columns = append(s.Columns, summarizeColumn(col, ds.NumRows()))
	}
	return s
}

// ColumnNames returns the summarized column names in summary order.
func (s *DatasetSummary) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

func summarizeColumn(col *dataset.Column, nRows int) ColumnSummary {
	missing := col.MissingCount()
	nonMissing := col.Len() - missing
	share := 0.0
	if nRows > 0 {
		share = float64(missing) / float64(nRows)
	}
	cs := ColumnSummary{
		Name:         col.Name,
		Type:         col.Type,
		Count:        nonMissing,
		Missing:      missing,
		MissingShare: share,
		Distinct:     col.DistinctNonMissing(),
	}
	cs.Cardinality = ClassifyCardinality(cs.Distinct, nonMissing)
	if col.Type.IsNumeric() {
		cs.Numeric = summarizeNumbers(col.Numbers())
	} else {
		cs.Top = topValue(col)
	}
	return cs
}

func summarizeNumbers(values []float64) *NumericSummary {
	if len(values) == 0 {
		return nil
	}
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)
	minV, _ := stats.Min(values)
	maxV, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q25 := percentile(values, 25)
	q75 := percentile(values, 75)
	skew := skewness(values, mean, std)
	kurt := excessKurtosis(values, mean, std)
	return &NumericSummary{
		Mean:      JSONFloat(mean),
		Std:       JSONFloat(std),
		Min:       JSONFloat(minV),
		Max:       JSONFloat(maxV),
		Median:    JSONFloat(median),
		Q25:       JSONFloat(q25),
		Q75:       JSONFloat(q75),
		Skewness:  JSONFloat(skew),
		Kurtosis:  JSONFloat(kurt),
		Normality: normalityCheck(skew, kurt, len(values)),
	}
}

// percentile maps stats.Percentile errors to NaN. The library refuses
// small samples where n*p/100 falls below 1 instead of interpolating.
func percentile(values []float64, p float64) float64 {
	v, err := stats.Percentile(values, p)
	if err != nil {
		return math.NaN()
	}
	return v
}

func topValue(col *dataset.Column) *TopValue {
	counts := make(map[string]int)
	for i := 0; i < col.Len(); i++ {
		if !col.IsMissing(i) {
			counts[col.Raw(i)]++
		}
	}
	best, bestCount := "", 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &TopValue{Value: best, Count: bestCount}
}

// SummaryRow is one line of the flattened, print-ready summary table.
type SummaryRow struct {
	Name         string
	Type         string
	Count        int
	Missing      int
	MissingShare float64
	Distinct     int
	Mean         float64
	Std          float64
	Min          float64
	Max          float64
	Top          string
	TopCount     int
}

// Flatten projects the summary onto one row per column for tabular
// output. Numeric fields are NaN on non-numeric columns.
func (s *DatasetSummary) Flatten() []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.Columns))
	for _, c := range s.Columns {
		row := SummaryRow{
			Name:         c.Name,
			Type:         string(c.Type),
			Count:        c.Count,
			Missing:      c.Missing,
			MissingShare: c.MissingShare,
			Distinct:     c.Distinct,
			Mean:         math.NaN(),
			Std:          math.NaN(),
			Min:          math.NaN(),
			Max:          math.NaN(),
		}
		if c.Numeric != nil {
			row.Mean = float64(c.Numeric.Mean)
			row.Std = float64(c.Numeric.Std)
			row.Min = float64(c.Numeric.Min)
			row.Max = float64(c.Numeric.Max)
		}
		if c.Top != nil {
			row.Top = c.Top.Value
			row.TopCount = c.Top.Count
		}
		rows = append(rows, row)
	}
	return rows
}
