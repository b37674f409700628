package profiler

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"edacli/internal/dataset"
)

// Correlation is the pairwise Pearson correlation matrix of a dataset's
// numeric columns. Entries are NaN when the coefficient is undefined.
type Correlation struct {
	Columns []string
	Values  [][]float64
}

// CorrelationMatrix computes Pearson correlations between every pair of
// numeric columns over their pairwise-complete rows. A pair needs at
// least two complete rows and nonzero variance on both sides; anything
// else is NaN. The diagonal follows the same rule, so a constant or
// single-value column is NaN on its own cell as well.
func CorrelationMatrix(ds *dataset.Dataset) *Correlation {
	if ds == nil {
		return &Correlation{}
	}
	var numeric []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type.IsNumeric() {
			numeric = append(numeric, col)
		}
	}

	c := &Correlation{
		Columns: make([]string, len(numeric)),
		Values:  make([][]float64, len(numeric)),
	}
	for i, col := range numeric {
		c.Columns[i] = col.Name
		c.Values[i] = make([]float64, len(numeric))
	}
	for i := range numeric {
		for j := i; j < len(numeric); j++ {
			var r float64
			if i == j {
				r = math.NaN()
				if numeric[i].DistinctNonMissing() > 1 {
					r = 1
				}
			} else {
				r = pairwisePearson(numeric[i], numeric[j])
			}
			c.Values[i][j] = r
			c.Values[j][i] = r
		}
	}
	return c
}

// At returns the coefficient for a pair of column names.
func (c *Correlation) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, name := range c.Columns {
		if name == a {
			ia = i
		}
		if name == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return c.Values[ia][ib], true
}

// CorrelatedPair is one off-diagonal entry of the matrix.
type CorrelatedPair struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
}

// StrongPairs returns the column pairs whose absolute correlation meets
// the threshold, strongest first.
func (c *Correlation) StrongPairs(threshold float64) []CorrelatedPair {
	var pairs []CorrelatedPair
	for i := range c.Columns {
		for j := i + 1; j < len(c.Columns); j++ {
			r := c.Values[i][j]
			if !math.IsNaN(r) && math.Abs(r) >= threshold {
				pairs = append(pairs, CorrelatedPair{A: c.Columns[i], B: c.Columns[j], R: r})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].R) > math.Abs(pairs[b].R)
	})
	return pairs
}

func pairwisePearson(a, b *dataset.Column) float64 {
	xs := make([]float64, 0, a.Len())
	ys := make([]float64, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		x, okx := a.Number(i)
		y, oky := b.Number(i)
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	// stats.Correlation reports a zero-variance series as 0, not as an
	// error, so constant sides are rejected here.
	if len(xs) < 2 || isConstant(xs) || isConstant(ys) {
		return math.NaN()
	}
	r, err := stats.Correlation(xs, ys)
	if err != nil || math.IsNaN(r) {
		return math.NaN()
	}
	return r
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
