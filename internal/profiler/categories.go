package profiler

import (
	"sort"

	"edacli/internal/dataset"
)

// CategoryCount is one value of a frequency table. Share is relative to
// the column's non-missing values.
type CategoryCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CategoryTable is the frequency table of one categorical column.
type CategoryTable struct {
	Column string          `json:"column"`
	Values []CategoryCount `json:"values"`
}

// TopCategories builds frequency tables for up to maxColumns categorical
// (string or date typed) columns in dataset order, keeping the topK most
// frequent values of each. Ties order by value. Non-positive limits mean
// no limit. Columns without any values are skipped.
func TopCategories(ds *dataset.Dataset, maxColumns, topK int) []CategoryTable {
	if ds == nil {
		return nil
	}
	var tables []CategoryTable
	for _, col := range ds.Columns() {
		if col.Type.IsNumeric() {
			continue
		}
		if maxColumns > 0 && len(tables) == maxColumns {
			break
		}
		table := countCategories(col, topK)
		if len(table.Values) > 0 {
			tables = append(tables, table)
		}
	}
	return tables
}

func countCategories(col *dataset.Column, topK int) CategoryTable {
	counts := make(map[string]int)
	nonMissing := 0
	for i := 0; i < col.Len(); i++ {
		if !col.IsMissing(i) {
			counts[col.Raw(i)]++
			nonMissing++
		}
	}

	values := make([]CategoryCount, 0, len(counts))
	for v, n := range counts {
		values = append(values, CategoryCount{
			Value: v,
			Count: n,
			Share: float64(n) / float64(max(nonMissing, 1)),
		})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	if topK > 0 && len(values) > topK {
		values = values[:topK]
	}
	return CategoryTable{Column: col.Name, Values: values}
}
