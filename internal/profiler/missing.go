package profiler

import "edacli/internal/dataset"

// MissingRow reports the missingness of one column.
type MissingRow struct {
	Column  string  `json:"column"`
	Missing int     `json:"missing"`
	Share   float64 `json:"share"`
}

// MissingTable lists per-column missingness in dataset column order.
type MissingTable struct {
	Rows []MissingRow `json:"rows"`
}

// BuildMissingTable computes the missingness table of a dataset. Shares
// are defined as zero for datasets with no rows.
func BuildMissingTable(ds *dataset.Dataset) *MissingTable {
	if ds == nil {
		return &MissingTable{}
	}
	t := &MissingTable{Rows: make([]MissingRow, 0, ds.NumCols())}
	for _, col := range ds.Columns() {
		missing := col.MissingCount()
		share := 0.0
		if ds.NumRows() > 0 {
			share = float64(missing) / float64(ds.NumRows())
		}
		t.Rows = append(t.Rows, MissingRow{
			Column:  col.Name,
			Missing: missing,
			Share:   share,
		})
	}
	return t
}

// MaxShare returns the worst per-column missing share, zero for an empty
// table.
func (t *MissingTable) MaxShare() float64 {
	max := 0.0
	for _, row := range t.Rows {
		if row.Share > max {
			max = row.Share
		}
	}
	return max
}

// ColumnNames returns the table's column names in order.
func (t *MissingTable) ColumnNames() []string {
	names := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = row.Column
	}
	return names
}
