package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"edacli/internal/quality"
)

// ScanRow is one file's outcome in a directory scan.
type ScanRow struct {
	Path     string
	Rows     int
	Cols     int
	Flags    quality.Flags
	Duration time.Duration
	Err      error
}

// RenderScanTable prints scan outcomes: failures first, then worst score
// first, then a totals line.
func RenderScanTable(w io.Writer, rows []ScanRow) {
	sorted := make([]ScanRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if (sorted[i].Err != nil) != (sorted[j].Err != nil) {
			return sorted[i].Err != nil
		}
		return sorted[i].Flags.Score < sorted[j].Flags.Score
	})

	fmt.Fprintf(w, "%-40s %10s %6s %7s %7s %-5s %9s\n",
		"FILE", "ROWS", "COLS", "MISS%", "SCORE", "FLAGS", "TIME")
	totalRows := int64(0)
	flagged, failed := 0, 0
	for _, row := range sorted {
		if row.Err != nil {
			failed++
			fmt.Fprintf(w, "%-40s ERROR: %v\n", truncate(row.Path, 40), row.Err)
			continue
		}
		totalRows += int64(row.Rows)
		marks := flagMarks(row.Flags)
		if marks != "" {
			flagged++
		}
		fmt.Fprintf(w, "%-40s %10s %6d %6.1f%% %7.2f %-5s %9s\n",
			truncate(row.Path, 40), humanize.Comma(int64(row.Rows)), row.Cols,
			row.Flags.MaxMissingShare*100, row.Flags.Score, marks,
			row.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "\n%d files scanned, %s rows total, %d flagged, %d failed\n",
		len(rows), humanize.Comma(totalRows), flagged, failed)
}

// flagMarks compresses the flags into a short cell: C constant columns,
// D identifier duplicates, M missing share over the limit.
func flagMarks(f quality.Flags) string {
	marks := ""
	if f.HasConstantColumns {
		marks += "C"
	}
	if f.HasSuspiciousIDDuplicates {
		marks += "D"
	}
	if f.TooManyMissing {
		marks += "M"
	}
	return marks
}
