package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// RenderText prints the report as sectioned terminal output.
func RenderText(w io.Writer, r *Report) {
	fmt.Fprintln(w, "=== DATASET ===")
	fmt.Fprintf(w, "Source:  %s\n", r.Source)
	if r.FileSize > 0 {
		fmt.Fprintf(w, "Size:    %s\n", humanize.Bytes(uint64(r.FileSize)))
	}
	fmt.Fprintf(w, "Rows:    %s\n", humanize.Comma(int64(r.Rows)))
	fmt.Fprintf(w, "Columns: %d\n", r.Cols)

	renderSummary(w, r)
	renderMissing(w, r)
	renderCorrelation(w, r)
	renderCategories(w, r)
	renderQuality(w, r)
}

func renderSummary(w io.Writer, r *Report) {
	if r.Summary == nil || len(r.Summary.Columns) == 0 {
		return
	}
	fmt.Fprintln(w, "\n=== COLUMN SUMMARY ===")
	fmt.Fprintf(w, "%-20s %-8s %8s %8s %7s %9s %10s %10s %10s %10s  %s\n",
		"NAME", "TYPE", "COUNT", "MISSING", "MISS%", "DISTINCT", "MEAN", "STD", "MIN", "MAX", "TOP")
	for _, row := range r.Summary.Flatten() {
		top := ""
		if row.Top != "" {
			top = fmt.Sprintf("%s (%d)", row.Top, row.TopCount)
		}
		fmt.Fprintf(w, "%-20s %-8s %8d %8d %6.1f%% %9d %10s %10s %10s %10s  %s\n",
			truncate(row.Name, 20), row.Type, row.Count, row.Missing,
			row.MissingShare*100, row.Distinct,
			fmtFloat(row.Mean), fmtFloat(row.Std), fmtFloat(row.Min), fmtFloat(row.Max),
			top)
	}
}

func renderMissing(w io.Writer, r *Report) {
	if r.Missing == nil {
		return
	}
	fmt.Fprintln(w, "\n=== MISSING VALUES ===")
	any := false
	for _, row := range r.Missing.Rows {
		if row.Missing == 0 {
			continue
		}
		any = true
		fmt.Fprintf(w, "%-20s %8d  %5.1f%%\n", truncate(row.Column, 20), row.Missing, row.Share*100)
	}
	if !any {
		fmt.Fprintln(w, "no missing values")
	}
}

func renderCorrelation(w io.Writer, r *Report) {
	c := r.Correlation
	if c == nil || len(c.Columns) < 2 {
		return
	}
	fmt.Fprintln(w, "\n=== CORRELATION ===")
	fmt.Fprintf(w, "%-16s", "")
	for _, name := range c.Columns {
		fmt.Fprintf(w, " %10s", truncate(name, 10))
	}
	fmt.Fprintln(w)
	for i, name := range c.Columns {
		fmt.Fprintf(w, "%-16s", truncate(name, 16))
		for j := range c.Columns {
			fmt.Fprintf(w, " %10s", fmtFloat(float64(c.Values[i][j])))
		}
		fmt.Fprintln(w)
	}
	if len(c.StrongPairs) > 0 {
		fmt.Fprintln(w, "\nStrong pairs:")
		for _, p := range c.StrongPairs {
			fmt.Fprintf(w, "  %s ~ %s  r=%+.2f\n", p.A, p.B, p.R)
		}
	}
}

func renderCategories(w io.Writer, r *Report) {
	if len(r.Categories) == 0 {
		return
	}
	fmt.Fprintln(w, "\n=== TOP CATEGORIES ===")
	for _, table := range r.Categories {
		fmt.Fprintf(w, "%s:\n", table.Column)
		for _, v := range table.Values {
			fmt.Fprintf(w, "  %-24s %8d  %5.1f%%\n", truncate(v.Value, 24), v.Count, v.Share*100)
		}
	}
}

func renderQuality(w io.Writer, r *Report) {
	fmt.Fprintln(w, "\n=== QUALITY ===")
	fmt.Fprintf(w, "Score:             %.2f\n", r.Quality.Score)
	fmt.Fprintf(w, "Max missing share: %.1f%%\n", r.Quality.MaxMissingShare*100)

	flagged := false
	if r.Quality.HasConstantColumns {
		flagged = true
		fmt.Fprintf(w, "⚠️  constant columns: %s\n", strings.Join(r.ConstantColumns, ", "))
	}
	if r.Quality.HasSuspiciousIDDuplicates {
		flagged = true
		fmt.Fprintln(w, "⚠️  suspicious duplicates in identifier columns")
	}
	if r.Quality.TooManyMissing {
		flagged = true
		fmt.Fprintln(w, "⚠️  missing share above limit")
	}
	if !flagged {
		fmt.Fprintln(w, "no issues flagged")
	}
}

func fmtFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
