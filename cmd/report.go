package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"edacli/internal/loader"
	"edacli/internal/profiler"
	"edacli/internal/quality"
	"edacli/internal/report"
)

var (
	reportFormat  string
	reportOutput  string
	reportTopK    int
	reportMaxCats int
	reportDelim   string
	reportSheet   string
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Profile a single dataset and print the full report",
	Long: `Load one CSV or XLSX file and print the exploratory report:
column summaries, missing values, correlations, top categories, and
quality flags with an overall score.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := applyReportFlags(cmd); err != nil {
			return err
		}

		start := time.Now()
		ds, err := loader.Load(path, cfg.Loader.Options())
		if err != nil {
			return err
		}

		summary := profiler.Summarize(ds)
		missing := profiler.BuildMissingTable(ds)
		flags, err := quality.ComputeFlags(summary, missing, ds, cfg.Quality)
		if err != nil {
			return err
		}

		data := report.Data{
			Dataset:         ds,
			Summary:         summary,
			Missing:         missing,
			Correlation:     profiler.CorrelationMatrix(ds),
			Categories:      profiler.TopCategories(ds, cfg.Report.MaxCategoryColumns, cfg.Report.TopK),
			ConstantColumns: quality.FindConstantColumns(ds),
			Quality:         flags,
		}
		if info, statErr := os.Stat(path); statErr == nil {
			data.FileSize = info.Size()
		}
		doc := report.Build(data)

		slog.Info("report ready",
			"path", path,
			"rows", ds.NumRows(),
			"columns", ds.NumCols(),
			"score", flags.Score,
			"took", time.Since(start).Round(time.Millisecond))

		if reportOutput != "" {
			f, err := os.Create(reportOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", reportOutput, err)
			}
			if err := renderReport(f, doc); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}
		return renderReport(os.Stdout, doc)
	},
}

func applyReportFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("format") {
		cfg.Report.Format = reportFormat
	}
	if cmd.Flags().Changed("top-k") {
		cfg.Report.TopK = reportTopK
	}
	if cmd.Flags().Changed("max-cat-cols") {
		cfg.Report.MaxCategoryColumns = reportMaxCats
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.Loader.Delimiter = reportDelim
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Loader.SheetName = reportSheet
	}
	if f := cfg.Report.Format; f != "text" && f != "json" {
		return fmt.Errorf("unknown report format %q (want text or json)", f)
	}
	return nil
}

func renderReport(w io.Writer, doc *report.Report) error {
	if cfg.Report.Format == "json" {
		return report.WriteJSON(w, doc)
	}
	report.RenderText(w, doc)
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text",
		"output format (text, json)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"write the report to a file instead of stdout")
	reportCmd.Flags().IntVar(&reportTopK, "top-k", 5,
		"values listed per frequency table")
	reportCmd.Flags().IntVar(&reportMaxCats, "max-cat-cols", 10,
		"categorical columns included in frequency tables")
	reportCmd.Flags().StringVar(&reportDelim, "delimiter", "auto",
		"CSV delimiter (auto, tab, or a single character)")
	reportCmd.Flags().StringVar(&reportSheet, "sheet", "",
		"XLSX sheet name (default: first sheet)")
}
