package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"edacli/internal/connectors"
	"edacli/internal/loader"
	"edacli/internal/profiler"
	"edacli/internal/quality"
	"edacli/internal/report"
)

var (
	scanDir       string
	scanFormat    string
	scanRecursive bool
	scanMinSize   int64
	scanMaxSize   int64
	scanWorkers   int
	scanFailUnder float64
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory and score every data file in it",
	Long: `Discover data files under a directory, run the quality checks
on each one, and print a results table sorted worst first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		options := connectors.DiscoveryOptions{
			Recursive: scanRecursive,
			MinSize:   scanMinSize,
			MaxSize:   scanMaxSize,
		}
		files, err := connectors.DiscoverFiles(scanDir, scanFormat, options)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("no %s files found in %s\n", scanFormat, scanDir)
			return nil
		}
		slog.Debug("discovered files", "dir", scanDir, "count", len(files))

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Scanning files..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		workers := scanWorkers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}

		// Failures are recorded per file, never propagated: one broken
		// file must not stop the rest of the scan.
		rows := make([]report.ScanRow, len(files))
		var g errgroup.Group
		g.SetLimit(workers)
		for i, file := range files {
			g.Go(func() error {
				rows[i] = scanFile(file.Path)
				bar.Add(1)
				return nil
			})
		}
		g.Wait()
		bar.Finish()

		report.RenderScanTable(os.Stdout, rows)
		return scanVerdict(rows)
	},
}

func scanFile(path string) report.ScanRow {
	start := time.Now()
	row := report.ScanRow{Path: path}

	ds, err := loader.Load(path, cfg.Loader.Options())
	if err != nil {
		row.Err = err
		row.Duration = time.Since(start)
		return row
	}

	summary := profiler.Summarize(ds)
	missing := profiler.BuildMissingTable(ds)
	flags, err := quality.ComputeFlags(summary, missing, ds, cfg.Quality)
	if err != nil {
		row.Err = err
	} else {
		row.Flags = flags
	}
	row.Rows = ds.NumRows()
	row.Cols = ds.NumCols()
	row.Duration = time.Since(start)
	return row
}

// scanVerdict decides the exit status: files that failed to scan always
// fail the run, low scores only when --fail-under is set.
func scanVerdict(rows []report.ScanRow) error {
	var failed, low int
	for _, row := range rows {
		if row.Err != nil {
			failed++
			continue
		}
		if scanFailUnder > 0 && row.Flags.Score < scanFailUnder {
			low++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to scan", failed, len(rows))
	}
	if low > 0 {
		return fmt.Errorf("%d of %d files scored below %.2f", low, len(rows), scanFailUnder)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", "",
		"directory to scan (required)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "csv",
		"file format to scan (csv, xlsx)")
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false,
		"walk subdirectories")
	scanCmd.Flags().Int64Var(&scanMinSize, "min-size", 0,
		"minimum file size in bytes")
	scanCmd.Flags().Int64Var(&scanMaxSize, "max-size", 0,
		"maximum file size in bytes")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0,
		"parallel workers (default: number of CPUs)")
	scanCmd.Flags().Float64Var(&scanFailUnder, "fail-under", 0,
		"exit nonzero when any score falls below this threshold")

	scanCmd.MarkFlagRequired("dir")
}
