// Package loader reads CSV and XLSX files into datasets.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"edacli/internal/dataset"
)

// Options control parsing and cell normalization.
type Options struct {
	// Delimiter is the CSV field separator. Empty or "auto" samples the
	// file and picks the most frequent candidate.
	Delimiter string
	// SheetName selects the XLSX worksheet. Empty means the first sheet.
	SheetName string
	// MissingMarkers are folded to the missing cell, case-insensitively.
	MissingMarkers []string
	TrimSpace      bool
}

// DefaultOptions returns the parsing defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		Delimiter:      "auto",
		MissingMarkers: []string{"na", "n/a", "null", "none", "nan"},
		TrimSpace:      true,
	}
}

func (o Options) builderOptions() dataset.BuilderOptions {
	return dataset.BuilderOptions{
		MissingMarkers: o.MissingMarkers,
		TrimSpace:      o.TrimSpace,
	}
}

// Load reads a tabular file into a dataset, dispatching on the extension.
func Load(path string, opts Options) (*dataset.Dataset, error) {
	var (
		ds  *dataset.Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		ds, err = LoadCSV(path, opts)
	case ".xlsx", ".xlsm":
		ds, err = LoadXLSX(path, opts)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded",
		"path", path,
		"rows", ds.NumRows(),
		"columns", ds.NumCols())
	return ds, nil
}

// LoadCSV reads a delimited text file. Ragged records are tolerated: short
// rows pad with missing cells, long rows drop the extra fields.
func LoadCSV(path string, opts Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	delim, err := resolveDelimiter(f, opts)
	if err != nil {
		return nil, fmt.Errorf("resolving delimiter for %s: %w", path, err)
	}

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s is empty", path)
		}
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	b := dataset.NewBuilder(path, headers, opts.builderOptions())
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		b.AppendRow(record)
	}
	return b.Build(), nil
}

// LoadXLSX reads one worksheet of an Excel workbook.
func LoadXLSX(path string, opts Options) (*dataset.Dataset, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer wb.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %s has no header row", sheet, path)
	}

	b := dataset.NewBuilder(path, rows[0], opts.builderOptions())
	for _, row := range rows[1:] {
		b.AppendRow(row)
	}
	return b.Build(), nil
}

func resolveDelimiter(f *os.File, opts Options) (rune, error) {
	switch opts.Delimiter {
	case "", "auto":
	case "\t", "\\t", "tab":
		return '\t', nil
	default:
		runes := []rune(opts.Delimiter)
		if len(runes) != 1 {
			return 0, fmt.Errorf("delimiter must be a single character, got %q", opts.Delimiter)
		}
		return runes[0], nil
	}

	sample := make([]byte, 4096)
	n, err := f.Read(sample)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return detectDelimiter(sample[:n]), nil
}

// detectDelimiter counts candidate separators in the sampled header line
// and picks the most frequent one. Comma wins ties.
func detectDelimiter(sample []byte) rune {
	if i := bytes.IndexByte(sample, '\n'); i > 0 {
		sample = sample[:i]
	}
	best := ','
	bestCount := bytes.Count(sample, []byte{','})
	for _, cand := range []byte{';', '\t', '|'} {
		if n := bytes.Count(sample, []byte{cand}); n > bestCount {
			best = rune(cand)
			bestCount = n
		}
	}
	return best
}
