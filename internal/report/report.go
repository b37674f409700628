// Package report renders profiling results as terminal text or JSON.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"edacli/internal/dataset"
	"edacli/internal/profiler"
	"edacli/internal/quality"
)

// FormatTag identifies the JSON document layout.
const FormatTag = "eda_report_v1"

// Data is everything the pipeline computed for one dataset.
type Data struct {
	Dataset         *dataset.Dataset
	Summary         *profiler.DatasetSummary
	Missing         *profiler.MissingTable
	Correlation     *profiler.Correlation
	Categories      []profiler.CategoryTable
	ConstantColumns []string
	Quality         quality.Flags
	FileSize        int64
}

// Report is the assembled, serializable document.
type Report struct {
	ID              string                   `json:"report_id"`
	GeneratedAt     time.Time                `json:"generated_at"`
	Format          string                   `json:"format"`
	Source          string                   `json:"source"`
	FileSize        int64                    `json:"file_size_bytes,omitempty"`
	Rows            int                      `json:"n_rows"`
	Cols            int                      `json:"n_cols"`
	Summary         *profiler.DatasetSummary `json:"summary"`
	Missing         *profiler.MissingTable   `json:"missing"`
	Correlation     *CorrelationDoc          `json:"correlation,omitempty"`
	Categories      []profiler.CategoryTable `json:"top_categories,omitempty"`
	ConstantColumns []string                 `json:"constant_columns,omitempty"`
	Quality         quality.Flags            `json:"quality"`
}

// CorrelationDoc mirrors the correlation matrix with JSON-safe cells:
// undefined coefficients serialize as null.
type CorrelationDoc struct {
	Columns     []string                  `json:"columns"`
	Values      [][]profiler.JSONFloat    `json:"values"`
	StrongPairs []profiler.CorrelatedPair `json:"strong_pairs,omitempty"`
}

// StrongPairThreshold is the absolute correlation a pair needs to be
// called out in reports.
const StrongPairThreshold = 0.7

// Build assembles the report document and stamps it with an id and
// timestamp.
func Build(data Data) *Report {
	r := &Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		Format:          FormatTag,
		Summary:         data.Summary,
		Missing:         data.Missing,
		Categories:      data.Categories,
		ConstantColumns: data.ConstantColumns,
		Quality:         data.Quality,
		FileSize:        data.FileSize,
	}
	if data.Dataset != nil {
		r.Source = data.Dataset.Source
		r.Rows = data.Dataset.NumRows()
		r.Cols = data.Dataset.NumCols()
	}
	if data.Correlation != nil && len(data.Correlation.Columns) > 0 {
		r.Correlation = correlationDoc(data.Correlation)
	}
	return r
}

func correlationDoc(corr *profiler.Correlation) *CorrelationDoc {
	doc := &CorrelationDoc{
		Columns:     corr.Columns,
		Values:      make([][]profiler.JSONFloat, len(corr.Values)),
		StrongPairs: corr.StrongPairs(StrongPairThreshold),
	}
	for i, row := range corr.Values {
		doc.Values[i] = make([]profiler.JSONFloat, len(row))
		for j, v := range row {
			doc.Values[i][j] = profiler.JSONFloat(v)
		}
	}
	return doc
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
