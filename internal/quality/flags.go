package quality

import (
	"edacli/internal/dataset"
	"edacli/internal/profiler"
)

// Flags is the aggregate quality verdict for one dataset. TooManyMissing
// restates MaxMissingShare against the policy limit so consumers can
// branch on it without knowing the threshold.
type Flags struct {
	HasConstantColumns        bool    `json:"has_constant_columns"`
	HasSuspiciousIDDuplicates bool    `json:"has_suspicious_id_duplicates"`
	TooManyMissing            bool    `json:"too_many_missing"`
	MaxMissingShare           float64 `json:"max_missing_share"`
	Score                     float64 `json:"quality_score"`
}

// ComputeFlags runs every quality check over one dataset and folds the
// findings into a score in [0, 1]. The summary and missing table must
// describe the same columns as the dataset; mismatched or nil inputs
// surface an *InvalidInputError. The checks never feed each other: each
// flag is computed from the dataset alone.
func ComputeFlags(summary *profiler.DatasetSummary, missing *profiler.MissingTable, ds *dataset.Dataset, policy Policy) (Flags, error) {
	if err := validateInputs(summary, missing, ds); err != nil {
		return Flags{}, err
	}

	flags := Flags{
		HasConstantColumns:        len(FindConstantColumns(ds)) > 0,
		HasSuspiciousIDDuplicates: HasSuspiciousIDDuplicates(ds),
		MaxMissingShare:           missing.MaxShare(),
	}
	flags.TooManyMissing = flags.MaxMissingShare > policy.MissingShareLimit

	score := 1.0
	if flags.MaxMissingShare > 0 {
		score -= flags.MaxMissingShare
	}
	if flags.HasConstantColumns {
		score -= policy.ConstantPenalty
	}
	if flags.HasSuspiciousIDDuplicates {
		score -= policy.DuplicateIDPenalty
	}
	if ds.NumRows() < policy.MinRows {
		score -= policy.SmallDatasetPenalty
	}
	flags.Score = clamp01(score)
	return flags, nil
}

func validateInputs(summary *profiler.DatasetSummary, missing *profiler.MissingTable, ds *dataset.Dataset) error {
	switch {
	case ds == nil:
		return &InvalidInputError{Reason: "nil dataset"}
	case summary == nil:
		return &InvalidInputError{Reason: "nil summary"}
	case missing == nil:
		return &InvalidInputError{Reason: "nil missing table"}
	}
	if !sameColumnSet(summary.ColumnNames(), ds) {
		return &InvalidInputError{Reason: "summary columns do not match dataset columns"}
	}
	if !sameColumnSet(missing.ColumnNames(), ds) {
		return &InvalidInputError{Reason: "missing table columns do not match dataset columns"}
	}
	return nil
}

func sameColumnSet(names []string, ds *dataset.Dataset) bool {
	if len(names) != ds.NumCols() {
		return false
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	for _, name := range ds.ColumnNames() {
		if _, ok := set[name]; !ok {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
