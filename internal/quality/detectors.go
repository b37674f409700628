// Package quality holds the dataset quality heuristics: constant-column
// detection, suspicious identifier duplication, and the aggregate flag
// and score computation. All checks are pure functions over an immutable
// dataset.
package quality

import "edacli/internal/dataset"

// FindConstantColumns returns the names of columns whose non-missing
// values are all equal, in dataset column order. Missing cells are
// ignored, so a column with one repeated value plus gaps still counts.
// Columns with no values at all do not.
func FindConstantColumns(ds *dataset.Dataset) []string {
	if ds == nil {
		return nil
	}
	var constant []string
	for _, col := range ds.Columns() {
		if col.NonMissingCount() > 0 && col.DistinctNonMissing() == 1 {
			constant = append(constant, col.Name)
		}
	}
	return constant
}

// HasSuspiciousIDDuplicates reports whether any identifier-named column
// holds duplicated values among its non-missing cells. Missing cells
// never count as duplicates of each other.
func HasSuspiciousIDDuplicates(ds *dataset.Dataset) bool {
	if ds == nil {
		return false
	}
	for _, col := range ds.Columns() {
		if !IsIdentifierName(col.Name) {
			continue
		}
		if col.DistinctNonMissing() < col.NonMissingCount() {
			return true
		}
	}
	return false
}
