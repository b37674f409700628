package quality

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edacli/internal/dataset"
	"edacli/internal/profiler"
)

func computeFlags(t *testing.T, ds *dataset.Dataset, policy Policy) Flags {
	t.Helper()
	flags, err := ComputeFlags(profiler.Summarize(ds), profiler.BuildMissingTable(ds), ds, policy)
	require.NoError(t, err)
	return flags
}

// buildLarge returns a clean dataset with n rows, a unique id column and
// a varied value column.
func buildLarge(n int) *dataset.Dataset {
	b := dataset.NewBuilder("large", []string{"id", "value"}, dataset.BuilderOptions{TrimSpace: true})
	for i := 0; i < n; i++ {
		b.AppendRow([]string{strconv.Itoa(i), strconv.Itoa(i % 7)})
	}
	return b.Build()
}

func TestComputeFlagsCleanSmallDataset(t *testing.T) {
	ds := build(
		[]string{"id", "value"},
		[][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "a"}},
	)
	flags := computeFlags(t, ds, DefaultPolicy())

	assert.False(t, flags.HasConstantColumns)
	assert.False(t, flags.HasSuspiciousIDDuplicates)
	assert.False(t, flags.TooManyMissing)
	assert.Equal(t, 0.0, flags.MaxMissingShare)
	assert.InDelta(t, 0.8, flags.Score, 1e-9)
}

func TestComputeFlagsCleanLargeDataset(t *testing.T) {
	flags := computeFlags(t, buildLarge(120), DefaultPolicy())
	assert.False(t, flags.HasConstantColumns)
	assert.False(t, flags.HasSuspiciousIDDuplicates)
	assert.False(t, flags.TooManyMissing)
	assert.InDelta(t, 1.0, flags.Score, 1e-9)
}

func TestComputeFlagsEveryPenaltyAtOnce(t *testing.T) {
	ds := build(
		[]string{"constant_col", "user_id", "age"},
		[][]string{
			{"c", "1", "20"},
			{"c", "2", "na"},
			{"c", "2", "30"},
			{"c", "4", "na"},
		},
	)
	flags := computeFlags(t, ds, DefaultPolicy())

	assert.True(t, flags.HasConstantColumns)
	assert.True(t, flags.HasSuspiciousIDDuplicates)
	assert.InDelta(t, 0.5, flags.MaxMissingShare, 1e-9)
	// Exactly at the limit is not over it.
	assert.False(t, flags.TooManyMissing)
	// 1.0 - 0.5 - 0.1 - 0.2 - 0.2
	assert.InDelta(t, 0.0, flags.Score, 1e-9)
}

func TestComputeFlagsMissingShareStrictLimit(t *testing.T) {
	over := build(
		[]string{"v", "w"},
		[][]string{{"1", "1"}, {"na", "2"}, {"na", "3"}, {"na", "4"}},
	)
	flags := computeFlags(t, over, DefaultPolicy())
	assert.True(t, flags.TooManyMissing)
	assert.InDelta(t, 0.75, flags.MaxMissingShare, 1e-9)
}

func TestComputeFlagsProportionalMissingPenalty(t *testing.T) {
	ds := build(
		[]string{"v", "w"},
		[][]string{{"1", "x"}, {"na", "y"}, {"3", "z"}, {"4", "x"}},
	)
	flags := computeFlags(t, ds, DefaultPolicy())
	assert.InDelta(t, 0.25, flags.MaxMissingShare, 1e-9)
	// 1.0 - 0.25 - 0.2
	assert.InDelta(t, 0.55, flags.Score, 1e-9)
}

func TestComputeFlagsScoreClampedAtZero(t *testing.T) {
	ds := build(
		[]string{"constant_col", "id", "v"},
		[][]string{
			{"c", "1", "1"},
			{"c", "1", "na"},
			{"c", "2", "na"},
			{"c", "3", "na"},
		},
	)
	flags := computeFlags(t, ds, DefaultPolicy())
	// 1.0 - 0.75 - 0.1 - 0.2 - 0.2 clamps to 0.
	assert.Equal(t, 0.0, flags.Score)
}

func TestComputeFlagsIndependentChecks(t *testing.T) {
	// A constant identifier column trips both detectors.
	ds := build(
		[]string{"id"},
		[][]string{{"5"}, {"5"}, {"5"}},
	)
	flags := computeFlags(t, ds, DefaultPolicy())
	assert.True(t, flags.HasConstantColumns)
	assert.True(t, flags.HasSuspiciousIDDuplicates)
	// 1.0 - 0.1 - 0.2 - 0.2
	assert.InDelta(t, 0.5, flags.Score, 1e-9)
}

func TestComputeFlagsZeroColumns(t *testing.T) {
	ds := build(nil, nil)
	flags := computeFlags(t, ds, DefaultPolicy())
	assert.False(t, flags.HasConstantColumns)
	assert.False(t, flags.HasSuspiciousIDDuplicates)
	assert.False(t, flags.TooManyMissing)
	assert.Equal(t, 0.0, flags.MaxMissingShare)
	assert.InDelta(t, 0.8, flags.Score, 1e-9)
}

func TestComputeFlagsZeroRows(t *testing.T) {
	ds := build([]string{"id", "v"}, nil)
	flags := computeFlags(t, ds, DefaultPolicy())
	assert.Equal(t, 0.0, flags.MaxMissingShare)
	assert.InDelta(t, 0.8, flags.Score, 1e-9)
}

func TestComputeFlagsCustomPolicy(t *testing.T) {
	ds := build(
		[]string{"constant_col", "v"},
		[][]string{{"c", "1"}, {"c", "2"}, {"c", "3"}},
	)
	policy := Policy{
		MissingShareLimit:   0.5,
		MinRows:             2,
		ConstantPenalty:     0.4,
		DuplicateIDPenalty:  0.2,
		SmallDatasetPenalty: 0.3,
	}
	flags := computeFlags(t, ds, policy)
	// Row count meets MinRows, so only the constant penalty applies.
	assert.InDelta(t, 0.6, flags.Score, 1e-9)
}

func TestComputeFlagsDeterministic(t *testing.T) {
	ds := build(
		[]string{"user_id", "v"},
		[][]string{{"1", "na"}, {"1", "x"}, {"2", "y"}},
	)
	first := computeFlags(t, ds, DefaultPolicy())
	second := computeFlags(t, ds, DefaultPolicy())
	assert.Equal(t, first, second)
}

func TestComputeFlagsInvalidInputs(t *testing.T) {
	ds := build([]string{"a"}, [][]string{{"1"}})
	summary := profiler.Summarize(ds)
	missing := profiler.BuildMissingTable(ds)

	cases := []struct {
		name    string
		summary *profiler.DatasetSummary
		missing *profiler.MissingTable
		ds      *dataset.Dataset
	}{
		{"nil dataset", summary, missing, nil},
		{"nil summary", nil, missing, ds},
		{"nil missing table", summary, nil, ds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flags, err := ComputeFlags(tc.summary, tc.missing, tc.ds, DefaultPolicy())
			require.Error(t, err)
			var invalid *InvalidInputError
			assert.True(t, errors.As(err, &invalid))
			assert.Equal(t, Flags{}, flags)
		})
	}
}

func TestComputeFlagsMismatchedColumns(t *testing.T) {
	ds := build([]string{"a", "b"}, [][]string{{"1", "2"}})
	other := build([]string{"a", "renamed"}, [][]string{{"1", "2"}})

	_, err := ComputeFlags(profiler.Summarize(other), profiler.BuildMissingTable(ds), ds, DefaultPolicy())
	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "summary columns")

	_, err = ComputeFlags(profiler.Summarize(ds), profiler.BuildMissingTable(other), ds, DefaultPolicy())
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "missing table columns")
}

// BenchmarkComputeFlags measures the full set of checks over clean
// datasets of increasing size.
func BenchmarkComputeFlags(b *testing.B) {
	for _, n := range []int{1_000, 50_000} {
		ds := buildLarge(n)
		summary := profiler.Summarize(ds)
		missing := profiler.BuildMissingTable(ds)
		b.Run(fmt.Sprintf("rows_%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				flags, err := ComputeFlags(summary, missing, ds, DefaultPolicy())
				if err != nil {
					b.Fatalf("compute flags: %v", err)
				}
				if flags.Score != 1.0 {
					b.Fatalf("unexpected score %v", flags.Score)
				}
			}
		})
	}
}
