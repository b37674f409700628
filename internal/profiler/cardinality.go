package profiler

// CardinalityClass buckets a column by how varied its values are.
type CardinalityClass string

const (
	// CardinalityEmpty means the column holds no values at all.
	CardinalityEmpty CardinalityClass = "empty"
	// CardinalityUnique means every value is distinct.
	CardinalityUnique CardinalityClass = "unique"
	// CardinalityNearUnique means at least 95% of values are distinct.
	CardinalityNearUnique CardinalityClass = "near_unique"
	// CardinalityEnumLike means the column draws from a small fixed set.
	CardinalityEnumLike CardinalityClass = "enum_like"
	// CardinalityHigh and CardinalityLow split the remaining columns at
	// a distinct ratio of one half.
	CardinalityHigh CardinalityClass = "high"
	CardinalityLow  CardinalityClass = "low"
)

const (
	nearUniqueRatio  = 0.95
	highCardinality  = 0.5
	enumLikeDistinct = 12
)

// ClassifyCardinality buckets a column given its distinct and non-missing
// value counts.
func ClassifyCardinality(distinct, nonMissing int) CardinalityClass {
	if nonMissing == 0 {
		return CardinalityEmpty
	}
	if distinct == nonMissing {
		return CardinalityUnique
	}
	ratio := float64(distinct) / float64(nonMissing)
	switch {
	case ratio >= nearUniqueRatio:
		return CardinalityNearUnique
	case distinct <= enumLikeDistinct:
		return CardinalityEnumLike
	case ratio >= highCardinality:
		return CardinalityHigh
	default:
		return CardinalityLow
	}
}
