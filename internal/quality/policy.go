package quality

// Policy carries the tunable thresholds and penalties of the quality
// score. The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	// MissingShareLimit flags the dataset when the worst column's
	// missing share exceeds it. The comparison is strict: a share equal
	// to the limit does not trigger the flag.
	MissingShareLimit float64 `yaml:"missing_share_limit" envconfig:"MISSING_SHARE_LIMIT" validate:"gte=0,lte=1"`
	// MinRows is the row count below which the small-dataset penalty
	// applies.
	MinRows int `yaml:"min_rows" envconfig:"MIN_ROWS" validate:"gte=0"`

	ConstantPenalty     float64 `yaml:"constant_penalty" envconfig:"CONSTANT_PENALTY" validate:"gte=0,lte=1"`
	DuplicateIDPenalty  float64 `yaml:"duplicate_id_penalty" envconfig:"DUPLICATE_ID_PENALTY" validate:"gte=0,lte=1"`
	SmallDatasetPenalty float64 `yaml:"small_dataset_penalty" envconfig:"SMALL_DATASET_PENALTY" validate:"gte=0,lte=1"`
}

// DefaultPolicy returns the stock thresholds and penalties.
func DefaultPolicy() Policy {
	return Policy{
		MissingShareLimit:   0.5,
		MinRows:             100,
		ConstantPenalty:     0.1,
		DuplicateIDPenalty:  0.2,
		SmallDatasetPenalty: 0.2,
	}
}
