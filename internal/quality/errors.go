package quality

// InvalidInputError reports that the quality checks were handed inputs
// that do not describe a single dataset: a nil dataset, a nil summary or
// missing table, or tables whose columns disagree with the dataset's.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid quality input: " + e.Reason
}
