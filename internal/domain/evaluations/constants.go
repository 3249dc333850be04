package evaluations

const (
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"

	// EvaluatorSelf marks self-authored records instead of a manager id.
	EvaluatorSelf = "Self"
)
