package lock

// MissingDigest is the sentinel recorded in Outcome.Actual for a locked
// file that no longer exists on disk.
const MissingDigest = "missing"

// Outcome is the result of a verification pass. Derived, never persisted.
// A mismatch is a normal result value, not an error.
type Outcome struct {
	Valid     bool              `json:"valid"`
	SubjectID string            `json:"subjectId,omitempty"`
	Modified  []string          `json:"modified"`
	Missing   []string          `json:"missing"`
	Expected  map[string]string `json:"expected"`
	Actual    map[string]string `json:"actual"`
}

func emptyOutcome() Outcome {
	return Outcome{
		Valid:    true,
		Modified: []string{},
		Missing:  []string{},
		Expected: map[string]string{},
		Actual:   map[string]string{},
	}
}
