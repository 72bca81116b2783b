// Package coverage measures test coverage through an injectable probe,
// classifies drift against a recorded baseline, and gates progress on the
// resulting severity.
package coverage

// Sample is a single coverage measurement. Branch counts are optional:
// probes whose report carries no branch data leave them at zero.
type Sample struct {
	Percent         float64 `json:"percent"`
	LinesCovered    int     `json:"linesCovered"`
	LinesTotal      int     `json:"linesTotal"`
	BranchesCovered int     `json:"branchesCovered,omitempty"`
	BranchesTotal   int     `json:"branchesTotal,omitempty"`
}
