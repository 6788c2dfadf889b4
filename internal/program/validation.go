package program

// IssueSeverity grades a validation issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// IsValid checks if the severity is a known value
func (s IssueSeverity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// IssueCategory tags what kind of problem a validation issue describes.
type IssueCategory string

const (
	IssueMissingCoverage IssueCategory = "missing_coverage"
	IssueBannedExercise  IssueCategory = "banned_exercise"
	IssueVolumeShortfall IssueCategory = "volume_shortfall"
	IssueUnsafeLoad      IssueCategory = "unsafe_load"
	IssueOther           IssueCategory = "other"
)

// ValidationIssue is one problem found by the plan validator.
type ValidationIssue struct {
	Severity IssueSeverity `json:"severity"`
	Category IssueCategory `json:"category"`
	Message  string        `json:"message"`
	SlotID   string        `json:"slot_id,omitempty"`
}

// ValidationResult is the plan validator's verdict on a fully assembled
// program.
type ValidationResult struct {
	Pass    bool              `json:"pass"`
	Issues  []ValidationIssue `json:"issues"`
	Summary string            `json:"summary"`
}

// HasErrors reports whether any issue carries error severity. Warnings
// alone never trigger a pipeline retry.
func (r ValidationResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
