package schema

// Violation levels.
const (
	ViolationInfo  = "info"
	ViolationWarn  = "warn"
	ViolationError = "error"
)

// SafetyViolation is reported by a shield when content is flagged.
type SafetyViolation struct {
	ViolationLevel string         `json:"violation_level"`
	UserMessage    string         `json:"user_message,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// RunShieldRequest is the body of a run-shield request.
type RunShieldRequest struct {
	ShieldID string         `json:"shield_id"`
	Messages []Message      `json:"messages"`
	Params   map[string]any `json:"params"`
}

// RunShieldResponse carries a nil Violation when the content is safe.
type RunShieldResponse struct {
	Violation *SafetyViolation `json:"violation"`
}

// IsViolation reports whether the shield flagged the content.
func (r RunShieldResponse) IsViolation() bool { return r.Violation != nil }
