package types

// Error codes for the recoverable failure taxonomy. Nothing in the core is
// fatal to the process; every code below maps to a graceful reply.
const (
	ErrCodeInputAmbiguous      = "INPUT_AMBIGUOUS"
	ErrCodeUnknownDepartment   = "UNKNOWN_DEPARTMENT"
	ErrCodeUnknownRegion       = "UNKNOWN_REGION"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// ErrorDetail represents detailed error information on outward contracts.
type ErrorDetail struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Details     string `json:"details,omitempty"`
	Recoverable bool   `json:"recoverable"`
}

// ValidationFailure is returned when a caller supplied a department or
// region outside the recognized enumerations. It lists valid options instead
// of crashing the turn.
type ValidationFailure struct {
	Success      bool     `json:"success"`
	Code         string   `json:"code"`
	Error        string   `json:"error"`
	ValidOptions []string `json:"valid_options,omitempty"`
}
