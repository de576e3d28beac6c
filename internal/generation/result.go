package generation

// TerminalFailure is the value returned when every retry attempt produced
// invalid JSON. It is a normal return value, not an error: retry exhaustion
// is an expected failure mode and callers should not need error handling for
// it. Real provider failures are returned as errors instead.
type TerminalFailure struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	Attempts int    `json:"attempts"`
}
