package verifykit

import "github.com/optimode/verifykit/types"

// State is the controller's externally observable state.
// At most one of Result and ErrorMessage is populated at any time, and the
// phase is determined by which one is set and whether a request is pending.
type State struct {
	Phase types.Phase `json:"phase"`
	// Result is present only in the resolved phase.
	Result *types.Result `json:"result,omitempty"`
	// ErrorMessage is present only in the errored phase.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Validating reports whether a request is currently in flight.
func (s State) Validating() bool {
	return s.Phase == types.PhaseValidating
}

// Settled reports whether the latest request has reached an outcome,
// either a result or an error.
func (s State) Settled() bool {
	return s.Phase == types.PhaseResolved || s.Phase == types.PhaseErrored
}
