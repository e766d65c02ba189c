// Package types contains the shared types for verifykit.
// This package does not import anything from other verifykit packages
// to avoid circular imports.
package types

// Phase identifies where the validation controller is in its lifecycle.
type Phase = string

const (
	// PhaseIdle means no request is pending and no outcome is held.
	PhaseIdle Phase = "idle"
	// PhaseValidating means a verification request is in flight.
	PhaseValidating Phase = "validating"
	// PhaseResolved means the latest request settled with a result.
	PhaseResolved Phase = "resolved"
	// PhaseErrored means the latest request failed with a surfaced error.
	PhaseErrored Phase = "errored"
)

// Verdict is the coarse outcome classification of a verified address.
type Verdict = string

const (
	VerdictDeliverable   Verdict = "deliverable"
	VerdictUndeliverable Verdict = "undeliverable"
	VerdictRisky         Verdict = "risky"
	VerdictUnknown       Verdict = "unknown"
)

// Result is the outcome of a single remote verification.
// The controller treats it as an opaque value and passes it through.
type Result struct {
	Email      string  `json:"email"`
	Verdict    Verdict `json:"verdict"`
	Reason     string  `json:"reason,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
	User       string  `json:"user,omitempty"`
	Domain     string  `json:"domain,omitempty"`
	Score      float64 `json:"score"`
	Free       bool    `json:"free"`
	Disposable bool    `json:"disposable"`
	Role       bool    `json:"role"`
	AcceptAll  bool    `json:"acceptAll"`
}
