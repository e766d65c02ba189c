// Package verifykit validates email addresses against a remote verification
// API and exposes the outcome to user-interface code through a debounced,
// cancellation-safe validation controller.
//
// Basic usage:
//
//	client, _ := verify.NewClient(verify.Config{APIKey: "key"})
//	ctrl := verifykit.NewController(client,
//	    verifykit.WithResultHandler(func(res verifykit.Result) {
//	        fmt.Println(res.Verdict)
//	    }),
//	)
//	defer ctrl.Close()
//
//	ctrl.Trigger("user@example.com")
//
// Rapid successive Trigger calls are coalesced by the debounce delay, and
// only the most recent request's outcome ever reaches observable state.
package verifykit

import "github.com/optimode/verifykit/types"

// Result is a re-export from the types package so that consumers
// don't need to import the types package directly.
type Result = types.Result

// Phase is a re-export.
type Phase = types.Phase

// Phase constants re-exported.
const (
	PhaseIdle       = types.PhaseIdle
	PhaseValidating = types.PhaseValidating
	PhaseResolved   = types.PhaseResolved
	PhaseErrored    = types.PhaseErrored
)
