// Package verify is the remote verification client for verifykit.
// It performs one network round-trip per address and returns a normalized
// result or a classified failure. The Verifier interface is what the
// controller and gate packages consume; Client is the HTTP implementation.
package verify
