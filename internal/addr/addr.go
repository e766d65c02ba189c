// Package addr splits candidate email input into its parts and prepares
// the address for the wire. It deliberately does not decide deliverability:
// the remote verification API owns that judgement.
package addr

import (
	"strings"

	"golang.org/x/net/idna"
)

// Addr is the parsed form of a candidate email address.
type Addr struct {
	Raw    string // the original, trimmed input
	Local  string // the part before @, case preserved
	Domain string // the part after @, lowercased ASCII/Punycode form
	// Complete is the minimal shape precondition: non-empty input with a
	// non-empty local part and domain around an @ sign. Incomplete input
	// must never be sent to the verification API.
	Complete bool
}

// Parse splits the given input. If the input is structurally incomplete,
// Complete=false but Raw is always populated.
// Internationalized domains (IDNA2008) are converted to Punycode so the
// wire form is always ASCII.
func Parse(raw string) Addr {
	raw = strings.TrimSpace(raw)

	atIdx := strings.LastIndex(raw, "@")
	if atIdx < 1 || atIdx >= len(raw)-1 {
		return Addr{Raw: raw}
	}

	local := raw[:atIdx]
	domain := strings.ToLower(raw[atIdx+1:])

	return Addr{
		Raw:      raw,
		Local:    local,
		Domain:   toASCII(domain),
		Complete: true,
	}
}

// Normalized returns the address in wire form: the original local part
// joined with the ASCII form of the domain.
func (a Addr) Normalized() string {
	if !a.Complete {
		return a.Raw
	}
	return a.Local + "@" + a.Domain
}

// toASCII converts an internationalized domain to its Punycode form.
// Pure ASCII domains pass through unchanged. If IDNA2008 conversion fails,
// the domain is kept as-is and the API reports the address as undeliverable.
func toASCII(domain string) string {
	hasNonASCII := false
	for _, r := range domain {
		if r > 127 {
			hasNonASCII = true
			break
		}
	}
	if !hasNonASCII {
		return domain
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return domain
	}
	return ascii
}
