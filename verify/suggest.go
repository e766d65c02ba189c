package verify

import "github.com/optimode/verifykit/internal/levenshtein"

// typoThreshold is the maximum edit distance for a domain to count as a
// likely typo of a known provider.
const typoThreshold = 2

// knownProviders are major email providers used for local typo suggestions
// when the API does not return one.
var knownProviders = []string{
	"gmail.com", "googlemail.com",
	"yahoo.com", "yahoo.co.uk", "yahoo.fr", "yahoo.de",
	"outlook.com", "hotmail.com", "hotmail.co.uk", "live.com",
	"icloud.com", "me.com", "mac.com",
	"protonmail.com", "proton.me",
	"aol.com",
	"zoho.com",
	"yandex.com", "yandex.ru",
	"mail.com",
	"gmx.com", "gmx.net", "gmx.de",
	"fastmail.com",
	"tutanota.com",
}

// suggestProvider returns the closest known provider within typoThreshold
// of the given domain, or "" when the domain is an exact match or nothing
// is close enough.
func suggestProvider(domain string) string {
	bestDist := typoThreshold + 1
	bestMatch := ""

	for _, provider := range knownProviders {
		if domain == provider {
			return ""
		}
		dist := levenshtein.Distance(domain, provider)
		if dist <= typoThreshold && dist < bestDist {
			bestDist = dist
			bestMatch = provider
		}
	}

	return bestMatch
}
