package pattern

import (
	"regexp"
	"strings"
)

// reURLParts is the fixed scheme://host/path decomposition used for both
// match-pattern rules and tested URLs: everything up to "://", everything up
// to the next slash, and the rest (query and fragment included).
var reURLParts = regexp.MustCompile(`^(.*?)://([^/]*)/(.*)$`)

// URL is a dissected URL as seen by match-pattern testers.
type URL struct {
	Raw    string
	Scheme string // lowercased
	Host   string // lowercased
	Path   string // after the host's first slash, leading slash stripped
}

// DissectURL splits raw into scheme, host and path. URLs that do not fit
// the scheme://host/path shape (no "://", or no slash after the host) report
// false and match nothing except "<all_urls>".
func DissectURL(raw string) (*URL, bool) {
	m := reURLParts.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	return &URL{
		Raw:    raw,
		Scheme: strings.ToLower(m[1]),
		Host:   strings.ToLower(m[2]),
		Path:   m[3],
	}, true
}
