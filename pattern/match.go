package pattern

import (
	"regexp"
	"strings"
)

// AllURLs is the match-pattern rule accepting every URL.
const AllURLs = "<all_urls>"

// CompileMatch turns a match-pattern rule into a URL predicate. A rule that
// fails the scheme://host/path decomposition compiles to an always-false
// tester; a broken rule silently matches nothing, it never breaks the set it
// belongs to. Scheme, host and path are checked in that order with
// short-circuiting.
func CompileMatch(rule string, suffixes SuffixResolver, memo Memo) URLTester {
	if rule == AllURLs {
		return func(*URL) bool { return true }
	}

	m := reURLParts.FindStringSubmatch(rule)
	if m == nil {
		return neverMatch
	}

	scheme := matchScheme(strings.ToLower(m[1]))
	host, ok := matchHost(strings.ToLower(m[2]), suffixes)
	if !ok {
		return neverMatch
	}
	path, ok := matchPath(m[3], memo)
	if !ok {
		return neverMatch
	}

	return func(u *URL) bool {
		return u != nil && scheme(u.Scheme) && host(u.Host) && path(u.Path)
	}
}

func neverMatch(*URL) bool { return false }

// matchScheme accepts exact equality, or http/https when the rule scheme is
// the "*" or "http*" wildcard.
func matchScheme(rule string) func(string) bool {
	return func(scheme string) bool {
		if scheme == rule {
			return true
		}
		return (rule == "*" || rule == "http*") && (scheme == "http" || scheme == "https")
	}
}

// matchHost compiles the host part. "*" matches any host; a leading "*."
// matches subdomains of the base but not the base itself ("*.example.com"
// covers "www.example.com", not "example.com"); a trailing ".tld" matches a
// verified public suffix when the resolver is ready. Exact equality with the
// rule text is always accepted before the compiled form is consulted.
func matchHost(rule string, suffixes SuffixResolver) (func(string) bool, bool) {
	if rule == "*" {
		return func(string) bool { return true }, true
	}

	body := "^" + globToRegexp(rule) + "$"

	if suffixes != nil && suffixes.Ready() && strings.HasSuffix(rule, ".tld") {
		re, err := regexp.Compile(strings.TrimSuffix(body, `\.tld$`) + reTLDLabels + "$")
		if err != nil {
			return nil, false
		}
		return func(host string) bool {
			if host == rule {
				return true
			}
			m := re.FindStringSubmatch(host)
			if m == nil {
				return false
			}
			suffix := strings.TrimPrefix(m[1], ".")
			return suffixes.PublicSuffix(suffix) == suffix
		}, true
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, false
	}
	return func(host string) bool {
		return host == rule || re.MatchString(host)
	}, true
}

// matchPath compiles the path part. Without an explicit fragment the pattern
// matches up to the query-or-end boundary (or fragment-or-end when the rule
// carries its own query), so "p*" covers "page", "page?x=1" and "page#y".
// With an explicit fragment no boundary is appended and the pattern
// prefix-matches the tail.
func matchPath(rule string, memo Memo) (func(string) bool, bool) {
	iHash := strings.IndexByte(rule, '#')
	iQuery := strings.IndexByte(rule, '?')
	if iHash >= 0 && iQuery > iHash {
		// A "?" inside the fragment is not a query.
		iQuery = -1
	}

	body := "^" + globToRegexp(rule)
	switch {
	case iHash >= 0:
		// no trailing boundary
	case iQuery >= 0:
		body += "(?:#|$)"
	default:
		body += "(?:[?#]|$)"
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, false
	}
	return func(path string) bool { return testRegexp(memo, re, path) }, true
}
