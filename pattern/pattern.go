// Package pattern compiles user-authored URL rules into predicates.
//
// Two rule languages are supported: glob rules ("*" wildcard, or an explicit
// "/regexp/" literal) tested against a plain string, and match-pattern rules
// ("scheme://host/path", or "<all_urls>") tested against a dissected URL.
// Compilation is deterministic per rule text, so callers may memoize the
// returned testers keyed by the rule alone.
package pattern

import (
	"regexp"
	"strings"
)

// SuffixResolver answers public-suffix queries for the ".tld" rule token.
// Ready is consulted on every compile; while it reports false, ".tld" in a
// rule is treated as literal text.
type SuffixResolver interface {
	Ready() bool
	PublicSuffix(domain string) string
}

// Memo caches individual regex test outcomes under "re-test:" keys. The same
// literal regex is frequently retested against the same URL across calls, so
// memoizing per (regexp, input) pair pays off. A nil Memo disables caching
// without changing any result.
type Memo interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
	Hit(key string)
}

// Tester is a compiled glob rule: a predicate over a plain string.
type Tester func(s string) bool

// URLTester is a compiled match-pattern rule: a predicate over a dissected
// URL. A nil URL (undissectable input) only satisfies "<all_urls>".
type URLTester func(u *URL) bool

// globToRegexp escapes regexp metacharacters except "*", which becomes a
// non-greedy any-sequence token. Backslashes pass through untouched, matching
// how rules have always been interpreted.
func globToRegexp(rule string) string {
	var b strings.Builder
	b.Grow(len(rule) + 8)
	for i := 0; i < len(rule); i++ {
		switch c := rule[i]; c {
		case '.', '?', '+', '[', ']', '{', '}', '(', ')', '|', '^', '$':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '*':
			b.WriteString(".*?")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// testRegexp evaluates re against s through the memo when one is present.
func testRegexp(memo Memo, re *regexp.Regexp, s string) bool {
	if memo == nil {
		return re.MatchString(s)
	}
	key := "re-test:" + re.String() + ":" + s
	if v, ok := memo.Get(key); ok {
		memo.Hit(key)
		return v.(bool)
	}
	res := re.MatchString(s)
	memo.Put(key, res)
	return res
}
