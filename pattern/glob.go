package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// reTLDLabels matches the label sequence captured in place of a ".tld" token.
const reTLDLabels = `((?:\.\w+)+)`

// CompileGlob turns a glob rule into a string predicate.
//
// A rule wrapped in slashes ("/…/") is an explicit regular expression; a
// malformed one is a hard error that the caller must surface, typically by
// rejecting the rule set it came from. Any other rule is escaped, "*" becomes
// a non-greedy wildcard, and the result is anchored at both ends.
//
// When suffixes is ready and the rule contains the literal ".tld/" token, the
// token matches any run of dot-separated labels, and the match only counts if
// those labels (minus the leading dot) form exactly a public suffix.
func CompileGlob(rule string, suffixes SuffixResolver, memo Memo) (Tester, error) {
	if len(rule) > 1 && rule[0] == '/' && rule[len(rule)-1] == '/' {
		re, err := regexp.Compile(rule[1 : len(rule)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid regexp rule %q: %w", rule, err)
		}
		return func(s string) bool { return testRegexp(memo, re, s) }, nil
	}

	body := "^" + globToRegexp(rule) + "$"

	if suffixes != nil && suffixes.Ready() && strings.Contains(rule, ".tld/") {
		re, err := regexp.Compile(strings.Replace(body, `\.tld/`, reTLDLabels+"/", 1))
		if err != nil {
			return nil, fmt.Errorf("invalid glob rule %q: %w", rule, err)
		}
		return func(s string) bool {
			m := re.FindStringSubmatch(s)
			if m == nil {
				return false
			}
			suffix := strings.TrimPrefix(m[1], ".")
			return suffixes.PublicSuffix(suffix) == suffix
		}, nil
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("invalid glob rule %q: %w", rule, err)
	}
	return func(s string) bool { return testRegexp(memo, re, s) }, nil
}
