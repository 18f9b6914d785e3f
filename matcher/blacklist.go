package matcher

import (
	"fmt"
	"strings"
	"unicode"

	"scriptmatch/cache"
	"scriptmatch/logger"
	"scriptmatch/pattern"
)

// blacklistRule is one parsed blacklist line. reject is false for the
// whitelist-style modes (@include, @match); those never block, they only
// consume the first-match slot.
type blacklistRule struct {
	reject bool
	text   string
	test   func(raw string, u *pattern.URL) bool
}

// ResetBlacklist reparses the blacklist from the given pre-split lines and
// replaces the current rule list. Passing nil re-reads the persisted
// blacklist text from the configured source. The result cache is cleared
// unconditionally, even when the new text equals the old one; the
// compiled testers stay cached by rule text and are reused across resets.
//
// A malformed explicit "/…/" rule aborts the reset with an error and leaves
// the previous rule list in place; callers surface this by rejecting the
// offending blacklist save.
func (e *Engine) ResetBlacklist(lines []string) error {
	if lines == nil && e.source != nil {
		text, err := e.source.BlacklistText()
		if err != nil {
			return fmt.Errorf("read blacklist: %w", err)
		}
		lines = splitLines(text)
	}

	rules, err := e.parseBlacklist(lines)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
	e.results.Clear()

	logger.Debugf("blacklist: loaded %d rules", len(rules))
	return nil
}

// ResetBlacklistText is ResetBlacklist for the newline-separated form.
func (e *Engine) ResetBlacklistText(text string) error {
	return e.ResetBlacklist(splitLines(text))
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// parseBlacklist compiles lines into ordered rules, skipping blanks and "#"
// comments. Order is preserved; evaluation is first-match-wins.
func (e *Engine) parseBlacklist(lines []string) ([]*blacklistRule, error) {
	rules := make([]*blacklistRule, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		mode, body := "", line
		if strings.HasPrefix(line, "@") {
			if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
				mode, body = line[:i], strings.TrimSpace(line[i:])
			} else {
				mode, body = line, ""
			}
		}

		rule := &blacklistRule{
			reject: !(mode == "@include" || mode == "@match"),
			text:   line,
		}

		switch {
		case mode == "@include" || mode == "@exclude":
			test, err := e.globTester(body)
			if err != nil {
				return nil, fmt.Errorf("blacklist rule %q: %w", line, err)
			}
			rule.test = func(raw string, _ *pattern.URL) bool { return test(raw) }
		case mode == "" && !strings.Contains(body, "/"):
			// A bare domain blocks every scheme and path on that host.
			test := e.matchTester("*://" + body + "/*")
			rule.test = func(_ string, u *pattern.URL) bool { return test(u) }
		default:
			test := e.matchTester(body)
			rule.test = func(_ string, u *pattern.URL) bool { return test(u) }
		}

		rules = append(rules, rule)
	}
	return rules, nil
}

// TestBlacklist evaluates url against the blacklist. It returns the text of
// the first matching rule when that rule rejects, or ("", false) when the
// first matching rule is a whitelist exception or nothing matches. Verdicts
// are cached per URL until the next reset.
func (e *Engine) TestBlacklist(url string) (rule string, blocked bool) {
	if v, ok := e.results.Get(url); ok {
		return v.Rule, v.Blocked
	}

	u, _ := pattern.DissectURL(url)

	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	var verdict cache.Verdict
	for _, r := range rules {
		if r.test(url, u) {
			if r.reject {
				verdict = cache.Verdict{Rule: r.text, Blocked: true}
			}
			break
		}
	}

	e.results.Put(url, verdict)
	return verdict.Rule, verdict.Blocked
}
