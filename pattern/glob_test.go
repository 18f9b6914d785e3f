package pattern

import (
	"strings"
	"testing"
)

// fakeSuffixes mimics the real resolver: listed domains are suffixes, and an
// unknown domain degrades to its last label like the compiled list does.
type fakeSuffixes struct {
	ready    bool
	suffixes map[string]bool
}

func (f *fakeSuffixes) Ready() bool { return f.ready }

func (f *fakeSuffixes) PublicSuffix(domain string) string {
	if f.suffixes[domain] {
		return domain
	}
	if i := strings.LastIndexByte(domain, '.'); i >= 0 {
		return domain[i+1:]
	}
	return domain
}

func TestCompileGlobWildcard(t *testing.T) {
	tests := []struct {
		rule  string
		input string
		want  bool
	}{
		{"http://example.com/*", "http://example.com/path?q=1", true},
		{"http://example.com/*", "https://example.com/path", false},
		{"*://*.example.com/*", "http://www.example.com/x", true},
		{"*greasyfork*", "https://greasyfork.org/en/scripts", true},
		{"*greasyfork*", "https://example.com/", false},
		// Metacharacters other than "*" are literal text.
		{"http://a.com/p?q=1", "http://a.com/p?q=1", true},
		{"http://a.com/p?q=1", "http://a.com/pXq=1", false},
		{"http://a.com/x", "http://a.com/x/y", false}, // anchored at both ends
	}

	for _, test := range tests {
		tester, err := CompileGlob(test.rule, nil, nil)
		if err != nil {
			t.Fatalf("CompileGlob(%q): %v", test.rule, err)
		}
		if got := tester(test.input); got != test.want {
			t.Errorf("glob %q on %q: expected %v, got %v", test.rule, test.input, test.want, got)
		}
	}
}

func TestCompileGlobRegexpLiteral(t *testing.T) {
	tester, err := CompileGlob("/^https:/", nil, nil)
	if err != nil {
		t.Fatalf("CompileGlob: %v", err)
	}
	if !tester("https://example.com/") {
		t.Errorf("expected /^https:/ to match an https URL")
	}
	if tester("http://example.com/") {
		t.Errorf("expected /^https:/ to not match an http URL")
	}

	// A lone "/" is not a regexp literal, just a glob.
	tester, err = CompileGlob("/", nil, nil)
	if err != nil {
		t.Fatalf("CompileGlob: %v", err)
	}
	if !tester("/") {
		t.Errorf("expected glob \"/\" to match \"/\"")
	}

	if _, err := CompileGlob("/[/", nil, nil); err == nil {
		t.Errorf("expected an error for a malformed regexp literal")
	}
}

func TestCompileGlobDeterminism(t *testing.T) {
	rules := []string{"http://example.com/*", "/^https:/", "*://*.a.com/*"}
	inputs := []string{"http://example.com/x", "https://a.com/", "ftp://x/"}

	for _, rule := range rules {
		a, err := CompileGlob(rule, nil, nil)
		if err != nil {
			t.Fatalf("CompileGlob(%q): %v", rule, err)
		}
		b, err := CompileGlob(rule, nil, nil)
		if err != nil {
			t.Fatalf("CompileGlob(%q): %v", rule, err)
		}
		for _, input := range inputs {
			if a(input) != b(input) {
				t.Errorf("glob %q on %q: two compilations disagree", rule, input)
			}
		}
	}
}

func TestCompileGlobTLD(t *testing.T) {
	suffixes := &fakeSuffixes{
		ready:    true,
		suffixes: map[string]bool{"com": true, "co.uk": true},
	}

	tester, err := CompileGlob("http://www.google.tld/*", suffixes, nil)
	if err != nil {
		t.Fatalf("CompileGlob: %v", err)
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"http://www.google.com/search", true},
		{"http://www.google.co.uk/search", true},
		{"http://www.google.evil.example/", false}, // "evil.example" is no suffix
		{"http://www.google.tld/", false},          // "tld" itself is no suffix
		{"http://www.bing.com/", false},
	}
	for _, test := range tests {
		if got := tester(test.input); got != test.want {
			t.Errorf("tld glob on %q: expected %v, got %v", test.input, test.want, got)
		}
	}
}

func TestCompileGlobTLDNotReady(t *testing.T) {
	suffixes := &fakeSuffixes{ready: false}

	// Until the resolver is ready, ".tld" is literal text.
	tester, err := CompileGlob("http://www.google.tld/*", suffixes, nil)
	if err != nil {
		t.Fatalf("CompileGlob: %v", err)
	}
	if !tester("http://www.google.tld/x") {
		t.Errorf("expected literal .tld match while resolver is not ready")
	}
	if tester("http://www.google.com/x") {
		t.Errorf("expected no suffix expansion while resolver is not ready")
	}
}
