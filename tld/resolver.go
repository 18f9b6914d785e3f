package tld

import (
	"strings"
	"sync"

	radix "github.com/hashicorp/go-immutable-radix"
	"golang.org/x/net/publicsuffix"
)

// Resolver answers public-suffix queries for the ".tld" rule token.
//
// A Resolver starts out not ready: rules containing ".tld" compile as plain
// literal text until Load is called. This mirrors the suffix list being
// delivered asynchronously by the host application; nothing here blocks on it.
type Resolver struct {
	mu    sync.RWMutex
	ready bool
	// custom holds operator-supplied suffixes, keyed by reversed labels so
	// related suffixes share prefixes (e.g. "uk.co", "uk.org").
	custom *radix.Tree
}

// NewResolver returns a Resolver that is not ready yet.
func NewResolver() *Resolver {
	return &Resolver{custom: radix.New()}
}

// Load marks the resolver ready and installs extra suffixes honored on top
// of the compiled public suffix list. It may be called again to extend the
// overlay; readiness never flips back.
func (r *Resolver) Load(custom []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tree := r.custom
	for _, s := range custom {
		s = strings.ToLower(strings.Trim(strings.TrimSpace(s), "."))
		if s == "" {
			continue
		}
		tree, _, _ = tree.Insert([]byte(reverseLabels(s)), struct{}{})
	}
	r.custom = tree
	r.ready = true
}

// Ready reports whether suffix data is available. Callers must re-check on
// every compile; rules compiled before readiness keep their literal behavior.
func (r *Resolver) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// PublicSuffix returns the public suffix of domain. A domain that is itself
// a public suffix is returned unchanged, which is what the ".tld" token
// verification relies on.
func (r *Resolver) PublicSuffix(domain string) string {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))

	r.mu.RLock()
	_, exact := r.custom.Get([]byte(reverseLabels(domain)))
	r.mu.RUnlock()
	if exact {
		return domain
	}

	suffix, _ := publicsuffix.PublicSuffix(domain)
	return suffix
}

// reverseLabels turns "sub.example.com" into "com.example.sub".
func reverseLabels(domain string) string {
	parts := strings.Split(domain, ".")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}
