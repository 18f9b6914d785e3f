// Package matcher decides whether a user script applies to a URL and whether
// a URL is blocked by the user-maintained blacklist. It owns the compiled
// rule state and both caching layers; the pure compilation lives in package
// pattern.
package matcher

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"scriptmatch/cache"
	"scriptmatch/pattern"
)

const defaultPatternCacheSize = 4096

// BlacklistSource supplies the persisted blacklist text for
// ResetBlacklist(nil). It is typically backed by the option store.
type BlacklistSource interface {
	BlacklistText() (string, error)
}

// Options configures an Engine. Every field may be left zero.
type Options struct {
	// Patterns memoizes compiled testers and regex test outcomes. Defaults
	// to an LRU store of defaultPatternCacheSize entries.
	Patterns cache.Store
	// ResultMaxChars bounds the blacklist result cache by cumulative URL
	// length. Defaults to 100000.
	ResultMaxChars int
	// Suffixes backs the ".tld" rule token. A nil resolver degrades ".tld"
	// rules to literal text.
	Suffixes pattern.SuffixResolver
	// Source backs ResetBlacklist(nil). Optional.
	Source BlacklistSource
}

// Engine is the matching engine. All exported methods are safe for
// concurrent use; the blacklist rule list is only replaced wholesale under
// the write lock.
type Engine struct {
	patterns cache.Store
	results  *cache.ResultCache
	suffixes pattern.SuffixResolver
	source   BlacklistSource

	mu    sync.RWMutex
	rules []*blacklistRule

	group         singleflight.Group
	patternCounts cache.Counters
}

// New creates an Engine. The blacklist starts empty; call ResetBlacklist to
// load rules.
func New(opts Options) (*Engine, error) {
	patterns := opts.Patterns
	if patterns == nil {
		var err error
		patterns, err = cache.NewLRU(defaultPatternCacheSize)
		if err != nil {
			return nil, err
		}
	}
	return &Engine{
		patterns: patterns,
		results:  cache.NewResultCache(opts.ResultMaxChars),
		suffixes: opts.Suffixes,
		source:   opts.Source,
	}, nil
}

// TestGlob reports whether url satisfies any of the glob rules. A malformed
// explicit "/…/" rule is a hard error.
func (e *Engine) TestGlob(url string, rules []string) (bool, error) {
	for _, rule := range rules {
		test, err := e.globTester(rule)
		if err != nil {
			return false, err
		}
		if test(url) {
			return true, nil
		}
	}
	return false, nil
}

// TestMatch reports whether url satisfies any of the match-pattern rules.
// Malformed rules match nothing.
func (e *Engine) TestMatch(url string, rules []string) bool {
	u, _ := pattern.DissectURL(url)
	for _, rule := range rules {
		if e.matchTester(rule)(u) {
			return true
		}
	}
	return false
}

// globTester returns the memoized compiled tester for a glob rule,
// compiling it at most once per cached rule text.
func (e *Engine) globTester(rule string) (pattern.Tester, error) {
	key := "re:" + rule
	if v, ok := e.patterns.Get(key); ok {
		e.patterns.Hit(key)
		e.patternCounts.RecordHit()
		return v.(pattern.Tester), nil
	}
	e.patternCounts.RecordMiss()
	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		test, err := pattern.CompileGlob(rule, e.suffixes, e.patterns)
		if err != nil {
			return nil, err
		}
		e.patterns.Put(key, test)
		return test, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(pattern.Tester), nil
}

// matchTester returns the memoized compiled tester for a match-pattern rule.
func (e *Engine) matchTester(rule string) pattern.URLTester {
	key := "match:" + rule
	if v, ok := e.patterns.Get(key); ok {
		e.patterns.Hit(key)
		e.patternCounts.RecordHit()
		return v.(pattern.URLTester)
	}
	e.patternCounts.RecordMiss()
	v, _, _ := e.group.Do(key, func() (interface{}, error) {
		test := pattern.CompileMatch(rule, e.suffixes, e.patterns)
		e.patterns.Put(key, test)
		return test, nil
	})
	return v.(pattern.URLTester)
}

// Stats is a snapshot of engine activity, exposed so callers can observe
// cache behavior without reaching into internals.
type Stats struct {
	BlacklistRules  int                   `json:"blacklist_rules"`
	ResultCache     cache.CounterSnapshot `json:"result_cache"`
	ResultCacheLen  int                   `json:"result_cache_len"`
	ResultCacheSize int                   `json:"result_cache_size"`
	PatternCache    cache.CounterSnapshot `json:"pattern_cache"`
}

// Stats returns current counters and sizes.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	ruleCount := len(e.rules)
	e.mu.RUnlock()
	return Stats{
		BlacklistRules:  ruleCount,
		ResultCache:     e.results.Stats(),
		ResultCacheLen:  e.results.Len(),
		ResultCacheSize: e.results.Size(),
		PatternCache:    e.patternCounts.Snapshot(),
	}
}
