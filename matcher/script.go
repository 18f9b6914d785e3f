package matcher

// RuleSet holds one set of per-category rule lists, in author order.
type RuleSet struct {
	Match        []string `json:"match"`
	Include      []string `json:"include"`
	Exclude      []string `json:"exclude"`
	ExcludeMatch []string `json:"excludeMatch"`
}

// Custom is the user-edited override of a script's declared rules. Each
// Orig* flag controls, independently per category, whether the script's own
// metadata list still applies after the user's list.
type Custom struct {
	RuleSet
	OrigMatch        bool `json:"origMatch"`
	OrigInclude      bool `json:"origInclude"`
	OrigExclude      bool `json:"origExclude"`
	OrigExcludeMatch bool `json:"origExcludeMatch"`
}

// Script carries what the evaluator needs of a user script: the user's
// overrides and the declared metadata rules.
type Script struct {
	Custom Custom  `json:"custom"`
	Meta   RuleSet `json:"meta"`
}

// mergeLists builds the effective list for one category: the custom list,
// followed by the metadata list only when the category's flag keeps it.
func mergeLists(custom, meta []string, useMeta bool) []string {
	if !useMeta || len(meta) == 0 {
		return custom
	}
	out := make([]string, 0, len(custom)+len(meta))
	out = append(out, custom...)
	return append(out, meta...)
}

// TestScript reports whether the script applies to url. A script with no
// effective match and no effective include rules applies everywhere; a nil
// script carries no rules at all and gets the same verdict. Otherwise any
// match-pattern or glob include hit makes it apply, and any exclude-match or
// exclude hit vetoes it regardless of the includes.
func (e *Engine) TestScript(url string, script *Script) (bool, error) {
	if script == nil {
		return true, nil
	}
	mat := mergeLists(script.Custom.Match, script.Meta.Match, script.Custom.OrigMatch)
	inc := mergeLists(script.Custom.Include, script.Meta.Include, script.Custom.OrigInclude)

	ok := len(mat) == 0 && len(inc) == 0
	if !ok {
		ok = e.TestMatch(url, mat)
	}
	if !ok {
		hit, err := e.TestGlob(url, inc)
		if err != nil {
			return false, err
		}
		ok = hit
	}
	if !ok {
		return false, nil
	}

	exm := mergeLists(script.Custom.ExcludeMatch, script.Meta.ExcludeMatch, script.Custom.OrigExcludeMatch)
	if e.TestMatch(url, exm) {
		return false, nil
	}
	exc := mergeLists(script.Custom.Exclude, script.Meta.Exclude, script.Custom.OrigExclude)
	hit, err := e.TestGlob(url, exc)
	if err != nil {
		return false, err
	}
	return !hit, nil
}
