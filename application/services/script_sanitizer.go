package services

import (
	"regexp"
	"strings"
)

// The sanitizer is a fixed, ordered rule table covering the known
// incompatibilities between typical model output and the renderer's accepted
// syntax. It is best-effort by design: each rule rewrites one enumerated
// pattern and nothing else, and applying the table twice changes nothing.

// asciiReplacements normalizes punctuation and symbols that break the
// renderer's source parsing.
var asciiReplacements = []struct {
	from string
	to   string
}{
	{"×", "*"},  // multiplication sign
	{"÷", "/"},  // division sign
	{"−", "-"},  // minus sign
	{"‒", "-"},  // figure dash
	{"–", "-"},  // en dash
	{"—", "-"},  // em dash
	{"“", `"`},  // left double quote
	{"”", `"`},  // right double quote
	{"‘", "'"},  // left single quote
	{"’", "'"},  // right single quote
	{"©", "(c)"},
	{"™", "(tm)"},
	{"°", "deg"},
}

type rewriteRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
}

var rewriteRules = []rewriteRule{
	{
		name:        "font_size argument to chained scale",
		pattern:     regexp.MustCompile(`get_text\(([^)]*?),\s*font_size\s*=\s*\d+\)`),
		replacement: `get_text(${1}).scale(0.7)`,
	},
	{
		name:        "color keyword to chained set_color",
		pattern:     regexp.MustCompile(`get_text\("([^"]+)"\s*,\s*color\s*=\s*([A-Z_]+)\)`),
		replacement: `get_text("${1}").set_color(${2})`,
	},
	{
		name:        "indexed emphasis target to whole object",
		pattern:     regexp.MustCompile(`Indicate\([^,\[\]]+\[\d+\][^)]*\)`),
		replacement: `Indicate(equation)`,
	},
	{
		name:        "indexed emphasis inside play call",
		pattern:     regexp.MustCompile(`\.play\(Indicate\([^,]+\[\d+\][^)]*\)\)`),
		replacement: `.play(Indicate(equation))`,
	},
}

// Sanitize applies the rule table to raw scene code. Pure function of its
// input; idempotent.
func Sanitize(code string) string {
	code = strings.ToValidUTF8(code, "")

	for _, r := range asciiReplacements {
		code = strings.ReplaceAll(code, r.from, r.to)
	}
	for _, rule := range rewriteRules {
		code = rule.pattern.ReplaceAllString(code, rule.replacement)
	}

	return code
}
