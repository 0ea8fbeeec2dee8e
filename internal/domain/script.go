package domain

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// ScriptMixed is returned when no single writing system dominates the title
// prefix, including the edge case of a prefix with no letters at all.
const ScriptMixed = "MIXED"

const scriptPrefixLen = 10

// DetectScript classifies the dominant writing system of a title by the first
// word of the Unicode character name of each letter in its first 10 runes
// (e.g. LATIN, CYRILLIC, HANGUL, CJK). A system must cover at least half of
// the prefix to win; ties break on first appearance.
func DetectScript(text string) string {
	prefix := []rune(html.UnescapeString(text))
	if len(prefix) > scriptPrefixLen {
		prefix = prefix[:scriptPrefixLen]
	}
	if len(prefix) == 0 {
		return ScriptMixed
	}

	counts := map[string]int{}
	var order []string
	for _, r := range prefix {
		if !unicode.IsLetter(r) {
			continue
		}
		system := writingSystem(r)
		if system == "" {
			continue
		}
		if _, ok := counts[system]; !ok {
			order = append(order, system)
		}
		counts[system]++
	}

	best, bestCount := "", 0
	for _, system := range order {
		if counts[system] > bestCount {
			best, bestCount = system, counts[system]
		}
	}

	if bestCount*2 < len(prefix) {
		return ScriptMixed
	}
	return best
}

// writingSystem reduces a rune to the leading word of its Unicode name.
// Ideographs and Hangul syllables carry ranged placeholder names such as
// "<CJK Ideograph>", so brackets are stripped before taking the first word.
func writingSystem(r rune) string {
	name := strings.Trim(runenames.Name(r), "<>")
	if name == "" {
		return ""
	}
	system, _, _ := strings.Cut(name, " ")
	return strings.ToUpper(strings.TrimSuffix(system, ","))
}
