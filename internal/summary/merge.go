package summary

import (
	"regexp"
	"strings"
	"unicode"
)

// Claim-type heuristics: each detects whether a text already conveys one of
// the four fact categories the synthetic sentence can contribute.
var (
	workClaimRe    = regexp.MustCompile(`(?i)worked at \d+ compan(y|ies)`)
	yearsClaimRe   = regexp.MustCompile(`(?i)(years?|months?) of experience|\b\d+(\.\d+)? (years?|months?)\b`)
	livedClaimRe   = regexp.MustCompile(`(?i)lived in \d+ countries|lived in (canada|united states)`)
	currentClaimRe = regexp.MustCompile(`(?i)(currently|presently)\s+\w+`)
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Merge combines the AI free-text summary with the synthetic sentence. The
// synthetic sentence is appended only when it contributes at least one claim
// type the AI summary lacks; then sentences are deduplicated by normalized
// key and the result truncated to three sentences.
func Merge(aiSummary, synthetic string) string {
	ai := clean(aiSummary)
	syn := clean(synthetic)

	switch {
	case ai != "" && syn == "":
		return ai
	case ai == "" && syn != "":
		return syn
	case ai == "" && syn == "":
		return ""
	}

	hasWork := workClaimRe.MatchString(ai)
	hasYears := yearsClaimRe.MatchString(ai)
	hasLived := livedClaimRe.MatchString(ai)
	hasCurrent := currentClaimRe.MatchString(ai)

	var extra []string
	if !hasWork || !hasYears || !hasLived || !hasCurrent {
		contributes := (!hasWork && workClaimRe.MatchString(syn)) ||
			(!hasYears && yearsClaimRe.MatchString(syn)) ||
			(!hasLived && livedClaimRe.MatchString(syn)) ||
			(!hasCurrent && currentClaimRe.MatchString(syn))
		if contributes {
			extra = splitSentences(syn)
		}
	}

	var out []string
	seen := map[string]struct{}{}
	for _, s := range append(splitSentences(ai), extra...) {
		key := sentenceKey(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return strings.Join(out, " ")
}

// clean collapses whitespace and removes space before terminal periods.
func clean(s string) string {
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " .", ".")
	return strings.TrimSpace(s)
}

// splitSentences splits on sentence-terminating punctuation followed by
// whitespace and a capital letter or digit.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// Look past the punctuation for whitespace then an upper/digit rune.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		if unicode.IsUpper(runes[j]) || unicode.IsDigit(runes[j]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = j
			i = j - 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// sentenceKey lowercases and strips everything but letters, digits, and
// spaces so near-identical sentences deduplicate.
func sentenceKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
