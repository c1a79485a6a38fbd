package analyzer

import (
	"strings"
	"unicode"
)

// stopWords are excluded from keyword extraction and clustering vocabulary.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"but": {}, "by": {}, "can": {}, "could": {}, "did": {}, "do": {},
	"does": {}, "doing": {}, "down": {}, "during": {}, "each": {}, "few": {},
	"for": {}, "from": {}, "further": {}, "had": {}, "has": {}, "have": {},
	"having": {}, "he": {}, "her": {}, "here": {}, "hers": {}, "him": {},
	"his": {}, "how": {}, "i": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "just": {}, "me": {}, "more": {}, "most": {},
	"my": {}, "no": {}, "nor": {}, "not": {}, "now": {}, "of": {}, "off": {},
	"on": {}, "once": {}, "only": {}, "or": {}, "other": {}, "our": {},
	"ours": {}, "out": {}, "over": {}, "own": {}, "same": {}, "she": {},
	"so": {}, "some": {}, "such": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "theirs": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {}, "to": {},
	"too": {}, "under": {}, "until": {}, "up": {}, "very": {}, "was": {},
	"we": {}, "were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "who": {}, "whom": {}, "why": {}, "will": {}, "with": {},
	"would": {}, "you": {}, "your": {}, "yours": {},
}

// IsStopWord reports whether the lowercase token is a stop word.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// Tokenize lowercases text and splits it into alphanumeric word tokens.
// Punctuation is treated as a separator; apostrophes inside words are kept
// so contractions survive as single tokens.
func Tokenize(text string) []string {
	var out []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, sb.String())
			sb.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == '\'' && sb.Len() > 0:
			sb.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return out
}

// ContentTokens returns tokens with stop words removed.
func ContentTokens(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

// WordCount counts whitespace-separated words without allocating tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SplitSentences breaks text into sentences on ., !, ? boundaries followed by
// whitespace or end of text. Newline-separated fragments without terminal
// punctuation count as sentences too. Whitespace-only fragments are dropped.
func SplitSentences(text string) []string {
	var out []string
	var sb strings.Builder
	runes := []rune(text)
	emit := func() {
		s := strings.TrimSpace(sb.String())
		sb.Reset()
		if s != "" {
			out = append(out, s)
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Swallow runs of terminal punctuation ("!!", "?!", "...").
			for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
				i++
				sb.WriteRune(runes[i])
			}
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				emit()
			}
		} else if r == '\n' {
			emit()
		}
	}
	emit()
	return out
}
