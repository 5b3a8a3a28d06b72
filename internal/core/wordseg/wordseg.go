// Package wordseg turns slug-like community names into readable labels.
// Splitting happens on explicit delimiters, camelCase humps, and
// letter-digit boundaries; runs of plain lowercase are further divided by a
// longest-match pass over a small built-in lexicon when the whole run can be
// covered, otherwise the run is kept as is
package wordseg

import (
	"strings"
	"unicode"
)

// lexicon holds lowercase words common in community slugs.
// Only complete coverage of a run triggers lexicon splitting, so a sparse
// list is safe: unknown slugs pass through untouched
var lexicon = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"ask", "lemmy", "world", "news", "tech", "technology", "science",
		"gaming", "games", "game", "memes", "meme", "politics", "music",
		"movies", "books", "art", "food", "sports", "space", "linux",
		"open", "source", "programming", "rust", "android", "privacy",
		"europe", "canada", "usa", "uk", "no", "stupid", "questions",
		"main", "community", "communities", "shower", "thoughts", "today",
		"i", "learned", "mildly", "interesting", "self", "hosted", "the",
		"of", "and", "new", "free", "chat", "casual", "conversation",
	} {
		lexicon[w] = struct{}{}
	}
}

// Segment returns slug split into space-separated lowercase words
func Segment(slug string) string {
	return strings.Join(Split(slug), " ")
}

// Split returns the individual words of slug, lowercased
func Split(slug string) []string {
	if strings.TrimSpace(slug) == "" {
		return nil
	}
	var words []string
	for _, run := range splitRuns(slug) {
		lower := strings.ToLower(run)
		if isLowerLetters(lower) {
			if parts, ok := lexiconSplit(lower); ok {
				words = append(words, parts...)
				continue
			}
		}
		words = append(words, lower)
	}
	return words
}

// splitRuns breaks slug on delimiters, camelCase humps, and letter-digit boundaries
func splitRuns(slug string) []string {
	var runs []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, string(cur))
			cur = cur[:0]
		}
	}
	prev := rune(0)
	for _, r := range slug {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case prev != 0 && boundary(prev, r):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			prev = r
		} else {
			prev = 0
		}
	}
	flush()
	return runs
}

// boundary reports a word boundary between adjacent runes
func boundary(prev, r rune) bool {
	if unicode.IsLower(prev) && unicode.IsUpper(r) {
		return true
	}
	if unicode.IsLetter(prev) != unicode.IsLetter(r) {
		return true
	}
	return false
}

// lexiconSplit divides run into lexicon words by longest match; succeeds only
// when the entire run is covered
func lexiconSplit(run string) ([]string, bool) {
	if _, ok := lexicon[run]; ok {
		return []string{run}, true
	}
	var parts []string
	rest := run
	for rest != "" {
		matched := ""
		for end := len(rest); end > 0; end-- {
			if _, ok := lexicon[rest[:end]]; ok {
				matched = rest[:end]
				break
			}
		}
		if matched == "" {
			return nil, false
		}
		parts = append(parts, matched)
		rest = rest[len(matched):]
	}
	return parts, len(parts) > 1
}

// isLowerLetters reports whether s is entirely lowercase ASCII letters
func isLowerLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return len(s) > 0
}
