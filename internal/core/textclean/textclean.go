// Package textclean provides the deterministic content cleanup used before emission
// Pipeline order for post bodies
// 1 Markup strip keep text nodes only
// 2 UTF-8 repair drop invalid bytes
// 3 Remove format chars ZWJ ZWNJ FEFF etc and control bytes
// 4 Remove escape sequences a backslash and the rune that follows it
// 5 Trim surrounding whitespace
// Comment text skips step 1 since the API hands back plain text
package textclean

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// escapePattern matches a backslash followed by any rune, mirroring the
// escape sequences markdown sources leave behind
var escapePattern = regexp.MustCompile(`\\.`)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			runes.Remove(runes.In(unicode.Cc)), // strip control bytes
		)
	},
}

// Clean runs the full pipeline, markup stripping included. Idempotent
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return CleanText(StripMarkup(s))
}

// CleanText runs the pipeline without markup stripping. Idempotent
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err == nil {
		s = ns
	}

	s = StripEscapes(s)
	return strings.TrimSpace(s)
}

// StripEscapes removes backslash escape sequences (the backslash and the rune after it)
func StripEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	return escapePattern.ReplaceAllString(s, "")
}

// StripMarkup drops HTML tags and entities, keeping only text content.
// Plain text passes through unchanged apart from entity decoding
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	tz := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	depthSkip := 0
	for {
		tt := tz.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tz.TagName()
			if skipTag(string(name)) {
				depthSkip++
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			if skipTag(string(name)) && depthSkip > 0 {
				depthSkip--
			}
		case html.TextToken:
			if depthSkip == 0 {
				b.Write(tz.Text())
			}
		}
	}
}

// skipTag reports tags whose text content is never prose
func skipTag(name string) bool {
	switch name {
	case "script", "style":
		return true
	}
	return false
}
