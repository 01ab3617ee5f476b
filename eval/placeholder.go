package eval

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Article and pluralization placeholders cannot be resolved at the point
// they're encountered in a body, because they depend on text that hasn't
// been produced yet (article) or that was produced by an arbitrary
// preceding ContentPart (plural). Per the design notes, both are emitted
// as sentinel markers during body evaluation and resolved in a single
// post-pass once the whole body's text is assembled. NUL is never
// produced by the parser (source text cannot contain it), so it is a
// safe delimiter.
const (
	pluralMarker     = "\x00s\x00"
	articleLowerMark = "\x00a\x00"
	articleUpperMark = "\x00A\x00"
)

// resolvePlaceholders runs the plural pass before the article pass:
// pluralization only looks backward (at text that can no longer change),
// while article resolution looks forward and must not see leftover
// plural markers when it peeks ahead.
func resolvePlaceholders(s string) string {
	s = resolvePluralMarkers(s)
	s = resolveArticleMarkers(s)
	return s
}

func resolvePluralMarkers(s string) string {
	var out strings.Builder
	rest := s
	for {
		i := strings.Index(rest, pluralMarker)
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		if !precedingTokenIsOne(out.String()) {
			out.WriteString("s")
		}
		rest = rest[i+len(pluralMarker):]
	}
	return out.String()
}

// precedingTokenIsOne scans whitespace-delimited tokens in s backward for
// the nearest one that is purely numeric; the placeholder resolves to
// "" only when that token is exactly "1". A body with no preceding
// numeric token at all resolves as non-singular ("s"), per "else s".
func precedingTokenIsOne(s string) bool {
	tokens := strings.Fields(s)
	for i := len(tokens) - 1; i >= 0; i-- {
		if isAllDigits(tokens[i]) {
			return tokens[i] == "1"
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func resolveArticleMarkers(s string) string {
	var out strings.Builder
	rest := s
	for {
		lowerIdx := strings.Index(rest, articleLowerMark)
		upperIdx := strings.Index(rest, articleUpperMark)
		idx, upper, markerLen := -1, false, 0
		switch {
		case lowerIdx < 0 && upperIdx < 0:
			out.WriteString(rest)
			return out.String()
		case lowerIdx < 0:
			idx, upper, markerLen = upperIdx, true, len(articleUpperMark)
		case upperIdx < 0:
			idx, upper, markerLen = lowerIdx, false, len(articleLowerMark)
		case lowerIdx < upperIdx:
			idx, upper, markerLen = lowerIdx, false, len(articleLowerMark)
		default:
			idx, upper, markerLen = upperIdx, true, len(articleUpperMark)
		}

		out.WriteString(rest[:idx])
		after := rest[idx+markerLen:]
		word := "a"
		if vowelInitial(after) {
			word = "an"
		}
		if upper {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		out.WriteString(word)
		rest = after
	}
}

// vowelInitial reports whether the first significant rune in s (after
// skipping leading whitespace and any still-unresolved article markers)
// is an ASCII vowel letter. Per the pinned Open Question decision, any
// other leading character (quote, digit, punctuation, non-ASCII) is
// treated as consonant-initial.
func vowelInitial(s string) bool {
	for len(s) > 0 {
		if strings.HasPrefix(s, articleLowerMark) {
			s = s[len(articleLowerMark):]
			continue
		}
		if strings.HasPrefix(s, articleUpperMark) {
			s = s[len(articleUpperMark):]
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			s = s[size:]
			continue
		}
		normalized := norm.NFC.String(string(r))
		if normalized == "" {
			return false
		}
		first, _ := utf8.DecodeRuneInString(normalized)
		switch first {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			return true
		default:
			return false
		}
	}
	return false
}
