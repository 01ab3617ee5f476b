package parser

import "strings"

// spaceMarker is a private-use-area placeholder standing in for an escaped
// "\s" during body construction, so the final whitespace trim (which runs
// after escape decoding, per the item-body whitespace policy) can tell a
// literal escaped space apart from incidental surrounding whitespace.
const spaceMarker = rune(0xE000)

// decodeEscape interprets the character following a backslash at s[i] (s[i]
// is the character immediately after the backslash). It returns the
// replacement text and how many source bytes (of s, starting at i) were
// consumed by the escape's payload character.
func decodeEscape(s string, i int) (replacement string, consumed int) {
	if i >= len(s) {
		return "\\", 0
	}
	c := s[i]
	switch c {
	case 's':
		return string(spaceMarker), 1
	case 't':
		return "\t", 1
	case '\\', '[', ']', '{', '}', '=', '^':
		return string(c), 1
	default:
		// Unknown escape sequences are preserved verbatim: backslash + char.
		return "\\" + string(c), 1
	}
}

// isEscapedAt reports whether s[i] is escaped, i.e. immediately preceded
// by an odd-length run of backslashes, which tells "\]" (escaped
// bracket) apart from a real closer.
func isEscapedAt(s string, i int) bool {
	if i == 0 || s[i-1] != '\\' {
		return false
	}
	// Count consecutive backslashes immediately before i; odd count means
	// s[i] is escaped.
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// trimBodyWhitespace trims leading/trailing whitespace from already
// escape-decoded text, preserving runs introduced by "\s".
func trimBodyWhitespace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r != spaceMarker && isAsciiSpace(r)
	})
}

func isAsciiSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// resolveSpaceMarkers converts spaceMarker placeholders back into literal
// spaces once trimming has finished.
func resolveSpaceMarkers(s string) string {
	if !strings.ContainsRune(s, spaceMarker) {
		return s
	}
	return strings.ReplaceAll(s, string(spaceMarker), " ")
}
