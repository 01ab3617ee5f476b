package parser

import "fmt"

// UnknownEscape records one backslash-escape sequence the parser does not
// recognize. Parse itself never rejects these (per the spec, an unknown
// escape is preserved verbatim as literal text); UnknownEscapes exists so
// the CLI's -lint-escapes mode can report them as an error when the
// strictEscapes config setting is also on.
type UnknownEscape struct {
	LineNo int
	Char   byte
}

func (u UnknownEscape) String() string {
	return fmt.Sprintf("line %d: unrecognized escape \\%c", u.LineNo, u.Char)
}

var knownEscapes = map[byte]bool{
	's': true, 't': true, '\\': true,
	'[': true, ']': true, '{': true, '}': true, '=': true, '^': true,
}

// UnknownEscapes scans source for backslash sequences decodeEscape does
// not special-case, without doing a full parse.
func UnknownEscapes(source string) []UnknownEscape {
	var found []UnknownEscape
	lineNo := 1
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			lineNo++
		case '\\':
			if i+1 < len(source) {
				c := source[i+1]
				if !knownEscapes[c] {
					found = append(found, UnknownEscape{LineNo: lineNo, Char: c})
				}
				i++
			}
		}
	}
	return found
}
