package parser

import (
	"strconv"
	"strings"

	"github.com/perchance-go/perchance/ast"
)

// stripComment truncates a raw (pre-escape) line at the first unescaped
// "//" and trims the trailing whitespace left behind.
func stripComment(raw string) string {
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] == '/' && raw[i+1] == '/' && (i == 0 || raw[i-1] != '\\') {
			return strings.TrimRight(raw[:i], " \t")
		}
	}
	return raw
}

// extractTrailingWeight looks for an unescaped trailing "^NUMBER" on a raw
// (pre-escape) line and, if present, returns the line with it removed and
// the parsed weight. ok is false if no trailing weight marker was found.
func extractTrailingWeight(raw string) (rest string, weight float64, ok bool, err error) {
	trimmed := strings.TrimRight(raw, " \t")
	idx := strings.LastIndexByte(trimmed, '^')
	if idx < 0 {
		return raw, 0, false, nil
	}
	if idx > 0 && trimmed[idx-1] == '\\' {
		return raw, 0, false, nil
	}
	numText := trimmed[idx+1:]
	if numText == "" {
		return raw, 0, false, nil
	}
	n, perr := strconv.ParseFloat(numText, 64)
	if perr != nil {
		return raw, 0, false, nil
	}
	return strings.TrimRight(trimmed[:idx], " \t"), n, true, nil
}

// bodyParser scans a single raw body string (post comment/weight
// stripping) into a sequence of ContentParts.
type bodyParser struct {
	s      string
	lineNo int
}

func parseBody(raw string, lineNo int) (ast.Body, error) {
	bp := &bodyParser{s: raw, lineNo: lineNo}
	body, err := bp.parse(len(raw))
	if err != nil {
		return nil, err
	}
	return trimBody(body), nil
}

// parse scans from the current position up to (not including) end,
// returning the parsed ContentParts.
func (bp *bodyParser) parse(end int) (ast.Body, error) {
	var body ast.Body
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			body = append(body, ast.Literal{Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	s := bp.s
	for i < end {
		c := s[i]
		switch {
		case c == '\\':
			repl, consumed := decodeEscape(s, i+1)
			lit.WriteString(repl)
			i += 1 + consumed
		case c == '[':
			flush()
			ref, next, err := bp.parseReference(i)
			if err != nil {
				return nil, err
			}
			body = append(body, ref)
			i = next
		case c == '{':
			flush()
			part, next, err := bp.parseBrace(i)
			if err != nil {
				return nil, err
			}
			body = append(body, part)
			i = next
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return body, nil
}

// matchBracket finds the index of the ']' matching the '[' at openIdx,
// accounting for nested (escape-aware) brackets.
func matchBracket(s string, openIdx int, open, close byte) (int, bool) {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

func (bp *bodyParser) parseReference(openIdx int) (ast.Reference, int, error) {
	closeIdx, ok := matchBracket(bp.s, openIdx, '[', ']')
	if !ok {
		return ast.Reference{}, 0, errAt(bp.lineNo, "unterminated '[' ")
	}
	inner := bp.s[openIdx+1 : closeIdx]
	expr, err := parseExpr(inner, bp.lineNo)
	if err != nil {
		return ast.Reference{}, 0, err
	}
	return ast.Reference{Expr: expr, Line: bp.lineNo}, closeIdx + 1, nil
}

func (bp *bodyParser) parseBrace(openIdx int) (ast.ContentPart, int, error) {
	closeIdx, ok := matchBracket(bp.s, openIdx, '{', '}')
	if !ok {
		return nil, 0, errAt(bp.lineNo, "unterminated '{'")
	}
	inner := bp.s[openIdx+1 : closeIdx]

	if name, isImport := parseImportMarker(inner); isImport {
		return ast.Import{Name: name, SlotIndex: -1, Line: bp.lineNo}, closeIdx + 1, nil
	}

	block, err := bp.parseInlineBlock(inner)
	if err != nil {
		return nil, 0, err
	}
	return block, closeIdx + 1, nil
}

func parseImportMarker(inner string) (string, bool) {
	const prefix = "import:"
	if !strings.HasPrefix(inner, prefix) {
		return "", false
	}
	name := strings.TrimSpace(inner[len(prefix):])
	if name == "" {
		return "", false
	}
	return name, true
}

// parseInlineBlock interprets the contents of a brace block: integer
// range, letter range, article/plural function, or alternation.
func (bp *bodyParser) parseInlineBlock(inner string) (ast.InlineBlock, error) {
	if lo, hi, ok := parseIntRange(inner); ok {
		return ast.InlineBlock{Kind: ast.InlineIntRange, RangeLo: lo, RangeHi: hi, Line: bp.lineNo}, nil
	}
	if kind, lo, hi, ok := parseLetterRange(inner); ok {
		return ast.InlineBlock{Kind: kind, RangeLo: lo, RangeHi: hi, Line: bp.lineNo}, nil
	}
	if inner == "a" {
		return ast.InlineBlock{Kind: ast.InlineArticle, Line: bp.lineNo}, nil
	}
	if inner == "A" {
		return ast.InlineBlock{Kind: ast.InlineArticle, UpperCase: true, Line: bp.lineNo}, nil
	}
	if inner == "s" {
		return ast.InlineBlock{Kind: ast.InlinePlural, Line: bp.lineNo}, nil
	}

	alts, err := bp.splitAlternatives(inner)
	if err != nil {
		return ast.InlineBlock{}, err
	}
	return ast.InlineBlock{Kind: ast.InlineAlternation, Alternatives: alts, Line: bp.lineNo}, nil
}

// splitAlternatives splits a brace body on top-level (nesting-aware,
// escape-aware) '|' characters and parses each alternative's body and
// optional trailing "^weight".
func (bp *bodyParser) splitAlternatives(inner string) ([]ast.Alternative, error) {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch {
		case inner[i] == '\\':
			i++
		case inner[i] == '{' || inner[i] == '[':
			depth++
		case inner[i] == '}' || inner[i] == ']':
			depth--
		case inner[i] == '|' && depth == 0:
			parts = append(parts, inner[start:i])
			start = i + 1
		}
	}
	parts = append(parts, inner[start:])

	alts := make([]ast.Alternative, 0, len(parts))
	for _, p := range parts {
		text, weight, hasWeight, err := extractTrailingWeight(p)
		if err != nil {
			return nil, err
		}
		if !hasWeight {
			weight = 1.0
		}
		sub := &bodyParser{s: text, lineNo: bp.lineNo}
		body, err := sub.parse(len(text))
		if err != nil {
			return nil, err
		}
		alts = append(alts, ast.Alternative{Body: body, Weight: weight})
	}
	return alts, nil
}

func parseIntRange(inner string) (lo, hi int, ok bool) {
	idx := strings.IndexByte(inner[minInt(1, len(inner)):], '-')
	if idx < 0 {
		return 0, 0, false
	}
	idx += minInt(1, len(inner)) // account for an optional leading '-' on the low bound
	loText := inner[:idx]
	hiText := inner[idx+1:]
	loN, err1 := strconv.Atoi(loText)
	hiN, err2 := strconv.Atoi(hiText)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return loN, hiN, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func parseLetterRange(inner string) (kind ast.InlineKind, lo, hi int, ok bool) {
	if len(inner) != 3 || inner[1] != '-' {
		return 0, 0, 0, false
	}
	lo, hi = int(inner[0]), int(inner[2])
	if inner[0] >= 'a' && inner[0] <= 'z' && inner[2] >= 'a' && inner[2] <= 'z' {
		return ast.InlineLowerLetterRange, lo, hi, true
	}
	if inner[0] >= 'A' && inner[0] <= 'Z' && inner[2] >= 'A' && inner[2] <= 'Z' {
		return ast.InlineUpperLetterRange, lo, hi, true
	}
	return 0, 0, 0, false
}

// trimBody trims leading/trailing whitespace from a body's outer literal
// parts, the way item content is trimmed after escape decoding, then
// resolves any surviving "\s" placeholders back into literal spaces.
func trimBody(body ast.Body) ast.Body {
	if len(body) == 0 {
		return body
	}
	last := len(body) - 1
	if lit, ok := body[0].(ast.Literal); ok {
		text := lit.Text
		if last == 0 {
			text = trimBodyWhitespace(text)
		} else {
			text = strings.TrimLeftFunc(text, func(r rune) bool {
				return r != spaceMarker && isAsciiSpace(r)
			})
		}
		body[0] = ast.Literal{Text: text}
	}
	if lit, ok := body[last].(ast.Literal); ok {
		text := lit.Text
		if last == 0 {
			text = trimBodyWhitespace(text)
		} else {
			text = strings.TrimRightFunc(text, func(r rune) bool {
				return r != spaceMarker && isAsciiSpace(r)
			})
		}
		body[last] = ast.Literal{Text: text}
	}
	for i, part := range body {
		if lit, ok := part.(ast.Literal); ok {
			body[i] = ast.Literal{Text: resolveSpaceMarkers(lit.Text)}
		}
	}
	return body
}
