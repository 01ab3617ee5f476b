package parser

import (
	"regexp"
	"strings"

	"github.com/perchance-go/perchance/ast"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// matchPropertyAssign recognizes a "name = body" line: a bare identifier,
// whitespace, a single '=' (not "=="), then the property body text.
func matchPropertyAssign(raw string) (name, bodyText string, ok bool) {
	trimmed := strings.TrimLeft(raw, " \t")
	end := 0
	for end < len(trimmed) && isIdentCont(trimmed[end]) {
		end++
	}
	if end == 0 || !isIdentStart(trimmed[0]) {
		return "", "", false
	}
	name = trimmed[:end]
	rest := strings.TrimLeft(trimmed[end:], " \t")
	if len(rest) == 0 || rest[0] != '=' || (len(rest) > 1 && rest[1] == '=') {
		return "", "", false
	}
	return name, rest[1:], true
}

// parseTopLevel parses the whole program: every depth-0 line must be a
// list header (a bare identifier with a deeper block beneath it).
func parseTopLevel(lines []rawLine) (*ast.Program, error) {
	prog := &ast.Program{}
	seen := map[string]bool{}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if line.depth != 0 {
			return nil, errAt(line.lineNo, "unexpected indentation at top level")
		}
		name := strings.TrimSpace(line.content)
		if !identRe.MatchString(name) {
			return nil, errAt(line.lineNo, "expected a list name at the top level, got %q", line.content)
		}
		end := childExtent(lines, i)
		if end == i+1 {
			return nil, errAt(line.lineNo, "list %q has no items", name)
		}
		if seen[name] {
			return nil, errAt(line.lineNo, "duplicate list name %q", name)
		}
		seen[name] = true

		list, err := buildList(name, lines[i+1:end], line.lineNo)
		if err != nil {
			return nil, err
		}
		prog.Lists = append(prog.Lists, list)
		i = end
	}
	return prog, nil
}

// buildList interprets a block of lines (all directly nested one level
// under a list header) into that list's items, properties, and $output.
//
// Per the indentation rule, a nested block always attaches to "the
// immediately preceding item": a bare-identifier line with its own
// children is parsed as an item (its body defaulting to its own name)
// whose children become that item's attached sub-lists (ast.Item.SubLists),
// not a named sub-list of the enclosing list. ast.List.SubLists is
// structurally present for data-model fidelity but is never populated
// directly by this grammar.
func buildList(name string, lines []rawLine, headerLine int) (*ast.List, error) {
	list := &ast.List{Name: name, Line: headerLine}

	i := 0
	for i < len(lines) {
		line := lines[i]
		end := childExtent(lines, i)
		children := lines[i+1 : end]
		raw := line.content

		if m, ok := matchOutputAssign(raw); ok {
			if list.Output != nil {
				return nil, errAt(line.lineNo, "list %q has more than one $output", name)
			}
			body, err := parseBody(stripComment(m), line.lineNo)
			if err != nil {
				return nil, err
			}
			list.Output = body
			i = end
			continue
		}

		if propName, propBody, ok := matchPropertyAssign(raw); ok {
			body, err := parseBody(stripComment(propBody), line.lineNo)
			if err != nil {
				return nil, err
			}
			list.Properties = append(list.Properties, &ast.Property{Name: propName, Body: body, Line: line.lineNo})
			i = end
			continue
		}

		item, err := buildItem(raw, children, line.lineNo)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
		i = end
	}
	return list, nil
}

// buildItem interprets one item line (plus any nested sub-lists beneath
// it) into an ast.Item: comment stripped, optional trailing weight
// extracted, then the remainder parsed as a body.
func buildItem(raw string, children []rawLine, lineNo int) (*ast.Item, error) {
	text := stripComment(raw)
	rest, weight, hasWeight, err := extractTrailingWeight(text)
	if err != nil {
		return nil, err
	}
	if !hasWeight {
		weight = 1.0
	}
	// Weight positivity (invariant I-2) is enforced at compile time, not
	// here, matching the spec's "rejected at compile time" wording.

	body, err := parseBody(rest, lineNo)
	if err != nil {
		return nil, err
	}

	item := &ast.Item{Body: body, Weight: weight, Line: lineNo}
	seenSubList := map[string]bool{}
	i := 0
	for i < len(children) {
		line := children[i]
		end := childExtent(children, i)
		name := strings.TrimSpace(line.content)
		if !identRe.MatchString(name) {
			return nil, errAt(line.lineNo, "expected a sub-list name nested under an item, got %q", line.content)
		}
		if seenSubList[name] {
			return nil, errAt(line.lineNo, "duplicate sub-list name %q", name)
		}
		seenSubList[name] = true
		sub, err := buildList(name, children[i+1:end], line.lineNo)
		if err != nil {
			return nil, err
		}
		item.SubLists = append(item.SubLists, sub)
		i = end
	}
	return item, nil
}

// matchOutputAssign recognizes a "$output = body" line.
func matchOutputAssign(raw string) (bodyText string, ok bool) {
	const prefix = "$output"
	trimmed := strings.TrimLeft(raw, " \t")
	if !strings.HasPrefix(trimmed, prefix) {
		return "", false
	}
	rest := strings.TrimLeft(trimmed[len(prefix):], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", false
	}
	return strings.TrimPrefix(rest, "="), true
}
