// Package parser turns perchance template source text into an AST
// (package ast). It is an indentation-sensitive, escape-aware
// tokenizer/parser: depth-0 lines introduce named lists, deeper lines
// introduce items, properties, sub-lists, and the optional $output
// override, and a body's inline micro-syntax (`[...]` references,
// `{...}` blocks, `{import:name}` markers) is parsed inline as each body
// is encountered.
package parser

import "github.com/perchance-go/perchance/ast"

// Parse converts template source text into an AST, or returns an *Error
// describing the first syntactic problem found.
func Parse(source string) (*ast.Program, error) {
	lines, err := splitLines(source)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return &ast.Program{}, nil
	}
	return parseTopLevel(lines)
}
