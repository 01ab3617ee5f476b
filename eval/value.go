package eval

import (
	"strconv"
	"strings"

	"github.com/perchance-go/perchance/ast"
	"github.com/perchance-go/perchance/compile"
)

// Value is the runtime sum type produced by evaluating an expression. It
// is implemented as a closed set of concrete types rather than an
// inheritance hierarchy: operations switch on the dynamic type, never on
// an embedded "kind" tag.
type Value interface {
	value()
}

// Text is a plain string value.
type Text string

// Number is a finite double. The spec reserves arithmetic beyond range
// generation and comparison, so Number carries no arithmetic methods of
// its own.
type Number float64

// Boolean is the result of a comparison or logical operator.
type Boolean bool

// ListHandle references a compiled list. Rendering it as text triggers
// weighted item selection; property and method access operate
// structurally on List/SubLists/Properties.
type ListHandle struct {
	Prog *compile.CompiledProgram
	List *ast.List
}

// ItemHandle is one already-selected item. Re-reading its body
// re-evaluates any inline blocks inside it (no caching of rendered text).
type ItemHandle struct {
	Prog *compile.CompiledProgram
	Item *ast.Item
	// EnclosingList is the list the item was drawn from, used to resolve
	// the list's own properties when an ItemHandle's dotted access misses
	// the item's own sub-lists.
	EnclosingList *ast.List
}

// Array is an ordered sequence of Values, the result of selectAll,
// selectMany, and selectUnique.
type Array struct {
	Items []Value
}

// CursorValue wraps a pointer to a Cursor so that copies of the value
// share the same underlying mutable state; only a fresh consumableList()
// call produces an independent Cursor.
type CursorValue struct {
	C *Cursor
}

// ImportedGeneratorValue is a handle to another CompiledProgram obtained
// through the Loader, addressable by its top-level list names.
type ImportedGeneratorValue struct {
	Prog *compile.CompiledProgram
	Name string
}

func (Text) value()                   {}
func (Number) value()                 {}
func (Boolean) value()                {}
func (ListHandle) value()             {}
func (ItemHandle) value()             {}
func (Array) value()                  {}
func (CursorValue) value()            {}
func (ImportedGeneratorValue) value() {}

// formatNumber renders a Number the way the template language expects:
// integral values with no trailing ".0", everything else with the
// shortest round-tripping decimal representation.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// renderText implements evaluate_to_text's value-rendering rule: List →
// random text (weighted selection); Array → join by space; Number →
// decimal; Boolean → "true"/"false"; Text → itself; ItemHandle → its
// body rendered as text; Cursor → draw-and-render; ImportedGenerator →
// its own "output" list rendered as text.
func (e *Evaluator) renderText(v Value) (string, error) {
	switch t := v.(type) {
	case Text:
		return string(t), nil
	case Number:
		return formatNumber(float64(t)), nil
	case Boolean:
		if t {
			return "true", nil
		}
		return "false", nil
	case ListHandle:
		return e.renderListAsText(t.Prog, t.List)
	case ItemHandle:
		return e.renderItemAsText(t.Prog, t.Item, t.EnclosingList)
	case Array:
		parts := make([]string, len(t.Items))
		for i, item := range t.Items {
			s, err := e.renderText(item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, " "), nil
	case CursorValue:
		item, err := t.C.draw(e.rng)
		if err != nil {
			return "", err
		}
		return e.renderItemAsText(t.C.Prog, item, t.C.List)
	case ImportedGeneratorValue:
		out := t.Prog.Output()
		if out == nil {
			return "", runtimeErrf("imported generator %q has no output list", t.Name)
		}
		return e.renderListAsText(t.Prog, out)
	default:
		return "", runtimeErrf("cannot render value of type %T as text", v)
	}
}

func (e *Evaluator) renderListAsText(prog *compile.CompiledProgram, list *ast.List) (string, error) {
	if list.Output != nil {
		return e.evalBody(prog, list.Output)
	}
	item, err := e.selectOneItem(prog, list)
	if err != nil {
		return "", err
	}
	return e.renderItemAsText(prog, item, list)
}

// renderItemAsText renders an item's body as text. If the item has no
// body of its own (a bare-identifier item with only attached sub-lists),
// the parser has already defaulted its body to a Literal of its own
// name, so no special case is needed here.
func (e *Evaluator) renderItemAsText(prog *compile.CompiledProgram, item *ast.Item, enclosing *ast.List) (string, error) {
	return e.evalBody(prog, item.Body)
}
