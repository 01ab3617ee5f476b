package eval

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/perchance-go/perchance/ast"
	"github.com/perchance-go/perchance/compile"
	"github.com/perchance-go/perchance/methods"
)

// listReceiver bundles a ListHandle's list with its own CompiledProgram,
// which may differ from the program the call site started evaluating in
// (an imported generator's lists still belong to the imported program).
type listReceiver struct {
	prog *compile.CompiledProgram
	list *ast.List
}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// callMethod dispatches a method call by the receiver's dynamic Value
// kind and the method name, per the table in §4.3.4. name is assumed to
// already be present in methods.Table (compile-time arity checking has
// already run for explicit MethodCall nodes; zero-arg calls routed here
// through bare PropertyAccess are checked again defensively).
func (e *Evaluator) callMethod(receiver Value, name string, args []Value) (Value, error) {
	spec, ok := methods.Lookup(name)
	if !ok {
		return nil, runtimeErrf("unknown method %q", name)
	}
	if len(args) < spec.MinArgs || len(args) > spec.MaxArgs {
		return nil, runtimeErrf("method %q called with %d argument(s), expected %d", name, len(args), spec.MinArgs)
	}

	switch spec.Kind {
	case methods.Selection:
		return e.callSelection(receiver, name, args)
	case methods.Join:
		return e.callJoin(receiver, args)
	case methods.TextTransform:
		return e.callTextTransform(receiver, name)
	case methods.Grammar:
		return e.callGrammar(receiver, name)
	default:
		return nil, runtimeErrf("method %q has no dispatch implementation", name)
	}
}

func (e *Evaluator) callSelection(receiver Value, name string, args []Value) (Value, error) {
	lr, ok := receiverList(receiver)
	if !ok {
		return nil, runtimeErrf("method %q requires a list receiver, got %T", name, receiver)
	}
	prog, list := lr.prog, lr.list

	switch name {
	case "selectOne":
		item, err := e.selectOneItem(prog, list)
		if err != nil {
			return nil, err
		}
		return ItemHandle{Prog: prog, Item: item, EnclosingList: list}, nil

	case "selectAll":
		items := make([]Value, len(list.Items))
		for i, it := range list.Items {
			items[i] = ItemHandle{Prog: prog, Item: it, EnclosingList: list}
		}
		return Array{Items: items}, nil

	case "selectMany":
		n, err := asNonNegativeInt(args[0])
		if err != nil {
			return nil, err
		}
		items := make([]Value, n)
		for i := 0; i < n; i++ {
			item, err := e.selectOneItem(prog, list)
			if err != nil {
				return nil, err
			}
			items[i] = ItemHandle{Prog: prog, Item: item, EnclosingList: list}
		}
		return Array{Items: items}, nil

	case "selectUnique":
		n, err := asNonNegativeInt(args[0])
		if err != nil {
			return nil, err
		}
		if n > len(list.Items) {
			return nil, runtimeErrf("selectUnique(%d) exceeds list %q length %d", n, list.Name, len(list.Items))
		}
		cursor := newCursor(prog, list)
		items := make([]Value, n)
		for i := 0; i < n; i++ {
			item, err := cursor.draw(e.rng)
			if err != nil {
				return nil, err
			}
			items[i] = ItemHandle{Prog: prog, Item: item, EnclosingList: list}
		}
		return Array{Items: items}, nil

	case "consumableList":
		return CursorValue{C: newCursor(prog, list)}, nil

	default:
		return nil, runtimeErrf("unrecognized selection method %q", name)
	}
}

func (e *Evaluator) callJoin(receiver Value, args []Value) (Value, error) {
	arr, ok := receiver.(Array)
	if !ok {
		return nil, runtimeErrf("joinItems requires an array receiver, got %T", receiver)
	}
	sep, err := e.renderText(args[0])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(arr.Items))
	for i, v := range arr.Items {
		s, err := e.renderText(v)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return Text(strings.Join(parts, sep)), nil
}

func (e *Evaluator) callTextTransform(receiver Value, name string) (Value, error) {
	text, err := e.renderText(receiver)
	if err != nil {
		return nil, err
	}
	switch name {
	case "upperCase":
		return Text(upperCaser.String(text)), nil
	case "lowerCase":
		return Text(lowerCaser.String(text)), nil
	case "titleCase":
		return Text(titleCaser.String(text)), nil
	case "sentenceCase":
		return Text(sentenceCase(text)), nil
	default:
		return nil, runtimeErrf("unrecognized text-transform method %q", name)
	}
}

func sentenceCase(s string) string {
	lowered := lowerCaser.String(s)
	if lowered == "" {
		return lowered
	}
	// Capitalize only the first rune; cases.Title would capitalize every word.
	_, size := utf8.DecodeRuneInString(lowered)
	upperFirst := upperCaser.String(lowered[:size])
	return upperFirst + lowered[size:]
}

func (e *Evaluator) callGrammar(receiver Value, name string) (Value, error) {
	text, err := e.renderText(receiver)
	if err != nil {
		return nil, err
	}
	switch name {
	case "pluralForm":
		return Text(PluralForm(text)), nil
	case "singularForm":
		return Text(SingularForm(text)), nil
	case "pastTense":
		return Text(PastTense(text)), nil
	case "presentTense":
		return Text(PresentTense(text)), nil
	case "futureTense":
		return Text(FutureTense(text)), nil
	case "possessiveForm":
		return Text(PossessiveForm(text)), nil
	case "negativeForm":
		return Text(NegativeForm(text)), nil
	default:
		return nil, runtimeErrf("unrecognized grammar method %q", name)
	}
}

// receiverList extracts the list (and its owning program) a selection
// method needs from a ListHandle receiver.
func receiverList(v Value) (listReceiver, bool) {
	if lh, ok := v.(ListHandle); ok {
		return listReceiver{prog: lh.Prog, list: lh.List}, true
	}
	return listReceiver{}, false
}

func asNonNegativeInt(v Value) (int, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, runtimeErrf("expected a numeric argument, got %T", v)
	}
	if n < 0 {
		return 0, runtimeErrf("expected a non-negative count, got %v", n)
	}
	return int(n), nil
}
