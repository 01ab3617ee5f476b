package eval

import (
	"github.com/perchance-go/perchance/ast"
	"github.com/perchance-go/perchance/compile"
	"github.com/perchance-go/perchance/methods"
)

// evalExprToValue is evaluate_to_value(expr, scope) from §4.3.4.
func (e *Evaluator) evalExprToValue(prog *compile.CompiledProgram, expr ast.Expr) (Value, error) {
	switch v := expr.(type) {
	case ast.Identifier:
		return e.lookupIdentifier(prog, v)
	case ast.StringLiteral:
		return Text(v.Value), nil
	case ast.NumberLiteral:
		return Number(v.Value), nil
	case ast.PropertyAccess:
		target, err := e.evalExprToValue(prog, v.Target)
		if err != nil {
			return nil, err
		}
		return e.dotAccess(target, v.Prop)
	case ast.DynamicAccess:
		target, err := e.evalExprToValue(prog, v.Target)
		if err != nil {
			return nil, err
		}
		key, err := e.evalExprToText(prog, v.Key)
		if err != nil {
			return nil, err
		}
		return e.dotAccess(target, key)
	case ast.MethodCall:
		receiver, err := e.evalExprToValue(prog, v.Receiver)
		if err != nil {
			return nil, err
		}
		args := make([]Value, len(v.Args))
		for i, a := range v.Args {
			av, err := e.evalExprToValue(prog, a)
			if err != nil {
				return nil, err
			}
			args[i] = av
		}
		return e.callMethod(receiver, v.Method, args)
	case ast.Assign:
		rhs, err := e.evalExprToValue(prog, v.Expr)
		if err != nil {
			return nil, err
		}
		return e.bindAssignment(prog, v.Name, rhs)
	case ast.Sequence:
		var last Value = Text("")
		for _, sub := range v.Exprs {
			val, err := e.evalExprToValue(prog, sub)
			if err != nil {
				return nil, err
			}
			last = val
		}
		return last, nil
	case ast.BinOp:
		return e.evalBinOp(prog, v)
	case ast.UnaryNeg:
		operand, err := e.evalExprToValue(prog, v.Operand)
		if err != nil {
			return nil, err
		}
		n, ok := operand.(Number)
		if !ok {
			return nil, runtimeErrf("unary '-' requires a number, got %T", operand)
		}
		return -n, nil
	case ast.Ternary:
		cond, err := e.evalExprToValue(prog, v.Cond)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(Boolean)
		if !ok {
			return nil, runtimeErrf("ternary condition must be boolean, got %T", cond)
		}
		if b {
			return e.evalExprToValue(prog, v.Then)
		}
		return e.evalExprToValue(prog, v.Else)
	case ast.ImportRef:
		imported, err := e.resolveImport(v.Name)
		if err != nil {
			return nil, err
		}
		return ImportedGeneratorValue{Prog: imported, Name: v.Name}, nil
	default:
		return nil, runtimeErrf("unsupported expression type %T", expr)
	}
}

// evalExprToText is evaluate_to_text: evaluate to value, then render.
func (e *Evaluator) evalExprToText(prog *compile.CompiledProgram, expr ast.Expr) (string, error) {
	val, err := e.evalExprToValue(prog, expr)
	if err != nil {
		return "", err
	}
	return e.renderText(val)
}

// lookupIdentifier implements "scope first, then top-level list table,
// then imported handles": a bare name can resolve to a variable bound
// earlier in the same item body, a top-level list of the program being
// evaluated, or a generator already pulled in by an earlier
// `{import:NAME}`/`import:NAME` use of the same name.
func (e *Evaluator) lookupIdentifier(prog *compile.CompiledProgram, id ast.Identifier) (Value, error) {
	if v, ok := e.scope.lookup(id.Name); ok {
		return v, nil
	}
	if list := prog.Program.ListByName(id.Name); list != nil {
		return ListHandle{Prog: prog, List: list}, nil
	}
	if cached, ok := e.imports[id.Name]; ok {
		return ImportedGeneratorValue{Prog: cached, Name: id.Name}, nil
	}
	return nil, runtimeErrf("undefined reference to %q", id.Name)
}

// bindAssignment implements "assignment captures a selection, not a lazy
// reference": binding a bare list performs its weighted draw once, at
// bind time, and the bound name resolves to that same ItemHandle on
// every later read — repeated reads of the name never re-select. A
// cursor produced by consumableList() is bound as-is so that later
// reads of the name draw from it one at a time, but the assignment
// reference itself is bind-only and renders as empty text rather than
// drawing.
func (e *Evaluator) bindAssignment(prog *compile.CompiledProgram, name string, rhs Value) (Value, error) {
	switch t := rhs.(type) {
	case ListHandle:
		item, err := e.selectOneItem(t.Prog, t.List)
		if err != nil {
			return nil, err
		}
		handle := ItemHandle{Prog: t.Prog, Item: item, EnclosingList: t.List}
		e.scope.bind(name, handle)
		return handle, nil
	case CursorValue:
		e.scope.bind(name, t)
		return Text(""), nil
	default:
		e.scope.bind(name, rhs)
		return rhs, nil
	}
}

// dotAccess implements property access `x.p` (§4.3.4) uniformly for
// PropertyAccess and DynamicAccess nodes. A name matching a zero-arg
// method in the methods table is dispatched as a method call first,
// since the parser cannot tell "call this argument-less method" and
// "read this property" apart at parse time (both are bare `.name`).
func (e *Evaluator) dotAccess(target Value, name string) (Value, error) {
	if spec, ok := methods.Lookup(name); ok && spec.MinArgs == 0 {
		return e.callMethod(target, name, nil)
	}

	switch v := target.(type) {
	case ItemHandle:
		if sub := v.Item.SubListByName(name); sub != nil {
			return ListHandle{Prog: v.Prog, List: sub}, nil
		}
		if v.EnclosingList != nil {
			if p := v.EnclosingList.PropertyByName(name); p != nil {
				text, err := e.evalBody(v.Prog, p.Body)
				if err != nil {
					return nil, err
				}
				return Text(text), nil
			}
		}
		return nil, runtimeErrf("item has no property or sub-list named %q", name)

	case ListHandle:
		if sub := v.List.SubListByName(name); sub != nil {
			return ListHandle{Prog: v.Prog, List: sub}, nil
		}
		if p := v.List.PropertyByName(name); p != nil {
			text, err := e.evalBody(v.Prog, p.Body)
			if err != nil {
				return nil, err
			}
			return Text(text), nil
		}
		return nil, runtimeErrf("list %q has no sub-list or property named %q", v.List.Name, name)

	case ImportedGeneratorValue:
		target := v.Prog.Program.ListByName(name)
		if target == nil {
			return nil, runtimeErrf("imported generator %q has no list named %q", v.Name, name)
		}
		return ListHandle{Prog: v.Prog, List: target}, nil

	default:
		return nil, runtimeErrf("cannot access property %q on value of type %T", name, target)
	}
}

func (e *Evaluator) evalBinOp(prog *compile.CompiledProgram, b ast.BinOp) (Value, error) {
	if b.Kind == ast.OpAnd || b.Kind == ast.OpOr {
		left, err := e.evalExprToValue(prog, b.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(Boolean)
		if !ok {
			return nil, runtimeErrf("'%s' requires boolean operands, got %T", binOpSymbol(b.Kind), left)
		}
		if b.Kind == ast.OpAnd && !bool(lb) {
			return Boolean(false), nil
		}
		if b.Kind == ast.OpOr && bool(lb) {
			return Boolean(true), nil
		}
		right, err := e.evalExprToValue(prog, b.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(Boolean)
		if !ok {
			return nil, runtimeErrf("'%s' requires boolean operands, got %T", binOpSymbol(b.Kind), right)
		}
		return rb, nil
	}

	left, err := e.evalExprToValue(prog, b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExprToValue(prog, b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Kind {
	case ast.OpEq:
		return Boolean(valuesEqual(left, right)), nil
	case ast.OpNe:
		return Boolean(!valuesEqual(left, right)), nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return compareOrdered(b.Kind, left, right)
	default:
		return nil, runtimeErrf("unsupported binary operator")
	}
}

func binOpSymbol(k ast.BinOpKind) string {
	switch k {
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	default:
		return "?"
	}
}

// valuesEqual implements == / != across the value model: Numbers compare
// numerically, Text/Boolean compare by underlying value, and anything
// else (handles, arrays, cursors) always compares unequal.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	default:
		return false
	}
}

func compareOrdered(kind ast.BinOpKind, a, b Value) (Value, error) {
	var cmp int
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return nil, runtimeErrf("cannot compare Number with %T", b)
		}
		switch {
		case av < bv:
			cmp = -1
		case av > bv:
			cmp = 1
		default:
			cmp = 0
		}
	case Text:
		bv, ok := b.(Text)
		if !ok {
			return nil, runtimeErrf("cannot compare Text with %T", b)
		}
		switch {
		case av < bv:
			cmp = -1
		case av > bv:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		return nil, runtimeErrf("relational operators require Number or Text operands, got %T", a)
	}

	switch kind {
	case ast.OpLt:
		return Boolean(cmp < 0), nil
	case ast.OpLe:
		return Boolean(cmp <= 0), nil
	case ast.OpGt:
		return Boolean(cmp > 0), nil
	case ast.OpGe:
		return Boolean(cmp >= 0), nil
	default:
		return nil, runtimeErrf("not a relational operator")
	}
}
