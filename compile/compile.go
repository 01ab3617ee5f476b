// Package compile validates a parsed AST and prepares it for evaluation:
// it resolves every `{import:name}` marker to a program-level import slot,
// pre-computes weighted-selection tables for every list and every
// alternation block, and rejects undefined references and
// arity-mismatched method calls before the evaluator ever runs.
package compile

import (
	"fmt"

	"github.com/perchance-go/perchance/ast"
	"github.com/perchance-go/perchance/methods"
)

// CompiledProgram is an AST that has passed validation and carries the
// import-slot table the evaluator fills in lazily.
type CompiledProgram struct {
	Program     *ast.Program
	ImportNames []string // slot index -> generator name, in first-use order
	ImportIndex map[string]int
}

// Output returns the distinguished "output" list, or nil if the program
// does not define one.
func (cp *CompiledProgram) Output() *ast.List {
	return cp.Program.ListByName("output")
}

// Compile validates prog and returns a CompiledProgram ready for
// evaluation, or the first *Error found.
func Compile(prog *ast.Program) (*CompiledProgram, error) {
	cp := &CompiledProgram{
		Program:     prog,
		ImportIndex: map[string]int{},
	}

	for _, l := range prog.Lists {
		if err := cp.compileList(l); err != nil {
			return nil, err
		}
	}

	hasImports := len(cp.ImportNames) > 0
	topNames := map[string]bool{}
	for _, l := range prog.Lists {
		topNames[l.Name] = true
	}
	for _, l := range prog.Lists {
		if err := validateList(l, topNames, hasImports); err != nil {
			return nil, err
		}
	}

	return cp, nil
}

func (cp *CompiledProgram) importSlot(name string) int {
	if idx, ok := cp.ImportIndex[name]; ok {
		return idx
	}
	idx := len(cp.ImportNames)
	cp.ImportNames = append(cp.ImportNames, name)
	cp.ImportIndex[name] = idx
	return idx
}

func (cp *CompiledProgram) compileList(l *ast.List) error {
	weights := make([]float64, len(l.Items))
	for i, it := range l.Items {
		weights[i] = it.Weight
	}
	total, cumulative, err := weightTable(weights)
	if err != nil {
		return errIn(l.Name, l.Line, "%s", err)
	}
	l.TotalWeight = total
	l.CumulativeWeights = cumulative

	for _, it := range l.Items {
		if err := cp.compileBody(l.Name, it.Body); err != nil {
			return err
		}
		for _, sub := range it.SubLists {
			if err := cp.compileList(sub); err != nil {
				return err
			}
		}
	}
	for _, p := range l.Properties {
		if err := cp.compileBody(l.Name, p.Body); err != nil {
			return err
		}
	}
	if l.Output != nil {
		if err := cp.compileBody(l.Name, l.Output); err != nil {
			return err
		}
	}
	for _, sub := range l.SubLists {
		if err := cp.compileList(sub); err != nil {
			return err
		}
	}
	return nil
}

// compileBody walks a body's content parts, computing alternation weight
// tables and assigning import slots. It mutates body in place.
func (cp *CompiledProgram) compileBody(listName string, body ast.Body) error {
	for i := range body {
		switch v := body[i].(type) {
		case ast.InlineBlock:
			if v.Kind == ast.InlineAlternation {
				weights := make([]float64, len(v.Alternatives))
				for j, a := range v.Alternatives {
					weights[j] = a.Weight
				}
				total, cumulative, err := weightTable(weights)
				if err != nil {
					return errIn(listName, v.Line, "%s", err)
				}
				v.AltTotal = total
				v.AltCumulative = cumulative
				body[i] = v
				for _, alt := range v.Alternatives {
					if err := cp.compileBody(listName, alt.Body); err != nil {
						return err
					}
				}
			}
		case ast.Import:
			v.SlotIndex = cp.importSlot(v.Name)
			body[i] = v
		case ast.Reference:
			if err := cp.compileExpr(listName, v.Expr); err != nil {
				return err
			}
		}
	}
	return nil
}

// compileExpr recurses into an expression tree to find nested references
// (method-call args, sequence elements, etc.) that themselves might
// contain imports or need arity checks. Expressions don't contain bodies
// except indirectly, so this validates method arity and assigns an import
// slot to every `import:NAME` expression; weight tables live only in
// bodies.
func (cp *CompiledProgram) compileExpr(listName string, e ast.Expr) error {
	switch v := e.(type) {
	case ast.MethodCall:
		if err := checkArity(listName, v); err != nil {
			return err
		}
		if err := cp.compileExpr(listName, v.Receiver); err != nil {
			return err
		}
		for _, a := range v.Args {
			if err := cp.compileExpr(listName, a); err != nil {
				return err
			}
		}
	case ast.PropertyAccess:
		return cp.compileExpr(listName, v.Target)
	case ast.DynamicAccess:
		if err := cp.compileExpr(listName, v.Target); err != nil {
			return err
		}
		return cp.compileExpr(listName, v.Key)
	case ast.Assign:
		return cp.compileExpr(listName, v.Expr)
	case ast.Sequence:
		for _, sub := range v.Exprs {
			if err := cp.compileExpr(listName, sub); err != nil {
				return err
			}
		}
	case ast.BinOp:
		if err := cp.compileExpr(listName, v.Left); err != nil {
			return err
		}
		return cp.compileExpr(listName, v.Right)
	case ast.UnaryNeg:
		return cp.compileExpr(listName, v.Operand)
	case ast.Ternary:
		if err := cp.compileExpr(listName, v.Cond); err != nil {
			return err
		}
		if err := cp.compileExpr(listName, v.Then); err != nil {
			return err
		}
		return cp.compileExpr(listName, v.Else)
	case ast.ImportRef:
		cp.importSlot(v.Name)
	}
	return nil
}

func checkArity(listName string, call ast.MethodCall) error {
	if call.Method == "selectMany" && len(call.Args) == 2 {
		return errIn(listName, call.Line, "selectMany(min, max) is reserved but not implemented")
	}
	spec, ok := methods.Lookup(call.Method)
	if !ok {
		// Not a recognized method name: it is not rejected here; at
		// evaluation time callMethod fails it as an unknown method.
		return nil
	}
	n := len(call.Args)
	if n < spec.MinArgs || n > spec.MaxArgs {
		return errIn(listName, call.Line, "method %q called with %d argument(s), expected %d", call.Method, n, spec.MinArgs)
	}
	return nil
}

// weightTable computes a cumulative-weight table over weights, enforcing
// invariant I-2: every weight must be positive, and the cumulative array
// must be strictly increasing.
func weightTable(weights []float64) (total float64, cumulative []float64, err error) {
	if len(weights) == 0 {
		return 0, nil, nil
	}
	cumulative = make([]float64, len(weights))
	for i, w := range weights {
		if w <= 0 {
			return 0, nil, fmt.Errorf("item weight must be positive, got %v", w)
		}
		total += w
		cumulative[i] = total
	}
	return total, cumulative, nil
}
