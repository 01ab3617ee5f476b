package compile

import "github.com/perchance-go/perchance/ast"

// validateList checks every reference reachable from l for an obviously
// undefined name. This is a pragmatic, not exhaustive, check (invariant
// I-1): an identifier is accepted if it names a top-level list, or if it
// could plausibly be a scope variable introduced anywhere in the same
// body by an Assign, or if the program uses any {import:...} at all (in
// which case an unresolvable bare name might come from an import whose
// contents are only known once the Loader runs). Anything else is a
// compile-time "undefined reference" error.
func validateList(l *ast.List, topNames map[string]bool, hasImports bool) error {
	for _, it := range l.Items {
		if err := validateBody(l.Name, it.Body, topNames, hasImports); err != nil {
			return err
		}
		for _, sub := range it.SubLists {
			if err := validateList(sub, topNames, hasImports); err != nil {
				return err
			}
		}
	}
	for _, p := range l.Properties {
		if err := validateBody(l.Name, p.Body, topNames, hasImports); err != nil {
			return err
		}
	}
	if l.Output != nil {
		if err := validateBody(l.Name, l.Output, topNames, hasImports); err != nil {
			return err
		}
	}
	for _, sub := range l.SubLists {
		if err := validateList(sub, topNames, hasImports); err != nil {
			return err
		}
	}
	return nil
}

func validateBody(listName string, body ast.Body, topNames map[string]bool, hasImports bool) error {
	bound := map[string]bool{}
	collectAssignedNames(body, bound)

	for _, part := range body {
		switch v := part.(type) {
		case ast.Reference:
			if err := validateExpr(listName, v.Expr, topNames, bound, hasImports); err != nil {
				return err
			}
		case ast.InlineBlock:
			for _, alt := range v.Alternatives {
				if err := validateBody(listName, alt.Body, topNames, hasImports); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// collectAssignedNames scans a body (shallowly through its top-level
// references) for every name ever bound by an Assign, so later references
// to that name within the same body are accepted.
func collectAssignedNames(body ast.Body, bound map[string]bool) {
	for _, part := range body {
		ref, ok := part.(ast.Reference)
		if !ok {
			continue
		}
		collectAssignedInExpr(ref.Expr, bound)
	}
}

func collectAssignedInExpr(e ast.Expr, bound map[string]bool) {
	switch v := e.(type) {
	case ast.Assign:
		bound[v.Name] = true
		collectAssignedInExpr(v.Expr, bound)
	case ast.Sequence:
		for _, sub := range v.Exprs {
			collectAssignedInExpr(sub, bound)
		}
	case ast.BinOp:
		collectAssignedInExpr(v.Left, bound)
		collectAssignedInExpr(v.Right, bound)
	case ast.UnaryNeg:
		collectAssignedInExpr(v.Operand, bound)
	case ast.Ternary:
		collectAssignedInExpr(v.Cond, bound)
		collectAssignedInExpr(v.Then, bound)
		collectAssignedInExpr(v.Else, bound)
	case ast.MethodCall:
		collectAssignedInExpr(v.Receiver, bound)
		for _, a := range v.Args {
			collectAssignedInExpr(a, bound)
		}
	case ast.PropertyAccess:
		collectAssignedInExpr(v.Target, bound)
	case ast.DynamicAccess:
		collectAssignedInExpr(v.Target, bound)
		collectAssignedInExpr(v.Key, bound)
	}
}

func validateExpr(listName string, e ast.Expr, topNames, bound map[string]bool, hasImports bool) error {
	switch v := e.(type) {
	case ast.Identifier:
		if topNames[v.Name] || bound[v.Name] || hasImports {
			return nil
		}
		return errIn(listName, v.Line, "undefined reference to %q", v.Name)
	case ast.PropertyAccess:
		return validateExpr(listName, v.Target, topNames, bound, hasImports)
	case ast.DynamicAccess:
		if err := validateExpr(listName, v.Target, topNames, bound, hasImports); err != nil {
			return err
		}
		return validateExpr(listName, v.Key, topNames, bound, hasImports)
	case ast.MethodCall:
		if err := validateExpr(listName, v.Receiver, topNames, bound, hasImports); err != nil {
			return err
		}
		for _, a := range v.Args {
			if err := validateExpr(listName, a, topNames, bound, hasImports); err != nil {
				return err
			}
		}
	case ast.Assign:
		return validateExpr(listName, v.Expr, topNames, bound, hasImports)
	case ast.Sequence:
		for _, sub := range v.Exprs {
			if err := validateExpr(listName, sub, topNames, bound, hasImports); err != nil {
				return err
			}
		}
	case ast.BinOp:
		if err := validateExpr(listName, v.Left, topNames, bound, hasImports); err != nil {
			return err
		}
		return validateExpr(listName, v.Right, topNames, bound, hasImports)
	case ast.UnaryNeg:
		return validateExpr(listName, v.Operand, topNames, bound, hasImports)
	case ast.Ternary:
		if err := validateExpr(listName, v.Cond, topNames, bound, hasImports); err != nil {
			return err
		}
		if err := validateExpr(listName, v.Then, topNames, bound, hasImports); err != nil {
			return err
		}
		return validateExpr(listName, v.Else, topNames, bound, hasImports)
	case ast.ImportRef:
		return nil
	}
	return nil
}
