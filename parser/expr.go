package parser

import (
	"github.com/perchance-go/perchance/ast"
)

// parseExpr parses the text inside a single `[...]` reference into an
// expression tree, following the precedence chain from the spec (high to
// low): unary negation; reserved multiplicative operators (rejected);
// relational; equality; `&&`; `||`; ternary; and top-level
// assignment/sequence.
func parseExpr(s string, lineNo int) (ast.Expr, error) {
	toks, err := lexExpr(s, lineNo)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks, lineNo: lineNo}
	e, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, errAt(lineNo, "unexpected trailing token %q in expression", p.cur().text)
	}
	return e, nil
}

type exprParser struct {
	toks   []token
	pos    int
	lineNo int
}

func (p *exprParser) cur() token  { return p.toks[p.pos] }
func (p *exprParser) advance()    { p.pos++ }

func (p *exprParser) expect(k tokKind, what string) error {
	if p.cur().kind != k {
		return errAt(p.lineNo, "expected %s", what)
	}
	p.advance()
	return nil
}

// parseSequence handles the top-level comma-separated sequence; each
// element may itself be an assignment.
func (p *exprParser) parseSequence() (ast.Expr, error) {
	first, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokComma {
		return first, nil
	}
	exprs := []ast.Expr{first}
	for p.cur().kind == tokComma {
		p.advance()
		next, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}
	return ast.Sequence{Exprs: exprs}, nil
}

// parseAssign handles `name = expr`; anything else falls through to the
// ternary level.
func (p *exprParser) parseAssign() (ast.Expr, error) {
	if p.cur().kind == tokIdent && p.toks[p.pos+1].kind == tokAssignEq {
		name := p.cur().text
		p.advance()
		p.advance()
		rhs, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return ast.Assign{Name: name, Expr: rhs, Line: p.lineNo}, nil
	}
	return p.parseTernary()
}

func (p *exprParser) parseTernary() (ast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokQuestion {
		return cond, nil
	}
	p.advance()
	thenE, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokColon, "':' in ternary expression"); err != nil {
		return nil, err
	}
	elseE, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return ast.Ternary{Cond: cond, Then: thenE, Else: elseE, Line: p.lineNo}, nil
}

func (p *exprParser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokOrOr {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Kind: ast.OpOr, Left: left, Right: right, Line: p.lineNo}
	}
	return left, nil
}

func (p *exprParser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokAndAnd {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Kind: ast.OpAnd, Left: left, Right: right, Line: p.lineNo}
	}
	return left, nil
}

func (p *exprParser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var kind ast.BinOpKind
		switch p.cur().kind {
		case tokEq:
			kind = ast.OpEq
		case tokNe:
			kind = ast.OpNe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Kind: kind, Left: left, Right: right, Line: p.lineNo}
	}
}

func (p *exprParser) parseRelational() (ast.Expr, error) {
	left, err := p.parseMultiplicativeReserved()
	if err != nil {
		return nil, err
	}
	for {
		var kind ast.BinOpKind
		switch p.cur().kind {
		case tokLt:
			kind = ast.OpLt
		case tokLe:
			kind = ast.OpLe
		case tokGt:
			kind = ast.OpGt
		case tokGe:
			kind = ast.OpGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicativeReserved()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Kind: kind, Left: left, Right: right, Line: p.lineNo}
	}
}

// parseMultiplicativeReserved rejects '*', '/', '%' with a clear error:
// the spec reserves them but does not implement arithmetic beyond range
// generation and comparison.
func (p *exprParser) parseMultiplicativeReserved() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	switch p.cur().kind {
	case tokStar, tokSlash, tokPercent:
		return nil, errAt(p.lineNo, "operator %q is reserved and not implemented", p.cur().text)
	}
	return left, nil
}

func (p *exprParser) parseUnary() (ast.Expr, error) {
	if p.cur().kind == tokMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryNeg{Operand: operand, Line: p.lineNo}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// `.prop`, `.method(args)`, and `[dynamicKey]` suffixes.
func (p *exprParser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().kind {
		case tokDot:
			p.advance()
			if p.cur().kind != tokIdent {
				return nil, errAt(p.lineNo, "expected identifier after '.'")
			}
			name := p.cur().text
			p.advance()
			if p.cur().kind == tokLParen {
				p.advance()
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				e = ast.MethodCall{Receiver: e, Method: name, Args: args, Line: p.lineNo}
			} else {
				e = ast.PropertyAccess{Target: e, Prop: name, Line: p.lineNo}
			}
		case tokLBracket:
			p.advance()
			key, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokRBracket, "']'"); err != nil {
				return nil, err
			}
			e = ast.DynamicAccess{Target: e, Key: key, Line: p.lineNo}
		default:
			return e, nil
		}
	}
}

func (p *exprParser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.cur().kind == tokRParen {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *exprParser) parsePrimary() (ast.Expr, error) {
	switch p.cur().kind {
	case tokIdent:
		name := p.cur().text
		if name == "import" && p.toks[p.pos+1].kind == tokColon {
			p.advance()
			p.advance()
			if p.cur().kind != tokIdent {
				return nil, errAt(p.lineNo, "expected generator name after 'import:'")
			}
			genName := p.cur().text
			p.advance()
			return ast.ImportRef{Name: genName, Line: p.lineNo}, nil
		}
		p.advance()
		return ast.Identifier{Name: name, Line: p.lineNo}, nil
	case tokNumber:
		n := p.cur().num
		p.advance()
		return ast.NumberLiteral{Value: n}, nil
	case tokString:
		s := p.cur().text
		p.advance()
		return ast.StringLiteral{Value: s}, nil
	case tokLParen:
		p.advance()
		e, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, errAt(p.lineNo, "unexpected token %q in expression", p.cur().text)
	}
}
