// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the compiler. Types here are pure data: no evaluation logic
// lives in this package.
package ast

// Program is an ordered mapping from list name to List. One entry may be
// named "output"; it is the default evaluation root.
type Program struct {
	Lists []*List
}

// ListByName returns the list with the given name, or nil if absent.
func (p *Program) ListByName(name string) *List {
	for _, l := range p.Lists {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// List is a named, ordered bag of items with optional properties,
// sub-lists, and an optional $output override.
type List struct {
	Name       string
	Items      []*Item
	Properties []*Property
	SubLists   []*List
	Output     Body // nil unless $output was assigned
	Line       int

	// TotalWeight/CumulativeWeights are filled in by the compiler
	// (package compile) from the Items' weights.
	TotalWeight       float64
	CumulativeWeights []float64
}

func (l *List) PropertyByName(name string) *Property {
	for _, p := range l.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (l *List) SubListByName(name string) *List {
	for _, s := range l.SubLists {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Property is a name bound to a template body, re-evaluated on every access.
type Property struct {
	Name string
	Body Body
	Line int
}

// Item is one alternative inside a list, with a weight and optional
// sub-lists nested one indent level deeper than the item itself.
type Item struct {
	Body     Body
	Weight   float64 // > 0; defaults to 1.0
	SubLists []*List
	Line     int
}

func (it *Item) SubListByName(name string) *List {
	for _, s := range it.SubLists {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Body is a sequence of ContentParts concatenated left-to-right.
type Body []ContentPart

// ContentPart is the sum type of things that can appear in a body.
type ContentPart interface {
	contentPart()
}

// Literal is already-escape-decoded literal text.
type Literal struct {
	Text string
}

// Reference is a bracketed expression `[expr]`.
type Reference struct {
	Expr Expr
	Line int
}

// InlineKind distinguishes the brace micro-syntax variants.
type InlineKind int

const (
	InlineAlternation InlineKind = iota
	InlineIntRange
	InlineLowerLetterRange
	InlineUpperLetterRange
	InlineArticle
	InlinePlural
)

// Alternative is one `|`-separated branch of an alternation, with an
// optional trailing `^weight`.
type Alternative struct {
	Body   Body
	Weight float64
}

// InlineBlock is a curly-brace construct. AltTotal/AltCumulative are filled
// in by the compiler (package compile) for InlineAlternation blocks; they
// hold the same precomputed weighted-selection table a List does.
type InlineBlock struct {
	Kind          InlineKind
	Alternatives  []Alternative // InlineAlternation
	RangeLo       int           // InlineIntRange / letter ranges (rune value for letters)
	RangeHi       int
	Line          int
	AltTotal      float64
	AltCumulative []float64

	// UpperCase records whether an InlineArticle block was written as
	// `{A}` rather than `{a}`, so the resolved placeholder keeps the
	// original's ASCII case.
	UpperCase bool
}

// Import is an `{import:name}` marker, resolved by the compiler to an
// import-slot index.
type Import struct {
	Name      string
	SlotIndex int // filled in by the compiler
	Line      int
}

func (Literal) contentPart()     {}
func (Reference) contentPart()   {}
func (InlineBlock) contentPart() {}
func (Import) contentPart()      {}

// Expr is the sum type of expressions that can appear inside `[...]`.
type Expr interface {
	expr()
}

type Identifier struct {
	Name string
	Line int
}

// PropertyAccess is a dot-chain `x.p`.
type PropertyAccess struct {
	Target Expr
	Prop   string
	Line   int
}

// DynamicAccess is `list[expr]`: a sub-list name computed at runtime.
type DynamicAccess struct {
	Target Expr
	Key    Expr
	Line   int
}

// MethodCall is `receiver.method(args...)`, parens optional when
// argument-less.
type MethodCall struct {
	Receiver Expr
	Method   string
	Args     []Expr
	Line     int
}

// Assign is `name = expr`.
type Assign struct {
	Name string
	Expr Expr
	Line int
}

// Sequence is `e1, e2, ..., en`; only the last contributes to text.
type Sequence struct {
	Exprs []Expr
}

type StringLiteral struct {
	Value string
}

// ImportRef is the `import:NAME` primary expression form usable inside a
// `[...]` reference (e.g. `[import:animal.color]`), distinct from the
// `{import:name}` content-part marker. Both resolve through the same
// evaluator import cache.
type ImportRef struct {
	Name string
	Line int
}

func (ImportRef) expr() {}

type NumberLiteral struct {
	Value float64
}

// BinOp covers comparison and logical binary operators.
type BinOpKind int

const (
	OpEq BinOpKind = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

type BinOp struct {
	Kind  BinOpKind
	Left  Expr
	Right Expr
	Line  int
}

type UnaryNeg struct {
	Operand Expr
	Line    int
}

// Ternary is `cond ? a : b`, right-associative.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
	Line int
}

func (Identifier) expr()     {}
func (PropertyAccess) expr() {}
func (DynamicAccess) expr()  {}
func (MethodCall) expr()     {}
func (Assign) expr()         {}
func (Sequence) expr()       {}
func (StringLiteral) expr()  {}
func (NumberLiteral) expr()  {}
func (BinOp) expr()          {}
func (UnaryNeg) expr()       {}
func (Ternary) expr()        {}
