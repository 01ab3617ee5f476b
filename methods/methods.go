// Package methods holds the canonical table of method names the language
// recognizes, categorized the way the compiler needs for fast dispatch and
// arity checking, and the evaluator needs for choosing a dispatch path by
// receiver kind.
package methods

// Kind categorizes a method by dispatch group.
type Kind int

const (
	Selection Kind = iota
	TextTransform
	Grammar
	Join
)

// Spec describes one recognized method: its dispatch Kind and the
// inclusive range of argument counts it accepts.
type Spec struct {
	Kind           Kind
	MinArgs        int
	MaxArgs        int
	ReservedReason string // non-empty if the name is recognized but deliberately unimplemented
}

// Table is the complete set of method names the language recognizes.
// Names not present here are not methods at all: a PropertyAccess whose
// name misses this table is resolved as plain property/sub-list access.
var Table = map[string]Spec{
	"selectOne":      {Kind: Selection, MinArgs: 0, MaxArgs: 0},
	"selectAll":      {Kind: Selection, MinArgs: 0, MaxArgs: 0},
	"selectMany":     {Kind: Selection, MinArgs: 1, MaxArgs: 1},
	"selectUnique":   {Kind: Selection, MinArgs: 1, MaxArgs: 1},
	"consumableList": {Kind: Selection, MinArgs: 0, MaxArgs: 0},

	"joinItems": {Kind: Join, MinArgs: 1, MaxArgs: 1},

	"upperCase":    {Kind: TextTransform, MinArgs: 0, MaxArgs: 0},
	"lowerCase":    {Kind: TextTransform, MinArgs: 0, MaxArgs: 0},
	"titleCase":    {Kind: TextTransform, MinArgs: 0, MaxArgs: 0},
	"sentenceCase": {Kind: TextTransform, MinArgs: 0, MaxArgs: 0},

	"pluralForm":     {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
	"singularForm":   {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
	"pastTense":      {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
	"presentTense":   {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
	"futureTense":    {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
	"possessiveForm": {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
	"negativeForm":   {Kind: Grammar, MinArgs: 0, MaxArgs: 0},
}

// Lookup returns the Spec for a recognized method name.
func Lookup(name string) (Spec, bool) {
	s, ok := Table[name]
	return s, ok
}
