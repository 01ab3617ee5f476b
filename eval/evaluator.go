// Package eval reduces a compiled program plus a seeded RNG to a final
// string. It owns the runtime value model, the scope stack, weighted
// selection, method dispatch, grammar rule tables, placeholder
// post-processing, and the per-evaluation import cache.
package eval

import (
	"strconv"
	"strings"

	"github.com/perchance-go/perchance/ast"
	"github.com/perchance-go/perchance/compile"
	"github.com/perchance-go/perchance/loader"
	"github.com/perchance-go/perchance/parser"
	"github.com/perchance-go/perchance/rng"
)

// defaultMaxDepth bounds recursive body evaluation. The spec requires
// deep recursion to be handled safely; this implementation uses the
// native Go stack with a budget rather than an explicit trampoline,
// since perchance bodies rarely nest more than a few hundred deep and a
// budget keeps a runaway self-importing program from crashing the host
// process instead of failing cleanly.
const defaultMaxDepth = 1000

// Evaluator holds everything one evaluate() call needs: the RNG, the
// Loader, the import cache, the scope stack, and a recursion budget. It
// is never reused or shared across evaluations.
type Evaluator struct {
	rng      *rng.Source
	loader   loader.Loader
	imports  map[string]*compile.CompiledProgram
	loadCnt  map[string]int
	scope    *scopeStack
	depth    int
	maxDepth int
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithMaxDepth overrides the default recursion depth budget.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// New constructs an Evaluator. loader may be nil if the program being
// evaluated never uses `{import:...}`.
func New(source *rng.Source, ldr loader.Loader, opts ...Option) *Evaluator {
	e := &Evaluator{
		rng:      source,
		loader:   ldr,
		imports:  map[string]*compile.CompiledProgram{},
		loadCnt:  map[string]int{},
		scope:    newScopeStack(),
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the top-level algorithm: evaluate the "output" list as
// text. It is the Go-native shape of the spec's `evaluate(program, rng,
// loader?)`; there is no async boundary here because the Loader
// implementations this module ships are synchronous, but Loader itself
// is free to block internally (e.g. on network I/O) without the
// Evaluator's API needing to change.
func Evaluate(prog *compile.CompiledProgram, source *rng.Source, ldr loader.Loader, opts ...Option) (string, error) {
	e := New(source, ldr, opts...)
	out := prog.Output()
	if out == nil {
		return "", runtimeErrf(`program has no "output" list`)
	}
	return e.renderListAsText(prog, out)
}

// EvaluateWithSeed composes parse + compile + evaluate from source text
// and an integer seed, the convenience entry point named in the spec as
// `evaluate_with_seed`.
func EvaluateWithSeed(source string, seed int64, ldr loader.Loader, opts ...Option) (string, error) {
	astProg, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	compiled, err := compile.Compile(astProg)
	if err != nil {
		return "", err
	}
	return Evaluate(compiled, rng.New(seed), ldr, opts...)
}

// evalBody evaluates a body's ContentParts left-to-right into a single
// string, then resolves any {a}/{s} placeholders the body produced. It
// owns one scope frame: assignments made by a `[...]` reference inside
// this body are visible to every later ContentPart of this SAME body
// (and are gone once this call returns), matching "sequence variables
// persist for the remainder of the immediately surrounding item body."
func (e *Evaluator) evalBody(prog *compile.CompiledProgram, body ast.Body) (string, error) {
	e.depth++
	if e.depth > e.maxDepth {
		e.depth--
		return "", runtimeErrf("maximum recursion depth (%d) exceeded", e.maxDepth)
	}
	defer func() { e.depth-- }()

	e.scope.push(newFrame())
	defer e.scope.pop()

	var sb strings.Builder
	for _, part := range body {
		switch v := part.(type) {
		case ast.Literal:
			sb.WriteString(v.Text)
		case ast.Reference:
			val, err := e.evalExprToValue(prog, v.Expr)
			if err != nil {
				return "", err
			}
			text, err := e.renderText(val)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
		case ast.InlineBlock:
			text, err := e.evalInlineBlock(prog, v)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
		case ast.Import:
			text, err := e.evalImportContentPart(prog, v)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
		default:
			return "", runtimeErrf("unknown content part %T", part)
		}
	}
	return resolvePlaceholders(sb.String()), nil
}

func (e *Evaluator) evalInlineBlock(prog *compile.CompiledProgram, blk ast.InlineBlock) (string, error) {
	switch blk.Kind {
	case ast.InlineAlternation:
		idx := rng.WeightedIndex(e.rng, blk.AltTotal, blk.AltCumulative)
		return e.evalBody(prog, blk.Alternatives[idx].Body)
	case ast.InlineIntRange:
		lo, hi := blk.RangeLo, blk.RangeHi
		if lo > hi {
			lo, hi = hi, lo
		}
		n := lo + e.rng.Intn(hi-lo+1)
		return strconv.Itoa(n), nil
	case ast.InlineLowerLetterRange, ast.InlineUpperLetterRange:
		lo, hi := blk.RangeLo, blk.RangeHi
		if lo > hi {
			lo, hi = hi, lo
		}
		r := lo + e.rng.Intn(hi-lo+1)
		return string(rune(r)), nil
	case ast.InlineArticle:
		if blk.UpperCase {
			return articleUpperMark, nil
		}
		return articleLowerMark, nil
	case ast.InlinePlural:
		return pluralMarker, nil
	default:
		return "", runtimeErrf("unknown inline block kind %v", blk.Kind)
	}
}

// evalImportContentPart resolves `{import:NAME}` used directly in a body:
// its default text-context value is the imported generator's own output
// list, rendered in its own compiled program.
func (e *Evaluator) evalImportContentPart(prog *compile.CompiledProgram, imp ast.Import) (string, error) {
	imported, err := e.resolveImport(imp.Name)
	if err != nil {
		return "", err
	}
	out := imported.Output()
	if out == nil {
		return "", &ImportError{Generator: imp.Name, Cause: runtimeErrf(`imported generator %q has no "output" list`, imp.Name)}
	}
	return e.renderListAsText(imported, out)
}

// resolveImport fetches, parses, and compiles NAME's source on first use
// and caches the result for the remaining lifetime of this Evaluator, so
// repeated `{import:NAME}`/`[import:NAME...]` uses within one evaluation
// call Loader.Load at most once per name.
func (e *Evaluator) resolveImport(name string) (*compile.CompiledProgram, error) {
	if cached, ok := e.imports[name]; ok {
		return cached, nil
	}
	if e.loader == nil {
		return nil, &ImportError{Generator: name, Cause: runtimeErrf("no Loader configured")}
	}
	e.loadCnt[name]++
	src, err := e.loader.Load(name)
	if err != nil {
		return nil, &ImportError{Generator: name, Cause: err}
	}
	astProg, err := parser.Parse(src)
	if err != nil {
		return nil, &ImportError{Generator: name, Cause: err}
	}
	compiled, err := compile.Compile(astProg)
	if err != nil {
		return nil, &ImportError{Generator: name, Cause: err}
	}
	e.imports[name] = compiled
	return compiled, nil
}

// selectOneItem performs weighted selection over a list's items.
func (e *Evaluator) selectOneItem(prog *compile.CompiledProgram, list *ast.List) (*ast.Item, error) {
	if len(list.Items) == 0 {
		return nil, runtimeErrf("list %q has no items to select from", list.Name)
	}
	idx := rng.WeightedIndex(e.rng, list.TotalWeight, list.CumulativeWeights)
	return list.Items[idx], nil
}
