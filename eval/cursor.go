package eval

import (
	"github.com/perchance-go/perchance/ast"
	"github.com/perchance-go/perchance/compile"
	"github.com/perchance-go/perchance/rng"
)

// Cursor implements ConsumableCursor: a stateful view over a list with a
// mutable remaining-indices set. Fresh -> Partial -> Exhausted; drawing
// removes one index, and a draw against an exhausted cursor fails.
//
// Cursor is always referenced through a pointer so that copies of the
// CursorValue wrapping it share state, matching "copying a cursor
// reference shares state; taking consumableList again on the same list
// produces an independent cursor."
type Cursor struct {
	Prog      *compile.CompiledProgram
	List      *ast.List
	Remaining []int
}

// newCursor builds a Fresh cursor over every item in list.
func newCursor(prog *compile.CompiledProgram, list *ast.List) *Cursor {
	remaining := make([]int, len(list.Items))
	for i := range remaining {
		remaining[i] = i
	}
	return &Cursor{Prog: prog, List: list, Remaining: remaining}
}

// draw performs weighted selection over the surviving subset, removes the
// chosen index, and returns the corresponding item. An exhausted cursor
// returns a RuntimeError.
func (c *Cursor) draw(s *rng.Source) (*ast.Item, error) {
	if len(c.Remaining) == 0 {
		return nil, runtimeErrf("consumable cursor over list %q is exhausted", c.List.Name)
	}
	weights := make([]float64, len(c.Remaining))
	var total float64
	cumulative := make([]float64, len(c.Remaining))
	for i, idx := range c.Remaining {
		weights[i] = c.List.Items[idx].Weight
		total += weights[i]
		cumulative[i] = total
	}
	pick := rng.WeightedIndex(s, total, cumulative)
	itemIdx := c.Remaining[pick]
	c.Remaining = append(c.Remaining[:pick], c.Remaining[pick+1:]...)
	return c.List.Items[itemIdx], nil
}
