package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchance-go/perchance/ast"
)

func TestWeightTableCumulativeIsMonotonic(t *testing.T) {
	total, cumulative, err := weightTable([]float64{1, 3, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 4.5, total)
	require.Len(t, cumulative, 3)
	for i := 1; i < len(cumulative); i++ {
		assert.Greater(t, cumulative[i], cumulative[i-1])
	}
	assert.Equal(t, total, cumulative[len(cumulative)-1])
}

func TestWeightTableRejectsNonPositiveWeight(t *testing.T) {
	_, _, err := weightTable([]float64{1, 0, 2})
	assert.Error(t, err)

	_, _, err = weightTable([]float64{1, -1})
	assert.Error(t, err)
}

func TestWeightTableEmpty(t *testing.T) {
	total, cumulative, err := weightTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.Nil(t, cumulative)
}

func TestCompileAssignsImportSlotsOnce(t *testing.T) {
	prog := &ast.Program{Lists: []*ast.List{
		{
			Name: "output",
			Items: []*ast.Item{
				{Body: ast.Body{
					ast.Import{Name: "animal", SlotIndex: -1},
					ast.Import{Name: "animal", SlotIndex: -1},
					ast.Import{Name: "color", SlotIndex: -1},
				}, Weight: 1},
			},
		},
	}}

	cp, err := Compile(prog)
	require.NoError(t, err)
	assert.Equal(t, []string{"animal", "color"}, cp.ImportNames)
	assert.Equal(t, 0, cp.ImportIndex["animal"])
	assert.Equal(t, 1, cp.ImportIndex["color"])
}

func TestCompileRejectsZeroWeightItem(t *testing.T) {
	prog := &ast.Program{Lists: []*ast.List{
		{
			Name: "animal",
			Items: []*ast.Item{
				{Body: ast.Body{ast.Literal{Text: "dog"}}, Weight: 0},
			},
		},
	}}
	_, err := Compile(prog)
	assert.Error(t, err)
}

func TestCompileRejectsUndefinedReference(t *testing.T) {
	prog := &ast.Program{Lists: []*ast.List{
		{
			Name: "output",
			Items: []*ast.Item{
				{Body: ast.Body{ast.Reference{Expr: ast.Identifier{Name: "nope"}}}, Weight: 1},
			},
		},
	}}
	_, err := Compile(prog)
	assert.Error(t, err)
}

func TestCompileAcceptsTopLevelListReference(t *testing.T) {
	prog := &ast.Program{Lists: []*ast.List{
		{Name: "animal", Items: []*ast.Item{{Body: ast.Body{ast.Literal{Text: "dog"}}, Weight: 1}}},
		{Name: "output", Items: []*ast.Item{
			{Body: ast.Body{ast.Reference{Expr: ast.Identifier{Name: "animal"}}}, Weight: 1},
		}},
	}}
	_, err := Compile(prog)
	assert.NoError(t, err)
}

func TestCompileRejectsSelectManyWithMinMax(t *testing.T) {
	prog := &ast.Program{Lists: []*ast.List{
		{Name: "animal", Items: []*ast.Item{{Body: ast.Body{ast.Literal{Text: "dog"}}, Weight: 1}}},
		{Name: "output", Items: []*ast.Item{
			{Body: ast.Body{ast.Reference{Expr: ast.MethodCall{
				Receiver: ast.Identifier{Name: "animal"},
				Method:   "selectMany",
				Args:     []ast.Expr{ast.NumberLiteral{Value: 1}, ast.NumberLiteral{Value: 2}},
			}}}, Weight: 1},
		}},
	}}
	_, err := Compile(prog)
	assert.Error(t, err)
}

func TestCompileRejectsWrongArity(t *testing.T) {
	prog := &ast.Program{Lists: []*ast.List{
		{Name: "animal", Items: []*ast.Item{{Body: ast.Body{ast.Literal{Text: "dog"}}, Weight: 1}}},
		{Name: "output", Items: []*ast.Item{
			{Body: ast.Body{ast.Reference{Expr: ast.MethodCall{
				Receiver: ast.Identifier{Name: "animal"},
				Method:   "selectOne",
				Args:     []ast.Expr{ast.NumberLiteral{Value: 1}},
			}}}, Weight: 1},
		}},
	}}
	_, err := Compile(prog)
	assert.Error(t, err)
}
