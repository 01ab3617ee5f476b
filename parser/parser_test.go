package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchance-go/perchance/ast"
)

func TestParseSimpleList(t *testing.T) {
	prog, err := Parse("animal\n  dog\n  cat\n")
	require.NoError(t, err)
	require.Len(t, prog.Lists, 1)

	list := prog.Lists[0]
	assert.Equal(t, "animal", list.Name)
	require.Len(t, list.Items, 2)

	lit, ok := list.Items[0].Body[0].(ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "dog", lit.Text)
}

func TestParseItemWeight(t *testing.T) {
	prog, err := Parse("animal\n  dog^3\n  cat\n")
	require.NoError(t, err)
	list := prog.Lists[0]
	assert.Equal(t, 3.0, list.Items[0].Weight)
	assert.Equal(t, 1.0, list.Items[1].Weight)
}

func TestParseSubListsAttachToPrecedingItem(t *testing.T) {
	prog, err := Parse("animal\n  dog\n    breed\n      poodle\n      lab\n  cat\n")
	require.NoError(t, err)
	list := prog.Lists[0]
	require.Len(t, list.Items, 2)

	dogItem := list.Items[0]
	require.Len(t, dogItem.SubLists, 1)
	assert.Equal(t, "breed", dogItem.SubLists[0].Name)
	assert.Len(t, dogItem.SubLists[0].Items, 2)

	catItem := list.Items[1]
	assert.Empty(t, catItem.SubLists)
}

func TestParseOutputOverride(t *testing.T) {
	prog, err := Parse("animal\n  $output = always a dog\n  dog\n  cat\n")
	require.NoError(t, err)
	list := prog.Lists[0]
	require.NotNil(t, list.Output)
	lit, ok := list.Output[0].(ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "always a dog", lit.Text)
}

func TestParseProperty(t *testing.T) {
	prog, err := Parse("animal\n  dog\n  sound = woof\n")
	require.NoError(t, err)
	list := prog.Lists[0]
	require.Len(t, list.Properties, 1)
	assert.Equal(t, "sound", list.Properties[0].Name)
}

func TestParseReferenceExpr(t *testing.T) {
	prog, err := Parse("output\n  I saw a [animal].\n")
	require.NoError(t, err)
	body := prog.Lists[0].Items[0].Body
	require.Len(t, body, 3)
	ref, ok := body[1].(ast.Reference)
	require.True(t, ok)
	_, isIdent := ref.Expr.(ast.Identifier)
	assert.True(t, isIdent)
}

func TestParseInlineAlternationWithWeights(t *testing.T) {
	prog, err := Parse("output\n  {big|large^3|massive^0.5}\n")
	require.NoError(t, err)
	blk := prog.Lists[0].Items[0].Body[0].(ast.InlineBlock)
	require.Equal(t, ast.InlineAlternation, blk.Kind)
	require.Len(t, blk.Alternatives, 3)
	assert.Equal(t, 3.0, blk.Alternatives[1].Weight)
	assert.Equal(t, 0.5, blk.Alternatives[2].Weight)
}

func TestParseIntRangeBlock(t *testing.T) {
	prog, err := Parse("output\n  {1-5}\n")
	require.NoError(t, err)
	blk := prog.Lists[0].Items[0].Body[0].(ast.InlineBlock)
	assert.Equal(t, ast.InlineIntRange, blk.Kind)
	assert.Equal(t, 1, blk.RangeLo)
	assert.Equal(t, 5, blk.RangeHi)
}

func TestParseArticlePlaceholders(t *testing.T) {
	prog, err := Parse("output\n  {a} dog and {A} cat\n")
	require.NoError(t, err)
	body := prog.Lists[0].Items[0].Body
	lower := body[0].(ast.InlineBlock)
	assert.Equal(t, ast.InlineArticle, lower.Kind)
	assert.False(t, lower.UpperCase)

	var upper ast.InlineBlock
	for _, part := range body {
		if blk, ok := part.(ast.InlineBlock); ok && blk.Kind == ast.InlineArticle && blk.UpperCase {
			upper = blk
		}
	}
	assert.True(t, upper.UpperCase)
}

func TestParseImportContentPart(t *testing.T) {
	prog, err := Parse("output\n  {import:animal}\n")
	require.NoError(t, err)
	imp, ok := prog.Lists[0].Items[0].Body[0].(ast.Import)
	require.True(t, ok)
	assert.Equal(t, "animal", imp.Name)
}

func TestParseImportRefExpr(t *testing.T) {
	prog, err := Parse("output\n  [import:animal.color]\n")
	require.NoError(t, err)
	ref := prog.Lists[0].Items[0].Body[0].(ast.Reference)
	prop, ok := ref.Expr.(ast.PropertyAccess)
	require.True(t, ok)
	assert.Equal(t, "color", prop.Prop)
	importRef, ok := prop.Target.(ast.ImportRef)
	require.True(t, ok)
	assert.Equal(t, "animal", importRef.Name)
}

func TestParseRejectsMixedIndentation(t *testing.T) {
	_, err := Parse("animal\n  dog\n\tcat\n")
	assert.Error(t, err)
}

func TestParseRejectsOddSpaceIndent(t *testing.T) {
	_, err := Parse("animal\n   dog\n")
	assert.Error(t, err)
}

func TestParseEscapedBrackets(t *testing.T) {
	prog, err := Parse("output\n  literal \\[not a ref\\]\n")
	require.NoError(t, err)
	lit := prog.Lists[0].Items[0].Body[0].(ast.Literal)
	assert.Equal(t, "literal [not a ref]", lit.Text)
}

func TestParseStripsComments(t *testing.T) {
	prog, err := Parse("animal\n  dog // a good boy\n")
	require.NoError(t, err)
	lit := prog.Lists[0].Items[0].Body[0].(ast.Literal)
	assert.Equal(t, "dog", lit.Text)
}

func TestParseRejectsMultiplication(t *testing.T) {
	_, err := Parse("output\n  [2 * 3]\n")
	assert.Error(t, err)
}

func TestParseTernaryAndComparison(t *testing.T) {
	prog, err := Parse("output\n  [1 < 2 ? \"yes\" : \"no\"]\n")
	require.NoError(t, err)
	ref := prog.Lists[0].Items[0].Body[0].(ast.Reference)
	_, ok := ref.Expr.(ast.Ternary)
	assert.True(t, ok)
}
