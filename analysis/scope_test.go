package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gqlcore"
	"github.com/rlch/gqlcore/analysis"
)

func TestScope_DeclareIsIdempotent(t *testing.T) {
	t.Parallel()

	s := analysis.NewScope(nil)

	ok := s.Declare(&analysis.SymbolInfo{Name: "n", Kind: analysis.SymbolNodeVariable})
	require.True(t, ok)

	ok = s.Declare(&analysis.SymbolInfo{Name: "n", Kind: analysis.SymbolEdgeVariable})
	assert.False(t, ok)

	info, found := s.LocalLookup("n")
	require.True(t, found)
	assert.Equal(t, analysis.SymbolNodeVariable, info.Kind)
}

func TestScope_PutRebinds(t *testing.T) {
	t.Parallel()

	s := analysis.NewScope(nil)

	s.Put(&analysis.SymbolInfo{Name: "x", Kind: analysis.SymbolLetBinding})
	s.Put(&analysis.SymbolInfo{Name: "x", Kind: analysis.SymbolLetBinding, Type: &gql.NumericType{Kind: gql.NumericInteger}})

	info, found := s.LocalLookup("x")
	require.True(t, found)
	assert.NotNil(t, info.Type)
}

func TestScope_ResolveWalksParentChain(t *testing.T) {
	t.Parallel()

	root := analysis.NewScope(nil)
	root.Declare(&analysis.SymbolInfo{Name: "n", Kind: analysis.SymbolNodeVariable})

	child := root.NewChild(&gql.MatchClause{})

	info, owner, found := child.Resolve("n")
	require.True(t, found)
	assert.Equal(t, root, owner)
	assert.Equal(t, "n", info.Name)

	_, _, found = child.Resolve("missing")
	assert.False(t, found)
}

func TestScope_ChildScopePassesThroughUnregisteredOpener(t *testing.T) {
	t.Parallel()

	s := analysis.NewScope(nil)
	opener := &gql.OptionalMatchClause{}

	assert.Same(t, s, s.ChildScope(opener))
}

func TestScope_NewChildRegistersOpener(t *testing.T) {
	t.Parallel()

	s := analysis.NewScope(nil)
	opener := &gql.ParenthesizedQuery{}

	child := s.NewChild(opener)

	assert.Same(t, child, s.ChildScope(opener))
	assert.Same(t, s, child.Parent())
}

func TestScope_LocalNames(t *testing.T) {
	t.Parallel()

	s := analysis.NewScope(nil)
	s.Declare(&analysis.SymbolInfo{Name: "a"})
	s.Declare(&analysis.SymbolInfo{Name: "b"})

	names := s.LocalNames()
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
