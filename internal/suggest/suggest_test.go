package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilar_ExactMatchRanksFirst(t *testing.T) {
	pools := []Pool{
		{Scope: ScopeGlobal, Names: []string{"count", "cost", "coast"}},
	}
	got := Similar("cost", pools, DefaultOptions())

	require.NotEmpty(t, got)
	assert.Equal(t, "cost", got[0].Name)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestSimilar_MisspelledCallTarget(t *testing.T) {
	// locals = {}, globals = {cos, cosh}, опечатка "cost"
	pools := []Pool{
		{Scope: ScopeLocal, Names: nil},
		{Scope: ScopeGlobal, Names: []string{"cos", "cosh"}},
	}
	got := Similar("cost", pools, DefaultOptions())

	require.NotEmpty(t, got)
	assert.Equal(t, "cos", got[0].Name)
	assert.Equal(t, ScopeGlobal, got[0].Scope)
	assert.InDelta(t, 0.75, got[0].Score, 1e-9)
}

func TestSimilar_EmptyPools(t *testing.T) {
	got := Similar("xyz123", []Pool{
		{Scope: ScopeLocal},
		{Scope: ScopeEnclosing},
		{Scope: ScopeGlobal},
		{Scope: ScopeBuiltin},
	}, DefaultOptions())

	assert.Empty(t, got)
}

func TestSimilar_CaseSlip(t *testing.T) {
	pools := []Pool{{Scope: ScopeGlobal, Names: []string{"pi"}}}
	got := Similar("PI", pools, DefaultOptions())

	require.NotEmpty(t, got)
	assert.Equal(t, "pi", got[0].Name)
	assert.GreaterOrEqual(t, got[0].Score, DefaultOptions().MinScore)
	assert.Less(t, got[0].Score, 1.0)
}

func TestSimilar_SingleRuneQueryHasNoSuggestions(t *testing.T) {
	pools := []Pool{{Scope: ScopeLocal, Names: []string{"a", "b", "i"}}}
	assert.Empty(t, Similar("i", pools, DefaultOptions()))
}

func TestSimilar_PoolOrderIndependentResultSet(t *testing.T) {
	forward := []Pool{
		{Scope: ScopeLocal, Names: []string{"value"}},
		{Scope: ScopeGlobal, Names: []string{"values"}},
	}
	backward := []Pool{
		{Scope: ScopeGlobal, Names: []string{"values"}},
		{Scope: ScopeLocal, Names: []string{"value"}},
	}

	a := Similar("valu", forward, DefaultOptions())
	b := Similar("valu", backward, DefaultOptions())
	assert.Equal(t, a, b)
}

func TestSimilar_DuplicateAcrossPoolsKeepsHighestPriorityScope(t *testing.T) {
	pools := []Pool{
		{Scope: ScopeBuiltin, Names: []string{"total"}},
		{Scope: ScopeLocal, Names: []string{"total"}},
	}
	got := Similar("tota", pools, DefaultOptions())

	require.Len(t, got, 1)
	assert.Equal(t, ScopeLocal, got[0].Scope)
}

func TestSimilar_ScopePriorityBreaksTies(t *testing.T) {
	pools := []Pool{
		{Scope: ScopeGlobal, Names: []string{"datum"}},
		{Scope: ScopeLocal, Names: []string{"datta"}},
	}
	got := Similar("data", pools, DefaultOptions())

	// dist("data","datum")=2 > 1: за пределами банда;
	// dist("data","datta")=1 -> только локальный кандидат
	require.Len(t, got, 1)
	assert.Equal(t, "datta", got[0].Name)
}

func TestSimilar_MaxResultsCap(t *testing.T) {
	pools := []Pool{{Scope: ScopeGlobal, Names: []string{
		"value1", "value2", "value3", "value4", "value5", "value6", "value7",
	}}}
	opts := DefaultOptions()
	got := Similar("value0", pools, opts)

	assert.Len(t, got, opts.MaxResults)
}

func TestBoundedDistance(t *testing.T) {
	tests := []struct {
		name    string
		s1, s2  string
		maxDist int
		want    int
	}{
		{name: "equal strings", s1: "abc", s2: "abc", maxDist: 2, want: 0},
		{name: "single deletion", s1: "cost", s2: "cos", maxDist: 2, want: 1},
		{name: "single substitution", s1: "cast", s2: "cost", maxDist: 2, want: 1},
		{name: "over the bound", s1: "alpha", s2: "omega", maxDist: 1, want: 2},
		{name: "length gap over bound", s1: "ab", s2: "abcdef", maxDist: 2, want: 3},
		{name: "empty against word", s1: "", s2: "ab", maxDist: 3, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, boundedDistance(tt.s1, tt.s2, tt.maxDist))
		})
	}
}
