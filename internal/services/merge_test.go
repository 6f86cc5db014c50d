package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballotwise/ballotwise-backend/internal/types"
)

func TestResolveField_CandidateSuppliedWinsOutright(t *testing.T) {
	got, ok := ResolveField([]SourcedValue{
		{SourceKind: types.SourceAIResearch, Priority: 6, Value: "AI biography"},
		{SourceKind: types.SourceVerifiedExternal, Priority: 0, Value: "VoteSmart biography"},
		{SourceKind: types.SourceCandidateSupplied, Value: "My own biography"},
	})

	require.True(t, ok)
	assert.Equal(t, "My own biography", got.Value)
	assert.Equal(t, types.SourceCandidateSupplied, got.SourceKind)
}

func TestResolveField_VerifiedExternalBeatsAI(t *testing.T) {
	got, ok := ResolveField([]SourcedValue{
		{SourceKind: types.SourceAIResearch, Priority: 6, Value: "AI guess"},
		{SourceKind: types.SourceVerifiedExternal, Priority: 1, Value: "ProPublica record"},
	})

	require.True(t, ok)
	assert.Equal(t, "ProPublica record", got.Value)
}

func TestResolveField_EmptyValuesNeverWin(t *testing.T) {
	got, ok := ResolveField([]SourcedValue{
		{SourceKind: types.SourceCandidateSupplied, Value: ""},
		{SourceKind: types.SourceAIResearch, Priority: 6, Value: "AI fallback"},
	})

	require.True(t, ok)
	assert.Equal(t, "AI fallback", got.Value)
}

func TestResolveField_TieBrokenByAdapterPriority(t *testing.T) {
	got, ok := ResolveField([]SourcedValue{
		{SourceKind: types.SourceVerifiedExternal, Priority: 3, Value: "OpenStates value"},
		{SourceKind: types.SourceVerifiedExternal, Priority: 0, Value: "VoteSmart value"},
	})

	require.True(t, ok)
	assert.Equal(t, "VoteSmart value", got.Value)
}

func TestResolveField_NothingUsable(t *testing.T) {
	_, ok := ResolveField([]SourcedValue{
		{SourceKind: types.SourceCandidateSupplied, Value: ""},
		{SourceKind: "unknown_kind", Value: "ignored"},
	})

	assert.False(t, ok)
}

func TestResolveField_DeterministicAcrossInputOrder(t *testing.T) {
	a := []SourcedValue{
		{SourceKind: types.SourceVerifiedExternal, Priority: 1, Value: "propublica"},
		{SourceKind: types.SourceVerifiedExternal, Priority: 0, Value: "votesmart"},
	}
	b := []SourcedValue{a[1], a[0]}

	gotA, _ := ResolveField(a)
	gotB, _ := ResolveField(b)

	assert.Equal(t, gotA, gotB)
}
