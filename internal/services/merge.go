package services

import (
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// sourceRank orders source kinds for field resolution. Lower wins.
var sourceRank = map[string]int{
	types.SourceCandidateSupplied: 0,
	types.SourceVerifiedExternal:  1,
	types.SourceAIResearch:        2,
}

// SourcedValue is one candidate value for a profile field, tagged with the
// kind of source that produced it and the adapter priority within that kind.
type SourcedValue struct {
	SourceKind string
	// Adapter identity slot within the kind; lower wins ties. Zero for
	// candidate-supplied values.
	Priority int
	Value    string
}

// ResolveField picks the winning value for one field. Empty values never
// win. Rank decides first (candidate_supplied beats verified_external beats
// ai_research), then adapter priority, then input order. Returns false when
// nothing usable was offered.
func ResolveField(candidates []SourcedValue) (SourcedValue, bool) {
	var best SourcedValue
	bestRank := -1
	for _, c := range candidates {
		if c.Value == "" {
			continue
		}
		rank, ok := sourceRank[c.SourceKind]
		if !ok {
			continue
		}
		if bestRank == -1 || rank < bestRank || (rank == bestRank && c.Priority < best.Priority) {
			best = c
			bestRank = rank
		}
	}
	return best, bestRank != -1
}
