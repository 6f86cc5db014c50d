package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/ballotwise/ballotwise-backend/internal/clients/civic"
	"github.com/ballotwise/ballotwise-backend/internal/observability"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/httpx"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// AdapterResult is one settled adapter outcome. Exactly one of Fact and Err
// is set.
type AdapterResult struct {
	Source string
	Fact   *civic.Fact
	Err    error
}

// MergedCandidateView is the enrichment output for one candidate: the
// platform baseline overlaid with whatever the external sources produced,
// resolved by precedence.
type MergedCandidateView struct {
	CandidateID      int                `json:"candidate_id"`
	ElectionID       int                `json:"election_id"`
	Name             string             `json:"name"`
	Party            string             `json:"party"`
	Office           string             `json:"office"`
	State            string             `json:"state"`
	District         string             `json:"district"`
	Biography        string             `json:"biography"`
	Education        string             `json:"education"`
	Positions        map[string]string  `json:"positions"`
	CampaignFunding  string             `json:"campaign_funding"`
	PollingPct       *float64           `json:"polling_pct"`
	FieldSources     map[string]string  `json:"field_sources"`
	Confidence       map[string]float64 `json:"confidence"`
	SourcesUsed      []string           `json:"sources_used"`
	SourceErrors     map[string]string  `json:"source_errors,omitempty"`
	HasAuthenticData bool               `json:"has_authentic_data"`
	FetchedAt        time.Time          `json:"fetched_at"`
}

type AggregatorService interface {
	Aggregate(ctx context.Context, candidateID, electionID int) (*MergedCandidateView, error)
	AggregateMany(ctx context.Context, candidateIDs []int, electionID int) ([]*MergedCandidateView, error)
	SourceStatus() map[string]bool
}

type aggregatorService struct {
	log           *logger.Logger
	registry      *civic.Registry
	candidateRepo repos.CandidateRepo
	profileRepo   repos.CandidateProfileRepo
	cache         *gocache.Cache
	cacheTTL      time.Duration
}

func NewAggregatorService(
	registry *civic.Registry,
	candidateRepo repos.CandidateRepo,
	profileRepo repos.CandidateProfileRepo,
	baseLog *logger.Logger,
) AggregatorService {
	ttlMin := utils.GetEnvAsInt("CIVIC_CACHE_TTL_MINUTES", 30, baseLog)
	ttl := time.Duration(ttlMin) * time.Minute
	return &aggregatorService{
		log:           baseLog.With("service", "AggregatorService"),
		registry:      registry,
		candidateRepo: candidateRepo,
		profileRepo:   profileRepo,
		cache:         gocache.New(ttl, 2*ttl),
		cacheTTL:      ttl,
	}
}

func cacheKey(candidateIDs []int, electionID int) string {
	ids := make([]int, len(candidateIDs))
	copy(ids, candidateIDs)
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("civic-agg-%s-%d", strings.Join(parts, ","), electionID)
}

func (s *aggregatorService) Aggregate(ctx context.Context, candidateID, electionID int) (*MergedCandidateView, error) {
	key := cacheKey([]int{candidateID}, electionID)
	if cached, found := s.cache.Get(key); found {
		return cached.(*MergedCandidateView), nil
	}

	candidate, err := s.candidateRepo.GetByID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate %d: %w", candidateID, err)
	}
	profile, err := s.profileRepo.GetByCandidateID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load profile for candidate %d: %w", candidateID, err)
	}

	results := s.settleAdapters(ctx, civic.Query{
		CandidateID: candidate.ID,
		Name:        candidate.Name,
		Party:       candidate.Party,
		State:       stateOf(candidate),
	})

	view := s.merge(candidate, profile, results)
	view.ElectionID = electionID
	s.cache.Set(key, view, s.cacheTTL)
	return view, nil
}

func (s *aggregatorService) AggregateMany(ctx context.Context, candidateIDs []int, electionID int) ([]*MergedCandidateView, error) {
	views := make([]*MergedCandidateView, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		view, err := s.Aggregate(ctx, id, electionID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *aggregatorService) SourceStatus() map[string]bool {
	return s.registry.Status()
}

// settleAdapters fans out every configured adapter and waits for all of
// them. Individual failures land in the result slot; nothing aborts the
// group.
func (s *aggregatorService) settleAdapters(ctx context.Context, q civic.Query) []AdapterResult {
	adapters := s.registry.Adapters()
	results := make([]AdapterResult, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		g.Go(func() error {
			start := time.Now()
			fact, err := adapter.Fetch(gctx, q)
			results[i] = AdapterResult{Source: adapter.Source(), Fact: fact, Err: err}
			status := "ok"
			switch {
			case err != nil:
				status = adapterFailureStatus(err)
			case fact == nil:
				status = "empty"
			}
			observability.Current().ObserveCivicFetch(adapter.Source(), status, time.Since(start))
			return nil
		})
	}
	// Never returns an error; every slot settles.
	_ = g.Wait()

	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if code := httpx.StatusOf(r.Err); code != 0 {
			s.log.Warn("civic adapter failed", "source", r.Source,
				"status", code, "upstream", httpx.IsServerStatus(code), "error", r.Err)
			continue
		}
		if httpx.IsTimeout(r.Err) {
			s.log.Warn("civic adapter timed out", "source", r.Source, "error", r.Err)
			continue
		}
		s.log.Warn("civic adapter failed", "source", r.Source, "error", r.Err)
	}
	return results
}

// adapterFailureStatus folds an adapter error into the fetch metric's status
// label: timeout, upstream_error (5xx/408/429) or plain error.
func adapterFailureStatus(err error) string {
	if httpx.IsTimeout(err) {
		return "timeout"
	}
	if httpx.IsServerStatus(httpx.StatusOf(err)) {
		return "upstream_error"
	}
	return "error"
}

// merge walks results in fixed identity order and resolves every view field
// through the precedence function. Completion order never matters.
func (s *aggregatorService) merge(candidate *types.Candidate, profile *types.CandidateProfile, results []AdapterResult) *MergedCandidateView {
	view := &MergedCandidateView{
		CandidateID:  candidate.ID,
		Name:         candidate.Name,
		Party:        candidate.Party,
		State:        stateOf(candidate),
		Positions:    map[string]string{},
		FieldSources: map[string]string{},
		Confidence:   map[string]float64{},
		FetchedAt:    time.Now(),
	}

	bySource := make(map[string]*civic.Fact, len(results))
	for _, r := range results {
		if r.Err != nil {
			if view.SourceErrors == nil {
				view.SourceErrors = map[string]string{}
			}
			view.SourceErrors[r.Source] = r.Err.Error()
			continue
		}
		bySource[r.Source] = r.Fact
		view.SourcesUsed = append(view.SourcesUsed, r.Source)
	}

	fieldValues := func(field string, profileValue string, factValue func(*civic.Fact) string) []SourcedValue {
		values := []SourcedValue{{SourceKind: types.SourceCandidateSupplied, Value: profileValue}}
		for prio, src := range civic.SourceOrder {
			fact, ok := bySource[src]
			if !ok {
				continue
			}
			kind := types.SourceVerifiedExternal
			if src == civic.SourcePerplexity {
				kind = types.SourceAIResearch
			}
			values = append(values, SourcedValue{SourceKind: kind, Priority: prio, Value: factValue(fact)})
		}
		return values
	}

	resolve := func(field, profileValue string, factValue func(*civic.Fact) string) string {
		values := fieldValues(field, profileValue, factValue)
		winner, ok := ResolveField(values)
		if !ok {
			return ""
		}
		view.FieldSources[field] = winner.SourceKind
		view.Confidence[field] = s.fieldConfidence(field, profileValue, bySource, factValue)
		return winner.Value
	}

	profileBio, profileEdu := "", ""
	if profile != nil {
		profileBio = profile.PoliticalExperience
		profileEdu = profileEducation(profile)
		view.HasAuthenticData = profileHasData(profile)
	}

	view.Biography = resolve("biography", profileBio, func(f *civic.Fact) string { return f.Biography })
	view.Education = resolve("education", profileEdu, func(f *civic.Fact) string { return f.Education })
	view.Office = resolve("office", "", func(f *civic.Fact) string { return f.Office })
	view.District = resolve("district", "", func(f *civic.Fact) string { return f.District })
	view.CampaignFunding = resolve("campaign_funding", "", func(f *civic.Fact) string { return f.CampaignFunding })

	s.mergePositions(view, profile, bySource)

	if fact, ok := bySource[civic.SourceFiveThirtyEight]; ok && fact.PollingPct != nil {
		view.PollingPct = fact.PollingPct
		view.FieldSources["polling_pct"] = types.SourceVerifiedExternal
		view.Confidence["polling_pct"] = civic.SourceWeights[civic.SourceFiveThirtyEight]
	}
	return view
}

// mergePositions resolves each policy category independently.
func (s *aggregatorService) mergePositions(view *MergedCandidateView, profile *types.CandidateProfile, bySource map[string]*civic.Fact) {
	categories := map[string]bool{}
	profilePositions := map[string]string{}
	if profile != nil {
		profilePositions = positionColumns(profile)
		for cat, v := range profilePositions {
			if v != "" {
				categories[cat] = true
			}
		}
	}
	for _, fact := range bySource {
		for cat, v := range fact.Positions {
			if v != "" {
				categories[cat] = true
			}
		}
	}

	for cat := range categories {
		localCat := cat
		value := func(f *civic.Fact) string { return f.Positions[localCat] }
		values := []SourcedValue{{SourceKind: types.SourceCandidateSupplied, Value: profilePositions[cat]}}
		for prio, src := range civic.SourceOrder {
			fact, ok := bySource[src]
			if !ok {
				continue
			}
			kind := types.SourceVerifiedExternal
			if src == civic.SourcePerplexity {
				kind = types.SourceAIResearch
			}
			values = append(values, SourcedValue{SourceKind: kind, Priority: prio, Value: value(fact)})
		}
		winner, ok := ResolveField(values)
		if !ok {
			continue
		}
		view.Positions[cat] = winner.Value
		field := "positions." + cat
		view.FieldSources[field] = winner.SourceKind
		view.Confidence[field] = s.fieldConfidence(field, profilePositions[cat], bySource, value)
	}
}

// fieldConfidence sums the fixed weight of every source that offered a
// non-empty value, capped at 1.0. Candidate-supplied data is authoritative
// and scores 1.0 outright.
func (s *aggregatorService) fieldConfidence(field, profileValue string, bySource map[string]*civic.Fact, factValue func(*civic.Fact) string) float64 {
	if profileValue != "" {
		return 1.0
	}
	total := 0.0
	for src, fact := range bySource {
		if factValue(fact) != "" {
			total += civic.SourceWeights[src]
		}
	}
	if total > 1.0 {
		total = 1.0
	}
	return total
}

func stateOf(candidate *types.Candidate) string {
	if candidate.Election != nil {
		return candidate.Election.State
	}
	return ""
}

func profileEducation(profile *types.CandidateProfile) string {
	if len(profile.Education) == 0 || string(profile.Education) == "null" {
		return ""
	}
	return string(profile.Education)
}

// positionColumns flattens the profile's per-category position columns.
func positionColumns(p *types.CandidateProfile) map[string]string {
	return map[string]string{
		"economy":          p.EconomyPosition,
		"healthcare":       p.HealthcarePosition,
		"education":        p.EducationPosition,
		"environment":      p.EnvironmentPosition,
		"immigration":      p.ImmigrationPosition,
		"criminal_justice": p.CriminalJusticePosition,
		"infrastructure":   p.InfrastructurePosition,
		"taxes":            p.TaxesPosition,
		"foreign_policy":   p.ForeignPolicyPosition,
		"social_issues":    p.SocialIssuesPosition,
	}
}

func profileHasData(p *types.CandidateProfile) bool {
	if p == nil {
		return false
	}
	if p.FullName != "" || p.CurrentOccupation != "" || p.PoliticalExperience != "" || p.CampaignSlogan != "" {
		return true
	}
	for _, v := range positionColumns(p) {
		if v != "" {
			return true
		}
	}
	return false
}
