package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ballotwise/ballotwise-backend/internal/clients/redisquota"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

var (
	ErrInvalidAPIKey    = errors.New("invalid or inactive API key")
	ErrTierInsufficient = errors.New("subscription tier does not cover this endpoint")
	ErrQuotaExceeded    = errors.New("monthly API quota exceeded")
	ErrUnknownTier      = errors.New("unknown subscription tier")
)

var tierRank = map[string]int{
	types.TierBasic:      0,
	types.TierPremium:    1,
	types.TierEnterprise: 2,
}

// CampaignRegistration is the public marketplace signup payload.
type CampaignRegistration struct {
	CandidateID      int    `json:"candidate_id" binding:"required"`
	OrganizationName string `json:"organization_name" binding:"required"`
	ContactEmail     string `json:"contact_email" binding:"required,email"`
	SubscriptionTier string `json:"subscription_tier"`
}

// AccessRecord describes one authenticated marketplace request for the
// audit log.
type AccessRecord struct {
	Endpoint     string
	Method       string
	StatusCode   int
	ResponseTime int
	IPAddress    string
	UserAgent    string
}

// SubscriptionInfo is the self-service usage view.
type SubscriptionInfo struct {
	OrganizationName string `json:"organization_name"`
	SubscriptionTier string `json:"subscription_tier"`
	MonthlyAPILimit  int    `json:"monthly_api_limit"`
	CallsThisMonth   int64  `json:"calls_this_month"`
	TotalAPICalls    int    `json:"total_api_calls"`
}

// CampaignAnalytics is the premium per-election intelligence payload.
type CampaignAnalytics struct {
	Election   *types.Election          `json:"election"`
	Candidates []*types.Candidate       `json:"candidates"`
	Polling    []*types.RealTimePolling `json:"polling"`
}

type CampaignService interface {
	Register(ctx context.Context, input CampaignRegistration) (*types.CampaignAccount, error)
	Authenticate(ctx context.Context, apiKey string) (*types.CampaignAccount, error)
	// ConsumeQuota charges one call against the account's monthly limit and
	// appends the audit row. ErrQuotaExceeded means the call must be
	// rejected with 429.
	ConsumeQuota(ctx context.Context, account *types.CampaignAccount, record AccessRecord) error
	RequireTier(account *types.CampaignAccount, minimum string) error
	GetAnalytics(ctx context.Context, account *types.CampaignAccount, electionID int) (*CampaignAnalytics, error)
	GetPolling(ctx context.Context, account *types.CampaignAccount, electionID, days int) ([]*types.RealTimePolling, error)
	GetSubscription(ctx context.Context, account *types.CampaignAccount) (*SubscriptionInfo, error)
}

type campaignService struct {
	log           *logger.Logger
	accountRepo   repos.CampaignAccountRepo
	candidateRepo repos.CandidateRepo
	electionRepo  repos.ElectionRepo
	pollingRepo   repos.RealTimePollingRepo
	// quota is nil when redis is not configured; usage then falls back to
	// counting access-log rows.
	quota redisquota.Counter
}

func NewCampaignService(
	accountRepo repos.CampaignAccountRepo,
	candidateRepo repos.CandidateRepo,
	electionRepo repos.ElectionRepo,
	pollingRepo repos.RealTimePollingRepo,
	quota redisquota.Counter,
	baseLog *logger.Logger,
) CampaignService {
	return &campaignService{
		log:           baseLog.With("service", "CampaignService"),
		accountRepo:   accountRepo,
		candidateRepo: candidateRepo,
		electionRepo:  electionRepo,
		pollingRepo:   pollingRepo,
		quota:         quota,
	}
}

func (cs *campaignService) Register(ctx context.Context, input CampaignRegistration) (*types.CampaignAccount, error) {
	tier := strings.ToLower(strings.TrimSpace(input.SubscriptionTier))
	if tier == "" {
		tier = types.TierBasic
	}
	if _, ok := tierRank[tier]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	if _, err := cs.candidateRepo.GetByID(ctx, nil, input.CandidateID); err != nil {
		return nil, fmt.Errorf("candidate %d not found: %w", input.CandidateID, err)
	}

	account, err := cs.accountRepo.Create(ctx, nil, &types.CampaignAccount{
		CandidateID:      input.CandidateID,
		APIKey:           uuid.NewString(),
		OrganizationName: strings.TrimSpace(input.OrganizationName),
		ContactEmail:     strings.ToLower(strings.TrimSpace(input.ContactEmail)),
		SubscriptionTier: tier,
		IsActive:         true,
		MonthlyAPILimit:  limitForTier(tier),
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign account: %w", err)
	}
	cs.log.Info("campaign account registered",
		"account_id", account.ID, "tier", account.SubscriptionTier)
	return account, nil
}

func limitForTier(tier string) int {
	switch tier {
	case types.TierEnterprise:
		return 100000
	case types.TierPremium:
		return 10000
	default:
		return 1000
	}
}

func (cs *campaignService) Authenticate(ctx context.Context, apiKey string) (*types.CampaignAccount, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}
	account, err := cs.accountRepo.GetByAPIKey(ctx, nil, apiKey)
	if err != nil {
		return nil, fmt.Errorf("load campaign account: %w", err)
	}
	if account == nil || !account.IsActive {
		return nil, ErrInvalidAPIKey
	}
	return account, nil
}

func (cs *campaignService) ConsumeQuota(ctx context.Context, account *types.CampaignAccount, record AccessRecord) error {
	now := time.Now()
	used, err := cs.monthlyUsage(ctx, account, now, true)
	if err != nil {
		return err
	}

	if err := cs.accountRepo.AppendAccessLog(ctx, nil, &types.CampaignAccessLog{
		CampaignID:   account.ID,
		APIKey:       account.APIKey,
		Endpoint:     record.Endpoint,
		Method:       record.Method,
		StatusCode:   record.StatusCode,
		ResponseTime: record.ResponseTime,
		IPAddress:    record.IPAddress,
		UserAgent:    record.UserAgent,
	}); err != nil {
		return fmt.Errorf("append access log: %w", err)
	}
	if err := cs.accountRepo.RecordAccess(ctx, nil, account.ID); err != nil {
		return fmt.Errorf("record account access: %w", err)
	}

	if used > int64(account.MonthlyAPILimit) {
		return ErrQuotaExceeded
	}
	return nil
}

// monthlyUsage reads (and optionally bumps) the month's call count. Redis is
// authoritative when configured; otherwise the access log is counted, which
// is exact but heavier.
func (cs *campaignService) monthlyUsage(ctx context.Context, account *types.CampaignAccount, now time.Time, bump bool) (int64, error) {
	if cs.quota != nil {
		if bump {
			return cs.quota.Incr(ctx, account.ID, now)
		}
		return cs.quota.Current(ctx, account.ID, now)
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	count, err := cs.accountRepo.MonthlyCallCount(ctx, nil, account.ID, monthStart)
	if err != nil {
		return 0, fmt.Errorf("count monthly calls: %w", err)
	}
	if bump {
		count++
	}
	return count, nil
}

func (cs *campaignService) RequireTier(account *types.CampaignAccount, minimum string) error {
	have, ok := tierRank[account.SubscriptionTier]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, account.SubscriptionTier)
	}
	want, ok := tierRank[minimum]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, minimum)
	}
	if have < want {
		return fmt.Errorf("%w: %s requires %s", ErrTierInsufficient, account.SubscriptionTier, minimum)
	}
	return nil
}

func (cs *campaignService) GetAnalytics(ctx context.Context, account *types.CampaignAccount, electionID int) (*CampaignAnalytics, error) {
	if err := cs.RequireTier(account, types.TierPremium); err != nil {
		return nil, err
	}
	election, err := cs.electionRepo.GetByID(ctx, nil, electionID)
	if err != nil {
		return nil, fmt.Errorf("load election %d: %w", electionID, err)
	}
	candidates, err := cs.candidateRepo.GetByElection(ctx, nil, electionID)
	if err != nil {
		return nil, err
	}
	polling, err := cs.pollingRepo.ListByElection(ctx, nil, electionID, time.Now().AddDate(0, 0, -90))
	if err != nil {
		return nil, err
	}
	return &CampaignAnalytics{Election: election, Candidates: candidates, Polling: polling}, nil
}

func (cs *campaignService) GetPolling(ctx context.Context, account *types.CampaignAccount, electionID, days int) ([]*types.RealTimePolling, error) {
	if err := cs.RequireTier(account, types.TierBasic); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}
	return cs.pollingRepo.ListByElection(ctx, nil, electionID, time.Now().AddDate(0, 0, -days))
}

func (cs *campaignService) GetSubscription(ctx context.Context, account *types.CampaignAccount) (*SubscriptionInfo, error) {
	used, err := cs.monthlyUsage(ctx, account, time.Now(), false)
	if err != nil {
		return nil, err
	}
	return &SubscriptionInfo{
		OrganizationName: account.OrganizationName,
		SubscriptionTier: account.SubscriptionTier,
		MonthlyAPILimit:  account.MonthlyAPILimit,
		CallsThisMonth:   used,
		TotalAPICalls:    account.TotalAPICalls,
	}, nil
}
