package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

var ErrPositionCategory = errors.New("unknown position category")

// PositionInput creates or updates one issue-position row.
type PositionInput struct {
	Category          string `json:"category" binding:"required"`
	Position          string `json:"position" binding:"required"`
	DetailedStatement string `json:"detailed_statement"`
	SourceURL         string `json:"source_url"`
}

// QAInput creates or updates one question-and-answer row.
type QAInput struct {
	Question   string `json:"question" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	Category   string `json:"category"`
	IsPublic   *bool  `json:"is_public"`
	IsPriority *bool  `json:"is_priority"`
}

// ContentInput creates or updates one campaign content row.
type ContentInput struct {
	ContentType string         `json:"content_type" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Content     string         `json:"content" binding:"required"`
	MediaURLs   datatypes.JSON `json:"media_urls"`
	Tags        datatypes.JSON `json:"tags"`
}

// PortalDashboard is the candidate's at-a-glance summary.
type PortalDashboard struct {
	Candidate          *types.Candidate `json:"candidate"`
	DataCompleteness   int              `json:"data_completeness"`
	VerificationStatus string           `json:"verification_status"`
	PositionCount      int              `json:"position_count"`
	QACount            int              `json:"qa_count"`
	PublishedContent   int              `json:"published_content"`
	DraftContent       int              `json:"draft_content"`
	ContentViews       int              `json:"content_views"`
	LastProfileUpdate  *time.Time       `json:"last_profile_update"`
}

// PortalService is everything the candidate portal does beyond the profile
// itself: positions, Q&A, campaign content, and the dashboard rollup.
type PortalService interface {
	CreatePosition(ctx context.Context, candidateID int, input PositionInput) (*types.CandidatePosition, error)
	UpdatePosition(ctx context.Context, candidateID, positionID int, input PositionInput) (*types.CandidatePosition, error)
	ListPositions(ctx context.Context, candidateID int, category string) ([]*types.CandidatePosition, error)
	DeletePosition(ctx context.Context, candidateID, positionID int) error

	CreateQA(ctx context.Context, candidateID int, input QAInput) (*types.CandidateQA, error)
	UpdateQA(ctx context.Context, candidateID, qaID int, input QAInput) (*types.CandidateQA, error)
	ListQA(ctx context.Context, candidateID int, filters repos.QAFilters) ([]*types.CandidateQA, error)
	DeleteQA(ctx context.Context, candidateID, qaID int) error

	CreateContent(ctx context.Context, candidateID int, input ContentInput) (*types.CampaignContent, error)
	UpdateContent(ctx context.Context, candidateID, contentID int, input ContentInput) (*types.CampaignContent, error)
	PublishContent(ctx context.Context, candidateID, contentID int) (*types.CampaignContent, error)
	ListContent(ctx context.Context, candidateID int, filters repos.ContentFilters) ([]*types.CampaignContent, error)
	DeleteContent(ctx context.Context, candidateID, contentID int) error

	Dashboard(ctx context.Context, candidateID int) (*PortalDashboard, error)
}

type portalService struct {
	log           *logger.Logger
	candidateRepo repos.CandidateRepo
	profileRepo   repos.CandidateProfileRepo
	positionRepo  repos.CandidatePositionRepo
	qaRepo        repos.CandidateQARepo
	contentRepo   repos.CampaignContentRepo
}

func NewPortalService(
	candidateRepo repos.CandidateRepo,
	profileRepo repos.CandidateProfileRepo,
	positionRepo repos.CandidatePositionRepo,
	qaRepo repos.CandidateQARepo,
	contentRepo repos.CampaignContentRepo,
	baseLog *logger.Logger,
) PortalService {
	return &portalService{
		log:           baseLog.With("service", "PortalService"),
		candidateRepo: candidateRepo,
		profileRepo:   profileRepo,
		positionRepo:  positionRepo,
		qaRepo:        qaRepo,
		contentRepo:   contentRepo,
	}
}

// positionCategories mirrors the profile's per-category position columns.
var positionCategories = []string{
	"economy", "healthcare", "education", "environment", "immigration",
	"criminal_justice", "infrastructure", "taxes", "foreign_policy",
	"social_issues",
}

func normalizeCategory(category string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	for _, known := range positionCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrPositionCategory, category)
}

func (ps *portalService) CreatePosition(ctx context.Context, candidateID int, input PositionInput) (*types.CandidatePosition, error) {
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	return ps.positionRepo.Create(ctx, nil, &types.CandidatePosition{
		CandidateID:       candidateID,
		Category:          category,
		Position:          strings.TrimSpace(input.Position),
		DetailedStatement: input.DetailedStatement,
		SourceURL:         input.SourceURL,
	})
}

func (ps *portalService) UpdatePosition(ctx context.Context, candidateID, positionID int, input PositionInput) (*types.CandidatePosition, error) {
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	return ps.positionRepo.Update(ctx, nil, candidateID, positionID, map[string]interface{}{
		"category":           category,
		"position":           strings.TrimSpace(input.Position),
		"detailed_statement": input.DetailedStatement,
		"source_url":         input.SourceURL,
	})
}

func (ps *portalService) ListPositions(ctx context.Context, candidateID int, category string) ([]*types.CandidatePosition, error) {
	return ps.positionRepo.ListByCandidate(ctx, nil, candidateID, strings.ToLower(strings.TrimSpace(category)))
}

func (ps *portalService) DeletePosition(ctx context.Context, candidateID, positionID int) error {
	return ps.positionRepo.Delete(ctx, nil, candidateID, positionID)
}

func (ps *portalService) CreateQA(ctx context.Context, candidateID int, input QAInput) (*types.CandidateQA, error) {
	qa := &types.CandidateQA{
		CandidateID: candidateID,
		Question:    strings.TrimSpace(input.Question),
		Answer:      strings.TrimSpace(input.Answer),
		Category:    input.Category,
		IsPublic:    true,
	}
	if input.IsPublic != nil {
		qa.IsPublic = *input.IsPublic
	}
	if input.IsPriority != nil {
		qa.IsPriority = *input.IsPriority
	}
	return ps.qaRepo.Create(ctx, nil, qa)
}

func (ps *portalService) UpdateQA(ctx context.Context, candidateID, qaID int, input QAInput) (*types.CandidateQA, error) {
	updates := map[string]interface{}{
		"question": strings.TrimSpace(input.Question),
		"answer":   strings.TrimSpace(input.Answer),
		"category": input.Category,
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}
	if input.IsPriority != nil {
		updates["is_priority"] = *input.IsPriority
	}
	return ps.qaRepo.Update(ctx, nil, candidateID, qaID, updates)
}

func (ps *portalService) ListQA(ctx context.Context, candidateID int, filters repos.QAFilters) ([]*types.CandidateQA, error) {
	return ps.qaRepo.ListByCandidate(ctx, nil, candidateID, filters)
}

func (ps *portalService) DeleteQA(ctx context.Context, candidateID, qaID int) error {
	return ps.qaRepo.Delete(ctx, nil, candidateID, qaID)
}

func (ps *portalService) CreateContent(ctx context.Context, candidateID int, input ContentInput) (*types.CampaignContent, error) {
	return ps.contentRepo.Create(ctx, nil, &types.CampaignContent{
		CandidateID: candidateID,
		ContentType: strings.ToLower(strings.TrimSpace(input.ContentType)),
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		MediaURLs:   input.MediaURLs,
		Tags:        input.Tags,
	})
}

func (ps *portalService) UpdateContent(ctx context.Context, candidateID, contentID int, input ContentInput) (*types.CampaignContent, error) {
	return ps.contentRepo.Update(ctx, nil, candidateID, contentID, map[string]interface{}{
		"content_type": strings.ToLower(strings.TrimSpace(input.ContentType)),
		"title":        strings.TrimSpace(input.Title),
		"content":      input.Content,
		"media_urls":   input.MediaURLs,
		"tags":         input.Tags,
	})
}

func (ps *portalService) PublishContent(ctx context.Context, candidateID, contentID int) (*types.CampaignContent, error) {
	return ps.contentRepo.Publish(ctx, nil, candidateID, contentID)
}

func (ps *portalService) ListContent(ctx context.Context, candidateID int, filters repos.ContentFilters) ([]*types.CampaignContent, error) {
	return ps.contentRepo.ListByCandidate(ctx, nil, candidateID, filters)
}

func (ps *portalService) DeleteContent(ctx context.Context, candidateID, contentID int) error {
	return ps.contentRepo.Delete(ctx, nil, candidateID, contentID)
}

func (ps *portalService) Dashboard(ctx context.Context, candidateID int) (*PortalDashboard, error) {
	candidate, err := ps.candidateRepo.GetByID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate %d: %w", candidateID, err)
	}
	dashboard := &PortalDashboard{
		Candidate:          candidate,
		VerificationStatus: types.VerificationPending,
	}

	profile, err := ps.profileRepo.GetByCandidateID(ctx, nil, candidateID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		dashboard.DataCompleteness = profile.DataCompleteness
		dashboard.VerificationStatus = profile.VerificationStatus
		updated := profile.UpdatedAt
		dashboard.LastProfileUpdate = &updated
	}

	positions, err := ps.positionRepo.ListByCandidate(ctx, nil, candidateID, "")
	if err != nil {
		return nil, err
	}
	dashboard.PositionCount = len(positions)

	qas, err := ps.qaRepo.ListByCandidate(ctx, nil, candidateID, repos.QAFilters{})
	if err != nil {
		return nil, err
	}
	dashboard.QACount = len(qas)

	content, err := ps.contentRepo.ListByCandidate(ctx, nil, candidateID, repos.ContentFilters{})
	if err != nil {
		return nil, err
	}
	for _, item := range content {
		if item.IsPublished {
			dashboard.PublishedContent++
		} else {
			dashboard.DraftContent++
		}
		dashboard.ContentViews += item.Views
	}
	return dashboard, nil
}
