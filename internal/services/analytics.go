package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/observability"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// InteractionInput is one engagement event from the frontend.
type InteractionInput struct {
	SessionID  string         `json:"session_id"`
	ActionType string         `json:"action_type" binding:"required"`
	TargetID   string         `json:"target_id"`
	TargetType string         `json:"target_type"`
	Metadata   datatypes.JSON `json:"metadata"`
}

// UserDataExport is the full GDPR export payload for one user.
type UserDataExport struct {
	User         *types.User             `json:"user"`
	Watchlist    []*types.WatchlistItem  `json:"watchlist"`
	Interactions []*types.InteractionLog `json:"interactions"`
	ExportedAt   time.Time               `json:"exported_at"`
}

type AnalyticsService interface {
	LogInteraction(ctx context.Context, userID *int, input InteractionInput) error
	ExportUserData(ctx context.Context, userID int) (*UserDataExport, error)
	// DeleteUserData removes the user and everything keyed to them in one
	// transaction.
	DeleteUserData(ctx context.Context, userID int) error
}

type analyticsService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	watchlistRepo   repos.WatchlistRepo
	interactionRepo repos.InteractionLogRepo
}

func NewAnalyticsService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	watchlistRepo repos.WatchlistRepo,
	interactionRepo repos.InteractionLogRepo,
	baseLog *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		db:              db,
		log:             baseLog.With("service", "AnalyticsService"),
		userRepo:        userRepo,
		watchlistRepo:   watchlistRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *analyticsService) LogInteraction(ctx context.Context, userID *int, input InteractionInput) error {
	observability.Current().IncInteraction(input.ActionType)
	return s.interactionRepo.Append(ctx, nil, &types.InteractionLog{
		UserID:     userID,
		SessionID:  input.SessionID,
		ActionType: input.ActionType,
		TargetID:   input.TargetID,
		TargetType: input.TargetType,
		Metadata:   input.Metadata,
	})
}

func (s *analyticsService) ExportUserData(ctx context.Context, userID int) (*UserDataExport, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	watchlist, err := s.watchlistRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	interactions, err := s.interactionRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return &UserDataExport{
		User:         user,
		Watchlist:    watchlist,
		Interactions: interactions,
		ExportedAt:   time.Now(),
	}, nil
}

func (s *analyticsService) DeleteUserData(ctx context.Context, userID int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.interactionRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete interactions: %w", err)
		}
		if err := s.watchlistRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete watchlist: %w", err)
		}
		if err := s.userRepo.Delete(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("user data deleted", "user_id", userID)
	return nil
}
