package services

import (
	"context"
	"fmt"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type WatchlistService interface {
	Add(ctx context.Context, userID, electionID int) (*types.WatchlistItem, error)
	Remove(ctx context.Context, userID, electionID int) error
	List(ctx context.Context, userID int) ([]*types.WatchlistItem, error)
}

type watchlistService struct {
	log           *logger.Logger
	watchlistRepo repos.WatchlistRepo
	electionRepo  repos.ElectionRepo
}

func NewWatchlistService(
	watchlistRepo repos.WatchlistRepo,
	electionRepo repos.ElectionRepo,
	baseLog *logger.Logger,
) WatchlistService {
	return &watchlistService{
		log:           baseLog.With("service", "WatchlistService"),
		watchlistRepo: watchlistRepo,
		electionRepo:  electionRepo,
	}
}

// Add is idempotent: watching an already-watched election returns the
// existing item.
func (s *watchlistService) Add(ctx context.Context, userID, electionID int) (*types.WatchlistItem, error) {
	if _, err := s.electionRepo.GetByID(ctx, nil, electionID); err != nil {
		return nil, fmt.Errorf("election %d not found: %w", electionID, err)
	}
	return s.watchlistRepo.Add(ctx, nil, &types.WatchlistItem{
		UserID:     userID,
		ElectionID: electionID,
	})
}

func (s *watchlistService) Remove(ctx context.Context, userID, electionID int) error {
	return s.watchlistRepo.Remove(ctx, nil, userID, electionID)
}

func (s *watchlistService) List(ctx context.Context, userID int) ([]*types.WatchlistItem, error) {
	return s.watchlistRepo.ListByUser(ctx, nil, userID)
}
