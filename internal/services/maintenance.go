package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// LevelRepair names one election whose level field was corrected.
type LevelRepair struct {
	ElectionID int    `json:"election_id"`
	Title      string `json:"title"`
	OldLevel   string `json:"old_level"`
	NewLevel   string `json:"new_level"`
}

// LevelRepairReport summarizes one fix-levels run.
type LevelRepairReport struct {
	Checked int           `json:"checked"`
	Fixed   int           `json:"fixed"`
	Repairs []LevelRepair `json:"repairs"`
	RunAt   time.Time     `json:"run_at"`
}

// CongressRosterEntry is one member in an admin-supplied roster payload.
type CongressRosterEntry struct {
	BioguideID string `json:"bioguide_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Party      string `json:"party"`
	State      string `json:"state" binding:"required"`
	District   string `json:"district"`
	Chamber    string `json:"chamber" binding:"required"`
	Congress   int    `json:"congress"`
}

// CongressSyncReport summarizes one roster sync.
type CongressSyncReport struct {
	Upserted int   `json:"upserted"`
	Deduped  int64 `json:"deduped"`
	Total    int64 `json:"total"`
}

type MaintenanceService interface {
	// FixElectionLevels reclassifies every election whose stored level
	// disagrees with what its title implies.
	FixElectionLevels(ctx context.Context) (*LevelRepairReport, error)
	// CleanupPastElections deactivates elections dated before today.
	CleanupPastElections(ctx context.Context) (int64, error)
	SyncCongress(ctx context.Context, entries []CongressRosterEntry) (*CongressSyncReport, error)
}

type maintenanceService struct {
	log          *logger.Logger
	electionRepo repos.ElectionRepo
	congressRepo repos.CongressMemberRepo
}

func NewMaintenanceService(
	electionRepo repos.ElectionRepo,
	congressRepo repos.CongressMemberRepo,
	baseLog *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		log:          baseLog.With("service", "MaintenanceService"),
		electionRepo: electionRepo,
		congressRepo: congressRepo,
	}
}

// Keyword rules ordered most-specific first: local office titles beat the
// state keywords they sometimes contain ("State College city council").
var localKeywords = []string{
	"mayor", "city council", "school board", "county", "sheriff",
	"township", "borough", "alderman",
}

var stateKeywords = []string{
	"governor", "state senate", "state house", "state assembly",
	"attorney general", "secretary of state", "state legislature",
	"lieutenant governor",
}

var federalKeywords = []string{
	"president", "u.s.", "us senate", "us house", "congress",
	"senate", "house of representatives",
}

// levelForTitle classifies an election by its title. Empty string means no
// keyword matched and the stored level stands.
func levelForTitle(title string) string {
	t := strings.ToLower(title)
	for _, kw := range localKeywords {
		if strings.Contains(t, kw) {
			return types.ElectionLevelLocal
		}
	}
	for _, kw := range stateKeywords {
		if strings.Contains(t, kw) {
			return types.ElectionLevelState
		}
	}
	for _, kw := range federalKeywords {
		if strings.Contains(t, kw) {
			return types.ElectionLevelFederal
		}
	}
	return ""
}

func (ms *maintenanceService) FixElectionLevels(ctx context.Context) (*LevelRepairReport, error) {
	elections, err := ms.electionRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list elections: %w", err)
	}

	report := &LevelRepairReport{
		Checked: len(elections),
		Repairs: []LevelRepair{},
		RunAt:   time.Now(),
	}
	for _, election := range elections {
		want := levelForTitle(election.Title)
		if want == "" || want == election.Level {
			continue
		}
		if err := ms.electionRepo.SetLevel(ctx, nil, election.ID, want); err != nil {
			return nil, fmt.Errorf("set level for election %d: %w", election.ID, err)
		}
		report.Repairs = append(report.Repairs, LevelRepair{
			ElectionID: election.ID,
			Title:      election.Title,
			OldLevel:   election.Level,
			NewLevel:   want,
		})
	}
	report.Fixed = len(report.Repairs)
	if report.Fixed > 0 {
		ms.log.Info("election levels repaired", "checked", report.Checked, "fixed", report.Fixed)
	}
	return report, nil
}

func (ms *maintenanceService) CleanupPastElections(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deactivated, err := ms.electionRepo.DeactivateBefore(ctx, nil, startOfDay)
	if err != nil {
		return 0, fmt.Errorf("deactivate past elections: %w", err)
	}
	if deactivated > 0 {
		ms.log.Info("past elections deactivated", "count", deactivated)
	}
	return deactivated, nil
}

func (ms *maintenanceService) SyncCongress(ctx context.Context, entries []CongressRosterEntry) (*CongressSyncReport, error) {
	report := &CongressSyncReport{}
	for _, entry := range entries {
		congress := entry.Congress
		if congress == 0 {
			congress = 119
		}
		_, err := ms.congressRepo.UpsertByBioguide(ctx, nil, &types.CongressMember{
			BioguideID: strings.TrimSpace(entry.BioguideID),
			Name:       strings.TrimSpace(entry.Name),
			Party:      entry.Party,
			State:      strings.ToUpper(strings.TrimSpace(entry.State)),
			District:   entry.District,
			Chamber:    strings.ToLower(entry.Chamber),
			Congress:   congress,
		})
		if err != nil {
			return nil, fmt.Errorf("upsert member %s: %w", entry.BioguideID, err)
		}
		report.Upserted++
	}

	deduped, err := ms.congressRepo.Dedupe(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("dedupe congress members: %w", err)
	}
	report.Deduped = deduped

	total, err := ms.congressRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	report.Total = total

	ms.log.Info("congress roster synced",
		"upserted", report.Upserted, "deduped", report.Deduped, "total", report.Total)
	return report, nil
}
