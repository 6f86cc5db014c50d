package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// ErrInvalidTransition is returned when a verification status change is not
// allowed by the state machine.
var ErrInvalidTransition = errors.New("invalid verification status transition")

// ProfileInput carries a partial profile update. Nil pointers mean "leave
// the field alone"; empty strings clear it.
type ProfileInput struct {
	FullName         *string `json:"full_name"`
	PreferredName    *string `json:"preferred_name"`
	Age              *int    `json:"age"`
	BirthPlace       *string `json:"birth_place"`
	CurrentResidence *string `json:"current_residence"`
	FamilyStatus     *string `json:"family_status"`

	CurrentOccupation *string         `json:"current_occupation"`
	EmploymentHistory *datatypes.JSON `json:"employment_history"`
	Education         *datatypes.JSON `json:"education"`
	MilitaryService   *string         `json:"military_service"`

	PreviousOffices     *datatypes.JSON `json:"previous_offices"`
	PoliticalExperience *string         `json:"political_experience"`
	Endorsements        *datatypes.JSON `json:"endorsements"`

	EconomyPosition         *string `json:"economy_position"`
	HealthcarePosition      *string `json:"healthcare_position"`
	EducationPosition       *string `json:"education_position"`
	EnvironmentPosition     *string `json:"environment_position"`
	ImmigrationPosition     *string `json:"immigration_position"`
	CriminalJusticePosition *string `json:"criminal_justice_position"`
	InfrastructurePosition  *string `json:"infrastructure_position"`
	TaxesPosition           *string `json:"taxes_position"`
	ForeignPolicyPosition   *string `json:"foreign_policy_position"`
	SocialIssuesPosition    *string `json:"social_issues_position"`

	CampaignWebsite    *string         `json:"campaign_website"`
	CampaignSlogan     *string         `json:"campaign_slogan"`
	TopPriorities      *datatypes.JSON `json:"top_priorities"`
	KeyAccomplishments *datatypes.JSON `json:"key_accomplishments"`
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, candidateID int, updatedBy *int, input ProfileInput) (*types.CandidateProfile, error)
	SetVerificationStatus(ctx context.Context, candidateID int, status string) error
	GetDataSources(ctx context.Context, candidateID int) ([]*types.CandidateDataSource, error)
}

type profileService struct {
	log            *logger.Logger
	profileRepo    repos.CandidateProfileRepo
	dataSourceRepo repos.CandidateDataSourceRepo
}

func NewProfileService(
	profileRepo repos.CandidateProfileRepo,
	dataSourceRepo repos.CandidateDataSourceRepo,
	baseLog *logger.Logger,
) ProfileService {
	return &profileService{
		log:            baseLog.With("service", "ProfileService"),
		profileRepo:    profileRepo,
		dataSourceRepo: dataSourceRepo,
	}
}

// UpdateProfile upserts the candidate profile and records one
// candidate_supplied attribution row per field whose value actually
// changed. Re-submitting identical data changes nothing and records no new
// rows.
func (s *profileService) UpdateProfile(ctx context.Context, candidateID int, updatedBy *int, input ProfileInput) (*types.CandidateProfile, error) {
	profile, err := s.profileRepo.GetByCandidateID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load profile for candidate %d: %w", candidateID, err)
	}
	if profile == nil {
		profile = &types.CandidateProfile{
			CandidateID:        candidateID,
			VerificationStatus: types.VerificationPending,
		}
	}

	changed := applyProfileInput(profile, input)
	profile.LastUpdatedBy = updatedBy
	profile.DataCompleteness = computeCompleteness(profile)

	saved, err := s.profileRepo.Upsert(ctx, nil, profile)
	if err != nil {
		return nil, fmt.Errorf("save profile for candidate %d: %w", candidateID, err)
	}

	if len(changed) > 0 {
		now := time.Now()
		rows := make([]*types.CandidateDataSource, 0, len(changed))
		for _, field := range changed {
			rows = append(rows, &types.CandidateDataSource{
				CandidateID:       candidateID,
				FieldName:         field,
				SourceType:        types.SourceCandidateSupplied,
				SourceDescription: "Candidate portal submission",
				LastVerified:      &now,
				ConfidenceScore:   100,
			})
		}
		if err := s.dataSourceRepo.Record(ctx, nil, rows); err != nil {
			return nil, fmt.Errorf("record data sources for candidate %d: %w", candidateID, err)
		}
	}

	s.log.Info("candidate profile updated",
		"candidate_id", candidateID, "changed_fields", len(changed),
		"completeness", saved.DataCompleteness)
	return saved, nil
}

// SetVerificationStatus enforces the state machine: pending may move to
// verified or needs_review, and both of those are terminal.
func (s *profileService) SetVerificationStatus(ctx context.Context, candidateID int, status string) error {
	if status != types.VerificationVerified && status != types.VerificationNeedsReview {
		return fmt.Errorf("%w: unknown target %q", ErrInvalidTransition, status)
	}
	profile, err := s.profileRepo.GetByCandidateID(ctx, nil, candidateID)
	if err != nil {
		return fmt.Errorf("load profile for candidate %d: %w", candidateID, err)
	}
	if profile == nil {
		return fmt.Errorf("candidate %d has no profile", candidateID)
	}
	if profile.VerificationStatus != types.VerificationPending {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, profile.VerificationStatus)
	}
	return s.profileRepo.SetVerificationStatus(ctx, nil, candidateID, status)
}

func (s *profileService) GetDataSources(ctx context.Context, candidateID int) ([]*types.CandidateDataSource, error) {
	return s.dataSourceRepo.GetByCandidateID(ctx, nil, candidateID)
}

// applyProfileInput copies provided fields onto the profile and returns the
// names of fields whose stored value changed.
func applyProfileInput(p *types.CandidateProfile, in ProfileInput) []string {
	var changed []string

	setStr := func(field string, target *string, v *string) {
		if v == nil || *target == *v {
			return
		}
		*target = *v
		changed = append(changed, field)
	}
	setJSON := func(field string, target *datatypes.JSON, v *datatypes.JSON) {
		if v == nil || bytes.Equal(*target, *v) {
			return
		}
		*target = *v
		changed = append(changed, field)
	}

	setStr("full_name", &p.FullName, in.FullName)
	setStr("preferred_name", &p.PreferredName, in.PreferredName)
	if in.Age != nil && (p.Age == nil || *p.Age != *in.Age) {
		p.Age = in.Age
		changed = append(changed, "age")
	}
	setStr("birth_place", &p.BirthPlace, in.BirthPlace)
	setStr("current_residence", &p.CurrentResidence, in.CurrentResidence)
	setStr("family_status", &p.FamilyStatus, in.FamilyStatus)

	setStr("current_occupation", &p.CurrentOccupation, in.CurrentOccupation)
	setJSON("employment_history", &p.EmploymentHistory, in.EmploymentHistory)
	setJSON("education", &p.Education, in.Education)
	setStr("military_service", &p.MilitaryService, in.MilitaryService)

	setJSON("previous_offices", &p.PreviousOffices, in.PreviousOffices)
	setStr("political_experience", &p.PoliticalExperience, in.PoliticalExperience)
	setJSON("endorsements", &p.Endorsements, in.Endorsements)

	setStr("economy_position", &p.EconomyPosition, in.EconomyPosition)
	setStr("healthcare_position", &p.HealthcarePosition, in.HealthcarePosition)
	setStr("education_position", &p.EducationPosition, in.EducationPosition)
	setStr("environment_position", &p.EnvironmentPosition, in.EnvironmentPosition)
	setStr("immigration_position", &p.ImmigrationPosition, in.ImmigrationPosition)
	setStr("criminal_justice_position", &p.CriminalJusticePosition, in.CriminalJusticePosition)
	setStr("infrastructure_position", &p.InfrastructurePosition, in.InfrastructurePosition)
	setStr("taxes_position", &p.TaxesPosition, in.TaxesPosition)
	setStr("foreign_policy_position", &p.ForeignPolicyPosition, in.ForeignPolicyPosition)
	setStr("social_issues_position", &p.SocialIssuesPosition, in.SocialIssuesPosition)

	setStr("campaign_website", &p.CampaignWebsite, in.CampaignWebsite)
	setStr("campaign_slogan", &p.CampaignSlogan, in.CampaignSlogan)
	setJSON("top_priorities", &p.TopPriorities, in.TopPriorities)
	setJSON("key_accomplishments", &p.KeyAccomplishments, in.KeyAccomplishments)

	return changed
}

// completenessFields are the profile fields counted toward the completeness
// percentage.
func computeCompleteness(p *types.CandidateProfile) int {
	filled, total := 0, 0
	count := func(ok bool) {
		total++
		if ok {
			filled++
		}
	}

	count(p.FullName != "")
	count(p.PreferredName != "")
	count(p.Age != nil)
	count(p.BirthPlace != "")
	count(p.CurrentResidence != "")
	count(p.FamilyStatus != "")
	count(p.CurrentOccupation != "")
	count(len(jsonOrNil(p.EmploymentHistory)) > 0)
	count(len(jsonOrNil(p.Education)) > 0)
	count(p.MilitaryService != "")
	count(len(jsonOrNil(p.PreviousOffices)) > 0)
	count(p.PoliticalExperience != "")
	count(len(jsonOrNil(p.Endorsements)) > 0)
	for _, v := range positionColumns(p) {
		count(v != "")
	}
	count(p.CampaignWebsite != "")
	count(p.CampaignSlogan != "")
	count(len(jsonOrNil(p.TopPriorities)) > 0)
	count(len(jsonOrNil(p.KeyAccomplishments)) > 0)

	return filled * 100 / total
}
