package types

import (
	"time"

	"gorm.io/datatypes"
)

// Profile verification states. pending may move to verified or needs_review;
// both of those are terminal.
const (
	VerificationPending     = "pending"
	VerificationVerified    = "verified"
	VerificationNeedsReview = "needs_review"
)

// CandidateProfile is the candidate-supplied record behind the campaign
// portal. When a field here is non-empty it is authoritative over anything
// the aggregator produced.
type CandidateProfile struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID int        `gorm:"uniqueIndex;not null;column:candidate_id" json:"candidate_id"`
	Candidate   *Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`

	// Personal information
	FullName         string `gorm:"column:full_name" json:"full_name"`
	PreferredName    string `gorm:"column:preferred_name" json:"preferred_name"`
	Age              *int   `gorm:"column:age" json:"age"`
	BirthPlace       string `gorm:"column:birth_place" json:"birth_place"`
	CurrentResidence string `gorm:"column:current_residence" json:"current_residence"`
	FamilyStatus     string `gorm:"column:family_status" json:"family_status"`

	// Professional background
	CurrentOccupation string         `gorm:"column:current_occupation" json:"current_occupation"`
	EmploymentHistory datatypes.JSON `gorm:"column:employment_history" json:"employment_history"`
	Education         datatypes.JSON `gorm:"column:education" json:"education"`
	MilitaryService   string         `gorm:"column:military_service" json:"military_service"`

	// Political experience
	PreviousOffices     datatypes.JSON `gorm:"column:previous_offices" json:"previous_offices"`
	PoliticalExperience string         `gorm:"column:political_experience" json:"political_experience"`
	Endorsements        datatypes.JSON `gorm:"column:endorsements" json:"endorsements"`

	// Structured policy positions, one column per category
	EconomyPosition         string `gorm:"column:economy_position" json:"economy_position"`
	HealthcarePosition      string `gorm:"column:healthcare_position" json:"healthcare_position"`
	EducationPosition       string `gorm:"column:education_position" json:"education_position"`
	EnvironmentPosition     string `gorm:"column:environment_position" json:"environment_position"`
	ImmigrationPosition     string `gorm:"column:immigration_position" json:"immigration_position"`
	CriminalJusticePosition string `gorm:"column:criminal_justice_position" json:"criminal_justice_position"`
	InfrastructurePosition  string `gorm:"column:infrastructure_position" json:"infrastructure_position"`
	TaxesPosition           string `gorm:"column:taxes_position" json:"taxes_position"`
	ForeignPolicyPosition   string `gorm:"column:foreign_policy_position" json:"foreign_policy_position"`
	SocialIssuesPosition    string `gorm:"column:social_issues_position" json:"social_issues_position"`

	// Campaign information
	CampaignWebsite    string         `gorm:"column:campaign_website" json:"campaign_website"`
	CampaignSlogan     string         `gorm:"column:campaign_slogan" json:"campaign_slogan"`
	TopPriorities      datatypes.JSON `gorm:"column:top_priorities" json:"top_priorities"`
	KeyAccomplishments datatypes.JSON `gorm:"column:key_accomplishments" json:"key_accomplishments"`

	LastUpdatedBy      *int      `gorm:"column:last_updated_by" json:"last_updated_by"`
	DataCompleteness   int       `gorm:"column:data_completeness;default:0" json:"data_completeness"`
	VerificationStatus string    `gorm:"column:verification_status;default:pending" json:"verification_status"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}
