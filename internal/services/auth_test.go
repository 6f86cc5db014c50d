package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	svc := NewAuthService(
		repos.NewUserRepo(db, log),
		repos.NewCandidateAccountRepo(db, log),
		repos.NewCandidateRepo(db, log),
		"test-secret",
		time.Hour,
		log)
	return svc, db
}

func TestAuthService_VoterSignupAndSignin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, token, err := svc.SignupVoter(ctx, VoterSignup{
		Email: "Voter@Example.com", Password: "hunter2hunter2", FirstName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "voter@example.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.SignupVoter(ctx, VoterSignup{Email: "voter@example.com", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, token, err = svc.SigninVoter(ctx, "voter@example.com", "hunter2hunter2")
	require.NoError(t, err)

	authed, err := svc.SetContextFromToken(ctx, token)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(authed)
	require.NotNil(t, rd)
	assert.Equal(t, ctxutil.ActorVoter, rd.Kind)
	assert.Equal(t, user.ID, rd.VoterID)
}

func TestAuthService_SigninRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	_, _, err := svc.SignupVoter(ctx, VoterSignup{Email: "a@b.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, _, err = svc.SigninVoter(ctx, "a@b.com", "wrong-password")

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_CandidateSignupLinksCandidate(t *testing.T) {
	svc, db := newAuthService(t)
	_, candidate := seedCandidate(t, db)
	ctx := context.Background()

	account, token, err := svc.SignupCandidate(ctx, CandidateSignup{
		Email: "jane@porter2026.org", Password: "campaign-secret",
		CandidateID: candidate.ID, CampaignName: "Porter for Senate",
	})
	require.NoError(t, err)
	assert.Equal(t, candidate.ID, account.CandidateID)

	authed, err := svc.SetContextFromToken(ctx, token)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(authed)
	require.NotNil(t, rd)
	assert.Equal(t, ctxutil.ActorCandidate, rd.Kind)
	assert.Equal(t, candidate.ID, rd.CandidateID)
	assert.Equal(t, account.ID, rd.CandidateAccountID)
}

func TestAuthService_CandidateSignupRequiresExistingCandidate(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.SignupCandidate(context.Background(), CandidateSignup{
		Email: "ghost@example.com", Password: "campaign-secret", CandidateID: 9999,
	})

	require.Error(t, err)
}

func TestAuthService_SetContextFromToken_RejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.SetContextFromToken(context.Background(), "not-a-jwt")

	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_SetContextFromToken_RejectsExpired(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	svc := NewAuthService(
		repos.NewUserRepo(db, log),
		repos.NewCandidateAccountRepo(db, log),
		repos.NewCandidateRepo(db, log),
		"test-secret",
		-time.Minute,
		log)
	ctx := context.Background()

	_, token, err := svc.SignupVoter(ctx, VoterSignup{Email: "x@y.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = svc.SetContextFromToken(ctx, token)

	require.ErrorIs(t, err, ErrInvalidToken)
}
