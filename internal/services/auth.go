package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// JWTClaims carry the actor kind alongside the standard claims so one
// secret serves both voter and candidate tokens without letting either
// impersonate the other.
type JWTClaims struct {
	Kind        string `json:"kind"`
	CandidateID int    `json:"candidate_id,omitempty"`
	jwt.RegisteredClaims
}

type VoterSignup struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CandidateSignup struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	CandidateID   int    `json:"candidate_id" binding:"required"`
	CampaignName  string `json:"campaign_name"`
	CampaignTitle string `json:"campaign_title"`
}

type AuthService interface {
	SignupVoter(ctx context.Context, input VoterSignup) (*types.User, string, error)
	SigninVoter(ctx context.Context, email, password string) (*types.User, string, error)
	SignupCandidate(ctx context.Context, input CandidateSignup) (*types.CandidateAccount, string, error)
	SigninCandidate(ctx context.Context, email, password string) (*types.CandidateAccount, string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// Me resolves the authenticated voter from the request context.
	Me(ctx context.Context) (*types.User, error)
}

type authService struct {
	log                  *logger.Logger
	userRepo             repos.UserRepo
	candidateAccountRepo repos.CandidateAccountRepo
	candidateRepo        repos.CandidateRepo
	jwtSecretKey         string
	tokenTTL             time.Duration
}

func NewAuthService(
	userRepo repos.UserRepo,
	candidateAccountRepo repos.CandidateAccountRepo,
	candidateRepo repos.CandidateRepo,
	jwtSecretKey string,
	tokenTTL time.Duration,
	baseLog *logger.Logger,
) AuthService {
	return &authService{
		log:                  baseLog.With("service", "AuthService"),
		userRepo:             userRepo,
		candidateAccountRepo: candidateAccountRepo,
		candidateRepo:        candidateRepo,
		jwtSecretKey:         jwtSecretKey,
		tokenTTL:             tokenTTL,
	}
}

func (as *authService) SignupVoter(ctx context.Context, input VoterSignup) (*types.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	taken, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user, err := as.userRepo.Create(ctx, nil, &types.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	})
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := as.generateToken(string(ctxutil.ActorVoter), user.ID, 0)
	if err != nil {
		return nil, "", err
	}
	as.log.Info("voter signed up", "user_id", user.ID)
	return user, token, nil
}

func (as *authService) SigninVoter(ctx context.Context, email, password string) (*types.User, string, error) {
	user, err := as.userRepo.GetByEmail(ctx, nil, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := as.generateToken(string(ctxutil.ActorVoter), user.ID, 0)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (as *authService) SignupCandidate(ctx context.Context, input CandidateSignup) (*types.CandidateAccount, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	taken, err := as.candidateAccountRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}
	// The linked candidate must exist before a portal account can claim it.
	if _, err := as.candidateRepo.GetByID(ctx, nil, input.CandidateID); err != nil {
		return nil, "", fmt.Errorf("candidate %d not found: %w", input.CandidateID, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	account, err := as.candidateAccountRepo.Create(ctx, nil, &types.CandidateAccount{
		CandidateID:   input.CandidateID,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          "campaign_manager",
		CampaignName:  strings.TrimSpace(input.CampaignName),
		CampaignTitle: strings.TrimSpace(input.CampaignTitle),
		IsActive:      true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create candidate account: %w", err)
	}

	token, err := as.generateToken(string(ctxutil.ActorCandidate), account.ID, account.CandidateID)
	if err != nil {
		return nil, "", err
	}
	as.log.Info("candidate account created", "account_id", account.ID, "candidate_id", account.CandidateID)
	return account, token, nil
}

func (as *authService) SigninCandidate(ctx context.Context, email, password string) (*types.CandidateAccount, string, error) {
	account, err := as.candidateAccountRepo.GetByEmail(ctx, nil, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", fmt.Errorf("load candidate account: %w", err)
	}
	if account == nil || !account.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := as.candidateAccountRepo.TouchLastLogin(ctx, nil, account.ID); err != nil {
		as.log.Warn("failed to touch last login", "account_id", account.ID, "error", err)
	}
	token, err := as.generateToken(string(ctxutil.ActorCandidate), account.ID, account.CandidateID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// SetContextFromToken validates a bearer token and attaches the resolved
// actor to the context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, ErrInvalidToken
	}
	subjectID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return ctx, ErrInvalidToken
	}

	rd := &ctxutil.RequestData{TokenString: tokenString}
	switch ctxutil.ActorKind(claims.Kind) {
	case ctxutil.ActorVoter:
		rd.Kind = ctxutil.ActorVoter
		rd.VoterID = subjectID
	case ctxutil.ActorCandidate:
		rd.Kind = ctxutil.ActorCandidate
		rd.CandidateAccountID = subjectID
		rd.CandidateID = claims.CandidateID
	default:
		return ctx, ErrInvalidToken
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) Me(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.Kind != ctxutil.ActorVoter {
		return nil, ErrInvalidToken
	}
	return as.userRepo.GetByID(ctx, nil, rd.VoterID)
}

func (as *authService) generateToken(kind string, subjectID, candidateID int) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Kind:        kind,
		CandidateID: candidateID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subjectID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
