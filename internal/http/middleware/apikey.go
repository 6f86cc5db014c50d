package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/observability"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/services"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// CampaignAccountKey is where the authenticated account lives in the gin
// context.
const CampaignAccountKey = "campaign_account"

type APIKeyMiddleware struct {
	log             *logger.Logger
	campaignService services.CampaignService
}

func NewAPIKeyMiddleware(campaignService services.CampaignService, baseLog *logger.Logger) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		log:             baseLog.With("middleware", "APIKeyMiddleware"),
		campaignService: campaignService,
	}
}

// RequireAPIKey authenticates the x-api-key header and charges the call
// against the account's monthly quota. Rejected calls are still audited.
func (km *APIKeyMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		account, err := km.campaignService.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "invalid or inactive API key", "code": "unauthorized"},
			})
			return
		}

		record := services.AccessRecord{
			Endpoint:   c.Request.URL.Path,
			Method:     c.Request.Method,
			StatusCode: http.StatusOK,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if err := km.campaignService.ConsumeQuota(c.Request.Context(), account, record); err != nil {
			if errors.Is(err, services.ErrQuotaExceeded) {
				observability.Current().IncQuotaRejected(account.SubscriptionTier)
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error": gin.H{"message": "monthly API quota exceeded", "code": "quota_exceeded"},
				})
				return
			}
			km.log.Error("quota accounting failed", "account_id", account.ID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "internal error", "code": "internal"},
			})
			return
		}

		observability.Current().IncCampaignCall(account.SubscriptionTier)

		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			Kind:              ctxutil.ActorCampaign,
			CampaignAccountID: account.ID,
			CandidateID:       account.CandidateID,
			SubscriptionTier:  account.SubscriptionTier,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(CampaignAccountKey, account)
		c.Next()
	}
}

// AccountFrom retrieves the authenticated campaign account set by
// RequireAPIKey.
func AccountFrom(c *gin.Context) *types.CampaignAccount {
	v, ok := c.Get(CampaignAccountKey)
	if !ok {
		return nil
	}
	account, ok := v.(*types.CampaignAccount)
	if !ok {
		return nil
	}
	return account
}
