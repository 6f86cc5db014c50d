package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/http/middleware"
	"github.com/ballotwise/ballotwise-backend/internal/http/response"
	"github.com/ballotwise/ballotwise-backend/internal/services"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// POST /api/campaign/register
func (ch *CampaignHandler) Register(c *gin.Context) {
	var req services.CampaignRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	account, err := ch.campaignService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTier) {
			response.RespondError(c, http.StatusBadRequest, "unknown_tier", err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "registration_failed", err)
		return
	}
	response.RespondOK(c, account)
}

// GET /api/campaign/analytics/:electionId
func (ch *CampaignHandler) Analytics(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized",
			errors.New("campaign account required"))
		return
	}
	electionID, err := strconv.Atoi(c.Param("electionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	analytics, err := ch.campaignService.GetAnalytics(c.Request.Context(), account, electionID)
	if err != nil {
		if errors.Is(err, services.ErrTierInsufficient) {
			response.RespondError(c, http.StatusForbidden, "tier_insufficient", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "analytics_failed", err)
		return
	}
	response.RespondOK(c, analytics)
}

// GET /api/campaign/polling/:electionId?days=
func (ch *CampaignHandler) Polling(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized",
			errors.New("campaign account required"))
		return
	}
	electionID, err := strconv.Atoi(c.Param("electionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	polling, err := ch.campaignService.GetPolling(c.Request.Context(), account, electionID, days)
	if err != nil {
		if errors.Is(err, services.ErrTierInsufficient) {
			response.RespondError(c, http.StatusForbidden, "tier_insufficient", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "polling_failed", err)
		return
	}
	response.RespondOK(c, polling)
}

// GET /api/campaign/subscription
func (ch *CampaignHandler) Subscription(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized",
			errors.New("campaign account required"))
		return
	}
	info, err := ch.campaignService.GetSubscription(c.Request.Context(), account)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "subscription_failed", err)
		return
	}
	response.RespondOK(c, info)
}
