package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/http/response"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/services"
)

// UserHandler covers voter-facing account features: watchlists, engagement
// analytics, and the GDPR export/delete operations.
type UserHandler struct {
	watchlistService services.WatchlistService
	analyticsService services.AnalyticsService
}

func NewUserHandler(watchlistService services.WatchlistService, analyticsService services.AnalyticsService) *UserHandler {
	return &UserHandler{
		watchlistService: watchlistService,
		analyticsService: analyticsService,
	}
}

func voterFrom(c *gin.Context) (int, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.Kind != ctxutil.ActorVoter || rd.VoterID == 0 {
		response.RespondError(c, http.StatusForbidden, "forbidden",
			errors.New("voter account required"))
		return 0, false
	}
	return rd.VoterID, true
}

// GET /api/watchlist
func (uh *UserHandler) GetWatchlist(c *gin.Context) {
	userID, ok := voterFrom(c)
	if !ok {
		return
	}
	items, err := uh.watchlistService.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "watchlist_failed", err)
		return
	}
	response.RespondOK(c, items)
}

// POST /api/watchlist
func (uh *UserHandler) AddToWatchlist(c *gin.Context) {
	userID, ok := voterFrom(c)
	if !ok {
		return
	}
	var req struct {
		ElectionID int `json:"election_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := uh.watchlistService.Add(c.Request.Context(), userID, req.ElectionID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "add_failed", err)
		return
	}
	response.RespondOK(c, item)
}

// DELETE /api/watchlist/:electionId
func (uh *UserHandler) RemoveFromWatchlist(c *gin.Context) {
	userID, ok := voterFrom(c)
	if !ok {
		return
	}
	electionID, err := strconv.Atoi(c.Param("electionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := uh.watchlistService.Remove(c.Request.Context(), userID, electionID); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "remove_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/analytics/interaction
// Anonymous events are accepted; the user id is attached when a token is
// present.
func (uh *UserHandler) LogInteraction(c *gin.Context) {
	var req services.InteractionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var userID *int
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.Kind == ctxutil.ActorVoter {
		id := rd.VoterID
		userID = &id
	}
	if err := uh.analyticsService.LogInteraction(c.Request.Context(), userID, req); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "log_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/user/data-export
func (uh *UserHandler) ExportData(c *gin.Context) {
	userID, ok := voterFrom(c)
	if !ok {
		return
	}
	export, err := uh.analyticsService.ExportUserData(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	response.RespondOK(c, export)
}

// DELETE /api/user/data
func (uh *UserHandler) DeleteData(c *gin.Context) {
	userID, ok := voterFrom(c)
	if !ok {
		return
	}
	if err := uh.analyticsService.DeleteUserData(c.Request.Context(), userID); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
