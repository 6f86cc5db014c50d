package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/http/response"
	"github.com/ballotwise/ballotwise-backend/internal/services"
)

// AdminHandler exposes the data-repair and sync operations. Routes are
// guarded by the admin token middleware, not by user auth.
type AdminHandler struct {
	maintenanceService services.MaintenanceService
	profileService     services.ProfileService
}

func NewAdminHandler(maintenanceService services.MaintenanceService, profileService services.ProfileService) *AdminHandler {
	return &AdminHandler{
		maintenanceService: maintenanceService,
		profileService:     profileService,
	}
}

// POST /api/admin/elections/fix-levels
func (ah *AdminHandler) FixElectionLevels(c *gin.Context) {
	report, err := ah.maintenanceService.FixElectionLevels(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "fix_levels_failed", err)
		return
	}
	response.RespondOK(c, report)
}

// POST /api/admin/elections/cleanup
func (ah *AdminHandler) CleanupPastElections(c *gin.Context) {
	deactivated, err := ah.maintenanceService.CleanupPastElections(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "cleanup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deactivated": deactivated})
}

// POST /api/admin/congress/sync
func (ah *AdminHandler) SyncCongress(c *gin.Context) {
	var req struct {
		Members []services.CongressRosterEntry `json:"members" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	report, err := ah.maintenanceService.SyncCongress(c.Request.Context(), req.Members)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "sync_failed", err)
		return
	}
	response.RespondOK(c, report)
}

// POST /api/admin/candidates/:id/verification
func (ah *AdminHandler) SetVerificationStatus(c *gin.Context) {
	candidateID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.profileService.SetVerificationStatus(c.Request.Context(), candidateID, req.Status); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			response.RespondError(c, http.StatusConflict, "invalid_transition", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "verification_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"candidate_id": candidateID, "status": req.Status})
}
