package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/http/response"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/services"
)

// PortalHandler serves the authenticated candidate portal. Every route
// resolves the candidate from the token, never from the URL.
type PortalHandler struct {
	ragService     services.RAGService
	profileService services.ProfileService
	portalService  services.PortalService
}

func NewPortalHandler(
	ragService services.RAGService,
	profileService services.ProfileService,
	portalService services.PortalService,
) *PortalHandler {
	return &PortalHandler{
		ragService:     ragService,
		profileService: profileService,
		portalService:  portalService,
	}
}

func candidateFrom(c *gin.Context) (candidateID, accountID int, ok bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.Kind != ctxutil.ActorCandidate || rd.CandidateID == 0 {
		response.RespondError(c, http.StatusForbidden, "forbidden",
			errors.New("candidate account required"))
		return 0, 0, false
	}
	return rd.CandidateID, rd.CandidateAccountID, true
}

// GET /api/candidate/profile
func (ph *PortalHandler) GetProfile(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	enriched, err := ph.ragService.GetCandidateWithRAG(c.Request.Context(), candidateID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "profile_failed", err)
		return
	}
	response.RespondOK(c, enriched)
}

// PUT /api/candidate/profile
func (ph *PortalHandler) UpdateProfile(c *gin.Context) {
	candidateID, accountID, ok := candidateFrom(c)
	if !ok {
		return
	}
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	profile, err := ph.profileService.UpdateProfile(c.Request.Context(), candidateID, &accountID, req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	response.RespondOK(c, profile)
}

// GET /api/candidate/data-sources
func (ph *PortalHandler) GetDataSources(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	sources, err := ph.profileService.GetDataSources(c.Request.Context(), candidateID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "data_sources_failed", err)
		return
	}
	response.RespondOK(c, sources)
}

// GET /api/candidate/dashboard
func (ph *PortalHandler) Dashboard(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	dashboard, err := ph.portalService.Dashboard(c.Request.Context(), candidateID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "dashboard_failed", err)
		return
	}
	response.RespondOK(c, dashboard)
}

// POST /api/candidate/positions
func (ph *PortalHandler) CreatePosition(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	var req services.PositionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	position, err := ph.portalService.CreatePosition(c.Request.Context(), candidateID, req)
	if err != nil {
		if errors.Is(err, services.ErrPositionCategory) {
			response.RespondError(c, http.StatusBadRequest, "invalid_category", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	response.RespondOK(c, position)
}

// PUT /api/candidate/positions/:id
func (ph *PortalHandler) UpdatePosition(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	positionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.PositionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	position, err := ph.portalService.UpdatePosition(c.Request.Context(), candidateID, positionID, req)
	if err != nil {
		if errors.Is(err, services.ErrPositionCategory) {
			response.RespondError(c, http.StatusBadRequest, "invalid_category", err)
			return
		}
		response.RespondError(c, http.StatusNotFound, "update_failed", err)
		return
	}
	response.RespondOK(c, position)
}

// GET /api/candidate/positions
func (ph *PortalHandler) ListPositions(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	positions, err := ph.portalService.ListPositions(c.Request.Context(), candidateID, c.Query("category"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, positions)
}

// DELETE /api/candidate/positions/:id
func (ph *PortalHandler) DeletePosition(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	positionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ph.portalService.DeletePosition(c.Request.Context(), candidateID, positionID); err != nil {
		response.RespondError(c, http.StatusNotFound, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/candidate/qa
func (ph *PortalHandler) CreateQA(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	var req services.QAInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	qa, err := ph.portalService.CreateQA(c.Request.Context(), candidateID, req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	response.RespondOK(c, qa)
}

// PUT /api/candidate/qa/:id
func (ph *PortalHandler) UpdateQA(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	qaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.QAInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	qa, err := ph.portalService.UpdateQA(c.Request.Context(), candidateID, qaID, req)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "update_failed", err)
		return
	}
	response.RespondOK(c, qa)
}

// GET /api/candidate/qa
func (ph *PortalHandler) ListQA(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	filters := repos.QAFilters{Category: c.Query("category")}
	if raw := c.Query("public"); raw != "" {
		v := raw == "true" || raw == "1"
		filters.IsPublic = &v
	}
	qas, err := ph.portalService.ListQA(c.Request.Context(), candidateID, filters)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, qas)
}

// DELETE /api/candidate/qa/:id
func (ph *PortalHandler) DeleteQA(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	qaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ph.portalService.DeleteQA(c.Request.Context(), candidateID, qaID); err != nil {
		response.RespondError(c, http.StatusNotFound, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/candidate/content
func (ph *PortalHandler) CreateContent(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	var req services.ContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	content, err := ph.portalService.CreateContent(c.Request.Context(), candidateID, req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	response.RespondOK(c, content)
}

// PUT /api/candidate/content/:id
func (ph *PortalHandler) UpdateContent(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.ContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	content, err := ph.portalService.UpdateContent(c.Request.Context(), candidateID, contentID, req)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "update_failed", err)
		return
	}
	response.RespondOK(c, content)
}

// POST /api/candidate/content/:id/publish
func (ph *PortalHandler) PublishContent(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	content, err := ph.portalService.PublishContent(c.Request.Context(), candidateID, contentID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "publish_failed", err)
		return
	}
	response.RespondOK(c, content)
}

// GET /api/candidate/content
func (ph *PortalHandler) ListContent(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	filters := repos.ContentFilters{ContentType: c.Query("type")}
	if raw := c.Query("published"); raw != "" {
		v := raw == "true" || raw == "1"
		filters.IsPublished = &v
	}
	content, err := ph.portalService.ListContent(c.Request.Context(), candidateID, filters)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, content)
}

// DELETE /api/candidate/content/:id
func (ph *PortalHandler) DeleteContent(c *gin.Context) {
	candidateID, _, ok := candidateFrom(c)
	if !ok {
		return
	}
	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ph.portalService.DeleteContent(c.Request.Context(), candidateID, contentID); err != nil {
		response.RespondError(c, http.StatusNotFound, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
