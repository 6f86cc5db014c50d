package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/http/response"
	"github.com/ballotwise/ballotwise-backend/internal/services"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type ElectionHandler struct {
	electionService services.ElectionService
	pollingService  services.PollingService
}

func NewElectionHandler(electionService services.ElectionService, pollingService services.PollingService) *ElectionHandler {
	return &ElectionHandler{
		electionService: electionService,
		pollingService:  pollingService,
	}
}

// GET /api/elections
func (eh *ElectionHandler) List(c *gin.Context) {
	filters := types.ElectionFilters{
		State:     filterValue(c.Query("state")),
		Types:     filterList(c.Query("type")),
		Levels:    filterList(c.Query("level")),
		Timeframe: filterValue(c.Query("timeframe")),
		Search:    strings.TrimSpace(c.Query("search")),
		Parties:   filterList(c.Query("party")),
	}
	elections, err := eh.electionService.List(c.Request.Context(), filters)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, elections)
}

// filterValue maps the frontend's "all" sentinel to no-constraint.
func filterValue(raw string) string {
	v := strings.TrimSpace(raw)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func filterList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := filterValue(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// GET /api/elections/:id
func (eh *ElectionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	election, err := eh.electionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, election)
}

// GET /api/elections/:id/candidates
func (eh *ElectionHandler) Candidates(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	candidates, err := eh.electionService.GetCandidates(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, candidates)
}

// GET /api/elections/:id/results
func (eh *ElectionHandler) Results(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	results, err := eh.electionService.GetResults(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, results)
}

// GET /api/elections/:id/polling-trends
func (eh *ElectionHandler) PollingTrends(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	trends, err := eh.pollingService.GetElectionTrends(c.Request.Context(), id, days)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "trends_failed", err)
		return
	}
	response.RespondOK(c, trends)
}

// POST /api/elections/:id/update-polling
func (eh *ElectionHandler) UpdatePolling(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	summary, err := eh.pollingService.UpdateElectionPolling(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "polling_update_failed", err)
		return
	}
	response.RespondOK(c, summary)
}

// GET /api/stats
func (eh *ElectionHandler) Stats(c *gin.Context) {
	stats, err := eh.electionService.GetStats(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "stats_failed", err)
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/members and GET /api/members/:state
func (eh *ElectionHandler) Members(c *gin.Context) {
	state := strings.ToUpper(strings.TrimSpace(c.Param("state")))
	members, err := eh.electionService.ListMembers(c.Request.Context(), state)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "members_failed", err)
		return
	}
	response.RespondOK(c, members)
}
