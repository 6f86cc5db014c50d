package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/http/response"
	"github.com/ballotwise/ballotwise-backend/internal/services"
)

type CandidateHandler struct {
	candidateService services.CandidateService
	aggregator       services.AggregatorService
}

func NewCandidateHandler(candidateService services.CandidateService, aggregator services.AggregatorService) *CandidateHandler {
	return &CandidateHandler{
		candidateService: candidateService,
		aggregator:       aggregator,
	}
}

// GET /api/candidates/detailed?candidateIds=1,2&electionId=3
func (ch *CandidateHandler) GetDetailed(c *gin.Context) {
	ids, err := parseIDList(c.Query("candidateIds"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_candidate_ids", err)
		return
	}
	if len(ids) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_candidate_ids",
			errors.New("candidateIds is required"))
		return
	}
	electionID, err := strconv.Atoi(c.Query("electionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_election_id", err)
		return
	}

	detailed, err := ch.candidateService.GetDetailed(c.Request.Context(), ids, electionID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "detailed_failed", err)
		return
	}
	response.RespondOK(c, detailed)
}

func parseIDList(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GET /api/candidates/:id/positions?category=
func (ch *CandidateHandler) GetPositions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	positions, err := ch.candidateService.GetPositions(c.Request.Context(), id, c.Query("category"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "positions_failed", err)
		return
	}
	response.RespondOK(c, positions)
}

// GET /api/civic/status
func (ch *CandidateHandler) CivicStatus(c *gin.Context) {
	response.RespondOK(c, gin.H{"sources": ch.aggregator.SourceStatus()})
}
