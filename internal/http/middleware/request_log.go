package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			fields = append(fields, "actor_kind", string(rd.Kind))
			switch rd.Kind {
			case ctxutil.ActorVoter:
				fields = append(fields, "voter_id", rd.VoterID)
			case ctxutil.ActorCandidate:
				fields = append(fields, "candidate_id", rd.CandidateID)
			case ctxutil.ActorCampaign:
				fields = append(fields, "campaign_account_id", rd.CampaignAccountID)
			}
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
