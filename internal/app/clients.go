package app

import (
	"github.com/ballotwise/ballotwise-backend/internal/clients/civic"
	"github.com/ballotwise/ballotwise-backend/internal/clients/redisquota"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

type Clients struct {
	Civic *civic.Registry
	// Quota is nil when redis is unreachable; campaign usage then falls back
	// to counting access-log rows.
	Quota redisquota.Counter
}

func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring external clients...")
	registry := civic.NewRegistry(log)

	quota, err := redisquota.NewCounter(log)
	if err != nil {
		log.Warn("redis quota counter unavailable, using database fallback", "error", err)
		quota = nil
	}
	return Clients{Civic: registry, Quota: quota}
}
