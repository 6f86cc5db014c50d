package app

import (
	httpMW "github.com/ballotwise/ballotwise-backend/internal/http/middleware"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth   *httpMW.AuthMiddleware
	APIKey *httpMW.APIKeyMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:   httpMW.NewAuthMiddleware(s.Auth, log),
		APIKey: httpMW.NewAPIKeyMiddleware(s.Campaign, log),
	}
}
