package app

import (
	"time"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string
	TokenTTL     time.Duration
	AdminToken   string
	HTTPAddr     string
	MetricsAddr  string
	Environment  string
	Version      string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tokenTTLSeconds := utils.GetEnvAsInt("TOKEN_TTL_SECONDS", 86400, log)
	return Config{
		JWTSecretKey: jwtSecretKey,
		TokenTTL:     time.Duration(tokenTTLSeconds) * time.Second,
		AdminToken:   utils.GetEnv("ADMIN_API_TOKEN", "", log),
		HTTPAddr:     utils.GetEnv("HTTP_ADDR", ":8080", log),
		MetricsAddr:  utils.GetEnv("METRICS_ADDR", "", log),
		Environment:  utils.GetEnv("APP_ENV", "development", log),
		Version:      utils.GetEnv("APP_VERSION", "dev", log),
	}
}
