package logger

import (
	"stepsurvey/internal/config"

	"go.uber.org/zap"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
