package logger

import (
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/config"
)

// New returns a development logger for the development environment and a
// JSON production logger for everything else.
func New(env string) (*zap.Logger, error) {
	if env == config.EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
