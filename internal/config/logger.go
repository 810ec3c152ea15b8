package config

import "go.uber.org/zap"

// NewLogger returns a JSON production logger for APP_ENV=prod and a
// human-readable development logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
    if env == "prod" {
        return zap.NewProduction()
    }
    return zap.NewDevelopment()
}
