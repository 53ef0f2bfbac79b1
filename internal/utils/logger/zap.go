package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/propmarket/server/internal/utils/requestctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger creates a zap Logger from cfg. Output is ignored; zap writes to stderr.
func NewZapLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "json"}
	}

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil && cfg.Level != "" {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	if cfg.Level == "" {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// For returns base enriched with the request fields of ctx.
func For(ctx context.Context, base *zap.Logger) *zap.Logger {
	if id := requestctx.RequestID(ctx); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
