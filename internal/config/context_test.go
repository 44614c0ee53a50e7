package config

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{DataDir: "./landing", OutDir: "./built"}
	ctx := NewContext(context.Background(), cfg)

	assert.Same(t, cfg, FromContext(ctx))
}

func TestFromContextDefault(t *testing.T) {
	cfg := FromContext(context.Background())

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
}

func TestLoggerRoundTrip(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, GetLogger(ctx))
}

func TestGetLoggerDefault(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))
}
