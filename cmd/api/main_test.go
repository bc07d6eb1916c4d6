package main

import (
	"context"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"

	"github.com/inest/inest-backend/pkg/logger"
)

func TestRun_FailsFastAndLeavesLoggerUsable(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"bad mongo uri":  {"JWT_SECRET": "s", "MONGO_URI": "not-a-uri", "LOG_LEVEL": "error"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			logger.Reset()
			t.Cleanup(logger.Reset)

			err := run(context.Background(), envconfig.MapLookuper(env))
			if err == nil {
				t.Fatalf("expected startup error")
			}
			if name == "missing secret" && !strings.Contains(err.Error(), "JWT_SECRET") {
				t.Fatalf("expected JWT_SECRET in error, got %v", err)
			}

			// main logs the returned error through the singleton.
			log := logger.Get()
			log.Error().Err(err).Msg("startup failed")
		})
	}
}
