package logger_test

import (
	"log/slog"

	"github.com/graphcatalog/searchplanner/pkg/logger"
)

func ExampleNewDefaultLogger() {
	log := logger.NewDefaultLogger(slog.LevelDebug)

	log.Debug("classifying attribute", "attribute", "owner")
	log.Info("pushdown allowed", "leaves", 3)
	log.Warn("search includes non-indexed attribute", "attribute", "comment")
	log.Error("malformed emission detected", "pattern", "(AND )")
}

func ExampleNewDefaultLogger_second() {
	log := logger.NewDefaultLogger(slog.LevelInfo)

	log.Info("plan complete", "index_leaves", 2, "graph_leaves", 1)
	log.Warn("rate limit approaching", "current", 95, "limit", 100)
	log.Error("schema resolution failed", "attribute", "unknownAttr")
}
