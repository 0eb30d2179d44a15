package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/ledger/pkg/config"
	"github.com/wonny/ledger/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Logger 기능 테스트",
	Long: `구조화된 로깅 기능을 테스트합니다.

이 명령어는:
- JSON/Console 포맷 테스트
- 로그 레벨 테스트
- 구조화된 필드 로깅
- 에러 컨텍스트 로깅

Example:
  go run ./cmd/ledger test-logger`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Ledger Logger Test ===")

	steps := []struct {
		title string
		run   func(w io.Writer)
	}{
		{"1. JSON Format (Production)", logJSONFormat},
		{"2. Console Format (Development)", logConsoleFormat},
		{"3. Structured Logging with Fields", logStructured},
		{"4. Error Logging", logErrors},
	}

	for _, step := range steps {
		fmt.Fprintln(out, step.title)
		fmt.Fprintln(out, "--------------------------------")
		step.run(out)
		fmt.Fprintln(out)
	}

	PrintSuccess(out, "All logger tests completed!")
	return nil
}

func logJSONFormat(w io.Writer) {
	log := logger.NewWithWriter(&config.Config{Env: "production", LogLevel: "info", LogFormat: "json"}, w)
	log.Info("Service started")
	log.Warn("Document cache miss")
	log.Error("Failed to fetch remote document")
}

func logConsoleFormat(w io.Writer) {
	log := logger.NewWithWriter(&config.Config{Env: "development", LogLevel: "debug", LogFormat: "console"}, w)
	log.Debug("Debugging overlay recompute")
	log.Info("Request received from client")
	log.Warn("Rate limit almost reached")
}

func logStructured(w io.Writer) {
	log := logger.NewWithWriter(&config.Config{Env: "production", LogLevel: "info", LogFormat: "json"}, w)

	// Single field
	log.WithField("session", "3f6c1b2e").Info("Overlay session opened")

	// Multiple fields
	log.WithFields(map[string]interface{}{
		"ticker": "MSFT",
		"sort":   "avg",
		"dir":    "desc",
		"rows":   12,
	}).Info("Overlay view computed")

	// Chained fields
	log.WithField("module", "dataset").
		WithField("source", "file:./data.json").
		Info("Document reload started")
}

func logErrors(w io.Writer) {
	log := logger.NewWithWriter(&config.Config{Env: "production", LogLevel: "error", LogFormat: "json"}, w)

	// Simple error
	err := errors.New("connection timeout")
	log.WithError(err).Error("Failed to fetch document")

	// Error with context
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  15000,
			"source":      "https://example.com/companies.json",
		}).
		Error("Document fetch failed after retries")
}
