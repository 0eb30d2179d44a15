package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/ledger/pkg/config"
)

var (
	// Global flags
	env     string
	source  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Ledger - 종목 스코어카드 대시보드",
	Long: `Ledger Unified CLI

회사 문서(JSON/YAML)를 읽어 스코어카드 대시보드와
필터/정렬 가능한 회사 오버레이를 제공합니다.

Usage:
  go run ./cmd/ledger [command]

Examples:
  go run ./cmd/ledger serve
  go run ./cmd/ledger view --bull-min 20 --sort avg
  go run ./cmd/ledger card MSFT --pick bull
  go run ./cmd/ledger check --source ./data.json`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production), overrides ENV")
	rootCmd.PersistentFlags().StringVar(&source, "source", "", "company document path or URL, overrides DATA_SOURCE")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the environment and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if env != "" {
		cfg.Env = env
	}
	if source != "" {
		cfg.Data.Source = source
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
