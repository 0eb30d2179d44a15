package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/ledger/internal/selection"
	"github.com/wonny/ledger/pkg/logger"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "회사 문서 검증",
	Long: `회사 문서를 읽고 검증한 뒤 요약을 출력합니다.

검증 항목:
- 티커 누락/중복 (오류)
- 시나리오 값 누락 (경고, 0으로 취급)
- 빈 점수표 (경고, 평균 0)

Example:
  go run ./cmd/ledger check
  go run ./cmd/ledger check --source https://example.com/companies.json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithWriter(cfg, cmd.ErrOrStderr())

	rt, err := bootstrap(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	status := rt.store.Status()

	PrintHeader(out, "Document Check")
	PrintKeyValue(out, "Source", status.Source, 9)
	PrintKeyValue(out, "Companies", fmt.Sprintf("%d", status.Companies), 9)
	PrintSeparator(out)

	warnings := 0
	for _, c := range rt.store.All() {
		missing := []string{}
		if c.Scenario == nil || c.Scenario.Bear == nil {
			missing = append(missing, "bear")
		}
		if c.Scenario == nil || c.Scenario.Base == nil {
			missing = append(missing, "base")
		}
		if c.Scenario == nil || c.Scenario.Bull == nil {
			missing = append(missing, "bull")
		}
		if len(missing) > 0 {
			PrintWarning(out, fmt.Sprintf("%s: missing scenario %v (treated as 0)", c.Ticker, missing))
			warnings++
		}
		if len(c.Scoreboard) == 0 {
			PrintWarning(out, fmt.Sprintf("%s: empty scoreboard (avg %.2f)", c.Ticker, selection.AverageScore(&c)))
			warnings++
		}
	}

	if warnings == 0 {
		PrintSuccess(out, "Document is valid")
	} else {
		PrintSuccess(out, fmt.Sprintf("Document is valid (%d warnings)", warnings))
	}

	return nil
}
