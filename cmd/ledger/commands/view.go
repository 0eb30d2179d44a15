package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/ledger/internal/selection"
	"github.com/wonny/ledger/pkg/logger"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "회사 오버레이 테이블 출력",
	Long: `필터와 정렬을 적용한 회사 목록을 출력합니다.

하한값은 모두 >= 조건이며 동시에 만족해야 합니다.
숫자가 아닌 값은 조건 없음으로 취급합니다.

Example:
  go run ./cmd/ledger view
  go run ./cmd/ledger view --bull-min 20 --avg-min 7
  go run ./cmd/ledger view --sort bull --dir asc
  go run ./cmd/ledger view --json`,
	RunE: runView,
}

var (
	// View flags
	viewBearMin string
	viewBaseMin string
	viewBullMin string
	viewAvgMin  string
	viewSort    string
	viewDir     string
	viewJSON    bool
)

func init() {
	rootCmd.AddCommand(viewCmd)

	// Flags
	viewCmd.Flags().StringVar(&viewBearMin, "bear-min", "", "Bear 하한")
	viewCmd.Flags().StringVar(&viewBaseMin, "base-min", "", "Base 하한")
	viewCmd.Flags().StringVar(&viewBullMin, "bull-min", "", "Bull 하한")
	viewCmd.Flags().StringVar(&viewAvgMin, "avg-min", "", "평균 점수 하한")
	viewCmd.Flags().StringVar(&viewSort, "sort", "", "정렬 컬럼 (bear|base|bull|avg)")
	viewCmd.Flags().StringVar(&viewDir, "dir", "", "정렬 방향 (asc|desc, 기본 desc)")
	viewCmd.Flags().BoolVar(&viewJSON, "json", false, "JSON 출력")
}

func runView(cmd *cobra.Command, args []string) error {
	criteria := selection.FilterCriteria{
		BearMin: selection.ParseBound(viewBearMin),
		BaseMin: selection.ParseBound(viewBaseMin),
		BullMin: selection.ParseBound(viewBullMin),
		AvgMin:  selection.ParseBound(viewAvgMin),
	}

	column, err := selection.ParseColumn(viewSort)
	if err != nil {
		return err
	}
	dir, err := selection.ParseDirection(viewDir)
	if err != nil {
		return err
	}
	var spec *selection.SortSpec
	if column != selection.ColumnNone {
		spec = &selection.SortSpec{Column: column, Direction: dir}
	}

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

	companies := rt.store.All()
	rows := selection.ToRows(selection.ComputeView(companies, criteria, spec))

	out := cmd.OutOrStdout()
	if viewJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	widths := []int{8, 28, 8, 8, 8, 6}
	PrintTableHeader(out, []string{"Ticker", "Name", "Bear", "Base", "Bull", "Avg"}, widths)
	for _, r := range rows {
		PrintTableRow(out, []string{
			r.Ticker,
			r.Name,
			formatNumber(r.Bear),
			formatNumber(r.Base),
			formatNumber(r.Bull),
			r.AvgLabel,
		}, widths)
	}
	PrintSeparator(out)
	fmt.Fprintf(out, "%d / %d companies\n", len(rows), len(companies))

	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
