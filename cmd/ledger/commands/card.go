package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/ledger/internal/card"
	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/pkg/logger"
)

// cardCmd represents the card command
var cardCmd = &cobra.Command{
	Use:   "card [TICKER]",
	Short: "회사 스코어카드 출력",
	Long: `한 회사의 스코어카드를 출력합니다.
티커를 생략하면 문서의 첫 번째 회사를 사용합니다.

Example:
  go run ./cmd/ledger card
  go run ./cmd/ledger card MSFT --pick bull
  go run ./cmd/ledger card AAPL --qa`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCard,
}

var (
	// Card flags
	cardPick string
	cardQA   bool
	cardJSON bool
)

func init() {
	rootCmd.AddCommand(cardCmd)

	// Flags
	cardCmd.Flags().StringVar(&cardPick, "pick", "", "시나리오 선택 (bear|base|bull)")
	cardCmd.Flags().BoolVar(&cardQA, "qa", false, "점수표 대신 Q&A 출력")
	cardCmd.Flags().BoolVar(&cardJSON, "json", false, "JSON 출력")
}

func runCard(cmd *cobra.Command, args []string) error {
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

	var company contracts.Company
	if len(args) == 1 {
		company, err = rt.store.Get(args[0])
		if err != nil {
			return err
		}
	} else {
		var ok bool
		company, ok = rt.store.First()
		if !ok {
			return fmt.Errorf("document has no companies")
		}
	}

	mode := card.ModeScores
	if cardQA {
		mode = card.ModeQA
	}
	c := card.Build(&company, card.Options{
		Pick:       cardPick,
		Mode:       mode,
		PodcastURL: cfg.PodcastURL,
	})

	out := cmd.OutOrStdout()
	if cardJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	PrintHeader(out, fmt.Sprintf("%s (%s)", c.Profile.Name, c.Profile.Ticker))
	PrintKeyValue(out, "CEO", c.Profile.CEO, 8)
	PrintKeyValue(out, "HQ", c.Profile.HQ, 8)
	PrintKeyValue(out, "Industry", c.Profile.Industry, 8)
	PrintKeyValue(out, "YoY", c.Profile.YoYLabel, 8)
	PrintSeparator(out)

	icons := make([]string, 0, len(c.Scenario.Icons))
	for _, icon := range c.Scenario.Icons {
		label := fmt.Sprintf("%s %s", icon.Emoji, icon.Label)
		if icon.Highlighted {
			label = "[" + label + "]"
		}
		icons = append(icons, label)
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(icons, "   "))
	fmt.Fprintf(out, "  %s:\n", strings.ToUpper(string(c.Scenario.Chosen)))
	PrintList(out, c.Scenario.Bullets)
	PrintSeparator(out)

	if c.Mode == card.ModeQA {
		for _, q := range c.QA {
			fmt.Fprintf(out, "  %s %s\n", q.Label, q.Question)
			fmt.Fprintf(out, "      %s\n", q.Answer)
		}
	} else {
		widths := []int{20, 6, 10}
		PrintTableHeader(out, []string{"Metric", "Score", "Bar"}, widths)
		for _, s := range c.Scores {
			PrintTableRow(out, []string{s.Name, formatNumber(s.Value), scoreBar(s.Value)}, widths)
		}
	}
	PrintSeparator(out)

	if len(company.Facts) > 0 {
		PrintList(out, company.Facts)
	}
	PrintInfo(out, c.ShareText+" | "+c.ExportName)

	return nil
}

// scoreBar renders a 0-10 score as a text bar
func scoreBar(v float64) string {
	n := int(v + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return strings.Repeat("█", n)
}
