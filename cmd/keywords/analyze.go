package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/config"
	"keywordlab/internal/display"
	"keywordlab/internal/keywordsource"
	"keywordlab/internal/validation"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <seed>",
	Short: "Run one keyword analysis and print the result table",
	Long: `Analyze drives a single analysis view headlessly: it records the seed,
country and language, triggers a run, waits for it and prints the rows the
results panel would show. The seed must be at least two characters after
trimming.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("country", "KR", "target country (KR, US, JP, DE)")
	analyzeCmd.Flags().String("language", "ko", "target language (ko, en, ja, de)")
	analyzeCmd.Flags().String("source", config.ResultSourceMock, "result source (mock, adapter)")
	analyzeCmd.Flags().String("policy", "", "provider policy when --source=adapter")
	analyzeCmd.Flags().Duration("latency", analyzer.DefaultLatency, "simulated analysis delay")
	analyzeCmd.Flags().String("locale", "ko", "display locale for digit grouping")
	analyzeCmd.Flags().String("currency", "KRW", "CPC currency code")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	seed := strings.Join(args, " ")
	if !validation.ValidateKeyword(seed) {
		return errors.New(validation.KeywordHint(seed))
	}

	country, language, err := selectors(cmd)
	if err != nil {
		return err
	}

	locale, _ := cmd.Flags().GetString("locale")
	currency, _ := cmd.Flags().GetString("currency")
	format, err := display.NewFormatter(locale, currency)
	if err != nil {
		return err
	}

	gen, err := generatorFor(cmd)
	if err != nil {
		return err
	}
	latency, _ := cmd.Flags().GetDuration("latency")

	v := analyzer.NewView(uuid.New(), analyzer.Options{Latency: latency, Generator: gen})
	defer v.Close()

	v.SetKeyword(seed)
	if err := v.SetCountry(string(country)); err != nil {
		return err
	}
	if err := v.SetLanguage(string(language)); err != nil {
		return err
	}
	if !v.Run() {
		return errors.New("analysis could not start")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), latency+time.Minute)
	defer cancel()
	if err := v.Wait(ctx); err != nil {
		return fmt.Errorf("wait for analysis: %w", err)
	}

	p := analyzer.Present(v.Snapshot(), format)
	if p.ErrorMessage != "" {
		return errors.New(p.ErrorMessage)
	}

	tw := newTable(cmd.OutOrStdout(), "키워드", "검색량(가상)", "경쟁도", "예상 CPC", "메모")
	for _, r := range p.Rows {
		tw.row(r.Keyword, r.Volume, r.Difficulty, r.CPC, r.Note)
	}
	return tw.flush()
}

// generatorFor picks the result generator named by --source.
func generatorFor(cmd *cobra.Command) (analyzer.Generator, error) {
	name, _ := cmd.Flags().GetString("source")
	switch name {
	case config.ResultSourceMock:
		return analyzer.MockGenerator{}, nil
	case config.ResultSourceAdapter:
		srcCfg, err := loadSourceConfig(cmd)
		if err != nil {
			return nil, err
		}
		policy, err := keywordsource.ParsePolicy(srcCfg.Policy)
		if err != nil {
			return nil, err
		}
		source := keywordsource.NewDefaultSource(keywordsource.Options{
			Policy:  policy,
			Timeout: srcCfg.ProviderTimeout,
		}, srcCfg.FallbackKeyword)
		return analyzer.SourceGenerator{Source: source}, nil
	default:
		return nil, fmt.Errorf("unknown result source %q", name)
	}
}
