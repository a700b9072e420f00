package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/keywordsource"
	"keywordlab/internal/models"
	"keywordlab/internal/validation"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas <seed>",
	Short: "List keyword ideas from the keyword source adapter",
	Long: `Ideas fetches candidate keywords for a seed under a provider policy:
google (default), naver, or merged (Google rows followed by Naver rows).
A blank seed falls back to the configured fallback keyword.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIdeas,
}

func init() {
	ideasCmd.Flags().String("country", "KR", "target country (KR, US, JP, DE)")
	ideasCmd.Flags().String("language", "ko", "target language (ko, en, ja, de)")
	ideasCmd.Flags().String("policy", "", "provider policy (google, naver, merged)")
	ideasCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(ideasCmd)
}

func runIdeas(cmd *cobra.Command, args []string) error {
	seed := strings.Join(args, " ")

	country, language, err := selectors(cmd)
	if err != nil {
		return err
	}

	srcCfg, err := loadSourceConfig(cmd)
	if err != nil {
		return err
	}
	policy, err := keywordsource.ParsePolicy(srcCfg.Policy)
	if err != nil {
		return err
	}

	source := keywordsource.NewDefaultSource(keywordsource.Options{
		Policy:  policy,
		Timeout: srcCfg.ProviderTimeout,
	}, srcCfg.FallbackKeyword)

	rows, err := source.GetKeywordIdeas(cmd.Context(), seed, country, language)
	if err != nil {
		return fmt.Errorf("fetch keyword ideas: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := newTable(out, "KEYWORD", "VOLUME", "CPC", "COMPETITION", "DIFFICULTY")
	for _, r := range rows {
		tw.row(r.Keyword, r.Volume, r.CPC, fmt.Sprintf("%.2f", r.Competition), analyzer.CompetitionToDifficulty(r.Competition))
	}
	return tw.flush()
}

// selectors validates the country and language flags.
func selectors(cmd *cobra.Command) (models.Country, models.Language, error) {
	c, _ := cmd.Flags().GetString("country")
	l, _ := cmd.Flags().GetString("language")
	return validation.ValidateSelectors(c, l, models.NewFormState())
}
