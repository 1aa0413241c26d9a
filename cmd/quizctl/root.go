package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/curriculum"
	"github.com/p-n-ai/pai-quiz/internal/intake"
	"github.com/p-n-ai/pai-quiz/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Analyse quiz attempts offline",
		Long:          "quizctl reads a JSON array of quiz attempts from a file (or stdin) and prints the analysis, recommendations or study plan.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("curriculum", "", "Curriculum directory (overrides LEARN_CURRICULUM_PATH)")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newRecommendCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newExportCmd())
	return root
}

// newEngine builds an engine from LEARN_ANALYSIS_* settings and the
// curriculum catalog.
func newEngine(cmd *cobra.Command) (*analysis.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := cfg.CurriculumPath
	if p, _ := cmd.Flags().GetString("curriculum"); p != "" {
		path = p
	}
	catalog, err := curriculum.NewLoader(path)
	if err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	a := cfg.Analysis
	return analysis.NewEngine(analysis.Config{
		Thresholds: analysis.Thresholds{
			StrongCutoff:        a.StrongCutoff,
			ModerateCutoff:      a.ModerateCutoff,
			NotAttemptedPenalty: a.NotAttemptedPenalty,
		},
		DailyBudgetMinutes: a.DailyBudgetMinutes,
		FocusTopicLimit:    a.FocusTopicLimit,
	}, analysis.WithTopics(catalog))
}

// readAttempts reads the attempts file named by args, or stdin when args is
// empty or "-".
func readAttempts(cmd *cobra.Command, args []string) ([]analysis.AttemptRecord, error) {
	var (
		body []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		body, err = io.ReadAll(cmd.InOrStdin())
	} else {
		body, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("reading attempts: %w", err)
	}
	return intake.ParseAttempts(body)
}
