package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-quiz/internal/export"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Print the full analysis as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			attempts, err := readAttempts(cmd, args)
			if err != nil {
				return err
			}
			res, err := engine.Analyze(attempts)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func newRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend [file]",
		Short: "Print study recommendations, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			attempts, err := readAttempts(cmd, args)
			if err != nil {
				return err
			}
			recs, err := engine.Recommendations(attempts)
			if err != nil {
				return err
			}
			for _, r := range recs {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [file]",
		Short: "Print the daily study plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			attempts, err := readAttempts(cmd, args)
			if err != nil {
				return err
			}

			budget := engine.Config().DailyBudgetMinutes
			if cmd.Flags().Changed("budget") {
				budget, _ = cmd.Flags().GetInt("budget")
			}
			plan, err := engine.StudyPlanWithBudget(attempts, budget)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUBJECT\tMINUTES/DAY\tFOCUS")
			for _, e := range plan {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Subject, e.MinutesPerDay, e.FocusLevel)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("budget", 0, "Daily study budget in minutes (default from LEARN_ANALYSIS_DAILY_BUDGET or 60)")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the analysis to an Excel workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")

			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			attempts, err := readAttempts(cmd, args)
			if err != nil {
				return err
			}
			res, err := engine.Analyze(attempts)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := export.WriteWorkbook(f, res); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "quiz-analysis.xlsx", "Output workbook path")
	return cmd
}
