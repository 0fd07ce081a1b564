package cmd

import (
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score applicants against job offers",
}

var matchScoreCmd = &cobra.Command{
	Use:   "score <applicant-id> <offer-id>",
	Short: "Compute a match score without storing it",
	Long: `Compute a match score between an applicant and a job offer. The score
weighs skill overlap at 70% and qualifications at 30%, on a 0-100 scale
with one decimal. Nothing is persisted; use application create or
match recompute for that.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		applicantID, err := parseID(args[0], "applicant")
		if err != nil {
			return err
		}
		offerID, err := parseID(args[1], "offer")
		if err != nil {
			return err
		}

		score, err := application.State.ComputeMatchScore(cmd.Context(), applicantID, offerID)
		if err != nil {
			return err
		}
		cmd.Printf("%s %.1f\n", labelStyle.Render("Match score:"), score)
		return nil
	},
}

var matchRecomputeCmd = &cobra.Command{
	Use:   "recompute <applicant-id>",
	Short: "Recompute stored scores for all of an applicant's applications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		applicantID, err := parseID(args[0], "applicant")
		if err != nil {
			return err
		}

		n, err := application.State.RecomputeMatchScoresForApplicant(cmd.Context(), applicantID)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Rescored %d application(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.AddCommand(matchScoreCmd)
	matchCmd.AddCommand(matchRecomputeCmd)
}
