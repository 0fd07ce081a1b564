package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/state"
	"github.com/doplab/jobfinder/pkg/models"
)

var applicationCmd = &cobra.Command{
	Use:   "application",
	Short: "Manage applications",
}

var createApplicationCmd = &cobra.Command{
	Use:   "create",
	Short: "Apply an applicant to a job offer",
	Long: `Apply an applicant to a job offer. The match score is computed from
the applicant's skills against the offer's requirements unless --score
is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		offerRaw, _ := cmd.Flags().GetString("offer")
		offerID, err := parseID(offerRaw, "offer")
		if err != nil {
			return err
		}
		applicantRaw, _ := cmd.Flags().GetString("applicant")
		applicantID, err := parseID(applicantRaw, "applicant")
		if err != nil {
			return err
		}

		a := &models.Application{
			JobOfferID:  offerID,
			ApplicantID: applicantID,
		}
		if cmd.Flags().Changed("score") {
			score, _ := cmd.Flags().GetFloat64("score")
			a.MatchScore = &score
		}

		created, err := application.State.CreateApplication(cmd.Context(), a)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Application created (ID: %s, score: %s)\n", created.ID, formatScore(created.MatchScore))
		return nil
	},
}

var listApplicationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications, newest first",
	Long: `List applications, newest first. At most one of --offer, --applicant
and --employer may be given to narrow the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		filters := 0
		for _, name := range []string{"offer", "applicant", "employer"} {
			if cmd.Flags().Changed(name) {
				filters++
			}
		}
		if filters > 1 {
			return fmt.Errorf("pass at most one of --offer, --applicant, --employer")
		}

		var apps []*models.Application
		switch {
		case cmd.Flags().Changed("offer"):
			raw, _ := cmd.Flags().GetString("offer")
			id, err := parseID(raw, "offer")
			if err != nil {
				return err
			}
			apps, err = application.State.ApplicationsByOffer(ctx, id)
			if err != nil {
				return err
			}
		case cmd.Flags().Changed("applicant"):
			raw, _ := cmd.Flags().GetString("applicant")
			id, err := parseID(raw, "applicant")
			if err != nil {
				return err
			}
			apps, err = application.State.ApplicationsByApplicant(ctx, id)
			if err != nil {
				return err
			}
		case cmd.Flags().Changed("employer"):
			raw, _ := cmd.Flags().GetString("employer")
			id, err := parseID(raw, "employer")
			if err != nil {
				return err
			}
			apps, err = application.State.ApplicationsByEmployer(ctx, id)
			if err != nil {
				return err
			}
		default:
			apps, err = application.State.ListApplications(ctx)
			if err != nil {
				return err
			}
		}

		if len(apps) == 0 {
			cmd.Println("No applications found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Applications"))
		for _, a := range apps {
			cmd.Printf("%s %s [%s] score %s\n", labelStyle.Render("•"), a.ID, a.Status, formatScore(a.MatchScore))
			cmd.Printf("  %s %s  %s %s\n",
				labelStyle.Render("Offer:"), a.JobOfferID,
				labelStyle.Render("Applicant:"), a.ApplicantID)
		}
		return nil
	},
}

var showApplicationCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "application")
		if err != nil {
			return err
		}
		a, err := application.State.GetApplication(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Application " + a.ID.String()))
		cmd.Printf("%s %s\n", labelStyle.Render("Status:"), valueStyle.Render(string(a.Status)))
		cmd.Printf("%s %s\n", labelStyle.Render("Offer:"), valueStyle.Render(a.JobOfferID.String()))
		cmd.Printf("%s %s\n", labelStyle.Render("Applicant:"), valueStyle.Render(a.ApplicantID.String()))
		cmd.Printf("%s %s\n", labelStyle.Render("Score:"), valueStyle.Render(formatScore(a.MatchScore)))
		cmd.Printf("%s %s\n", labelStyle.Render("Submitted:"), a.SubmittedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var applicationStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change an application's status",
	Long: `Change an application's status. Valid statuses: Submitted, In_review,
Rejected, Accepted, Withdrawn.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "application")
		if err != nil {
			return err
		}
		a, err := application.State.UpdateApplicationStatus(cmd.Context(), id, models.ApplicationStatus(args[1]))
		if err != nil {
			return err
		}
		cmd.Printf("✓ Application now %s\n", a.Status)
		return nil
	},
}

var updateApplicationCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an application's status or score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "application")
		if err != nil {
			return err
		}

		var patch state.ApplicationPatch
		if cmd.Flags().Changed("status") {
			raw, _ := cmd.Flags().GetString("status")
			status := models.ApplicationStatus(raw)
			patch.Status = &status
		}
		if cmd.Flags().Changed("score") {
			score, _ := cmd.Flags().GetFloat64("score")
			patch.MatchScore = &score
		}

		a, err := application.State.UpdateApplication(cmd.Context(), id, patch)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Application updated: %s, score %s\n", a.Status, formatScore(a.MatchScore))
		return nil
	},
}

var deleteApplicationCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "application")
		if err != nil {
			return err
		}
		if err := application.State.DeleteApplication(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Println("✓ Application deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applicationCmd)
	applicationCmd.AddCommand(createApplicationCmd)
	applicationCmd.AddCommand(listApplicationsCmd)
	applicationCmd.AddCommand(showApplicationCmd)
	applicationCmd.AddCommand(applicationStatusCmd)
	applicationCmd.AddCommand(updateApplicationCmd)
	applicationCmd.AddCommand(deleteApplicationCmd)

	createApplicationCmd.Flags().String("offer", "", "Job offer id (required)")
	createApplicationCmd.Flags().String("applicant", "", "Applicant id (required)")
	createApplicationCmd.Flags().Float64("score", 0, "Override the computed match score (0-100)")
	_ = createApplicationCmd.MarkFlagRequired("offer")
	_ = createApplicationCmd.MarkFlagRequired("applicant")

	listApplicationsCmd.Flags().String("offer", "", "Only applications for this offer")
	listApplicationsCmd.Flags().String("applicant", "", "Only applications by this applicant")
	listApplicationsCmd.Flags().String("employer", "", "Only applications to this employer's offers")

	updateApplicationCmd.Flags().String("status", "", "New status")
	updateApplicationCmd.Flags().Float64("score", 0, "New match score (0-100)")
}
