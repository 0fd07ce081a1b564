package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/pkg/models"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Manage interviews",
}

var scheduleInterviewCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule an interview",
	Example: `  jobfinder interview schedule --offer 5f0c6f... --applicant 9a41b2... \
      --at "2026-09-15 14:00" --mode Online --where https://meet.example/room`,
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
		atRaw, _ := cmd.Flags().GetString("at")
		at, err := parseWhen(atRaw)
		if err != nil {
			return err
		}
		mode, _ := cmd.Flags().GetString("mode")
		where, _ := cmd.Flags().GetString("where")

		iv := &models.Interview{
			JobOfferID:     offerID,
			ApplicantID:    applicantID,
			ScheduledAt:    at,
			Mode:           models.ParseInterviewMode(mode),
			LocationOrLink: where,
		}
		created, err := application.State.ScheduleInterview(cmd.Context(), iv)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Interview scheduled for %s (ID: %s)\n",
			created.ScheduledAt.Format("2006-01-02 15:04"), created.ID)
		return nil
	},
}

var listInterviewsCmd = &cobra.Command{
	Use:   "list",
	Short: "List interviews, soonest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var interviews []*models.Interview
		switch {
		case cmd.Flags().Changed("applicant"):
			raw, _ := cmd.Flags().GetString("applicant")
			id, err := parseID(raw, "applicant")
			if err != nil {
				return err
			}
			interviews, err = application.State.InterviewsByApplicant(ctx, id)
			if err != nil {
				return err
			}
		case cmd.Flags().Changed("employer"):
			raw, _ := cmd.Flags().GetString("employer")
			id, err := parseID(raw, "employer")
			if err != nil {
				return err
			}
			interviews, err = application.State.InterviewsByEmployer(ctx, id)
			if err != nil {
				return err
			}
		default:
			interviews, err = application.State.ListInterviews(ctx)
			if err != nil {
				return err
			}
		}

		if len(interviews) == 0 {
			cmd.Println("No interviews found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Interviews"))
		for _, iv := range interviews {
			cmd.Printf("%s %s [%s, %s]\n", labelStyle.Render("•"),
				iv.ScheduledAt.Format("2006-01-02 15:04"), iv.Status, iv.Mode)
			cmd.Printf("  %s %s\n", labelStyle.Render("ID:"), iv.ID)
			if iv.LocationOrLink != "" {
				cmd.Printf("  %s %s\n", labelStyle.Render("Where:"), iv.LocationOrLink)
			}
		}
		return nil
	},
}

var showInterviewCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "interview")
		if err != nil {
			return err
		}
		iv, err := application.State.GetInterview(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Interview " + iv.ID.String()))
		cmd.Printf("%s %s\n", labelStyle.Render("When:"), valueStyle.Render(iv.ScheduledAt.Format("2006-01-02 15:04")))
		cmd.Printf("%s %s\n", labelStyle.Render("Status:"), valueStyle.Render(string(iv.Status)))
		cmd.Printf("%s %s\n", labelStyle.Render("Mode:"), valueStyle.Render(string(iv.Mode)))
		cmd.Printf("%s %s\n", labelStyle.Render("Offer:"), valueStyle.Render(iv.JobOfferID.String()))
		cmd.Printf("%s %s\n", labelStyle.Render("Applicant:"), valueStyle.Render(iv.ApplicantID.String()))
		if iv.LocationOrLink != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Where:"), valueStyle.Render(iv.LocationOrLink))
		}
		return nil
	},
}

var interviewStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change an interview's status",
	Long: `Change an interview's status. Valid statuses: Scheduled, Completed,
Canceled, No_show.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "interview")
		if err != nil {
			return err
		}
		iv, err := application.State.UpdateInterviewStatus(cmd.Context(), id, models.InterviewStatus(args[1]))
		if err != nil {
			return err
		}
		cmd.Printf("✓ Interview now %s\n", iv.Status)
		return nil
	},
}

var rescheduleInterviewCmd = &cobra.Command{
	Use:   "reschedule <id>",
	Short: "Move an interview to a new time (status resets to Scheduled)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "interview")
		if err != nil {
			return err
		}
		atRaw, _ := cmd.Flags().GetString("at")
		at, err := parseWhen(atRaw)
		if err != nil {
			return err
		}
		mode, _ := cmd.Flags().GetString("mode")

		iv, err := application.State.RescheduleInterview(cmd.Context(), id, at, mode)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Interview rescheduled for %s [%s]\n",
			iv.ScheduledAt.Format("2006-01-02 15:04"), iv.Mode)
		return nil
	},
}

var interviewDetailsCmd = &cobra.Command{
	Use:   "details <id> <location-or-link>",
	Short: "Set where an interview takes place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "interview")
		if err != nil {
			return err
		}
		iv, err := application.State.UpdateInterviewDetails(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		cmd.Printf("✓ Interview details set: %s\n", iv.LocationOrLink)
		return nil
	},
}

var deleteInterviewCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "interview")
		if err != nil {
			return err
		}
		if err := application.State.DeleteInterview(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Println("✓ Interview deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)
	interviewCmd.AddCommand(scheduleInterviewCmd)
	interviewCmd.AddCommand(listInterviewsCmd)
	interviewCmd.AddCommand(showInterviewCmd)
	interviewCmd.AddCommand(interviewStatusCmd)
	interviewCmd.AddCommand(rescheduleInterviewCmd)
	interviewCmd.AddCommand(interviewDetailsCmd)
	interviewCmd.AddCommand(deleteInterviewCmd)

	scheduleInterviewCmd.Flags().String("offer", "", "Job offer id (required)")
	scheduleInterviewCmd.Flags().String("applicant", "", "Applicant id (required)")
	scheduleInterviewCmd.Flags().String("at", "", "When (2006-01-02 15:04, required)")
	scheduleInterviewCmd.Flags().String("mode", "Online", "Online, In_person or Phone")
	scheduleInterviewCmd.Flags().String("where", "", "Location or meeting link")
	_ = scheduleInterviewCmd.MarkFlagRequired("offer")
	_ = scheduleInterviewCmd.MarkFlagRequired("applicant")
	_ = scheduleInterviewCmd.MarkFlagRequired("at")

	listInterviewsCmd.Flags().String("applicant", "", "Only interviews for this applicant")
	listInterviewsCmd.Flags().String("employer", "", "Only interviews for this employer's offers")

	rescheduleInterviewCmd.Flags().String("at", "", "New time (2006-01-02 15:04, required)")
	rescheduleInterviewCmd.Flags().String("mode", "", "New mode, unchanged when omitted")
	_ = rescheduleInterviewCmd.MarkFlagRequired("at")
}
