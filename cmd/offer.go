package cmd

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/state"
	"github.com/doplab/jobfinder/pkg/models"
)

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Manage job offers",
}

var createOfferCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job offer (starts as Draft)",
	Example: `  jobfinder offer create --employer 5f0c6f... --title "Backend Developer" \
      --skills "java, sql, spring" --qualifications "BSc Computer Science"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		employerRaw, _ := cmd.Flags().GetString("employer")
		employerID, err := parseID(employerRaw, "employer")
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		employmentType, _ := cmd.Flags().GetString("type")
		skills, _ := cmd.Flags().GetString("skills")
		qualifications, _ := cmd.Flags().GetString("qualifications")
		companyID, err := flagIDPtr(cmd, "company", "company")
		if err != nil {
			return err
		}
		startDate, err := flagTimePtr(cmd, "start")
		if err != nil {
			return err
		}
		endDate, err := flagTimePtr(cmd, "end")
		if err != nil {
			return err
		}

		o := &models.JobOffer{
			EmployerID:             employerID,
			Title:                  title,
			Description:            description,
			EmploymentType:         employmentType,
			StartDate:              startDate,
			EndDate:                endDate,
			RequiredSkills:         splitList(skills),
			RequiredQualifications: splitList(qualifications),
		}
		if companyID != nil {
			o.CompanyID = companyID
		}

		created, err := application.State.CreateOffer(cmd.Context(), o)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Offer created: %s [%s] (ID: %s)\n", created.Title, created.Status, created.ID)
		return nil
	},
}

var listOffersCmd = &cobra.Command{
	Use:   "list",
	Short: "List job offers, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		var employerID *uuid.UUID
		if cmd.Flags().Changed("employer") {
			raw, _ := cmd.Flags().GetString("employer")
			id, err := parseID(raw, "employer")
			if err != nil {
				return err
			}
			employerID = &id
		}

		offers, err := application.State.ListOffers(cmd.Context(), employerID)
		if err != nil {
			return err
		}
		if len(offers) == 0 {
			cmd.Println("No offers found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Job Offers"))
		for _, o := range offers {
			cmd.Printf("%s %s [%s]\n", labelStyle.Render("•"), o.Title, o.Status)
			cmd.Printf("  %s %s\n", labelStyle.Render("ID:"), o.ID)
			if len(o.RequiredSkills) > 0 {
				cmd.Printf("  %s %v\n", labelStyle.Render("Skills:"), o.RequiredSkills)
			}
		}
		return nil
	},
}

var showOfferCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one job offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "offer")
		if err != nil {
			return err
		}
		o, err := application.State.GetOffer(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(o.Title))
		cmd.Printf("%s %s\n", labelStyle.Render("Status:"), valueStyle.Render(string(o.Status)))
		cmd.Printf("%s %s\n", labelStyle.Render("Employer:"), valueStyle.Render(o.EmployerID.String()))
		if o.CompanyID != nil {
			cmd.Printf("%s %s\n", labelStyle.Render("Company:"), valueStyle.Render(o.CompanyID.String()))
		}
		if o.EmploymentType != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Type:"), valueStyle.Render(o.EmploymentType))
		}
		if o.Description != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Description:"), valueStyle.Render(o.Description))
		}
		if len(o.RequiredSkills) > 0 {
			cmd.Printf("%s %v\n", labelStyle.Render("Skills:"), o.RequiredSkills)
		}
		if len(o.RequiredQualifications) > 0 {
			cmd.Printf("%s %v\n", labelStyle.Render("Qualifications:"), o.RequiredQualifications)
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Created:"), o.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var updateOfferCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a job offer",
	Long: `Update a job offer. Only the flags you pass are applied; --skills and
--qualifications replace the lists wholesale. Pass --company none to
detach from the current company.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "offer")
		if err != nil {
			return err
		}
		companyID, err := flagIDPtr(cmd, "company", "company")
		if err != nil {
			return err
		}
		startDate, err := flagTimePtr(cmd, "start")
		if err != nil {
			return err
		}
		endDate, err := flagTimePtr(cmd, "end")
		if err != nil {
			return err
		}

		patch := state.OfferPatch{
			Title:          flagStrPtr(cmd, "title"),
			Description:    flagStrPtr(cmd, "description"),
			EmploymentType: flagStrPtr(cmd, "type"),
			CompanyID:      companyID,
			StartDate:      startDate,
			EndDate:        endDate,
		}
		if cmd.Flags().Changed("skills") {
			raw, _ := cmd.Flags().GetString("skills")
			patch.RequiredSkills = splitList(raw)
		}
		if cmd.Flags().Changed("qualifications") {
			raw, _ := cmd.Flags().GetString("qualifications")
			patch.RequiredQualifications = splitList(raw)
		}

		o, err := application.State.UpdateOffer(cmd.Context(), id, patch)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Offer updated: %s\n", o.Title)
		return nil
	},
}

var deleteOfferCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an offer and its applications and interviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "offer")
		if err != nil {
			return err
		}
		if err := application.State.DeleteOffer(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Println("✓ Offer deleted")
		return nil
	},
}

var publishOfferCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish an offer (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE:  offerTransition((*state.State).PublishOffer, "published"),
}

var closeOfferCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an offer (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE:  offerTransition((*state.State).CloseOffer, "closed"),
}

var reopenOfferCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Reopen a closed offer (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE:  offerTransition((*state.State).ReopenOffer, "reopened"),
}

type transitionFunc func(*state.State, context.Context, uuid.UUID, uuid.UUID) (*models.JobOffer, error)

func offerTransition(fn transitionFunc, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		offerID, err := parseID(args[0], "offer")
		if err != nil {
			return err
		}
		callerRaw, _ := cmd.Flags().GetString("employer")
		callerID, err := parseID(callerRaw, "employer")
		if err != nil {
			return err
		}

		o, err := fn(application.State, cmd.Context(), offerID, callerID)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Offer %s: %s [%s]\n", verb, o.Title, o.Status)
		return nil
	}
}

func offerFlags(c *cobra.Command) {
	c.Flags().String("title", "", "Offer title")
	c.Flags().String("description", "", "Offer description")
	c.Flags().String("type", "", "Employment type (e.g. full-time)")
	c.Flags().String("skills", "", "Required skills, comma-separated")
	c.Flags().String("qualifications", "", "Required qualifications, comma-separated")
	c.Flags().String("company", "", "Company id, or 'none' to detach")
	c.Flags().String("start", "", "Start date (2006-01-02)")
	c.Flags().String("end", "", "End date (2006-01-02)")
}

func init() {
	rootCmd.AddCommand(offerCmd)
	offerCmd.AddCommand(createOfferCmd)
	offerCmd.AddCommand(listOffersCmd)
	offerCmd.AddCommand(showOfferCmd)
	offerCmd.AddCommand(updateOfferCmd)
	offerCmd.AddCommand(deleteOfferCmd)
	offerCmd.AddCommand(publishOfferCmd)
	offerCmd.AddCommand(closeOfferCmd)
	offerCmd.AddCommand(reopenOfferCmd)

	offerFlags(createOfferCmd)
	offerFlags(updateOfferCmd)

	createOfferCmd.Flags().String("employer", "", "Owning employer id (required)")
	_ = createOfferCmd.MarkFlagRequired("employer")
	listOffersCmd.Flags().String("employer", "", "Only offers owned by this employer")

	for _, c := range []*cobra.Command{publishOfferCmd, closeOfferCmd, reopenOfferCmd} {
		c.Flags().String("employer", "", "Calling employer id (must own the offer)")
		_ = c.MarkFlagRequired("employer")
	}
}
