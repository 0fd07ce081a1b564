package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/state"
	"github.com/doplab/jobfinder/pkg/models"
)

var applicantCmd = &cobra.Command{
	Use:   "applicant",
	Short: "Manage applicants",
}

var createApplicantCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an applicant",
	Example: `  jobfinder applicant create --username alice --first-name Alice --last-name Martin \
      --email alice@example.com --skills "java, sql, docker"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		username, _ := cmd.Flags().GetString("username")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")
		contact, _ := cmd.Flags().GetString("contact")
		description, _ := cmd.Flags().GetString("description")
		cvURL, _ := cmd.Flags().GetString("cv-url")
		skills, _ := cmd.Flags().GetString("skills")

		a, err := application.State.CreateApplicant(cmd.Context(), &models.Applicant{
			Person: models.Person{
				Username:  username,
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
			},
			ContactInfo: contact,
			Description: description,
			CVURL:       cvURL,
			Skills:      splitList(skills),
		})
		if err != nil {
			return err
		}
		cmd.Printf("✓ Applicant created: %s (ID: %s)\n", a.FullName(), a.ID)
		return nil
	},
}

var listApplicantsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all applicants",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		applicants, err := application.State.ListApplicants(cmd.Context())
		if err != nil {
			return err
		}
		if len(applicants) == 0 {
			cmd.Println("No applicants found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Applicants"))
		for _, a := range applicants {
			cmd.Printf("%s %s (@%s)\n", labelStyle.Render("•"), a.FullName(), a.Username)
			cmd.Printf("  %s %s\n", labelStyle.Render("ID:"), a.ID)
			if len(a.Skills) > 0 {
				cmd.Printf("  %s %s\n", labelStyle.Render("Skills:"), strings.Join(a.Skills, ", "))
			}
		}
		return nil
	},
}

var showApplicantCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one applicant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "applicant")
		if err != nil {
			return err
		}
		a, err := application.State.GetApplicant(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(a.FullName()))
		cmd.Printf("%s %s\n", labelStyle.Render("Username:"), valueStyle.Render(a.Username))
		cmd.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(a.Email))
		if a.ContactInfo != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Contact:"), valueStyle.Render(a.ContactInfo))
		}
		if a.Description != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("About:"), valueStyle.Render(a.Description))
		}
		if a.CVURL != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("CV:"), valueStyle.Render(a.CVURL))
		}
		skills := a.Skills
		if len(skills) == 0 && a.LegacySkills != "" {
			skills = splitList(a.LegacySkills)
		}
		if len(skills) > 0 {
			cmd.Printf("%s %s\n", labelStyle.Render("Skills:"), valueStyle.Render(strings.Join(skills, ", ")))
		}
		return nil
	},
}

var updateApplicantCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an applicant",
	Long: `Update an applicant. Only the flags you pass are applied; identity
fields ignore blank values while --contact, --description and --cv-url
may be set to an empty string to clear them. Changing --skills
recomputes the match scores of every application the applicant filed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "applicant")
		if err != nil {
			return err
		}

		patch := state.ApplicantPatch{
			Username:    flagStrPtr(cmd, "username"),
			FirstName:   flagStrPtr(cmd, "first-name"),
			LastName:    flagStrPtr(cmd, "last-name"),
			Email:       flagStrPtr(cmd, "email"),
			ContactInfo: flagStrPtr(cmd, "contact"),
			Description: flagStrPtr(cmd, "description"),
			CVURL:       flagStrPtr(cmd, "cv-url"),
		}
		if cmd.Flags().Changed("skills") {
			skills, _ := cmd.Flags().GetString("skills")
			patch.Skills = splitList(skills)
		}

		a, err := application.State.UpdateApplicant(cmd.Context(), id, patch)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Applicant updated: %s\n", a.FullName())
		return nil
	},
}

var deleteApplicantCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an applicant and its applications and interviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "applicant")
		if err != nil {
			return err
		}
		if err := application.State.DeleteApplicant(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Println("✓ Applicant deleted")
		return nil
	},
}

func applicantFlags(c *cobra.Command) {
	c.Flags().String("username", "", "Unique username")
	c.Flags().String("first-name", "", "First name")
	c.Flags().String("last-name", "", "Last name")
	c.Flags().String("email", "", "Email address")
	c.Flags().String("contact", "", "Contact information")
	c.Flags().String("description", "", "Short bio")
	c.Flags().String("cv-url", "", "Link to a CV")
	c.Flags().String("skills", "", "Comma-separated skill phrases")
}

func init() {
	rootCmd.AddCommand(applicantCmd)
	applicantCmd.AddCommand(createApplicantCmd)
	applicantCmd.AddCommand(listApplicantsCmd)
	applicantCmd.AddCommand(showApplicantCmd)
	applicantCmd.AddCommand(updateApplicantCmd)
	applicantCmd.AddCommand(deleteApplicantCmd)

	applicantFlags(createApplicantCmd)
	applicantFlags(updateApplicantCmd)
}
