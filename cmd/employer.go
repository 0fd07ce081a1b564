package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/state"
	"github.com/doplab/jobfinder/pkg/models"
)

var employerCmd = &cobra.Command{
	Use:   "employer",
	Short: "Manage employers",
}

var createEmployerCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employer",
	Example: `  jobfinder employer create --username acme-hr --enterprise "Acme Software" \
      --email hr@acme.example`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		username, _ := cmd.Flags().GetString("username")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")
		description, _ := cmd.Flags().GetString("description")
		enterprise, _ := cmd.Flags().GetString("enterprise")
		companyID, err := flagIDPtr(cmd, "company", "company")
		if err != nil {
			return err
		}

		e := &models.Employer{
			Person: models.Person{
				Username:  username,
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
			},
			Description:    description,
			EnterpriseName: enterprise,
		}
		if companyID != nil {
			e.CompanyID = companyID
		}

		created, err := application.State.CreateEmployer(cmd.Context(), e)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Employer created: %s (ID: %s)\n", created.FullName(), created.ID)
		return nil
	},
}

var listEmployersCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employers",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		employers, err := application.State.ListEmployers(cmd.Context())
		if err != nil {
			return err
		}
		if len(employers) == 0 {
			cmd.Println("No employers found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Employers"))
		for _, e := range employers {
			cmd.Printf("%s %s (@%s)\n", labelStyle.Render("•"), e.FullName(), e.Username)
			cmd.Printf("  %s %s\n", labelStyle.Render("ID:"), e.ID)
			if e.EnterpriseName != "" {
				cmd.Printf("  %s %s\n", labelStyle.Render("Enterprise:"), e.EnterpriseName)
			}
		}
		return nil
	},
}

var showEmployerCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one employer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "employer")
		if err != nil {
			return err
		}
		e, err := application.State.GetEmployer(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(e.FullName()))
		cmd.Printf("%s %s\n", labelStyle.Render("Username:"), valueStyle.Render(e.Username))
		cmd.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(e.Email))
		if e.EnterpriseName != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Enterprise:"), valueStyle.Render(e.EnterpriseName))
		}
		if e.CompanyID != nil {
			cmd.Printf("%s %s\n", labelStyle.Render("Company:"), valueStyle.Render(e.CompanyID.String()))
		}
		if e.Description != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("About:"), valueStyle.Render(e.Description))
		}

		offers, err := application.State.ListOffers(cmd.Context(), &id)
		if err != nil {
			return err
		}
		if len(offers) > 0 {
			cmd.Printf("%s\n", labelStyle.Render("Offers:"))
			for _, o := range offers {
				cmd.Printf("  %s [%s] (ID: %s)\n", o.Title, o.Status, o.ID)
			}
		}
		return nil
	},
}

var updateEmployerCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employer",
	Long: `Update an employer. Only the flags you pass are applied. Pass
--company none to detach from the current company.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "employer")
		if err != nil {
			return err
		}
		companyID, err := flagIDPtr(cmd, "company", "company")
		if err != nil {
			return err
		}

		e, err := application.State.UpdateEmployer(cmd.Context(), id, state.EmployerPatch{
			Username:       flagStrPtr(cmd, "username"),
			FirstName:      flagStrPtr(cmd, "first-name"),
			LastName:       flagStrPtr(cmd, "last-name"),
			Email:          flagStrPtr(cmd, "email"),
			Description:    flagStrPtr(cmd, "description"),
			EnterpriseName: flagStrPtr(cmd, "enterprise"),
			CompanyID:      companyID,
		})
		if err != nil {
			return err
		}
		cmd.Printf("✓ Employer updated: %s\n", e.FullName())
		return nil
	},
}

var deleteEmployerCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employer and every offer it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "employer")
		if err != nil {
			return err
		}
		if err := application.State.DeleteEmployer(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Println("✓ Employer deleted")
		return nil
	},
}

func employerFlags(c *cobra.Command) {
	c.Flags().String("username", "", "Unique username")
	c.Flags().String("first-name", "", "First name")
	c.Flags().String("last-name", "", "Last name")
	c.Flags().String("email", "", "Email address")
	c.Flags().String("description", "", "Short description")
	c.Flags().String("enterprise", "", "Enterprise name")
	c.Flags().String("company", "", "Company id, or 'none' to detach")
}

func init() {
	rootCmd.AddCommand(employerCmd)
	employerCmd.AddCommand(createEmployerCmd)
	employerCmd.AddCommand(listEmployersCmd)
	employerCmd.AddCommand(showEmployerCmd)
	employerCmd.AddCommand(updateEmployerCmd)
	employerCmd.AddCommand(deleteEmployerCmd)

	employerFlags(createEmployerCmd)
	employerFlags(updateEmployerCmd)
}
