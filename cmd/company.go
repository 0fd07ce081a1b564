package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/state"
	"github.com/doplab/jobfinder/pkg/models"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var createCompanyCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company",
	Example: `  jobfinder company create --name "Acme Software" --location Lausanne \
      --owner 5f0c6f...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		location, _ := cmd.Flags().GetString("location")
		description, _ := cmd.Flags().GetString("description")
		ownerID, err := flagIDPtr(cmd, "owner", "employer")
		if err != nil {
			return err
		}

		c := &models.Company{
			Name:        name,
			Location:    location,
			Description: description,
		}
		if ownerID != nil {
			c.OwnerEmployerID = ownerID
		}

		created, err := application.State.CreateCompany(cmd.Context(), c)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Company created: %s (ID: %s)\n", created.Name, created.ID)
		return nil
	},
}

var listCompaniesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		companies, err := application.State.ListCompanies(cmd.Context())
		if err != nil {
			return err
		}
		if len(companies) == 0 {
			cmd.Println("No companies found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Companies"))
		for _, c := range companies {
			cmd.Printf("%s %s\n", labelStyle.Render("•"), c.Name)
			cmd.Printf("  %s %s\n", labelStyle.Render("ID:"), c.ID)
			if c.Location != "" {
				cmd.Printf("  %s %s\n", labelStyle.Render("Location:"), c.Location)
			}
		}
		return nil
	},
}

var showCompanyCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "company")
		if err != nil {
			return err
		}
		c, err := application.State.GetCompany(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(c.Name))
		cmd.Printf("%s %s\n", labelStyle.Render("ID:"), valueStyle.Render(c.ID.String()))
		if c.Location != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Location:"), valueStyle.Render(c.Location))
		}
		if c.OwnerEmployerID != nil {
			cmd.Printf("%s %s\n", labelStyle.Render("Owner:"), valueStyle.Render(c.OwnerEmployerID.String()))
		}
		if c.Description != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("About:"), valueStyle.Render(c.Description))
		}
		return nil
	},
}

var updateCompanyCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a company",
	Long: `Update a company. Only the flags you pass are applied. Pass
--owner none to clear the owning employer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "company")
		if err != nil {
			return err
		}
		ownerID, err := flagIDPtr(cmd, "owner", "employer")
		if err != nil {
			return err
		}

		c, err := application.State.UpdateCompany(cmd.Context(), id, state.CompanyPatch{
			Name:            flagStrPtr(cmd, "name"),
			Location:        flagStrPtr(cmd, "location"),
			Description:     flagStrPtr(cmd, "description"),
			OwnerEmployerID: ownerID,
		})
		if err != nil {
			return err
		}
		cmd.Printf("✓ Company updated: %s\n", c.Name)
		return nil
	},
}

var deleteCompanyCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a company, detaching its offers and employers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "company")
		if err != nil {
			return err
		}
		if err := application.State.DeleteCompany(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Println("✓ Company deleted")
		return nil
	},
}

func companyFlags(c *cobra.Command) {
	c.Flags().String("name", "", "Company name")
	c.Flags().String("location", "", "Location")
	c.Flags().String("description", "", "Short description")
	c.Flags().String("owner", "", "Owning employer id, or 'none' to clear")
}

func init() {
	rootCmd.AddCommand(companyCmd)
	companyCmd.AddCommand(createCompanyCmd)
	companyCmd.AddCommand(listCompaniesCmd)
	companyCmd.AddCommand(showCompanyCmd)
	companyCmd.AddCommand(updateCompanyCmd)
	companyCmd.AddCommand(deleteCompanyCmd)

	companyFlags(createCompanyCmd)
	companyFlags(updateCompanyCmd)
}
