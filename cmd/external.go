package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/external"
	"github.com/doplab/jobfinder/pkg/models"
)

var remoteokCmd = &cobra.Command{
	Use:   "remoteok",
	Short: "Browse remote jobs from RemoteOK",
	Long: `Browse remote jobs from the RemoteOK public feed. With --import, each
fetched job is stored as a Draft offer owned by the given employer,
tags becoming required skills.`,
	Example: `  jobfinder remoteok --keyword golang --limit 10
  jobfinder remoteok --keyword golang --import --employer 5f0c6f...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		keyword, _ := cmd.Flags().GetString("keyword")
		limit, _ := cmd.Flags().GetInt("limit")
		doImport, _ := cmd.Flags().GetBool("import")

		client := external.NewRemoteOKClient(application.Config.External.RemoteOKURL, application.HTTPClient)
		jobs, err := client.Fetch(ctx, keyword, limit)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			cmd.Println("No remote jobs matched.")
			return nil
		}

		if !doImport {
			cmd.Println(titleStyle.Render("Remote Jobs"))
			for _, j := range jobs {
				cmd.Printf("%s %s at %s\n", labelStyle.Render("•"), j.Position, j.Company)
				if len(j.Tags) > 0 {
					cmd.Printf("  %s %s\n", labelStyle.Render("Tags:"), strings.Join(j.Tags, ", "))
				}
				if j.URL != "" {
					cmd.Printf("  %s %s\n", labelStyle.Render("URL:"), j.URL)
				}
			}
			return nil
		}

		employerRaw, _ := cmd.Flags().GetString("employer")
		employerID, err := parseID(employerRaw, "employer")
		if err != nil {
			return err
		}

		imported := 0
		for _, j := range jobs {
			title := j.Position
			if j.Company != "" {
				title += " at " + j.Company
			}
			_, err := application.State.CreateOffer(ctx, &models.JobOffer{
				EmployerID:     employerID,
				Title:          title,
				Description:    j.Description,
				EmploymentType: "remote",
				RequiredSkills: j.Tags,
			})
			if err != nil {
				application.Logger.Warn("skipping remote job",
					zap.String("position", j.Position), zap.Error(err))
				continue
			}
			imported++
		}
		cmd.Printf("✓ Imported %d draft offer(s)\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remoteokCmd)

	remoteokCmd.Flags().String("keyword", "", "Filter by keyword in position, company or tags")
	remoteokCmd.Flags().Int("limit", 10, "Maximum jobs to fetch (1-50)")
	remoteokCmd.Flags().Bool("import", false, "Store fetched jobs as draft offers")
	remoteokCmd.Flags().String("employer", "", "Owning employer id (required with --import)")
}
