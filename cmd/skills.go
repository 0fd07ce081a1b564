package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/external"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Skill and occupation lookups",
}

var suggestSkillCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest skills or occupations from the ESCO taxonomy",
	Example: `  jobfinder skill suggest --q "software deve"
  jobfinder skill suggest --q nurse --type occupation --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("q")
		conceptType, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")

		client := external.NewESCOClient(application.Config.External.ESCOURL, application.HTTPClient)
		suggestions, err := client.Suggest(cmd.Context(), query, conceptType, limit)
		if err != nil {
			return err
		}
		if len(suggestions) == 0 {
			cmd.Println("No suggestions found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Suggestions"))
		for _, s := range suggestions {
			cmd.Printf("%s %s\n", labelStyle.Render("•"), s.Label)
			if s.URI != "" {
				cmd.Printf("  %s\n", valueStyle.Render(s.URI))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skillCmd)
	skillCmd.AddCommand(suggestSkillCmd)

	suggestSkillCmd.Flags().String("q", "", "Search text (required)")
	suggestSkillCmd.Flags().String("type", "skill", "Concept type: skill or occupation")
	suggestSkillCmd.Flags().Int("limit", 10, "Maximum suggestions (1-25)")
	_ = suggestSkillCmd.MarkFlagRequired("q")
}
