package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doplab/jobfinder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := getApp(cmd); err != nil {
			return err
		}
		cfg := config.AppConfig

		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		cmd.Printf("%s %s\n", labelStyle.Render("Database:"), cfg.DatabasePath)
		cmd.Printf("%s %s\n", labelStyle.Render("Publish Rule:"), cfg.Offer.PublishRule)
		cmd.Printf("%s %s\n", labelStyle.Render("RemoteOK URL:"), cfg.External.RemoteOKURL)
		cmd.Printf("%s %s\n", labelStyle.Render("ESCO URL:"), cfg.External.ESCOURL)
		cmd.Printf("%s %t\n", labelStyle.Render("JSON Logs:"), cfg.Log.JSON)
		cmd.Printf("%s %t\n", labelStyle.Render("Debug Logs:"), cfg.Log.Debug)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  jobfinder config set --key offer.publish_rule --value any
  jobfinder config set --key database_path --value /tmp/jobs.db
  jobfinder config set --key log.debug --value true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		validKeys := []string{
			"database_path", "offer.publish_rule",
			"external.remoteok_url", "external.esco_url",
			"log.json", "log.debug",
		}
		valid := false
		for _, k := range validKeys {
			if k == key {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid key, must be one of: %v", validKeys)
		}
		if key == "offer.publish_rule" &&
			value != config.PublishFromDraftOnly && value != config.PublishFromAny {
			return fmt.Errorf("offer.publish_rule must be %q or %q",
				config.PublishFromDraftOnly, config.PublishFromAny)
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
