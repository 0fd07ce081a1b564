package cmd

import (
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := application.State.Seed(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("✓ Demo data created")
		return nil
	},
}

var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all rows, keeping the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := application.State.Clear(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("✓ Database cleared")
		return nil
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := application.State.Reset(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("✓ Database reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbSeedCmd)
	dbCmd.AddCommand(dbClearCmd)
	dbCmd.AddCommand(dbResetCmd)
}
