package cmd

import (
	"fmt"

	"story-manager/feature/library/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the library table of the configured profile.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the library database table",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(true)
		if err != nil {
			return err
		}

		model, err := models.ForProfile(e.cfg.Server.Profile)
		if err != nil {
			return err
		}
		if err := e.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		e.logger.Info("Library table migrated", zap.String("profile", e.cfg.Server.Profile))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
