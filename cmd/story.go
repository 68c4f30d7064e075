package cmd

import (
	"fmt"
	"strings"

	"story-manager/feature/catalog"
	"story-manager/feature/stories"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// storyCmd shows one story across the catalog, the database and storage.
var storyCmd = &cobra.Command{
	Use:   "story [identifier]",
	Short: "View details and validity of a story",
	Long: `Checks the presence and matching fields of a story across the catalog, the database and storage.
The identifier may be a game id, an md5, a fingerprint key (md5:size) or an object name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		cfg := e.cfg

		catalogSvc := catalog.NewService(e.store, cfg.Storage.Bucket, cfg.Library, e.logger)
		svc := stories.NewService(e.store, cfg.Storage.Bucket, cfg.Library, e.logger, e.db, cfg.Server.Profile, catalogSvc)

		e.logger.Info("Checking story...", zap.String("identifier", args[0]))
		report, err := svc.CheckStoryItem(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("story check failed: %w", err)
		}
		printStoryDetail(args[0], report)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(storyCmd)
}

func printStoryDetail(query string, r *stories.StoryDetailReport) {
	data := pterm.TableData{
		{"Field", "Value"},
		{"Query", query},
		{"Key", r.Key},
		{"Game", r.GameID},
		{"Description", r.Description},
		{"Extra", r.Extra},
		{"Language", r.Language},
		{"Objects", strings.Join(r.Objects, ", ")},
		{"In Catalog", fmt.Sprint(r.InCatalog)},
		{"In Database", fmt.Sprint(r.InDB)},
		{"In Storage", fmt.Sprint(r.InStorage)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	switch r.IntegrityStatus {
	case catalog.StatusPass:
		pterm.Success.Println("Integrity: " + r.IntegrityStatus)
	case catalog.StatusWarning:
		pterm.Warning.Println("Integrity: " + r.IntegrityStatus)
	default:
		pterm.Error.Println("Integrity: " + r.IntegrityStatus)
	}
	for _, m := range r.Mismatches {
		pterm.Printf("- %s\n", m)
	}
}
