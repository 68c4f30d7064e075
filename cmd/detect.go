package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"story-manager/feature/catalog"
	"story-manager/feature/catalog/frotz"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var offlineDetect bool

// detectCmd identifies local story files.
var detectCmd = &cobra.Command{
	Use:   "detect [file...]",
	Short: "Identify local story files",
	Long: `Fingerprints local Z-machine story files and matches them against the detection table.
By default the catalog object in storage is layered over the built-in table; --offline uses the built-in table only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := frotz.BuiltinTable()
		if !offlineDetect {
			e, err := setup(false)
			if err != nil {
				return err
			}
			if table, err = catalog.LoadTable(cmd.Context(), e.store, e.cfg.Storage.Bucket, e.cfg.Library.CatalogObject); err != nil {
				return err
			}
		}

		detector := frotz.NewDetector(table)
		data := pterm.TableData{{"File", "Game", "Extra", "Language", "Known", "Key"}}
		failed := 0
		for _, name := range args {
			game, err := detectFile(detector, name)
			if err != nil {
				pterm.Error.Printf("%s: %v\n", name, err)
				failed++
				continue
			}
			data = append(data, []string{
				filepath.Base(name), game.GameID, game.Extra, game.LanguageName,
				fmt.Sprint(game.Known), game.Key(),
			})
		}
		if len(data) > 1 {
			pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be identified", failed, len(args))
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().BoolVar(&offlineDetect, "offline", false, "Use the built-in table only")
	RootCmd.AddCommand(detectCmd)
}

func detectFile(d *frotz.Detector, name string) (*frotz.DetectedGame, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return d.Detect(filepath.Base(name), f)
}
