package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"story-manager/core/psfont"
	"story-manager/feature/fonts"

	"github.com/spf13/cobra"
)

var (
	localFont  bool
	fontDesign []int
)

// fontCmd inspects a font from the library or the local disk.
var fontCmd = &cobra.Command{
	Use:   "font [name]",
	Short: "Inspect an interpreter font",
	Long: `Prints the PostScript dictionaries, Multiple Master axes and CID information of a font as JSON.
With --design the weight vector of a Multiple Master font at that design position is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var face *psfont.Face
		if localFont {
			f, err := psfont.OpenFile(name)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", name, err)
			}
			face, name = f, filepath.Base(name)
		} else {
			e, err := setup(false)
			if err != nil {
				return err
			}
			svc := fonts.NewService(e.store, e.cfg.Storage.Bucket, e.cfg.Library, e.logger)
			if face, err = svc.Open(cmd.Context(), name); err != nil {
				return err
			}
		}

		var out any = fonts.Describe(name, face)
		if len(fontDesign) > 0 {
			report, err := fonts.BlendFace(name, face, fontDesign)
			if err != nil {
				return err
			}
			out = report
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	fontCmd.Flags().BoolVar(&localFont, "local", false, "Read the font from the local disk")
	fontCmd.Flags().IntSliceVar(&fontDesign, "design", nil, "Design coordinates, one per axis")
	RootCmd.AddCommand(fontCmd)
}
