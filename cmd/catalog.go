package cmd

import (
	"fmt"

	"story-manager/feature/catalog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the detection catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games of the effective detection table",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := catalogService()
		if err != nil {
			return err
		}
		games, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		data := pterm.TableData{{"ID", "Description", "Fingerprints"}}
		for _, g := range games {
			data = append(data, []string{g.GameID, g.Description, fmt.Sprint(g.Fingerprints)})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective detection table",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := catalogService()
		if err != nil {
			return err
		}
		report, err := svc.Validate(cmd.Context())
		if err != nil {
			return err
		}

		pterm.Info.Printf("%d games, %d fingerprints, catalog object found: %v\n",
			report.Games, report.Fingerprints, report.OverlayFound)
		for _, p := range report.Problems {
			pterm.Error.Printf("#%d %s %s: %s\n", p.Index, p.GameID, p.MD5, p.Message)
		}
		if report.Status == catalog.StatusFail {
			return fmt.Errorf("catalog has %d problems", len(report.Problems))
		}
		pterm.Success.Println("Catalog status: " + report.Status)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogValidateCmd)
	RootCmd.AddCommand(catalogCmd)
}

func catalogService() (*catalog.Service, error) {
	e, err := setup(false)
	if err != nil {
		return nil, err
	}
	return catalog.NewService(e.store, e.cfg.Storage.Bucket, e.cfg.Library, e.logger), nil
}
