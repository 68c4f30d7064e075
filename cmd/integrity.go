package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"story-manager/feature/catalog"
	"story-manager/feature/integrity"
	"story-manager/feature/integrity/checks"
	"story-manager/feature/stories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

var storiesJSONFlag bool

// integrityCmd runs every check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the story library",
	Long:  `Checks the bucket layout, the detection catalog, the stored stories and the library database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkAll)
	},
}

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkStructure)
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate the detection catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkCatalog)
	},
}

var storiesCheckCmd = &cobra.Command{
	Use:   "stories",
	Short: "Cross-check stored stories with the catalog and database",
	Long:  `Reads every story file in storage, identifies it and compares the result with the catalog and the library database. Use --json to save the full report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkStories)
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the library database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkServer)
	},
}

type integrityCheck int

const (
	checkAll integrityCheck = iota
	checkStructure
	checkCatalog
	checkStories
	checkServer
)

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, catalogCheckCmd, storiesCheckCmd, serverCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	storiesCheckCmd.Flags().BoolVar(&storiesJSONFlag, "json", false, "Save the full report as JSON")
}

func runIntegrityChecks(ctx context.Context, which integrityCheck) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	logg := e.logger
	cfg := e.cfg

	catalogSvc := catalog.NewService(e.store, cfg.Storage.Bucket, cfg.Library, logg)
	storiesSvc := stories.NewService(e.store, cfg.Storage.Bucket, cfg.Library, logg, e.db, cfg.Server.Profile, catalogSvc)
	svc := integrity.NewService(e.store, cfg.Storage.Bucket, cfg.Library, logg, e.db, cfg.Server.Profile, catalogSvc, storiesSvc)

	run := func(c integrityCheck) bool { return which == checkAll || which == c }

	if run(checkStructure) {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if errors.Is(err, checks.ErrBucketNotFound) && which == checkStructure && fixFlag {
			logg.Warn("Bucket missing, creating it", zap.String("bucket", cfg.Storage.Bucket))
			if err = svc.CreateBucket(ctx); err == nil {
				missing = svc.Folders()
			}
		}
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		switch {
		case len(missing) == 0:
			logg.Info("Structure is intact.")
		case which == checkStructure && fixFlag:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.")
		default:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			logg.Info("Run 'integrity structure --fix' to create missing folders.")
		}
	}

	if run(checkCatalog) {
		logg.Info("Validating detection catalog...", zap.String("object", cfg.Library.CatalogObject))
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}
		logg.Info("Catalog validated",
			zap.String("status", report.Status),
			zap.Bool("overlay_found", report.OverlayFound),
			zap.Int("games", report.Games),
			zap.Int("fingerprints", report.Fingerprints))
		for _, p := range report.Problems {
			logg.Warn("Catalog problem", zap.Int("index", p.Index), zap.String("game_id", p.GameID), zap.String("message", p.Message))
		}
	}

	if run(checkStories) {
		logg.Info("Checking stories (this reads every story file)...")
		report, err := svc.CheckStories(ctx)
		if err != nil {
			return fmt.Errorf("story check failed: %w", err)
		}
		printStoryReport(report)

		if which == checkStories {
			if storiesJSONFlag {
				filename := fmt.Sprintf("integrity_stories_%d.json", time.Now().Unix())
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				if err := os.WriteFile(filename, data, 0644); err != nil {
					return fmt.Errorf("failed to save JSON file: %w", err)
				}
				logg.Info("Detailed JSON report saved", zap.String("file", filename))
			}
		}
	}

	if run(checkServer) {
		logg.Info("Checking library schema...", zap.String("profile", cfg.Server.Profile))
		report, err := svc.CheckServer()
		switch {
		case err != nil && which == checkServer:
			return fmt.Errorf("server schema check failed: %w", err)
		case err != nil:
			logg.Error("Server schema check failed", zap.Error(err))
		case report.Matched:
			logg.Info("Library schema matches the model.", zap.String("profile", report.Profile))
		default:
			logg.Warn("Library schema mismatches found", zap.String("profile", report.Profile))
			for table, tbl := range report.Tables {
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, msg := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", msg))
			}
		}
	}
	return nil
}

func printStoryReport(r *stories.Report) {
	fmt.Println("\n=== Story Integrity Metrics ===")
	fmt.Printf("Catalogued:       %d\n", r.TotalCatalogued)
	fmt.Printf("Files Found:      %d\n", r.TotalFound)
	fmt.Printf("Unknown Files:    %d\n", len(r.UnknownFiles))
	fmt.Printf("Unregistered:     %d\n", len(r.UnregisteredFiles))
	fmt.Printf("Missing Files:    %d\n", len(r.MissingFiles))
	fmt.Printf("Field Mismatches: %d\n", len(r.FieldMismatches))
	fmt.Printf("Execution Time:   %s\n", r.ExecutionTime)

	for _, name := range r.UnknownFiles {
		fmt.Printf("  unknown       %s\n", name)
	}
	for _, name := range r.UnregisteredFiles {
		fmt.Printf("  unregistered  %s\n", name)
	}
	for _, name := range r.MissingFiles {
		fmt.Printf("  missing       %s\n", name)
	}
	for _, m := range r.FieldMismatches {
		fmt.Printf("  mismatch      %s\n", m)
	}
}
