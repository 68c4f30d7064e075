package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"story-manager/core/reconcile"
	"story-manager/feature/catalog"
	"story-manager/feature/stories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	purgeStories  bool
	syncStories   bool
	dryRunStories bool
	yesConfirm    bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the catalog, the database and storage",
	Long: `Reconcile library records to detect missing stories, orphans and mismatches.
Supports optional purge (delete incomplete records) and sync (repair mismatches) operations.`,
}

// storiesReconcileCmd performs story reconciliation with optional purge/sync.
var storiesReconcileCmd = &cobra.Command{
	Use:   "stories",
	Short: "Reconcile story files (report + optionally purge/sync)",
	Long: `Reconcile stories across the detection catalog, the library database and storage.

Reports missing stories, orphans and field mismatches.
Optionally purge records missing from any store, or sync database fields from the catalog.
Built-in catalog records are never deleted.

Examples:
  # Report only
  reconcile stories

  # Purge incomplete records (with interactive confirmation)
  reconcile stories --purge

  # Sync mismatches with auto-confirm
  reconcile stories --sync --yes

  # Show what purge and sync would do
  reconcile stories --purge --sync --dry-run`,
	RunE: runStoriesReconcile,
}

func init() {
	reconcileCmd.AddCommand(storiesReconcileCmd)

	storiesReconcileCmd.Flags().BoolVar(&purgeStories, "purge", false, "Delete records missing in any store")
	storiesReconcileCmd.Flags().BoolVar(&syncStories, "sync", false, "Update DB fields from the catalog")
	storiesReconcileCmd.Flags().BoolVar(&dryRunStories, "dry-run", false, "Plan only, even with --yes")
	storiesReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runStoriesReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := setup(true)
	if err != nil {
		return err
	}
	l := e.logger
	cfg := e.cfg
	bucket := cfg.Storage.Bucket

	l.Info("Starting story reconciliation")

	catalogSvc := catalog.NewService(e.store, bucket, cfg.Library, l)
	svc := stories.NewService(e.store, bucket, cfg.Library, l, e.db, cfg.Server.Profile, catalogSvc)
	spec := svc.Spec()
	reconcile.InvalidateCache(spec)

	opts := reconcile.ReconcileOptions{
		DoPurge: purgeStories,
		DoSync:  syncStories,
		DryRun:  dryRunStories,
	}

	l.Info("Planning reconciliation...")
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, e.db, e.store, bucket, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printReconcileReport(l, plan)

	if !purgeStories && !syncStories {
		l.Info("No actions requested. Use --purge to delete incomplete records or --sync to repair mismatches.")
		return nil
	}
	if dryRunStories {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying actions...")
	executed, err := reconcile.ApplyPlan(ctx, spec, e.db, e.store, bucket, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printReconcileReport logs the plan summary and a sample of its actions.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_catalog", s.MissingCatalog),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("missing_db", s.MissingDB),
		zap.Int("mismatches", s.Mismatches),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("sync_actions", s.SyncActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	maxShow := min(len(plan.Actions), 5)
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
