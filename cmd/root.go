package cmd

import (
	"fmt"
	"os"

	"story-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "story-manager",
	Short: "Story Manager Service",
	Long: `Story Manager keeps a library of Z-machine story files and interpreter fonts.
It identifies stories against the Frotz detection table and reconciles the
stored files with the library database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configDir is where the .env file is looked up.
var configDir string

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding the .env file")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps reads best on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
