// Package cmd implements the CLI commands for coursebuild using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/coursebuild/config"
	"github.com/gaurav-prasanna/coursebuild/logger"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagConfig    string
	flagLogMode   string
	flagOutputDir string
)

// Loaded by the root command before any subcommand runs.
var (
	cfg *config.Config
	log = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "coursebuild",
	Short: "coursebuild — prepare Moodle course HTML",
	Long: `coursebuild is a toolbox for building Moodle courses: it normalizes heading
tags against a template, merges a course plan into a Moodle shell, resizes
images, repacks Moodle backups, and extracts published sections and
activities from a live Moodle site.

Usage:
  coursebuild format <design.html> [flags]
  coursebuild merge <plan.html> <template.html> [flags]
  coursebuild resize <image>... [flags]
  coursebuild mbz <backup.mbz> [flags]
  coursebuild sections <course-id> [flags]
  coursebuild activities <course-id> [flags]`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&flagLogMode, "log-mode", "", "Log mode: dev or prod (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: config, then current directory)")
}

// setup loads configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogMode != "" {
		loaded.Log.Mode = flagLogMode
	}
	if flagOutputDir != "" {
		loaded.Output.Dir = flagOutputDir
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logger.New(loaded.Log.Mode)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	cfg = loaded
	log = l.With("command", cmd.Name())
	return nil
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
