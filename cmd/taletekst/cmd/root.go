// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     cmd
// Description: Command line interface of the corpus builder
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/taletekst/internal/dataset"
	"github.com/msto63/taletekst/pkg/core/config"
	"github.com/msto63/taletekst/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "taletekst",
	Short: "taletekst - Danish TTS text corpus builder",
	Long: `taletekst assembles a Danish text corpus for speech synthesis
training from several sub-datasets.

Steps:
  sources   - build the configured sub-datasets into the raw directory
  rank      - annotate and rank the encyclopedia corpus by phoneme coverage
  cover     - select a phoneme covering set from the ranked corpus
  annotate  - hand-filter comment sentences
  build     - interleave all sub-datasets into the final dataset`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// session bundles what every command needs
type session struct {
	cfg    *config.Config
	logger *logging.Logger
	closer io.Closer
}

func (r *session) Close() {
	r.closer.Close()
}

// pipeline creates the dataset pipeline with the run logger
func (r *session) pipeline() (*dataset.Pipeline, error) {
	return dataset.New(r.cfg, dataset.WithLogger(r.logger))
}

// loadRuntime resolves and validates the config and builds the run logger
func loadRuntime(name string) (*session, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lc := logging.DefaultLoggerConfig("taletekst")
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	lc.File = cfg.General.LogFile
	if verbose {
		lc.Level = "debug"
	}

	logger, closer := logging.NewLogger(lc)
	return &session{cfg: cfg, logger: logger.Named(name), closer: closer}, nil
}

// signalContext is canceled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
