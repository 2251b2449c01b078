// Package daycmd builds the cobra command shared by the per-day binaries.
package daycmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorfulnotion/intcode/config"
	log "github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/puzzles"
	"github.com/spf13/cobra"
)

// New returns the root command for one puzzle day. It prints both answers
// and fails when the solver does.
func New(day int, short string) *cobra.Command {
	var (
		configPath   string
		input        string
		logLevel     string
		debugModules string
	)
	var rootCmd = &cobra.Command{
		Use:           fmt.Sprintf("day%02d", day),
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if input != "" {
				cfg.Inputs[fmt.Sprintf("day%02d", day)] = input
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if debugModules != "" {
				cfg.Log.Modules = debugModules
			}
			if err := log.Configure(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Modules, cfg.Machine.Trace); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ans, err := puzzles.Solve(ctx, day, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "part1: %d\npart2: %d\n", ans.Part1, ans.Part2)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to intcode.toml")
	rootCmd.Flags().StringVar(&input, "input", "", "Program file (default from config or inputs/dayNN.txt)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level")
	rootCmd.Flags().StringVar(&debugModules, "debug", "", "Modules with debug logging enabled")
	return rootCmd
}

// Main runs the command for day and exits non-zero on failure.
func Main(day int, short string) {
	if err := New(day, short).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "day %02d failed: %v\n", day, err)
		os.Exit(1)
	}
}
