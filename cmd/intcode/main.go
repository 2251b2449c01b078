// intcode runs, inspects and drives Intcode programs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/colorfulnotion/intcode/config"
	log "github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/storage"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
)

// app carries the global flags and the configuration they resolve to.
type app struct {
	configPath   string
	logLevel     string
	debugModules string
	storePath    string

	cfg    *config.Config
	logOut io.Writer
}

func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.debugModules != "" {
		cfg.Log.Modules = a.debugModules
	}
	if a.storePath != "" {
		cfg.Storage.Path = a.storePath
	}
	if err := log.Configure(logOut, cfg.Log.Level, cfg.Log.Modules, cfg.Machine.Trace); err != nil {
		return err
	}
	a.cfg = cfg
	a.logOut = logOut
	log.Debug(log.CLIMonitoring, "configured", "config", cfg.Path, "level", cfg.Log.Level, "store", cfg.Storage.Path)
	return nil
}

// machineOptions returns the engine options implied by the [machine]
// settings.
func (a *app) machineOptions(extra ...machine.Option) []machine.Option {
	opts := []machine.Option{
		machine.WithTrace(a.cfg.Machine.Trace),
		machine.WithStepLimit(a.cfg.Machine.StepLimit),
	}
	return append(opts, extra...)
}

// enableTrace turns on per-step machine logging for one command.
func (a *app) enableTrace() error {
	a.cfg.Machine.Trace = true
	return log.Configure(a.logOut, a.cfg.Log.Level, a.cfg.Log.Modules, true)
}

func (a *app) openStore() (*storage.SnapshotStore, error) {
	if a.cfg.Storage.Path == "" {
		log.Warn(log.CLIMonitoring, "no snapshot store configured, snapshots live in memory only")
	}
	return storage.OpenSnapshotStore(a.cfg.Storage.Path)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var rootCmd = &cobra.Command{
		Use:   "intcode",
		Short: "Intcode virtual machine tools",
		Long: `Run, disassemble and interactively drive Intcode programs, and keep
machine snapshots in a LevelDB store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to intcode.toml")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&a.debugModules, "debug", "", "Modules with debug logging enabled, comma separated or \"all\"")
	pf.StringVar(&a.storePath, "store", "", "Snapshot store directory")

	rootCmd.AddCommand(
		newRunCmd(a),
		newDisasmCmd(a),
		newReplCmd(a),
		newScriptCmd(a),
		newSnapshotCmd(a),
		newSolveCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "intcode %s (%s)\n", Version, Commit)
			},
		},
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
