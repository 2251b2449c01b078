package main

import (
	"fmt"

	log "github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		input string
		ascii bool
		trace bool
		save  string
	)
	var runCmd = &cobra.Command{
		Use:   "run <program>",
		Short: "Run a program to completion and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := program.Load(args[0])
			if err != nil {
				return err
			}
			var values []int64
			if ascii {
				if input != "" {
					values = encodeLine(input)
				}
			} else if values, err = parseValues(input); err != nil {
				return fmt.Errorf("--input: %w", err)
			}
			if trace {
				if err := a.enableTrace(); err != nil {
					return err
				}
			}

			vm := machine.NewVM(code, a.machineOptions(
				machine.WithName(args[0]),
				machine.WithInput(values...),
			)...)
			ev, runErr := vm.Run()
			snap := vm.Snapshot()
			out := renderOutput(vm.Output(), ascii)
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			log.Info(log.CLIMonitoring, "run finished", "event", ev, "steps", vm.Steps(), "ip", vm.IP())

			if save != "" {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Save(save, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot %q (%s at ip %d)\n", save, vm.Status(), vm.IP())
			}

			if runErr != nil {
				return runErr
			}
			if ev == machine.EventAwaitingInput {
				return fmt.Errorf("program is waiting for input at ip %d", vm.IP())
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&input, "input", "", "Comma separated input values, or a line of text with --ascii")
	runCmd.Flags().BoolVar(&ascii, "ascii", false, "Treat input and output as ASCII text")
	runCmd.Flags().BoolVar(&trace, "trace", false, "Log every executed instruction")
	runCmd.Flags().StringVar(&save, "save", "", "Save the final machine state under this name")
	return runCmd
}
