package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/colorfulnotion/intcode/storage"
	"github.com/spf13/cobra"
)

// replSession feeds lines typed by the user to one machine.
type replSession struct {
	vm    *machine.VM
	ascii bool
	out   io.Writer
	store func() (*storage.SnapshotStore, error)
}

// resume runs the machine to its next suspension and prints what it wrote.
func (s *replSession) resume() error {
	ev, err := s.vm.Run()
	if out := renderOutput(s.vm.Output(), s.ascii); out != "" {
		fmt.Fprintln(s.out, strings.TrimRight(out, "\n"))
	}
	if err != nil {
		return err
	}
	if ev == machine.EventHalted {
		fmt.Fprintln(s.out, "[halted]")
	}
	return nil
}

func (s *replSession) state() string {
	return fmt.Sprintf("%s ip=%d base=%d steps=%d pending-input=%d", s.vm.Status(), s.vm.IP(), s.vm.Base(), s.vm.Steps(), s.vm.Input().Len())
}

// handle processes one line and reports whether the session should end.
func (s *replSession) handle(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, ":") {
		fields := strings.Fields(line)
		switch fields[0] {
		case ":quit", ":q", ":exit":
			return true, nil
		case ":state":
			fmt.Fprintln(s.out, s.state())
		case ":ascii":
			s.ascii = !s.ascii
			fmt.Fprintf(s.out, "ascii mode %v\n", s.ascii)
		case ":save":
			if len(fields) != 2 {
				return false, fmt.Errorf("usage: :save <name>")
			}
			st, err := s.store()
			if err != nil {
				return false, err
			}
			defer st.Close()
			if err := st.Save(fields[1], s.vm.Snapshot()); err != nil {
				return false, err
			}
			fmt.Fprintf(s.out, "saved %q\n", fields[1])
		default:
			return false, fmt.Errorf("unknown command %s", fields[0])
		}
		return false, nil
	}

	if s.vm.Status().Terminal() {
		return false, fmt.Errorf("machine is %s", s.vm.Status())
	}
	var values []int64
	if s.ascii {
		values = encodeLine(line)
	} else {
		var err error
		if values, err = parseValues(line); err != nil {
			return false, err
		}
	}
	s.vm.Send(values...)
	return false, s.resume()
}

func newReplCmd(a *app) *cobra.Command {
	var (
		ascii   bool
		restore string
	)
	var replCmd = &cobra.Command{
		Use:   "repl <program>",
		Short: "Drive a machine interactively",
		Long: `Start a machine and feed it one line of input at a time. In ASCII mode a
line is sent as character codes followed by a newline. Commands:
  :state         show the machine state
  :ascii         toggle ASCII mode
  :save <name>   store a snapshot
  :quit          leave`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vm *machine.VM
			switch {
			case restore != "":
				st, err := a.openStore()
				if err != nil {
					return err
				}
				s, err := st.Load(restore)
				st.Close()
				if err != nil {
					return err
				}
				vm = machine.Restore(s, a.machineOptions()...)
			case len(args) == 1:
				code, err := program.Load(args[0])
				if err != nil {
					return err
				}
				vm = machine.NewVM(code, a.machineOptions(machine.WithName(args[0]))...)
			default:
				return fmt.Errorf("need a program or --restore")
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:      "> ",
				HistoryFile: filepath.Join(os.TempDir(), "intcode_repl_history.txt"),
			})
			if err != nil {
				return fmt.Errorf("failed to start readline: %w", err)
			}
			defer rl.Close()

			session := &replSession{vm: vm, ascii: ascii, out: rl.Stdout(), store: a.openStore}
			if err := session.resume(); err != nil {
				return err
			}
			for {
				line, err := rl.Readline()
				if err != nil {
					break
				}
				quit, err := session.handle(line)
				if err != nil {
					fmt.Fprintln(rl.Stderr(), "error:", err)
				}
				if quit {
					break
				}
			}
			log.Debug(log.CLIMonitoring, "repl closed", "state", session.state())
			return nil
		},
	}
	replCmd.Flags().BoolVar(&ascii, "ascii", false, "Start in ASCII mode")
	replCmd.Flags().StringVar(&restore, "restore", "", "Resume from a stored snapshot instead of a program")
	return replCmd
}
