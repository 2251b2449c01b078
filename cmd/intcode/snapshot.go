package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/colorfulnotion/intcode/storage"
	"github.com/spf13/cobra"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

func showSnapshot(w io.Writer, name string, s *machine.Snapshot) {
	fmt.Fprintf(w, "%s: %s\n", name, s.Status)
	fmt.Fprintf(w, "  ip=%d base=%d steps=%d outputs=%d\n", s.IP, s.Base, s.Steps, s.Outputs)
	fmt.Fprintf(w, "  memory: %d dense words, %d sparse\n", len(s.Memory), len(s.Sparse))
	fmt.Fprintf(w, "  input: %v\n", s.Input)
	fmt.Fprintf(w, "  output: %v\n", s.Output)
	if s.FaultCode != "" {
		fmt.Fprintf(w, "  fault: %s at ip %d (word %d, value %d)\n", s.FaultCode, s.FaultIP, s.FaultWord, s.FaultValue)
	}
	if s.IP < int64(len(s.Memory)) {
		fmt.Fprintf(w, "  next: %s\n", program.DisassembleSingleInstruction(s.Memory, s.IP))
	}
}

// diffSnapshots renders the differences between two snapshots as an ASCII
// JSON diff. It returns "" when they are equal.
func diffSnapshots(a, b *machine.Snapshot, color bool) (string, error) {
	left, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	right, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	differ := gojsondiff.New()
	delta, err := differ.Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("error diffing JSON: %w", err)
	}
	if !delta.Modified() {
		return "", nil
	}
	var leftObj interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", err
	}
	cfg := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}
	return formatter.NewAsciiFormatter(leftObj, cfg).Format(delta)
}

func newSnapshotCmd(a *app) *cobra.Command {
	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and manage stored machine snapshots",
	}

	withStore := func(fn func(cmd *cobra.Command, st *storage.SnapshotStore, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			return fn(cmd, st, args)
		}
	}

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, st *storage.SnapshotStore, args []string) error {
			names, err := st.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}),
	}

	var showCmd = &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, st *storage.SnapshotStore, args []string) error {
			s, err := st.Load(args[0])
			if err != nil {
				return err
			}
			showSnapshot(cmd.OutOrStdout(), args[0], s)
			return nil
		}),
	}

	var color bool
	var diffCmd = &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Diff two stored snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, st *storage.SnapshotStore, args []string) error {
			sa, err := st.Load(args[0])
			if err != nil {
				return err
			}
			sb, err := st.Load(args[1])
			if err != nil {
				return err
			}
			diff, err := diffSnapshots(sa, sb, color)
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "snapshots are identical")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		}),
	}
	diffCmd.Flags().BoolVar(&color, "color", false, "Color the diff with ANSI escapes")

	var deleteCmd = &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, st *storage.SnapshotStore, args []string) error {
			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
			return nil
		}),
	}

	snapshotCmd.AddCommand(listCmd, showCmd, diffCmd, deleteCmd)
	return snapshotCmd
}
