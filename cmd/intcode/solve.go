package main

import (
	"fmt"
	"strconv"

	"github.com/colorfulnotion/intcode/puzzles"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var solveCmd = &cobra.Command{
		Use:   "solve [day...]",
		Short: "Solve puzzle days using the inputs named in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			days := puzzles.Days()
			if len(args) > 0 {
				days = days[:0:0]
				for _, arg := range args {
					d, err := strconv.Atoi(arg)
					if err != nil {
						return fmt.Errorf("bad day %q", arg)
					}
					days = append(days, d)
				}
			}
			for _, day := range days {
				ans, err := puzzles.Solve(cmd.Context(), day, a.cfg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ans)
			}
			return nil
		},
	}
	return solveCmd
}
