package main

import (
	"fmt"

	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

// blockTree renders the basic blocks of code, one branch per block.
func blockTree(name string, code []int64) treeprint.Tree {
	blocks := program.BasicBlocks(code)
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s: %d words, %d blocks", name, len(code), len(blocks)))
	for _, bb := range blocks {
		branch := tree.AddBranch(bb.String())
		for _, line := range bb.Lines {
			branch.AddNode(line.String())
		}
	}
	return tree
}

func newDisasmCmd(a *app) *cobra.Command {
	var blocks bool
	var disasmCmd = &cobra.Command{
		Use:   "disasm <program>",
		Short: "Disassemble a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := program.Load(args[0])
			if err != nil {
				return err
			}
			if blocks {
				fmt.Fprint(cmd.OutOrStdout(), blockTree(args[0], code).String())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), program.DisassembleText(code))
			return nil
		},
	}
	disasmCmd.Flags().BoolVar(&blocks, "blocks", false, "Group instructions into basic blocks")
	return disasmCmd
}
