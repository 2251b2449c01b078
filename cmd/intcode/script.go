package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"
)

// newScriptRuntime exposes vm to JavaScript as the global `machine` object.
func newScriptRuntime(vm *machine.VM, out io.Writer) *goja.Runtime {
	rt := goja.New()

	m := rt.NewObject()
	m.Set("send", func(values ...int64) {
		vm.Send(values...)
	})
	m.Set("sendText", func(line string) {
		vm.Send(encodeLine(line)...)
	})
	m.Set("run", func() string {
		ev, err := vm.Run()
		if err != nil {
			panic(rt.NewGoError(err))
		}
		return ev.String()
	})
	m.Set("runUntilOutput", func() string {
		ev, err := vm.RunUntilOutput()
		if err != nil {
			panic(rt.NewGoError(err))
		}
		return ev.String()
	})
	m.Set("output", func() []int64 {
		return vm.Output()
	})
	m.Set("text", func() string {
		return renderOutput(vm.Output(), true)
	})
	m.Set("status", func() string {
		return vm.Status().String()
	})
	m.Set("peek", func(addr int64) int64 {
		v, err := vm.Peek(addr)
		if err != nil {
			panic(rt.NewGoError(err))
		}
		return v
	})
	m.Set("poke", func(addr, v int64) {
		if err := vm.Patch(addr, v); err != nil {
			panic(rt.NewGoError(err))
		}
	})
	rt.Set("machine", m)

	rt.Set("print", func(args ...goja.Value) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = fmt.Sprint(arg.Export())
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	})
	return rt
}

func newScriptCmd(a *app) *cobra.Command {
	var scriptCmd = &cobra.Command{
		Use:   "script <program> <file.js>",
		Short: "Drive a machine with a JavaScript file",
		Long: `Load a program and run a script against it. The script sees a global
machine object with send, sendText, run, runUntilOutput, output, text,
status, peek and poke, and a print function.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := program.Load(args[0])
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			vm := machine.NewVM(code, a.machineOptions(machine.WithName(args[0]))...)
			rt := newScriptRuntime(vm, cmd.OutOrStdout())
			if _, err := rt.RunScript(args[1], string(src)); err != nil {
				return fmt.Errorf("script: %w", err)
			}
			return nil
		},
	}
	return scriptCmd
}
