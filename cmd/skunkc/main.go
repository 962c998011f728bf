// Command skunkc compiles Skunk reactive modules to LLVM IR.
//
// Parsing real Skunk source text is out of scope (spec.md Non-goals): the
// "compile" and "inspect" subcommands both source their ast.Module from the
// built-in scenarios in internal/examples, the same role the teacher's own
// out-of-scope example-harness generator played for its pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sunholo/skunkc/internal/codegen"
	"github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/examples"
	"github.com/sunholo/skunkc/internal/inspect"
	"github.com/sunholo/skunkc/internal/layout"
	"github.com/sunholo/skunkc/internal/scenariofile"
	"tinygo.org/x/go-llvm"
)

var errColor = color.New(color.FgRed, color.Bold)
var okColor = color.New(color.FgGreen)

func main() {
	root := &cobra.Command{
		Use:   "skunkc",
		Short: "Skunk reactive module compiler",
	}
	root.AddCommand(compileCmd(), inspectCmd(), listCmd(), shellCmd(), describeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the built-in example scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for name := range examples.All() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <scenario>",
		Short: "emit LLVM IR for a built-in example scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, ok := examples.All()[args[0]]
			if !ok {
				errColor.Fprintf(os.Stderr, "unknown scenario %q\n", args[0])
				return fmt.Errorf("unknown scenario %q", args[0])
			}

			ctx := llvm.NewContext()
			defer ctx.Dispose()

			mods, err := codegen.CompileModule(ctx, mod)
			if err != nil {
				reportErr(err)
				return err
			}
			for _, m := range mods {
				fmt.Println(m.String())
			}
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scenario>",
		Short: "print the module state-struct layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, ok := examples.All()[args[0]]
			if !ok {
				errColor.Fprintf(os.Stderr, "unknown scenario %q\n", args[0])
				return fmt.Errorf("unknown scenario %q", args[0])
			}
			l, err := layout.Build(mod)
			if err != nil {
				reportErr(err)
				return err
			}
			text, err := l.ToJSON()
			if err != nil {
				return err
			}
			okColor.Fprintln(os.Stderr, "layout ok")
			fmt.Println(text)
			return nil
		},
	}
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <manifest.yaml>",
		Short: "print the state-struct layout for a YAML module manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			manifest, err := scenariofile.Load(path)
			if err != nil {
				errColor.Fprintln(os.Stderr, err.Error())
				return err
			}

			mod, err := manifest.ToModule(dirOf(path))
			if err != nil {
				errColor.Fprintln(os.Stderr, err.Error())
				return err
			}

			l, err := layout.Build(mod)
			if err != nil {
				reportErr(err)
				return err
			}
			text, err := l.ToJSON()
			if err != nil {
				return err
			}
			okColor.Fprintln(os.Stderr, "layout ok")
			fmt.Println(text)
			return nil
		},
	}
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "interactively inspect built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect.NewSession().Run()
		},
	}
}

func dirOf(path string) string {
	return filepath.Dir(path)
}

func reportErr(err error) {
	if rep, ok := errors.AsReport(err); ok {
		text, _ := rep.ToJSON(false)
		errColor.Fprintln(os.Stderr, text)
		return
	}
	errColor.Fprintln(os.Stderr, err.Error())
}
