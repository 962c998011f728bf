// Package inspect provides an interactive shell for exploring compiled
// module layouts and IR, adapted from the teacher's repl package — same
// liner-driven read-eval-print loop, retargeted from evaluating Skunk
// expressions to loading and inspecting example scenarios.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/sunholo/skunkc/internal/codegen"
	"github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/examples"
	"github.com/sunholo/skunkc/internal/layout"
	"tinygo.org/x/go-llvm"
)

const prompt = "skunkc> "

// Session is one REPL instance: a liner editor (which keeps the input
// history) and the set of built-in scenario names offered for completion.
type Session struct {
	line     *liner.State
	scenario map[string]bool
}

func NewSession() *Session {
	s := &Session{line: liner.NewLiner(), scenario: make(map[string]bool)}
	for name := range examples.All() {
		s.scenario[name] = true
	}
	s.line.SetCompleter(s.complete)
	return s
}

func (s *Session) complete(line string) []string {
	var out []string
	for name := range s.scenario {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}
	return out
}

// Run drives the loop until EOF or an explicit "quit". Output goes to
// stdout via fmt; liner owns stdin.
func (s *Session) Run() error {
	defer s.line.Close()
	color.Cyan("skunkc inspect — type a scenario name, \"list\", or \"quit\"")
	for {
		text, err := s.line.Prompt(prompt)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		s.line.AppendHistory(text)

		switch text {
		case "quit", "exit":
			return nil
		case "list":
			for name := range s.scenario {
				fmt.Println(name)
			}
		default:
			s.handle(text)
		}
	}
}

func (s *Session) handle(name string) {
	mod, ok := examples.All()[name]
	if !ok {
		color.Red("unknown scenario %q", name)
		return
	}

	l, err := layout.Build(mod)
	if err != nil {
		printErr(err)
		return
	}
	text, _ := l.ToJSON()
	color.Green("layout:")
	fmt.Println(text)

	ctx := llvm.NewContext()
	defer ctx.Dispose()
	mods, err := codegen.CompileModule(ctx, mod)
	if err != nil {
		printErr(err)
		return
	}
	color.Green("ir:")
	for _, m := range mods {
		fmt.Println(m.String())
	}
}

func printErr(err error) {
	if rep, ok := errors.AsReport(err); ok {
		text, _ := rep.ToJSON(false)
		color.Red("%s", text)
		return
	}
	color.Red("%s", err.Error())
}
