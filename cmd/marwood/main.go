package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/ratherlargerobot/marwood/cell"
	"github.com/ratherlargerobot/marwood/lex"
	"github.com/ratherlargerobot/marwood/parse"
	"github.com/ratherlargerobot/marwood/vm"
)

func tracer() tracing.Trace {
	return tracing.Select("marwood.repl")
}

var traceLevel string

var rootCmd = &cobra.Command{
	Use:   "marwood",
	Short: "marwood is a Scheme-family interpreter",
	Long: `marwood is an embeddable interpreter for a Scheme-family language,
with a bytecode virtual machine, a mark-and-sweep heap and syntax-rules
macros. Without arguments it starts an interactive REPL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl()
	},
}

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "evaluate a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(args[0])
	},
}

var disasmCmd = &cobra.Command{
	Use:   "disasm EXPR",
	Short: "print the compiled opcode stream for an expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return disasm(strings.Join(args, " "))
	},
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	initDisplay()
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	cobra.OnInitialize(func() {
		tracer().SetTraceLevel(tracing.TraceLevelFromString(traceLevel))
	})
	rootCmd.AddCommand(runCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  =>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// repl starts interactive mode. Incomplete expressions re-prompt with a
// continuation prompt; trailing unparsed text carries into the next
// evaluation round.
func repl() error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	pterm.Info.Println("Welcome to marwood")
	tracer().Infof("Quit with <ctrl>D")

	machine := vm.New()
	pending := ""
	for {
		if pending == "" {
			rl.SetPrompt("> ")
		} else {
			rl.SetPrompt("… ")
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		pending = evalAll(machine, pending+line+"\n")
	}
	println("Good bye!")
	return nil
}

// evalAll evaluates every complete expression in text and returns input
// that still needs more lines to complete.
func evalAll(machine *vm.Vm, text string) string {
	tokens, err := lex.Scan(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		return ""
	}
	if len(tokens) == 0 {
		return ""
	}
	for strings.TrimSpace(text) != "" {
		result, remaining, err := machine.EvalText(text)
		switch {
		case errors.Is(err, parse.ErrIncomplete):
			return text
		case err != nil:
			pterm.Error.Println(err.Error())
			return ""
		default:
			printResult(result)
			text = remaining
		}
	}
	return ""
}

func printResult(result *cell.Cell) {
	if result.Type() == cell.VoidType {
		return
	}
	pterm.Info.Println(result.String())
}

// runFile evaluates every expression of a file in order.
func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	machine := vm.New()
	tokens, err := lex.Scan(string(src))
	if err != nil {
		return err
	}
	cur := parse.NewCursor(tokens)
	for cur.HasNext() {
		ast, err := parse.Parse(cur)
		if err != nil {
			return err
		}
		result, err := machine.Eval(ast)
		if err != nil {
			return err
		}
		printResult(result)
	}
	return nil
}

// disasm compiles one expression and prints the decompiled program.
func disasm(text string) error {
	tokens, err := lex.Scan(text)
	if err != nil {
		return err
	}
	ast, err := parse.Parse(parse.NewCursor(tokens))
	if err != nil {
		return err
	}
	machine := vm.New()
	program, err := machine.Compile(ast)
	if err != nil {
		return err
	}
	fmt.Print(vm.DecompileText(program))
	return nil
}
