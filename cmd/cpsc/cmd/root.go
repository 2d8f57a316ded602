// Package cmd wires the cpsc compiler into a single cobra.Command: read
// all of stdin, run lexer -> parser -> codegen, and write the accumulated
// diagnostics followed by the printed IR module to stderr. There is no
// other CLI surface, so there are no subcommands and no flags beyond the
// ones cobra adds for free.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/cpsc/internal/codegen"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/lexer"
	"github.com/cwbudde/cpsc/internal/parser"
)

var rootCmd = &cobra.Command{
	Use:   "cpsc",
	Short: "Ahead-of-time compiler for Cambridge-style exam pseudocode",
	Long: `cpsc reads a pseudocode program from standard input and lowers it to a
typed, block-structured SSA intermediate representation, printed to
standard error in LLVM-flavored text.

The pseudocode surface supports DECLARE, assignment, IF/WHILE/REPEAT/FOR,
ARRAY, and FUNCTION/PROCEDURE/CALL/RETURN. The emitted IR is intended for
handoff to a backend linking against printf, scanf, malloc, free, strlen,
memcpy, toupper, tolower, and exit; cpsc itself performs no optimization,
code generation, or linking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompile,
}

// Execute runs the root command, returning any error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

// runCompile reads all of stdin up front (so the rest of the pipeline
// operates on an in-memory string), compiles, and writes diagnostics plus
// the IR dump to stderr. The process exit code is nonzero when compilation
// reported any diagnostic or the emitted module fails self-verification.
func runCompile(_ *cobra.Command, _ []string) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	diag := &errdiag.Diagnostics{}

	l := lexer.New(string(src))
	program := parser.ParseProgram(l, diag)

	cg := codegen.New(diag)
	module := cg.Generate(program)

	if diag.HasErrors() {
		fmt.Fprint(os.Stderr, diag.Format())
	}

	verifyErrs := ir.Verify(module)
	for _, verr := range verifyErrs {
		fmt.Fprintln(os.Stderr, verr)
	}

	fmt.Fprint(os.Stderr, ir.Print(module))

	if diag.HasErrors() || len(verifyErrs) > 0 {
		return fmt.Errorf("compilation failed")
	}
	return nil
}
