// Command cpsc is an ahead-of-time pseudocode compiler: it reads a program
// from standard input and writes the lowered IR module to standard error.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/cpsc/cmd/cpsc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
