package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// runCompileCapturing redirects stdin and stderr around runCompile via
// os.Pipe(), so the CLI's own RunE is what's under test rather than a
// reimplementation of it.
func runCompileCapturing(t *testing.T, src string) (stderr string, err error) {
	t.Helper()

	oldStdin := os.Stdin
	rIn, wIn, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("os.Pipe: %v", pipeErr)
	}
	os.Stdin = rIn
	go func() {
		io.WriteString(wIn, src)
		wIn.Close()
	}()
	defer func() { os.Stdin = oldStdin }()

	oldStderr := os.Stderr
	rErr, wErr, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("os.Pipe: %v", pipeErr)
	}
	os.Stderr = wErr

	err = runCompile(rootCmd, nil)

	wErr.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(rErr)
	return buf.String(), err
}

// TestGoldenCLI drives a set of representative programs end to end through
// the actual cpsc command and snapshots the resulting stderr text, covering
// arithmetic, both FOR directions, arrays with their runtime guards, mixed
// integer/real division, and a BYREF procedure call.
func TestGoldenCLI(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		expectErr bool
	}{
		{"integer_arithmetic", "DECLARE x:INTEGER\nx<-21*2\nOUTPUT x\n", false},
		{"for_ascending", "FOR i<-1 TO 3\nOUTPUT i\nNEXT i\n", false},
		{"for_descending_literal_step", "FOR i<-3 TO 1 STEP -1\nOUTPUT i\nNEXT i\n", false},
		{"array_declare_assign_output", "DECLARE a:ARRAY[1:3] OF INTEGER\na[1]<-10\na[2]<-20\na[3]<-30\nOUTPUT a\n", false},
		{"array_out_of_bounds", "DECLARE a:ARRAY[1:3] OF INTEGER\nOUTPUT a[5]\n", false},
		{"integer_division_by_zero", "DECLARE x:INTEGER\nx<-10/0\n", false},
		{"mixed_integer_real_division", "DECLARE x:INTEGER\nDECLARE y:REAL\nx<-5\ny<-x/2\nOUTPUT y\n", false},
		{"byref_procedure_call", "PROCEDURE p(BYREF n:INTEGER)\nn<-n+1\nENDPROCEDURE\nDECLARE x:INTEGER\nx<-41\nCALL p(x)\nOUTPUT x\n", false},
		{"law_operator_associativity", "DECLARE a:INTEGER\nDECLARE b:INTEGER\nDECLARE c:INTEGER\nDECLARE r:INTEGER\nr<-a*b+c\n", false},
		{"undeclared_identifier_is_an_error", "OUTPUT q\n", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCompileCapturing(t, tc.src)
			if tc.expectErr && err == nil {
				t.Fatalf("expected a nonzero exit for %q, got none; stderr:\n%s", tc.name, out)
			}
			if !tc.expectErr && err != nil {
				t.Fatalf("unexpected error for %q: %v; stderr:\n%s", tc.name, err, out)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_stderr", tc.name), out)
		})
	}
}
