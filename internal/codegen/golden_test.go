package codegen

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestGoldenIR snapshots the printed IR module for a representative set of
// programs: arithmetic, both FOR directions, arrays with their runtime
// guards, mixed integer/real division, a BYREF procedure call, and the
// operator-associativity and FOR-direction behaviors.
func TestGoldenIR(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"integer_arithmetic", "DECLARE x:INTEGER\nx<-21*2\nOUTPUT x\n"},
		{"for_ascending", "FOR i<-1 TO 3\nOUTPUT i\nNEXT i\n"},
		{"for_descending_literal_step", "FOR i<-3 TO 1 STEP -1\nOUTPUT i\nNEXT i\n"},
		{"array_declare_assign_output", "DECLARE a:ARRAY[1:3] OF INTEGER\na[1]<-10\na[2]<-20\na[3]<-30\nOUTPUT a\n"},
		{"array_out_of_bounds", "DECLARE a:ARRAY[1:3] OF INTEGER\nOUTPUT a[5]\n"},
		{"integer_division_by_zero", "DECLARE x:INTEGER\nx<-10/0\n"},
		{"mixed_integer_real_division", "DECLARE x:INTEGER\nDECLARE y:REAL\nx<-5\ny<-x/2\nOUTPUT y\n"},
		{"byref_procedure_call", "PROCEDURE p(BYREF n:INTEGER)\nn<-n+1\nENDPROCEDURE\nDECLARE x:INTEGER\nx<-41\nCALL p(x)\nOUTPUT x\n"},
		{"law_operator_associativity", "DECLARE a:INTEGER\nDECLARE b:INTEGER\nDECLARE c:INTEGER\nDECLARE r:INTEGER\nr<-a*b+c\n"},
		{"law_for_direction_dynamic_step", "DECLARE s:INTEGER\ns<--1\nFOR i<-3 TO 1 STEP s\nOUTPUT i\nNEXT i\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, diag := compile(t, tc.src)
			if diag.HasErrors() {
				t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_ir", tc.name), out)
		})
	}
}
