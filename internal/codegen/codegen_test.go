package codegen

import (
	"strings"
	"testing"

	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/lexer"
	"github.com/cwbudde/cpsc/internal/parser"
)

// compile lexes, parses, and lowers src, returning the printed IR module
// and the diagnostics collected along the way. Tests assert on the
// emitted IR shape rather than executed output, since this package never
// runs the IR.
func compile(t *testing.T, src string) (string, *errdiag.Diagnostics) {
	t.Helper()
	diag := &errdiag.Diagnostics{}
	program := parser.ParseProgram(lexer.New(src), diag)
	module := New(diag).Generate(program)
	if errs := ir.Verify(module); len(errs) != 0 {
		t.Fatalf("module failed verification: %v", errs)
	}
	return ir.Print(module), diag
}

func requireContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, out)
	}
}

// Integer arithmetic and OUTPUT.
func TestIntegerArithmeticOutput(t *testing.T) {
	out, diag := compile(t, "DECLARE x:INTEGER\nx<-21*2\nOUTPUT x\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "mul i64 21, 2")
	requireContains(t, out, `c"%lld\0A\00"`)
}

// An ascending FOR loop uses the <= exit comparison. The loop variable is
// declared up front, which must not clash with the slot the loop itself
// provides for an undeclared variable.
func TestForAscendingUsesSLE(t *testing.T) {
	out, diag := compile(t, "DECLARE i:INTEGER\nFOR i<-1 TO 3\nOUTPUT i\nNEXT i\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "icmp sle")
	if strings.Contains(out, "icmp sge") {
		t.Errorf("ascending FOR loop should not emit icmp sge:\n%s", out)
	}
}

// A literal negative STEP flips the exit comparison to >=.
func TestForDescendingLiteralStepUsesSGE(t *testing.T) {
	out, diag := compile(t, "FOR i<-3 TO 1 STEP -1\nOUTPUT i\nNEXT i\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "icmp sge")
}

// Whole-array OUTPUT synthesizes a nested loop in row-major
// order and every element store/load goes through a bounds check.
func TestArrayDeclareAndWholeArrayOutput(t *testing.T) {
	out, diag := compile(t, "DECLARE a:ARRAY[1:3] OF INTEGER\na[1]<-10\na[2]<-20\na[3]<-30\nOUTPUT a\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "call ptr @malloc(i64 24)")
	requireContains(t, out, "arr.cond")
	requireContains(t, out, "arr.loop")
	requireContains(t, out, "bounds.fail")
}

// An out-of-range index emits the bounds-check guard with the
// documented fatal message.
func TestArrayOutOfBoundsGuard(t *testing.T) {
	out, diag := compile(t, "DECLARE a:ARRAY[1:3] OF INTEGER\nOUTPUT a[5]\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "bounds.fail")
	requireContains(t, out, `Array index out of bounds`)
	requireContains(t, out, `call void @exit(i64 1)`)
}

// Division by zero is wired into both the IR divisor check and
// the fatal message.
func TestDivisionByZeroGuardWired(t *testing.T) {
	out, diag := compile(t, "DECLARE x:INTEGER\nx<-10/0\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "divzero.fail")
	requireContains(t, out, `Division by zero`)
}

// Integer/real mixed division promotes the integer operand and
// prints with %f.
func TestIntegerRealDivisionPromotes(t *testing.T) {
	out, diag := compile(t, "DECLARE x:INTEGER\nDECLARE y:REAL\nx<-5\ny<-x/2\nOUTPUT y\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "sitofp i64")
	requireContains(t, out, "fdiv double")
	requireContains(t, out, `c"%f\0A\00"`)
}

// A BYREF parameter is a pointer into the caller's slot; the
// callee stores through it directly, with no extra indirection.
func TestByRefParameterMutatesCallerSlot(t *testing.T) {
	out, diag := compile(t, "PROCEDURE p(BYREF n:INTEGER)\nn<-n+1\nENDPROCEDURE\nDECLARE x:INTEGER\nx<-41\nCALL p(x)\nOUTPUT x\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "define void @p(ptr %n)")
	requireContains(t, out, "call void @p(ptr %")
}

// TestForDirectionDynamicStepStaysAscending: a non-literal step (even if
// it could be negative at runtime) keeps the <= comparison, since only a
// compile-time-constant negative literal flips it.
func TestForDirectionDynamicStepStaysAscending(t *testing.T) {
	out, diag := compile(t, "DECLARE s:INTEGER\ns<--1\nFOR i<-3 TO 1 STEP s\nOUTPUT i\nNEXT i\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "icmp sle")
	if strings.Contains(out, "icmp sge") {
		t.Errorf("dynamic STEP should not flip the comparison sense:\n%s", out)
	}
}

// A function body sees only its own parameters and declarations; a name
// bound only at top level does not resolve inside it.
func TestFunctionBodyCannotSeeTopLevelNames(t *testing.T) {
	diag := &errdiag.Diagnostics{}
	program := parser.ParseProgram(lexer.New("DECLARE g:INTEGER\ng<-5\nPROCEDURE p()\nOUTPUT g\nENDPROCEDURE\nCALL p()\n"), diag)
	New(diag).Generate(program)
	if !diag.HasErrors() {
		t.Fatal("expected an undeclared-identifier diagnostic for a top-level name used inside a procedure")
	}
}

// DIV/MOD reject non-integer operands as a compile-time semantic error.
func TestDivModRequireIntegerOperands(t *testing.T) {
	diag := &errdiag.Diagnostics{}
	program := parser.ParseProgram(lexer.New("DECLARE x:REAL\nDECLARE y:INTEGER\nx<-1.5\ny<-x DIV 2\n"), diag)
	New(diag).Generate(program)
	if !diag.HasErrors() {
		t.Fatal("expected a semantic diagnostic for DIV on a REAL operand")
	}
}

// TestPartiallyIndexedArrayOutputSynthesizesInnerLoop: OUTPUT grid[1] on a
// 2D array prints the whole row by synthesizing a nested loop over the
// remaining dimension instead of erroring on a rank mismatch.
func TestPartiallyIndexedArrayOutputSynthesizesInnerLoop(t *testing.T) {
	out, diag := compile(t, "DECLARE grid:ARRAY[1:2,1:2] OF INTEGER\ngrid[1,1]<-1\ngrid[1,2]<-2\nOUTPUT grid[1]\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "arr.cond")
	requireContains(t, out, "arr.loop")
	requireContains(t, out, "bounds.fail")
}

// TestFullyIndexedArrayOutputStillRequiresExactRank guards the other side
// of the same dispatch: an exact-rank OUTPUT grid[1,1] still goes through the
// ordinary element-access path, not the nested-loop synthesis.
func TestFullyIndexedArrayOutputStillRequiresExactRank(t *testing.T) {
	out, diag := compile(t, "DECLARE grid:ARRAY[1:2,1:2] OF INTEGER\ngrid[1,1]<-7\nOUTPUT grid[1,1]\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "bounds.fail")
	if strings.Contains(out, "arr.cond") {
		t.Errorf("fully-indexed OUTPUT should not synthesize a nested loop:\n%s", out)
	}
}

// TestArrayBoundAcceptsConstantExpression: evalConstInt folds general
// compile-time-constant expressions, not just a bare literal, so a
// declaration like ARRAY[1:4+1] still compiles.
func TestArrayBoundAcceptsConstantExpression(t *testing.T) {
	out, diag := compile(t, "DECLARE a:ARRAY[1:4+1] OF INTEGER\nOUTPUT a\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, "call ptr @malloc(i64 40)")
}

// Boolean OUTPUT prints TRUE/FALSE via a two-way branch, not a format code.
func TestBooleanOutputBranchesOnTrueFalse(t *testing.T) {
	out, diag := compile(t, "DECLARE b:BOOLEAN\nb<-TRUE\nOUTPUT b\n")
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.Format())
	}
	requireContains(t, out, `c"TRUE\0A\00"`)
	requireContains(t, out, `c"FALSE\0A\00"`)
	requireContains(t, out, "out.merge")
}
