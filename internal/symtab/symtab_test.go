package symtab

import (
	"testing"

	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/ir"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := New()
	addr := &ir.Temp{Name: "1", Typ: ir.Ptr}

	if err := tbl.Declare("x", NewScalar(addr, ast.INTEGER, ir.I64)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slot, ok := tbl.Lookup("x")
	if !ok {
		t.Fatal("expected to find 'x'")
	}
	if slot.Kind != Scalar || slot.Type != ast.INTEGER {
		t.Errorf("got Kind=%v Type=%v", slot.Kind, slot.Type)
	}
}

func TestLookupUndeclaredFails(t *testing.T) {
	tbl := New()
	if _, ok := tbl.Lookup("missing"); ok {
		t.Error("expected lookup of an undeclared name to fail")
	}
}

func TestRedeclarationInSameScopeIsAnError(t *testing.T) {
	tbl := New()
	addr := &ir.Temp{Name: "1", Typ: ir.Ptr}
	if err := tbl.Declare("x", NewScalar(addr, ast.INTEGER, ir.I64)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tbl.Declare("x", NewScalar(addr, ast.REAL, ir.Double)); err == nil {
		t.Error("expected redeclaring 'x' in the same scope to be an error")
	}
}

// TestFunctionScopeIsolatesOuterNames verifies that a function scope hides
// every outer binding entirely (not just same-name shadowing) and that
// leaving it restores the saved stack.
func TestFunctionScopeIsolatesOuterNames(t *testing.T) {
	tbl := New()
	outerAddr := &ir.Temp{Name: "1", Typ: ir.Ptr}
	if err := tbl.Declare("x", NewScalar(outerAddr, ast.INTEGER, ir.I64)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved := tbl.EnterFunctionScope()
	if _, ok := tbl.Lookup("x"); ok {
		t.Error("expected outer 'x' to be invisible inside a function scope")
	}
	innerAddr := &ir.Temp{Name: "2", Typ: ir.Ptr}
	if err := tbl.Declare("x", NewScalar(innerAddr, ast.REAL, ir.Double)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slot, _ := tbl.Lookup("x")
	if slot.Type != ast.REAL {
		t.Errorf("expected the function's own 'x', got Type=%v", slot.Type)
	}
	tbl.LeaveFunctionScope(saved)

	slot, _ = tbl.Lookup("x")
	if slot.Type != ast.INTEGER {
		t.Errorf("expected outer 'x' to be visible again after leaving, got Type=%v", slot.Type)
	}
}

func TestArrayMetaDimensions(t *testing.T) {
	meta := ArrayMeta{
		ElemType: ast.INTEGER,
		ElemIRTy: ir.I64,
		Lower:    []int64{1, 0},
		Upper:    []int64{10, 2},
	}
	if meta.Len(0) != 10 {
		t.Errorf("Len(0) = %d, want 10", meta.Len(0))
	}
	if meta.Len(1) != 3 {
		t.Errorf("Len(1) = %d, want 3", meta.Len(1))
	}
	if meta.Total() != 30 {
		t.Errorf("Total() = %d, want 30", meta.Total())
	}
}

func TestRefSlotAddrIsCalleeVisiblePointer(t *testing.T) {
	addr := &ir.Temp{Name: "1", Typ: ir.Ptr}
	slot := NewRef(addr, ast.INTEGER, ir.I64)
	if slot.Kind != Ref || slot.Addr != addr {
		t.Errorf("got Kind=%v Addr=%v", slot.Kind, slot.Addr)
	}
}
