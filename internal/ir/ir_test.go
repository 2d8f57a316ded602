package ir

import (
	"strings"
	"testing"
)

// buildAddOne builds:
//
//	define i64 @addOne(i64 %n) {
//	entry:
//	  %1 = alloca i64
//	  store i64 %n, ptr %1
//	  %2 = load i64, ptr %1
//	  %3 = add i64 %2, 1
//	  ret i64 %3
//	}
func buildAddOne() *Module {
	b := NewBuilder()
	fn := b.Module.NewFunction("addOne", []FuncParam{{Name: "n", Typ: I64}}, I64)
	b.SetFunction(fn)
	entry := b.CreateBlock("entry")
	b.SetInsertPoint(entry)

	slot := b.CreateAlloca(I64)
	b.CreateStore(&Temp{Name: "n", Typ: I64}, slot)
	v := b.CreateLoad(I64, slot)
	r := b.CreateBinOp(Add, v, ConstInt{Val: 1}, I64)
	b.CreateRet(r)

	return b.Module
}

func TestBuilderProducesWellFormedFunction(t *testing.T) {
	m := buildAddOne()
	if errs := Verify(m); len(errs) != 0 {
		t.Fatalf("unexpected verify errors: %v", errs)
	}
}

func TestVerifyCatchesMissingTerminator(t *testing.T) {
	b := NewBuilder()
	fn := b.Module.NewFunction("bad", nil, Void)
	b.SetFunction(fn)
	entry := b.CreateBlock("entry")
	b.SetInsertPoint(entry)
	b.CreateAlloca(I64) // no terminator emitted

	errs := Verify(b.Module)
	if len(errs) == 0 {
		t.Fatalf("expected a verify error for a block with no terminator")
	}
}

func TestVerifyCatchesUnreachableBlock(t *testing.T) {
	b := NewBuilder()
	fn := b.Module.NewFunction("bad", nil, Void)
	b.SetFunction(fn)
	entry := b.CreateBlock("entry")
	dead := b.CreateBlock("dead")
	b.SetInsertPoint(entry)
	b.CreateRet(nil)
	b.SetInsertPoint(dead)
	b.CreateRet(nil)

	errs := Verify(b.Module)
	if len(errs) == 0 {
		t.Fatalf("expected a verify error for an unreachable block")
	}
}

// CreateEntryAlloca lands in the entry block even when the insertion point
// has moved on, and slots in ahead of an already-emitted terminator.
func TestCreateEntryAllocaInsertsBeforeEntryTerminator(t *testing.T) {
	b := NewBuilder()
	fn := b.Module.NewFunction("f", nil, Void)
	b.SetFunction(fn)
	entry := b.CreateBlock("entry")
	next := b.CreateBlock("next")
	b.SetInsertPoint(entry)
	b.CreateBr(next)
	b.SetInsertPoint(next)
	slot := b.CreateEntryAlloca(I64)
	b.CreateStore(ConstInt{Val: 0}, slot)
	b.CreateRet(nil)

	if errs := Verify(b.Module); len(errs) != 0 {
		t.Fatalf("unexpected verify errors: %v", errs)
	}
	if len(entry.Instrs) != 2 {
		t.Fatalf("entry has %d instructions, want 2", len(entry.Instrs))
	}
	if _, ok := entry.Instrs[0].(*Alloca); !ok {
		t.Errorf("entry.Instrs[0] is %T, want *Alloca", entry.Instrs[0])
	}
	if !IsTerminator(entry.Instrs[1]) {
		t.Errorf("entry.Instrs[1] is %T, want the terminator", entry.Instrs[1])
	}
}

func TestPrintRendersFunctionSignatureAndBody(t *testing.T) {
	m := buildAddOne()
	out := Print(m)
	for _, want := range []string{
		"define i64 @addOne(i64 %n) {",
		"entry:",
		"alloca i64",
		"store i64 %n, ptr %",
		"ret i64 %",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printed IR missing %q, got:\n%s", want, out)
		}
	}
}

func TestInternStringDedupes(t *testing.T) {
	m := NewModule()
	a := m.InternString("%d\n")
	b := m.InternString("%d\n")
	c := m.InternString("%f\n")
	if a != b {
		t.Errorf("expected identical content to reuse the same global")
	}
	if a == c {
		t.Errorf("expected distinct content to get distinct globals")
	}
	if len(m.Globals) != 2 {
		t.Errorf("got %d globals, want 2", len(m.Globals))
	}
}

func TestPrintEscapesStringContent(t *testing.T) {
	m := NewModule()
	m.InternString("%d\n")
	out := Print(m)
	if !strings.Contains(out, `c"%d\0A\00"`) {
		t.Errorf("expected escaped newline and trailing NUL, got:\n%s", out)
	}
}
