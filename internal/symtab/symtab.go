// Package symtab is the compiler's scoped symbol table: a `Slot` sum type
// (scalar / array / byref-parameter) over an explicit scope stack. Entering
// a function body saves the whole stack and installs a fresh one, so a body
// sees only its own parameters and declarations; leaving restores the saved
// stack. There is no hidden package-level state.
package symtab

import (
	"fmt"

	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/ir"
)

// ArrayMeta records everything ArrayHandler needs to compute a bounds-
// checked flat index into a (possibly multi-dimensional) array: each
// dimension's lower/upper bound and the element type.
type ArrayMeta struct {
	ElemType ast.TypeTag
	ElemIRTy ir.Type
	Lower    []int64
	Upper    []int64
	// Multiplier is the row-major stride per dimension: Multiplier[rank-1]
	// = 1, Multiplier[i] = Multiplier[i+1] * Len(i+1).
	Multiplier []int64
}

// Rank is the array's dimensionality.
func (m ArrayMeta) Rank() int { return len(m.Lower) }

// Len returns dimension i's element count.
func (m ArrayMeta) Len(i int) int64 {
	return m.Upper[i] - m.Lower[i] + 1
}

// Total returns the array's total element count across all dimensions.
func (m ArrayMeta) Total() int64 {
	total := int64(1)
	for i := range m.Lower {
		total *= m.Len(i)
	}
	return total
}

// Slot is the sum type every symbol table entry is one of. Exactly one of
// the three constructors below should be used to build a Slot; the Kind
// field says which arm is populated.
type Slot struct {
	Kind SlotKind

	// Scalar / Ref
	Addr *ir.Temp
	Type ast.TypeTag
	IRTy ir.Type

	// Array
	ArrayAddr *ir.Temp
	Meta      ArrayMeta
}

// SlotKind discriminates a Slot's active arm.
type SlotKind int

const (
	Scalar SlotKind = iota
	Array
	Ref
)

// NewScalar builds a Scalar slot: an alloca'd stack address holding one
// value of typ.
func NewScalar(addr *ir.Temp, typ ast.TypeTag, irTy ir.Type) Slot {
	return Slot{Kind: Scalar, Addr: addr, Type: typ, IRTy: irTy}
}

// NewArray builds an Array slot: an alloca'd base address plus the bounds
// metadata ArrayHandler needs for indexing and whole-array OUTPUT.
func NewArray(addr *ir.Temp, meta ArrayMeta) Slot {
	return Slot{Kind: Array, ArrayAddr: addr, Meta: meta}
}

// NewRef builds a Ref slot: a BYREF parameter. Addr already *is* the
// callee-visible pointer into the caller's slot, so codegen never adds an
// extra indirection when reading or writing through it.
func NewRef(addr *ir.Temp, typ ast.TypeTag, irTy ir.Type) Slot {
	return Slot{Kind: Ref, Addr: addr, Type: typ, IRTy: irTy}
}

// Table is an explicit stack of lexical scopes, innermost last. The
// CodeGen driver swaps in a fresh stack on entering a function body and
// restores the saved one on exit; there is no hidden global state.
type Table struct {
	scopes []map[string]Slot
}

// New returns a Table with a single (global) scope already pushed.
func New() *Table {
	return &Table{scopes: []map[string]Slot{{}}}
}

// EnterFunctionScope saves the current scope stack and installs a fresh
// one containing a single empty scope. Names bound outside the function
// body do not resolve inside it; the caller must hold on to the returned
// stack and pass it to LeaveFunctionScope on exit.
func (t *Table) EnterFunctionScope() []map[string]Slot {
	saved := t.scopes
	t.scopes = []map[string]Slot{{}}
	return saved
}

// LeaveFunctionScope restores the stack saved by EnterFunctionScope.
func (t *Table) LeaveFunctionScope(saved []map[string]Slot) {
	t.scopes = saved
}

// Declare binds name to slot in the innermost scope. Redeclaring a name
// already bound in that same scope is an error.
func (t *Table) Declare(name string, slot Slot) error {
	innermost := t.scopes[len(t.scopes)-1]
	if _, exists := innermost[name]; exists {
		return fmt.Errorf("%q is already declared in this scope", name)
	}
	innermost[name] = slot
	return nil
}

// Lookup searches from the innermost scope outward and returns the first
// match.
func (t *Table) Lookup(name string) (Slot, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if slot, ok := t.scopes[i][name]; ok {
			return slot, true
		}
	}
	return Slot{}, false
}
