package ir

import "fmt"

// Instr is one instruction inside a BasicBlock.
type Instr interface {
	String() string
	isInstr()
}

// Op tags a BinOp by its concrete arithmetic/compare opcode. Each carries
// the operand type implicitly (int opcodes operate on I64, F opcodes on
// Double, logical opcodes on I1): codegen picks the opcode only after
// coercion has unified both operands.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	SDiv // DIV (integer)
	SRem // MOD (integer)
	FAdd
	FSub
	FMul
	FDiv // real / (both real division and /-on-reals)
	ICmpEQ
	ICmpNE
	ICmpSLT
	ICmpSGT
	ICmpSLE
	ICmpSGE
	FCmpOEQ
	FCmpONE
	FCmpOLT
	FCmpOGT
	FCmpOLE
	FCmpOGE
	LogicalAnd
	LogicalOr
)

var opNames = map[Op]string{
	Add: "add", Sub: "sub", Mul: "mul", SDiv: "sdiv", SRem: "srem",
	FAdd: "fadd", FSub: "fsub", FMul: "fmul", FDiv: "fdiv",
	ICmpEQ: "icmp eq", ICmpNE: "icmp ne", ICmpSLT: "icmp slt",
	ICmpSGT: "icmp sgt", ICmpSLE: "icmp sle", ICmpSGE: "icmp sge",
	FCmpOEQ: "fcmp oeq", FCmpONE: "fcmp one", FCmpOLT: "fcmp olt",
	FCmpOGT: "fcmp ogt", FCmpOLE: "fcmp ole", FCmpOGE: "fcmp oge",
	LogicalAnd: "and", LogicalOr: "or",
}

func (o Op) String() string { return opNames[o] }

// UnOp is negate (int/real) or boolean not.
type UnOp int

const (
	Neg UnOp = iota
	FNeg
	Not
)

func (o UnOp) String() string {
	switch o {
	case Neg:
		return "neg"
	case FNeg:
		return "fneg"
	case Not:
		return "not"
	default:
		return "?"
	}
}

// Alloca reserves a stack slot. Every local (scalar or array) gets exactly
// one, allocated in the function's entry block so it dominates every use.
type Alloca struct {
	Result  *Temp
	ElemTy  Type
	NumElem Value // nil for a scalar slot; an I64 count for an array slot
}

func (a *Alloca) isInstr() {}
func (a *Alloca) String() string {
	if a.NumElem == nil {
		return fmt.Sprintf("%s = alloca %s", a.Result, a.ElemTy)
	}
	return fmt.Sprintf("%s = alloca %s, %s %s", a.Result, a.ElemTy, a.NumElem.Type(), a.NumElem)
}

// Load reads the value at a pointer.
type Load struct {
	Result *Temp
	Ty     Type
	Addr   Value
}

func (l *Load) isInstr() {}
func (l *Load) String() string {
	return fmt.Sprintf("%s = load %s, ptr %s", l.Result, l.Ty, l.Addr)
}

// Store writes a value to a pointer.
type Store struct {
	Val  Value
	Addr Value
}

func (s *Store) isInstr() {}
func (s *Store) String() string {
	return fmt.Sprintf("store %s %s, ptr %s", s.Val.Type(), s.Val, s.Addr)
}

// BinOp is a two-operand arithmetic/compare/logical instruction.
type BinOp struct {
	Result *Temp
	Opcode Op
	Lhs    Value
	Rhs    Value
}

func (b *BinOp) isInstr() {}
func (b *BinOp) String() string {
	return fmt.Sprintf("%s = %s %s %s, %s", b.Result, b.Opcode, b.Lhs.Type(), b.Lhs, b.Rhs)
}

// UnaryOp is a one-operand instruction (negate or boolean not).
type UnaryOp struct {
	Result  *Temp
	Opcode  UnOp
	Operand Value
}

func (u *UnaryOp) isInstr() {}
func (u *UnaryOp) String() string {
	return fmt.Sprintf("%s = %s %s %s", u.Result, u.Opcode, u.Operand.Type(), u.Operand)
}

// Call invokes a function (extern or defined) by name.
type Call struct {
	Result *Temp // nil when the callee returns Void
	Callee string
	RetTy  Type
	Args   []Value
}

func (c *Call) isInstr() {}
func (c *Call) String() string {
	args := ""
	for i, a := range c.Args {
		if i > 0 {
			args += ", "
		}
		args += fmt.Sprintf("%s %s", a.Type(), a)
	}
	if c.Result == nil {
		return fmt.Sprintf("call %s @%s(%s)", c.RetTy, c.Callee, args)
	}
	return fmt.Sprintf("%s = call %s @%s(%s)", c.Result, c.RetTy, c.Callee, args)
}

// SitoFP converts a signed integer to a real.
type SitoFP struct {
	Result *Temp
	Val    Value
}

func (s *SitoFP) isInstr() {}
func (s *SitoFP) String() string {
	return fmt.Sprintf("%s = sitofp %s %s to double", s.Result, s.Val.Type(), s.Val)
}

// FPtoSI converts a real to a signed integer (truncating toward zero).
type FPtoSI struct {
	Result *Temp
	Val    Value
}

func (f *FPtoSI) isInstr() {}
func (f *FPtoSI) String() string {
	return fmt.Sprintf("%s = fptosi %s %s to i64", f.Result, f.Val.Type(), f.Val)
}

// ZExt widens an i1 to i64 (used when a BOOLEAN value is stored into an
// INTEGER slot).
type ZExt struct {
	Result *Temp
	Val    Value
}

func (z *ZExt) isInstr() {}
func (z *ZExt) String() string {
	return fmt.Sprintf("%s = zext %s %s to i64", z.Result, z.Val.Type(), z.Val)
}

// GetElemPtr computes a pointer offset by a number of ElemTy-sized elements,
// the instruction ArrayHandler uses for every array element address.
type GetElemPtr struct {
	Result *Temp
	ElemTy Type
	Base   Value
	Index  Value
}

func (g *GetElemPtr) isInstr() {}
func (g *GetElemPtr) String() string {
	return fmt.Sprintf("%s = getelementptr %s, ptr %s, i64 %s", g.Result, g.ElemTy, g.Base, g.Index)
}

// ---- Terminators ----

// Br is an unconditional branch.
type Br struct {
	Target *BasicBlock
}

func (b *Br) isInstr()       {}
func (b *Br) String() string { return fmt.Sprintf("br label %%%s", b.Target.Name) }

// CondBr branches to Then or Else depending on Cond.
type CondBr struct {
	Cond Value
	Then *BasicBlock
	Else *BasicBlock
}

func (c *CondBr) isInstr() {}
func (c *CondBr) String() string {
	return fmt.Sprintf("br i1 %s, label %%%s, label %%%s", c.Cond, c.Then.Name, c.Else.Name)
}

// Ret returns from the current function. Val is nil for a Void function.
type Ret struct {
	Val Value
}

func (r *Ret) isInstr() {}
func (r *Ret) String() string {
	if r.Val == nil {
		return "ret void"
	}
	return fmt.Sprintf("ret %s %s", r.Val.Type(), r.Val)
}

// Unreachable marks a block that control can never fall through to, used
// after a RuntimeCheck guard calls exit().
type Unreachable struct{}

func (Unreachable) isInstr()       {}
func (Unreachable) String() string { return "unreachable" }

// IsTerminator reports whether instr ends a basic block.
func IsTerminator(instr Instr) bool {
	switch instr.(type) {
	case *Br, *CondBr, *Ret, Unreachable:
		return true
	default:
		return false
	}
}
