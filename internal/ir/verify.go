package ir

import "fmt"

// Verify walks every function in m and confirms (a) every basic block ends
// with exactly one terminator and (b) every block is reachable from the
// function's entry block through terminator edges, the same well-formedness
// contract LLVM's verifyFunction enforces.
func Verify(m *Module) []error {
	var errs []error
	for _, f := range m.Functions {
		errs = append(errs, verifyFunction(f)...)
	}
	return errs
}

func verifyFunction(f *Function) []error {
	var errs []error
	if len(f.Blocks) == 0 {
		return []error{fmt.Errorf("function %s: has no basic blocks", f.Name)}
	}
	for _, blk := range f.Blocks {
		if len(blk.Instrs) == 0 {
			errs = append(errs, fmt.Errorf("function %s: block %s: has no instructions", f.Name, blk.Name))
			continue
		}
		for i, instr := range blk.Instrs {
			isLast := i == len(blk.Instrs)-1
			if IsTerminator(instr) && !isLast {
				errs = append(errs, fmt.Errorf("function %s: block %s: terminator %q is not the last instruction", f.Name, blk.Name, instr))
			}
			if !IsTerminator(instr) && isLast {
				errs = append(errs, fmt.Errorf("function %s: block %s: does not end with a terminator", f.Name, blk.Name))
			}
		}
	}

	reachable := map[string]bool{f.Entry().Name: true}
	worklist := []*BasicBlock{f.Entry()}
	for len(worklist) > 0 {
		blk := worklist[0]
		worklist = worklist[1:]
		for _, succ := range blk.Successors() {
			if !reachable[succ.Name] {
				reachable[succ.Name] = true
				worklist = append(worklist, succ)
			}
		}
	}
	for _, blk := range f.Blocks {
		if !reachable[blk.Name] {
			errs = append(errs, fmt.Errorf("function %s: block %s: unreachable from entry", f.Name, blk.Name))
		}
	}
	return errs
}
