package ir

import (
	"fmt"
	"strings"
)

// Print renders m as LLVM-flavored textual IR, the form the CLI dumps to
// stderr and the golden tests compare against.
func Print(m *Module) string {
	var sb strings.Builder
	for _, g := range m.Globals {
		fmt.Fprintf(&sb, "@%s = constant [%d x i8] c%s\n", g.Name, len(g.Content)+1, quoteC(g.Content))
	}
	if len(m.Globals) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range m.Externs {
		params := make([]string, len(e.ParamTys))
		for i, t := range e.ParamTys {
			params[i] = t.String()
		}
		if e.Variadic {
			params = append(params, "...")
		}
		fmt.Fprintf(&sb, "declare %s @%s(%s)\n", e.RetTy, e.Name, strings.Join(params, ", "))
	}
	if len(m.Externs) > 0 {
		sb.WriteString("\n")
	}
	for i, f := range m.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		printFunction(&sb, f)
	}
	return sb.String()
}

func printFunction(sb *strings.Builder, f *Function) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %%%s", p.Typ, p.Name)
	}
	fmt.Fprintf(sb, "define %s @%s(%s) {\n", f.RetTy, f.Name, strings.Join(params, ", "))
	for _, blk := range f.Blocks {
		fmt.Fprintf(sb, "%s:\n", blk.Name)
		for _, instr := range blk.Instrs {
			fmt.Fprintf(sb, "  %s\n", instr.String())
		}
	}
	sb.WriteString("}\n")
}

// quoteC renders s as an LLVM-style C-string literal, including the
// trailing NUL every format/format-printed string needs.
func quoteC(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\0A`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\%02X`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteString(`\00`)
	sb.WriteByte('"')
	return sb.String()
}
