package ir

import "strconv"

// Module is the whole compilation unit: global string constants, extern
// declarations, and defined functions.
type Module struct {
	Globals   []*GlobalString
	Externs   []*ExternFunc
	Functions []*Function

	strCounter int
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{}
}

// DeclareExtern registers an external function if not already declared,
// returning the existing declaration on a repeat call.
func (m *Module) DeclareExtern(name string, paramTys []Type, variadic bool, retTy Type) *ExternFunc {
	for _, e := range m.Externs {
		if e.Name == name {
			return e
		}
	}
	e := &ExternFunc{Name: name, ParamTys: paramTys, Variadic: variadic, RetTy: retTy}
	m.Externs = append(m.Externs, e)
	return e
}

// InternString returns the GlobalString for content, reusing an existing
// one with identical content (LLVM's usual `.str` string pooling).
func (m *Module) InternString(content string) *GlobalString {
	for _, g := range m.Globals {
		if g.Content == content {
			return g
		}
	}
	g := &GlobalString{Name: m.freshGlobalName(), Content: content}
	m.Globals = append(m.Globals, g)
	return g
}

func (m *Module) freshGlobalName() string {
	m.strCounter++
	if m.strCounter == 1 {
		return "str"
	}
	return "str." + strconv.Itoa(m.strCounter)
}

// NewFunction declares and appends an (initially block-less) function.
func (m *Module) NewFunction(name string, params []FuncParam, retTy Type) *Function {
	f := &Function{Name: name, Params: params, RetTy: retTy}
	m.Functions = append(m.Functions, f)
	return f
}
