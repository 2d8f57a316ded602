package ast

// ArrayDim is one dimension's lower and upper bound expressions, as they
// appeared in a DECLARE ... ARRAY[...] statement.
type ArrayDim struct {
	Lower Expression
	Upper Expression
}
