package ast

// Expr is a sealed interface over resolved expressions.
// Only Lit, Var and Call implement it.
type Expr interface {
	expr()
}

// Lit is a constant.
type Lit struct {
	Value Literal
}

// Binding records what a variable reference resolved to.
type Binding uint8

const (
	// BindingGlobal is a reference to a top-level let.
	BindingGlobal Binding = iota
	// BindingLocal is a pattern variable or a let inside a rule or merge.
	BindingLocal
)

func (b Binding) String() string {
	if b == BindingLocal {
		return "local"
	}
	return "global"
}

// Var is a reference to a named value.
type Var struct {
	Name    string
	Sort    Sort
	Binding Binding
}

// IsGlobal reports whether the reference denotes a top-level binding.
func (v Var) IsGlobal() bool {
	return v.Binding == BindingGlobal
}

// Call applies a resolved callee to arguments.
type Call struct {
	Head Callee
	Args []Expr
}

func (Lit) expr()  {}
func (Var) expr()  {}
func (Call) expr() {}

// Callee is a sealed interface over call targets.
// Only FuncType and Primitive implement it.
type Callee interface {
	callee()
	// CalleeName is the symbol written at the head of the call.
	CalleeName() string
	// OutputSort is the sort of the call's value.
	OutputSort() Sort
}

// FuncType is the resolved signature of a table function or constructor.
type FuncType struct {
	Name       string
	Input      []Sort
	Output     Sort
	IsDatatype bool
	HasDefault bool
}

// Primitive is the resolved signature of a builtin primitive operation.
type Primitive struct {
	Name   string
	Input  []Sort
	Output Sort
}

func (FuncType) callee()  {}
func (Primitive) callee() {}

func (f FuncType) CalleeName() string  { return f.Name }
func (f FuncType) OutputSort() Sort    { return f.Output }
func (p Primitive) CalleeName() string { return p.Name }
func (p Primitive) OutputSort() Sort   { return p.Output }

// NullaryFunc is the signature of a zero-argument table function
// returning sort.
func NullaryFunc(name string, sort Sort) FuncType {
	return FuncType{
		Name:       name,
		Input:      []Sort{},
		Output:     sort,
		IsDatatype: false,
		HasDefault: false,
	}
}

// NewLit wraps a literal value.
func NewLit(v Literal) Lit {
	return Lit{Value: v}
}

// GlobalRef builds a reference to a top-level binding.
func GlobalRef(name string, sort Sort) Var {
	return Var{Name: name, Sort: sort, Binding: BindingGlobal}
}

// LocalRef builds a reference to a rule-local binding.
func LocalRef(name string, sort Sort) Var {
	return Var{Name: name, Sort: sort, Binding: BindingLocal}
}

// NewCall builds a call node.
func NewCall(head Callee, args ...Expr) Call {
	return Call{Head: head, Args: args}
}
