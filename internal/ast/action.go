package ast

// Action is a sealed interface over executable statements.
type Action interface {
	action()
	// Pos returns the action's source annotation.
	Pos() Span
}

// Let binds Name to the value of Expr.
// At top level this is a global; inside a rule head it is local.
type Let struct {
	Span Span
	Name string
	Expr Expr
}

// Set stores Value into Func applied to Args.
type Set struct {
	Span  Span
	Func  FuncType
	Args  []Expr
	Value Expr
}

// ChangeKind selects what a Change does to a table entry.
type ChangeKind uint8

const (
	ChangeDelete ChangeKind = iota
	ChangeSubsume
)

func (k ChangeKind) String() string {
	if k == ChangeSubsume {
		return "subsume"
	}
	return "delete"
}

// Change deletes or subsumes the entry of Func at Args.
type Change struct {
	Span Span
	Kind ChangeKind
	Func FuncType
	Args []Expr
}

// Union merges the equivalence classes of Left and Right.
type Union struct {
	Span  Span
	Left  Expr
	Right Expr
}

// Extract selects representative terms for Expr.
type Extract struct {
	Span     Span
	Expr     Expr
	Variants Expr
}

// Panic aborts execution with Message.
type Panic struct {
	Span    Span
	Message string
}

// ExprAction evaluates Expr for its effect.
type ExprAction struct {
	Span Span
	Expr Expr
}

func (Let) action()        {}
func (Set) action()        {}
func (Change) action()     {}
func (Union) action()      {}
func (Extract) action()    {}
func (Panic) action()      {}
func (ExprAction) action() {}

func (a Let) Pos() Span        { return a.Span }
func (a Set) Pos() Span        { return a.Span }
func (a Change) Pos() Span     { return a.Span }
func (a Union) Pos() Span      { return a.Span }
func (a Extract) Pos() Span    { return a.Span }
func (a Panic) Pos() Span      { return a.Span }
func (a ExprAction) Pos() Span { return a.Span }

// Fact is a sealed interface over rule and check premises.
type Fact interface {
	fact()
}

// Eq asserts that all Exprs are equal.
type Eq struct {
	Exprs []Expr
}

// FactExpr asserts that Expr matches.
type FactExpr struct {
	Expr Expr
}

func (Eq) fact()       {}
func (FactExpr) fact() {}

// Schedule is a sealed interface over rule scheduling forms.
type Schedule interface {
	schedule()
}

// RunRuleset runs Ruleset once, or until every Until fact holds.
type RunRuleset struct {
	Ruleset string
	Until   []Fact
}

// Repeat runs Schedule Times times.
type Repeat struct {
	Times    int
	Schedule Schedule
}

// Saturate runs Schedule until nothing changes.
type Saturate struct {
	Schedule Schedule
}

// Sequence runs Schedules in order.
type Sequence struct {
	Schedules []Schedule
}

func (RunRuleset) schedule() {}
func (Repeat) schedule()     {}
func (Saturate) schedule()   {}
func (Sequence) schedule()   {}
