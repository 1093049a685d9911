package ast

// Command is a sealed interface over top-level program units.
type Command interface {
	command()
}

// Schema is the sort signature of a declared function.
// Sorts are recorded by name.
type Schema struct {
	Input  []string
	Output string
}

// FunctionDecl declares a table function.
// Default and Merge are nil when absent.
type FunctionDecl struct {
	Name          string
	Schema        Schema
	Default       Expr
	Merge         Expr
	MergeAction   []Action
	Cost          *int
	Unextractable bool
}

// CoreAction is an action executed at top level.
type CoreAction struct {
	Action Action
}

// Function declares a function.
type Function struct {
	Decl FunctionDecl
}

// SortDecl declares a sort, optionally built from a parameterised presort
// such as (Map i64 String).
type SortDecl struct {
	Name        string
	Presort     string
	PresortArgs []Expr
}

// AddRuleset declares an empty ruleset.
type AddRuleset struct {
	Name string
}

// Rule declares a rewrite rule: when Body matches, run Head.
type Rule struct {
	Name    string
	Ruleset string
	Body    []Fact
	Head    []Action
}

// RunSchedule runs a schedule of rulesets.
type RunSchedule struct {
	Schedule Schedule
}

// Check asserts that all Facts hold.
type Check struct {
	Facts []Fact
}

// PrintTable prints up to N entries of function Name.
type PrintTable struct {
	Name string
	N    int
}

// PrintSize prints the size of function Name.
type PrintSize struct {
	Name string
}

// Output writes extracted Exprs to File.
type Output struct {
	File  string
	Exprs []Expr
}

// Push saves N copies of the database state.
type Push struct {
	N int
}

// Pop restores N saved states.
type Pop struct {
	N int
}

// Fail asserts that Command fails.
type Fail struct {
	Command Command
}

// Input reads rows of function Name from File.
type Input struct {
	Name string
	File string
}

// SetOption sets interpreter option Name.
type SetOption struct {
	Name  string
	Value Expr
}

// PrintOverallStatistics prints run statistics.
type PrintOverallStatistics struct{}

func (CoreAction) command()             {}
func (Function) command()               {}
func (SortDecl) command()               {}
func (AddRuleset) command()             {}
func (Rule) command()                   {}
func (RunSchedule) command()            {}
func (Check) command()                  {}
func (PrintTable) command()             {}
func (PrintSize) command()              {}
func (Output) command()                 {}
func (Push) command()                   {}
func (Pop) command()                    {}
func (Fail) command()                   {}
func (Input) command()                  {}
func (SetOption) command()              {}
func (PrintOverallStatistics) command() {}
