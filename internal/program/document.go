package program

// Document is the serialised form of a resolved program.
type Document struct {
	Commands []CommandDoc `yaml:"commands" json:"commands"`
}

// CommandDoc is a top-level command. Exactly one member is set.
type CommandDoc struct {
	Action        *ActionDoc     `yaml:"action,omitempty" json:"action,omitempty"`
	Function      *FunctionDoc   `yaml:"function,omitempty" json:"function,omitempty"`
	Sort          *SortDoc       `yaml:"sort,omitempty" json:"sort,omitempty"`
	Ruleset       *string        `yaml:"ruleset,omitempty" json:"ruleset,omitempty"`
	Rule          *RuleDoc       `yaml:"rule,omitempty" json:"rule,omitempty"`
	RunSchedule   *ScheduleDoc   `yaml:"run_schedule,omitempty" json:"run_schedule,omitempty"`
	Check         *CheckDoc      `yaml:"check,omitempty" json:"check,omitempty"`
	PrintFunction *PrintTableDoc `yaml:"print_function,omitempty" json:"print_function,omitempty"`
	PrintSize     *string        `yaml:"print_size,omitempty" json:"print_size,omitempty"`
	Output        *OutputDoc     `yaml:"output,omitempty" json:"output,omitempty"`
	Push          *int           `yaml:"push,omitempty" json:"push,omitempty"`
	Pop           *int           `yaml:"pop,omitempty" json:"pop,omitempty"`
	Fail          *CommandDoc    `yaml:"fail,omitempty" json:"fail,omitempty"`
	Input         *InputDoc      `yaml:"input,omitempty" json:"input,omitempty"`
	SetOption     *SetOptionDoc  `yaml:"set_option,omitempty" json:"set_option,omitempty"`
	PrintStats    bool           `yaml:"print_stats,omitempty" json:"print_stats,omitempty"`
}

// FunctionDoc declares a function.
type FunctionDoc struct {
	Name          string      `yaml:"name" json:"name"`
	Input         []string    `yaml:"input,omitempty" json:"input,omitempty"`
	Output        string      `yaml:"output" json:"output"`
	Default       *ExprDoc    `yaml:"default,omitempty" json:"default,omitempty"`
	Merge         *ExprDoc    `yaml:"merge,omitempty" json:"merge,omitempty"`
	OnMerge       []ActionDoc `yaml:"on_merge,omitempty" json:"on_merge,omitempty"`
	Cost          *int        `yaml:"cost,omitempty" json:"cost,omitempty"`
	Unextractable bool        `yaml:"unextractable,omitempty" json:"unextractable,omitempty"`
}

// SortDoc declares a sort.
type SortDoc struct {
	Name        string    `yaml:"name" json:"name"`
	Presort     string    `yaml:"presort,omitempty" json:"presort,omitempty"`
	PresortArgs []ExprDoc `yaml:"presort_args,omitempty" json:"presort_args,omitempty"`
}

// RuleDoc declares a rule.
type RuleDoc struct {
	Name    string      `yaml:"name,omitempty" json:"name,omitempty"`
	Ruleset string      `yaml:"ruleset,omitempty" json:"ruleset,omitempty"`
	Body    []FactDoc   `yaml:"body,omitempty" json:"body,omitempty"`
	Head    []ActionDoc `yaml:"head,omitempty" json:"head,omitempty"`
}

// CheckDoc asserts facts.
type CheckDoc struct {
	Facts []FactDoc `yaml:"facts" json:"facts"`
}

// PrintTableDoc prints function rows.
type PrintTableDoc struct {
	Name string `yaml:"name" json:"name"`
	N    int    `yaml:"n" json:"n"`
}

// OutputDoc writes extracted terms to a file.
type OutputDoc struct {
	File  string    `yaml:"file" json:"file"`
	Exprs []ExprDoc `yaml:"exprs,omitempty" json:"exprs,omitempty"`
}

// InputDoc reads function rows from a file.
type InputDoc struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// SetOptionDoc sets an interpreter option.
type SetOptionDoc struct {
	Name  string  `yaml:"name" json:"name"`
	Value ExprDoc `yaml:"value" json:"value"`
}

// ScheduleDoc is a schedule. Exactly one member is set.
type ScheduleDoc struct {
	Run      *RunDoc      `yaml:"run,omitempty" json:"run,omitempty"`
	Repeat   *RepeatDoc   `yaml:"repeat,omitempty" json:"repeat,omitempty"`
	Saturate *ScheduleDoc `yaml:"saturate,omitempty" json:"saturate,omitempty"`
	Seq      *SeqDoc      `yaml:"seq,omitempty" json:"seq,omitempty"`
}

// RunDoc runs a ruleset.
type RunDoc struct {
	Ruleset string    `yaml:"ruleset,omitempty" json:"ruleset,omitempty"`
	Until   []FactDoc `yaml:"until,omitempty" json:"until,omitempty"`
}

// RepeatDoc repeats a schedule.
type RepeatDoc struct {
	Times    int         `yaml:"times" json:"times"`
	Schedule ScheduleDoc `yaml:"schedule" json:"schedule"`
}

// SeqDoc runs schedules in order.
type SeqDoc struct {
	Schedules []ScheduleDoc `yaml:"schedules" json:"schedules"`
}

// ActionDoc is an action. Exactly one member other than Span is set.
type ActionDoc struct {
	Span    *SpanDoc    `yaml:"span,omitempty" json:"span,omitempty"`
	Let     *LetDoc     `yaml:"let,omitempty" json:"let,omitempty"`
	Set     *SetDoc     `yaml:"set,omitempty" json:"set,omitempty"`
	Delete  *ChangeDoc  `yaml:"delete,omitempty" json:"delete,omitempty"`
	Subsume *ChangeDoc  `yaml:"subsume,omitempty" json:"subsume,omitempty"`
	Union   *UnionDoc   `yaml:"union,omitempty" json:"union,omitempty"`
	Extract *ExtractDoc `yaml:"extract,omitempty" json:"extract,omitempty"`
	Panic   *string     `yaml:"panic,omitempty" json:"panic,omitempty"`
	Expr    *ExprDoc    `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// SpanDoc is a source position.
type SpanDoc struct {
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	Line int    `yaml:"line" json:"line"`
	Col  int    `yaml:"col,omitempty" json:"col,omitempty"`
}

// LetDoc binds a name.
type LetDoc struct {
	Name string  `yaml:"name" json:"name"`
	Expr ExprDoc `yaml:"expr" json:"expr"`
}

// SetDoc stores a value into a function entry.
type SetDoc struct {
	Func  FuncDoc   `yaml:"func" json:"func"`
	Args  []ExprDoc `yaml:"args,omitempty" json:"args,omitempty"`
	Value ExprDoc   `yaml:"value" json:"value"`
}

// ChangeDoc deletes or subsumes a function entry.
type ChangeDoc struct {
	Func FuncDoc   `yaml:"func" json:"func"`
	Args []ExprDoc `yaml:"args,omitempty" json:"args,omitempty"`
}

// UnionDoc merges two terms.
type UnionDoc struct {
	Left  ExprDoc `yaml:"left" json:"left"`
	Right ExprDoc `yaml:"right" json:"right"`
}

// ExtractDoc extracts a term.
type ExtractDoc struct {
	Expr     ExprDoc `yaml:"expr" json:"expr"`
	Variants ExprDoc `yaml:"variants" json:"variants"`
}

// FactDoc is a fact. Exactly one member is set.
type FactDoc struct {
	Eq   []ExprDoc `yaml:"eq,omitempty" json:"eq,omitempty"`
	Expr *ExprDoc  `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// ExprDoc is an expression. Exactly one member is set.
type ExprDoc struct {
	Lit  *LitDoc  `yaml:"lit,omitempty" json:"lit,omitempty"`
	Var  *VarDoc  `yaml:"var,omitempty" json:"var,omitempty"`
	Call *CallDoc `yaml:"call,omitempty" json:"call,omitempty"`
}

// LitDoc is a literal. Exactly one member is set.
type LitDoc struct {
	I64    *int64   `yaml:"i64,omitempty" json:"i64,omitempty"`
	F64    *float64 `yaml:"f64,omitempty" json:"f64,omitempty"`
	String *string  `yaml:"string,omitempty" json:"string,omitempty"`
	Bool   *bool    `yaml:"bool,omitempty" json:"bool,omitempty"`
	Unit   bool     `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// VarDoc is a variable reference.
type VarDoc struct {
	Name  string `yaml:"name" json:"name"`
	Sort  string `yaml:"sort" json:"sort"`
	// Local marks a rule-bound variable. A var without it is a global
	// reference and is lowered to a zero-argument call.
	Local bool `yaml:"local,omitempty" json:"local,omitempty"`
}

// CallDoc is a call. Exactly one of Func and Primitive is set.
type CallDoc struct {
	Func      *FuncDoc      `yaml:"func,omitempty" json:"func,omitempty"`
	Primitive *PrimitiveDoc `yaml:"primitive,omitempty" json:"primitive,omitempty"`
	Args      []ExprDoc     `yaml:"args,omitempty" json:"args,omitempty"`
}

// FuncDoc is a resolved function signature.
type FuncDoc struct {
	Name       string   `yaml:"name" json:"name"`
	Input      []string `yaml:"input,omitempty" json:"input,omitempty"`
	Output     string   `yaml:"output" json:"output"`
	Datatype   bool     `yaml:"datatype,omitempty" json:"datatype,omitempty"`
	HasDefault bool     `yaml:"has_default,omitempty" json:"has_default,omitempty"`
}

// PrimitiveDoc is a resolved primitive signature.
type PrimitiveDoc struct {
	Name   string   `yaml:"name" json:"name"`
	Input  []string `yaml:"input,omitempty" json:"input,omitempty"`
	Output string   `yaml:"output" json:"output"`
}
