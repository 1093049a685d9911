package program

import (
	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/invariant"
)

// Encode converts program commands into a document.
func Encode(cmds []ast.Command) Document {
	doc := Document{Commands: make([]CommandDoc, 0, len(cmds))}
	for _, c := range cmds {
		doc.Commands = append(doc.Commands, encodeCommand(c))
	}
	return doc
}

func encodeCommand(c ast.Command) CommandDoc {
	switch c := c.(type) {
	case ast.CoreAction:
		a := encodeAction(c.Action)
		return CommandDoc{Action: &a}
	case ast.Function:
		f := encodeFunction(c.Decl)
		return CommandDoc{Function: &f}
	case ast.SortDecl:
		return CommandDoc{Sort: &SortDoc{
			Name:        c.Name,
			Presort:     c.Presort,
			PresortArgs: encodeExprs(c.PresortArgs),
		}}
	case ast.AddRuleset:
		name := c.Name
		return CommandDoc{Ruleset: &name}
	case ast.Rule:
		return CommandDoc{Rule: &RuleDoc{
			Name:    c.Name,
			Ruleset: c.Ruleset,
			Body:    encodeFacts(c.Body),
			Head:    encodeActions(c.Head),
		}}
	case ast.RunSchedule:
		s := encodeSchedule(c.Schedule)
		return CommandDoc{RunSchedule: &s}
	case ast.Check:
		return CommandDoc{Check: &CheckDoc{Facts: encodeFacts(c.Facts)}}
	case ast.PrintTable:
		return CommandDoc{PrintFunction: &PrintTableDoc{Name: c.Name, N: c.N}}
	case ast.PrintSize:
		name := c.Name
		return CommandDoc{PrintSize: &name}
	case ast.Output:
		return CommandDoc{Output: &OutputDoc{File: c.File, Exprs: encodeExprs(c.Exprs)}}
	case ast.Push:
		n := c.N
		return CommandDoc{Push: &n}
	case ast.Pop:
		n := c.N
		return CommandDoc{Pop: &n}
	case ast.Fail:
		inner := encodeCommand(c.Command)
		return CommandDoc{Fail: &inner}
	case ast.Input:
		return CommandDoc{Input: &InputDoc{Name: c.Name, File: c.File}}
	case ast.SetOption:
		return CommandDoc{SetOption: &SetOptionDoc{Name: c.Name, Value: encodeExpr(c.Value)}}
	case ast.PrintOverallStatistics:
		return CommandDoc{PrintStats: true}
	default:
		invariant.Unreachable("command", c)
		return CommandDoc{}
	}
}

func encodeFunction(d ast.FunctionDecl) FunctionDoc {
	return FunctionDoc{
		Name:          d.Name,
		Input:         d.Schema.Input,
		Output:        d.Schema.Output,
		Default:       encodeOptional(d.Default),
		Merge:         encodeOptional(d.Merge),
		OnMerge:       encodeActions(d.MergeAction),
		Cost:          d.Cost,
		Unextractable: d.Unextractable,
	}
}

func encodeSpan(s ast.Span) *SpanDoc {
	if !s.IsValid() {
		return nil
	}
	return &SpanDoc{File: s.File, Line: s.Line, Col: s.Col}
}

func encodeActions(as []ast.Action) []ActionDoc {
	if len(as) == 0 {
		return nil
	}
	out := make([]ActionDoc, len(as))
	for i, a := range as {
		out[i] = encodeAction(a)
	}
	return out
}

func encodeAction(a ast.Action) ActionDoc {
	ad := ActionDoc{Span: encodeSpan(a.Pos())}
	switch a := a.(type) {
	case ast.Let:
		ad.Let = &LetDoc{Name: a.Name, Expr: encodeExpr(a.Expr)}
	case ast.Set:
		ad.Set = &SetDoc{Func: encodeFunc(a.Func), Args: encodeExprs(a.Args), Value: encodeExpr(a.Value)}
	case ast.Change:
		cd := &ChangeDoc{Func: encodeFunc(a.Func), Args: encodeExprs(a.Args)}
		if a.Kind == ast.ChangeSubsume {
			ad.Subsume = cd
		} else {
			ad.Delete = cd
		}
	case ast.Union:
		ad.Union = &UnionDoc{Left: encodeExpr(a.Left), Right: encodeExpr(a.Right)}
	case ast.Extract:
		ad.Extract = &ExtractDoc{Expr: encodeExpr(a.Expr), Variants: encodeExpr(a.Variants)}
	case ast.Panic:
		msg := a.Message
		ad.Panic = &msg
	case ast.ExprAction:
		e := encodeExpr(a.Expr)
		ad.Expr = &e
	default:
		invariant.Unreachable("action", a)
	}
	return ad
}

func encodeFacts(fs []ast.Fact) []FactDoc {
	if len(fs) == 0 {
		return nil
	}
	out := make([]FactDoc, len(fs))
	for i, f := range fs {
		switch f := f.(type) {
		case ast.Eq:
			out[i] = FactDoc{Eq: encodeExprs(f.Exprs)}
		case ast.FactExpr:
			e := encodeExpr(f.Expr)
			out[i] = FactDoc{Expr: &e}
		default:
			invariant.Unreachable("fact", f)
		}
	}
	return out
}

func encodeSchedule(s ast.Schedule) ScheduleDoc {
	switch s := s.(type) {
	case ast.RunRuleset:
		return ScheduleDoc{Run: &RunDoc{Ruleset: s.Ruleset, Until: encodeFacts(s.Until)}}
	case ast.Repeat:
		return ScheduleDoc{Repeat: &RepeatDoc{Times: s.Times, Schedule: encodeSchedule(s.Schedule)}}
	case ast.Saturate:
		inner := encodeSchedule(s.Schedule)
		return ScheduleDoc{Saturate: &inner}
	case ast.Sequence:
		seq := &SeqDoc{Schedules: make([]ScheduleDoc, len(s.Schedules))}
		for i, inner := range s.Schedules {
			seq.Schedules[i] = encodeSchedule(inner)
		}
		return ScheduleDoc{Seq: seq}
	default:
		invariant.Unreachable("schedule", s)
		return ScheduleDoc{}
	}
}

func encodeExprs(es []ast.Expr) []ExprDoc {
	if len(es) == 0 {
		return nil
	}
	out := make([]ExprDoc, len(es))
	for i, e := range es {
		out[i] = encodeExpr(e)
	}
	return out
}

func encodeOptional(e ast.Expr) *ExprDoc {
	if e == nil {
		return nil
	}
	d := encodeExpr(e)
	return &d
}

func encodeExpr(e ast.Expr) ExprDoc {
	switch e := e.(type) {
	case ast.Lit:
		lit := encodeLit(e.Value)
		return ExprDoc{Lit: &lit}
	case ast.Var:
		return ExprDoc{Var: &VarDoc{Name: e.Name, Sort: e.Sort.Name(), Local: !e.IsGlobal()}}
	case ast.Call:
		cd := &CallDoc{Args: encodeExprs(e.Args)}
		switch h := e.Head.(type) {
		case ast.FuncType:
			f := encodeFunc(h)
			cd.Func = &f
		case ast.Primitive:
			cd.Primitive = &PrimitiveDoc{Name: h.Name, Input: ast.SortNames(h.Input), Output: h.Output.Name()}
		default:
			invariant.Unreachable("callee", h)
		}
		return ExprDoc{Call: cd}
	default:
		invariant.Unreachable("expr", e)
		return ExprDoc{}
	}
}

func encodeLit(l ast.Literal) LitDoc {
	switch l := l.(type) {
	case ast.Int:
		v := int64(l)
		return LitDoc{I64: &v}
	case ast.Float:
		v := float64(l)
		return LitDoc{F64: &v}
	case ast.String:
		v := string(l)
		return LitDoc{String: &v}
	case ast.Bool:
		v := bool(l)
		return LitDoc{Bool: &v}
	case ast.Unit:
		return LitDoc{Unit: true}
	default:
		invariant.Unreachable("literal", l)
		return LitDoc{}
	}
}

func encodeFunc(f ast.FuncType) FuncDoc {
	return FuncDoc{
		Name:       f.Name,
		Input:      ast.SortNames(f.Input),
		Output:     f.Output.Name(),
		Datatype:   f.IsDatatype,
		HasDefault: f.HasDefault,
	}
}
