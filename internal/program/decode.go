package program

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/eggir/internal/ast"
)

// DecodeError reports a malformed document node.
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func errorf(path, format string, args ...any) error {
	return &DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Decode converts a document into program commands.
func Decode(doc Document) ([]ast.Command, error) {
	if len(doc.Commands) == 0 {
		return nil, nil
	}
	cmds := make([]ast.Command, 0, len(doc.Commands))
	for i, cd := range doc.Commands {
		c, err := decodeCommand(fmt.Sprintf("commands[%d]", i), cd)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// exactlyOne returns the single set member of a union node.
func exactlyOne(path string, set map[string]bool) (string, error) {
	var names []string
	for name, ok := range set {
		if ok {
			names = append(names, name)
		}
	}
	switch len(names) {
	case 1:
		return names[0], nil
	case 0:
		return "", errorf(path, "no member set")
	default:
		slices.Sort(names)
		return "", errorf(path, "more than one member set: %s", strings.Join(names, ", "))
	}
}

func decodeCommand(path string, cd CommandDoc) (ast.Command, error) {
	member, err := exactlyOne(path, map[string]bool{
		"action":         cd.Action != nil,
		"function":       cd.Function != nil,
		"sort":           cd.Sort != nil,
		"ruleset":        cd.Ruleset != nil,
		"rule":           cd.Rule != nil,
		"run_schedule":   cd.RunSchedule != nil,
		"check":          cd.Check != nil,
		"print_function": cd.PrintFunction != nil,
		"print_size":     cd.PrintSize != nil,
		"output":         cd.Output != nil,
		"push":           cd.Push != nil,
		"pop":            cd.Pop != nil,
		"fail":           cd.Fail != nil,
		"input":          cd.Input != nil,
		"set_option":     cd.SetOption != nil,
		"print_stats":    cd.PrintStats,
	})
	if err != nil {
		return nil, err
	}
	path += "." + member

	switch member {
	case "action":
		a, err := decodeAction(path, *cd.Action)
		if err != nil {
			return nil, err
		}
		return ast.CoreAction{Action: a}, nil
	case "function":
		decl, err := decodeFunction(path, *cd.Function)
		if err != nil {
			return nil, err
		}
		return ast.Function{Decl: decl}, nil
	case "sort":
		if cd.Sort.Name == "" {
			return nil, errorf(path, "name is required")
		}
		args, err := decodeExprs(path+".presort_args", cd.Sort.PresortArgs)
		if err != nil {
			return nil, err
		}
		return ast.SortDecl{Name: cd.Sort.Name, Presort: cd.Sort.Presort, PresortArgs: args}, nil
	case "ruleset":
		if *cd.Ruleset == "" {
			return nil, errorf(path, "name is required")
		}
		return ast.AddRuleset{Name: *cd.Ruleset}, nil
	case "rule":
		body, err := decodeFacts(path+".body", cd.Rule.Body)
		if err != nil {
			return nil, err
		}
		head, err := decodeActions(path+".head", cd.Rule.Head)
		if err != nil {
			return nil, err
		}
		return ast.Rule{Name: cd.Rule.Name, Ruleset: cd.Rule.Ruleset, Body: body, Head: head}, nil
	case "run_schedule":
		s, err := decodeSchedule(path, *cd.RunSchedule)
		if err != nil {
			return nil, err
		}
		return ast.RunSchedule{Schedule: s}, nil
	case "check":
		facts, err := decodeFacts(path+".facts", cd.Check.Facts)
		if err != nil {
			return nil, err
		}
		return ast.Check{Facts: facts}, nil
	case "print_function":
		return ast.PrintTable{Name: cd.PrintFunction.Name, N: cd.PrintFunction.N}, nil
	case "print_size":
		return ast.PrintSize{Name: *cd.PrintSize}, nil
	case "output":
		exprs, err := decodeExprs(path+".exprs", cd.Output.Exprs)
		if err != nil {
			return nil, err
		}
		return ast.Output{File: cd.Output.File, Exprs: exprs}, nil
	case "push":
		return ast.Push{N: *cd.Push}, nil
	case "pop":
		return ast.Pop{N: *cd.Pop}, nil
	case "fail":
		inner, err := decodeCommand(path, *cd.Fail)
		if err != nil {
			return nil, err
		}
		return ast.Fail{Command: inner}, nil
	case "input":
		return ast.Input{Name: cd.Input.Name, File: cd.Input.File}, nil
	case "set_option":
		v, err := decodeExpr(path+".value", cd.SetOption.Value)
		if err != nil {
			return nil, err
		}
		return ast.SetOption{Name: cd.SetOption.Name, Value: v}, nil
	default:
		return ast.PrintOverallStatistics{}, nil
	}
}

func decodeFunction(path string, fd FunctionDoc) (ast.FunctionDecl, error) {
	if fd.Name == "" {
		return ast.FunctionDecl{}, errorf(path, "name is required")
	}
	if fd.Output == "" {
		return ast.FunctionDecl{}, errorf(path, "output sort is required")
	}
	decl := ast.FunctionDecl{
		Name:          fd.Name,
		Schema:        ast.Schema{Input: fd.Input, Output: fd.Output},
		Cost:          fd.Cost,
		Unextractable: fd.Unextractable,
	}
	var err error
	if decl.Default, err = decodeOptional(path+".default", fd.Default); err != nil {
		return ast.FunctionDecl{}, err
	}
	if decl.Merge, err = decodeOptional(path+".merge", fd.Merge); err != nil {
		return ast.FunctionDecl{}, err
	}
	if decl.MergeAction, err = decodeActions(path+".on_merge", fd.OnMerge); err != nil {
		return ast.FunctionDecl{}, err
	}
	return decl, nil
}

func decodeSpan(sd *SpanDoc) ast.Span {
	if sd == nil {
		return ast.Span{}
	}
	return ast.Span{File: sd.File, Line: sd.Line, Col: sd.Col}
}

func decodeActions(path string, docs []ActionDoc) ([]ast.Action, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]ast.Action, 0, len(docs))
	for i, d := range docs {
		a, err := decodeAction(fmt.Sprintf("%s[%d]", path, i), d)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeAction(path string, ad ActionDoc) (ast.Action, error) {
	member, err := exactlyOne(path, map[string]bool{
		"let":     ad.Let != nil,
		"set":     ad.Set != nil,
		"delete":  ad.Delete != nil,
		"subsume": ad.Subsume != nil,
		"union":   ad.Union != nil,
		"extract": ad.Extract != nil,
		"panic":   ad.Panic != nil,
		"expr":    ad.Expr != nil,
	})
	if err != nil {
		return nil, err
	}
	span := decodeSpan(ad.Span)
	path += "." + member

	switch member {
	case "let":
		if ad.Let.Name == "" {
			return nil, errorf(path, "name is required")
		}
		e, err := decodeExpr(path+".expr", ad.Let.Expr)
		if err != nil {
			return nil, err
		}
		return ast.Let{Span: span, Name: ad.Let.Name, Expr: e}, nil
	case "set":
		f, err := decodeFunc(path+".func", ad.Set.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(path+".args", ad.Set.Args)
		if err != nil {
			return nil, err
		}
		v, err := decodeExpr(path+".value", ad.Set.Value)
		if err != nil {
			return nil, err
		}
		return ast.Set{Span: span, Func: f, Args: args, Value: v}, nil
	case "delete", "subsume":
		cd, kind := ad.Delete, ast.ChangeDelete
		if member == "subsume" {
			cd, kind = ad.Subsume, ast.ChangeSubsume
		}
		f, err := decodeFunc(path+".func", cd.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(path+".args", cd.Args)
		if err != nil {
			return nil, err
		}
		return ast.Change{Span: span, Kind: kind, Func: f, Args: args}, nil
	case "union":
		l, err := decodeExpr(path+".left", ad.Union.Left)
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(path+".right", ad.Union.Right)
		if err != nil {
			return nil, err
		}
		return ast.Union{Span: span, Left: l, Right: r}, nil
	case "extract":
		e, err := decodeExpr(path+".expr", ad.Extract.Expr)
		if err != nil {
			return nil, err
		}
		v, err := decodeExpr(path+".variants", ad.Extract.Variants)
		if err != nil {
			return nil, err
		}
		return ast.Extract{Span: span, Expr: e, Variants: v}, nil
	case "panic":
		return ast.Panic{Span: span, Message: *ad.Panic}, nil
	default:
		e, err := decodeExpr(path, *ad.Expr)
		if err != nil {
			return nil, err
		}
		return ast.ExprAction{Span: span, Expr: e}, nil
	}
}

func decodeFacts(path string, docs []FactDoc) ([]ast.Fact, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]ast.Fact, 0, len(docs))
	for i, d := range docs {
		p := fmt.Sprintf("%s[%d]", path, i)
		member, err := exactlyOne(p, map[string]bool{
			"eq":   d.Eq != nil,
			"expr": d.Expr != nil,
		})
		if err != nil {
			return nil, err
		}
		if member == "eq" {
			exprs, err := decodeExprs(p+".eq", d.Eq)
			if err != nil {
				return nil, err
			}
			out = append(out, ast.Eq{Exprs: exprs})
			continue
		}
		e, err := decodeExpr(p+".expr", *d.Expr)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.FactExpr{Expr: e})
	}
	return out, nil
}

func decodeSchedule(path string, sd ScheduleDoc) (ast.Schedule, error) {
	member, err := exactlyOne(path, map[string]bool{
		"run":      sd.Run != nil,
		"repeat":   sd.Repeat != nil,
		"saturate": sd.Saturate != nil,
		"seq":      sd.Seq != nil,
	})
	if err != nil {
		return nil, err
	}
	path += "." + member

	switch member {
	case "run":
		until, err := decodeFacts(path+".until", sd.Run.Until)
		if err != nil {
			return nil, err
		}
		return ast.RunRuleset{Ruleset: sd.Run.Ruleset, Until: until}, nil
	case "repeat":
		inner, err := decodeSchedule(path+".schedule", sd.Repeat.Schedule)
		if err != nil {
			return nil, err
		}
		return ast.Repeat{Times: sd.Repeat.Times, Schedule: inner}, nil
	case "saturate":
		inner, err := decodeSchedule(path, *sd.Saturate)
		if err != nil {
			return nil, err
		}
		return ast.Saturate{Schedule: inner}, nil
	default:
		var scheds []ast.Schedule
		if sd.Seq.Schedules != nil {
			scheds = make([]ast.Schedule, 0, len(sd.Seq.Schedules))
		}
		for i, s := range sd.Seq.Schedules {
			inner, err := decodeSchedule(fmt.Sprintf("%s.schedules[%d]", path, i), s)
			if err != nil {
				return nil, err
			}
			scheds = append(scheds, inner)
		}
		return ast.Sequence{Schedules: scheds}, nil
	}
}

func decodeExprs(path string, docs []ExprDoc) ([]ast.Expr, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]ast.Expr, 0, len(docs))
	for i, d := range docs {
		e, err := decodeExpr(fmt.Sprintf("%s[%d]", path, i), d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeOptional(path string, d *ExprDoc) (ast.Expr, error) {
	if d == nil {
		return nil, nil
	}
	return decodeExpr(path, *d)
}

func decodeExpr(path string, ed ExprDoc) (ast.Expr, error) {
	member, err := exactlyOne(path, map[string]bool{
		"lit":  ed.Lit != nil,
		"var":  ed.Var != nil,
		"call": ed.Call != nil,
	})
	if err != nil {
		return nil, err
	}
	path += "." + member

	switch member {
	case "lit":
		lit, err := decodeLit(path, *ed.Lit)
		if err != nil {
			return nil, err
		}
		return ast.NewLit(lit), nil
	case "var":
		v := *ed.Var
		if v.Name == "" {
			return nil, errorf(path, "name is required")
		}
		b := ast.BindingGlobal
		if v.Local {
			b = ast.BindingLocal
		}
		return ast.Var{Name: v.Name, Sort: ast.Sort(v.Sort), Binding: b}, nil
	default:
		return decodeCall(path, *ed.Call)
	}
}

func decodeLit(path string, ld LitDoc) (ast.Literal, error) {
	member, err := exactlyOne(path, map[string]bool{
		"i64":    ld.I64 != nil,
		"f64":    ld.F64 != nil,
		"string": ld.String != nil,
		"bool":   ld.Bool != nil,
		"unit":   ld.Unit,
	})
	if err != nil {
		return nil, err
	}
	switch member {
	case "i64":
		return ast.Int(*ld.I64), nil
	case "f64":
		return ast.Float(*ld.F64), nil
	case "string":
		return ast.String(*ld.String), nil
	case "bool":
		return ast.Bool(*ld.Bool), nil
	default:
		return ast.Unit{}, nil
	}
}

func decodeCall(path string, cd CallDoc) (ast.Expr, error) {
	member, err := exactlyOne(path, map[string]bool{
		"func":      cd.Func != nil,
		"primitive": cd.Primitive != nil,
	})
	if err != nil {
		return nil, err
	}
	var head ast.Callee
	if member == "func" {
		f, err := decodeFunc(path+".func", *cd.Func)
		if err != nil {
			return nil, err
		}
		head = f
	} else {
		p := cd.Primitive
		if p.Name == "" {
			return nil, errorf(path+".primitive", "name is required")
		}
		head = ast.Primitive{Name: p.Name, Input: toSorts(p.Input), Output: ast.Sort(p.Output)}
	}
	args, err := decodeExprs(path+".args", cd.Args)
	if err != nil {
		return nil, err
	}
	return ast.Call{Head: head, Args: args}, nil
}

func decodeFunc(path string, fd FuncDoc) (ast.FuncType, error) {
	if fd.Name == "" {
		return ast.FuncType{}, errorf(path, "name is required")
	}
	return ast.FuncType{
		Name:       fd.Name,
		Input:      toSorts(fd.Input),
		Output:     ast.Sort(fd.Output),
		IsDatatype: fd.Datatype,
		HasDefault: fd.HasDefault,
	}, nil
}

func toSorts(names []string) []ast.Sort {
	if names == nil {
		return nil
	}
	out := make([]ast.Sort, len(names))
	for i, n := range names {
		out[i] = ast.Sort(n)
	}
	return out
}
