package ast

import "github.com/roach88/eggir/internal/invariant"

// ExprFunc rewrites one expression.
type ExprFunc func(Expr) Expr

// MapExpr rewrites e bottom-up: the arguments of a call are mapped first,
// then rule is applied to the rebuilt node. Lit and Var nodes are passed to
// rule directly. The input tree is never mutated.
func MapExpr(e Expr, rule ExprFunc) Expr {
	switch e := e.(type) {
	case Lit:
		return rule(e)
	case Var:
		return rule(e)
	case Call:
		return rule(Call{Head: e.Head, Args: mapExprs(e.Args, func(arg Expr) Expr {
			return MapExpr(arg, rule)
		})})
	default:
		invariant.Unreachable("expression", e)
		return nil
	}
}

// mapExprs applies f to each element and keeps nil slices nil.
func mapExprs(es []Expr, f ExprFunc) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = f(e)
	}
	return out
}

// mapOptional applies f unless e is absent.
func mapOptional(e Expr, f ExprFunc) Expr {
	if e == nil {
		return nil
	}
	return f(e)
}

// MapActionExprs applies f to every expression embedded in a, keeping the
// action's kind, span, target and every other field.
func MapActionExprs(a Action, f ExprFunc) Action {
	switch a := a.(type) {
	case Let:
		return Let{Span: a.Span, Name: a.Name, Expr: f(a.Expr)}
	case Set:
		return Set{Span: a.Span, Func: a.Func, Args: mapExprs(a.Args, f), Value: f(a.Value)}
	case Change:
		return Change{Span: a.Span, Kind: a.Kind, Func: a.Func, Args: mapExprs(a.Args, f)}
	case Union:
		return Union{Span: a.Span, Left: f(a.Left), Right: f(a.Right)}
	case Extract:
		return Extract{Span: a.Span, Expr: f(a.Expr), Variants: f(a.Variants)}
	case Panic:
		return a
	case ExprAction:
		return ExprAction{Span: a.Span, Expr: f(a.Expr)}
	default:
		invariant.Unreachable("action", a)
		return nil
	}
}

func mapActions(as []Action, f ExprFunc) []Action {
	if as == nil {
		return nil
	}
	out := make([]Action, len(as))
	for i, a := range as {
		out[i] = MapActionExprs(a, f)
	}
	return out
}

// MapFactExprs applies f to every expression of a fact.
func MapFactExprs(fact Fact, f ExprFunc) Fact {
	switch fact := fact.(type) {
	case Eq:
		return Eq{Exprs: mapExprs(fact.Exprs, f)}
	case FactExpr:
		return FactExpr{Expr: f(fact.Expr)}
	default:
		invariant.Unreachable("fact", fact)
		return nil
	}
}

func mapFacts(facts []Fact, f ExprFunc) []Fact {
	if facts == nil {
		return nil
	}
	out := make([]Fact, len(facts))
	for i, fact := range facts {
		out[i] = MapFactExprs(fact, f)
	}
	return out
}

// MapScheduleExprs applies f to the until-facts found anywhere in s.
func MapScheduleExprs(s Schedule, f ExprFunc) Schedule {
	switch s := s.(type) {
	case RunRuleset:
		return RunRuleset{Ruleset: s.Ruleset, Until: mapFacts(s.Until, f)}
	case Repeat:
		return Repeat{Times: s.Times, Schedule: MapScheduleExprs(s.Schedule, f)}
	case Saturate:
		return Saturate{Schedule: MapScheduleExprs(s.Schedule, f)}
	case Sequence:
		var scheds []Schedule
		if s.Schedules != nil {
			scheds = make([]Schedule, len(s.Schedules))
			for i, child := range s.Schedules {
				scheds[i] = MapScheduleExprs(child, f)
			}
		}
		return Sequence{Schedules: scheds}
	default:
		invariant.Unreachable("schedule", s)
		return nil
	}
}

// MapFunctionExprs applies f to the default, merge and merge actions of d.
func MapFunctionExprs(d FunctionDecl, f ExprFunc) FunctionDecl {
	d.Default = mapOptional(d.Default, f)
	d.Merge = mapOptional(d.Merge, f)
	d.MergeAction = mapActions(d.MergeAction, f)
	return d
}

// MapCommandExprs applies f to every expression embedded in c at any depth,
// leaving all other structure untouched.
func MapCommandExprs(c Command, f ExprFunc) Command {
	switch c := c.(type) {
	case CoreAction:
		return CoreAction{Action: MapActionExprs(c.Action, f)}
	case Function:
		return Function{Decl: MapFunctionExprs(c.Decl, f)}
	case SortDecl:
		return SortDecl{Name: c.Name, Presort: c.Presort, PresortArgs: mapExprs(c.PresortArgs, f)}
	case AddRuleset:
		return c
	case Rule:
		return Rule{Name: c.Name, Ruleset: c.Ruleset, Body: mapFacts(c.Body, f), Head: mapActions(c.Head, f)}
	case RunSchedule:
		return RunSchedule{Schedule: MapScheduleExprs(c.Schedule, f)}
	case Check:
		return Check{Facts: mapFacts(c.Facts, f)}
	case PrintTable:
		return c
	case PrintSize:
		return c
	case Output:
		return Output{File: c.File, Exprs: mapExprs(c.Exprs, f)}
	case Push:
		return c
	case Pop:
		return c
	case Fail:
		return Fail{Command: MapCommandExprs(c.Command, f)}
	case Input:
		return c
	case SetOption:
		return SetOption{Name: c.Name, Value: f(c.Value)}
	case PrintOverallStatistics:
		return c
	default:
		invariant.Unreachable("command", c)
		return nil
	}
}
