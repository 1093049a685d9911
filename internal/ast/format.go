package ast

import (
	"strconv"
	"strings"

	"github.com/roach88/eggir/internal/invariant"
)

// FormatProgram renders cmds as s-expressions, one command per line, each
// line terminated by a newline.
func FormatProgram(cmds []Command) string {
	var b strings.Builder
	for _, c := range cmds {
		writeCommand(&b, c)
		b.WriteByte('\n')
	}
	return b.String()
}

// Format renders a single command.
func Format(c Command) string {
	var b strings.Builder
	writeCommand(&b, c)
	return b.String()
}

// FormatExpr renders a single expression.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeLiteral(b *strings.Builder, l Literal) {
	switch l := l.(type) {
	case Int:
		b.WriteString(strconv.FormatInt(int64(l), 10))
	case Float:
		s := strconv.FormatFloat(float64(l), 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		b.WriteString(s)
	case String:
		b.WriteString(strconv.Quote(string(l)))
	case Bool:
		b.WriteString(strconv.FormatBool(bool(l)))
	case Unit:
		b.WriteString("()")
	default:
		invariant.Unreachable("literal", l)
	}
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Lit:
		writeLiteral(b, e.Value)
	case Var:
		b.WriteString(e.Name)
	case Call:
		b.WriteByte('(')
		b.WriteString(e.Head.CalleeName())
		for _, arg := range e.Args {
			b.WriteByte(' ')
			writeExpr(b, arg)
		}
		b.WriteByte(')')
	default:
		invariant.Unreachable("expression", e)
	}
}

func writeApplied(b *strings.Builder, name string, args []Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, arg := range args {
		b.WriteByte(' ')
		writeExpr(b, arg)
	}
	b.WriteByte(')')
}

func writeAction(b *strings.Builder, a Action) {
	switch a := a.(type) {
	case Let:
		b.WriteString("(let ")
		b.WriteString(a.Name)
		b.WriteByte(' ')
		writeExpr(b, a.Expr)
		b.WriteByte(')')
	case Set:
		b.WriteString("(set ")
		writeApplied(b, a.Func.Name, a.Args)
		b.WriteByte(' ')
		writeExpr(b, a.Value)
		b.WriteByte(')')
	case Change:
		b.WriteByte('(')
		b.WriteString(a.Kind.String())
		b.WriteByte(' ')
		writeApplied(b, a.Func.Name, a.Args)
		b.WriteByte(')')
	case Union:
		b.WriteString("(union ")
		writeExpr(b, a.Left)
		b.WriteByte(' ')
		writeExpr(b, a.Right)
		b.WriteByte(')')
	case Extract:
		b.WriteString("(extract ")
		writeExpr(b, a.Expr)
		b.WriteByte(' ')
		writeExpr(b, a.Variants)
		b.WriteByte(')')
	case Panic:
		b.WriteString("(panic ")
		b.WriteString(strconv.Quote(a.Message))
		b.WriteByte(')')
	case ExprAction:
		writeExpr(b, a.Expr)
	default:
		invariant.Unreachable("action", a)
	}
}

func writeActions(b *strings.Builder, as []Action) {
	b.WriteByte('(')
	for i, a := range as {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeAction(b, a)
	}
	b.WriteByte(')')
}

func writeFact(b *strings.Builder, f Fact) {
	switch f := f.(type) {
	case Eq:
		b.WriteString("(=")
		for _, e := range f.Exprs {
			b.WriteByte(' ')
			writeExpr(b, e)
		}
		b.WriteByte(')')
	case FactExpr:
		writeExpr(b, f.Expr)
	default:
		invariant.Unreachable("fact", f)
	}
}

func writeFacts(b *strings.Builder, facts []Fact) {
	b.WriteByte('(')
	for i, f := range facts {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeFact(b, f)
	}
	b.WriteByte(')')
}

func writeSchedule(b *strings.Builder, s Schedule) {
	switch s := s.(type) {
	case RunRuleset:
		b.WriteString("(run")
		if s.Ruleset != "" {
			b.WriteByte(' ')
			b.WriteString(s.Ruleset)
		}
		if len(s.Until) > 0 {
			b.WriteString(" :until ")
			writeFacts(b, s.Until)
		}
		b.WriteByte(')')
	case Repeat:
		b.WriteString("(repeat ")
		b.WriteString(strconv.Itoa(s.Times))
		b.WriteByte(' ')
		writeSchedule(b, s.Schedule)
		b.WriteByte(')')
	case Saturate:
		b.WriteString("(saturate ")
		writeSchedule(b, s.Schedule)
		b.WriteByte(')')
	case Sequence:
		b.WriteString("(seq")
		for _, child := range s.Schedules {
			b.WriteByte(' ')
			writeSchedule(b, child)
		}
		b.WriteByte(')')
	default:
		invariant.Unreachable("schedule", s)
	}
}

func writeFunction(b *strings.Builder, d FunctionDecl) {
	b.WriteString("(function ")
	b.WriteString(d.Name)
	b.WriteString(" (")
	b.WriteString(strings.Join(d.Schema.Input, " "))
	b.WriteString(") ")
	b.WriteString(d.Schema.Output)
	if d.Default != nil {
		b.WriteString(" :default ")
		writeExpr(b, d.Default)
	}
	if d.Merge != nil {
		b.WriteString(" :merge ")
		writeExpr(b, d.Merge)
	}
	if len(d.MergeAction) > 0 {
		b.WriteString(" :on_merge ")
		writeActions(b, d.MergeAction)
	}
	if d.Cost != nil {
		b.WriteString(" :cost ")
		b.WriteString(strconv.Itoa(*d.Cost))
	}
	if d.Unextractable {
		b.WriteString(" :unextractable")
	}
	b.WriteByte(')')
}

func writeCommand(b *strings.Builder, c Command) {
	switch c := c.(type) {
	case CoreAction:
		writeAction(b, c.Action)
	case Function:
		writeFunction(b, c.Decl)
	case SortDecl:
		b.WriteString("(sort ")
		b.WriteString(c.Name)
		if c.Presort != "" {
			b.WriteByte(' ')
			writeApplied(b, c.Presort, c.PresortArgs)
		}
		b.WriteByte(')')
	case AddRuleset:
		b.WriteString("(ruleset ")
		b.WriteString(c.Name)
		b.WriteByte(')')
	case Rule:
		b.WriteString("(rule ")
		writeFacts(b, c.Body)
		b.WriteByte(' ')
		writeActions(b, c.Head)
		if c.Ruleset != "" {
			b.WriteString(" :ruleset ")
			b.WriteString(c.Ruleset)
		}
		if c.Name != "" {
			b.WriteString(" :name ")
			b.WriteString(strconv.Quote(c.Name))
		}
		b.WriteByte(')')
	case RunSchedule:
		b.WriteString("(run-schedule ")
		writeSchedule(b, c.Schedule)
		b.WriteByte(')')
	case Check:
		b.WriteString("(check")
		for _, f := range c.Facts {
			b.WriteByte(' ')
			writeFact(b, f)
		}
		b.WriteByte(')')
	case PrintTable:
		b.WriteString("(print-function ")
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(c.N))
		b.WriteByte(')')
	case PrintSize:
		b.WriteString("(print-size ")
		b.WriteString(c.Name)
		b.WriteByte(')')
	case Output:
		b.WriteString("(output ")
		b.WriteString(strconv.Quote(c.File))
		for _, e := range c.Exprs {
			b.WriteByte(' ')
			writeExpr(b, e)
		}
		b.WriteByte(')')
	case Push:
		b.WriteString("(push ")
		b.WriteString(strconv.Itoa(c.N))
		b.WriteByte(')')
	case Pop:
		b.WriteString("(pop ")
		b.WriteString(strconv.Itoa(c.N))
		b.WriteByte(')')
	case Fail:
		b.WriteString("(fail ")
		writeCommand(b, c.Command)
		b.WriteByte(')')
	case Input:
		b.WriteString("(input ")
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(c.File))
		b.WriteByte(')')
	case SetOption:
		b.WriteString("(set-option ")
		b.WriteString(c.Name)
		b.WriteByte(' ')
		writeExpr(b, c.Value)
		b.WriteByte(')')
	case PrintOverallStatistics:
		b.WriteString("(print-stats)")
	default:
		invariant.Unreachable("command", c)
	}
}
