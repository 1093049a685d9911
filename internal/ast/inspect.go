package ast

// InspectExpr calls visit for e and every node below it, parents first.
func InspectExpr(e Expr, visit func(Expr)) {
	visit(e)
	if call, ok := e.(Call); ok {
		for _, arg := range call.Args {
			InspectExpr(arg, visit)
		}
	}
}

// InspectCommand calls visit for every expression node reachable from c.
// It reuses MapCommandExprs with an identity rewrite so that reading and
// rewriting always agree on which expressions a command contains.
func InspectCommand(c Command, visit func(Expr)) {
	MapCommandExprs(c, func(e Expr) Expr {
		InspectExpr(e, visit)
		return e
	})
}

// GlobalRefs returns the names of global references reachable from c, in
// visiting order and with repetitions.
func GlobalRefs(c Command) []string {
	var names []string
	InspectCommand(c, func(e Expr) {
		if v, ok := e.(Var); ok && v.IsGlobal() {
			names = append(names, v.Name)
		}
	})
	return names
}

// NullaryCalls counts zero-argument FuncType calls to name reachable from c.
func NullaryCalls(c Command, name string) int {
	n := 0
	InspectCommand(c, func(e Expr) {
		call, ok := e.(Call)
		if !ok || len(call.Args) != 0 {
			return
		}
		if head, ok := call.Head.(FuncType); ok && head.Name == name && len(head.Input) == 0 {
			n++
		}
	})
	return n
}
