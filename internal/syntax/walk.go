package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}
	for _, c := range children(node) {
		Walk(c, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// children returns the direct children of n in source order.
func children(node Node) []Node {
	var list []Node
	add := func(n Node) {
		if n != nil {
			list = append(list, n)
		}
	}
	addStmts := func(stmts []Stmt) {
		for _, s := range stmts {
			add(s)
		}
	}
	addExprs := func(exprs []Expr) {
		for _, e := range exprs {
			add(e)
		}
	}

	switch n := node.(type) {
	case *Program:
		if n.Expr != nil {
			add(n.Expr)
		}
		addStmts(n.Stmts)

	case *UnaryExpr:
		add(n.X)
	case *AdditiveExpr:
		add(n.X)
		add(n.Y)
	case *FactorExpr:
		add(n.X)
		add(n.Y)
	case *ComparisonExpr:
		add(n.X)
		add(n.Y)
	case *EqualityExpr:
		add(n.X)
		add(n.Y)
	case *ParenExpr:
		add(n.X)
	case *ListLit:
		addExprs(n.Elems)
	case *CallExpr:
		addExprs(n.Args)
	case *TypeLit:
		if n.Elem != nil {
			add(n.Elem)
		}

	case *PrintStmt:
		add(n.X)
	case *VarStmt:
		if n.TypeExpr != nil {
			add(n.TypeExpr)
		}
		add(n.X)
	case *AssignStmt:
		add(n.X)
	case *ForStmt:
		add(n.X)
		addStmts(n.Body)
	case *IfStmt:
		add(n.Cond)
		addStmts(n.Then)
		if n.ElseIf != nil {
			add(n.ElseIf)
		}
		addStmts(n.Else)
	case *Param:
		if n.TypeExpr != nil {
			add(n.TypeExpr)
		}
	case *FuncDef:
		for _, p := range n.Params {
			add(p)
		}
		if n.Result != nil {
			add(n.Result)
		}
		addStmts(n.Body)
	case *ReturnStmt:
		if n.X != nil {
			add(n.X)
		}
	case *CallStmt:
		if n.Call != nil {
			add(n.Call)
		}

	// Leaf nodes: IntLit, StringLit, BoolLit, NullLit, Ident, BadExpr, BadStmt
	// No children to visit
	}
	return list
}
