package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	m := map[string]interface{}{
		"type": KindOf(node),
		"pos":  node.Pos().String(),
	}
	if x, ok := node.(Expr); ok && x.Type() != nil {
		m["ctype"] = x.Type().String()
	}
	if errs := node.Errs(); len(errs) > 0 {
		list := make([]interface{}, len(errs))
		for i, e := range errs {
			list[i] = map[string]interface{}{
				"kind": e.Kind.String(),
				"pos":  e.Pos.String(),
				"msg":  e.Msg,
			}
		}
		m["errors"] = list
	}

	switch n := node.(type) {
	case *Program:
		if n.Expr != nil {
			m["expr"] = toJSON(n.Expr)
		} else {
			m["stmts"] = mapSliceStmt(n.Stmts, toJSON)
		}

	case *IntLit:
		m["value"] = n.Value
	case *StringLit:
		m["value"] = n.Value
	case *BoolLit:
		m["value"] = n.Value
	case *Ident:
		m["name"] = n.Name
	case *BadExpr:
		m["token"] = n.Tok.Lit
	case *TypeLit:
		m["name"] = n.Name
		if n.Elem != nil {
			m["elem"] = toJSON(n.Elem)
		}

	case *UnaryExpr:
		m["op"] = n.Op.String()
		m["x"] = toJSON(n.X)
	case *AdditiveExpr:
		binaryJSON(m, n.Op, n.X, n.Y)
	case *FactorExpr:
		binaryJSON(m, n.Op, n.X, n.Y)
	case *ComparisonExpr:
		binaryJSON(m, n.Op, n.X, n.Y)
	case *EqualityExpr:
		binaryJSON(m, n.Op, n.X, n.Y)
	case *ParenExpr:
		m["x"] = toJSON(n.X)
	case *ListLit:
		m["elems"] = mapSliceExpr(n.Elems, toJSON)
	case *CallExpr:
		m["name"] = n.Name
		m["args"] = mapSliceExpr(n.Args, toJSON)

	case *PrintStmt:
		m["x"] = toJSON(n.X)
	case *VarStmt:
		m["name"] = n.Name
		if n.TypeExpr != nil {
			m["vartype"] = toJSON(n.TypeExpr)
		}
		m["x"] = toJSON(n.X)
	case *AssignStmt:
		m["name"] = n.Name
		m["x"] = toJSON(n.X)
	case *ForStmt:
		m["var"] = n.Var
		m["x"] = toJSON(n.X)
		m["body"] = mapSliceStmt(n.Body, toJSON)
	case *IfStmt:
		m["cond"] = toJSON(n.Cond)
		m["then"] = mapSliceStmt(n.Then, toJSON)
		if n.ElseIf != nil {
			m["elseif"] = toJSON(n.ElseIf)
		}
		if n.Else != nil {
			m["else"] = mapSliceStmt(n.Else, toJSON)
		}
	case *FuncDef:
		m["name"] = n.Name
		params := make([]interface{}, len(n.Params))
		for i, par := range n.Params {
			params[i] = map[string]interface{}{
				"name":      par.Name,
				"paramtype": par.Type().String(),
			}
		}
		m["params"] = params
		m["result"] = n.ResultType().String()
		m["body"] = mapSliceStmt(n.Body, toJSON)
	case *ReturnStmt:
		if n.X != nil {
			m["x"] = toJSON(n.X)
		}
	case *CallStmt:
		m["call"] = toJSON(n.Call)
	case *BadStmt:
		m["token"] = n.Tok.Lit
	}
	return m
}

func binaryJSON(m map[string]interface{}, op Token, x, y Expr) {
	m["op"] = op.String()
	m["x"] = toJSON(x)
	m["y"] = toJSON(y)
}

// Helper functions to map slices

func mapSliceStmt(s []Stmt, f func(Node) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

func mapSliceExpr(s []Expr, f func(Node) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
