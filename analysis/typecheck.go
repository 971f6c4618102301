package analysis

import (
	"github.com/rlch/gqlcore"
)

// CheckTypes runs Pass 6 (spec §4.8): given the type table Pass 2 built,
// verifies each operator's operand types are compatible, emitting
// TYPE_MISMATCH for arithmetic on non-numeric operands, logical connectives
// on non-boolean operands, and string concatenation on non-string operands.
func CheckTypes(prog *gql.Program, table TypeTable, cfg gql.Config) []gql.Diagnostic {
	tc := &typeChecker{table: table, cfg: cfg}

	for _, stmt := range prog.Statements {
		tc.statement(stmt)
	}

	return tc.diags
}

type typeChecker struct {
	table TypeTable
	cfg   gql.Config
	diags []gql.Diagnostic
}

func (tc *typeChecker) statement(stmt gql.Statement) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		tc.query(s.Query)
	case *gql.DataModificationStatement:
		tc.clauses(s.Clauses)
	}
}

func (tc *typeChecker) query(q gql.Query) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		tc.clauses(qq.Clauses)
	case *gql.CompositeQuery:
		tc.query(qq.Left)
		tc.query(qq.Right)
	case *gql.ParenthesizedQuery:
		tc.query(qq.Inner)
	}
}

func (tc *typeChecker) clauses(clauses []gql.Clause) {
	for _, c := range clauses {
		tc.clause(c)
	}
}

func (tc *typeChecker) clause(c gql.Clause) {
	switch cl := c.(type) {
	case *gql.FilterClause:
		tc.requireBoolean(cl.Condition)
		tc.expr(cl.Condition)
	case *gql.OrderByPageClause:
		for _, item := range cl.OrderBy {
			tc.expr(item.Expr)
		}

		tc.expr(cl.Skip)
		tc.expr(cl.Limit)
	case *gql.SelectClause:
		for _, item := range cl.Items {
			tc.expr(item.Expr)
		}
	case *gql.LetClause:
		for _, b := range cl.Bindings {
			tc.expr(b.Value)
		}
	case *gql.ForClause:
		tc.expr(cl.Source)
	case *gql.SetClause:
		for _, item := range cl.Items {
			tc.expr(item.Value)
		}
	case *gql.ReturnClause:
		for _, item := range cl.Items {
			tc.expr(item.Expr)
		}
	case *gql.OptionalMatchClause:
		if cl.Block != nil {
			tc.clauses(cl.Block.Clauses)
		}
	case *gql.CallClause:
		if cl.Procedure != nil {
			for _, a := range cl.Procedure.Args {
				tc.expr(a)
			}
		}

		if cl.Inline != nil {
			tc.clauses(cl.Inline.Clauses)
		}
	}
}

func (tc *typeChecker) requireBoolean(e gql.Expression) {
	if e == nil {
		return
	}

	t, ok := tc.table[e.Span()]
	if !ok || isUnknown(t) {
		return
	}

	if _, ok := t.(*gql.BooleanType); !ok {
		tc.diags = append(tc.diags, gql.Diagnostic{
			Code:        gql.CodeTypeMismatch,
			Severity:    gql.SeverityError,
			Message:     "condition must be a boolean expression",
			PrimarySpan: e.Span(),
		})
	}
}

// expr recursively re-checks operator operand types, reusing the types
// Pass 2 already recorded per span rather than re-inferring them.
func (tc *typeChecker) expr(e gql.Expression) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *gql.BinaryOp:
		tc.expr(expr.Left)
		tc.expr(expr.Right)
		tc.binaryOp(expr)
	case *gql.UnaryOp:
		tc.expr(expr.Operand)
	case *gql.PropertyAccess:
		tc.expr(expr.Target)
	case *gql.Subscript:
		tc.expr(expr.Target)
		tc.expr(expr.Index)
	case *gql.FunctionCall:
		for _, a := range expr.Args {
			tc.expr(a)
		}
	case *gql.AggregateCall:
		tc.expr(expr.Arg)
	case *gql.CaseExpr:
		tc.expr(expr.Operand)

		for _, w := range expr.Whens {
			tc.requireBoolean(w.Condition)
			tc.expr(w.Condition)
			tc.expr(w.Result)
		}

		tc.expr(expr.Else)
	case *gql.CastExpr:
		tc.expr(expr.Operand)
	case *gql.ListConstructor:
		for _, el := range expr.Elements {
			tc.expr(el)
		}
	case *gql.RecordConstructor:
		for _, f := range expr.Fields {
			tc.expr(f.Value)
		}
	}
}

func (tc *typeChecker) binaryOp(expr *gql.BinaryOp) {
	left, lok := tc.table[expr.Left.Span()]
	right, rok := tc.table[expr.Right.Span()]

	if !lok || !rok || isUnknown(left) || isUnknown(right) {
		return
	}

	switch expr.Op {
	case "+", "-", "*", "/", "%", "^":
		if !isNumericFamily(left) || !isNumericFamily(right) {
			tc.mismatch(expr, "arithmetic operator requires numeric operands")
		}
	case "AND", "OR", "XOR":
		if !isBoolean(left) || !isBoolean(right) {
			tc.mismatch(expr, "logical operator requires boolean operands")
		}
	case "||":
		if !isStringFamily(left) || !isStringFamily(right) {
			tc.mismatch(expr, "|| requires string operands")
		}
	}
}

func (tc *typeChecker) mismatch(e gql.Expression, msg string) {
	tc.diags = append(tc.diags, gql.Diagnostic{
		Code:        gql.CodeTypeMismatch,
		Severity:    gql.SeverityError,
		Message:     msg,
		PrimarySpan: e.Span(),
	})
}

func isBoolean(t gql.Type) bool {
	_, ok := t.(*gql.BooleanType)

	return ok
}
