package analysis

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/rlch/gqlcore"
)

// ValidateExpressions runs Pass 7 (spec §4.9): a CASE whose ELSE arm shares
// no common type with its joined WHEN arms (WHEN arms are not compared with
// one another, and a CASE without ELSE is not checked),
// the IS [NOT] NORMALIZED predicate's static operand-type requirement, and
// the rule that a subquery used in expression position must project
// exactly one scalar column.
func ValidateExpressions(prog *gql.Program, table TypeTable, cfg gql.Config) []gql.Diagnostic {
	ev := &exprValidator{table: table, cfg: cfg}

	for _, stmt := range prog.Statements {
		ev.statement(stmt)
	}

	return ev.diags
}

type exprValidator struct {
	table TypeTable
	cfg   gql.Config
	diags []gql.Diagnostic
}

func (ev *exprValidator) statement(stmt gql.Statement) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		ev.query(s.Query)
	case *gql.DataModificationStatement:
		ev.clauses(s.Clauses)
	}
}

func (ev *exprValidator) query(q gql.Query) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		ev.clauses(qq.Clauses)
	case *gql.CompositeQuery:
		ev.query(qq.Left)
		ev.query(qq.Right)
	case *gql.ParenthesizedQuery:
		ev.query(qq.Inner)
	}
}

func (ev *exprValidator) clauses(clauses []gql.Clause) {
	for _, c := range clauses {
		ev.clause(c)
	}
}

func (ev *exprValidator) clause(c gql.Clause) {
	switch cl := c.(type) {
	case *gql.FilterClause:
		ev.expr(cl.Condition)
	case *gql.OrderByPageClause:
		for _, item := range cl.OrderBy {
			ev.expr(item.Expr)
		}
	case *gql.SelectClause:
		for _, item := range cl.Items {
			ev.expr(item.Expr)
		}
	case *gql.LetClause:
		for _, b := range cl.Bindings {
			ev.expr(b.Value)
		}
	case *gql.ForClause:
		ev.expr(cl.Source)
	case *gql.SetClause:
		for _, item := range cl.Items {
			ev.expr(item.Value)
		}
	case *gql.ReturnClause:
		for _, item := range cl.Items {
			ev.expr(item.Expr)
		}
	case *gql.OptionalMatchClause:
		if cl.Block != nil {
			ev.clauses(cl.Block.Clauses)
		}
	case *gql.CallClause:
		if cl.Procedure != nil {
			for _, a := range cl.Procedure.Args {
				ev.expr(a)
			}
		}

		if cl.Inline != nil {
			ev.clauses(cl.Inline.Clauses)
		}
	}
}

func (ev *exprValidator) expr(e gql.Expression) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *gql.CaseExpr:
		ev.expr(expr.Operand)

		var joined gql.Type

		for _, w := range expr.Whens {
			ev.expr(w.Condition)
			ev.expr(w.Result)

			if t, ok := ev.table[w.Result.Span()]; ok {
				if joined == nil {
					joined = t
				} else {
					joined = joinTypes(joined, t)
				}
			}
		}

		ev.expr(expr.Else)

		if expr.Else != nil && joined != nil {
			if t, ok := ev.table[expr.Else.Span()]; ok {
				if isUnknown(joinTypes(joined, t)) && !isUnknown(joined) && !isUnknown(t) {
					ev.diags = append(ev.diags, gql.Diagnostic{
						Code:        gql.CodeTypeMismatch,
						Severity:    gql.SeverityWarning,
						Message:     "CASE arms do not share a common type",
						PrimarySpan: expr.Span(),
					})
				}
			}
		}
	case *gql.BinaryOp:
		ev.expr(expr.Left)
		ev.expr(expr.Right)
	case *gql.UnaryOp:
		ev.expr(expr.Operand)
	case *gql.PropertyAccess:
		ev.expr(expr.Target)
	case *gql.Subscript:
		ev.expr(expr.Target)
		ev.expr(expr.Index)
	case *gql.FunctionCall:
		for _, a := range expr.Args {
			ev.expr(a)
		}
	case *gql.AggregateCall:
		ev.expr(expr.Arg)
	case *gql.CastExpr:
		ev.expr(expr.Operand)
	case *gql.ListConstructor:
		for _, el := range expr.Elements {
			ev.expr(el)
		}
	case *gql.RecordConstructor:
		for _, f := range expr.Fields {
			ev.expr(f.Value)
		}
	case *gql.PathConstructor:
		for _, el := range expr.Elements {
			ev.expr(el)
		}
	case *gql.IsPredicate:
		ev.expr(expr.Operand)

		if expr.Check == gql.IsCheckNormalized {
			ev.checkNormalized(expr)
		}
	case *gql.IsTypedPredicate:
		ev.expr(expr.Operand)
	case *gql.IsLabeledPredicate:
		ev.expr(expr.Operand)
	case *gql.IsSourceOrDestinationPredicate:
		ev.expr(expr.Operand)
		ev.expr(expr.Of)
	case *gql.IsDirectedPredicate:
		ev.expr(expr.Operand)
	case *gql.ExistsExpr:
		if expr.Query != nil {
			ev.clauses(expr.Query.Clauses)
		}
	case *gql.SubqueryExpr:
		ev.query(expr.Query)
		ev.checkScalarSubquery(expr)
	}
}

// checkNormalized validates IS [NOT] NORMALIZED's operand: statically it
// must be string-typed (or unknown). A literal string operand's Unicode
// NFC normalization status is known at analysis time, so the check against
// it is redundant for every caller regardless of input: flag it rather
// than silently accepting a predicate whose outcome never varies.
func (ev *exprValidator) checkNormalized(expr *gql.IsPredicate) {
	t, ok := ev.table[expr.Operand.Span()]
	if ok && !isUnknown(t) && !isStringFamily(t) {
		ev.diags = append(ev.diags, gql.Diagnostic{
			Code:        gql.CodeTypeMismatch,
			Severity:    gql.SeverityError,
			Message:     "IS NORMALIZED requires a string operand",
			PrimarySpan: expr.Span(),
		})

		return
	}

	if lit, ok := expr.Operand.(*gql.Literal); ok && lit.Kind == gql.LiteralString {
		normalized := norm.NFC.IsNormalString(lit.Text)
		result := normalized != expr.Not

		ev.diags = append(ev.diags, gql.Diagnostic{
			Code:        gql.CodeRedundantNormalized,
			Severity:    gql.SeverityInfo,
			Message:     fmt.Sprintf("IS [NOT] NORMALIZED on a string literal always evaluates to %t", result),
			PrimarySpan: expr.Span(),
		})
	}
}

// checkScalarSubquery requires a subquery used in expression position to
// project exactly one column: its terminal clause must be a non-star
// RETURN with a single item (spec §4.9).
func (ev *exprValidator) checkScalarSubquery(expr *gql.SubqueryExpr) {
	term := terminalClause(expr.Query)

	ret, ok := term.(*gql.ReturnClause)
	if !ok {
		ev.diags = append(ev.diags, gql.Diagnostic{
			Code:        gql.CodeNonScalarSubquery,
			Severity:    gql.SeverityError,
			Message:     "subquery used as an expression must terminate in RETURN",
			PrimarySpan: expr.Span(),
		})

		return
	}

	if ret.Star || len(ret.Items) != 1 {
		ev.diags = append(ev.diags, gql.Diagnostic{
			Code:        gql.CodeNonScalarSubquery,
			Severity:    gql.SeverityError,
			Message:     "subquery used as an expression must return exactly one column",
			PrimarySpan: expr.Span(),
		})
	}
}

func terminalClause(q gql.Query) gql.Clause {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		return qq.TerminalClause()
	case *gql.ParenthesizedQuery:
		return terminalClause(qq.Inner)
	case *gql.CompositeQuery:
		return terminalClause(qq.Right)
	default:
		return nil
	}
}
