package analysis

import (
	"github.com/rlch/gqlcore"
)

// ValidateContext runs Pass 5 (spec §4.7): checks that clauses compose into
// a legal pipeline (data-modifying clauses only inside a data-modifying
// statement, RETURN/FINISH only as the last clause of their pipeline) and
// that RETURN projections respect aggregation rules. SELECT items are not
// checked for aggregation or nested aggregates.
func ValidateContext(prog *gql.Program, cfg gql.Config) []gql.Diagnostic {
	c := &contextValidator{cfg: cfg}

	for _, stmt := range prog.Statements {
		c.statement(stmt)
	}

	return c.diags
}

type contextValidator struct {
	cfg   gql.Config
	diags []gql.Diagnostic
}

func (c *contextValidator) statement(stmt gql.Statement) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		c.query(s.Query, false)
	case *gql.DataModificationStatement:
		c.clauses(s.Clauses, true)
	}
}

func (c *contextValidator) query(q gql.Query, dataModifying bool) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		c.clauses(qq.Clauses, dataModifying)
	case *gql.CompositeQuery:
		c.query(qq.Left, dataModifying)
		c.query(qq.Right, dataModifying)
	case *gql.ParenthesizedQuery:
		c.query(qq.Inner, dataModifying)
	}
}

// clauses validates one linear pipeline's clause sequence: a data-modifying
// clause (INSERT/SET/REMOVE/DELETE) is only legal when dataModifying is
// true, and RETURN/FINISH may only appear as the pipeline's last clause.
func (c *contextValidator) clauses(clauses []gql.Clause, dataModifying bool) {
	for i, cl := range clauses {
		switch clause := cl.(type) {
		case *gql.InsertClause, *gql.SetClause, *gql.RemoveClause, *gql.DeleteClause:
			if !dataModifying {
				c.diags = append(c.diags, gql.Diagnostic{
					Code:        gql.CodeIllegalClausePlace,
					Severity:    gql.SeverityError,
					Message:     "data-modifying clause is not legal in a read-only query",
					PrimarySpan: cl.Span(),
				})
			}
		case *gql.ReturnClause, *gql.FinishClause:
			if i != len(clauses)-1 {
				c.diags = append(c.diags, gql.Diagnostic{
					Code:        gql.CodeIllegalClausePlace,
					Severity:    gql.SeverityError,
					Message:     "RETURN/FINISH must be the last clause of its pipeline",
					PrimarySpan: cl.Span(),
				})
			}

			if rc, ok := clause.(*gql.ReturnClause); ok {
				c.aggregation(rc)
			}
		case *gql.OptionalMatchClause:
			if clause.Block != nil {
				c.clauses(clause.Block.Clauses, dataModifying)
			}
		case *gql.CallClause:
			if clause.Inline != nil {
				c.clauses(clause.Inline.Clauses, dataModifying)
			}
		}
	}
}

// aggregation validates spec §4.7's rule: once a RETURN clause aggregates
// (GROUP BY present, or any item calls an aggregate function), every
// non-aggregate item must reference a GROUP BY key (violations are reported
// only in strict mode), and no aggregate call may nest inside another.
func (c *contextValidator) aggregation(cl *gql.ReturnClause) {
	aggregating := len(cl.GroupBy) > 0

	if !aggregating {
		for _, item := range cl.Items {
			if containsAggregate(item.Expr) {
				aggregating = true

				break
			}
		}
	}

	for _, item := range cl.Items {
		c.checkNestedAggregate(item.Expr)
	}

	if !aggregating {
		return
	}

	groupKeys := make(map[string]bool, len(cl.GroupBy))

	for _, g := range cl.GroupBy {
		if key, ok := exprKey(g); ok {
			groupKeys[key] = true
		}
	}

	for _, item := range cl.Items {
		if containsAggregate(item.Expr) {
			continue
		}

		if key, ok := exprKey(item.Expr); ok && groupKeys[key] {
			continue
		}

		if c.cfg.StrictMode {
			c.diags = append(c.diags, gql.Diagnostic{
				Code:        gql.CodeAggregationMismatch,
				Severity:    gql.SeverityError,
				Message:     "return item is neither aggregated nor a GROUP BY key",
				PrimarySpan: item.Span(),
			})
		}
	}
}

// containsAggregate reports whether e calls an aggregate function anywhere
// in its subtree.
func containsAggregate(e gql.Expression) bool {
	if e == nil {
		return false
	}

	found := false

	gql.Walk(e, gql.VisitorFunc(func(n gql.Node) bool {
		if _, ok := n.(*gql.AggregateCall); ok {
			found = true
		}

		return true
	}))

	return found
}

// checkNestedAggregate emits NESTED_AGGREGATE for every AggregateCall found
// anywhere inside e whose own Arg subtree contains another AggregateCall.
func (c *contextValidator) checkNestedAggregate(e gql.Expression) {
	if e == nil {
		return
	}

	gql.Walk(e, gql.VisitorFunc(func(n gql.Node) bool {
		agg, ok := n.(*gql.AggregateCall)
		if !ok {
			return true
		}

		if containsAggregate(agg.Arg) {
			c.diags = append(c.diags, gql.Diagnostic{
				Code:        gql.CodeNestedAggregate,
				Severity:    gql.SeverityError,
				Message:     "aggregate function calls may not nest",
				PrimarySpan: agg.Span(),
			})
		}

		return true
	}))
}

// exprKey renders a restricted, structurally-comparable key for expressions
// that may legally appear as a GROUP BY key: bare variable references and
// property-access chains rooted at one. Any other expression shape returns
// ok=false, since GROUP BY reference matching for arbitrary expressions
// would require full expression equality the AST does not otherwise need.
func exprKey(e gql.Expression) (string, bool) {
	switch expr := e.(type) {
	case *gql.VariableRef:
		return expr.Name, true
	case *gql.PropertyAccess:
		base, ok := exprKey(expr.Target)
		if !ok {
			return "", false
		}

		return base + "." + expr.Property, true
	default:
		return "", false
	}
}
