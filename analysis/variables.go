package analysis

import (
	"github.com/rlch/gqlcore"
)

// ValidateVariables runs Pass 3 (spec §4.5): every use-site identifier must
// resolve against the active scope chain, with shadowing reported as a
// warning (configurable) and mutation-clause targets additionally required
// to resolve to a node or edge binding. Whether that binding comes from an
// earlier clause of the same statement is not checked.
func ValidateVariables(prog *gql.Program, root *Scope, cfg gql.Config) []gql.Diagnostic {
	v := &varValidator{cfg: cfg}

	v.checkShadowing(root)

	for _, stmt := range prog.Statements {
		v.statement(stmt, root)
	}

	return v.diags
}

type varValidator struct {
	cfg   gql.Config
	diags []gql.Diagnostic
}

func (v *varValidator) checkShadowing(scope *Scope) {
	if scope.Parent() != nil && v.cfg.WarnOnShadowing {
		for _, name := range scope.LocalNames() {
			local, _ := scope.LocalLookup(name)
			if _, _, found := scope.Parent().Resolve(name); found {
				v.diags = append(v.diags, gql.Diagnostic{
					Code:        gql.CodeVariableShadowing,
					Severity:    gql.SeverityWarning,
					Message:     "variable shadows an outer binding: " + name,
					PrimarySpan: local.DeclarationSpan,
				})
			}
		}
	}

	for _, child := range scope.children {
		v.checkShadowing(child)
	}
}

func (v *varValidator) statement(stmt gql.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		v.query(s.Query, scope)
	case *gql.DataModificationStatement:
		v.clauses(s.Clauses, scope)
	case *gql.SessionStatement:
		for _, c := range s.Clauses {
			v.expr(c.Value, scope)
		}
	}
}

func (v *varValidator) query(q gql.Query, scope *Scope) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		v.clauses(qq.Clauses, scope)
	case *gql.CompositeQuery:
		v.query(qq.Left, scope.ChildScope(qq.Left))
		v.query(qq.Right, scope.ChildScope(qq.Right))
	case *gql.ParenthesizedQuery:
		v.query(qq.Inner, scope.ChildScope(qq))
	}
}

func (v *varValidator) clauses(clauses []gql.Clause, scope *Scope) {
	// returnAliases tracks aliases introduced by a RETURN item list so a
	// following ORDER BY/OFFSET/LIMIT in the same pipeline may reference
	// them (spec §4.7: "ORDER BY expressions may reference return aliases
	// introduced by the same clause").
	var returnAliases map[string]bool

	for _, c := range clauses {
		switch cl := c.(type) {
		case *gql.ReturnClause:
			v.clause(cl, scope)

			returnAliases = make(map[string]bool, len(cl.Items))
			for _, item := range cl.Items {
				if item.Alias != "" {
					returnAliases[item.Alias] = true
				}
			}
		case *gql.OrderByPageClause:
			v.orderByPage(cl, scope, returnAliases)
		default:
			v.clause(c, scope)
		}
	}
}

func (v *varValidator) orderByPage(cl *gql.OrderByPageClause, scope *Scope, aliases map[string]bool) {
	for _, item := range cl.OrderBy {
		v.exprAllowingAliases(item.Expr, scope, aliases)
	}

	v.expr(cl.Skip, scope)
	v.expr(cl.Limit, scope)
}

func (v *varValidator) clause(c gql.Clause, scope *Scope) {
	switch cl := c.(type) {
	case *gql.MatchClause:
		v.pattern(cl.Pattern, scope)
	case *gql.OptionalMatchClause:
		v.pattern(cl.Pattern, scope)

		if cl.Block != nil {
			v.clauses(cl.Block.Clauses, scope)
		}
	case *gql.FilterClause:
		v.expr(cl.Condition, scope)
	case *gql.OrderByPageClause:
		v.orderByPage(cl, scope, nil)
	case *gql.SelectClause:
		for _, item := range cl.Items {
			v.expr(item.Expr, scope)
		}

		v.expr(cl.From, scope)
	case *gql.LetClause:
		for _, b := range cl.Bindings {
			v.expr(b.Value, scope)
		}
	case *gql.ForClause:
		v.expr(cl.Source, scope)
	case *gql.CallClause:
		v.callClause(cl, scope)
	case *gql.InsertClause:
		v.pattern(cl.Pattern, scope)
	case *gql.SetClause:
		for _, item := range cl.Items {
			v.mutationTarget(item.Target, scope)
			v.expr(item.Value, scope)
		}
	case *gql.RemoveClause:
		for _, item := range cl.Items {
			v.mutationTargetExpr(item.Target, scope)
		}
	case *gql.DeleteClause:
		for _, name := range cl.Variables {
			v.resolveGraphElement(name, cl.Span(), scope)
		}
	case *gql.ReturnClause:
		for _, item := range cl.Items {
			v.expr(item.Expr, scope)
		}

		for _, g := range cl.GroupBy {
			v.expr(g, scope)
		}
	case *gql.FinishClause:
		// Nothing to validate.
	}
}

func (v *varValidator) callClause(cl *gql.CallClause, scope *Scope) {
	if cl.Procedure != nil {
		for _, a := range cl.Procedure.Args {
			v.expr(a, scope)
		}
	}

	if cl.Inline != nil {
		inner := scope.ChildScope(cl)

		// cl.Imported names are inline-scope definitions (Pass 1 puts them
		// into inner unconditionally), not outer-scope references: an
		// import name unused outside warrants no diagnostic here.
		v.clauses(cl.Inline.Clauses, inner)
	}
}

// mutationTarget validates a SET item's target, which assigns either a
// property (Target set) or a label (AddLabel set, Target still names the
// graph-element variable carrying it).
func (v *varValidator) mutationTarget(target *gql.PropertyAccess, scope *Scope) {
	if target == nil {
		return
	}

	v.mutationTargetExpr(target.Target, scope)
}

// mutationTargetExpr resolves the graph-element variable a SET/REMOVE
// target expression is rooted at, walking through property access/
// subscript chains to the underlying VariableRef.
func (v *varValidator) mutationTargetExpr(e gql.Expression, scope *Scope) {
	switch expr := e.(type) {
	case *gql.VariableRef:
		v.resolveGraphElement(expr.Name, expr.Span(), scope)
	case *gql.PropertyAccess:
		v.mutationTargetExpr(expr.Target, scope)
	case *gql.Subscript:
		v.mutationTargetExpr(expr.Target, scope)
	default:
		v.expr(e, scope)
	}
}

func (v *varValidator) resolveGraphElement(name string, span gql.Span, scope *Scope) {
	info, _, ok := scope.Resolve(name)
	if !ok {
		v.diags = append(v.diags, gql.Diagnostic{
			Code:        gql.CodeUndefinedVariable,
			Severity:    gql.SeverityError,
			Message:     "undefined variable: " + name,
			PrimarySpan: span,
		})

		return
	}

	if info.Kind != SymbolNodeVariable && info.Kind != SymbolEdgeVariable {
		v.diags = append(v.diags, gql.Diagnostic{
			Code:        gql.CodeUndefinedVariable,
			Severity:    gql.SeverityError,
			Message:     "mutation target is not a graph-element binding: " + name,
			PrimarySpan: span,
		})
	}
}

func (v *varValidator) pattern(p *gql.GraphPattern, scope *Scope) {
	if p == nil {
		return
	}

	for _, path := range p.Paths {
		for _, el := range path.Elements {
			switch e := el.(type) {
			case *gql.NodePattern:
				v.expr(e.Predicate, scope)
				v.propertyMap(e.Properties, scope)
			case *gql.EdgePattern:
				v.expr(e.Predicate, scope)
				v.propertyMap(e.Properties, scope)
			}
		}
	}
}

func (v *varValidator) propertyMap(m *gql.PropertyMap, scope *Scope) {
	if m == nil {
		return
	}

	for _, entry := range m.Entries {
		v.expr(entry.Value, scope)
	}
}

// exprAllowingAliases validates e, treating any bare VariableRef whose name
// is in aliases as resolved even if the scope chain doesn't declare it
// (spec §4.7's ORDER BY/return-alias exception).
func (v *varValidator) exprAllowingAliases(e gql.Expression, scope *Scope, aliases map[string]bool) {
	if ref, ok := e.(*gql.VariableRef); ok && aliases[ref.Name] {
		return
	}

	v.expr(e, scope)
}

func (v *varValidator) expr(e gql.Expression, scope *Scope) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *gql.VariableRef:
		if _, _, ok := scope.Resolve(expr.Name); !ok {
			v.diags = append(v.diags, gql.Diagnostic{
				Code:        gql.CodeUndefinedVariable,
				Severity:    gql.SeverityError,
				Message:     "undefined variable: " + expr.Name,
				PrimarySpan: expr.Span(),
			})
		}
	case *gql.PropertyAccess:
		v.expr(expr.Target, scope)
	case *gql.Subscript:
		v.expr(expr.Target, scope)
		v.expr(expr.Index, scope)
	case *gql.UnaryOp:
		v.expr(expr.Operand, scope)
	case *gql.BinaryOp:
		v.expr(expr.Left, scope)
		v.expr(expr.Right, scope)
	case *gql.FunctionCall:
		for _, a := range expr.Args {
			v.expr(a, scope)
		}
	case *gql.AggregateCall:
		v.expr(expr.Arg, scope)
	case *gql.CaseExpr:
		v.expr(expr.Operand, scope)

		for _, w := range expr.Whens {
			v.expr(w.Condition, scope)
			v.expr(w.Result, scope)
		}

		v.expr(expr.Else, scope)
	case *gql.CastExpr:
		v.expr(expr.Operand, scope)
	case *gql.ListConstructor:
		for _, el := range expr.Elements {
			v.expr(el, scope)
		}
	case *gql.RecordConstructor:
		for _, f := range expr.Fields {
			v.expr(f.Value, scope)
		}
	case *gql.PathConstructor:
		for _, el := range expr.Elements {
			v.expr(el, scope)
		}
	case *gql.IsPredicate:
		v.expr(expr.Operand, scope)
	case *gql.IsTypedPredicate:
		v.expr(expr.Operand, scope)
	case *gql.IsLabeledPredicate:
		v.expr(expr.Operand, scope)
	case *gql.IsSourceOrDestinationPredicate:
		v.expr(expr.Operand, scope)
		v.expr(expr.Of, scope)
	case *gql.IsDirectedPredicate:
		v.expr(expr.Operand, scope)
	case *gql.ExistsExpr:
		inner := scope.ChildScope(expr)

		if expr.Pattern != nil {
			v.pattern(expr.Pattern, inner)
		}

		if expr.Query != nil {
			v.clauses(expr.Query.Clauses, inner)
		}
	case *gql.SubqueryExpr:
		v.query(expr.Query, scope.ChildScope(expr))
	}
}
