package analysis

import (
	"github.com/rlch/gqlcore"
)

// BuildSymbolTable runs Pass 1 (spec §4.3): a single statement-ordered
// traversal that declares every pattern variable, LET/FOR binding,
// CALL...YIELD alias, session parameter, and opens the nested scopes that
// later passes descend into via Scope.ChildScope.
func BuildSymbolTable(prog *gql.Program) (*Scope, []gql.Diagnostic) {
	b := &symtabBuilder{root: NewScope(nil)}

	for _, stmt := range prog.Statements {
		b.statement(stmt, b.root)
	}

	return b.root, b.diags
}

type symtabBuilder struct {
	root  *Scope
	diags []gql.Diagnostic
}

func (b *symtabBuilder) declareOrUse(scope *Scope, name string, kind SymbolKind, span gql.Span, declaring gql.Node, typ gql.Type) {
	if name == "" {
		return
	}

	if _, exists := scope.LocalLookup(name); exists {
		return
	}

	scope.Declare(&SymbolInfo{
		Name:            name,
		Kind:            kind,
		DeclarationSpan: span,
		DeclaringClause: declaring,
		Type:            typ,
	})
}

func (b *symtabBuilder) statement(stmt gql.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		b.query(s.Query, scope)
	case *gql.DataModificationStatement:
		b.clauses(s.Clauses, scope)
	case *gql.SessionStatement:
		for _, c := range s.Clauses {
			if c.Kind == gql.SessionSetParameter {
				b.declareOrUse(scope, c.Name, SymbolParameter, c.Span(), c, nil)
			}
		}
	case *gql.TransactionStatement, *gql.CatalogStatement:
		// No declarations.
	}
}

func (b *symtabBuilder) query(q gql.Query, scope *Scope) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		b.clauses(qq.Clauses, scope)
	case *gql.CompositeQuery:
		left := scope.NewChild(qq.Left)
		b.query(qq.Left, left)

		right := scope.NewChild(qq.Right)
		b.query(qq.Right, right)
	case *gql.ParenthesizedQuery:
		inner := scope.NewChild(qq)
		b.query(qq.Inner, inner)
	}
}

func (b *symtabBuilder) clauses(clauses []gql.Clause, scope *Scope) {
	for _, c := range clauses {
		b.clause(c, scope)
	}
}

func (b *symtabBuilder) clause(c gql.Clause, scope *Scope) {
	switch cl := c.(type) {
	case *gql.MatchClause:
		b.pattern(cl.Pattern, scope)
	case *gql.OptionalMatchClause:
		b.pattern(cl.Pattern, scope)

		if cl.Block != nil {
			b.clauses(cl.Block.Clauses, scope)
		}
	case *gql.FilterClause:
		b.scanExprScopes(cl.Condition, scope)
	case *gql.OrderByPageClause:
		for _, item := range cl.OrderBy {
			b.scanExprScopes(item.Expr, scope)
		}

		b.scanExprScopes(cl.Skip, scope)
		b.scanExprScopes(cl.Limit, scope)
	case *gql.SelectClause:
		for _, item := range cl.Items {
			b.scanExprScopes(item.Expr, scope)
		}

		b.scanExprScopes(cl.From, scope)
	case *gql.SetClause:
		for _, item := range cl.Items {
			b.scanExprScopes(item.Value, scope)
		}
	case *gql.RemoveClause:
		for _, item := range cl.Items {
			b.scanExprScopes(item.Target, scope)
		}
	case *gql.DeleteClause, *gql.FinishClause:
		// No expressions to scan.
	case *gql.ReturnClause:
		for _, item := range cl.Items {
			b.scanExprScopes(item.Expr, scope)
		}

		for _, g := range cl.GroupBy {
			b.scanExprScopes(g, scope)
		}
	case *gql.LetClause:
		for _, binding := range cl.Bindings {
			b.scanExprScopes(binding.Value, scope)

			scope.Put(&SymbolInfo{
				Name:            binding.Name,
				Kind:            SymbolLetBinding,
				DeclarationSpan: binding.Span(),
				DeclaringClause: cl,
			})
		}
	case *gql.ForClause:
		b.scanExprScopes(cl.Source, scope)
		b.declareOrUse(scope, cl.Variable, SymbolForBinding, cl.Span(), cl, nil)

		if cl.Ordinality != "" {
			b.declareOrUse(scope, cl.Ordinality, SymbolForBinding, cl.Span(), cl, intType())
		}

		if cl.Offset != "" {
			b.declareOrUse(scope, cl.Offset, SymbolForBinding, cl.Span(), cl, intType())
		}
	case *gql.CallClause:
		b.callClause(cl, scope)
	case *gql.InsertClause:
		b.pattern(cl.Pattern, scope)
	}
}

// scanExprScopes finds EXISTS/subquery expressions anywhere inside e and
// opens the nested scopes passes 2 and 3 will descend into, recursing into
// their pattern/query contents so scopes nest correctly to arbitrary depth.
func (b *symtabBuilder) scanExprScopes(e gql.Expression, scope *Scope) {
	if e == nil {
		return
	}

	gql.Walk(e, gql.VisitorFunc(func(n gql.Node) bool {
		switch node := n.(type) {
		case *gql.ExistsExpr:
			inner := scope.NewChild(node)

			if node.Pattern != nil {
				b.pattern(node.Pattern, inner)
			}

			if node.Query != nil {
				b.clauses(node.Query.Clauses, inner)
			}

			return false
		case *gql.SubqueryExpr:
			inner := scope.NewChild(node)
			b.query(node.Query, inner)

			return false
		default:
			return true
		}
	}))
}

func (b *symtabBuilder) callClause(cl *gql.CallClause, scope *Scope) {
	if cl.Procedure != nil {
		for _, arg := range cl.Procedure.Args {
			b.scanExprScopes(arg, scope)
		}

		seen := make(map[string]bool, len(cl.Procedure.Yield))

		for _, y := range cl.Procedure.Yield {
			name := y.Alias
			if name == "" {
				name = y.Name
			}

			if seen[name] {
				b.diags = append(b.diags, gql.Diagnostic{
					Code:        gql.CodeDuplicateYieldAlias,
					Severity:    gql.SeverityError,
					Message:     "duplicate YIELD alias: " + name,
					PrimarySpan: y.Span(),
				})

				continue
			}

			seen[name] = true
			b.declareOrUse(scope, name, SymbolCallYield, y.Span(), cl, nil)
		}
	}

	if cl.Inline != nil {
		inner := scope.NewChild(cl)

		for _, name := range cl.Imported {
			info := &SymbolInfo{Name: name, Kind: SymbolCallYield, DeclaringClause: cl}

			if outer, _, ok := scope.Resolve(name); ok {
				info = &SymbolInfo{
					Name:            name,
					Kind:            outer.Kind,
					DeclarationSpan: outer.DeclarationSpan,
					DeclaringClause: outer.DeclaringClause,
					Type:            outer.Type,
				}
			}

			inner.Put(info)
		}

		b.clauses(cl.Inline.Clauses, inner)
	}
}

func (b *symtabBuilder) pattern(p *gql.GraphPattern, scope *Scope) {
	if p == nil {
		return
	}

	for _, path := range p.Paths {
		b.path(path, scope)
	}
}

func (b *symtabBuilder) path(path *gql.PathPattern, scope *Scope) {
	if path.Variable != "" {
		b.declareOrUse(scope, path.Variable, SymbolPathVariable, path.Span(), path, pathType())
	}

	for _, el := range path.Elements {
		switch e := el.(type) {
		case *gql.NodePattern:
			b.declareOrUse(scope, e.Variable, SymbolNodeVariable, e.Span(), e, nodeRefType())
			b.scanPropertiesAndPredicate(e.Properties, e.Predicate, scope)
		case *gql.EdgePattern:
			b.declareOrUse(scope, e.Variable, SymbolEdgeVariable, e.Span(), e, edgeRefType())
			b.scanPropertiesAndPredicate(e.Properties, e.Predicate, scope)
		}
	}
}

func (b *symtabBuilder) scanPropertiesAndPredicate(props *gql.PropertyMap, predicate gql.Expression, scope *Scope) {
	if props != nil {
		for _, entry := range props.Entries {
			b.scanExprScopes(entry.Value, scope)
		}
	}

	b.scanExprScopes(predicate, scope)
}

func nodeRefType() gql.Type { return &gql.NodeRefType{} }
func edgeRefType() gql.Type { return &gql.EdgeRefType{} }
func pathType() gql.Type    { return &gql.PathType{} }
func intType() gql.Type     { return &gql.NumericType{Kind: gql.NumericInteger} }
