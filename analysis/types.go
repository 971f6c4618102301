package analysis

import (
	"strings"

	"github.com/rlch/gqlcore"
)

// TypeTable maps an expression's span to its inferred Type (spec §3.4):
// write-once, queryable, and complete enough that every expression maps to
// at least gql.UnknownType.
type TypeTable map[gql.Span]gql.Type

// builtinFunctions is the built-in scalar function return-type table
// (spec §4.4 "the built-in table"), looked up case-insensitively. This is
// intentionally small: it covers the string/numeric helpers a core would
// ship without a catalog, not a full standard library.
var builtinFunctions = map[string]gql.Type{
	"UPPER":      &gql.StringType{Kind: gql.StringVarChar},
	"LOWER":      &gql.StringType{Kind: gql.StringVarChar},
	"TRIM":       &gql.StringType{Kind: gql.StringVarChar},
	"CHAR_LENGTH": &gql.NumericType{Kind: gql.NumericInteger},
	"SIZE":       &gql.NumericType{Kind: gql.NumericInteger},
	"ABS":        &gql.NumericType{Kind: gql.NumericFloat},
}

// InferTypes runs Pass 2 (spec §4.4): bottom-up type inference over every
// expression in prog, writing each result into the returned TypeTable keyed
// by expression span.
func InferTypes(prog *gql.Program, root *Scope, cfg gql.Config) (TypeTable, []gql.Diagnostic) {
	inf := &inferer{table: make(TypeTable), cfg: cfg}

	for _, stmt := range prog.Statements {
		inf.statement(stmt, root)
	}

	return inf.table, inf.diags
}

type inferer struct {
	table TypeTable
	cfg   gql.Config
	diags []gql.Diagnostic
}

func (inf *inferer) statement(stmt gql.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		inf.query(s.Query, scope)
	case *gql.DataModificationStatement:
		inf.clauses(s.Clauses, scope)
	case *gql.SessionStatement:
		for _, c := range s.Clauses {
			inf.expr(c.Value, scope)
		}
	}
}

func (inf *inferer) query(q gql.Query, scope *Scope) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		inf.clauses(qq.Clauses, scope)
	case *gql.CompositeQuery:
		inf.query(qq.Left, scope.ChildScope(qq.Left))
		inf.query(qq.Right, scope.ChildScope(qq.Right))
	case *gql.ParenthesizedQuery:
		inf.query(qq.Inner, scope.ChildScope(qq))
	}
}

func (inf *inferer) clauses(clauses []gql.Clause, scope *Scope) {
	for _, c := range clauses {
		inf.clause(c, scope)
	}
}

func (inf *inferer) clause(c gql.Clause, scope *Scope) {
	switch cl := c.(type) {
	case *gql.MatchClause:
		inf.pattern(cl.Pattern, scope)
	case *gql.OptionalMatchClause:
		inf.pattern(cl.Pattern, scope)

		if cl.Block != nil {
			inf.clauses(cl.Block.Clauses, scope)
		}
	case *gql.FilterClause:
		inf.expr(cl.Condition, scope)
	case *gql.OrderByPageClause:
		for _, item := range cl.OrderBy {
			inf.expr(item.Expr, scope)
		}

		inf.expr(cl.Skip, scope)
		inf.expr(cl.Limit, scope)
	case *gql.SelectClause:
		for _, item := range cl.Items {
			inf.expr(item.Expr, scope)
		}

		inf.expr(cl.From, scope)
	case *gql.LetClause:
		for _, b := range cl.Bindings {
			inf.expr(b.Value, scope)

			if typ, ok := inf.table[b.Value.Span()]; ok {
				if info, _, found := scope.Resolve(b.Name); found && info.DeclaringClause == cl {
					info.Type = typ
				}
			}
		}
	case *gql.ForClause:
		inf.expr(cl.Source, scope)
	case *gql.CallClause:
		if cl.Procedure != nil {
			for _, a := range cl.Procedure.Args {
				inf.expr(a, scope)
			}
		}

		if cl.Inline != nil {
			inf.clauses(cl.Inline.Clauses, scope.ChildScope(cl))
		}
	case *gql.InsertClause:
		inf.pattern(cl.Pattern, scope)
	case *gql.SetClause:
		for _, item := range cl.Items {
			inf.expr(item.Value, scope)
		}
	case *gql.RemoveClause:
		for _, item := range cl.Items {
			inf.expr(item.Target, scope)
		}
	case *gql.ReturnClause:
		for _, item := range cl.Items {
			inf.expr(item.Expr, scope)
		}

		for _, g := range cl.GroupBy {
			inf.expr(g, scope)
		}
	case *gql.DeleteClause, *gql.FinishClause:
		// No expressions.
	}
}

func (inf *inferer) pattern(p *gql.GraphPattern, scope *Scope) {
	if p == nil {
		return
	}

	for _, path := range p.Paths {
		for _, el := range path.Elements {
			switch e := el.(type) {
			case *gql.NodePattern:
				inf.expr(e.Predicate, scope)
				inf.propertyMap(e.Properties, scope)
			case *gql.EdgePattern:
				inf.expr(e.Predicate, scope)
				inf.propertyMap(e.Properties, scope)
			}
		}
	}
}

func (inf *inferer) propertyMap(m *gql.PropertyMap, scope *Scope) {
	if m == nil {
		return
	}

	for _, entry := range m.Entries {
		inf.expr(entry.Value, scope)
	}
}

// expr infers e's type bottom-up, memoizing into inf.table, and returns it.
func (inf *inferer) expr(e gql.Expression, scope *Scope) gql.Type {
	if e == nil {
		return nil
	}

	if typ, ok := inf.table[e.Span()]; ok {
		return typ
	}

	typ := inf.inferExpr(e, scope)
	inf.table[e.Span()] = typ

	return typ
}

func (inf *inferer) inferExpr(e gql.Expression, scope *Scope) gql.Type {
	switch expr := e.(type) {
	case *gql.Literal:
		return literalType(expr.Kind)
	case *gql.ParameterRef:
		return &gql.UnknownType{}
	case *gql.VariableRef:
		if info, _, ok := scope.Resolve(expr.Name); ok && info.Type != nil {
			return info.Type
		}

		return &gql.UnknownType{}
	case *gql.PropertyAccess:
		inf.expr(expr.Target, scope)

		return &gql.UnknownType{}
	case *gql.Subscript:
		target := inf.expr(expr.Target, scope)
		inf.expr(expr.Index, scope)

		if list, ok := target.(*gql.ListType); ok {
			return list.Element
		}

		return &gql.UnknownType{}
	case *gql.UnaryOp:
		return inf.expr(expr.Operand, scope)
	case *gql.BinaryOp:
		return inf.binaryOp(expr, scope)
	case *gql.FunctionCall:
		for _, a := range expr.Args {
			inf.expr(a, scope)
		}

		if typ, ok := builtinFunctions[strings.ToUpper(expr.Name)]; ok {
			return typ
		}

		return &gql.UnknownType{}
	case *gql.AggregateCall:
		return inf.aggregateCall(expr, scope)
	case *gql.CaseExpr:
		return inf.caseExpr(expr, scope)
	case *gql.CastExpr:
		inf.expr(expr.Operand, scope)

		return expr.Target
	case *gql.ListConstructor:
		var elem gql.Type = &gql.EmptyType{}

		for _, el := range expr.Elements {
			elem = inf.expr(el, scope)
		}

		return &gql.ListType{Element: elem}
	case *gql.RecordConstructor:
		fields := make([]*gql.RecordTypeField, 0, len(expr.Fields))

		for _, f := range expr.Fields {
			fields = append(fields, &gql.RecordTypeField{Name: f.Name, Type: inf.expr(f.Value, scope)})
		}

		return &gql.RecordType{Fields: fields}
	case *gql.PathConstructor:
		for _, el := range expr.Elements {
			inf.expr(el, scope)
		}

		return &gql.PathType{}
	case *gql.IsPredicate, *gql.IsTypedPredicate, *gql.IsLabeledPredicate,
		*gql.IsSourceOrDestinationPredicate, *gql.IsDirectedPredicate:
		inf.isPredicateOperands(e, scope)

		return &gql.BooleanType{}
	case *gql.ExistsExpr:
		inner := scope.ChildScope(expr)

		if expr.Pattern != nil {
			inf.pattern(expr.Pattern, inner)
		}

		if expr.Query != nil {
			inf.clauses(expr.Query.Clauses, inner)
		}

		return &gql.BooleanType{}
	case *gql.SubqueryExpr:
		inf.query(expr.Query, scope.ChildScope(expr))

		return &gql.UnknownType{}
	default:
		return &gql.UnknownType{}
	}
}

func (inf *inferer) isPredicateOperands(e gql.Expression, scope *Scope) {
	switch p := e.(type) {
	case *gql.IsPredicate:
		inf.expr(p.Operand, scope)
	case *gql.IsTypedPredicate:
		inf.expr(p.Operand, scope)
	case *gql.IsLabeledPredicate:
		inf.expr(p.Operand, scope)
	case *gql.IsSourceOrDestinationPredicate:
		inf.expr(p.Operand, scope)
		inf.expr(p.Of, scope)
	case *gql.IsDirectedPredicate:
		inf.expr(p.Operand, scope)
	}
}

func literalType(kind gql.LiteralKind) gql.Type {
	switch kind {
	case gql.LiteralInteger:
		return &gql.NumericType{Kind: gql.NumericInteger}
	case gql.LiteralFloat:
		return &gql.NumericType{Kind: gql.NumericFloat}
	case gql.LiteralString:
		return &gql.StringType{Kind: gql.StringVarChar}
	case gql.LiteralByteString:
		return &gql.StringType{Kind: gql.StringVarByte}
	case gql.LiteralBoolean:
		return &gql.BooleanType{}
	case gql.LiteralDate:
		return &gql.TemporalType{Kind: gql.TemporalDate}
	case gql.LiteralTime:
		return &gql.TemporalType{Kind: gql.TemporalTime}
	case gql.LiteralTimestamp:
		return &gql.TemporalType{Kind: gql.TemporalTimestamp}
	case gql.LiteralDuration:
		return &gql.TemporalType{Kind: gql.TemporalDuration}
	case gql.LiteralNull:
		return &gql.NullType{}
	default:
		return &gql.UnknownType{}
	}
}

func (inf *inferer) binaryOp(expr *gql.BinaryOp, scope *Scope) gql.Type {
	left := inf.expr(expr.Left, scope)
	right := inf.expr(expr.Right, scope)

	switch expr.Op {
	case "||":
		return &gql.StringType{Kind: gql.StringVarChar}
	case "=", "<>", "<", ">", "<=", ">=":
		return &gql.BooleanType{}
	case "AND", "OR", "XOR":
		return &gql.BooleanType{}
	case "/":
		return &gql.NumericType{Kind: gql.NumericFloat}
	case "+", "-", "*":
		if isNumericFamily(left) && isNumericFamily(right) {
			if numericKind(left) == gql.NumericInteger && numericKind(right) == gql.NumericInteger {
				return &gql.NumericType{Kind: gql.NumericInteger}
			}

			return &gql.NumericType{Kind: gql.NumericFloat}
		}

		return &gql.UnknownType{}
	default:
		return &gql.UnknownType{}
	}
}

func (inf *inferer) aggregateCall(expr *gql.AggregateCall, scope *Scope) gql.Type {
	var argType gql.Type = &gql.UnknownType{}
	if expr.Arg != nil {
		argType = inf.expr(expr.Arg, scope)
	}

	switch strings.ToUpper(expr.Name) {
	case "COUNT":
		return &gql.NumericType{Kind: gql.NumericInteger}
	case "AVG":
		return &gql.NumericType{Kind: gql.NumericFloat}
	case "SUM", "MIN", "MAX":
		return argType
	case "COLLECT":
		return &gql.ListType{Element: argType}
	default:
		return &gql.UnknownType{}
	}
}

func (inf *inferer) caseExpr(expr *gql.CaseExpr, scope *Scope) gql.Type {
	inf.expr(expr.Operand, scope)

	var joined gql.Type = &gql.EmptyType{}

	for _, w := range expr.Whens {
		inf.expr(w.Condition, scope)
		joined = joinTypes(joined, inf.expr(w.Result, scope))
	}

	if expr.Else != nil {
		joined = joinTypes(joined, inf.expr(expr.Else, scope))
	}

	if _, empty := joined.(*gql.EmptyType); empty {
		return &gql.UnknownType{}
	}

	return joined
}

// joinTypes returns the common super-type of a and b in the numeric/string
// lattice (spec §4.4), or gql.UnknownType when their families are disjoint.
func joinTypes(a, b gql.Type) gql.Type {
	if _, empty := a.(*gql.EmptyType); empty {
		return b
	}

	if _, empty := b.(*gql.EmptyType); empty {
		return a
	}

	if isNumericFamily(a) && isNumericFamily(b) {
		if numericKind(a) == gql.NumericInteger && numericKind(b) == gql.NumericInteger {
			return &gql.NumericType{Kind: gql.NumericInteger}
		}

		return &gql.NumericType{Kind: gql.NumericFloat}
	}

	if isStringFamily(a) && isStringFamily(b) {
		return &gql.StringType{Kind: gql.StringVarChar}
	}

	aUnknown, bUnknown := isUnknown(a), isUnknown(b)
	if aUnknown && !bUnknown {
		return b
	}

	if bUnknown && !aUnknown {
		return a
	}

	if sameTypeKind(a, b) {
		return a
	}

	return &gql.UnknownType{}
}

func isNumericFamily(t gql.Type) bool {
	_, ok := t.(*gql.NumericType)

	return ok
}

func numericKind(t gql.Type) gql.NumericKind {
	if n, ok := t.(*gql.NumericType); ok {
		return n.Kind
	}

	return gql.NumericInteger
}

func isStringFamily(t gql.Type) bool {
	_, ok := t.(*gql.StringType)

	return ok
}

func isUnknown(t gql.Type) bool {
	_, ok := t.(*gql.UnknownType)

	return ok
}

func sameTypeKind(a, b gql.Type) bool {
	switch a.(type) {
	case *gql.BooleanType:
		_, ok := b.(*gql.BooleanType)

		return ok
	case *gql.TemporalType:
		at, aok := a.(*gql.TemporalType)
		bt, bok := b.(*gql.TemporalType)

		return aok && bok && at.Kind == bt.Kind
	default:
		return false
	}
}
