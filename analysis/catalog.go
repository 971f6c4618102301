package analysis

import (
	"fmt"

	"github.com/rlch/gqlcore"
)

// PropertyDef describes a property's declared type (spec §6.3).
type PropertyDef struct {
	Name     string
	Type     gql.Type
	Nullable bool
}

// LabelDef describes a node or edge label's property set (spec §6.3).
type LabelDef struct {
	Name       string
	Properties map[string]*PropertyDef
}

// GraphDef and SchemaDef are opaque catalog entries: their presence is all
// reference validation needs (spec §6.4).
type GraphDef struct{ Name string }
type SchemaDef struct{ Name string }

// ProcedureArgDef describes one declared CALL procedure argument.
type ProcedureArgDef struct {
	Name string
	Type gql.Type
}

// ProcedureYieldDef describes one named/typed field a procedure yields.
type ProcedureYieldDef struct {
	Name string
	Type gql.Type
}

// ProcedureDef declares a CALL target's signature (spec §6.4): its
// argument list (with a variadic flag for an open-ended final argument),
// the fields it yields, and whether it belongs in a data-modifying
// pipeline.
type ProcedureDef struct {
	Name     string
	Args     []ProcedureArgDef
	Variadic bool
	Yields   []ProcedureYieldDef
	Mutates  bool
}

// Schema is the external label/property lookup collaborator Pass 9
// consumes (spec §6.3). A nil Schema suppresses the pass entirely.
type Schema interface {
	GetNodeLabel(name string) (*LabelDef, bool)
	GetEdgeLabel(name string) (*LabelDef, bool)
	GetProperty(label, name string) (*PropertyDef, bool)
}

// Catalog is the external graph/schema/procedure lookup collaborator
// Pass 8 consumes (spec §6.4). A nil Catalog suppresses the pass entirely.
type Catalog interface {
	GetGraph(name string) (*GraphDef, bool)
	GetSchema(name string) (*SchemaDef, bool)
	GetProcedure(name string) (*ProcedureDef, bool)
}

// ValidateReferences runs passes 8-9 (spec §4.10): every label, property,
// graph/schema reference, and procedure call is checked against the
// supplied collaborators, each independently optional.
func ValidateReferences(prog *gql.Program, schema Schema, catalog Catalog) []gql.Diagnostic {
	if schema == nil && catalog == nil {
		return nil
	}

	r := &refValidator{schema: schema, catalog: catalog}

	for _, stmt := range prog.Statements {
		r.statement(stmt)
	}

	return r.diags
}

type refValidator struct {
	schema  Schema
	catalog Catalog
	diags   []gql.Diagnostic
}

func (r *refValidator) statement(stmt gql.Statement) {
	switch s := stmt.(type) {
	case *gql.QueryStatement:
		r.query(s.Query)
	case *gql.DataModificationStatement:
		r.clauses(s.Clauses)
	case *gql.SessionStatement:
		if r.catalog == nil {
			return
		}

		for _, c := range s.Clauses {
			switch c.Kind {
			case gql.SessionSetGraph:
				if _, ok := r.catalog.GetGraph(c.Name); !ok {
					r.diags = append(r.diags, gql.Diagnostic{
						Code:        gql.CodeUnknownGraph,
						Severity:    gql.SeverityError,
						Message:     "unknown graph: " + c.Name,
						PrimarySpan: c.Span(),
					})
				}
			case gql.SessionSetSchema:
				if _, ok := r.catalog.GetSchema(c.Name); !ok {
					r.diags = append(r.diags, gql.Diagnostic{
						Code:        gql.CodeUnknownSchema,
						Severity:    gql.SeverityError,
						Message:     "unknown schema: " + c.Name,
						PrimarySpan: c.Span(),
					})
				}
			}
		}
	}
}

func (r *refValidator) query(q gql.Query) {
	switch qq := q.(type) {
	case *gql.LinearQuery:
		r.clauses(qq.Clauses)
	case *gql.CompositeQuery:
		r.query(qq.Left)
		r.query(qq.Right)
	case *gql.ParenthesizedQuery:
		r.query(qq.Inner)
	}
}

func (r *refValidator) clauses(clauses []gql.Clause) {
	for _, c := range clauses {
		r.clause(c)
	}
}

func (r *refValidator) clause(c gql.Clause) {
	switch cl := c.(type) {
	case *gql.MatchClause:
		r.pattern(cl.Pattern)
	case *gql.OptionalMatchClause:
		r.pattern(cl.Pattern)

		if cl.Block != nil {
			r.clauses(cl.Block.Clauses)
		}
	case *gql.InsertClause:
		r.pattern(cl.Pattern)
	case *gql.CallClause:
		r.callClause(cl)
	case *gql.FilterClause:
		r.expr(cl.Condition)
	case *gql.ReturnClause:
		for _, item := range cl.Items {
			r.expr(item.Expr)
		}
	case *gql.SetClause:
		for _, item := range cl.Items {
			r.expr(item.Value)
		}
	}
}

func (r *refValidator) callClause(cl *gql.CallClause) {
	if cl.Inline != nil {
		r.clauses(cl.Inline.Clauses)
	}

	if cl.Procedure == nil || r.catalog == nil {
		return
	}

	proc, ok := r.catalog.GetProcedure(cl.Procedure.Name)
	if !ok {
		r.diags = append(r.diags, gql.Diagnostic{
			Code:        gql.CodeUnknownProcedure,
			Severity:    gql.SeverityError,
			Message:     "unknown procedure: " + cl.Procedure.Name,
			PrimarySpan: cl.Span(),
		})

		return
	}

	n := len(cl.Procedure.Args)
	min := len(proc.Args)

	if (!proc.Variadic && n != min) || (proc.Variadic && n < min) {
		r.diags = append(r.diags, gql.Diagnostic{
			Code:        gql.CodeProcedureArityError,
			Severity:    gql.SeverityError,
			Message:     fmt.Sprintf("procedure %s expects %d argument(s), got %d", proc.Name, min, n),
			PrimarySpan: cl.Span(),
		})
	}

	for _, a := range cl.Procedure.Args {
		r.expr(a)
	}
}

func (r *refValidator) pattern(p *gql.GraphPattern) {
	if p == nil {
		return
	}

	for _, path := range p.Paths {
		for _, el := range path.Elements {
			switch e := el.(type) {
			case *gql.NodePattern:
				r.checkLabels(e.Labels, false)
				r.propertyMap(e.Properties)
				r.expr(e.Predicate)
			case *gql.EdgePattern:
				r.checkLabels(e.Labels, true)
				r.propertyMap(e.Properties)
				r.expr(e.Predicate)
			}
		}
	}
}

func (r *refValidator) propertyMap(m *gql.PropertyMap) {
	if m == nil {
		return
	}

	for _, entry := range m.Entries {
		r.checkProperty(entry.Key, entry.Span())
		r.expr(entry.Value)
	}
}

func (r *refValidator) checkLabels(expr gql.LabelExpression, isEdge bool) {
	if expr == nil || r.schema == nil {
		return
	}

	switch e := expr.(type) {
	case *gql.LabelName:
		var ok bool
		if isEdge {
			_, ok = r.schema.GetEdgeLabel(e.Name)
		} else {
			_, ok = r.schema.GetNodeLabel(e.Name)
		}

		if !ok {
			r.diags = append(r.diags, gql.Diagnostic{
				Code:        gql.CodeUnknownLabel,
				Severity:    gql.SeverityError,
				Message:     "unknown label: " + e.Name,
				PrimarySpan: e.Span(),
			})
		}
	case *gql.LabelNot:
		r.checkLabels(e.Operand, isEdge)
	case *gql.LabelAnd:
		r.checkLabels(e.Left, isEdge)
		r.checkLabels(e.Right, isEdge)
	case *gql.LabelOr:
		r.checkLabels(e.Left, isEdge)
		r.checkLabels(e.Right, isEdge)
	case *gql.LabelGroup:
		r.checkLabels(e.Inner, isEdge)
	}
}

func (r *refValidator) checkProperty(name string, span gql.Span) {
	if r.schema == nil || name == "" {
		return
	}

	if _, ok := r.schema.GetProperty("", name); !ok {
		r.diags = append(r.diags, gql.Diagnostic{
			Code:        gql.CodeUnknownProperty,
			Severity:    gql.SeverityWarning,
			Message:     "unknown property: " + name,
			PrimarySpan: span,
		})
	}
}

func (r *refValidator) expr(e gql.Expression) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *gql.PropertyAccess:
		r.checkProperty(expr.Property, expr.Span())
		r.expr(expr.Target)
	case *gql.BinaryOp:
		r.expr(expr.Left)
		r.expr(expr.Right)
	case *gql.UnaryOp:
		r.expr(expr.Operand)
	case *gql.FunctionCall:
		for _, a := range expr.Args {
			r.expr(a)
		}
	case *gql.AggregateCall:
		r.expr(expr.Arg)
	case *gql.CaseExpr:
		r.expr(expr.Operand)

		for _, w := range expr.Whens {
			r.expr(w.Condition)
			r.expr(w.Result)
		}

		r.expr(expr.Else)
	case *gql.CastExpr:
		r.expr(expr.Operand)
	case *gql.ListConstructor:
		for _, el := range expr.Elements {
			r.expr(el)
		}
	case *gql.RecordConstructor:
		for _, f := range expr.Fields {
			r.expr(f.Value)
		}
	}
}
