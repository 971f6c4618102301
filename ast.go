// Package gql implements the core of an ISO/IEC 39075:2024 (GQL) parser and
// semantic validator: a lexer, a hand-written recursive-descent parser, and
// an AST whose nodes carry source spans. Semantic validation lives in the
// sibling package gql/analysis.
package gql

// Node is implemented by every AST node. Span identifies the substring of
// the original input the node was parsed from; for synthesized or
// zero-width recovery nodes the span may be empty (Start == End) but is
// never outside its parent's span (spec §3.2 invariant).
type Node interface {
	Span() Span
}

// NodeBase carries the span shared by every concrete node type. Embedding
// it gives a node its Span() method for free; the parser is responsible for
// populating it when a production completes.
type NodeBase struct {
	span Span
}

// Span returns the node's source span.
func (n NodeBase) Span() Span { return n.span }

// setSpan is used by the parser to finalize a node's span once a production
// has been fully consumed.
func (n *NodeBase) setSpan(s Span) { n.span = s }

// Program is the root of every parse: an ordered sequence of statements
// (spec §3.2).
type Program struct {
	NodeBase
	Statements []Statement
}

// Statement is the sum type `Query | DataModification | Session |
// Transaction | Catalog` from spec §3.2.
type Statement interface {
	Node
	statementNode()
}

// QueryStatement wraps a top-level Query (Linear, Composite, or
// Parenthesized).
type QueryStatement struct {
	NodeBase
	Query Query
}

func (*QueryStatement) statementNode() {}

// DataModificationStatement is a pipeline of data-modifying clauses
// (INSERT/SET/REMOVE/DELETE) optionally terminated by RETURN or FINISH. It
// shares its clause vocabulary with LinearQuery but is classified
// separately per spec §3.2's statement sum type.
type DataModificationStatement struct {
	NodeBase
	Clauses []Clause
}

func (*DataModificationStatement) statementNode() {}

// TerminalClause returns the statement's terminal RETURN/FINISH clause, if
// any, mirroring LinearQuery.TerminalClause.
func (d *DataModificationStatement) TerminalClause() Clause {
	return terminalClauseOf(d.Clauses)
}

// SessionClause is a session-management directive: SET/RESET a session
// parameter, or SET a session's default graph/schema.
type SessionClause struct {
	NodeBase
	Kind  SessionClauseKind
	Name  string
	Value Expression
}

// SessionClauseKind distinguishes the forms of session management.
type SessionClauseKind uint8

const (
	SessionSetParameter SessionClauseKind = iota
	SessionResetParameter
	SessionSetGraph
	SessionSetSchema
)

// SessionStatement groups the session-management clauses of a single
// SESSION statement (spec §4.3: "Parameters (session-level, from the
// SessionSetParameter clauses)").
type SessionStatement struct {
	NodeBase
	Clauses []*SessionClause
}

func (*SessionStatement) statementNode() {}

// TransactionKeyword names the transaction-control verb of a
// TransactionStatement.
type TransactionKeyword uint8

const (
	TransactionStart TransactionKeyword = iota
	TransactionCommit
	TransactionRollback
)

// TransactionStatement is a transaction-control statement (START
// TRANSACTION, COMMIT, ROLLBACK). The core treats these as opaque markers:
// transaction semantics belong to a runtime, not this parser/validator.
type TransactionStatement struct {
	NodeBase
	Keyword TransactionKeyword
}

func (*TransactionStatement) statementNode() {}

// CatalogAction names the DDL verb of a CatalogStatement.
type CatalogAction uint8

const (
	CatalogCreate CatalogAction = iota
	CatalogDrop
)

// CatalogObjectKind names the kind of object a CatalogStatement targets.
type CatalogObjectKind uint8

const (
	CatalogObjectGraph CatalogObjectKind = iota
	CatalogObjectSchema
	CatalogObjectGraphType
)

// CatalogStatement is a catalog DDL statement (CREATE/DROP GRAPH/SCHEMA/
// GRAPH TYPE). The core records the target name so symbol/catalog
// validation can reason about it without modeling full DDL grammar.
type CatalogStatement struct {
	NodeBase
	Action CatalogAction
	Object CatalogObjectKind
	Name   string
}

func (*CatalogStatement) statementNode() {}

// Query is the sum type `Linear | Composite | Parenthesized` from spec
// §3.2.
type Query interface {
	Node
	queryNode()
}

// LinearQuery is a pipeline of primitive clauses with at most one terminal
// clause (RETURN or FINISH), which must appear last (spec §3.2 invariant).
type LinearQuery struct {
	NodeBase
	Clauses []Clause
}

func (*LinearQuery) queryNode() {}

// TerminalClause returns the query's terminal RETURN/FINISH clause, or nil
// if the pipeline has none (legal for a sub-query used only for its
// bindings, e.g. inside EXISTS).
func (q *LinearQuery) TerminalClause() Clause {
	return terminalClauseOf(q.Clauses)
}

func terminalClauseOf(clauses []Clause) Clause {
	if len(clauses) == 0 {
		return nil
	}

	last := clauses[len(clauses)-1]

	switch last.(type) {
	case *ReturnClause, *FinishClause:
		return last
	default:
		return nil
	}
}

// SetOperator names the composition operator joining two queries in a
// CompositeQuery.
type SetOperator uint8

const (
	SetOperatorUnion SetOperator = iota
	SetOperatorUnionAll
	SetOperatorExcept
	SetOperatorIntersect
	SetOperatorOtherwise
)

// CompositeQuery is two queries joined by UNION / EXCEPT / INTERSECT /
// OTHERWISE (spec §3.2).
type CompositeQuery struct {
	NodeBase
	Left     Query
	Operator SetOperator
	Right    Query
}

func (*CompositeQuery) queryNode() {}

// ParenthesizedQuery wraps a query in parentheses; per spec §3.3 this
// introduces its own scope.
type ParenthesizedQuery struct {
	NodeBase
	Inner Query
}

func (*ParenthesizedQuery) queryNode() {}
