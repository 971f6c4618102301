package gql

// Expression is the sum type of every GQL value expression (spec §3.2):
// literal, variable reference, property access, aggregate, function call,
// case, cast, list/record/path constructors, parameter reference, unary/
// binary operator application, and the `IS ...` family of predicates.
type Expression interface {
	Node
	exprNode()
}

// LiteralKind classifies a Literal's value family.
type LiteralKind uint8

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBoolean
	LiteralNull
	LiteralDate
	LiteralTime
	LiteralTimestamp
	LiteralDuration
	LiteralByteString
)

// Literal is a literal value. Text preserves the lexed text (for numeric
// literals, verbatim; for strings, the lexer-resolved text). Temporal
// literals (spec §4.1: keyword-prefixed `DATE '…'` etc.) are composed here
// from the two adjacent tokens the lexer produced.
type Literal struct {
	NodeBase
	Kind LiteralKind
	Text string
}

func (*Literal) exprNode() {}

// VariableRef is a reference to a bound variable by name.
type VariableRef struct {
	NodeBase
	Name string
}

func (*VariableRef) exprNode() {}

// ParameterRef is a reference to a query parameter: `$name` or the
// reference-parameter form `$$name`.
type ParameterRef struct {
	NodeBase
	Name      string
	Reference bool
}

func (*ParameterRef) exprNode() {}

// PropertyAccess is `target.property`.
type PropertyAccess struct {
	NodeBase
	Target   Expression
	Property string
}

func (*PropertyAccess) exprNode() {}

// Subscript is `target[index]`.
type Subscript struct {
	NodeBase
	Target Expression
	Index  Expression
}

func (*Subscript) exprNode() {}

// UnaryOp is a prefix unary operator application: `+x`, `-x`, `NOT x`.
type UnaryOp struct {
	NodeBase
	Op      string
	Operand Expression
}

func (*UnaryOp) exprNode() {}

// BinaryOp is an infix binary operator application, covering arithmetic,
// comparison, logical, and concatenation operators (spec §4.2 precedence
// table).
type BinaryOp struct {
	NodeBase
	Op          string
	Left, Right Expression
}

func (*BinaryOp) exprNode() {}

// FunctionCall is a scalar function invocation: `name(args...)`.
type FunctionCall struct {
	NodeBase
	Name     string
	Args     []Expression
	Distinct bool
}

func (*FunctionCall) exprNode() {}

// AggregateCall is an aggregate function invocation: `COUNT(x)`,
// `COUNT(*)`, `AVG(DISTINCT x)` (spec §4.4/§4.7).
type AggregateCall struct {
	NodeBase
	Name     string
	Arg      Expression // nil when Star is set
	Distinct bool
	Star     bool
}

func (*AggregateCall) exprNode() {}

// WhenClause is one `WHEN cond THEN result` arm of a CaseExpr.
type WhenClause struct {
	NodeBase
	Condition Expression
	Result    Expression
}

// CaseExpr is a CASE expression. Operand is non-nil for the simple form
// (`CASE x WHEN 1 THEN ...`) and nil for the searched form (`CASE WHEN x=1
// THEN ...`); Else is nil when no ELSE arm was written.
type CaseExpr struct {
	NodeBase
	Operand Expression
	Whens   []*WhenClause
	Else    Expression
}

func (*CaseExpr) exprNode() {}

// CastExpr is `CAST(operand AS target)`.
type CastExpr struct {
	NodeBase
	Operand Expression
	Target  Type
}

func (*CastExpr) exprNode() {}

// ListConstructor is a list literal: `[1, 2, 3]`.
type ListConstructor struct {
	NodeBase
	Elements []Expression
}

func (*ListConstructor) exprNode() {}

// RecordField is one `name: value` field of a RecordConstructor.
type RecordField struct {
	NodeBase
	Name  string
	Value Expression
}

// RecordConstructor is a record literal: `{name: "a", age: 1}`.
type RecordConstructor struct {
	NodeBase
	Fields []*RecordField
}

func (*RecordConstructor) exprNode() {}

// PathConstructor builds a path value from a sequence of node/edge
// expressions.
type PathConstructor struct {
	NodeBase
	Elements []Expression
}

func (*PathConstructor) exprNode() {}

// IsCheckKind names the right-hand operand of the simple `IS [NOT] ...`
// predicate family (spec §4.2 precedence level 4).
type IsCheckKind uint8

const (
	IsCheckNull IsCheckKind = iota
	IsCheckTrue
	IsCheckFalse
	IsCheckUnknown
	IsCheckNormalized
)

// IsPredicate is `operand IS [NOT] {NULL|TRUE|FALSE|UNKNOWN|NORMALIZED}`.
type IsPredicate struct {
	NodeBase
	Operand Expression
	Not     bool
	Check   IsCheckKind
}

func (*IsPredicate) exprNode() {}

// IsTypedPredicate is `operand IS [NOT] TYPED target`.
type IsTypedPredicate struct {
	NodeBase
	Operand Expression
	Not     bool
	Target  Type
}

func (*IsTypedPredicate) exprNode() {}

// IsLabeledPredicate is `operand IS [NOT] LABELED labelExpr`.
type IsLabeledPredicate struct {
	NodeBase
	Operand Expression
	Not     bool
	Labels  LabelExpression
}

func (*IsLabeledPredicate) exprNode() {}

// IsSourceOrDestinationPredicate is `operand IS [NOT] SOURCE OF of` or
// `operand IS [NOT] DESTINATION OF of`.
type IsSourceOrDestinationPredicate struct {
	NodeBase
	Operand Expression
	Not     bool
	Source  bool // true = SOURCE OF, false = DESTINATION OF
	Of      Expression
}

func (*IsSourceOrDestinationPredicate) exprNode() {}

// IsDirectedPredicate is `operand IS [NOT] DIRECTED`.
type IsDirectedPredicate struct {
	NodeBase
	Operand Expression
	Not     bool
}

func (*IsDirectedPredicate) exprNode() {}

// ExistsExpr is `EXISTS { pattern }` or `EXISTS { query }` (spec §4.9): the
// inner construct is analyzed in a nested scope seeded with the variables
// bound before the EXISTS.
type ExistsExpr struct {
	NodeBase
	Pattern *GraphPattern // set for the bare-pattern form
	Query   *LinearQuery  // set for the nested-query form
}

func (*ExistsExpr) exprNode() {}

// SubqueryExpr embeds a query in expression position; per spec §4.9 it must
// produce a single scalar column.
type SubqueryExpr struct {
	NodeBase
	Query Query
}

func (*SubqueryExpr) exprNode() {}
