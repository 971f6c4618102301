package gql

// Clause is the sum type of every primitive query / data-modification
// constituent (spec §3.2): `Match | OptionalMatch | Filter | Let | For |
// OrderByPage | Call | Select | Insert | Set | Remove | Delete | Return |
// Finish`.
type Clause interface {
	Node
	clauseNode()
}

// MatchClause is `MATCH pattern (, pattern)*`; the comma-separated path
// patterns are held together by the single GraphPattern (spec §3.2:
// "GraphPattern -> list of PathPattern").
type MatchClause struct {
	NodeBase
	Pattern *GraphPattern
}

func (*MatchClause) clauseNode() {}

// OptionalMatchClause is `OPTIONAL MATCH pattern` or the nested block form
// `OPTIONAL MATCH { linearQuery }`; exactly one of Pattern/Block is set.
// Per spec §9's recorded decision, the block form shares the enclosing
// scope rather than introducing its own.
type OptionalMatchClause struct {
	NodeBase
	Pattern *GraphPattern
	Block   *LinearQuery
}

func (*OptionalMatchClause) clauseNode() {}

// FilterClause is `WHERE condition` (also usable as a standalone `FILTER`
// clause per ISO GQL).
type FilterClause struct {
	NodeBase
	Condition Expression
}

func (*FilterClause) clauseNode() {}

// LetBinding is one `name = expr` binding of a LetClause. Right-hand sides
// are evaluated in the scope *before* the binding, and left-hand sides
// enter the scope sequentially (spec §4.3: `LET x = 1, y = x + 1` is
// legal).
type LetBinding struct {
	NodeBase
	Name  string
	Value Expression
}

// LetClause is `LET binding (, binding)*`.
type LetClause struct {
	NodeBase
	Bindings []*LetBinding
}

func (*LetClause) clauseNode() {}

// ForClause is `FOR variable IN source [WITH ORDINALITY AS ordVar] [WITH
// OFFSET AS offsetVar]` (spec §4.3).
type ForClause struct {
	NodeBase
	Variable   string
	Source     Expression
	Ordinality string // auxiliary ordinality variable name, empty if absent
	Offset     string // auxiliary offset variable name, empty if absent
}

func (*ForClause) clauseNode() {}

// OrderItem is one `expr [ASC|DESC] [NULLS FIRST|LAST]` entry of an
// OrderByPageClause.
type OrderItem struct {
	NodeBase
	Expr        Expression
	Descending  bool
	NullsFirst  bool
	HasNullsDir bool
}

// OrderByPageClause is `ORDER BY items... [OFFSET n] [LIMIT n]`. Skip/Limit
// are nil when absent.
type OrderByPageClause struct {
	NodeBase
	OrderBy []*OrderItem
	Skip    Expression
	Limit   Expression
}

func (*OrderByPageClause) clauseNode() {}

// YieldItem is one `name [AS alias]` entry of a CALL ... YIELD list. Yield
// aliases within a single list must be pairwise distinct (spec §4.3).
type YieldItem struct {
	NodeBase
	Name  string
	Alias string
}

// ProcedureCall is the named-procedure form of CALL: `CALL name(args)
// [YIELD items]`.
type ProcedureCall struct {
	NodeBase
	Name  string
	Args  []Expression
	Yield []*YieldItem
}

// CallClause is `CALL procedure(...) [YIELD ...]` (Procedure set) or the
// inline nested-subquery form `[OPTIONAL] CALL (imported...) { query }`
// (Inline set).
type CallClause struct {
	NodeBase
	Optional  bool
	Procedure *ProcedureCall
	Imported  []string
	Inline    *LinearQuery
}

func (*CallClause) clauseNode() {}

// SelectItem is one `expr [AS alias]` projection of a SelectClause.
type SelectItem struct {
	NodeBase
	Expr  Expression
	Alias string
}

// SelectClause is GQL's table-query projection clause: `SELECT items...
// FROM source`.
type SelectClause struct {
	NodeBase
	Distinct bool
	Items    []*SelectItem
	Star     bool
	From     Expression
}

func (*SelectClause) clauseNode() {}

// InsertClause is `INSERT pattern (, pattern)*`.
type InsertClause struct {
	NodeBase
	Pattern *GraphPattern
}

func (*InsertClause) clauseNode() {}

// SetItem is one `target.property = value` or `target:Label` assignment of
// a SetClause; exactly one of Value/Label is set.
type SetItem struct {
	NodeBase
	Target   *PropertyAccess
	Value    Expression
	AddLabel string
}

// SetClause is `SET item (, item)*`.
type SetClause struct {
	NodeBase
	Items []*SetItem
}

func (*SetClause) clauseNode() {}

// RemoveItem is one `target.property` or `target:Label` removal of a
// RemoveClause; exactly one of Property/Label is set.
type RemoveItem struct {
	NodeBase
	Target   Expression
	Property string
	Label    string
}

// RemoveClause is `REMOVE item (, item)*`.
type RemoveClause struct {
	NodeBase
	Items []*RemoveItem
}

func (*RemoveClause) clauseNode() {}

// DeleteClause is `[DETACH] DELETE variable (, variable)*`.
type DeleteClause struct {
	NodeBase
	Detach    bool
	Variables []string
}

func (*DeleteClause) clauseNode() {}

// ReturnItem is one `expr [AS alias]` projection of a ReturnClause.
type ReturnItem struct {
	NodeBase
	Expr  Expression
	Alias string
}

// ReturnClause is the terminal `RETURN [DISTINCT] items... | * [GROUP BY
// keys...]` clause (spec §3.2/§4.7).
type ReturnClause struct {
	NodeBase
	Distinct bool
	Star     bool
	Items    []*ReturnItem
	GroupBy  []Expression
}

func (*ReturnClause) clauseNode() {}

// FinishClause is the terminal `FINISH` clause: a pipeline that produces no
// output rows.
type FinishClause struct {
	NodeBase
}

func (*FinishClause) clauseNode() {}
