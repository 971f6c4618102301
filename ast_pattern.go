package gql

// GraphPattern is a list of PathPattern compared together; multiple path
// patterns separated by commas in a single MATCH form independent
// components of the same pattern (spec §3.2/§4.6).
type GraphPattern struct {
	NodeBase
	SearchPrefix *PathSearchPrefix
	Paths        []*PathPattern
}

// PathPattern is a sequence of ElementPattern: alternating node and edge
// patterns. Mode and Variable are both optional (spec §4.2 path-mode
// prefixes and named path variables).
type PathPattern struct {
	NodeBase
	Mode     PathMode
	Variable string
	Elements []ElementPattern
}

// PathMode constrains repetition within a matched path (WALK/TRAIL/SIMPLE/
// ACYCLIC); PathModeNone means no prefix was written.
type PathMode uint8

const (
	PathModeNone PathMode = iota
	PathModeWalk
	PathModeTrail
	PathModeSimple
	PathModeAcyclic
)

func (m PathMode) String() string {
	switch m {
	case PathModeWalk:
		return "WALK"
	case PathModeTrail:
		return "TRAIL"
	case PathModeSimple:
		return "SIMPLE"
	case PathModeAcyclic:
		return "ACYCLIC"
	default:
		return ""
	}
}

// PathSearchKind names a quantitative selector over matched paths.
type PathSearchKind uint8

const (
	PathSearchAll PathSearchKind = iota
	PathSearchAny
	PathSearchShortest
	PathSearchAllShortest
	PathSearchAnyShortest
	PathSearchShortestGroups
)

// PathSearchPrefix is a path-search prefix: ALL | ANY | SHORTEST k | ALL
// SHORTEST | ANY SHORTEST | SHORTEST k GROUPS (spec §4.2).
type PathSearchPrefix struct {
	NodeBase
	Kind  PathSearchKind
	Count Expression // the k in SHORTEST k / SHORTEST k GROUPS; nil otherwise
}

// ElementPattern is the sum type `NodePattern | EdgePattern`.
type ElementPattern interface {
	Node
	elementPatternNode()
}

// NodePattern is a parenthesized vertex pattern: `(n:Person {name: $name})`.
type NodePattern struct {
	NodeBase
	Variable   string
	Labels     LabelExpression
	Properties *PropertyMap
	Predicate  Expression // WHERE predicate inside the pattern, if any
}

func (*NodePattern) elementPatternNode() {}

// Direction is one of the seven direction codes an EdgePattern may carry,
// including abbreviated forms (spec §3.2/§4.2).
type Direction uint8

const (
	DirectionRight Direction = iota // -->
	DirectionLeft                   // <--
	DirectionUndirected             // ~~
	DirectionEither                 // <-->
	DirectionLeftOrUndirected       // <~~
	DirectionRightOrUndirected      // ~~>
	DirectionAny                    // -- (abbreviated, matches any direction)
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "->"
	case DirectionLeft:
		return "<-"
	case DirectionUndirected:
		return "~"
	case DirectionEither:
		return "<->"
	case DirectionLeftOrUndirected:
		return "<~"
	case DirectionRightOrUndirected:
		return "~>"
	case DirectionAny:
		return "-"
	default:
		return "?"
	}
}

// Quantifier repeats an edge or sub-path pattern: `*`, `+`, `?`, `{n}`,
// `{n,m}`, `{n,}`, `{,m}` (spec §4.2). Max == nil means unbounded.
type Quantifier struct {
	NodeBase
	Min int
	Max *int
}

// EdgePattern is a bracketed or abbreviated edge pattern between two node
// patterns, e.g. `-[e:KNOWS*1..3]->`.
type EdgePattern struct {
	NodeBase
	Variable   string
	Direction  Direction
	Labels     LabelExpression
	Properties *PropertyMap
	Predicate  Expression
	Quantifier *Quantifier
}

func (*EdgePattern) elementPatternNode() {}

// PropertyMap is a brace-delimited map literal attached to an element
// pattern: `{name: $name, age: 30}`.
type PropertyMap struct {
	NodeBase
	Entries []*PropertyMapEntry
}

// PropertyMapEntry is one `key: value` pair of a PropertyMap.
type PropertyMapEntry struct {
	NodeBase
	Key   string
	Value Expression
}

// LabelExpression is the boolean algebra over label names constraining
// which elements a pattern matches (spec §3.2): `Name | Wildcard | Not |
// And | Or | Group`.
type LabelExpression interface {
	Node
	labelExprNode()
}

// LabelName is a single label or type name, e.g. `Person`.
type LabelName struct {
	NodeBase
	Name string
}

func (*LabelName) labelExprNode() {}

// LabelWildcard matches any label: `%`.
type LabelWildcard struct {
	NodeBase
}

func (*LabelWildcard) labelExprNode() {}

// LabelNot negates a label expression: `!Person`.
type LabelNot struct {
	NodeBase
	Operand LabelExpression
}

func (*LabelNot) labelExprNode() {}

// LabelAnd conjoins two label expressions: `Person&Employee`.
type LabelAnd struct {
	NodeBase
	Left, Right LabelExpression
}

func (*LabelAnd) labelExprNode() {}

// LabelOr disjoins two label expressions: `Person|Company`.
type LabelOr struct {
	NodeBase
	Left, Right LabelExpression
}

func (*LabelOr) labelExprNode() {}

// LabelGroup is a parenthesized label expression, preserved in the AST so
// that pretty-printing and span reporting reflect the source grouping.
type LabelGroup struct {
	NodeBase
	Inner LabelExpression
}

func (*LabelGroup) labelExprNode() {}
