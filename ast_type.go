package gql

// Type is the closed algebra of GQL type denotations (spec §3.2): boolean,
// numeric family with precision/signedness, character/byte string,
// temporal instants and durations, path, list, record with named fields,
// reference-value graph/node/edge/binding-table, null/empty, and the
// not-null modifier. Unknown (spec §3.4) is the type-table's placeholder
// for expressions that could not be resolved.
type Type interface {
	Node
	typeNode()
}

// BooleanType is GQL's BOOL/BOOLEAN type.
type BooleanType struct {
	NodeBase
}

func (*BooleanType) typeNode() {}

// NumericKind distinguishes the numeric type families.
type NumericKind uint8

const (
	NumericInteger NumericKind = iota
	NumericFloat
	NumericDecimal
)

// NumericType is a member of the numeric family, with optional precision/
// scale and signedness, per spec §3.2 and the promotion rules of §4.4.
type NumericType struct {
	NodeBase
	Kind      NumericKind
	Precision *int
	Scale     *int
	Signed    bool
}

func (*NumericType) typeNode() {}

// StringKind distinguishes fixed/variable character and byte string types.
type StringKind uint8

const (
	StringChar StringKind = iota
	StringVarChar
	StringByte
	StringVarByte
)

// StringType is a character or byte string type, with an optional declared
// length.
type StringType struct {
	NodeBase
	Kind   StringKind
	Length *int
}

func (*StringType) typeNode() {}

// TemporalKind distinguishes GQL's temporal instant and duration types.
type TemporalKind uint8

const (
	TemporalDate TemporalKind = iota
	TemporalTime
	TemporalTimestamp
	TemporalDuration
)

// TemporalType is a temporal instant or duration type, optionally carrying
// a time zone.
type TemporalType struct {
	NodeBase
	Kind     TemporalKind
	WithZone bool
}

func (*TemporalType) typeNode() {}

// PathType is GQL's PATH value type.
type PathType struct {
	NodeBase
}

func (*PathType) typeNode() {}

// ListType is a homogeneous list type: `LIST<Element>`.
type ListType struct {
	NodeBase
	Element Type
}

func (*ListType) typeNode() {}

// RecordTypeField is one named field of a RecordType.
type RecordTypeField struct {
	NodeBase
	Name string
	Type Type
}

// RecordType is a record (open or closed) type with named fields.
type RecordType struct {
	NodeBase
	Fields []*RecordTypeField
}

func (*RecordType) typeNode() {}

// GraphRefType is a reference-value type denoting a graph.
type GraphRefType struct {
	NodeBase
}

func (*GraphRefType) typeNode() {}

// NodeRefType is a reference-value type denoting a graph node/vertex.
type NodeRefType struct {
	NodeBase
}

func (*NodeRefType) typeNode() {}

// EdgeRefType is a reference-value type denoting a graph edge.
type EdgeRefType struct {
	NodeBase
}

func (*EdgeRefType) typeNode() {}

// BindingTableRefType is a reference-value type denoting a binding table.
type BindingTableRefType struct {
	NodeBase
}

func (*BindingTableRefType) typeNode() {}

// NullType is the type of the literal NULL.
type NullType struct {
	NodeBase
}

func (*NullType) typeNode() {}

// EmptyType is the bottom type (e.g. the element type of an empty list
// literal with no inferable element type).
type EmptyType struct {
	NodeBase
}

func (*EmptyType) typeNode() {}

// NotNullType modifies an inner type to exclude NULL, as declared by a
// trailing `NOT NULL` in a type denotation.
type NotNullType struct {
	NodeBase
	Inner Type
}

func (*NotNullType) typeNode() {}

// UnknownType is written into the type table (spec §3.4) for expressions
// that could not be resolved; it is compatible with all operations so that
// downstream passes can proceed without cascading failures.
type UnknownType struct {
	NodeBase
}

func (*UnknownType) typeNode() {}
