// Package analysis implements the nine semantic validation passes run over
// a parsed gql.Program: symbol-table construction, type inference, variable
// validation, pattern connectivity, context/aggregation validation, type
// checking, expression validation, and the optional catalog/schema passes.
package analysis

import (
	"github.com/rlch/gqlcore"
)

// SymbolKind classifies a declared name (spec §3.3).
type SymbolKind uint8

const (
	SymbolNodeVariable SymbolKind = iota
	SymbolEdgeVariable
	SymbolPathVariable
	SymbolLetBinding
	SymbolForBinding
	SymbolCallYield
	SymbolParameter
	SymbolGraphVariable
	SymbolBindingTableVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNodeVariable:
		return "node-variable"
	case SymbolEdgeVariable:
		return "edge-variable"
	case SymbolPathVariable:
		return "path-variable"
	case SymbolLetBinding:
		return "let-binding"
	case SymbolForBinding:
		return "for-binding"
	case SymbolCallYield:
		return "call-yield"
	case SymbolParameter:
		return "parameter"
	case SymbolGraphVariable:
		return "graph-variable"
	case SymbolBindingTableVariable:
		return "binding-table-variable"
	default:
		return "unknown"
	}
}

// SymbolInfo is one entry of a Scope's declaration map (spec §3.3).
type SymbolInfo struct {
	Name            string
	Kind            SymbolKind
	DeclarationSpan gql.Span
	DeclaringClause gql.Node
	Type            gql.Type
}

// Scope is a node of the symbol-table tree (spec §3.3): a parent pointer
// plus a map from identifier to SymbolInfo. It implements gql.Scope, so it
// can be threaded through gql.WalkWithScope; the analysis passes themselves
// recurse over the AST and look up nested scopes with ChildScope.
type Scope struct {
	parent  *Scope
	symbols map[string]*SymbolInfo
	// children associates a scope-opening AST node with the nested Scope a
	// pass should descend into, populated during symbol-table construction
	// (Pass 1). Nodes absent from this map do not open a new scope: the
	// enclosing scope continues (e.g. OptionalMatchClause's block form, per
	// spec §9's recorded decision).
	children map[gql.Node]*Scope
}

// NewScope creates an empty scope with the given parent (nil for a root
// scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		symbols:  make(map[string]*SymbolInfo),
		children: make(map[gql.Node]*Scope),
	}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Declare records a new symbol in s. It reports false without modifying s
// if name is already declared locally (the caller should treat a repeated
// pattern-variable occurrence as a use, not a re-declaration, per spec
// §4.3's "Declaration is idempotent").
func (s *Scope) Declare(info *SymbolInfo) bool {
	if _, exists := s.symbols[info.Name]; exists {
		return false
	}

	s.symbols[info.Name] = info

	return true
}

// Put unconditionally (re)binds name to info, used for LET's sequential
// rebinding semantics where a later binding may legitimately reuse an
// earlier name within the same clause.
func (s *Scope) Put(info *SymbolInfo) {
	s.symbols[info.Name] = info
}

// LocalLookup resolves name against s only, not its ancestors.
func (s *Scope) LocalLookup(name string) (*SymbolInfo, bool) {
	info, ok := s.symbols[name]

	return info, ok
}

// Resolve walks the parent chain looking for name, returning the scope
// that declares it.
func (s *Scope) Resolve(name string) (*SymbolInfo, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if info, ok := cur.symbols[name]; ok {
			return info, cur, true
		}
	}

	return nil, nil, false
}

// LocalNames returns the names declared directly in s, for shadow-checking
// and iteration.
func (s *Scope) LocalNames() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}

	return names
}

// NewChild creates and registers a nested scope opened by the given AST
// node, returning it.
func (s *Scope) NewChild(opener gql.Node) *Scope {
	child := NewScope(s)
	s.children[opener] = child

	return child
}

// ChildScope returns the nested scope registered for opener, or s itself
// if opener does not open a new scope.
func (s *Scope) ChildScope(opener gql.Node) *Scope {
	if child, ok := s.children[opener]; ok {
		return child
	}

	return s
}

// Child implements gql.Scope, letting *Scope be threaded through
// gql.WalkWithScope.
func (s *Scope) Child(n gql.Node) gql.Scope {
	return s.ChildScope(n)
}

var _ gql.Scope = (*Scope)(nil)
