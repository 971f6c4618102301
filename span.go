package gql

import "fmt"

// Position identifies one location in GQL source text.
//
// Rune is the Unicode scalar value offset from the start of the input (the
// offset the rest of this package uses for spans, per the "Unicode scalar
// offsets" convention). Line and Column are 1-based and provided purely for
// human-readable diagnostics; Offset is the byte offset into the original
// UTF-8 input, useful to callers that want to slice the original []byte
// directly instead of re-decoding runes.
type Position struct {
	Rune   int
	Line   int
	Column int
	Offset int
}

// String renders a Position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range [Start, End) over the input, measured in
// Unicode scalar offsets (Position.Rune). Every AST node and every token
// carries one. A Span with Start == End denotes an empty (synthetic or
// zero-width) range, used by recovery-produced nodes that consumed no
// tokens.
type Span struct {
	Start Position
	End   Position
}

// String renders a Span as "line:column-line:column".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Contains reports whether s fully contains other, treating both as
// half-open ranges over the same input.
func (s Span) Contains(other Span) bool {
	return s.Start.Rune <= other.Start.Rune && other.End.Rune <= s.End.Rune
}

// ContainsOffset reports whether rune offset r falls within [Start, End).
func (s Span) ContainsOffset(r int) bool {
	return s.Start.Rune <= r && r < s.End.Rune
}

// Len returns the span's length in runes.
func (s Span) Len() int {
	return s.End.Rune - s.Start.Rune
}

// Join returns the smallest span containing both a and b.
func Join(a, b Span) Span {
	start := a.Start
	if b.Start.Rune < start.Rune {
		start = b.Start
	}

	end := a.End
	if b.End.Rune > end.Rune {
		end = b.End
	}

	return Span{Start: start, End: end}
}
