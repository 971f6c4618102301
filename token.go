package gql

import "fmt"

// TokenKind classifies a lexed token. Negative-free, zero-based; unlike the
// teacher's participle-convention negative TokenType values, this lexer is
// hand-written and owns its own token stream, so there is no external
// convention to follow.
type TokenKind uint16

// Token kinds, grouped per spec §3.1.
const (
	TokenError TokenKind = iota
	TokenEOF

	// Identifiers and keywords. A lexeme that matches the keyword table is
	// promoted to TokenKeyword by the lexer only when it is reserved or
	// pre-reserved (spec §4.1); non-reserved keyword lexemes are emitted as
	// TokenIdentifier and resolved contextually by the parser.
	TokenIdentifier
	TokenDelimitedIdentifier
	TokenKeyword

	// Literals.
	TokenNumericLiteral
	TokenStringLiteral
	TokenByteStringLiteral

	// Parameters.
	TokenParameter          // $name
	TokenReferenceParameter // $$name

	TokenOperator
	TokenPunctuation
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenError:
		return "Error"
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "Identifier"
	case TokenDelimitedIdentifier:
		return "DelimitedIdentifier"
	case TokenKeyword:
		return "Keyword"
	case TokenNumericLiteral:
		return "NumericLiteral"
	case TokenStringLiteral:
		return "StringLiteral"
	case TokenByteStringLiteral:
		return "ByteStringLiteral"
	case TokenParameter:
		return "Parameter"
	case TokenReferenceParameter:
		return "ReferenceParameter"
	case TokenOperator:
		return "Operator"
	case TokenPunctuation:
		return "Punctuation"
	case TokenComment:
		return "Comment"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint16(k))
	}
}

// Token is one lexed unit of GQL source.
//
// Text preserves the source casing for identifiers and keeps escapes
// resolved for delimited identifiers and string literals. For keywords,
// Text holds the canonical upper-case form (spec §3.1: "Keywords preserve
// their canonical upper-case form").
type Token struct {
	Kind TokenKind
	// Text is the token's semantic value: the resolved identifier/string
	// text, the canonical keyword spelling, or the literal operator/
	// punctuation spelling.
	Text string
	// Raw is the verbatim source slice the token was lexed from (before
	// escape resolution), used for re-deriving literal spans.
	Raw  string
	Span Span
}

// IsKeyword reports whether t is a structural keyword token.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == TokenKeyword && t.Text == word
}

// IsPunctuation reports whether t is punctuation with the given spelling.
func (t Token) IsPunctuation(sym string) bool {
	return t.Kind == TokenPunctuation && t.Text == sym
}

// IsOperator reports whether t is an operator with the given spelling.
func (t Token) IsOperator(sym string) bool {
	return t.Kind == TokenOperator && t.Text == sym
}
