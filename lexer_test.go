package gql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gqlcore"
)

type tokenExpect struct {
	kind gql.TokenKind
	text string
}

func lexNonEOF(t *testing.T, input string) []tokenExpect {
	t.Helper()

	tokens, diags := gql.Tokenize([]byte(input))
	require.Empty(t, diags, "unexpected diagnostics for %q: %v", input, diags)

	var out []tokenExpect

	for _, tok := range tokens {
		if tok.Kind == gql.TokenEOF {
			continue
		}

		out = append(out, tokenExpect{kind: tok.Kind, text: tok.Text})
	}

	return out
}

func TestTokenize_Identifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected []tokenExpect
	}{
		{"foo", []tokenExpect{{gql.TokenIdentifier, "foo"}}},
		{"foo_bar", []tokenExpect{{gql.TokenIdentifier, "foo_bar"}}},
		{"foo123", []tokenExpect{{gql.TokenIdentifier, "foo123"}}},
		{"_private", []tokenExpect{{gql.TokenIdentifier, "_private"}}},
		{"foo bar", []tokenExpect{{gql.TokenIdentifier, "foo"}, {gql.TokenIdentifier, "bar"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, lexNonEOF(t, tt.input))
		})
	}
}

func TestTokenize_ReservedKeywordsAreUppercased(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"match", "MATCH"},
		{"MATCH", "MATCH"},
		{"Match", "MATCH"},
		{"return", "RETURN"},
		{"WHERE", "WHERE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := lexNonEOF(t, tt.input)
			require.Len(t, got, 1)
			assert.Equal(t, gql.TokenKeyword, got[0].kind)
			assert.Equal(t, tt.want, got[0].text)
		})
	}
}

func TestTokenize_NonReservedKeywordIsIdentifier(t *testing.T) {
	t.Parallel()

	got := lexNonEOF(t, "schema")
	require.Len(t, got, 1)
	assert.Equal(t, gql.TokenIdentifier, got[0].kind)
	assert.Equal(t, "schema", got[0].text)
}

func TestTokenize_Numbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
	}{
		{"123"}, {"123.456"}, {"1e10"}, {"1E10"}, {"1.5e-3"}, {"1.5e+3"},
		{"1_000_000"}, {"0xFF"}, {"0XFF"}, {"0xFF_FF"}, {"0o755"}, {"0O755"},
		{"0b1010"}, {"0B1010"}, {"0"}, {"0.5"}, {"1.0F"}, {"1.0D"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := lexNonEOF(t, tt.input)
			require.Len(t, got, 1)
			assert.Equal(t, gql.TokenNumericLiteral, got[0].kind)
			assert.Equal(t, tt.input, got[0].text)
		})
	}
}

func TestTokenize_StringLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double quoted", `"hello"`, "hello"},
		{"single quoted", `'hello'`, "hello"},
		{"doubled quote escape", `'it''s'`, "it's"},
		{"backslash escape", `'a\nb'`, "a\nb"},
		{"empty", `''`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lexNonEOF(t, tt.input)
			require.Len(t, got, 1)
			assert.Equal(t, gql.TokenStringLiteral, got[0].kind)
			assert.Equal(t, tt.want, got[0].text)
		})
	}
}

func TestTokenize_DelimitedIdentifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double quoted", `"My Node"`, "My Node"},
		{"backtick quoted", "`My Node`", "My Node"},
		{"doubled quote escape", `"a""b"`, `a"b`},
		{"unicode escape", `"\u0041"`, "A"},
		{"wide unicode escape", `"\U0001F600"`, "\U0001F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lexNonEOF(t, tt.input)
			require.Len(t, got, 1)
			assert.Equal(t, gql.TokenDelimitedIdentifier, got[0].kind)
			assert.Equal(t, tt.want, got[0].text)
		})
	}
}

func TestTokenize_Parameters(t *testing.T) {
	t.Parallel()

	got := lexNonEOF(t, "$userId")
	require.Len(t, got, 1)
	assert.Equal(t, gql.TokenParameter, got[0].kind)
	assert.Equal(t, "$userId", got[0].text)

	got = lexNonEOF(t, "$$userId")
	require.Len(t, got, 1)
	assert.Equal(t, gql.TokenReferenceParameter, got[0].kind)
}

func TestTokenize_MultiCharOperators(t *testing.T) {
	t.Parallel()

	tests := []string{"<>", "<=", ">=", "||", "..", "::"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got := lexNonEOF(t, input)
			require.Len(t, got, 1)
			assert.Equal(t, gql.TokenOperator, got[0].kind)
			assert.Equal(t, input, got[0].text)
		})
	}
}

func TestTokenize_Punctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []tokenExpect
	}{
		{"()", []tokenExpect{{gql.TokenPunctuation, "("}, {gql.TokenPunctuation, ")"}}},
		{"[]", []tokenExpect{{gql.TokenPunctuation, "["}, {gql.TokenPunctuation, "]"}}},
		{"{}", []tokenExpect{{gql.TokenPunctuation, "{"}, {gql.TokenPunctuation, "}"}}},
		{",", []tokenExpect{{gql.TokenPunctuation, ","}}},
		{";", []tokenExpect{{gql.TokenPunctuation, ";"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lexNonEOF(t, tt.input))
		})
	}
}

func TestTokenize_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []tokenExpect
	}{
		{"line comment before token", "// comment\nfoo", []tokenExpect{{gql.TokenIdentifier, "foo"}}},
		{"dash comment", "-- comment\nfoo", []tokenExpect{{gql.TokenIdentifier, "foo"}}},
		{"bracketed comment", "/* c */foo", []tokenExpect{{gql.TokenIdentifier, "foo"}}},
		{"comment only", "// just a comment", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lexNonEOF(t, tt.input))
		})
	}
}

func TestTokenize_ComplexExpression(t *testing.T) {
	t.Parallel()

	got := lexNonEOF(t, "MATCH (n:Person)-[:KNOWS]->(m) RETURN n.name")
	want := []tokenExpect{
		{gql.TokenKeyword, "MATCH"},
		{gql.TokenPunctuation, "("},
		{gql.TokenIdentifier, "n"},
		{gql.TokenPunctuation, ":"},
		{gql.TokenIdentifier, "Person"},
		{gql.TokenPunctuation, ")"},
		{gql.TokenOperator, "-"},
		{gql.TokenPunctuation, "["},
		{gql.TokenPunctuation, ":"},
		{gql.TokenIdentifier, "KNOWS"},
		{gql.TokenPunctuation, "]"},
		{gql.TokenOperator, "-"},
		{gql.TokenOperator, ">"},
		{gql.TokenPunctuation, "("},
		{gql.TokenIdentifier, "m"},
		{gql.TokenPunctuation, ")"},
		{gql.TokenKeyword, "RETURN"},
		{gql.TokenIdentifier, "n"},
		{gql.TokenPunctuation, "."},
		{gql.TokenIdentifier, "name"},
	}
	assert.Equal(t, want, got)
}

func TestTokenize_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		tokens, diags := gql.Tokenize(nil)
		require.Empty(t, diags)
		require.Len(t, tokens, 1)
		assert.Equal(t, gql.TokenEOF, tokens[0].Kind)
	})

	t.Run("only whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lexNonEOF(t, "   \t\n  "))
	})
}

func TestTokenize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		code gql.DiagnosticCode
	}{
		{"unterminated double quoted string", `"hello`, gql.CodeUnterminatedDelimitedIdent},
		{"unterminated single quoted string", `'hello`, gql.CodeUnterminatedString},
		{"string with embedded newline", "'hello\nworld'", gql.CodeUnterminatedString},
		{"unexpected character", "@", gql.CodeInvalidCharacter},
		{"unterminated bracketed comment", "/* unterminated", gql.CodeUnterminatedBracketedComment},
		{"nested bracketed comment", "/* /* */ */", gql.CodeNestedBracketedComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, diags := gql.Tokenize([]byte(tt.in))
			require.NotEmpty(t, diags)
			assert.Equal(t, tt.code, diags[0].Code)
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	t.Parallel()

	tokens, diags := gql.Tokenize([]byte("foo\nbar baz"))
	require.Empty(t, diags)

	type want struct {
		text   string
		line   int
		column int
	}

	expected := []want{
		{"foo", 1, 1},
		{"bar", 2, 1},
		{"baz", 2, 5},
	}

	idx := 0

	for _, tok := range tokens {
		if tok.Kind == gql.TokenEOF {
			continue
		}

		require.Less(t, idx, len(expected))

		exp := expected[idx]
		assert.Equal(t, exp.text, tok.Text)
		assert.Equal(t, exp.line, tok.Span.Start.Line)
		assert.Equal(t, exp.column, tok.Span.Start.Column)
		idx++
	}
}
