package gql

import "strings"

// KeywordClass classifies a keyword lexeme per spec §4.2 "Reserved-word
// discipline": reserved and pre-reserved words can never stand in for an
// undelimited identifier; non-reserved words can, contextually.
type KeywordClass uint8

const (
	// NotKeyword means the lexeme does not match any entry in the keyword
	// table and should be treated as a plain identifier.
	NotKeyword KeywordClass = iota
	Reserved
	PreReserved
	NonReserved
)

// reservedWords are keywords that can never be used as an undelimited
// identifier anywhere in the grammar. This list is representative of
// ISO/IEC 39075:2024's reserved word set (§4.1/§4.2 of spec.md call for
// "case-insensitive classification of ~290 keywords into three disjoint
// sets"); it is not a verbatim transcription of the standard's annex but
// covers every keyword this parser's grammar actually consumes as a fixed
// token.
var reservedWords = buildSet(
	"ALL", "AND", "AS", "ASC", "ASCENDING", "BOOL", "BOOLEAN", "BOTH", "BY",
	"CALL", "CASE", "CAST", "CLOSE", "COALESCE", "COMMIT", "COPY", "CREATE",
	"CURRENT_DATE", "CURRENT_GRAPH", "CURRENT_PROPERTY_GRAPH",
	"CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP", "DATE", "DELETE",
	"DESC", "DESCENDING", "DETACH", "DISTINCT", "DROP", "DURATION", "ELSE",
	"END", "ESCAPE", "EXCEPT", "EXISTS", "FALSE", "FILTER", "FINISH", "FLOAT",
	"FOR", "FROM", "GROUP", "HAVING", "HOME_GRAPH", "HOME_PROPERTY_GRAPH",
	"HOME_SCHEMA", "IN", "INSERT", "INT", "INTEGER", "INTERSECT", "IS",
	"LEADING", "LET", "LIKE", "LIMIT", "MATCH", "NO", "NOT", "NULL", "NULLS",
	"OF", "OFFSET", "ON", "ONLY", "OPTIONAL", "OR", "ORDER", "OTHERWISE",
	"PARAMETER", "REMOVE", "RETURN", "ROLLBACK", "SAME", "SELECT", "SESSION",
	"SET", "SHORTEST", "SKIP", "SOME", "START", "STRING", "THEN", "TIME",
	"TIMESTAMP", "TRAILING", "TRIM", "TRUE", "TYPED", "UNION", "UNIQUE",
	"UNKNOWN", "UNWIND", "USE", "VALUE", "WHEN", "WHERE", "WITH", "XOR",
	"YIELD",
)

// preReservedWords are not yet load-bearing in every production but are
// reserved against future grammar growth; they behave identically to
// reserved words for the "can this be an undelimited identifier" question.
var preReservedWords = buildSet(
	"ABS", "ACYCLIC", "ANY", "BINDING", "BINDINGS", "CONNECTING", "DESTINATION",
	"DIRECTED", "EDGE", "EDGES", "ELEMENT", "ELEMENTS", "FIRST", "GRAPH",
	"GROUPS", "KEEP", "LABELED", "LAST", "LEFT", "NODE", "NODES",
	"PATH", "PATHS", "PATTERN", "PROPERTY", "RECORD", "REPEATABLE", "RIGHT",
	"SIMPLE", "SOURCE", "TABLE", "TRAIL", "TYPE", "UNDIRECTED", "VALUES",
	"VERTEX", "WALK", "WITHOUT", "ZONE",
)

// nonReservedWords are keywords in specific productions that are legal
// undelimited identifiers everywhere else.
var nonReservedWords = buildSet(
	"ABSOLUTE", "ACTION", "ALTER", "AVG", "CATALOG", "COLLECT", "COUNT",
	"CURRENT", "DATA", "DAY", "DEGREE", "DESCRIPTOR", "DIRECTION",
	"FOREACH", "GRANT", "HOUR", "LABEL", "LANGUAGE", "LEVEL", "MAX", "MIN",
	"MINUTE", "MONTH", "NAME", "NEXT", "NORMALIZED", "PARAMETERS",
	"PRIVILEGES", "READ", "RELATIVE", "RESET", "REVOKE", "ROLE", "SCHEMA",
	"SECOND", "SIZE", "SUM", "TEMPORARY", "TRANSACTION", "UNSIGNED",
	"VARYING", "WORK", "WRITE", "YEAR",
)

func buildSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}

	return m
}

// ClassifyKeyword returns the keyword class for a regular-identifier
// lexeme, comparing case-insensitively per spec §4.1 ("Keywords are
// identified by case-insensitive comparison against the keyword table").
func ClassifyKeyword(lexeme string) KeywordClass {
	upper := strings.ToUpper(lexeme)

	if _, ok := reservedWords[upper]; ok {
		return Reserved
	}

	if _, ok := preReservedWords[upper]; ok {
		return PreReserved
	}

	if _, ok := nonReservedWords[upper]; ok {
		return NonReserved
	}

	return NotKeyword
}

// IsReservedOrPreReserved reports whether word cannot stand in for an
// undelimited identifier anywhere in the grammar.
func IsReservedOrPreReserved(word string) bool {
	class := ClassifyKeyword(word)

	return class == Reserved || class == PreReserved
}
