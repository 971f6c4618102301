package gql

import "strings"

// Parse lexes and parses a complete GQL program (spec §3.2/§4.2). It always
// returns a non-nil *Program, even when diagnostics were raised: parsing
// recovers at statement and clause boundaries so a caller can still walk
// whatever was understood.
func Parse(source []byte) (*Program, []Diagnostic) {
	tokens, diags := Tokenize(source)

	p := &parser{tokens: tokens, diags: diags}
	prog := p.parseProgram()

	return prog, DedupeAdjacent(p.diags)
}

// parser is a hand-written recursive-descent parser over the token stream
// produced by Tokenize. It never panics: every unexpected-token condition
// emits a Diagnostic and synchronizes instead of propagating a Go error.
type parser struct {
	tokens []Token
	pos    int
	diags  []Diagnostic
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[i]
}

func (p *parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	return t
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == TokenEOF
}

func (p *parser) atKeyword(word string) bool {
	return p.cur().IsKeyword(word)
}

// atWord matches both reserved/pre-reserved keyword tokens and non-reserved
// keyword lexemes, which the lexer leaves as plain identifiers (spec §4.1:
// non-reserved keyword classification is the parser's job).
func (p *parser) atWord(word string) bool {
	t := p.cur()
	if t.Kind == TokenKeyword {
		return t.Text == word
	}

	return t.Kind == TokenIdentifier && strings.EqualFold(t.Text, word)
}

func (p *parser) atPunct(sym string) bool {
	return p.cur().IsPunctuation(sym)
}

func (p *parser) atOp(sym string) bool {
	return p.cur().IsOperator(sym)
}

func (p *parser) atIdent() bool {
	return p.cur().Kind == TokenIdentifier
}

func (p *parser) errorAt(span Span, code DiagnosticCode, msg string) {
	p.diags = append(p.diags, Diagnostic{
		Code:        code,
		Severity:    SeverityError,
		Message:     msg,
		PrimarySpan: span,
	})
}

func (p *parser) unexpected(msg string) {
	p.errorAt(p.cur().Span, CodeUnexpectedToken, msg)
}

// expectPunct consumes a punctuation token of the given spelling, emitting a
// diagnostic and leaving the cursor in place if it is missing.
func (p *parser) expectPunct(sym string) (Token, bool) {
	if p.atPunct(sym) {
		return p.advance(), true
	}

	p.unexpected("expected '" + sym + "'")

	return Token{}, false
}

func (p *parser) expectOp(sym string) (Token, bool) {
	if p.atOp(sym) {
		return p.advance(), true
	}

	p.unexpected("expected '" + sym + "'")

	return Token{}, false
}

func (p *parser) expectKeyword(word string) (Token, bool) {
	if p.atWord(word) {
		return p.advance(), true
	}

	p.unexpected("expected " + word)

	return Token{}, false
}

// expectIdentifier accepts a plain identifier or a delimited identifier as a
// name, per spec §4.1 (delimited identifiers let a reserved word stand in
// for a name). A reserved or pre-reserved keyword lexeme is flagged and
// recovered from by consuming it anyway, using its literal text.
func (p *parser) expectIdentifier() (string, Span) {
	t := p.cur()

	switch t.Kind {
	case TokenIdentifier, TokenDelimitedIdentifier:
		p.advance()

		return t.Text, t.Span
	case TokenKeyword:
		p.errorAt(t.Span, CodeReservedWordAsIdentifier, "reserved word '"+t.Text+"' cannot be used as an identifier here")
		p.advance()

		return t.Text, t.Span
	default:
		p.unexpected("expected identifier")

		return "", t.Span
	}
}

// synchronize advances past tokens until one that looks like the start of a
// new statement, a statement separator, or EOF, so that one malformed
// statement does not corrupt the rest of the program.
func (p *parser) synchronize() {
	for !p.atEOF() {
		if p.atPunct(";") || p.atStatementStart() {
			return
		}

		p.advance()
	}
}

func (p *parser) atStatementStart() bool {
	switch {
	case p.atKeyword("SESSION"), p.atKeyword("START"), p.atKeyword("COMMIT"),
		p.atKeyword("ROLLBACK"), p.atKeyword("CREATE"), p.atKeyword("DROP"):
		return true
	default:
		return p.atClauseStart()
	}
}

func (p *parser) atClauseStart() bool {
	switch {
	case p.atKeyword("MATCH"), p.atKeyword("OPTIONAL"), p.atKeyword("FILTER"),
		p.atWord("WHERE"), p.atKeyword("LET"), p.atKeyword("FOR"),
		p.atKeyword("ORDER"), p.atKeyword("OFFSET"), p.atKeyword("SKIP"),
		p.atKeyword("LIMIT"), p.atKeyword("CALL"), p.atKeyword("SELECT"),
		p.atKeyword("INSERT"), p.atKeyword("SET"), p.atKeyword("REMOVE"),
		p.atKeyword("DETACH"), p.atKeyword("DELETE"), p.atKeyword("RETURN"),
		p.atKeyword("FINISH"):
		return true
	default:
		return false
	}
}

func (p *parser) parseProgram() *Program {
	start := p.cur().Span
	prog := &Program{}

	for !p.atEOF() {
		for p.atPunct(";") {
			p.advance()
		}

		if p.atEOF() {
			break
		}

		stmtStart := p.cur().Span
		stmt := p.parseStatement()

		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else if p.cur().Span == stmtStart {
			// Guarantee forward progress even if a production consumed
			// nothing at all.
			p.advance()
		}
	}

	prog.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return prog
}

func (p *parser) parseStatement() Statement {
	switch {
	case p.atKeyword("SESSION"):
		return p.parseSessionStatement()
	case p.atKeyword("START"), p.atKeyword("COMMIT"), p.atKeyword("ROLLBACK"):
		return p.parseTransactionStatement()
	case p.atKeyword("CREATE"), p.atKeyword("DROP"):
		return p.parseCatalogStatement()
	case p.atClauseStart():
		return p.parseQueryOrDataModification()
	default:
		p.unexpected("expected a statement")
		p.synchronize()

		return nil
	}
}

func (p *parser) parseSessionStatement() Statement {
	start := p.advance().Span // SESSION

	var clauses []*SessionClause
	for {
		c := p.parseSessionClause()
		if c == nil {
			break
		}

		clauses = append(clauses, c)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	stmt := &SessionStatement{Clauses: clauses}
	stmt.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return stmt
}

func (p *parser) parseSessionClause() *SessionClause {
	start := p.cur().Span

	switch {
	case p.atKeyword("SET"):
		p.advance()

		if p.atWord("SCHEMA") {
			p.advance()

			val := p.parseExpression()
			c := &SessionClause{Kind: SessionSetSchema, Value: val}
			c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

			return c
		}

		if p.atWord("GRAPH") {
			p.advance()

			val := p.parseExpression()
			c := &SessionClause{Kind: SessionSetGraph, Value: val}
			c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

			return c
		}

		p.expectKeyword("PARAMETER")
		name, _ := p.expectIdentifier()
		p.expectOp("=")
		val := p.parseExpression()
		c := &SessionClause{Kind: SessionSetParameter, Name: name, Value: val}
		c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return c
	case p.atWord("RESET"):
		p.advance()
		p.expectKeyword("PARAMETER")
		name, _ := p.expectIdentifier()
		c := &SessionClause{Kind: SessionResetParameter, Name: name}
		c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return c
	default:
		return nil
	}
}

func (p *parser) parseTransactionStatement() Statement {
	start := p.cur().Span

	var kw TransactionKeyword

	switch {
	case p.atKeyword("START"):
		p.advance()
		p.expectKeyword("TRANSACTION")

		kw = TransactionStart
	case p.atKeyword("COMMIT"):
		p.advance()

		kw = TransactionCommit
	case p.atKeyword("ROLLBACK"):
		p.advance()

		kw = TransactionRollback
	}

	stmt := &TransactionStatement{Keyword: kw}
	stmt.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return stmt
}

func (p *parser) parseCatalogStatement() Statement {
	start := p.cur().Span

	action := CatalogCreate
	if p.atKeyword("DROP") {
		action = CatalogDrop
	}

	p.advance()

	var object CatalogObjectKind

	switch {
	case p.atWord("SCHEMA"):
		p.advance()

		object = CatalogObjectSchema
	case p.atKeyword("GRAPH"):
		p.advance()

		if p.atKeyword("TYPE") {
			p.advance()

			object = CatalogObjectGraphType
		} else {
			object = CatalogObjectGraph
		}
	default:
		p.unexpected("expected GRAPH, GRAPH TYPE, or SCHEMA")
	}

	name, _ := p.expectIdentifier()

	stmt := &CatalogStatement{Action: action, Object: object, Name: name}
	stmt.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return stmt
}

// parseQueryOrDataModification parses the shared clause-pipeline grammar and
// classifies the result as a DataModificationStatement (spec §3.2: any
// clause list containing INSERT/SET/REMOVE/DELETE) or a Query statement,
// folding any trailing set-operator chain into a CompositeQuery.
func (p *parser) parseQueryOrDataModification() Statement {
	start := p.cur().Span
	clauses := p.parseClauses()

	if containsDataModification(clauses) {
		stmt := &DataModificationStatement{Clauses: clauses}
		stmt.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return stmt
	}

	lq := &LinearQuery{Clauses: clauses}
	lq.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	query := p.parseCompositeTail(lq, start)

	stmt := &QueryStatement{Query: query}
	stmt.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return stmt
}

func containsDataModification(clauses []Clause) bool {
	for _, c := range clauses {
		switch c.(type) {
		case *InsertClause, *SetClause, *RemoveClause, *DeleteClause:
			return true
		}
	}

	return false
}

// parseCompositeTail folds zero or more `UNION [ALL] | EXCEPT | INTERSECT |
// OTHERWISE linearQuery` suffixes onto left, left-associatively (spec §3.2).
func (p *parser) parseCompositeTail(left Query, start Span) Query {
	for {
		op, ok := p.tryParseSetOperator()
		if !ok {
			return left
		}

		rightStart := p.cur().Span
		rightClauses := p.parseClauses()
		right := &LinearQuery{Clauses: rightClauses}
		right.setSpan(Span{Start: rightStart.Start, End: p.cur().Span.Start})

		cq := &CompositeQuery{Left: left, Operator: op, Right: right}
		cq.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = cq
	}
}

func (p *parser) tryParseSetOperator() (SetOperator, bool) {
	switch {
	case p.atKeyword("UNION"):
		p.advance()

		if p.atWord("ALL") {
			p.advance()

			return SetOperatorUnionAll, true
		}

		return SetOperatorUnion, true
	case p.atKeyword("EXCEPT"):
		p.advance()

		return SetOperatorExcept, true
	case p.atKeyword("INTERSECT"):
		p.advance()

		return SetOperatorIntersect, true
	case p.atKeyword("OTHERWISE"):
		p.advance()

		return SetOperatorOtherwise, true
	default:
		return 0, false
	}
}

// parseClauses parses a maximal run of primitive clauses, stopping at a
// terminal RETURN/FINISH clause (inclusive), a statement separator, a
// set-operator keyword, or anything that cannot start a clause.
func (p *parser) parseClauses() []Clause {
	var clauses []Clause

	for {
		if p.atPunct(";") || p.atEOF() || p.isSetOperatorKeyword() || p.atPunct("}") {
			break
		}

		c := p.parseClause()
		if c == nil {
			break
		}

		clauses = append(clauses, c)

		switch c.(type) {
		case *ReturnClause, *FinishClause:
			return clauses
		}
	}

	return clauses
}

func (p *parser) isSetOperatorKeyword() bool {
	return p.atKeyword("UNION") || p.atKeyword("EXCEPT") || p.atKeyword("INTERSECT") || p.atKeyword("OTHERWISE")
}

func (p *parser) parseClause() Clause {
	switch {
	case p.atKeyword("MATCH"):
		return p.parseMatchClause()
	case p.atKeyword("OPTIONAL"):
		return p.parseOptionalClause()
	case p.atKeyword("FILTER"), p.atWord("WHERE"):
		return p.parseFilterClause()
	case p.atKeyword("LET"):
		return p.parseLetClause()
	case p.atKeyword("FOR"):
		return p.parseForClause()
	case p.atKeyword("ORDER"), p.atKeyword("OFFSET"), p.atKeyword("SKIP"), p.atKeyword("LIMIT"):
		return p.parseOrderByPageClause()
	case p.atKeyword("CALL"):
		return p.parseCallClause(false)
	case p.atKeyword("SELECT"):
		return p.parseSelectClause()
	case p.atKeyword("INSERT"):
		return p.parseInsertClause()
	case p.atKeyword("SET"):
		return p.parseSetClause()
	case p.atKeyword("REMOVE"):
		return p.parseRemoveClause()
	case p.atKeyword("DETACH"), p.atKeyword("DELETE"):
		return p.parseDeleteClause()
	case p.atKeyword("RETURN"):
		return p.parseReturnClause()
	case p.atKeyword("FINISH"):
		return p.parseFinishClause()
	default:
		return nil
	}
}

func (p *parser) parseOptionalClause() Clause {
	start := p.advance().Span // OPTIONAL

	switch {
	case p.atKeyword("MATCH"):
		p.advance()

		if p.atPunct("{") {
			p.advance()

			inner := &LinearQuery{Clauses: p.parseClauses()}
			p.expectPunct("}")

			c := &OptionalMatchClause{Block: inner}
			c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

			return c
		}

		pattern := p.parseGraphPattern()
		c := &OptionalMatchClause{Pattern: pattern}
		c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return c
	case p.atKeyword("CALL"):
		return p.parseCallClause(true)
	default:
		p.unexpected("expected MATCH or CALL after OPTIONAL")

		return nil
	}
}

func (p *parser) parseMatchClause() Clause {
	start := p.advance().Span // MATCH
	pattern := p.parseGraphPattern()

	c := &MatchClause{Pattern: pattern}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseFilterClause() Clause {
	start := p.advance().Span // FILTER | WHERE
	cond := p.parseExpression()

	c := &FilterClause{Condition: cond}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseLetClause() Clause {
	start := p.advance().Span // LET

	var bindings []*LetBinding
	for {
		bStart := p.cur().Span
		name, _ := p.expectIdentifier()
		p.expectOp("=")
		val := p.parseExpression()

		b := &LetBinding{Name: name, Value: val}
		b.setSpan(Span{Start: bStart.Start, End: p.cur().Span.Start})
		bindings = append(bindings, b)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	c := &LetClause{Bindings: bindings}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseForClause() Clause {
	start := p.advance().Span // FOR
	variable, _ := p.expectIdentifier()
	p.expectKeyword("IN")
	source := p.parseExpression()

	c := &ForClause{Variable: variable, Source: source}

loop:
	for p.atWord("WITH") {
		p.advance()

		switch {
		case p.atWord("ORDINALITY"):
			p.advance()
			p.expectKeyword("AS")
			c.Ordinality, _ = p.expectIdentifier()
		case p.atKeyword("OFFSET"):
			p.advance()
			p.expectKeyword("AS")
			c.Offset, _ = p.expectIdentifier()
		default:
			p.unexpected("expected ORDINALITY or OFFSET after WITH")

			break loop
		}
	}

	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseOrderByPageClause() Clause {
	start := p.cur().Span
	c := &OrderByPageClause{}

	if p.atKeyword("ORDER") {
		p.advance()
		p.expectKeyword("BY")

		for {
			iStart := p.cur().Span
			expr := p.parseExpression()

			item := &OrderItem{Expr: expr}

			switch {
			case p.atWord("ASC"), p.atWord("ASCENDING"):
				p.advance()
			case p.atWord("DESC"), p.atWord("DESCENDING"):
				p.advance()

				item.Descending = true
			}

			if p.atKeyword("NULLS") {
				p.advance()

				item.HasNullsDir = true

				switch {
				case p.atWord("FIRST"):
					p.advance()

					item.NullsFirst = true
				case p.atWord("LAST"):
					p.advance()
				default:
					p.unexpected("expected FIRST or LAST after NULLS")
				}
			}

			item.setSpan(Span{Start: iStart.Start, End: p.cur().Span.Start})
			c.OrderBy = append(c.OrderBy, item)

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}
	}

	if p.atKeyword("OFFSET") || p.atKeyword("SKIP") {
		p.advance()

		c.Skip = p.parseExpression()
	}

	if p.atKeyword("LIMIT") {
		p.advance()

		c.Limit = p.parseExpression()
	}

	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseCallClause(optional bool) Clause {
	start := p.advance().Span // CALL

	if p.atPunct("(") && p.looksLikeImportedVariableList() {
		p.advance()

		var imported []string
		for !p.atPunct(")") {
			name, _ := p.expectIdentifier()
			imported = append(imported, name)

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}

		p.expectPunct(")")
		p.expectPunct("{")

		inner := &LinearQuery{Clauses: p.parseClauses()}
		p.expectPunct("}")

		c := &CallClause{Optional: optional, Imported: imported, Inline: inner}
		c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return c
	}

	if p.atPunct("{") {
		p.advance()

		inner := &LinearQuery{Clauses: p.parseClauses()}
		p.expectPunct("}")

		c := &CallClause{Optional: optional, Inline: inner}
		c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return c
	}

	name, _ := p.expectIdentifier()
	for p.atPunct(".") {
		p.advance()

		part, _ := p.expectIdentifier()
		name += "." + part
	}

	var args []Expression
	if p.atPunct("(") {
		p.advance()

		for !p.atPunct(")") && !p.atEOF() {
			args = append(args, p.parseExpression())

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}

		p.expectPunct(")")
	}

	proc := &ProcedureCall{Name: name, Args: args}

	if p.atKeyword("YIELD") {
		p.advance()

		for {
			yStart := p.cur().Span
			yname, _ := p.expectIdentifier()

			item := &YieldItem{Name: yname}
			if p.atKeyword("AS") {
				p.advance()

				item.Alias, _ = p.expectIdentifier()
			}

			item.setSpan(Span{Start: yStart.Start, End: p.cur().Span.Start})
			proc.Yield = append(proc.Yield, item)

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}
	}

	proc.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	c := &CallClause{Optional: optional, Procedure: proc}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

// looksLikeImportedVariableList disambiguates `CALL (x, y) { ... }` (inline
// subquery with an imported-variable list) from `CALL proc(...)` by scanning
// ahead for the `) {` that only the inline form has, without consuming any
// tokens.
func (p *parser) looksLikeImportedVariableList() bool {
	depth := 0

	for i := p.pos; i < len(p.tokens); i++ {
		t := p.tokens[i]

		switch {
		case t.IsPunctuation("("):
			depth++
		case t.IsPunctuation(")"):
			depth--
			if depth == 0 {
				next := i + 1
				if next >= len(p.tokens) {
					return false
				}

				return p.tokens[next].IsPunctuation("{")
			}
		case t.Kind == TokenEOF:
			return false
		}
	}

	return false
}

func (p *parser) parseSelectClause() Clause {
	start := p.advance().Span // SELECT
	c := &SelectClause{}

	if p.atWord("DISTINCT") {
		p.advance()

		c.Distinct = true
	}

	if p.atOp("*") {
		p.advance()

		c.Star = true
	} else {
		for {
			iStart := p.cur().Span
			expr := p.parseExpression()

			item := &SelectItem{Expr: expr}
			if p.atKeyword("AS") {
				p.advance()

				item.Alias, _ = p.expectIdentifier()
			}

			item.setSpan(Span{Start: iStart.Start, End: p.cur().Span.Start})
			c.Items = append(c.Items, item)

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}
	}

	if p.atKeyword("FROM") {
		p.advance()

		c.From = p.parseExpression()
	}

	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseInsertClause() Clause {
	start := p.advance().Span // INSERT
	pattern := p.parseGraphPattern()

	c := &InsertClause{Pattern: pattern}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseSetClause() Clause {
	start := p.advance().Span // SET

	var items []*SetItem
	for {
		iStart := p.cur().Span
		target := p.parsePropertyAccessTarget()

		item := &SetItem{Target: target}

		if p.atPunct(":") {
			p.advance()

			item.AddLabel, _ = p.expectIdentifier()
		} else {
			p.expectOp("=")

			item.Value = p.parseExpression()
		}

		item.setSpan(Span{Start: iStart.Start, End: p.cur().Span.Start})
		items = append(items, item)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	c := &SetClause{Items: items}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

// parsePropertyAccessTarget parses `variable.property`, the left-hand side
// shape SET and REMOVE assignments share.
func (p *parser) parsePropertyAccessTarget() *PropertyAccess {
	start := p.cur().Span
	name, _ := p.expectIdentifier()

	target := &VariableRef{Name: name}
	target.setSpan(start)

	p.expectPunct(".")
	prop, _ := p.expectIdentifier()

	pa := &PropertyAccess{Target: target, Property: prop}
	pa.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return pa
}

func (p *parser) parseRemoveClause() Clause {
	start := p.advance().Span // REMOVE

	var items []*RemoveItem
	for {
		iStart := p.cur().Span
		varStart := p.cur().Span
		name, _ := p.expectIdentifier()

		target := &VariableRef{Name: name}
		target.setSpan(varStart)

		item := &RemoveItem{Target: target}

		if p.atPunct(".") {
			p.advance()

			item.Property, _ = p.expectIdentifier()
		} else if p.atPunct(":") {
			p.advance()

			item.Label, _ = p.expectIdentifier()
		} else {
			p.unexpected("expected '.' or ':' in REMOVE item")
		}

		item.setSpan(Span{Start: iStart.Start, End: p.cur().Span.Start})
		items = append(items, item)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	c := &RemoveClause{Items: items}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseDeleteClause() Clause {
	start := p.cur().Span

	c := &DeleteClause{}
	if p.atKeyword("DETACH") {
		p.advance()

		c.Detach = true
	}

	p.expectKeyword("DELETE")

	for {
		name, _ := p.expectIdentifier()
		c.Variables = append(c.Variables, name)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseReturnClause() Clause {
	start := p.advance().Span // RETURN
	c := &ReturnClause{}

	if p.atWord("DISTINCT") {
		p.advance()

		c.Distinct = true
	}

	if p.atOp("*") {
		p.advance()

		c.Star = true
	} else {
		for {
			iStart := p.cur().Span
			expr := p.parseExpression()

			item := &ReturnItem{Expr: expr}
			if p.atKeyword("AS") {
				p.advance()

				item.Alias, _ = p.expectIdentifier()
			}

			item.setSpan(Span{Start: iStart.Start, End: p.cur().Span.Start})
			c.Items = append(c.Items, item)

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}
	}

	if p.atKeyword("GROUP") {
		p.advance()
		p.expectKeyword("BY")

		for {
			c.GroupBy = append(c.GroupBy, p.parseExpression())

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}
	}

	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseFinishClause() Clause {
	start := p.advance().Span // FINISH

	c := &FinishClause{}
	c.setSpan(start)

	return c
}
