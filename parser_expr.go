package gql

import "strings"

// aggregateFunctionNames are the names recognized as AggregateCall rather
// than plain FunctionCall (spec §4.4/§4.7).
var aggregateFunctionNames = buildSet("COUNT", "AVG", "MIN", "MAX", "SUM", "COLLECT")

// parseExpression parses a full expression, entering the precedence table
// at its lowest-binding level (spec §4.2: logical OR).
func (p *parser) parseExpression() Expression {
	return p.parseOr()
}

// Precedence levels, loosest to tightest: OR, XOR, AND, NOT, IS-predicates
// and comparisons, string concatenation, additive, multiplicative, unary
// sign and power, postfix, primary (spec §4.2's 9-level table).
func (p *parser) parseOr() Expression {
	left := p.parseXor()

	for p.atKeyword("OR") {
		start := left.Span()
		p.advance()

		right := p.parseXor()
		node := &BinaryOp{Op: "OR", Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseXor() Expression {
	left := p.parseAnd()

	for p.atKeyword("XOR") {
		start := left.Span()
		p.advance()

		right := p.parseAnd()
		node := &BinaryOp{Op: "XOR", Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseAnd() Expression {
	left := p.parseNot()

	for p.atKeyword("AND") {
		start := left.Span()
		p.advance()

		right := p.parseNot()
		node := &BinaryOp{Op: "AND", Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseNot() Expression {
	if p.atKeyword("NOT") {
		start := p.advance().Span

		operand := p.parseNot()
		node := &UnaryOp{Op: "NOT", Operand: operand}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	}

	return p.parseComparison()
}

var comparisonOps = []string{"=", "<>", "<=", ">=", "<", ">"}

func (p *parser) parseComparison() Expression {
	left := p.parseConcat()

	for {
		if p.atKeyword("IS") {
			left = p.parseIsPredicateTail(left)

			continue
		}

		matched := false

		for _, op := range comparisonOps {
			if p.atOp(op) {
				start := left.Span()
				p.advance()

				right := p.parseConcat()
				node := &BinaryOp{Op: op, Left: left, Right: right}
				node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
				left = node
				matched = true

				break
			}
		}

		if !matched {
			return left
		}
	}
}

// parseIsPredicateTail parses the tail of an `operand IS [NOT] ...`
// predicate family (spec §4.2): NULL/TRUE/FALSE/UNKNOWN/NORMALIZED, TYPED
// type, LABELED labelExpr, SOURCE OF/DESTINATION OF expr, or DIRECTED.
func (p *parser) parseIsPredicateTail(operand Expression) Expression {
	start := operand.Span()
	p.advance() // IS

	not := false
	if p.atKeyword("NOT") {
		p.advance()

		not = true
	}

	switch {
	case p.atKeyword("NULL"):
		p.advance()

		return finishIsPredicate(operand, not, IsCheckNull, start, p)
	case p.atKeyword("TRUE"):
		p.advance()

		return finishIsPredicate(operand, not, IsCheckTrue, start, p)
	case p.atKeyword("FALSE"):
		p.advance()

		return finishIsPredicate(operand, not, IsCheckFalse, start, p)
	case p.atKeyword("UNKNOWN"):
		p.advance()

		return finishIsPredicate(operand, not, IsCheckUnknown, start, p)
	case p.atWord("NORMALIZED"):
		p.advance()

		return finishIsPredicate(operand, not, IsCheckNormalized, start, p)
	case p.atKeyword("TYPED"):
		p.advance()

		target := p.parseType()
		node := &IsTypedPredicate{Operand: operand, Not: not, Target: target}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	case p.atWord("LABELED") || p.atWord("LABEL"):
		p.advance()

		labels := p.parseLabelExpr()
		node := &IsLabeledPredicate{Operand: operand, Not: not, Labels: labels}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	case p.atWord("SOURCE"):
		p.advance()
		p.expectKeyword("OF")

		of := p.parseConcat()
		node := &IsSourceOrDestinationPredicate{Operand: operand, Not: not, Source: true, Of: of}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	case p.atWord("DESTINATION"):
		p.advance()
		p.expectKeyword("OF")

		of := p.parseConcat()
		node := &IsSourceOrDestinationPredicate{Operand: operand, Not: not, Source: false, Of: of}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	case p.atWord("DIRECTED"):
		p.advance()

		node := &IsDirectedPredicate{Operand: operand, Not: not}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	default:
		p.unexpected("expected predicate after IS [NOT]")

		return operand
	}
}

func finishIsPredicate(operand Expression, not bool, check IsCheckKind, start Span, p *parser) Expression {
	node := &IsPredicate{Operand: operand, Not: not, Check: check}
	node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return node
}

func (p *parser) parseConcat() Expression {
	left := p.parseAdditive()

	for p.atOp("||") {
		start := left.Span()
		p.advance()

		right := p.parseAdditive()
		node := &BinaryOp{Op: "||", Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseAdditive() Expression {
	left := p.parseMultiplicative()

	for p.atOp("+") || p.atOp("-") {
		op := p.cur().Text
		start := left.Span()
		p.advance()

		right := p.parseMultiplicative()
		node := &BinaryOp{Op: op, Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseMultiplicative() Expression {
	left := p.parseUnary()

	for p.atOp("*") || p.atOp("/") || p.atOp("%") {
		op := p.cur().Text
		start := left.Span()
		p.advance()

		right := p.parseUnary()
		node := &BinaryOp{Op: op, Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseUnary() Expression {
	if p.atOp("+") || p.atOp("-") {
		op := p.cur().Text
		start := p.advance().Span

		operand := p.parseUnary()
		node := &UnaryOp{Op: op, Operand: operand}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	}

	return p.parsePower()
}

func (p *parser) parsePower() Expression {
	left := p.parsePostfix()

	if p.atOp("^") {
		start := left.Span()
		p.advance()

		right := p.parseUnary() // right-associative
		node := &BinaryOp{Op: "^", Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	}

	return left
}

func (p *parser) parsePostfix() Expression {
	expr := p.parsePrimary()

	for {
		switch {
		case p.atPunct("."):
			start := expr.Span()
			p.advance()

			prop, _ := p.expectIdentifier()
			node := &PropertyAccess{Target: expr, Property: prop}
			node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
			expr = node
		case p.atPunct("["):
			start := expr.Span()
			p.advance()

			index := p.parseExpression()
			p.expectPunct("]")

			node := &Subscript{Target: expr, Index: index}
			node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
			expr = node
		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() Expression {
	start := p.cur().Span

	switch {
	case p.cur().Kind == TokenNumericLiteral:
		text := p.advance().Text
		kind := LiteralInteger
		if strings.ContainsAny(text, ".eEfFdD") && !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
			kind = LiteralFloat
		}

		lit := &Literal{Kind: kind, Text: text}
		lit.setSpan(start)

		return lit
	case p.cur().Kind == TokenStringLiteral:
		text := p.advance().Text
		lit := &Literal{Kind: LiteralString, Text: text}
		lit.setSpan(start)

		return lit
	case p.cur().Kind == TokenByteStringLiteral:
		text := p.advance().Text
		lit := &Literal{Kind: LiteralByteString, Text: text}
		lit.setSpan(start)

		return lit
	case p.cur().Kind == TokenParameter:
		name := strings.TrimPrefix(p.advance().Text, "$")
		ref := &ParameterRef{Name: name}
		ref.setSpan(start)

		return ref
	case p.cur().Kind == TokenReferenceParameter:
		name := strings.TrimPrefix(p.advance().Text, "$$")
		ref := &ParameterRef{Name: name, Reference: true}
		ref.setSpan(start)

		return ref
	case p.atKeyword("TRUE"):
		p.advance()

		lit := &Literal{Kind: LiteralBoolean, Text: "TRUE"}
		lit.setSpan(start)

		return lit
	case p.atKeyword("FALSE"):
		p.advance()

		lit := &Literal{Kind: LiteralBoolean, Text: "FALSE"}
		lit.setSpan(start)

		return lit
	case p.atKeyword("NULL"):
		p.advance()

		lit := &Literal{Kind: LiteralNull, Text: "NULL"}
		lit.setSpan(start)

		return lit
	case p.atKeyword("DATE"):
		return p.parseTemporalLiteral(LiteralDate)
	case p.atKeyword("TIME"):
		return p.parseTemporalLiteral(LiteralTime)
	case p.atKeyword("TIMESTAMP"):
		return p.parseTemporalLiteral(LiteralTimestamp)
	case p.atKeyword("DURATION"):
		return p.parseTemporalLiteral(LiteralDuration)
	case p.atKeyword("CASE"):
		return p.parseCaseExpr()
	case p.atKeyword("CAST"):
		return p.parseCastExpr()
	case p.atKeyword("EXISTS"):
		return p.parseExistsExpr()
	case p.atKeyword("CURRENT_DATE"), p.atKeyword("CURRENT_TIME"), p.atKeyword("CURRENT_TIMESTAMP"),
		p.atKeyword("CURRENT_GRAPH"), p.atKeyword("CURRENT_PROPERTY_GRAPH"), p.atKeyword("CURRENT_SCHEMA"),
		p.atKeyword("HOME_GRAPH"), p.atKeyword("HOME_PROPERTY_GRAPH"), p.atKeyword("HOME_SCHEMA"):
		name := p.advance().Text

		call := &FunctionCall{Name: name}
		call.setSpan(start)

		return call
	case p.atPunct("["):
		return p.parseListConstructor()
	case p.atPunct("{"):
		return p.parseRecordConstructor()
	case p.atPunct("("):
		return p.parseParenthesizedOrSubquery()
	case p.atIdent() || p.cur().Kind == TokenDelimitedIdentifier:
		return p.parseIdentifierLed()
	default:
		p.unexpected("expected an expression")
		p.advance()

		lit := &Literal{Kind: LiteralNull, Text: ""}
		lit.setSpan(start)

		return lit
	}
}

func (p *parser) parseTemporalLiteral(kind LiteralKind) Expression {
	start := p.advance().Span // DATE | TIME | TIMESTAMP | DURATION

	if p.cur().Kind != TokenStringLiteral {
		p.unexpected("expected a string literal after temporal keyword")

		lit := &Literal{Kind: kind, Text: ""}
		lit.setSpan(start)

		return lit
	}

	text := p.advance().Text
	lit := &Literal{Kind: kind, Text: text}
	lit.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return lit
}

func (p *parser) parseCaseExpr() Expression {
	start := p.advance().Span // CASE

	c := &CaseExpr{}
	if !p.atKeyword("WHEN") {
		c.Operand = p.parseExpression()
	}

	for p.atKeyword("WHEN") {
		p.advance()

		cond := p.parseExpression()
		p.expectKeyword("THEN")
		result := p.parseExpression()

		c.Whens = append(c.Whens, &WhenClause{Condition: cond, Result: result})
	}

	if p.atKeyword("ELSE") {
		p.advance()

		c.Else = p.parseExpression()
	}

	p.expectKeyword("END")
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

func (p *parser) parseCastExpr() Expression {
	start := p.advance().Span // CAST
	p.expectPunct("(")

	operand := p.parseExpression()
	p.expectKeyword("AS")

	target := p.parseType()
	p.expectPunct(")")

	c := &CastExpr{Operand: operand, Target: target}
	c.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return c
}

// parseExistsExpr parses `EXISTS { pattern }` or `EXISTS { query }` (spec
// §4.9): brace content that starts with a clause keyword is a nested query;
// anything else is parsed as the bare-pattern form.
func (p *parser) parseExistsExpr() Expression {
	start := p.advance().Span // EXISTS
	p.expectPunct("{")

	e := &ExistsExpr{}

	if p.atClauseStart() {
		e.Query = &LinearQuery{Clauses: p.parseClauses()}
	} else {
		e.Pattern = p.parseGraphPattern()
	}

	p.expectPunct("}")
	e.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return e
}

func (p *parser) parseListConstructor() Expression {
	start := p.advance().Span // [

	lc := &ListConstructor{}
	for !p.atPunct("]") && !p.atEOF() {
		lc.Elements = append(lc.Elements, p.parseExpression())

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	p.expectPunct("]")
	lc.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return lc
}

func (p *parser) parseRecordConstructor() Expression {
	start := p.advance().Span // {

	rc := &RecordConstructor{}
	for !p.atPunct("}") && !p.atEOF() {
		fStart := p.cur().Span
		name, _ := p.expectIdentifier()
		p.expectPunct(":")
		val := p.parseExpression()

		f := &RecordField{Name: name, Value: val}
		f.setSpan(Span{Start: fStart.Start, End: p.cur().Span.Start})
		rc.Fields = append(rc.Fields, f)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	p.expectPunct("}")
	rc.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return rc
}

// parseParenthesizedOrSubquery distinguishes a grouped expression `(expr)`
// from an embedded query `(MATCH ... RETURN ...)` (spec §4.9): the latter's
// content begins with a clause keyword.
func (p *parser) parseParenthesizedOrSubquery() Expression {
	start := p.advance().Span // (

	if p.atClauseStart() {
		clauses := p.parseClauses()
		lq := &LinearQuery{Clauses: clauses}
		lq.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		query := p.parseCompositeTail(lq, start)
		p.expectPunct(")")

		sub := &SubqueryExpr{Query: query}
		sub.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return sub
	}

	inner := p.parseExpression()
	p.expectPunct(")")

	// Grouping parentheses are not represented by a dedicated node; the
	// inner expression's own span is widened to cover them so diagnostics
	// still point at the full parenthesized form.
	if base, ok := inner.(interface{ setSpan(Span) }); ok {
		base.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
	}

	return inner
}

// parseIdentifierLed parses any expression that begins with a bare or
// delimited identifier: a variable reference, or a function or aggregate
// call. No path constructor is produced here.
func (p *parser) parseIdentifierLed() Expression {
	start := p.cur().Span
	name, _ := p.expectIdentifier()

	if !p.atPunct("(") {
		ref := &VariableRef{Name: name}
		ref.setSpan(start)

		return ref
	}

	p.advance() // (

	upper := strings.ToUpper(name)
	if _, isAggregate := aggregateFunctionNames[upper]; isAggregate {
		call := &AggregateCall{Name: upper}

		if p.atWord("DISTINCT") {
			p.advance()

			call.Distinct = true
		}

		if p.atOp("*") {
			p.advance()

			call.Star = true
		} else if !p.atPunct(")") {
			call.Arg = p.parseExpression()
		}

		p.expectPunct(")")
		call.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return call
	}

	call := &FunctionCall{Name: name}

	if p.atWord("DISTINCT") {
		p.advance()

		call.Distinct = true
	}

	for !p.atPunct(")") && !p.atEOF() {
		call.Args = append(call.Args, p.parseExpression())

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	p.expectPunct(")")
	call.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return call
}
