package gql

// parseGraphPattern parses a list of comma-separated PathPattern, optionally
// preceded by a path-search prefix (spec §4.2: `ALL`, `ANY`, `SHORTEST k`,
// `ALL SHORTEST`, `ANY SHORTEST`, `SHORTEST k GROUPS`).
func (p *parser) parseGraphPattern() *GraphPattern {
	start := p.cur().Span
	prefix := p.tryParsePathSearchPrefix()

	var paths []*PathPattern
	paths = append(paths, p.parsePathPattern())

	for p.atPunct(",") {
		p.advance()

		paths = append(paths, p.parsePathPattern())
	}

	gp := &GraphPattern{SearchPrefix: prefix, Paths: paths}
	gp.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return gp
}

func (p *parser) tryParsePathSearchPrefix() *PathSearchPrefix {
	start := p.cur().Span

	switch {
	case p.atKeyword("ALL"):
		p.advance()

		kind := PathSearchAll
		if p.atKeyword("SHORTEST") {
			p.advance()

			kind = PathSearchAllShortest
		}

		prefix := &PathSearchPrefix{Kind: kind}
		prefix.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return prefix
	case p.atKeyword("ANY"):
		p.advance()

		kind := PathSearchAny
		if p.atKeyword("SHORTEST") {
			p.advance()

			kind = PathSearchAnyShortest
		}

		prefix := &PathSearchPrefix{Kind: kind}
		prefix.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return prefix
	case p.atKeyword("SHORTEST"):
		p.advance()

		prefix := &PathSearchPrefix{Kind: PathSearchShortest}
		if p.cur().Kind == TokenNumericLiteral {
			lit := &Literal{Kind: LiteralInteger, Text: p.cur().Text}
			lit.setSpan(p.cur().Span)
			p.advance()
			prefix.Count = lit
		}

		if p.atWord("GROUP") || p.atWord("GROUPS") {
			p.advance()

			prefix.Kind = PathSearchShortestGroups
		}

		prefix.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return prefix
	default:
		return nil
	}
}

func (p *parser) parsePathPattern() *PathPattern {
	start := p.cur().Span

	mode := PathModeNone

	switch {
	case p.atWord("WALK"):
		p.advance()

		mode = PathModeWalk
	case p.atWord("TRAIL"):
		p.advance()

		mode = PathModeTrail
	case p.atWord("SIMPLE"):
		p.advance()

		mode = PathModeSimple
	case p.atWord("ACYCLIC"):
		p.advance()

		mode = PathModeAcyclic
	}

	var variable string
	if p.atIdent() && p.peekAt(1).IsOperator("=") {
		variable, _ = p.expectIdentifier()
		p.advance() // =
	}

	var elements []ElementPattern
	elements = append(elements, p.parseNodePattern())

	for p.atEdgeStart() {
		elements = append(elements, p.parseEdgePattern())
		elements = append(elements, p.parseNodePattern())
	}

	pp := &PathPattern{Mode: mode, Variable: variable, Elements: elements}
	pp.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return pp
}

// atEdgeStart reports whether the cursor sits at the start of an edge
// pattern: an optional '<', followed directly by '-' or '~'.
func (p *parser) atEdgeStart() bool {
	if p.atOp("<") {
		return p.peekAt(1).IsOperator("-") || p.peekAt(1).IsOperator("~")
	}

	return p.atOp("-") || p.atOp("~")
}

func (p *parser) parseNodePattern() ElementPattern {
	start := p.cur().Span
	p.expectPunct("(")

	var variable string
	if p.atIdent() {
		variable, _ = p.expectIdentifier()
	}

	var labels LabelExpression
	if p.atPunct(":") {
		p.advance()

		labels = p.parseLabelExpr()
	}

	var props *PropertyMap
	if p.atPunct("{") {
		props = p.parsePropertyMap()
	}

	var pred Expression
	if p.atWord("WHERE") {
		p.advance()

		pred = p.parseExpression()
	}

	p.expectPunct(")")

	np := &NodePattern{Variable: variable, Labels: labels, Properties: props, Predicate: pred}
	np.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return np
}

func (p *parser) parseEdgePattern() ElementPattern {
	start := p.cur().Span

	left := false
	if p.atOp("<") {
		p.advance()

		left = true
	}

	useTilde := p.atOp("~")
	if useTilde {
		p.advance()
	} else {
		p.expectOp("-")
	}

	var variable string
	var labels LabelExpression
	var props *PropertyMap
	var pred Expression
	var quant *Quantifier

	bracketed := p.atPunct("[")
	if bracketed {
		p.advance()

		if p.atIdent() {
			variable, _ = p.expectIdentifier()
		}

		if p.atPunct(":") {
			p.advance()

			labels = p.parseLabelExpr()
		}

		quant = p.tryParseQuantifier()

		if p.atPunct("{") {
			props = p.parsePropertyMap()
		}

		if p.atWord("WHERE") {
			p.advance()

			pred = p.parseExpression()
		}

		p.expectPunct("]")
	} else {
		quant = p.tryParseQuantifier()
	}

	// A bracketed edge always repeats its symbol after ']'; an abbreviated
	// edge (`-`, `->`, `<-`, `~`, `~>`, `<~`) may omit it.
	closing := "-"
	if useTilde {
		closing = "~"
	}

	if bracketed || p.atOp(closing) {
		p.expectOp(closing)
	}

	right := false
	if p.atOp(">") {
		p.advance()

		right = true
	}

	var dir Direction

	switch {
	case useTilde && left:
		dir = DirectionLeftOrUndirected
	case useTilde && right:
		dir = DirectionRightOrUndirected
	case useTilde:
		dir = DirectionUndirected
	case left && right:
		dir = DirectionEither
	case left:
		dir = DirectionLeft
	case right:
		dir = DirectionRight
	default:
		dir = DirectionAny
	}

	ep := &EdgePattern{
		Variable:   variable,
		Direction:  dir,
		Labels:     labels,
		Properties: props,
		Predicate:  pred,
		Quantifier: quant,
	}
	ep.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return ep
}

// tryParseQuantifier parses a repetition quantifier attached to an edge
// pattern: `*`, `*n`, `*n..m`, `*..m`, `+`, or `{n,m}` (spec §4.2).
func (p *parser) tryParseQuantifier() *Quantifier {
	start := p.cur().Span

	switch {
	case p.atOp("*"):
		p.advance()

		q := &Quantifier{Min: 0}

		if p.cur().Kind == TokenNumericLiteral {
			min := parseIntLiteral(p.advance().Text)
			q.Min = min
			q.Max = &min
		}

		if p.atOp("..") {
			p.advance()

			if p.cur().Kind == TokenNumericLiteral {
				max := parseIntLiteral(p.advance().Text)
				q.Max = &max
			} else {
				q.Max = nil
			}
		}

		q.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return q
	case p.atOp("+"):
		p.advance()

		q := &Quantifier{Min: 1}
		q.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return q
	case p.atOp("?"):
		p.advance()

		zero, one := 0, 1
		q := &Quantifier{Min: zero, Max: &one}
		q.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return q
	case p.atPunct("{"):
		p.advance()

		q := &Quantifier{}

		if p.cur().Kind == TokenNumericLiteral {
			q.Min = parseIntLiteral(p.advance().Text)
		}

		if p.atPunct(",") {
			p.advance()

			if p.cur().Kind == TokenNumericLiteral {
				max := parseIntLiteral(p.advance().Text)
				q.Max = &max
			}
		} else {
			q.Max = &q.Min
		}

		p.expectPunct("}")
		q.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return q
	default:
		return nil
	}
}

func parseIntLiteral(text string) int {
	n := 0
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}

		n = n*10 + int(r-'0')
	}

	return n
}

func (p *parser) parsePropertyMap() *PropertyMap {
	start := p.cur().Span
	p.expectPunct("{")

	var entries []*PropertyMapEntry
	for !p.atPunct("}") && !p.atEOF() {
		eStart := p.cur().Span
		key, _ := p.expectIdentifier()
		p.expectPunct(":")
		val := p.parseExpression()

		entry := &PropertyMapEntry{Key: key, Value: val}
		entry.setSpan(Span{Start: eStart.Start, End: p.cur().Span.Start})
		entries = append(entries, entry)

		if !p.atPunct(",") {
			break
		}

		p.advance()
	}

	p.expectPunct("}")

	pm := &PropertyMap{Entries: entries}
	pm.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return pm
}

// parseLabelExpr parses the label-expression boolean algebra (spec §3.2/
// §4.2): `!` (highest precedence) binds tighter than `&`, which binds
// tighter than `|`, with `(...)` grouping.
func (p *parser) parseLabelExpr() LabelExpression {
	return p.parseLabelOr()
}

func (p *parser) parseLabelOr() LabelExpression {
	left := p.parseLabelAnd()

	for p.atOp("|") {
		start := left.Span()
		p.advance()

		right := p.parseLabelAnd()
		node := &LabelOr{Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseLabelAnd() LabelExpression {
	left := p.parseLabelUnary()

	for p.atOp("&") {
		start := left.Span()
		p.advance()

		right := p.parseLabelUnary()
		node := &LabelAnd{Left: left, Right: right}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})
		left = node
	}

	return left
}

func (p *parser) parseLabelUnary() LabelExpression {
	start := p.cur().Span

	if p.atOp("!") {
		p.advance()

		operand := p.parseLabelUnary()
		node := &LabelNot{Operand: operand}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	}

	return p.parseLabelPrimary()
}

func (p *parser) parseLabelPrimary() LabelExpression {
	start := p.cur().Span

	switch {
	case p.atPunct("("):
		p.advance()

		inner := p.parseLabelExpr()
		p.expectPunct(")")

		node := &LabelGroup{Inner: inner}
		node.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return node
	case p.atOp("%"):
		p.advance()

		node := &LabelWildcard{}
		node.setSpan(start)

		return node
	default:
		name, span := p.expectIdentifier()
		node := &LabelName{Name: name}
		node.setSpan(span)

		return node
	}
}
