package gql

// parseType parses a GQL type denotation (spec §3.2): the boolean, numeric,
// string, temporal, path, list, record, and reference-value families, with
// an optional trailing `NOT NULL` modifier.
func (p *parser) parseType() Type {
	base := p.parseTypeBase()

	if p.atKeyword("NOT") {
		start := base.Span()
		p.advance()
		p.expectKeyword("NULL")

		nn := &NotNullType{Inner: base}
		nn.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return nn
	}

	return base
}

func (p *parser) parseTypeBase() Type {
	start := p.cur().Span

	switch {
	case p.atKeyword("BOOL"), p.atKeyword("BOOLEAN"):
		p.advance()

		t := &BooleanType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atKeyword("INT"), p.atKeyword("INTEGER"):
		p.advance()

		return p.finishNumericType(start, NumericInteger)
	case p.atKeyword("FLOAT"):
		p.advance()

		return p.finishNumericType(start, NumericFloat)
	case p.atWord("DECIMAL") || p.atWord("DEC"):
		p.advance()

		return p.finishNumericType(start, NumericDecimal)
	case p.atKeyword("STRING"):
		p.advance()

		t := &StringType{Kind: StringVarChar}
		t.Length = p.tryParseLengthSuffix()
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("CHAR") || p.atWord("CHARACTER"):
		p.advance()

		kind := StringChar
		if p.atWord("VARYING") {
			p.advance()

			kind = StringVarChar
		}

		t := &StringType{Kind: kind}
		t.Length = p.tryParseLengthSuffix()
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("BYTE") || p.atWord("BYTES"):
		p.advance()

		kind := StringByte
		if p.atWord("VARYING") {
			p.advance()

			kind = StringVarByte
		}

		t := &StringType{Kind: kind}
		t.Length = p.tryParseLengthSuffix()
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atKeyword("DATE"):
		p.advance()

		t := &TemporalType{Kind: TemporalDate}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atKeyword("TIME"):
		p.advance()

		t := &TemporalType{Kind: TemporalTime, WithZone: p.tryParseZoneSuffix()}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atKeyword("TIMESTAMP"):
		p.advance()

		t := &TemporalType{Kind: TemporalTimestamp, WithZone: p.tryParseZoneSuffix()}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atKeyword("DURATION"):
		p.advance()

		t := &TemporalType{Kind: TemporalDuration}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("PATH"):
		p.advance()

		t := &PathType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("LIST"):
		p.advance()
		p.expectOp("<")

		elem := p.parseType()
		p.expectOp(">")

		t := &ListType{Element: elem}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("RECORD"):
		p.advance()
		p.expectPunct("(")

		var fields []*RecordTypeField
		for !p.atPunct(")") && !p.atEOF() {
			fStart := p.cur().Span
			name, _ := p.expectIdentifier()
			fieldType := p.parseType()

			f := &RecordTypeField{Name: name, Type: fieldType}
			f.setSpan(Span{Start: fStart.Start, End: p.cur().Span.Start})
			fields = append(fields, f)

			if !p.atPunct(",") {
				break
			}

			p.advance()
		}

		p.expectPunct(")")

		t := &RecordType{Fields: fields}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("GRAPH"):
		p.advance()

		t := &GraphRefType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("NODE") || p.atWord("VERTEX"):
		p.advance()

		t := &NodeRefType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("EDGE"):
		p.advance()

		t := &EdgeRefType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atWord("BINDING") && p.peekAt(1).IsKeyword("TABLE") || p.atWord("TABLE"):
		if p.atWord("BINDING") {
			p.advance()
		}

		p.advance() // TABLE

		t := &BindingTableRefType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	case p.atKeyword("NULL"):
		p.advance()

		t := &NullType{}
		t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

		return t
	default:
		p.unexpected("expected a type")

		t := &UnknownType{}
		t.setSpan(start)

		return t
	}
}

func (p *parser) finishNumericType(start Span, kind NumericKind) Type {
	t := &NumericType{Kind: kind, Signed: true}

	if p.atPunct("(") {
		p.advance()

		prec := parseIntLiteral(p.cur().Text)
		if p.cur().Kind == TokenNumericLiteral {
			p.advance()
		}

		t.Precision = &prec

		if p.atPunct(",") {
			p.advance()

			scale := parseIntLiteral(p.cur().Text)
			if p.cur().Kind == TokenNumericLiteral {
				p.advance()
			}

			t.Scale = &scale
		}

		p.expectPunct(")")
	}

	if p.atWord("UNSIGNED") {
		p.advance()

		t.Signed = false
	}

	t.setSpan(Span{Start: start.Start, End: p.cur().Span.Start})

	return t
}

func (p *parser) tryParseLengthSuffix() *int {
	if !p.atPunct("(") {
		return nil
	}

	p.advance()

	n := parseIntLiteral(p.cur().Text)
	if p.cur().Kind == TokenNumericLiteral {
		p.advance()
	}

	p.expectPunct(")")

	return &n
}

func (p *parser) tryParseZoneSuffix() bool {
	if p.atKeyword("WITH") {
		p.advance()
		p.expectKeyword("TIME")
		p.expectKeyword("ZONE")

		return true
	}

	if p.atKeyword("WITHOUT") {
		p.advance()
		p.expectKeyword("TIME")
		p.expectKeyword("ZONE")

		return false
	}

	return false
}
