package sqlparse

import "strconv"

// ParsePredicate parses WHERE clause text into a Predicate tree.
//
// Precedence, weakest first: OR, AND, NOT, comparison. Parentheses
// override. Same-operator chains collapse into one Logical node with the
// operand order preserved (a AND b AND c is one AND with three operands);
// mixed operators always nest.
//
// Errors carry byte offsets relative to the given text; use ShiftOffset to
// rebase them into a larger statement.
func ParsePredicate(text string) (Predicate, error) {
	toks, err := Lex(text)
	if err != nil {
		return nil, err
	}

	p := &predicateParser{toks: toks}
	pred, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != TokenEOF {
		return nil, syntaxErrorf(p.cur().Offset, "unexpected %q", p.cur().Text)
	}
	return pred, nil
}

type predicateParser struct {
	toks []Token
	pos  int
}

func (p *predicateParser) cur() Token { return p.toks[p.pos] }
func (p *predicateParser) advance()   { p.pos++ }

func (p *predicateParser) orExpr() (Predicate, error) {
	first, err := p.andExpr()
	if err != nil {
		return nil, err
	}

	operands := []Predicate{first}
	for p.cur().isKeyword("OR") {
		p.advance()
		next, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return first, nil
	}
	return Logical{Op: OpOr, Operands: operands}, nil
}

func (p *predicateParser) andExpr() (Predicate, error) {
	first, err := p.notExpr()
	if err != nil {
		return nil, err
	}

	operands := []Predicate{first}
	for p.cur().isKeyword("AND") {
		p.advance()
		next, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return first, nil
	}
	return Logical{Op: OpAnd, Operands: operands}, nil
}

func (p *predicateParser) notExpr() (Predicate, error) {
	if p.cur().isKeyword("NOT") {
		p.advance()
		operand, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		return Not{Operand: operand}, nil
	}
	return p.primary()
}

func (p *predicateParser) primary() (Predicate, error) {
	tok := p.cur()

	if tok.Type == TokenLParen {
		p.advance()
		inner, err := p.orExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Type != TokenRParen {
			return nil, syntaxErrorf(p.cur().Offset, "expected closing parenthesis")
		}
		p.advance()
		return inner, nil
	}

	return p.comparison()
}

// comparison parses `field op literal`, `field IS [NOT] NULL`, and rejects
// the recognized-but-unimplemented forms (LIKE, IN, BETWEEN) by name.
func (p *predicateParser) comparison() (Predicate, error) {
	tok := p.cur()
	if tok.Type != TokenIdent {
		return nil, syntaxErrorf(tok.Offset, "expected field name, got %q", tok.Text)
	}
	field := tok.Text
	p.advance()

	opTok := p.cur()
	switch {
	case opTok.Type.isComparison():
		op := comparisonOp(opTok.Type)
		p.advance()
		val, err := p.literal()
		if err != nil {
			return nil, err
		}
		if op.ordering() && !IsNumeric(val) {
			return nil, syntaxErrorf(opTok.Offset,
				"operator %s requires a numeric literal, got %s", op, literalString(val))
		}
		return Comparison{Field: field, Op: op, Value: val}, nil

	case opTok.isKeyword("IS"):
		p.advance()
		op := OpEq
		if p.cur().isKeyword("NOT") {
			op = OpNotEq
			p.advance()
		}
		if !p.cur().isKeyword("NULL") {
			return nil, syntaxErrorf(p.cur().Offset, "expected NULL after IS")
		}
		p.advance()
		return Comparison{Field: field, Op: op, Value: Null{}}, nil

	case opTok.isKeyword("LIKE"), opTok.isKeyword("IN"), opTok.isKeyword("BETWEEN"):
		return nil, unsupported(opTok.Offset, opTok.Text)

	case opTok.isKeyword("NOT"):
		// NOT LIKE / NOT IN / NOT BETWEEN read better named after the
		// operator than after the negation.
		next := p.toks[p.pos+1]
		if next.isKeyword("LIKE") || next.isKeyword("IN") || next.isKeyword("BETWEEN") {
			return nil, unsupported(opTok.Offset, "NOT "+next.Text)
		}
		return nil, syntaxErrorf(opTok.Offset, "expected comparison operator after %q", field)

	default:
		return nil, syntaxErrorf(opTok.Offset, "expected comparison operator after %q, got %q", field, opTok.Text)
	}
}

// literal parses a single literal value, including a leading minus on
// numeric literals.
func (p *predicateParser) literal() (Value, error) {
	tok := p.cur()

	negate := false
	if tok.Type == TokenMinus {
		negate = true
		p.advance()
		tok = p.cur()
		if tok.Type != TokenInt && tok.Type != TokenFloat {
			return nil, syntaxErrorf(tok.Offset, "expected number after minus sign")
		}
	}

	switch tok.Type {
	case TokenString:
		p.advance()
		return String(tok.Text), nil

	case TokenInt:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, syntaxErrorf(tok.Offset, "integer out of range: %s", tok.Text)
		}
		p.advance()
		if negate {
			n = -n
		}
		return Int(n), nil

	case TokenFloat:
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, syntaxErrorf(tok.Offset, "malformed number: %s", tok.Text)
		}
		p.advance()
		if negate {
			f = -f
		}
		return Float(f), nil

	case TokenKeyword:
		switch tok.Text {
		case "TRUE":
			p.advance()
			return Bool(true), nil
		case "FALSE":
			p.advance()
			return Bool(false), nil
		case "NULL":
			p.advance()
			return Null{}, nil
		}
	}

	return nil, syntaxErrorf(tok.Offset, "expected literal value, got %q", tok.Text)
}

func comparisonOp(t TokenType) CompareOp {
	switch t {
	case TokenEq:
		return OpEq
	case TokenNotEq:
		return OpNotEq
	case TokenLt:
		return OpLt
	case TokenLtEq:
		return OpLtEq
	case TokenGt:
		return OpGt
	case TokenGtEq:
		return OpGtEq
	}
	return ""
}
