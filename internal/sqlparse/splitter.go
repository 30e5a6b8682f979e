package sqlparse

import (
	"strconv"
	"strings"
)

// Split partitions a SQL statement into its clauses, producing a Statement
// skeleton. The WHERE clause text is captured verbatim for ParsePredicate;
// Split itself only locates its boundaries.
//
// Split fails with SyntaxError when the statement is not a plain
// single-table SELECT: missing clauses, joined tables, negative or
// non-integer LIMIT, or any trailing clause outside the supported grammar
// (GROUP BY, ORDER BY, JOIN, ...). It never drops input silently.
func Split(input string) (*Statement, error) {
	toks, err := Lex(input)
	if err != nil {
		return nil, err
	}

	p := &splitter{input: input, toks: toks}
	return p.statement()
}

// splitter is a cursor over the statement's token stream.
type splitter struct {
	input string
	toks  []Token
	pos   int
}

func (p *splitter) cur() Token  { return p.toks[p.pos] }
func (p *splitter) advance()    { p.pos++ }
func (p *splitter) atEOF() bool { return p.cur().Type == TokenEOF }

func (p *splitter) statement() (*Statement, error) {
	if !p.cur().isKeyword("SELECT") {
		return nil, syntaxErrorf(p.cur().Offset, "expected SELECT, got %q", p.cur().Text)
	}
	p.advance()

	stmt := &Statement{}
	if err := p.targetList(stmt); err != nil {
		return nil, err
	}
	if err := p.fromClause(stmt); err != nil {
		return nil, err
	}
	if err := p.whereClause(stmt); err != nil {
		return nil, err
	}
	if err := p.trailingClauses(stmt); err != nil {
		return nil, err
	}

	if !p.atEOF() {
		return nil, syntaxErrorf(p.cur().Offset, "unexpected %q after end of statement", p.cur().Text)
	}
	return stmt, nil
}

// targetList parses `*` or a comma-separated ordered list of column
// identifiers. Projection order is preserved.
func (p *splitter) targetList(stmt *Statement) error {
	if p.cur().Type == TokenStar {
		stmt.Star = true
		p.advance()
		return nil
	}

	for {
		tok := p.cur()
		if tok.Type != TokenIdent {
			return syntaxErrorf(tok.Offset, "expected column name, got %q", tok.Text)
		}
		stmt.Columns = append(stmt.Columns, tok.Text)
		p.advance()

		if p.cur().Type != TokenComma {
			return nil
		}
		p.advance()
	}
}

func (p *splitter) fromClause(stmt *Statement) error {
	if !p.cur().isKeyword("FROM") {
		return syntaxErrorf(p.cur().Offset, "expected FROM, got %q", p.cur().Text)
	}
	p.advance()

	tok := p.cur()
	if tok.Type != TokenIdent {
		return syntaxErrorf(tok.Offset, "expected table name, got %q", tok.Text)
	}
	stmt.Table = tok.Text
	p.advance()

	// Exactly one table. A comma or a join keyword here means the caller
	// wants a join, which the grammar rejects outright.
	if p.cur().Type == TokenComma {
		return syntaxErrorf(p.cur().Offset, "multiple tables in FROM are not supported")
	}
	return nil
}

// predicateKeywords are the keywords that may legally (or at least
// recognizably) appear inside WHERE clause text. Any other keyword ends
// the clause and is handled as a trailing clause.
var predicateKeywords = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "IS": true, "NULL": true,
	"TRUE": true, "FALSE": true,
	"LIKE": true, "IN": true, "BETWEEN": true, "EXISTS": true,
}

// whereClause locates the WHERE clause boundaries and records the raw text.
// The clause ends at the first keyword that cannot be part of a predicate
// (LIMIT, OFFSET, ORDER, ...) or at end of input.
func (p *splitter) whereClause(stmt *Statement) error {
	if !p.cur().isKeyword("WHERE") {
		return nil
	}
	whereTok := p.cur()
	p.advance()

	start := p.cur().Offset
	end := len(p.input)
	for !p.atEOF() {
		tok := p.cur()
		if tok.Type == TokenKeyword && !predicateKeywords[tok.Text] {
			end = tok.Offset
			break
		}
		p.advance()
	}

	text := strings.TrimSpace(p.input[start:end])
	if text == "" {
		return syntaxErrorf(whereTok.Offset, "WHERE clause is empty")
	}
	stmt.Where = text
	stmt.WhereOffset = start
	return nil
}

// trailingClauses parses LIMIT and OFFSET in either order, at most once
// each, and rejects every other trailing keyword by name.
func (p *splitter) trailingClauses(stmt *Statement) error {
	for !p.atEOF() {
		tok := p.cur()
		switch {
		case tok.isKeyword("LIMIT"):
			if stmt.Limit != nil {
				return syntaxErrorf(tok.Offset, "duplicate LIMIT clause")
			}
			n, err := p.clauseCount("LIMIT")
			if err != nil {
				return err
			}
			stmt.Limit = &n
		case tok.isKeyword("OFFSET"):
			if stmt.Offset != nil {
				return syntaxErrorf(tok.Offset, "duplicate OFFSET clause")
			}
			n, err := p.clauseCount("OFFSET")
			if err != nil {
				return err
			}
			stmt.Offset = &n
		case tok.Type == TokenKeyword:
			return syntaxErrorf(tok.Offset, "unsupported clause %s", clauseName(p.toks, p.pos))
		default:
			return syntaxErrorf(tok.Offset, "unexpected %q after end of statement", tok.Text)
		}
	}
	return nil
}

// clauseCount consumes `LIMIT n` or `OFFSET n` and returns the count.
// The count must be a bare non-negative integer literal.
func (p *splitter) clauseCount(clause string) (int64, error) {
	p.advance() // the clause keyword

	tok := p.cur()
	if tok.Type == TokenMinus {
		return 0, syntaxErrorf(tok.Offset, "%s must be non-negative", clause)
	}
	if tok.Type != TokenInt {
		return 0, syntaxErrorf(tok.Offset, "%s expects an integer, got %q", clause, tok.Text)
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return 0, syntaxErrorf(tok.Offset, "%s value out of range: %s", clause, tok.Text)
	}
	p.advance()
	return n, nil
}

// clauseName names the offending trailing clause, joining two-word clauses
// like GROUP BY and ORDER BY for a readable error.
func clauseName(toks []Token, pos int) string {
	name := toks[pos].Text
	if (name == "GROUP" || name == "ORDER") && pos+1 < len(toks) && toks[pos+1].isKeyword("BY") {
		name += " BY"
	}
	return name
}
