package sqlparse

import (
	"strings"
	"unicode"
)

// lexer walks the input byte by byte producing tokens with offsets.
// The grammar is ASCII-oriented; multi-byte runes are only legal inside
// string literals.
type lexer struct {
	input string
	pos   int
}

// Lex tokenizes the whole input. It fails with SyntaxError on the first
// illegal character, unterminated string, or SQL comment. Comments are
// rejected rather than skipped: the experiment's grammar never produced
// them, so silently eating one would hide a likely caller bug.
func Lex(input string) ([]Token, error) {
	l := &lexer{input: input}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Offset: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case ch == '\'' || ch == '"':
		return l.lexString(ch)
	case unicode.IsLetter(rune(ch)) || ch == '_':
		return l.lexWord(), nil
	case unicode.IsDigit(rune(ch)):
		return l.lexNumber(), nil
	}

	switch ch {
	case ',':
		l.pos++
		return Token{Type: TokenComma, Text: ",", Offset: start}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Text: "(", Offset: start}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Text: ")", Offset: start}, nil
	case '*':
		l.pos++
		return Token{Type: TokenStar, Text: "*", Offset: start}, nil
	case '=':
		l.pos++
		return Token{Type: TokenEq, Text: "=", Offset: start}, nil
	case '!':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenNotEq, Text: "!=", Offset: start}, nil
		}
		return Token{}, syntaxErrorf(start, "unexpected character %q", string(ch))
	case '<':
		switch l.peekAt(1) {
		case '=':
			l.pos += 2
			return Token{Type: TokenLtEq, Text: "<=", Offset: start}, nil
		case '>':
			l.pos += 2
			return Token{Type: TokenNotEq, Text: "<>", Offset: start}, nil
		}
		l.pos++
		return Token{Type: TokenLt, Text: "<", Offset: start}, nil
	case '>':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenGtEq, Text: ">=", Offset: start}, nil
		}
		l.pos++
		return Token{Type: TokenGt, Text: ">", Offset: start}, nil
	case '-':
		if l.peekAt(1) == '-' {
			return Token{}, syntaxErrorf(start, "SQL comments are not allowed")
		}
		l.pos++
		return Token{Type: TokenMinus, Text: "-", Offset: start}, nil
	case '/':
		if l.peekAt(1) == '*' {
			return Token{}, syntaxErrorf(start, "SQL comments are not allowed")
		}
		return Token{}, syntaxErrorf(start, "unexpected character %q", string(ch))
	}

	return Token{}, syntaxErrorf(start, "unexpected character %q", string(ch))
}

// lexWord consumes an identifier or keyword. Identifiers may contain
// letters, digits, and underscores, and must start with a letter or
// underscore.
func (l *lexer) lexWord() Token {
	start := l.pos
	for l.pos < len(l.input) {
		c := rune(l.input[l.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		l.pos++
	}
	word := l.input[start:l.pos]
	if upper, ok := isKeyword(word); ok {
		return Token{Type: TokenKeyword, Text: upper, Offset: start}
	}
	return Token{Type: TokenIdent, Text: word, Offset: start}
}

// lexNumber consumes an integer or float literal. A decimal point or an
// exponent marks the token as a float; the distinction is preserved so the
// parser never coerces between the two.
func (l *lexer) lexNumber() Token {
	start := l.pos
	isFloat := false

	for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' &&
		l.pos+1 < len(l.input) && unicode.IsDigit(rune(l.input[l.pos+1])) {
		isFloat = true
		l.pos++
		for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		// Exponent needs at least one digit, optionally signed.
		rest := l.pos + 1
		if rest < len(l.input) && (l.input[rest] == '+' || l.input[rest] == '-') {
			rest++
		}
		if rest < len(l.input) && unicode.IsDigit(rune(l.input[rest])) {
			isFloat = true
			l.pos = rest
			for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
				l.pos++
			}
		}
	}

	typ := TokenInt
	if isFloat {
		typ = TokenFloat
	}
	return Token{Type: typ, Text: l.input[start:l.pos], Offset: start}
}

// lexString consumes a quoted literal. An embedded quote is written by
// doubling it: 'it''s' lexes to the value "it's". Both single and double
// quotes are accepted so keyword recognition can never misfire inside
// either style.
func (l *lexer) lexString(quote byte) (Token, error) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == quote {
			if l.peekAt(1) == quote {
				sb.WriteByte(quote)
				l.pos += 2
				continue
			}
			l.pos++ // closing quote
			return Token{Type: TokenString, Text: sb.String(), Offset: start}, nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return Token{}, syntaxErrorf(start, "unterminated string literal")
}

func (l *lexer) peekAt(ahead int) byte {
	if l.pos+ahead >= len(l.input) {
		return 0
	}
	return l.input[l.pos+ahead]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}
