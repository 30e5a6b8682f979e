package sqlparse

import "strings"

// TokenType identifies the lexical category of a token.
type TokenType int

const (
	TokenEOF     TokenType = iota // end of input
	TokenIdent                    // identifier (table or column name)
	TokenKeyword                  // reserved word, Text is uppercased
	TokenString                   // string literal, Text is the unquoted value
	TokenInt                      // integer literal
	TokenFloat                    // float literal (decimal point or exponent)
	TokenComma                    // ,
	TokenLParen                   // (
	TokenRParen                   // )
	TokenStar                     // *
	TokenMinus                    // -
	TokenEq                       // =
	TokenNotEq                    // != or <>
	TokenLt                       // <
	TokenLtEq                     // <=
	TokenGt                       // >
	TokenGtEq                     // >=
)

// Token is a single lexical unit with its byte offset in the input.
// For TokenString the surrounding quotes are stripped and doubled quotes
// are collapsed; Offset still points at the opening quote.
type Token struct {
	Type   TokenType
	Text   string
	Offset int
}

// keywords is the reserved-word set. It deliberately includes words the
// grammar rejects (JOIN, GROUP, ...) so that the splitter can name the
// unsupported construct instead of treating it as an identifier.
var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "LIMIT": true, "OFFSET": true,
	"AND": true, "OR": true, "NOT": true, "IS": true, "NULL": true,
	"TRUE": true, "FALSE": true,
	"LIKE": true, "IN": true, "BETWEEN": true, "EXISTS": true,
	"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "OUTER": true,
	"CROSS": true, "ON": true, "GROUP": true, "ORDER": true, "BY": true,
	"HAVING": true, "UNION": true, "DISTINCT": true, "AS": true,
	"INSERT": true, "UPDATE": true, "DELETE": true,
}

// isKeyword reports whether word (any case) is reserved, returning its
// canonical uppercase spelling.
func isKeyword(word string) (string, bool) {
	upper := strings.ToUpper(word)
	return upper, keywords[upper]
}

func (t Token) isKeyword(kw string) bool {
	return t.Type == TokenKeyword && t.Text == kw
}

// comparison token helpers used by the predicate parser.
func (t TokenType) isComparison() bool {
	switch t {
	case TokenEq, TokenNotEq, TokenLt, TokenLtEq, TokenGt, TokenGtEq:
		return true
	}
	return false
}
