// Package sqlparse implements the restricted SQL front end: a lexer, a
// clause splitter, and a predicate parser for statements of the form
//
//	SELECT <columns|*> FROM <table> [WHERE <predicate>] [LIMIT n] [OFFSET n]
//
// The package produces plain data structures and never touches a database.
//
// # Pipeline
//
// Raw SQL goes through two independent pure functions:
//
//  1. Split tokenizes the whole statement and partitions it into clauses,
//     producing a Statement skeleton. The WHERE clause text is captured
//     verbatim and not yet parsed.
//  2. ParsePredicate parses WHERE clause text into a Predicate tree of
//     Comparison and Logical nodes.
//
// Both functions are stateless and safe for concurrent use.
//
// # Supported grammar
//
// Keywords are case-insensitive. The predicate grammar is
//
//	or_expr   := and_expr ( OR and_expr )*
//	and_expr  := not_expr ( AND not_expr )*
//	not_expr  := NOT not_expr | primary
//	primary   := '(' or_expr ')' | comparison
//	comparison := field ( = | != | <> | < | <= | > | >= ) literal
//	            | field IS [NOT] NULL
//
// Literals are single- or double-quoted strings (embedded quotes doubled),
// integers, floats, TRUE, FALSE, and NULL.
//
// Joins, subqueries, aggregates, GROUP BY, ORDER BY, LIKE, IN, and BETWEEN
// are deliberately out of scope. Recognized-but-unsupported constructs fail
// with UnsupportedError; everything else malformed fails with SyntaxError
// carrying a byte offset. Nothing is silently dropped.
package sqlparse
