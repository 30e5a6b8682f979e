package sqlparse

import "strings"

// CompareOp is one of the six comparison operators.
type CompareOp string

const (
	OpEq    CompareOp = "="
	OpNotEq CompareOp = "!="
	OpLt    CompareOp = "<"
	OpLtEq  CompareOp = "<="
	OpGt    CompareOp = ">"
	OpGtEq  CompareOp = ">="
)

// ordering reports whether the operator requires numeric operands.
func (op CompareOp) ordering() bool {
	switch op {
	case OpLt, OpLtEq, OpGt, OpGtEq:
		return true
	}
	return false
}

// LogicalOp combines predicate operands.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// Predicate is a sealed interface over the boolean expression tree built
// from a WHERE clause. Only Comparison, Logical, and Not implement it.
// Trees are constructed once per statement and read-only thereafter.
type Predicate interface {
	predicateNode()
	String() string
}

// Comparison is a single field-operator-literal test.
// Field is always a non-empty identifier; for ordering operators the value
// is guaranteed numeric by the parser.
type Comparison struct {
	Field string
	Op    CompareOp
	Value Value
}

func (Comparison) predicateNode() {}

func (c Comparison) String() string {
	return c.Field + " " + string(c.Op) + " " + literalString(c.Value)
}

// Logical combines two or more operands with AND or OR. The parser never
// produces a Logical with fewer than two operands: a bare comparison stays
// unwrapped. Operand order is preserved.
type Logical struct {
	Op       LogicalOp
	Operands []Predicate
}

func (Logical) predicateNode() {}

func (l Logical) String() string {
	parts := make([]string, len(l.Operands))
	for i, op := range l.Operands {
		parts[i] = op.String()
	}
	return "(" + strings.Join(parts, " "+string(l.Op)+" ") + ")"
}

// Not negates a single operand.
type Not struct {
	Operand Predicate
}

func (Not) predicateNode() {}

func (n Not) String() string {
	return "NOT " + n.Operand.String()
}

// Statement is the skeleton Split produces: the statement partitioned into
// clauses with the WHERE text captured verbatim but not yet parsed.
type Statement struct {
	// Columns is the ordered SELECT target list. Empty when Star is set.
	Columns []string

	// Star is true for SELECT *.
	Star bool

	// Table is the single FROM table identifier.
	Table string

	// Where is the raw WHERE clause text, empty when the statement has no
	// WHERE clause. WhereOffset is the byte offset of that text in the
	// original statement, for rebasing parse errors.
	Where       string
	WhereOffset int

	// Limit is nil when the statement has no LIMIT clause. A LIMIT 0 is a
	// real cap of zero rows, distinct from nil.
	Limit *int64

	// Offset is nil when the statement has no OFFSET clause.
	Offset *int64
}

// HasWhere reports whether the statement carries a WHERE clause.
func (s *Statement) HasWhere() bool {
	return s.Where != ""
}
