package docfilter

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
)

// operatorKeys maps the five non-equality comparison operators to Mongo
// operator keys. Equality is rendered as a bare value and has no key.
// keyOperators is the exact inverse; initialized in init and checked there
// so the bijection cannot drift.
var operatorKeys = map[sqlparse.CompareOp]string{
	sqlparse.OpNotEq: "$ne",
	sqlparse.OpLt:    "$lt",
	sqlparse.OpLtEq:  "$lte",
	sqlparse.OpGt:    "$gt",
	sqlparse.OpGtEq:  "$gte",
}

var keyOperators = map[string]sqlparse.CompareOp{}

func init() {
	for op, key := range operatorKeys {
		if _, dup := keyOperators[key]; dup {
			panic("docfilter: operator key mapping is not one-to-one")
		}
		keyOperators[key] = op
	}
}

// InvariantError reports that a predicate tree violated a structural
// invariant during rendering: an empty field name, a logical node with
// fewer than two operands, or an ordering operator with a non-numeric
// value. The parser never produces such trees, so observing one is a
// defect in the caller, not bad user input.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "translation invariant violated: " + e.Message
}

// IsInvariantError reports whether err is (or wraps) an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}

// Render converts a predicate tree into a Mongo filter document. A nil
// predicate renders to the empty match-all filter. Render is pure: the
// same tree always produces a deep-equal document.
func Render(pred sqlparse.Predicate) (bson.M, error) {
	if pred == nil {
		return bson.M{}, nil
	}
	return renderNode(pred)
}

func renderNode(pred sqlparse.Predicate) (bson.M, error) {
	switch node := pred.(type) {
	case sqlparse.Comparison:
		return renderComparison(node)
	case sqlparse.Logical:
		return renderLogical(node)
	case sqlparse.Not:
		inner, err := renderNode(node.Operand)
		if err != nil {
			return nil, err
		}
		return bson.M{"$nor": []bson.M{inner}}, nil
	default:
		return nil, invariantf("unknown predicate node %T", pred)
	}
}

func renderComparison(c sqlparse.Comparison) (bson.M, error) {
	if c.Field == "" {
		return nil, invariantf("comparison with empty field name")
	}

	value := sqlparse.Native(c.Value)

	if c.Op == sqlparse.OpEq {
		return bson.M{c.Field: value}, nil
	}

	key, ok := operatorKeys[c.Op]
	if !ok {
		return nil, invariantf("unknown comparison operator %q", c.Op)
	}
	if isOrderingKey(key) && !sqlparse.IsNumeric(c.Value) {
		return nil, invariantf("ordering operator %s with non-numeric value", c.Op)
	}
	return bson.M{c.Field: bson.M{key: value}}, nil
}

func renderLogical(l sqlparse.Logical) (bson.M, error) {
	if len(l.Operands) < 2 {
		return nil, invariantf("logical %s node with %d operands", l.Op, len(l.Operands))
	}

	rendered := make([]bson.M, len(l.Operands))
	for i, operand := range l.Operands {
		m, err := renderNode(operand)
		if err != nil {
			return nil, err
		}
		rendered[i] = m
	}

	switch l.Op {
	case sqlparse.OpAnd:
		return bson.M{"$and": rendered}, nil
	case sqlparse.OpOr:
		return bson.M{"$or": rendered}, nil
	}
	return nil, invariantf("unknown logical operator %q", l.Op)
}

func isOrderingKey(key string) bool {
	switch key {
	case "$lt", "$lte", "$gt", "$gte":
		return true
	}
	return false
}

// Projection builds the find projection for a target list. SELECT * maps
// to suppressing _id only; an explicit column list includes each column in
// its original order, _id still suppressed. bson.D preserves the caller's
// projection order on the wire.
func Projection(columns []string, star bool) bson.D {
	if star {
		return bson.D{{Key: "_id", Value: 0}}
	}
	proj := make(bson.D, 0, len(columns)+1)
	for _, col := range columns {
		proj = append(proj, bson.E{Key: col, Value: 1})
	}
	return append(proj, bson.E{Key: "_id", Value: 0})
}
