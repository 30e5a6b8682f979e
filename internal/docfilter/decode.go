package docfilter

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
)

// Decode converts a filter document produced by Render back into a
// predicate tree. The empty filter decodes to nil (match-all).
//
// Decode accepts exactly the shapes Render emits. A filter with several
// top-level fields (Mongo's implicit AND) or an operator key outside the
// rendered set is rejected with an InvariantError: it did not come from
// Render and has no unique tree.
func Decode(filter bson.M) (sqlparse.Predicate, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	return decodeNode(filter)
}

func decodeNode(filter bson.M) (sqlparse.Predicate, error) {
	if len(filter) != 1 {
		return nil, invariantf("filter document has %d keys, expected 1", len(filter))
	}

	for key, raw := range filter {
		switch key {
		case "$and":
			return decodeLogical(sqlparse.OpAnd, raw)
		case "$or":
			return decodeLogical(sqlparse.OpOr, raw)
		case "$nor":
			operands, err := operandList(raw)
			if err != nil {
				return nil, err
			}
			if len(operands) != 1 {
				return nil, invariantf("$nor with %d operands, expected 1", len(operands))
			}
			inner, err := decodeNode(operands[0])
			if err != nil {
				return nil, err
			}
			return sqlparse.Not{Operand: inner}, nil
		default:
			return decodeComparison(key, raw)
		}
	}
	return nil, invariantf("unreachable")
}

func decodeLogical(op sqlparse.LogicalOp, raw any) (sqlparse.Predicate, error) {
	operands, err := operandList(raw)
	if err != nil {
		return nil, err
	}
	if len(operands) < 2 {
		return nil, invariantf("%s wrapper with %d operands", op, len(operands))
	}

	preds := make([]sqlparse.Predicate, len(operands))
	for i, operand := range operands {
		pred, err := decodeNode(operand)
		if err != nil {
			return nil, err
		}
		preds[i] = pred
	}
	return sqlparse.Logical{Op: op, Operands: preds}, nil
}

func decodeComparison(field string, raw any) (sqlparse.Predicate, error) {
	if field == "" {
		return nil, invariantf("comparison with empty field name")
	}

	// An operator document means a non-equality comparison; any other
	// value is a bare equality.
	if opDoc, ok := asFilterMap(raw); ok {
		if len(opDoc) == 1 {
			for key, rawVal := range opDoc {
				if op, known := keyOperators[key]; known {
					val, ok := sqlparse.FromNative(rawVal)
					if !ok {
						return nil, invariantf("unsupported value type %T for %s", rawVal, key)
					}
					// Render never pairs an ordering key with a
					// non-numeric value; such a filter has no source tree.
					if isOrderingKey(key) && !sqlparse.IsNumeric(val) {
						return nil, invariantf("ordering key %s with non-numeric value %v", key, rawVal)
					}
					return sqlparse.Comparison{Field: field, Op: op, Value: val}, nil
				}
				return nil, invariantf("unknown operator key %q", key)
			}
		}
		return nil, invariantf("operator document for %q has %d keys, expected 1", field, len(opDoc))
	}

	val, ok := sqlparse.FromNative(raw)
	if !ok {
		return nil, invariantf("unsupported value type %T for field %q", raw, field)
	}
	return sqlparse.Comparison{Field: field, Op: sqlparse.OpEq, Value: val}, nil
}

// operandList coerces a wrapper key's value into a slice of filter maps.
// Render emits []bson.M; decoded BSON or JSON may arrive as []any or
// bson.A instead.
func operandList(raw any) ([]bson.M, error) {
	switch list := raw.(type) {
	case []bson.M:
		return list, nil
	case bson.A:
		return coerceOperands([]any(list))
	case []any:
		return coerceOperands(list)
	}
	return nil, invariantf("logical wrapper value is %T, expected a list", raw)
}

func coerceOperands(list []any) ([]bson.M, error) {
	out := make([]bson.M, len(list))
	for i, elem := range list {
		m, ok := asFilterMap(elem)
		if !ok {
			return nil, invariantf("logical operand %d is %T, expected a document", i, elem)
		}
		out[i] = m
	}
	return out, nil
}

func asFilterMap(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return bson.M(m), true
	}
	return nil, false
}
