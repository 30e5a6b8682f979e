package docfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
)

func TestDecode_RoundTrip(t *testing.T) {
	// parse -> render -> decode must reproduce the original tree.
	inputs := []string{
		"name = 'alice'",
		"age >= 30",
		"name IS NULL",
		"name IS NOT NULL",
		"a = 1 AND b = 2 AND c = 3",
		"a = 1 OR b = 2 AND c = 3",
		"NOT age > 30",
		"NOT (a = 1 OR b = 'x')",
		"(a = 1 OR b = 2) AND NOT c <= 1.5",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			original := mustParse(t, input)
			filter, err := Render(original)
			require.NoError(t, err)

			decoded, err := Decode(filter)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		})
	}
}

func TestDecode_EmptyFilterIsNil(t *testing.T) {
	pred, err := Decode(bson.M{})
	require.NoError(t, err)
	assert.Nil(t, pred)
}

func TestDecode_JSONShapes(t *testing.T) {
	// Filters that went through JSON arrive as map[string]any and []any
	// rather than bson types.
	filter := bson.M{"$and": []any{
		map[string]any{"age": bson.M{"$gt": int64(30)}},
		map[string]any{"name": "alice"},
	}}

	pred, err := Decode(filter)
	require.NoError(t, err)
	assert.Equal(t, sqlparse.Logical{Op: sqlparse.OpAnd, Operands: []sqlparse.Predicate{
		sqlparse.Comparison{Field: "age", Op: sqlparse.OpGt, Value: sqlparse.Int(30)},
		sqlparse.Comparison{Field: "name", Op: sqlparse.OpEq, Value: sqlparse.String("alice")},
	}}, pred)
}

func TestDecode_RejectsForeignShapes(t *testing.T) {
	tests := []struct {
		name   string
		filter bson.M
	}{
		{"implicit top-level AND", bson.M{"a": int64(1), "b": int64(2)}},
		{"unknown operator key", bson.M{"age": bson.M{"$regex": "a.*"}}},
		{"ordering key with string value", bson.M{"age": bson.M{"$gt": "x"}}},
		{"ordering key with null value", bson.M{"age": bson.M{"$lte": nil}}},
		{"multi-key operator doc", bson.M{"age": bson.M{"$gt": int64(1), "$lt": int64(9)}}},
		{"single-operand $and", bson.M{"$and": []bson.M{{"a": int64(1)}}}},
		{"multi-operand $nor", bson.M{"$nor": []bson.M{{"a": int64(1)}, {"b": int64(2)}}}},
		{"wrapper without list", bson.M{"$or": "not a list"}},
		{"non-document operand", bson.M{"$and": []any{"oops", map[string]any{"a": int64(1)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.filter)
			require.Error(t, err)
			assert.True(t, IsInvariantError(err))
		})
	}
}
