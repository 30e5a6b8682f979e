package docfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
)

func mustParse(t *testing.T, text string) sqlparse.Predicate {
	t.Helper()
	pred, err := sqlparse.ParsePredicate(text)
	require.NoError(t, err)
	return pred
}

func TestRender_Comparisons(t *testing.T) {
	tests := []struct {
		input string
		want  bson.M
	}{
		{"name = 'alice'", bson.M{"name": "alice"}},
		{"age = 30", bson.M{"age": int64(30)}},
		{"active = TRUE", bson.M{"active": true}},
		{"name IS NULL", bson.M{"name": nil}},
		{"age != 30", bson.M{"age": bson.M{"$ne": int64(30)}}},
		{"name IS NOT NULL", bson.M{"name": bson.M{"$ne": nil}}},
		{"age < 30", bson.M{"age": bson.M{"$lt": int64(30)}}},
		{"age <= 30", bson.M{"age": bson.M{"$lte": int64(30)}}},
		{"age > 30", bson.M{"age": bson.M{"$gt": int64(30)}}},
		{"age >= 30", bson.M{"age": bson.M{"$gte": int64(30)}}},
		{"score > 2.5", bson.M{"score": bson.M{"$gt": 2.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Render(mustParse(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_NilMatchesAll(t *testing.T) {
	got, err := Render(nil)
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, got)
}

func TestRender_LogicalOperandOrder(t *testing.T) {
	got, err := Render(mustParse(t, "a = 1 AND b = 2 AND c = 3"))
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$and": []bson.M{
		{"a": int64(1)},
		{"b": int64(2)},
		{"c": int64(3)},
	}}, got)
}

func TestRender_MixedLogicalNesting(t *testing.T) {
	// Nesting from the predicate tree is preserved, never flattened into
	// Mongo's implicit top-level AND.
	got, err := Render(mustParse(t, "a = 1 OR b = 2 AND c = 3"))
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$or": []bson.M{
		{"a": int64(1)},
		{"$and": []bson.M{{"b": int64(2)}, {"c": int64(3)}}},
	}}, got)
}

func TestRender_Not(t *testing.T) {
	got, err := Render(mustParse(t, "NOT age > 30"))
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$nor": []bson.M{{"age": bson.M{"$gt": int64(30)}}}}, got)

	got, err = Render(mustParse(t, "NOT (a = 1 OR b = 2)"))
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$nor": []bson.M{
		{"$or": []bson.M{{"a": int64(1)}, {"b": int64(2)}}},
	}}, got)
}

func TestRender_Deterministic(t *testing.T) {
	pred := mustParse(t, "a = 1 AND (b = 'x' OR NOT c >= 2)")
	first, err := Render(pred)
	require.NoError(t, err)
	second, err := Render(pred)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_InvariantViolations(t *testing.T) {
	tests := []struct {
		name string
		pred sqlparse.Predicate
	}{
		{"empty field", sqlparse.Comparison{Op: sqlparse.OpEq, Value: sqlparse.Int(1)}},
		{"single-operand logical", sqlparse.Logical{
			Op:       sqlparse.OpAnd,
			Operands: []sqlparse.Predicate{sqlparse.Comparison{Field: "a", Op: sqlparse.OpEq, Value: sqlparse.Int(1)}},
		}},
		{"ordering with string", sqlparse.Comparison{Field: "a", Op: sqlparse.OpGt, Value: sqlparse.String("x")}},
		{"unknown operator", sqlparse.Comparison{Field: "a", Op: sqlparse.CompareOp("~="), Value: sqlparse.Int(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.pred)
			require.Error(t, err)
			assert.True(t, IsInvariantError(err))
		})
	}
}

func TestOperatorKeyBijection(t *testing.T) {
	// Both directions must agree exactly: every operator key maps back to
	// the operator that produced it, and the sets are the same size.
	require.Equal(t, len(operatorKeys), len(keyOperators))
	for op, key := range operatorKeys {
		back, ok := keyOperators[key]
		require.True(t, ok, "key %s has no inverse", key)
		assert.Equal(t, op, back)
	}
}

func TestProjection(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: 0}}, Projection(nil, true))

	got := Projection([]string{"name", "age"}, false)
	assert.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "age", Value: 1},
		{Key: "_id", Value: 0},
	}, got)
}
