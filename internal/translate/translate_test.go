package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
)

func TestTranslate_FullStatement(t *testing.T) {
	tr, err := Translate("SELECT name, age FROM users WHERE age >= 21 AND name != 'bob' LIMIT 100 OFFSET 10")
	require.NoError(t, err)

	assert.Equal(t, "users", tr.Collection)
	assert.Equal(t, []string{"name", "age"}, tr.Columns)
	assert.False(t, tr.Star)
	assert.Equal(t, bson.M{"$and": []bson.M{
		{"age": bson.M{"$gte": int64(21)}},
		{"name": bson.M{"$ne": "bob"}},
	}}, tr.Filter)
	assert.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "age", Value: 1},
		{Key: "_id", Value: 0},
	}, tr.Projection)
	require.NotNil(t, tr.Limit)
	assert.Equal(t, int64(100), *tr.Limit)
	require.NotNil(t, tr.Offset)
	assert.Equal(t, int64(10), *tr.Offset)
}

func TestTranslate_NoWhereMatchesAll(t *testing.T) {
	tr, err := Translate("SELECT * FROM users")
	require.NoError(t, err)

	assert.True(t, tr.Star)
	assert.Equal(t, bson.M{}, tr.Filter)
	assert.Nil(t, tr.Predicate)
	assert.Equal(t, bson.D{{Key: "_id", Value: 0}}, tr.Projection)
}

func TestTranslate_PredicateErrorsRebasedToStatement(t *testing.T) {
	// The dangling operator sits at the very end of the statement; the
	// offset must be statement-relative, not WHERE-relative.
	input := "SELECT * FROM users WHERE age = "
	_, err := Translate(input)
	require.Error(t, err)

	var se *sqlparse.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, len("SELECT * FROM users WHERE age ="), se.Offset)
}

func TestTranslate_UnsupportedOffsetRebased(t *testing.T) {
	input := "SELECT * FROM users WHERE name LIKE 'a%'"
	_, err := Translate(input)
	require.Error(t, err)

	var ue *sqlparse.UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "LIKE", ue.Feature)
	assert.Equal(t, 31, ue.Offset) // byte position of LIKE in the statement
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		unsupported bool
	}{
		{"empty input", "", false},
		{"not a select", "INSERT INTO users VALUES (1)", false},
		{"join", "SELECT * FROM a JOIN b ON x", false},
		{"order by", "SELECT * FROM users ORDER BY age", false},
		{"comment", "SELECT * FROM users -- sneaky", false},
		{"like", "SELECT * FROM users WHERE name LIKE 'a%'", true},
		{"in", "SELECT * FROM users WHERE age IN (1, 2)", true},
		{"between", "SELECT * FROM users WHERE age BETWEEN 1 AND 9", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.input)
			require.Error(t, err)
			if tt.unsupported {
				assert.True(t, sqlparse.IsUnsupportedError(err))
			} else {
				assert.True(t, sqlparse.IsSyntaxError(err))
			}
		})
	}
}

func TestTranslate_Concurrent(t *testing.T) {
	// Translate shares no state across calls; hammer it from several
	// goroutines to let the race detector check that claim.
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_, err := Translate("SELECT * FROM users WHERE age > 30 AND name = 'x'")
				if err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
