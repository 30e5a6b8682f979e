package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Relational {
	t.Helper()
	rel, err := OpenRelational(context.Background(), "sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rel.Close(context.Background()) })
	return rel
}

func seedUsers(t *testing.T, rel *Relational) {
	t.Helper()
	ctx := context.Background()
	db := rel.DB()

	_, err := db.ExecContext(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, age INTEGER NOT NULL)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (name, age) VALUES ('alice', 30), ('bob', 25), ('carol', 41)")
	require.NoError(t, err)
}

func TestRelational_Name(t *testing.T) {
	rel := openTestDB(t)
	assert.Equal(t, "sqlite", rel.Name())
}

func TestRelational_Run(t *testing.T) {
	rel := openTestDB(t)
	seedUsers(t, rel)

	res, err := rel.Run(context.Background(), Request{SQL: "SELECT name, age FROM users WHERE age > 26"})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", res.Backend)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Rows, 2)
	assert.Greater(t, res.Elapsed, time.Duration(0))

	// Text columns arrive as string, not []byte.
	names := []string{res.Rows[0]["name"].(string), res.Rows[1]["name"].(string)}
	assert.ElementsMatch(t, []string{"alice", "carol"}, names)
}

func TestRelational_RunEmptyResult(t *testing.T) {
	rel := openTestDB(t)
	seedUsers(t, rel)

	res, err := rel.Run(context.Background(), Request{SQL: "SELECT * FROM users WHERE age > 100"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Rows)
}

func TestRelational_RunBadSQL(t *testing.T) {
	rel := openTestDB(t)

	_, err := rel.Run(context.Background(), Request{SQL: "SELECT * FROM no_such_table"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestRelational_Ping(t *testing.T) {
	rel := openTestDB(t)
	assert.NoError(t, rel.Ping(context.Background()))
}

func TestOpenRelational_UnknownDriver(t *testing.T) {
	_, err := OpenRelational(context.Background(), "nope", "dsn")
	require.Error(t, err)
}
