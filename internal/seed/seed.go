// Package seed provisions both stores with identical sample data so
// comparisons run over the same rows: a users table/collection of
// {name, age} records, names random lowercase strings, ages 18-90.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/backend"
)

const (
	// Collection is the table and collection name both stores share.
	Collection = "users"

	nameLength = 7
	minAge     = 18
	maxAge     = 90

	// mongoBatch and sqlBatch keep individual inserts bounded. The
	// original loaded half a million rows; unbatched inserts either blow
	// the wire message limit (Mongo) or the placeholder limit (SQL).
	mongoBatch = 10_000
	sqlBatch   = 5_000
)

// User is one sample record.
type User struct {
	Name string `bson:"name"`
	Age  int    `bson:"age"`
}

// Generate produces n users from the given source. Seeding the source
// makes the data reproducible, which the tests rely on.
func Generate(rng *rand.Rand, n int) []User {
	users := make([]User, n)
	for i := range users {
		users[i] = User{Name: randomName(rng), Age: minAge + rng.Intn(maxAge-minAge+1)}
	}
	return users
}

func randomName(rng *rand.Rand) string {
	var sb strings.Builder
	for i := 0; i < nameLength; i++ {
		sb.WriteByte(byte('a' + rng.Intn(26)))
	}
	return sb.String()
}

// Loader writes the same sample set into both stores.
type Loader struct {
	Mongo      *backend.Mongo
	Relational *backend.Relational
	Logger     *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Load clears both stores and inserts users into each, reporting the
// loaded count. Existing data is dropped first so repeated seeding is
// idempotent.
func (l *Loader) Load(ctx context.Context, users []User) error {
	if err := l.LoadMongo(ctx, users); err != nil {
		return fmt.Errorf("seed mongo: %w", err)
	}
	if err := l.LoadRelational(ctx, users); err != nil {
		return fmt.Errorf("seed %s: %w", l.Relational.Name(), err)
	}
	l.logger().Info("seed complete", "records", len(users))
	return nil
}

func (l *Loader) LoadMongo(ctx context.Context, users []User) error {
	coll := l.Mongo.Database().Collection(Collection)

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}

	for start := 0; start < len(users); start += mongoBatch {
		end := min(start+mongoBatch, len(users))
		docs := make([]any, 0, end-start)
		for _, u := range users[start:end] {
			docs = append(docs, u)
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert batch at %d: %w", start, err)
		}
	}
	l.logger().Debug("mongo seeded", "records", len(users))
	return nil
}

func (l *Loader) LoadRelational(ctx context.Context, users []User) error {
	db := l.Relational.DB()

	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (id %s, name TEXT NOT NULL, age INTEGER NOT NULL)",
		Collection, l.serialColumn())
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM "+Collection); err != nil {
		return fmt.Errorf("clear table: %w", err)
	}

	for start := 0; start < len(users); start += sqlBatch {
		end := min(start+sqlBatch, len(users))
		if err := l.insertBatch(ctx, users[start:end]); err != nil {
			return fmt.Errorf("insert batch at %d: %w", start, err)
		}
	}
	l.logger().Debug("relational seeded", "records", len(users))
	return nil
}

// insertBatch builds one multi-row INSERT with the placeholder style the
// driver expects: $1,$2,... for pgx, ?,?,... for sqlite3.
func (l *Loader) insertBatch(ctx context.Context, users []User) error {
	postgres := l.Relational.Name() == "postgres"

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + Collection + " (name, age) VALUES ")
	args := make([]any, 0, len(users)*2)
	for i, u := range users {
		if i > 0 {
			sb.WriteString(", ")
		}
		if postgres {
			fmt.Fprintf(&sb, "($%d, $%d)", i*2+1, i*2+2)
		} else {
			sb.WriteString("(?, ?)")
		}
		args = append(args, u.Name, u.Age)
	}

	_, err := l.Relational.DB().ExecContext(ctx, sb.String(), args...)
	return err
}

// serialColumn picks the auto-increment primary key syntax per driver.
func (l *Loader) serialColumn() string {
	if l.Relational.Name() == "postgres" {
		return "SERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}
