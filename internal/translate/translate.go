// Package translate turns a restricted SQL SELECT string into everything a
// document-store find call needs: collection name, filter, projection, and
// limit. It composes the sqlparse clause splitter, the predicate parser,
// and the docfilter renderer; see those packages for the grammar and the
// operator mapping.
package translate

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ranfysvalle02/bridgebase/internal/docfilter"
	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
)

// Translation is the document-store form of a SQL SELECT, ready to hand to
// a find-style call. It is constructed once per statement and read-only
// thereafter.
type Translation struct {
	// Collection is the FROM table, used as the target collection name.
	Collection string `json:"collection"`

	// Columns is the ordered projection list; empty when Star is set.
	Columns []string `json:"columns,omitempty"`
	Star    bool     `json:"star,omitempty"`

	// Filter is the rendered WHERE predicate. Empty means match-all.
	Filter bson.M `json:"filter"`

	// Projection suppresses _id and selects Columns, in order.
	Projection bson.D `json:"-"`

	// Predicate is the parsed WHERE tree, kept for callers that want to
	// inspect or re-render it. Nil when the statement has no WHERE.
	Predicate sqlparse.Predicate `json:"-"`

	// Limit and Offset are nil when the clause is absent. Limit of zero
	// is a real cap of zero rows.
	Limit  *int64 `json:"limit,omitempty"`
	Offset *int64 `json:"offset,omitempty"`
}

// Translate parses and renders a SQL statement in one step. It is
// stateless and safe to call concurrently; each call works on its own
// input and allocates its own tree.
//
// Errors are sqlparse.SyntaxError or sqlparse.UnsupportedError with
// offsets relative to the full statement, or docfilter.InvariantError for
// a rendering defect.
func Translate(sql string) (*Translation, error) {
	stmt, err := sqlparse.Split(sql)
	if err != nil {
		return nil, err
	}

	var pred sqlparse.Predicate
	if stmt.HasWhere() {
		pred, err = sqlparse.ParsePredicate(stmt.Where)
		if err != nil {
			return nil, sqlparse.ShiftOffset(err, stmt.WhereOffset)
		}
	}

	filter, err := docfilter.Render(pred)
	if err != nil {
		return nil, err
	}

	return &Translation{
		Collection: stmt.Table,
		Columns:    stmt.Columns,
		Star:       stmt.Star,
		Filter:     filter,
		Projection: docfilter.Projection(stmt.Columns, stmt.Star),
		Predicate:  pred,
		Limit:      stmt.Limit,
		Offset:     stmt.Offset,
	}, nil
}
