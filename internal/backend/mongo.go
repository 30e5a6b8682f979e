package backend

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo executes translated queries against a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to MongoDB and selects the named database. The
// context bounds connection establishment and the initial ping.
func OpenMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

func (m *Mongo) Name() string { return "mongo" }

// Run issues a find with the translated filter, projection, limit, and
// skip, and drains the cursor. Elapsed covers the find plus the drain,
// mirroring what a caller of the document store would actually wait for.
func (m *Mongo) Run(ctx context.Context, req Request) (*Result, error) {
	tr := req.Translation
	if tr == nil {
		return nil, fmt.Errorf("mongo executor needs a translation")
	}

	// A LIMIT 0 is a real cap of zero rows. It cannot be forwarded: the
	// server treats limit 0 as no limit at all, so answer without a find.
	if tr.Limit != nil && *tr.Limit == 0 {
		return &Result{Backend: m.Name()}, nil
	}

	opts := options.Find().SetProjection(tr.Projection)
	if tr.Limit != nil {
		opts.SetLimit(*tr.Limit)
	}
	if tr.Offset != nil {
		opts.SetSkip(*tr.Offset)
	}

	start := time.Now()
	cursor, err := m.db.Collection(tr.Collection).Find(ctx, tr.Filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", tr.Collection, err)
	}

	var docs []map[string]any
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("drain cursor: %w", err)
	}
	elapsed := time.Since(start)

	return &Result{
		Backend: m.Name(),
		Rows:    docs,
		Count:   len(docs),
		Elapsed: elapsed,
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Database exposes the selected database for the seeder.
func (m *Mongo) Database() *mongo.Database { return m.db }

// Inspect lists the database's collections with up to sampleLimit documents
// from each, _id suppressed. Backs the /inspect endpoint.
func (m *Mongo) Inspect(ctx context.Context, sampleLimit int64) (map[string][]map[string]any, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	out := make(map[string][]map[string]any, len(names))
	for _, name := range names {
		opts := options.Find().
			SetProjection(bson.D{{Key: "_id", Value: 0}}).
			SetLimit(sampleLimit)
		cursor, err := m.db.Collection(name).Find(ctx, bson.M{}, opts)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", name, err)
		}
		var docs []map[string]any
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("drain %s: %w", name, err)
		}
		out[name] = docs
	}
	return out, nil
}
