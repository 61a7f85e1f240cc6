// Package mongodb provides a MongoDB-backed implementation of driven.DocumentStore.
//
// Every document is kept as one record holding its JSON body as text and
// the index rows it emits, so a document and its rows change atomically.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mukesh2006/medic/internal/adapters/driven/storage/views"
	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// CollectionName is the collection holding documents.
const CollectionName = "documents"

// record is the stored shape of a document.
type record struct {
	ID        string    `bson:"_id"`
	Rev       string    `bson:"rev"`
	Type      string    `bson:"type"`
	Body      string    `bson:"body"`
	Rows      []viewRow `bson:"rows"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type viewRow struct {
	View  string `bson:"view"`
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// Store is a MongoDB-backed driven.DocumentStore.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewStore connects to uri and prepares the documents collection of database.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	s, err := NewStoreFromClient(ctx, client, database)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewStoreFromClient uses an existing client. Close does not disconnect it.
func NewStoreFromClient(ctx context.Context, client *mongo.Client, database string) (*Store, error) {
	s := &Store{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "rows.view", Value: 1}, {Key: "rows.key", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating view index: %w", err)
	}
	return s, nil
}

// Close disconnects the client when the store created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Document, error) {
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("finding document: %w", err)
	}
	return &domain.Document{ID: rec.ID, Rev: rec.Rev, Body: json.RawMessage(rec.Body)}, nil
}

// BulkWrite stores documents one at a time. Creates rely on the _id
// uniqueness constraint and updates on a revision-filtered replace.
func (s *Store) BulkWrite(ctx context.Context, docs []domain.Document) ([]domain.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.WriteResult, 0, len(docs))
	for _, doc := range docs {
		res, err := s.write(ctx, doc)
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			res = views.Failed(doc.ID, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Store) write(ctx context.Context, doc domain.Document) (domain.WriteResult, error) {
	doc, err := views.Prepare(doc)
	if err != nil {
		return domain.WriteResult{}, err
	}

	saved, err := views.WithRev(doc, views.NextRev(doc.Rev))
	if err != nil {
		return domain.WriteResult{}, err
	}
	rec, err := toRecord(saved)
	if err != nil {
		return domain.WriteResult{}, err
	}

	if doc.Rev == "" {
		if _, err := s.coll.InsertOne(ctx, rec); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return views.Conflict(doc.ID), nil
			}
			return domain.WriteResult{}, fmt.Errorf("inserting document: %w", err)
		}
		return domain.WriteResult{ID: saved.ID, Rev: saved.Rev, OK: true}, nil
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "rev": doc.Rev}, rec)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("replacing document: %w", err)
	}
	if res.MatchedCount == 0 {
		return views.Conflict(doc.ID), nil
	}
	return domain.WriteResult{ID: saved.ID, Rev: saved.Rev, OK: true}, nil
}

// QueryByKey returns the rows of index matching key.
func (s *Store) QueryByKey(ctx context.Context, index, key string) ([]domain.IndexRow, error) {
	if !views.IsKnownIndex(index) {
		return nil, fmt.Errorf("%w: unknown index %q", domain.ErrInvalidInput, index)
	}

	match := bson.M{"view": index}
	if key != "" {
		match["key"] = key
	}
	cur, err := s.coll.Find(ctx, bson.M{"rows": bson.M{"$elemMatch": match}},
		options.Find().SetProjection(bson.M{"rows": 1}))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", index, err)
	}
	defer cur.Close(ctx)

	var out []domain.IndexRow
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		for _, row := range rec.Rows {
			if row.View != index || (key != "" && row.Key != key) {
				continue
			}
			out = append(out, domain.IndexRow{ID: rec.ID, Key: row.Key, Value: json.RawMessage(row.Value)})
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", index, err)
	}

	views.SortRows(out)
	return out, nil
}

func toRecord(doc domain.Document) (record, error) {
	rows, err := views.Rows(doc)
	if err != nil {
		return record{}, err
	}
	var probe struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(doc.Body, &probe)

	rec := record{
		ID:        doc.ID,
		Rev:       doc.Rev,
		Type:      probe.Type,
		Body:      string(doc.Body),
		Rows:      make([]viewRow, 0, len(rows)),
		UpdatedAt: time.Now().UTC(),
	}
	for _, r := range rows {
		rec.Rows = append(rec.Rows, viewRow{View: r.Index, Key: r.Key, Value: string(r.Value)})
	}
	return rec, nil
}
