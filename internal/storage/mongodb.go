package storage

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jodahe1/AcademicHelper/internal/types"
	"github.com/jodahe1/AcademicHelper/internal/vector"
)

// MongoDB implements Storage using MongoDB. Nearest-neighbor queries use
// Atlas Vector Search when an index is available, falling back to an exact
// in-process cosine scan otherwise (fine at this corpus scale).
type MongoDB struct {
	client    *mongo.Client
	db        *mongo.Database
	sources   *mongo.Collection
	dim       int
	idCounter int64
}

// sourceDoc is the MongoDB document structure
type sourceDoc struct {
	ID              int64     `bson:"_id"`
	Title           string    `bson:"title"`
	Authors         string    `bson:"authors"`
	PublicationYear *int      `bson:"publication_year,omitempty"`
	Abstract        string    `bson:"abstract,omitempty"`
	FullText        string    `bson:"full_text,omitempty"`
	SourceType      string    `bson:"source_type"`
	Embedding       []float32 `bson:"embedding,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
}

// NewMongoDB creates a new MongoDB storage
func NewMongoDB(ctx context.Context, uri, database string, dim int) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	sources := db.Collection("academic_sources")

	m := &MongoDB{
		client:  client,
		db:      db,
		sources: sources,
		dim:     dim,
	}

	if err := m.initIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	if err := m.initIDCounter(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to init id counter: %w", err)
	}

	return m, nil
}

func (m *MongoDB) initIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "source_type", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := m.sources.Indexes().CreateMany(ctx, indexes)
	return err
}

func (m *MongoDB) initIDCounter(ctx context.Context) error {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	var doc sourceDoc
	err := m.sources.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		m.idCounter = 0
		return nil
	}
	if err != nil {
		return err
	}
	m.idCounter = doc.ID
	return nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) Add(ctx context.Context, src types.Source) (*types.Source, error) {
	id := atomic.AddInt64(&m.idCounter, 1)
	now := time.Now()

	doc := sourceDoc{
		ID:              id,
		Title:           src.Title,
		Authors:         src.Authors,
		PublicationYear: src.PublicationYear,
		Abstract:        src.Abstract,
		FullText:        src.FullText,
		SourceType:      string(src.SourceType),
		CreatedAt:       now,
	}

	_, err := m.sources.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert source: %w", err)
	}

	out := src
	out.ID = id
	out.CreatedAt = now
	out.Embedding = nil
	return &out, nil
}

func (m *MongoDB) List(ctx context.Context, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 10
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.sources.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return m.cursorToSources(ctx, cursor)
}

func (m *MongoDB) MissingEmbeddings(ctx context.Context) ([]types.Source, error) {
	filter := bson.D{{Key: "embedding", Value: bson.D{{Key: "$exists", Value: false}}}}
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := m.sources.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return m.cursorToSources(ctx, cursor)
}

func (m *MongoDB) StoreEmbeddings(ctx context.Context, updates []EmbeddingUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(updates))
	for i, u := range updates {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: u.SourceID}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: "embedding", Value: u.Vector}}}})
	}

	result, err := m.sources.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("failed to store embeddings: %w", err)
	}
	if result.MatchedCount != int64(len(updates)) {
		return fmt.Errorf("expected %d sources updated, matched %d", len(updates), result.MatchedCount)
	}

	return nil
}

func (m *MongoDB) NearestByVector(ctx context.Context, vec []float32, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	// Atlas Vector Search pipeline; requires a vector index named
	// "embedding_index" on the collection.
	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: "embedding_index"},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: vec},
			{Key: "numCandidates", Value: limit * 10},
			{Key: "limit", Value: limit},
		}}},
	}

	cursor, err := m.sources.Aggregate(ctx, pipeline)
	if err != nil {
		// Non-Atlas deployment: exact scan over embedded documents.
		return m.nearestByScan(ctx, vec, limit)
	}
	defer cursor.Close(ctx)

	sources, err := m.cursorToSources(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return m.nearestByScan(ctx, vec, limit)
	}
	return sources, nil
}

// nearestByScan ranks all embedded documents by cosine distance in process.
func (m *MongoDB) nearestByScan(ctx context.Context, vec []float32, limit int) ([]types.Source, error) {
	filter := bson.D{{Key: "embedding", Value: bson.D{{Key: "$exists", Value: true}}}}
	cursor, err := m.sources.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	type scored struct {
		src  types.Source
		dist float64
	}
	var ranked []scored

	for cursor.Next(ctx) {
		var doc sourceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ranked = append(ranked, scored{
			src:  docToSource(doc),
			dist: vector.CosineDistance(vec, doc.Embedding),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].dist < ranked[j].dist
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	sources := make([]types.Source, 0, limit)
	for _, r := range ranked[:limit] {
		sources = append(sources, r.src)
	}
	return sources, nil
}

func (m *MongoDB) SearchLexical(ctx context.Context, query string, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "title", Value: pattern}},
		bson.D{{Key: "authors", Value: pattern}},
	}}}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.sources.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return m.cursorToSources(ctx, cursor)
}

func (m *MongoDB) cursorToSources(ctx context.Context, cursor *mongo.Cursor) ([]types.Source, error) {
	var sources []types.Source
	for cursor.Next(ctx) {
		var doc sourceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		sources = append(sources, docToSource(doc))
	}

	return sources, cursor.Err()
}

func docToSource(doc sourceDoc) types.Source {
	return types.Source{
		ID:              doc.ID,
		Title:           doc.Title,
		Authors:         doc.Authors,
		PublicationYear: doc.PublicationYear,
		Abstract:        doc.Abstract,
		FullText:        doc.FullText,
		SourceType:      types.SourceType(doc.SourceType),
		CreatedAt:       doc.CreatedAt,
	}
}
