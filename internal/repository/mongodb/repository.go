package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bekzodm/tuxumpos/internal/domain/models"
)

// Repository defines the interface for ledger snapshot and summary storage.
type Repository interface {
	LoadState(ctx context.Context) (*models.LedgerState, error)
	SaveState(ctx context.Context, state models.LedgerState) error
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

const (
	snapshotCollection = "snapshots"
	summaryCollection  = "daily_summaries"
)

// snapshotDocument wraps the ledger state under a fixed key so every save is
// a full-document overwrite.
type snapshotDocument struct {
	ID        string             `bson:"_id"`
	State     models.LedgerState `bson:"state"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client      *mongo.Client
	dbName      string
	snapshotKey string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri, dbName, snapshotKey string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:      client,
		dbName:      dbName,
		snapshotKey: snapshotKey,
	}, nil
}

// LoadState returns the last saved ledger snapshot, or nil when none exists.
func (r *MongoDBRepository) LoadState(ctx context.Context) (*models.LedgerState, error) {
	collection := r.client.Database(r.dbName).Collection(snapshotCollection)

	var doc snapshotDocument
	err := collection.FindOne(ctx, bson.M{"_id": r.snapshotKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}

	return &doc.State, nil
}

// SaveState overwrites the full snapshot document for the configured key.
func (r *MongoDBRepository) SaveState(ctx context.Context, state models.LedgerState) error {
	collection := r.client.Database(r.dbName).Collection(snapshotCollection)

	doc := snapshotDocument{
		ID:        r.snapshotKey,
		State:     state,
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": r.snapshotKey}, doc, opts); err != nil {
		return fmt.Errorf("failed to save ledger snapshot: %w", err)
	}
	return nil
}

// SaveDailySummary saves a daily summary to the database.
func (r *MongoDBRepository) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	collection := r.client.Database(r.dbName).Collection(summaryCollection)
	if _, err := collection.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("failed to insert daily summary: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
