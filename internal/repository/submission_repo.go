package repository

import (
	"context"
	"fmt"
	"stepsurvey/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// submissionRepo appends submission records to a MongoDB collection.
// Documents are only ever inserted.
type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a MongoDB-backed submission store
func NewSubmissionRepo(db *mongo.Database) SubmissionStore {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Name() string { return "mongo" }

func (r *submissionRepo) Append(ctx context.Context, record model.SubmissionRecord) error {
	if _, err := r.collection.InsertOne(ctx, RecordDocument(record)); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// RecordDocument converts a record to an ordered BSON document
func RecordDocument(record model.SubmissionRecord) bson.D {
	fields := record.Fields()
	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, bson.E{Key: f.Name, Value: f.Value})
	}
	return doc
}
