package activity

import (
	"commerce-admin-svc/src/clients"
	"commerce-admin-svc/src/internal/models"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, entry *Entry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error)
	List(ctx context.Context, skip, limit int64) ([]*Entry, error)
	ListByActor(ctx context.Context, actorID primitive.ObjectID, skip, limit int64) ([]*Entry, error)
	ListByResource(ctx context.Context, resource string, resourceID primitive.ObjectID, skip, limit int64) ([]*Entry, error)
	TopActions(ctx context.Context, limit int64) ([]models.TopActivity, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(db *clients.MongoDB, collectionName string) Repository {
	return &repository{collection: db.Database.Collection(collectionName)}
}

// Insert appends one entry. The store assigns the id and the write
// timestamp; concurrent appends need no coordination.
func (r *repository) Insert(ctx context.Context, entry *Entry) (primitive.ObjectID, error) {
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":   entry.Action,
			"resource": entry.Resource,
		}).Error("Failed to insert activity log entry")
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}
	entry.ID = id

	return id, nil
}

func (r *repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error) {
	var entry Entry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("log_id", id.Hex()).Error("Failed to get activity log entry")
		return nil, models.ErrDatabaseQuery
	}

	return &entry, nil
}

func (r *repository) List(ctx context.Context, skip, limit int64) ([]*Entry, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *repository) ListByActor(ctx context.Context, actorID primitive.ObjectID, skip, limit int64) ([]*Entry, error) {
	return r.find(ctx, bson.M{"user_id": actorID}, skip, limit)
}

func (r *repository) ListByResource(ctx context.Context, resource string, resourceID primitive.ObjectID, skip, limit int64) ([]*Entry, error) {
	filter := bson.M{
		"resource":    resource,
		"resource_id": resourceID,
	}
	return r.find(ctx, filter, skip, limit)
}

// find lists entries most recent first. The secondary sort on _id makes
// the order stable for entries sharing a timestamp.
func (r *repository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]*Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find activity log entries")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	entries := make([]*Entry, 0)
	for cursor.Next(ctx) {
		var entry Entry
		if err := cursor.Decode(&entry); err != nil {
			logrus.WithError(err).Error("Failed to decode activity log entry")
			continue
		}
		entries = append(entries, &entry)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return entries, nil
}

// TopActions groups the whole log by action and returns the most frequent
// ones. Equal counts are ordered ascending by action name so the result
// is deterministic.
func (r *repository) TopActions(ctx context.Context, limit int64) ([]models.TopActivity, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$action",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"action": "$_id",
			"count":  1,
			"_id":    0,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logrus.WithError(err).Error("Failed to aggregate top actions")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	activities := make([]models.TopActivity, 0)
	if err := cursor.All(ctx, &activities); err != nil {
		logrus.WithError(err).Error("Failed to decode top actions")
		return nil, models.ErrDatabaseQuery
	}

	return activities, nil
}
