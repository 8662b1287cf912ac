package order

import (
	"commerce-admin-svc/src/clients"
	"commerce-admin-svc/src/internal/models"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, order *Order) (primitive.ObjectID, error)
	FindAll(ctx context.Context, userID *primitive.ObjectID, skip, limit int64) ([]*Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &orderRepository{
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *orderRepository) Insert(ctx context.Context, order *Order) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		logrus.WithError(err).WithField("user_id", order.UserID.Hex()).Error("Failed to insert order")
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}
	order.ID = id

	return id, nil
}

func (r *orderRepository) FindAll(ctx context.Context, userID *primitive.ObjectID, skip, limit int64) ([]*Order, error) {
	filter := bson.M{}
	if userID != nil {
		filter["user_id"] = *userID
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find orders")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	orders := make([]*Order, 0)
	for cursor.Next(ctx) {
		var order Order
		if err := cursor.Decode(&order); err != nil {
			logrus.WithError(err).Error("Failed to decode order")
			continue
		}
		orders = append(orders, &order)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	var order Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("order_id", id.Hex()).Error("Failed to get order")
		return nil, models.ErrDatabaseQuery
	}

	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logrus.WithError(err).WithField("order_id", id.Hex()).Error("Failed to update order")
		return models.ErrDatabaseUpdate
	}

	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("order_id", id.Hex()).Error("Failed to delete order")
		return models.ErrDatabaseDelete
	}

	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}
