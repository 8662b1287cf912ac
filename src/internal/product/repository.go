package product

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
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, product *Product) (primitive.ObjectID, error)
	FindAll(ctx context.Context, category string, skip, limit int64) ([]*Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	FindTop(ctx context.Context, sortField string, limit int64) ([]*Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &productRepository{
		collection: mongoClient.Database.Collection(collectionName),
	}
}

// EnsureIndexes creates the category index used by filtered listings.
// Called once at startup.
func (r *productRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create category index")
		return models.ErrDatabaseQuery
	}
	return nil
}

func (r *productRepository) Insert(ctx context.Context, product *Product) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		logrus.WithError(err).WithField("name", product.Name).Error("Failed to insert product")
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}
	product.ID = id

	return id, nil
}

func (r *productRepository) FindAll(ctx context.Context, category string, skip, limit int64) ([]*Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	return r.find(ctx, filter, opts)
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var product Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("product_id", id.Hex()).Error("Failed to get product")
		return nil, models.ErrDatabaseQuery
	}

	return &product, nil
}

func (r *productRepository) FindTop(ctx context.Context, sortField string, limit int64) ([]*Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, bson.M{}, opts)
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logrus.WithError(err).WithField("product_id", id.Hex()).Error("Failed to update product")
		return models.ErrDatabaseUpdate
	}

	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("product_id", id.Hex()).Error("Failed to delete product")
		return models.ErrDatabaseDelete
	}

	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *productRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find products")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	products := make([]*Product, 0)
	for cursor.Next(ctx) {
		var product Product
		if err := cursor.Decode(&product); err != nil {
			logrus.WithError(err).Error("Failed to decode product")
			continue
		}
		products = append(products, &product)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return products, nil
}
