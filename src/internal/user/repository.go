package user

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
	Insert(ctx context.Context, user *User) (primitive.ObjectID, error)
	FindAll(ctx context.Context, skip, limit int64) ([]*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Stats(ctx context.Context) (*models.UserStats, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &userRepository{
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *userRepository) Insert(ctx context.Context, user *User) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to insert user")
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, models.ErrDatabaseInsert
	}
	user.ID = id

	return id, nil
}

func (r *userRepository) FindAll(ctx context.Context, skip, limit int64) ([]*User, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find users")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	users := make([]*User, 0)
	for cursor.Next(ctx) {
		var user User
		if err := cursor.Decode(&user); err != nil {
			logrus.WithError(err).Error("Failed to decode user")
			continue
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("user_id", id.Hex()).Error("Failed to get user")
		return nil, models.ErrDatabaseQuery
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("email", email).Error("Failed to get user by email")
		return nil, models.ErrDatabaseQuery
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logrus.WithError(err).WithField("user_id", id.Hex()).Error("Failed to update user")
		return models.ErrDatabaseUpdate
	}

	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	total, err := r.countUsers(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	active, err := r.countUsers(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	admins, err := r.countUsers(ctx, bson.M{"role": RoleAdmin})
	if err != nil {
		return nil, err
	}

	clients, err := r.countUsers(ctx, bson.M{"role": RoleClient})
	if err != nil {
		return nil, err
	}

	monthStart := startOfMonth(time.Now().UTC())
	newThisMonth, err := r.countUsers(ctx, bson.M{"created_at": bson.M{"$gte": monthStart}})
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		Total:        total,
		Active:       active,
		Inactive:     total - active,
		Admins:       admins,
		Clients:      clients,
		NewThisMonth: newThisMonth,
	}, nil
}

func (r *userRepository) countUsers(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		logrus.WithError(err).WithField("filter", filter).Error("Failed to count users")
		return 0, models.ErrDatabaseQuery
	}
	return count, nil
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("user_id", id.Hex()).Error("Failed to delete user")
		return models.ErrDatabaseDelete
	}

	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}
