package user

import (
	"commerce-admin-svc/src/internal/activity"
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service interface {
	Create(ctx context.Context, req *CreateUserRequest, actorID *primitive.ObjectID) (*User, error)
	List(ctx context.Context, skip, limit int64) ([]*User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateUserRequest, actorID *primitive.ObjectID) (*User, error)
	Delete(ctx context.Context, id primitive.ObjectID, actorID *primitive.ObjectID) error
	Stats(ctx context.Context) (*models.UserStats, error)
}

type userService struct {
	repository Repository
	recorder   activity.Recorder
	cfg        *config.Configuration
}

func NewUserService(repository Repository, recorder activity.Recorder, cfg *config.Configuration) Service {
	return &userService{
		repository: repository,
		recorder:   recorder,
		cfg:        cfg,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest, actorID *primitive.ObjectID) (*User, error) {
	existing, err := s.repository.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicateRecord
	}

	now := time.Now().UTC()
	user := &User{
		Email:     req.Email,
		Password:  req.Password, // placeholder, no hashing
		FullName:  req.FullName,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Role == "" {
		user.Role = RoleClient
	}

	id, err := s.repository.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	// The actor is the authenticated caller, never the created user itself:
	// a self-registration with no authenticated principal records no actor.
	s.logActivity(ctx, models.ActionCreate, id, actorID, map[string]interface{}{
		"email":     user.Email,
		"full_name": user.FullName,
	})

	return user, nil
}

func (s *userService) List(ctx context.Context, skip, limit int64) ([]*User, error) {
	skip, limit = clampPaging(skip, limit, s.cfg)
	return s.repository.FindAll(ctx, skip, limit)
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repository.FindByEmail(ctx, email)
}

func (s *userService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateUserRequest, actorID *primitive.ObjectID) (*User, error) {
	// Resolve pre-mutation state first; the audit entry must describe the
	// user as it was when the action happened.
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		fields["password"] = *req.Password
	}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) == 0 {
		return nil, models.ErrInvalidParams
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.repository.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.logActivity(ctx, models.ActionUpdate, id, actorID, map[string]interface{}(fields))

	return s.repository.FindByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id primitive.ObjectID, actorID *primitive.ObjectID) error {
	// Capture the document before it disappears; after the delete there is
	// nothing left to describe.
	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, models.ActionDelete, id, actorID, map[string]interface{}{
		"email":     user.Email,
		"full_name": user.FullName,
	})

	return nil
}

func (s *userService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.repository.Stats(ctx)
}

// logActivity appends an audit entry for a committed user mutation. The
// append is best-effort: failures are logged for the operator and never
// turn the successful mutation into an error.
func (s *userService) logActivity(ctx context.Context, action string, resourceID primitive.ObjectID, actorID *primitive.ObjectID, details map[string]interface{}) {
	_, err := s.recorder.Record(ctx, activity.Record{
		Action:     action,
		Resource:   models.ResourceUser,
		ResourceID: &resourceID,
		ActorID:    actorID,
		Details:    details,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":  action,
			"user_id": resourceID.Hex(),
		}).Error("Activity log append failed, user mutation preserved")
	}
}

func clampPaging(skip, limit int64, cfg *config.Configuration) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = int64(cfg.Search.DefaultQueryLimit)
	}
	if limit > int64(cfg.Search.MaxQueryLimit) {
		limit = int64(cfg.Search.MaxQueryLimit)
	}
	return skip, limit
}
