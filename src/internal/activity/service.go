package activity

import (
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultTopActionsLimit = 5

// Service is the read side of the activity log. All operations are
// non-mutating snapshots of entries committed before the query began.
type Service interface {
	List(ctx context.Context, skip, limit int64) ([]*Entry, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error)
	ListByActor(ctx context.Context, actorID primitive.ObjectID, skip, limit int64) ([]*Entry, error)
	ListByResource(ctx context.Context, resource string, resourceID primitive.ObjectID, skip, limit int64) ([]*Entry, error)
	TopActions(ctx context.Context, limit int64) ([]models.TopActivity, error)
}

type service struct {
	repository Repository
	cfg        *config.Configuration
}

func NewService(repository Repository, cfg *config.Configuration) Service {
	return &service{
		repository: repository,
		cfg:        cfg,
	}
}

func (s *service) List(ctx context.Context, skip, limit int64) ([]*Entry, error) {
	skip, limit = s.clampPaging(skip, limit)
	return s.repository.List(ctx, skip, limit)
}

func (s *service) GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *service) ListByActor(ctx context.Context, actorID primitive.ObjectID, skip, limit int64) ([]*Entry, error) {
	skip, limit = s.clampPaging(skip, limit)
	return s.repository.ListByActor(ctx, actorID, skip, limit)
}

func (s *service) ListByResource(ctx context.Context, resource string, resourceID primitive.ObjectID, skip, limit int64) ([]*Entry, error) {
	skip, limit = s.clampPaging(skip, limit)
	return s.repository.ListByResource(ctx, resource, resourceID, skip, limit)
}

func (s *service) TopActions(ctx context.Context, limit int64) ([]models.TopActivity, error) {
	if limit <= 0 {
		limit = defaultTopActionsLimit
	}
	if limit > int64(s.cfg.Search.MaxQueryLimit) {
		limit = int64(s.cfg.Search.MaxQueryLimit)
	}

	activities, err := s.repository.TopActions(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to get top actions")
		return nil, err
	}

	return activities, nil
}

func (s *service) clampPaging(skip, limit int64) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = int64(s.cfg.Search.DefaultQueryLimit)
	}
	if limit > int64(s.cfg.Search.MaxQueryLimit) {
		limit = int64(s.cfg.Search.MaxQueryLimit)
	}
	return skip, limit
}
