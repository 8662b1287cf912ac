package product

import (
	"commerce-admin-svc/src/internal/activity"
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultTopProductsLimit = 5

type Service interface {
	Create(ctx context.Context, req *CreateProductRequest, actorID *primitive.ObjectID) (*Product, error)
	List(ctx context.Context, category string, skip, limit int64) ([]*Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Product, error)
	Top(ctx context.Context, by string, limit int64) ([]*Product, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateProductRequest, actorID *primitive.ObjectID) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID, actorID *primitive.ObjectID) error
}

type productService struct {
	repository Repository
	recorder   activity.Recorder
	cfg        *config.Configuration
}

func NewProductService(repository Repository, recorder activity.Recorder, cfg *config.Configuration) Service {
	return &productService{
		repository: repository,
		recorder:   recorder,
		cfg:        cfg,
	}
}

func (s *productService) Create(ctx context.Context, req *CreateProductRequest, actorID *primitive.ObjectID) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Status == "" {
		product.Status = StatusActive
	}

	id, err := s.repository.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	// The new product's own id is the subject here, never the actor.
	s.logActivity(ctx, models.ActionCreate, id, actorID, map[string]interface{}{
		"name": product.Name,
	})

	return product, nil
}

func (s *productService) List(ctx context.Context, category string, skip, limit int64) ([]*Product, error) {
	skip, limit = clampPaging(skip, limit, s.cfg)
	return s.repository.FindAll(ctx, category, skip, limit)
}

func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *productService) Top(ctx context.Context, by string, limit int64) ([]*Product, error) {
	sortField := TopByPrice
	if by == TopByCreatedAt {
		sortField = TopByCreatedAt
	}

	if limit <= 0 {
		limit = defaultTopProductsLimit
	}
	if limit > int64(s.cfg.Search.MaxQueryLimit) {
		limit = int64(s.cfg.Search.MaxQueryLimit)
	}

	return s.repository.FindTop(ctx, sortField, limit)
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateProductRequest, actorID *primitive.ObjectID) (*Product, error) {
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
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

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID, actorID *primitive.ObjectID) error {
	// Capture the name before the document disappears; the audit trail is
	// all that remains of a deleted product.
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, models.ActionDelete, id, actorID, map[string]interface{}{
		"name": product.Name,
	})

	return nil
}

// logActivity appends an audit entry for a committed product mutation,
// best-effort.
func (s *productService) logActivity(ctx context.Context, action string, resourceID primitive.ObjectID, actorID *primitive.ObjectID, details map[string]interface{}) {
	_, err := s.recorder.Record(ctx, activity.Record{
		Action:     action,
		Resource:   models.ResourceProduct,
		ResourceID: &resourceID,
		ActorID:    actorID,
		Details:    details,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":     action,
			"product_id": resourceID.Hex(),
		}).Error("Activity log append failed, product mutation preserved")
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
