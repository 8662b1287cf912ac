package order

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

type Service interface {
	Create(ctx context.Context, req *CreateOrderRequest, actorID *primitive.ObjectID) (*Order, error)
	List(ctx context.Context, userID *primitive.ObjectID, skip, limit int64) ([]*Order, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Order, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateOrderRequest, actorID *primitive.ObjectID) (*Order, error)
	Delete(ctx context.Context, id primitive.ObjectID, actorID *primitive.ObjectID) error
}

type orderService struct {
	repository Repository
	recorder   activity.Recorder
	cfg        *config.Configuration
}

func NewOrderService(repository Repository, recorder activity.Recorder, cfg *config.Configuration) Service {
	return &orderService{
		repository: repository,
		recorder:   recorder,
		cfg:        cfg,
	}
}

func (s *orderService) Create(ctx context.Context, req *CreateOrderRequest, actorID *primitive.ObjectID) (*Order, error) {
	userID, err := models.ParseID(req.UserID)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := models.ParseID(item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	now := time.Now().UTC()
	order := &Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: req.TotalAmount,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repository.Insert(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, models.ActionCreate, id, s.resolveActor(actorID, order), map[string]interface{}{
		"total_amount": order.TotalAmount,
		"item_count":   len(order.Items),
		"status":       order.Status,
	})

	return order, nil
}

func (s *orderService) List(ctx context.Context, userID *primitive.ObjectID, skip, limit int64) ([]*Order, error) {
	skip, limit = clampPaging(skip, limit, s.cfg)
	return s.repository.FindAll(ctx, userID, skip, limit)
}

func (s *orderService) Get(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *orderService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateOrderRequest, actorID *primitive.ObjectID) (*Order, error) {
	// The owning user is resolved before the mutation; afterwards the
	// document may already describe someone else's state.
	current, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) == 0 {
		return nil, models.ErrInvalidParams
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.repository.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.logActivity(ctx, models.ActionUpdate, id, s.resolveActor(actorID, current), map[string]interface{}(fields))

	return s.repository.FindByID(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id primitive.ObjectID, actorID *primitive.ObjectID) error {
	order, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, models.ActionDelete, id, s.resolveActor(actorID, order), map[string]interface{}{
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})

	return nil
}

// resolveActor prefers the authenticated caller. Orders have an owning
// user, so an anonymous mutation is attributed to the owner captured
// before the mutation — never to the order's own id.
func (s *orderService) resolveActor(actorID *primitive.ObjectID, order *Order) *primitive.ObjectID {
	if actorID != nil {
		return actorID
	}
	owner := order.UserID
	return &owner
}

// logActivity appends an audit entry for a committed order mutation,
// best-effort.
func (s *orderService) logActivity(ctx context.Context, action string, resourceID primitive.ObjectID, actorID *primitive.ObjectID, details map[string]interface{}) {
	_, err := s.recorder.Record(ctx, activity.Record{
		Action:     action,
		Resource:   models.ResourceOrder,
		ResourceID: &resourceID,
		ActorID:    actorID,
		Details:    details,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":   action,
			"order_id": resourceID.Hex(),
		}).Error("Activity log append failed, order mutation preserved")
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
