package order

import (
	"commerce-admin-svc/src/internal/activity"
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeOrderRepository struct {
	orders map[primitive.ObjectID]*Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[primitive.ObjectID]*Order)}
}

func (f *fakeOrderRepository) Insert(ctx context.Context, order *Order) (primitive.ObjectID, error) {
	order.ID = primitive.NewObjectID()
	f.orders[order.ID] = order
	return order.ID, nil
}

func (f *fakeOrderRepository) FindAll(ctx context.Context, userID *primitive.ObjectID, skip, limit int64) ([]*Order, error) {
	result := make([]*Order, 0, len(f.orders))
	for _, o := range f.orders {
		if userID == nil || o.UserID == *userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeOrderRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	o, ok := f.orders[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if status, ok := fields["status"].(string); ok {
		o.Status = status
	}
	return nil
}

func (f *fakeOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakeRecorder struct {
	records []activity.Record
}

func (f *fakeRecorder) Record(ctx context.Context, rec activity.Record) (primitive.ObjectID, error) {
	f.records = append(f.records, rec)
	return primitive.NewObjectID(), nil
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		App: config.Application{Timeout: 5},
		Search: config.SearchConfig{
			DefaultQueryLimit: 100,
			MaxQueryLimit:     100,
		},
	}
}

func TestCreateOrderRecordsSummary(t *testing.T) {
	repo := newFakeOrderRepository()
	recorder := &fakeRecorder{}
	svc := NewOrderService(repo, recorder, testConfig())

	owner := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: owner.Hex(),
		Items: []CreateOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Price: 100.00},
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Price: 99.98},
		},
		TotalAmount: 199.98,
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, owner, created.UserID)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, models.ActionCreate, rec.Action)
	assert.Equal(t, models.ResourceOrder, rec.Resource)
	assert.Equal(t, &actor, rec.ActorID)
	assert.Equal(t, &created.ID, rec.ResourceID)
	assert.Equal(t, 199.98, rec.Details["total_amount"])
	assert.Equal(t, 2, rec.Details["item_count"])
	assert.Equal(t, StatusPending, rec.Details["status"])
}

func TestCreateOrderAnonymousAttributesOwner(t *testing.T) {
	repo := newFakeOrderRepository()
	recorder := &fakeRecorder{}
	svc := NewOrderService(repo, recorder, testConfig())

	owner := primitive.NewObjectID()
	_, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: owner.Hex(),
		Items: []CreateOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 2, Price: 10.00},
		},
		TotalAmount: 20.00,
	}, nil)
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	require.NotNil(t, recorder.records[0].ActorID)
	assert.Equal(t, owner, *recorder.records[0].ActorID)
}

func TestCreateOrderRejectsMalformedReferences(t *testing.T) {
	repo := newFakeOrderRepository()
	recorder := &fakeRecorder{}
	svc := NewOrderService(repo, recorder, testConfig())

	_, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID:      "not-an-id",
		TotalAmount: 10.00,
	}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidReference)

	_, err = svc.Create(context.Background(), &CreateOrderRequest{
		UserID: primitive.NewObjectID().Hex(),
		Items: []CreateOrderItemRequest{
			{ProductID: "garbage", Quantity: 1, Price: 5.00},
		},
		TotalAmount: 5.00,
	}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidReference)

	assert.Empty(t, repo.orders)
	assert.Empty(t, recorder.records)
}

func TestUpdateOrderAnonymousAttributesPreMutationOwner(t *testing.T) {
	repo := newFakeOrderRepository()
	recorder := &fakeRecorder{}
	svc := NewOrderService(repo, recorder, testConfig())

	owner := primitive.NewObjectID()
	created, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: owner.Hex(),
		Items: []CreateOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Price: 50.00},
		},
		TotalAmount: 50.00,
	}, nil)
	require.NoError(t, err)

	status := StatusCompleted
	updated, err := svc.Update(context.Background(), created.ID, &UpdateOrderRequest{Status: &status}, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	require.Len(t, recorder.records, 2)
	rec := recorder.records[1]
	assert.Equal(t, models.ActionUpdate, rec.Action)
	require.NotNil(t, rec.ActorID)
	assert.Equal(t, owner, *rec.ActorID)
	assert.Equal(t, StatusCompleted, rec.Details["status"])
}

func TestUpdateOrderRequiresFields(t *testing.T) {
	repo := newFakeOrderRepository()
	svc := NewOrderService(repo, &fakeRecorder{}, testConfig())

	created, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: primitive.NewObjectID().Hex(),
		Items: []CreateOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Price: 5.00},
		},
		TotalAmount: 5.00,
	}, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &UpdateOrderRequest{}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestDeleteOrderRecordsPreMutationState(t *testing.T) {
	repo := newFakeOrderRepository()
	recorder := &fakeRecorder{}
	svc := NewOrderService(repo, recorder, testConfig())

	owner := primitive.NewObjectID()
	created, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: owner.Hex(),
		Items: []CreateOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 3, Price: 15.00},
		},
		TotalAmount: 45.00,
	}, nil)
	require.NoError(t, err)

	actor := primitive.NewObjectID()
	require.NoError(t, svc.Delete(context.Background(), created.ID, &actor))

	require.Len(t, recorder.records, 2)
	rec := recorder.records[1]
	assert.Equal(t, models.ActionDelete, rec.Action)
	assert.Equal(t, &actor, rec.ActorID)
	assert.Equal(t, 45.00, rec.Details["total_amount"])
	assert.Empty(t, repo.orders)
}

func TestListOrdersFiltersByOwner(t *testing.T) {
	repo := newFakeOrderRepository()
	svc := NewOrderService(repo, &fakeRecorder{}, testConfig())

	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	for _, uid := range []primitive.ObjectID{owner, owner, other} {
		_, err := svc.Create(context.Background(), &CreateOrderRequest{
			UserID: uid.Hex(),
			Items: []CreateOrderItemRequest{
				{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Price: 1.00},
			},
			TotalAmount: 1.00,
		}, nil)
		require.NoError(t, err)
	}

	orders, err := svc.List(context.Background(), &owner, 0, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	all, err := svc.List(context.Background(), nil, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
