package product

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

type fakeProductRepository struct {
	products map[primitive.ObjectID]*Product

	lastSortField string
	lastLimit     int64
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[primitive.ObjectID]*Product)}
}

func (f *fakeProductRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeProductRepository) Insert(ctx context.Context, product *Product) (primitive.ObjectID, error) {
	product.ID = primitive.NewObjectID()
	f.products[product.ID] = product
	return product.ID, nil
}

func (f *fakeProductRepository) FindAll(ctx context.Context, category string, skip, limit int64) ([]*Product, error) {
	result := make([]*Product, 0, len(f.products))
	for _, p := range f.products {
		if category == "" || p.Category == category {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeProductRepository) FindTop(ctx context.Context, sortField string, limit int64) ([]*Product, error) {
	f.lastSortField = sortField
	f.lastLimit = limit
	return f.FindAll(ctx, "", 0, limit)
}

func (f *fakeProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	p, ok := f.products[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if name, ok := fields["name"].(string); ok {
		p.Name = name
	}
	if price, ok := fields["price"].(float64); ok {
		p.Price = price
	}
	return nil
}

func (f *fakeProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(f.products, id)
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

func TestCreateProductAttributesCallerNotProduct(t *testing.T) {
	repo := newFakeProductRepository()
	recorder := &fakeRecorder{}
	svc := NewProductService(repo, recorder, testConfig())

	actor := primitive.NewObjectID()
	created, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Laptop",
		Price:    999.99,
		Category: "electronics",
		Stock:    10,
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, created.Status)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, models.ResourceProduct, rec.Resource)
	assert.Equal(t, &actor, rec.ActorID)
	assert.Equal(t, &created.ID, rec.ResourceID)
	assert.NotEqual(t, rec.ActorID, rec.ResourceID)
	assert.Equal(t, "Laptop", rec.Details["name"])
}

func TestCreateProductAnonymousRecordsNoActor(t *testing.T) {
	repo := newFakeProductRepository()
	recorder := &fakeRecorder{}
	svc := NewProductService(repo, recorder, testConfig())

	_, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Mouse",
		Price:    19.99,
		Category: "electronics",
	}, nil)
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	assert.Nil(t, recorder.records[0].ActorID)
}

func TestDeleteProductCapturesNameBeforeRemoval(t *testing.T) {
	repo := newFakeProductRepository()
	recorder := &fakeRecorder{}
	svc := NewProductService(repo, recorder, testConfig())

	created, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Keyboard",
		Price:    49.99,
		Category: "electronics",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, nil))

	require.Len(t, recorder.records, 2)
	assert.Equal(t, models.ActionDelete, recorder.records[1].Action)
	assert.Equal(t, "Keyboard", recorder.records[1].Details["name"])
	assert.Empty(t, repo.products)
}

func TestUpdateProductRequiresFields(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, &fakeRecorder{}, testConfig())

	created, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Monitor",
		Price:    149.99,
		Category: "electronics",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &UpdateProductRequest{}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestTopDefaultsToPriceAndClampsLimit(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, &fakeRecorder{}, testConfig())

	_, err := svc.Top(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, TopByPrice, repo.lastSortField)
	assert.Equal(t, int64(5), repo.lastLimit)

	_, err = svc.Top(context.Background(), TopByCreatedAt, 1000)
	require.NoError(t, err)
	assert.Equal(t, TopByCreatedAt, repo.lastSortField)
	assert.Equal(t, int64(100), repo.lastLimit)

	// Unknown sort fields fall back to price.
	_, err = svc.Top(context.Background(), "stock", 3)
	require.NoError(t, err)
	assert.Equal(t, TopByPrice, repo.lastSortField)
}
