package user

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

type fakeUserRepository struct {
	users     map[primitive.ObjectID]*User
	insertErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[primitive.ObjectID]*User)}
}

func (f *fakeUserRepository) Insert(ctx context.Context, user *User) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context, skip, limit int64) ([]*User, error) {
	result := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	u, ok := f.users[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if email, ok := fields["email"].(string); ok {
		u.Email = email
	}
	if fullName, ok := fields["full_name"].(string); ok {
		u.FullName = fullName
	}
	if isActive, ok := fields["is_active"].(bool); ok {
		u.IsActive = isActive
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	stats := &models.UserStats{Total: int64(len(f.users))}
	for _, u := range f.users {
		if u.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats, nil
}

type fakeRecorder struct {
	records   []activity.Record
	recordErr error
}

func (f *fakeRecorder) Record(ctx context.Context, rec activity.Record) (primitive.ObjectID, error) {
	if f.recordErr != nil {
		return primitive.NilObjectID, f.recordErr
	}
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

func TestCreateUserRecordsActor(t *testing.T) {
	repo := newFakeUserRepository()
	recorder := &fakeRecorder{}
	svc := NewUserService(repo, recorder, testConfig())

	actor := primitive.NewObjectID()
	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Email:    "new@example.com",
		Password: "secret",
		FullName: "New User",
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, RoleClient, created.Role)
	assert.True(t, created.IsActive)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, models.ActionCreate, rec.Action)
	assert.Equal(t, models.ResourceUser, rec.Resource)
	assert.Equal(t, &created.ID, rec.ResourceID)
	assert.Equal(t, &actor, rec.ActorID)
	assert.Equal(t, "new@example.com", rec.Details["email"])
}

func TestCreateUserAnonymousRecordsNoActor(t *testing.T) {
	repo := newFakeUserRepository()
	recorder := &fakeRecorder{}
	svc := NewUserService(repo, recorder, testConfig())

	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Email:    "self@example.com",
		Password: "secret",
		FullName: "Self Registered",
	}, nil)
	require.NoError(t, err)

	// The created user is the subject, not the actor.
	require.Len(t, recorder.records, 1)
	assert.Nil(t, recorder.records[0].ActorID)
	assert.Equal(t, &created.ID, recorder.records[0].ResourceID)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	recorder := &fakeRecorder{}
	svc := NewUserService(repo, recorder, testConfig())

	_, err := svc.Create(context.Background(), &CreateUserRequest{
		Email:    "taken@example.com",
		Password: "secret",
		FullName: "First",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &CreateUserRequest{
		Email:    "taken@example.com",
		Password: "other",
		FullName: "Second",
	}, nil)
	assert.ErrorIs(t, err, models.ErrDuplicateRecord)
	assert.Len(t, recorder.records, 1)
}

func TestUpdateUserRequiresFields(t *testing.T) {
	repo := newFakeUserRepository()
	recorder := &fakeRecorder{}
	svc := NewUserService(repo, recorder, testConfig())

	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Email:    "u@example.com",
		Password: "secret",
		FullName: "U",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &UpdateUserRequest{}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestUpdateUnknownUserReturnsNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepository(), &fakeRecorder{}, testConfig())

	fullName := "Someone"
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), &UpdateUserRequest{FullName: &fullName}, nil)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestDeleteUserRecordsPreMutationDetails(t *testing.T) {
	repo := newFakeUserRepository()
	recorder := &fakeRecorder{}
	svc := NewUserService(repo, recorder, testConfig())

	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Email:    "gone@example.com",
		Password: "secret",
		FullName: "Going Away",
	}, nil)
	require.NoError(t, err)

	actor := primitive.NewObjectID()
	require.NoError(t, svc.Delete(context.Background(), created.ID, &actor))

	require.Len(t, recorder.records, 2)
	rec := recorder.records[1]
	assert.Equal(t, models.ActionDelete, rec.Action)
	assert.Equal(t, &actor, rec.ActorID)
	assert.Equal(t, "gone@example.com", rec.Details["email"])
	assert.Empty(t, repo.users)
}

func TestMutationSurvivesAppendFailure(t *testing.T) {
	repo := newFakeUserRepository()
	recorder := &fakeRecorder{recordErr: models.ErrActivityAppend}
	svc := NewUserService(repo, recorder, testConfig())

	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Email:    "kept@example.com",
		Password: "secret",
		FullName: "Kept",
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, repo.users, created.ID)
}
