package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/task-auth-api/internal/auth"
	"github.com/BuzzLyutic/task-auth-api/internal/model"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GetAll(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, req model.TaskRequest, idempKey string) (model.Task, error) {
	args := m.Called(ctx, req, idempKey)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id int64, req model.TaskRequest) (model.Task, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) ToggleCompletion(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	args := m.Called(ctx, username, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) Validate(token string) (*auth.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}
