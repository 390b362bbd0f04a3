package task

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) SeedIfEmpty(ctx context.Context, tasks []entity.Task) (int, error) {
	args := m.Called(ctx, tasks)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]entity.Task, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).([]entity.Task)
	return ts, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*entity.Task)
	return t, args.Error(1)
}

func (m *mockRepo) UserName(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) CreateAssignment(ctx context.Context, userID, taskID int64) (int64, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) FindPending(ctx context.Context, userID, taskID int64) (*entity.Assignment, error) {
	args := m.Called(ctx, userID, taskID)
	a, _ := args.Get(0).(*entity.Assignment)
	return a, args.Error(1)
}

func (m *mockRepo) Complete(ctx context.Context, a *entity.Assignment, points int) error {
	return m.Called(ctx, a, points).Error(0)
}

func (m *mockRepo) FirstPending(ctx context.Context, userID int64) (*entity.Task, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*entity.Task)
	return t, args.Error(1)
}

func (m *mockRepo) History(ctx context.Context, userID int64) ([]entity.HistoryEntry, error) {
	args := m.Called(ctx, userID)
	h, _ := args.Get(0).([]entity.HistoryEntry)
	return h, args.Error(1)
}
