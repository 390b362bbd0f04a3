package task

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"
	taskrepo "github.com/ovaphlow/pitchfork/service-quest-go/internal/task/repo"
)

// offerSize is how many random tasks are offered at a time.
const offerSize = 2

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAssignmentNotFound = errors.New("pending assignment not found")
	ErrNoPendingTask      = errors.New("no pending task")
	ErrInsufficientTasks  = errors.New("not enough tasks in catalog")
)

// Repository is the storage contract the service needs; *repo.TaskRepo satisfies it.
type Repository interface {
	SeedIfEmpty(ctx context.Context, tasks []entity.Task) (int, error)
	List(ctx context.Context) ([]entity.Task, error)
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	UserName(ctx context.Context, userID int64) (string, error)
	CreateAssignment(ctx context.Context, userID, taskID int64) (int64, error)
	FindPending(ctx context.Context, userID, taskID int64) (*entity.Assignment, error)
	Complete(ctx context.Context, a *entity.Assignment, points int) error
	FirstPending(ctx context.Context, userID int64) (*entity.Task, error)
	History(ctx context.Context, userID int64) ([]entity.HistoryEntry, error)
}

// Service implements task assignment and completion.
type Service struct {
	repo   Repository
	logger *zap.SugaredLogger
	// perm is swapped in tests for deterministic sampling.
	perm func(int) []int
}

func NewService(r Repository, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{repo: r, logger: logger}
}

// AssignResult is the outcome of AssignTask.
type AssignResult struct {
	ID       int64
	UserName string
	TaskName string
}

// SeedCatalog inserts DefaultCatalog if the catalog is empty. Safe to run on every start.
func (s *Service) SeedCatalog(ctx context.Context) error {
	n, err := s.repo.SeedIfEmpty(ctx, DefaultCatalog)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Infow("task catalog seeded", "count", n)
	}
	return nil
}

// RandomTasks returns two distinct catalog tasks chosen uniformly at random.
func (s *Service) RandomTasks(ctx context.Context) ([]entity.Task, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sample(catalog, offerSize, s.perm)
}

// AssignTask creates a new pending assignment. Existing pending assignments
// for the same pair are not checked; duplicates are allowed.
func (s *Service) AssignTask(ctx context.Context, userID, taskID int64) (*AssignResult, error) {
	userName, err := s.repo.UserName(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	id, err := s.repo.CreateAssignment(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("task assigned", "assignment_id", id, "user_id", userID, "task_id", taskID)
	return &AssignResult{ID: id, UserName: userName, TaskName: t.Name}, nil
}

// CompleteTask completes the pending assignment for the pair and returns a
// fresh offer of random tasks. The offered tasks are not assigned.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID int64) ([]entity.Task, error) {
	a, err := s.repo.FindPending(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Complete(ctx, a, t.Points); err != nil {
		if errors.Is(err, taskrepo.ErrNotPending) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	s.logger.Infow("task completed", "assignment_id", a.ID, "user_id", userID, "task_id", taskID, "points", t.Points)
	return s.RandomTasks(ctx)
}

// PendingTask returns the task of the user's oldest pending assignment.
func (s *Service) PendingTask(ctx context.Context, userID int64) (*entity.Task, error) {
	t, err := s.repo.FirstPending(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPendingTask
		}
		return nil, err
	}
	return t, nil
}

// History lists the user's assignments, most recent first. Unknown users get an empty list.
func (s *Service) History(ctx context.Context, userID int64) ([]entity.HistoryEntry, error) {
	return s.repo.History(ctx, userID)
}
