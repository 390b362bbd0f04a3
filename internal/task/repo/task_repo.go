package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"
)

// ErrNotPending is returned by Complete when the assignment is no longer pending.
var ErrNotPending = errors.New("assignment not pending")

// TaskRepo provides data access for tasks and user_tasks using sqlx.
type TaskRepo struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepo { return &TaskRepo{db: db} }

// SeedIfEmpty inserts tasks only when the catalog table has no rows and
// returns how many were inserted. The check and inserts share a transaction.
func (r *TaskRepo) SeedIfEmpty(ctx context.Context, tasks []entity.Task) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var n int
	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM tasks`); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	const q = `INSERT INTO tasks (name, description, points) VALUES ($1, $2, $3)`
	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, q, t.Name, t.Description, t.Points); err != nil {
			return 0, fmt.Errorf("insert task %q: %w", t.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

// List returns the whole catalog ordered by id.
func (r *TaskRepo) List(ctx context.Context) ([]entity.Task, error) {
	var out []entity.Task
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name, description, points FROM tasks ORDER BY id`); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the task or sql.ErrNoRows.
func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	var t entity.Task
	if err := r.db.GetContext(ctx, &t, `SELECT id, name, description, points FROM tasks WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// UserName returns the display name of the user or sql.ErrNoRows.
func (r *TaskRepo) UserName(ctx context.Context, userID int64) (string, error) {
	var name string
	if err := r.db.GetContext(ctx, &name, `SELECT name FROM users WHERE id=$1`, userID); err != nil {
		return "", err
	}
	return name, nil
}

// CreateAssignment inserts a pending assignment and returns its id.
func (r *TaskRepo) CreateAssignment(ctx context.Context, userID, taskID int64) (int64, error) {
	const q = `INSERT INTO user_tasks (user_id, task_id, status) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, q, userID, taskID, entity.StatusPending).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// FindPending returns the oldest pending assignment of the pair or sql.ErrNoRows.
func (r *TaskRepo) FindPending(ctx context.Context, userID, taskID int64) (*entity.Assignment, error) {
	const q = `SELECT id, user_id, task_id, status FROM user_tasks
		WHERE user_id=$1 AND task_id=$2 AND status=$3 ORDER BY id LIMIT 1`
	var a entity.Assignment
	if err := r.db.GetContext(ctx, &a, q, userID, taskID, entity.StatusPending); err != nil {
		return nil, err
	}
	return &a, nil
}

// Complete moves a pending assignment to completed and credits points to the
// user's stored counter in one transaction. The status guard in the UPDATE
// lets only one of several concurrent callers win; the rest get ErrNotPending.
func (r *TaskRepo) Complete(ctx context.Context, a *entity.Assignment, points int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE user_tasks SET status=$1 WHERE id=$2 AND status=$3`,
		entity.StatusCompleted, a.ID, entity.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotPending
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET points = points + $1 WHERE id=$2`, points, a.UserID); err != nil {
		return err
	}
	return tx.Commit()
}

// FirstPending returns the task of the user's oldest pending assignment or sql.ErrNoRows.
func (r *TaskRepo) FirstPending(ctx context.Context, userID int64) (*entity.Task, error) {
	const q = `SELECT t.id, t.name, t.description, t.points
		FROM user_tasks ut JOIN tasks t ON t.id = ut.task_id
		WHERE ut.user_id=$1 AND ut.status=$2 ORDER BY ut.id LIMIT 1`
	var t entity.Task
	if err := r.db.GetContext(ctx, &t, q, userID, entity.StatusPending); err != nil {
		return nil, err
	}
	return &t, nil
}

// History returns every assignment of the user, most recent first.
func (r *TaskRepo) History(ctx context.Context, userID int64) ([]entity.HistoryEntry, error) {
	const q = `SELECT ut.id, ut.task_id, t.name, t.description, t.points, ut.status
		FROM user_tasks ut JOIN tasks t ON t.id = ut.task_id
		WHERE ut.user_id=$1 ORDER BY ut.id DESC`
	out := []entity.HistoryEntry{}
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, err
	}
	return out, nil
}
