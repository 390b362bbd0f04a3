package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/user/entity"
)

// ErrEmailTaken is returned by Create when the unique email index rejects the row.
var ErrEmailTaken = errors.New("email taken")

const uniqueViolation = "23505"

// UserRepo provides data access for users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user with zero points and returns the new ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	const q = `INSERT INTO users (name, email, password_hash, points) VALUES ($1, $2, $3, 0) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, q, u.Name, u.Email, u.PasswordHash).Scan(&id); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	u.ID = id
	return id, nil
}

// GetByEmail returns the user matched by email or sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, name, email, password_hash, points FROM users WHERE email=$1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a full user row or sql.ErrNoRows.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `SELECT id, name, email, password_hash, points FROM users WHERE id=$1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// CompletedPoints sums task points over the user's completed assignments.
func (r *UserRepo) CompletedPoints(ctx context.Context, userID int64) (int, error) {
	const q = `SELECT COALESCE(SUM(t.points), 0)
		FROM user_tasks ut JOIN tasks t ON t.id = ut.task_id
		WHERE ut.user_id=$1 AND ut.status='completed'`
	var total int
	if err := r.db.GetContext(ctx, &total, q, userID); err != nil {
		return 0, err
	}
	return total, nil
}
