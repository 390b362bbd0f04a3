package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-quest-go/internal/user/repo"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Repository is the storage contract the service needs; *repo.UserRepo satisfies it.
type Repository interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	CompletedPoints(ctx context.Context, userID int64) (int, error)
}

// UserService orchestrates registration, login and profile reads.
type UserService struct {
	repo   Repository
	hasher PasswordHasher
	logger *zap.SugaredLogger
}

func NewUserService(r Repository, hasher PasswordHasher, logger *zap.SugaredLogger) *UserService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UserService{repo: r, hasher: hasher, logger: logger}
}

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a bcrypt password hash and zero points.
// An existing row with the same email is never modified.
func (s *UserService) Register(ctx context.Context, username, email, password string) (int64, error) {
	email = normalizeEmail(email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return 0, ErrDuplicateEmail
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, &entity.User{
		Name:         strings.TrimSpace(username),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	s.logger.Infow("user registered", "user_id", id)
	return id, nil
}

// Login checks the password against the stored hash and returns the user summary.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.Summary, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" || !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.summarize(ctx, u)
}

// Profile returns the summary for userID.
func (s *UserService) Profile(ctx context.Context, userID int64) (*entity.Summary, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.summarize(ctx, u)
}

// summarize computes points from completed assignments; login and profile
// share this so they always agree.
func (s *UserService) summarize(ctx context.Context, u *entity.User) (*entity.Summary, error) {
	points, err := s.repo.CompletedPoints(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &entity.Summary{ID: u.ID, Name: u.Name, Email: u.Email, Points: points}, nil
}
