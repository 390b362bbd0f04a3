package router

import (
	"context"
	"database/sql"
	"sync"

	taskentity "github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"
	taskrepo "github.com/ovaphlow/pitchfork/service-quest-go/internal/task/repo"
	userentity "github.com/ovaphlow/pitchfork/service-quest-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-quest-go/internal/user/repo"
)

// memStore is an in-memory stand-in for both repositories, mirroring the
// semantics of the SQL implementations closely enough for end-to-end tests.
type memStore struct {
	mu          sync.Mutex
	users       []userentity.User
	tasks       []taskentity.Task
	assignments []taskentity.Assignment
}

func (m *memStore) Create(_ context.Context, u *userentity.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, userrepo.ErrEmailTaken
		}
	}
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, *u)
	return u.ID, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*userentity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) user(id int64) (*userentity.User, bool) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], true
		}
	}
	return nil, false
}

func (m *memStore) task(id int64) (*taskentity.Task, bool) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i], true
		}
	}
	return nil, false
}

func (m *memStore) CompletedPoints(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, a := range m.assignments {
		if a.UserID == userID && a.Status == taskentity.StatusCompleted {
			t, _ := m.task(a.TaskID)
			total += t.Points
		}
	}
	return total, nil
}

func (m *memStore) SeedIfEmpty(_ context.Context, tasks []taskentity.Task) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) > 0 {
		return 0, nil
	}
	for i, t := range tasks {
		t.ID = int64(i + 1)
		m.tasks = append(m.tasks, t)
	}
	return len(tasks), nil
}

func (m *memStore) List(context.Context) ([]taskentity.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]taskentity.Task(nil), m.tasks...), nil
}

// userStore and taskStore disambiguate GetByID, which both repositories declare.
type userStore struct{ *memStore }

func (s userStore) GetByID(_ context.Context, id int64) (*userentity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.user(id); ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type taskStore struct{ *memStore }

func (s taskStore) GetByID(_ context.Context, id int64) (*taskentity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.task(id); ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) UserName(_ context.Context, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.user(userID); ok {
		return u.Name, nil
	}
	return "", sql.ErrNoRows
}

func (m *memStore) CreateAssignment(_ context.Context, userID, taskID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.assignments) + 1)
	m.assignments = append(m.assignments, taskentity.Assignment{ID: id, UserID: userID, TaskID: taskID, Status: taskentity.StatusPending})
	return id, nil
}

func (m *memStore) FindPending(_ context.Context, userID, taskID int64) (*taskentity.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.UserID == userID && a.TaskID == taskID && a.Status == taskentity.StatusPending {
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) Complete(_ context.Context, a *taskentity.Assignment, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assignments {
		if m.assignments[i].ID == a.ID && m.assignments[i].Status == taskentity.StatusPending {
			m.assignments[i].Status = taskentity.StatusCompleted
			if u, ok := m.user(a.UserID); ok {
				u.Points += points
			}
			return nil
		}
	}
	return taskrepo.ErrNotPending
}

func (m *memStore) FirstPending(_ context.Context, userID int64) (*taskentity.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.UserID == userID && a.Status == taskentity.StatusPending {
			t, _ := m.task(a.TaskID)
			cp := *t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) History(_ context.Context, userID int64) ([]taskentity.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []taskentity.HistoryEntry{}
	for i := len(m.assignments) - 1; i >= 0; i-- {
		a := m.assignments[i]
		if a.UserID != userID {
			continue
		}
		t, _ := m.task(a.TaskID)
		out = append(out, taskentity.HistoryEntry{
			AssignmentID: a.ID,
			TaskID:       t.ID,
			Name:         t.Name,
			Description:  t.Description,
			Points:       t.Points,
			Status:       a.Status,
		})
	}
	return out, nil
}
