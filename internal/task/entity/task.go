package entity

// Status is the lifecycle state of an assignment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is a catalog entry in the `tasks` table.
type Task struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Points      int    `db:"points"`
}

// Assignment links a user to a task (`user_tasks`). Each assignment is a
// distinct event; the same pair may appear many times.
type Assignment struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	TaskID int64  `db:"task_id"`
	Status Status `db:"status"`
}

// HistoryEntry is an assignment joined with its task.
type HistoryEntry struct {
	AssignmentID int64  `db:"id"`
	TaskID       int64  `db:"task_id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Points       int    `db:"points"`
	Status       Status `db:"status"`
}
