package entity

// User represents an account row in the `users` table.
type User struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	// Points mirrors the completed-task total; task completion keeps it in
	// step, but login and profile read the computed sum instead.
	Points int `db:"points"`
}

// Summary is the public projection returned by login and profile.
type Summary struct {
	ID     int64
	Name   string
	Email  string
	Points int
}
