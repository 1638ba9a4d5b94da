package model

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether next is a legal successor of s:
// pending → approved|rejected, approved → completed. rejected and
// completed are terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted
	}
	return false
}

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"-"`
}

type Appointment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`

	// joined for presentation
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// AuditLog is an append-only record of one mutation. Snapshots are stored
// verbatim as JSON for later diffing. Entity references are weak: the row
// survives deletion of its target.
type AuditLog struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Action      Action          `json:"action"`
	Entity      string          `json:"entity"`
	EntityID    string          `json:"entity_id"`
	OldSnapshot json.RawMessage `json:"old_snapshot,omitempty"`
	NewSnapshot json.RawMessage `json:"new_snapshot,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	UserName string `json:"user_name,omitempty"`
}

// Stats aggregates live appointment counts by status plus the user count.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
	Users     int `json:"users"`
}

// Requester is the authenticated identity a request acts as.
type Requester struct {
	ID    string
	Email string
	Role  Role
}

func (r Requester) IsAdmin() bool { return r.Role == RoleAdmin }
