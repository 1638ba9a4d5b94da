package service

import (
	"context"
	"sync"
	"time"

	"appointhub-api/internal/model"
	"appointhub-api/internal/store"
)

// MemStore is an in-memory implementation of the store interfaces for
// tests. It mirrors the real store's contract: soft-deleted rows are
// invisible, lists come back newest created first, and every mutation
// lands together with its audit entry.
type MemStore struct {
	mu           sync.Mutex
	users        []model.User
	appointments []model.Appointment
	logs         []model.AuditLog
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Email == u.Email && ex.DeletedAt == nil {
			return store.ErrDuplicateEmail
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *MemStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email && m.users[i].DeletedAt == nil {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) UserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].DeletedAt == nil {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) CountUsers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.users {
		if m.users[i].DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (m *MemStore) CreateAppointment(_ context.Context, a *model.Appointment, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = append(m.appointments, *a)
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *MemStore) GetAppointment(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.find(id)
	if a == nil {
		return nil, store.ErrNotFound
	}
	out := *a
	m.joinOwner(&out, true)
	return &out, nil
}

func (m *MemStore) ListAppointments(_ context.Context) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for i := len(m.appointments) - 1; i >= 0; i-- {
		if m.appointments[i].DeletedAt == nil {
			a := m.appointments[i]
			m.joinOwner(&a, true)
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStore) ListAppointmentsByUser(_ context.Context, userID string) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for i := len(m.appointments) - 1; i >= 0; i-- {
		if m.appointments[i].DeletedAt == nil && m.appointments[i].UserID == userID {
			a := m.appointments[i]
			m.joinOwner(&a, false)
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStore) UpdateAppointment(_ context.Context, a *model.Appointment, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.find(a.ID)
	if cur == nil {
		return store.ErrNotFound
	}
	keepCreated := cur.CreatedAt
	*cur = *a
	cur.CreatedAt = keepCreated
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *MemStore) SoftDeleteAppointment(_ context.Context, id string, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.find(id)
	if cur == nil {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	cur.DeletedAt = &now
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *MemStore) AppointmentStats(_ context.Context) (*model.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &model.Stats{}
	for i := range m.appointments {
		if m.appointments[i].DeletedAt != nil {
			continue
		}
		st.Total++
		switch m.appointments[i].Status {
		case model.StatusPending:
			st.Pending++
		case model.StatusApproved:
			st.Approved++
		case model.StatusRejected:
			st.Rejected++
		case model.StatusCompleted:
			st.Completed++
		}
	}
	for i := range m.users {
		if m.users[i].DeletedAt == nil {
			st.Users++
		}
	}
	return st, nil
}

func (m *MemStore) QueryAuditLogs(_ context.Context, action string, limit int) ([]model.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AuditLog
	for i := len(m.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if action != "" && string(m.logs[i].Action) != action {
			continue
		}
		e := m.logs[i]
		for j := range m.users {
			if m.users[j].ID == e.UserID {
				e.UserName = m.users[j].Name
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// Logs returns every recorded audit entry in insertion order.
func (m *MemStore) Logs() []model.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

func (m *MemStore) find(id string) *model.Appointment {
	for i := range m.appointments {
		if m.appointments[i].ID == id && m.appointments[i].DeletedAt == nil {
			return &m.appointments[i]
		}
	}
	return nil
}

func (m *MemStore) joinOwner(a *model.Appointment, withEmail bool) {
	for i := range m.users {
		if m.users[i].ID == a.UserID {
			a.UserName = m.users[i].Name
			if withEmail {
				a.UserEmail = m.users[i].Email
			}
		}
	}
}
