package client

import (
	"context"
	"sync"

	"appointhub-api/internal/model"
)

// AppointmentCache mirrors the server's appointment list and applies
// mutations to the local view before the server confirms them. On failure
// the prior snapshot is restored; there is no automatic retry. This is a
// compensating action, not a transaction.
type AppointmentCache struct {
	client *Client

	mu    sync.Mutex
	items []model.Appointment
}

func NewAppointmentCache(c *Client) *AppointmentCache {
	return &AppointmentCache{client: c}
}

// Refresh replaces the local view with the server's.
func (ac *AppointmentCache) Refresh(ctx context.Context) error {
	items, err := ac.client.Appointments(ctx)
	if err != nil {
		return err
	}
	ac.mu.Lock()
	ac.items = items
	ac.mu.Unlock()
	return nil
}

// Items returns a copy of the current local view.
func (ac *AppointmentCache) Items() []model.Appointment {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	out := make([]model.Appointment, len(ac.items))
	copy(out, ac.items)
	return out
}

// Update patches the local record immediately, then confirms with the
// server. The server's copy of the record wins on success; the snapshot
// comes back on failure.
func (ac *AppointmentCache) Update(ctx context.Context, id string, patch UpdateAppointment) error {
	snapshot := ac.Items()

	ac.mu.Lock()
	for i := range ac.items {
		if ac.items[i].ID != id {
			continue
		}
		if patch.Title != nil {
			ac.items[i].Title = *patch.Title
		}
		if patch.Description != nil {
			ac.items[i].Description = *patch.Description
		}
		if patch.Date != nil {
			ac.items[i].Date = *patch.Date
		}
		if patch.Status != nil {
			ac.items[i].Status = *patch.Status
		}
	}
	ac.mu.Unlock()

	updated, err := ac.client.UpdateAppointment(ctx, id, patch)
	if err != nil {
		ac.restore(snapshot)
		return err
	}

	ac.mu.Lock()
	for i := range ac.items {
		if ac.items[i].ID == id {
			ac.items[i] = *updated
		}
	}
	ac.mu.Unlock()
	return nil
}

// Delete removes the record locally, then confirms with the server.
func (ac *AppointmentCache) Delete(ctx context.Context, id string) error {
	snapshot := ac.Items()

	ac.mu.Lock()
	kept := ac.items[:0]
	for _, a := range ac.items {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	ac.items = kept
	ac.mu.Unlock()

	if err := ac.client.DeleteAppointment(ctx, id); err != nil {
		ac.restore(snapshot)
		return err
	}
	return nil
}

func (ac *AppointmentCache) restore(snapshot []model.Appointment) {
	ac.mu.Lock()
	ac.items = snapshot
	ac.mu.Unlock()
}
