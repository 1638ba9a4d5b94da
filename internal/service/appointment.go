package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"appointhub-api/internal/model"
	"appointhub-api/internal/store"
)

// AppointmentStore is the persistence surface the appointment service
// needs. Mutating methods take the audit entry so the store can commit
// both in one transaction.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *model.Appointment, entry *model.AuditLog) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment, entry *model.AuditLog) error
	SoftDeleteAppointment(ctx context.Context, id string, entry *model.AuditLog) error
	AppointmentStats(ctx context.Context) (*model.Stats, error)
}

// AppointmentService owns the appointment lifecycle and the status state
// machine. Every mutation writes exactly one audit entry.
type AppointmentService struct {
	store AppointmentStore
	audit *AuditService
}

func NewAppointmentService(st AppointmentStore, audit *AuditService) *AppointmentService {
	return &AppointmentService{store: st, audit: audit}
}

type CreateInput struct {
	Title       string
	Description string
	Date        time.Time
}

// UpdateInput patches only the fields that are set. A nil field is "leave
// alone"; Description distinguishes nil from empty so it can be cleared.
type UpdateInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Status      *model.Status
}

func (in UpdateInput) patchesStatus() bool { return in.Status != nil }

// Create books a new appointment for the requester, always pending.
func (s *AppointmentService) Create(ctx context.Context, r model.Requester, in CreateInput) (*model.Appointment, error) {
	if in.Title == "" || in.Date.IsZero() {
		return nil, ErrTitleDateRequired
	}

	now := time.Now().UTC()
	a := &model.Appointment{
		ID:          uuid.New().String(),
		UserID:      r.ID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	entry := s.audit.Record(r.ID, model.ActionCreate, a.ID,
		nil, map[string]any{"title": a.Title, "date": a.Date})
	if err := s.store.CreateAppointment(ctx, a, entry); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns the appointment if the requester is an admin or the owner.
func (s *AppointmentService) Get(ctx context.Context, r model.Requester, id string) (*model.Appointment, error) {
	a, err := s.store.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := CanView(r, a.UserID); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns all live appointments for admins, the requester's own
// otherwise, newest created first.
func (s *AppointmentService) List(ctx context.Context, r model.Requester) ([]model.Appointment, error) {
	if r.IsAdmin() {
		return s.store.ListAppointments(ctx)
	}
	return s.store.ListAppointmentsByUser(ctx, r.ID)
}

// Update applies the provided fields. Only admins may set status, and the
// requested status must be a legal successor of the current one.
func (s *AppointmentService) Update(ctx context.Context, r model.Requester, id string, in UpdateInput) (*model.Appointment, error) {
	cur, err := s.store.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := CanUpdate(r, cur.UserID, cur.Status, in.patchesStatus()); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrBadStatus
		}
		if !cur.Status.CanTransition(*in.Status) {
			return nil, ErrBadTransition
		}
	}

	prevStatus := cur.Status
	upd := *cur
	if in.Title != nil && *in.Title != "" {
		upd.Title = *in.Title
	}
	if in.Description != nil {
		upd.Description = *in.Description
	}
	if in.Date != nil && !in.Date.IsZero() {
		upd.Date = *in.Date
	}
	if in.Status != nil {
		upd.Status = *in.Status
	}
	upd.UpdatedAt = time.Now().UTC()

	entry := s.audit.Record(r.ID, model.ActionUpdate, upd.ID,
		map[string]any{"status": prevStatus},
		map[string]any{"status": upd.Status})
	if err := s.store.UpdateAppointment(ctx, &upd, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &upd, nil
}

// Delete soft-deletes the appointment; the row stays behind the audit
// trail but leaves every read path.
func (s *AppointmentService) Delete(ctx context.Context, r model.Requester, id string) error {
	cur, err := s.store.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := CanDelete(r, cur.UserID); err != nil {
		return err
	}

	entry := s.audit.Record(r.ID, model.ActionDelete, cur.ID,
		map[string]any{"title": cur.Title}, nil)
	if err := s.store.SoftDeleteAppointment(ctx, id, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Stats aggregates live counts by status plus the user count. Admin only.
func (s *AppointmentService) Stats(ctx context.Context, r model.Requester) (*model.Stats, error) {
	if !r.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.store.AppointmentStats(ctx)
}
