package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"appointhub-api/internal/model"
)

// EntityAppointment is the only audited entity type today.
const EntityAppointment = "appointment"

const auditQueryLimit = 100

// AuditStore is the read surface AuditService needs.
type AuditStore interface {
	QueryAuditLogs(ctx context.Context, action string, limit int) ([]model.AuditLog, error)
}

// AuditService owns the audit trail. Entries are recorded only as side
// effects of mutations and committed atomically with them; clients get a
// read-only, admin-gated query surface.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Record builds an append-only entry for the given mutation. The caller
// commits it together with the mutation itself. Snapshots that fail to
// marshal are dropped rather than blocking the mutation; they only ever
// hold plain string/time fields.
func (s *AuditService) Record(actorID string, action model.Action, entityID string, oldSnap, newSnap map[string]any) *model.AuditLog {
	entry := &model.AuditLog{
		ID:        uuid.New().String(),
		UserID:    actorID,
		Action:    action,
		Entity:    EntityAppointment,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	}
	if oldSnap != nil {
		entry.OldSnapshot, _ = json.Marshal(oldSnap)
	}
	if newSnap != nil {
		entry.NewSnapshot, _ = json.Marshal(newSnap)
	}
	return entry
}

// Query returns up to 100 most recent entries, newest first, optionally
// restricted to one action. Admin only.
func (s *AuditService) Query(ctx context.Context, r model.Requester, action string) ([]model.AuditLog, error) {
	if !r.IsAdmin() {
		return nil, ErrForbidden
	}
	if action == "all" {
		action = ""
	}
	return s.store.QueryAuditLogs(ctx, action, auditQueryLimit)
}
