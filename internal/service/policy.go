package service

import "appointhub-api/internal/model"

// Authorization is decided here, away from HTTP, so the rules are testable
// in isolation. Admins may do everything; owners are limited by the current
// status of their appointment.

// CanView allows admins and the owner to read an appointment.
func CanView(r model.Requester, ownerID string) error {
	if r.IsAdmin() || r.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// CanDelete mirrors CanView: admins and the owner may soft-delete.
func CanDelete(r model.Requester, ownerID string) error {
	return CanView(r, ownerID)
}

// CanUpdate allows an update when the requester is an admin, or the owner
// of a still-pending appointment patching anything but status. Check order
// fixes which refusal the caller sees: ownership, then the status-field
// gate, then the pending freeze.
func CanUpdate(r model.Requester, ownerID string, current model.Status, patchesStatus bool) error {
	if r.IsAdmin() {
		return nil
	}
	if r.ID != ownerID {
		return ErrForbidden
	}
	if patchesStatus {
		return ErrOnlyAdminStatus
	}
	if current != model.StatusPending {
		return ErrEditNotPending
	}
	return nil
}
