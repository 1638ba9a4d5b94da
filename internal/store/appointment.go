package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"appointhub-api/internal/model"
)

const appointmentCols = `a.id, a.user_id, a.title, a.description, a.date,
	a.status, a.created_at, a.updated_at`

// CreateAppointment inserts the appointment and its audit entry in one
// transaction so a mutation can never commit unaudited.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment, entry *model.AuditLog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO appointments (id, user_id, title, description, date, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.UserID, a.Title, a.Description, a.Date, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if err := insertAuditLog(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetAppointment returns a live appointment with owner name and email joined.
func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+`, COALESCE(u.name,''), COALESCE(u.email,'')
		 FROM appointments a LEFT JOIN users u ON a.user_id = u.id
		 WHERE a.id = $1 AND a.deleted_at IS NULL`, id,
	).Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.UserName, &a.UserEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAppointments returns every live appointment, newest created first,
// with owner name and email joined (admin view).
func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentCols+`, COALESCE(u.name,''), COALESCE(u.email,'')
		 FROM appointments a LEFT JOIN users u ON a.user_id = u.id
		 WHERE a.deleted_at IS NULL
		 ORDER BY a.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows, true)
}

// ListAppointmentsByUser returns one user's live appointments, newest
// created first. The owner email column is omitted from this view.
func (s *Store) ListAppointmentsByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentCols+`, COALESCE(u.name,'')
		 FROM appointments a LEFT JOIN users u ON a.user_id = u.id
		 WHERE a.user_id = $1 AND a.deleted_at IS NULL
		 ORDER BY a.created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows, false)
}

func scanAppointments(rows pgx.Rows, withEmail bool) ([]model.Appointment, error) {
	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		dest := []any{&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date,
			&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.UserName}
		if withEmail {
			dest = append(dest, &a.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAppointment writes the already-patched record and its audit entry
// in one transaction.
func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment, entry *model.AuditLog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE appointments
		 SET title=$1, description=$2, date=$3, status=$4, updated_at=$5
		 WHERE id=$6 AND deleted_at IS NULL`,
		a.Title, a.Description, a.Date, a.Status, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := insertAuditLog(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SoftDeleteAppointment stamps deleted_at and writes the audit entry in one
// transaction. The row is kept for audit history.
func (s *Store) SoftDeleteAppointment(ctx context.Context, id string, entry *model.AuditLog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE appointments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := insertAuditLog(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) AppointmentStats(ctx context.Context) (*model.Stats, error) {
	st := &model.Stats{}
	err := s.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE deleted_at IS NULL),
			COUNT(*) FILTER (WHERE status = 'pending' AND deleted_at IS NULL),
			COUNT(*) FILTER (WHERE status = 'approved' AND deleted_at IS NULL),
			COUNT(*) FILTER (WHERE status = 'rejected' AND deleted_at IS NULL),
			COUNT(*) FILTER (WHERE status = 'completed' AND deleted_at IS NULL)
		 FROM appointments`,
	).Scan(&st.Total, &st.Pending, &st.Approved, &st.Rejected, &st.Completed)
	if err != nil {
		return nil, err
	}
	st.Users, err = s.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	return st, nil
}
