package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"appointhub-api/internal/model"
)

// insertAuditLog appends one entry inside the caller's transaction. Rows in
// audit_logs are never updated or deleted.
func insertAuditLog(ctx context.Context, tx pgx.Tx, entry *model.AuditLog) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO audit_logs (id, user_id, action, entity, entity_id, old_snapshot, new_snapshot, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		entry.ID, entry.UserID, entry.Action, entry.Entity, entry.EntityID,
		entry.OldSnapshot, entry.NewSnapshot, entry.CreatedAt,
	)
	return err
}

// QueryAuditLogs returns up to limit entries, newest first, with the actor
// name joined. action "" means no filter.
func (s *Store) QueryAuditLogs(ctx context.Context, action string, limit int) ([]model.AuditLog, error) {
	const cols = `al.id, al.user_id, al.action, al.entity, al.entity_id,
	              al.old_snapshot, al.new_snapshot, al.created_at, COALESCE(u.name,'')`

	var rows pgx.Rows
	var err error
	if action != "" {
		rows, err = s.pool.Query(ctx,
			`SELECT `+cols+`
			 FROM audit_logs al LEFT JOIN users u ON al.user_id = u.id
			 WHERE al.action = $1
			 ORDER BY al.created_at DESC LIMIT $2`, action, limit)
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT `+cols+`
			 FROM audit_logs al LEFT JOIN users u ON al.user_id = u.id
			 ORDER BY al.created_at DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AuditLog
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Entity, &e.EntityID,
			&e.OldSnapshot, &e.NewSnapshot, &e.CreatedAt, &e.UserName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
