package sqlite

import (
	"context"
	"database/sql"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/pkg/idx"
)

type auditRepo struct {
	db *sql.DB
}

func (r *auditRepo) Append(ctx context.Context, entry domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_id, actor_username, action, target_id, outcome, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.ActorID,
		entry.ActorUsername,
		string(entry.Action),
		entry.TargetID,
		string(entry.Outcome),
		entry.Detail,
		entry.CreatedAt,
	)
	return err
}

func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	// ULIDs sort by creation time, so ordering by id is ordering by time.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, actor_id, actor_username, action, target_id, outcome, detail, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var (
			entry  domain.AuditEntry
			rawID  string
			action string
			result string
		)
		if err := rows.Scan(
			&rawID,
			&entry.ActorID,
			&entry.ActorUsername,
			&action,
			&entry.TargetID,
			&result,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entry.ID = idx.ID(rawID)
		entry.Action = domain.AuditAction(action)
		entry.Outcome = domain.AuditOutcome(result)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
