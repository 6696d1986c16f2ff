package service

import (
	"context"
	"time"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/internal/admin/store"
	"github.com/openclave/realmadmin/pkg/idx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

// Actor identifies the caller of a privileged operation, taken from the
// verified token.
type Actor struct {
	ID       string
	Username string
}

// AuditService appends privileged operations to the local audit trail.
// Recording is best-effort: a failed append is logged and never fails the
// operation it describes.
type AuditService struct {
	Store store.Store
}

func (s *AuditService) Record(ctx context.Context, actor Actor, action domain.AuditAction, targetID string, outcome domain.AuditOutcome, detail string) {
	if s == nil || s.Store == nil {
		return
	}

	entry := domain.AuditEntry{
		ID:            idx.New(),
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Action:        action,
		TargetID:      targetID,
		Outcome:       outcome,
		Detail:        detail,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Store.Audit().Append(ctx, entry); err != nil {
		slogx.FromContext(ctx).Error("audit append failed",
			"action", action, "target", targetID, "err", err)
	}
}

// ListRecent returns up to limit audit entries, newest first.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return s.Store.Audit().ListRecent(ctx, limit)
}
