package domain

import (
	"time"

	"github.com/openclave/realmadmin/pkg/idx"
)

// AuditAction names a privileged console operation.
type AuditAction string

const (
	AuditCreateUser    AuditAction = "user.create"
	AuditDeleteUser    AuditAction = "user.delete"
	AuditResetPassword AuditAction = "password.reset"
	AuditSelfPassword  AuditAction = "password.self_update"
	AuditMFAToggle     AuditAction = "mfa.toggle"
)

// AuditOutcome records how the operation ended.
type AuditOutcome string

const (
	OutcomeSuccess AuditOutcome = "success"
	OutcomeWarning AuditOutcome = "warning"
	OutcomeFailure AuditOutcome = "failure"
)

// AuditEntry is one append-only record of a privileged mutation. The actor
// fields come from the caller's verified token, never from the request body.
type AuditEntry struct {
	ID            idx.ID       `json:"id"`
	ActorID       string       `json:"actorId"`
	ActorUsername string       `json:"actorUsername"`
	Action        AuditAction  `json:"action"`
	TargetID      string       `json:"targetId,omitempty"`
	Outcome       AuditOutcome `json:"outcome"`
	Detail        string       `json:"detail,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}
