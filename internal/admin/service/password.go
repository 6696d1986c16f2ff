package service

import (
	"context"
	"errors"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/pkg/slogx"
)

// ErrWrongCurrentPassword is returned when the proof-of-possession check
// fails; nothing has been mutated at that point.
var ErrWrongCurrentPassword = errors.New("service: current password incorrect")

// ResetEmailSoftFailMessage is returned when the provider accepted the
// reset but could not dispatch the email (no SMTP in dev realms).
const ResetEmailSoftFailMessage = "Reset initiated, but Email failed to send (SMTP missing in Keycloak). This is expected in Dev."

type PasswordService struct {
	KC    *keycloak.Client
	Audit *AuditService
}

// UpdateOwnPassword changes the caller's own password. The current password
// is first verified by re-authenticating the caller's username against the
// provider's token endpoint; the reset only happens after that check
// passes, so a wrong current password never mutates anything.
func (s *PasswordService) UpdateOwnPassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error {
	if err := s.KC.VerifyUserPassword(ctx, actor.Username, currentPassword); err != nil {
		if errors.Is(err, keycloak.ErrInvalidCredentials) {
			return ErrWrongCurrentPassword
		}
		return err
	}

	err := s.KC.ResetPassword(ctx, actor.ID, keycloak.Credential{
		Type:      "password",
		Value:     newPassword,
		Temporary: false, // user set it themselves
	})
	if err != nil {
		s.Audit.Record(ctx, actor, domain.AuditSelfPassword, actor.ID, domain.OutcomeFailure, err.Error())
		return err
	}

	s.Audit.Record(ctx, actor, domain.AuditSelfPassword, actor.ID, domain.OutcomeSuccess, "")
	return nil
}

// TriggerResetEmail fires an update-password action email at the target
// user. When the realm has no mail transport the provider may have
// registered the action anyway, so that case reports a soft success with
// an explanatory message instead of failing.
func (s *PasswordService) TriggerResetEmail(ctx context.Context, actor Actor, userID string) (string, error) {
	err := s.KC.ExecuteActionsEmail(ctx, userID, []string{keycloak.ActionUpdatePassword})
	if err == nil {
		s.Audit.Record(ctx, actor, domain.AuditResetPassword, userID, domain.OutcomeSuccess, "")
		return "Password reset email trigger sent", nil
	}

	if keycloak.IsEmailSendFailure(err) {
		slogx.FromContext(ctx).Warn("reset email could not be sent", "user_id", userID, "err", err)
		s.Audit.Record(ctx, actor, domain.AuditResetPassword, userID, domain.OutcomeWarning, ResetEmailSoftFailMessage)
		return ResetEmailSoftFailMessage, nil
	}

	s.Audit.Record(ctx, actor, domain.AuditResetPassword, userID, domain.OutcomeFailure, err.Error())
	return "", err
}
