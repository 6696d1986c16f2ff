package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
)

type MFAService struct {
	KC    *keycloak.Client
	Audit *AuditService
}

// Status reports whether the caller has at least one second-factor
// credential registered. A pending CONFIGURE_TOTP required action does not
// count: until the user completes setup, MFA is off.
func (s *MFAService) Status(ctx context.Context, userID string) (bool, error) {
	creds, err := s.KC.GetCredentials(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, cred := range creds {
		if cred.Type == keycloak.CredentialTypeOTP {
			return true, nil
		}
	}
	return false, nil
}

// SetEnabled toggles the caller's MFA state. Enabling is deferred: it only
// primes the next login with a CONFIGURE_TOTP required action and creates
// no secret. Disabling is immediate: every second-factor credential is
// deleted and the pending action removed. The asymmetry is intentional.
func (s *MFAService) SetEnabled(ctx context.Context, actor Actor, enable bool) (string, error) {
	var (
		msg string
		err error
	)
	if enable {
		msg, err = s.enable(ctx, actor.ID)
	} else {
		msg, err = s.disable(ctx, actor.ID)
	}

	if err != nil {
		s.Audit.Record(ctx, actor, domain.AuditMFAToggle, actor.ID, domain.OutcomeFailure, err.Error())
		return "", err
	}

	s.Audit.Record(ctx, actor, domain.AuditMFAToggle, actor.ID, domain.OutcomeSuccess, fmt.Sprintf("enable=%t", enable))
	return msg, nil
}

func (s *MFAService) enable(ctx context.Context, userID string) (string, error) {
	user, err := s.KC.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	if !slices.Contains(user.RequiredActions, keycloak.ActionConfigureTOTP) {
		user.RequiredActions = append(user.RequiredActions, keycloak.ActionConfigureTOTP)
		if err := s.KC.UpdateUser(ctx, userID, user); err != nil {
			return "", err
		}
	}

	return "MFA Setup Initiated. Logout and Login to configure.", nil
}

func (s *MFAService) disable(ctx context.Context, userID string) (string, error) {
	creds, err := s.KC.GetCredentials(ctx, userID)
	if err != nil {
		return "", err
	}

	// Clean slate: delete every second-factor credential. A partial
	// failure is reported, not papered over.
	for _, cred := range creds {
		if cred.Type != keycloak.CredentialTypeOTP {
			continue
		}
		if err := s.KC.DeleteCredential(ctx, userID, cred.ID); err != nil {
			return "", fmt.Errorf("delete otp credential %s: %w", cred.ID, err)
		}
	}

	// Also drop the pending setup action if they never completed it.
	user, err := s.KC.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if slices.Contains(user.RequiredActions, keycloak.ActionConfigureTOTP) {
		user.RequiredActions = slices.DeleteFunc(user.RequiredActions, func(a string) bool {
			return a == keycloak.ActionConfigureTOTP
		})
		if err := s.KC.UpdateUser(ctx, userID, user); err != nil {
			return "", err
		}
	}

	return "MFA Disabled.", nil
}
