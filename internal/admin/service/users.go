package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// DefaultTemporaryPassword is set on users created without an invitation.
// A known weak default carried over from the legacy behaviour; the user is
// forced to change it on first login because the credential is temporary.
const DefaultTemporaryPassword = "password"

type UserService struct {
	KC    *keycloak.Client
	Audit *AuditService
}

// UserWithRoles is a provider user record augmented with the filtered
// business roles shown in the console.
type UserWithRoles struct {
	keycloak.User

	Roles []string `json:"roles"`
}

// CreateUserParams is the validated input for user creation.
type CreateUserParams struct {
	Username       string
	Email          string
	FirstName      string
	LastName       string
	PhoneNumber    string
	Role           domain.Role
	SendInvitation bool
}

// ListUsers fetches all users, then fans out one composite role-mapping
// lookup per user and joins before returning. A failed lookup degrades that
// user's roles to empty instead of failing the whole list.
func (s *UserService) ListUsers(ctx context.Context) ([]UserWithRoles, error) {
	users, err := s.KC.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	log := slogx.FromContext(ctx)
	out := make([]UserWithRoles, len(users))

	// Unbounded fan-out: fine at console scale, revisit if realms grow
	// past a few hundred users.
	g, gctx := errgroup.WithContext(ctx)
	for i, user := range users {
		g.Go(func() error {
			out[i] = UserWithRoles{User: user, Roles: []string{}}

			mappings, err := s.KC.ListCompositeRealmRoleMappings(gctx, user.ID)
			if err != nil {
				log.Warn("failed to fetch roles for user",
					"username", user.Username, "err", err)
				return nil
			}

			names := make([]string, 0, len(mappings))
			for _, m := range mappings {
				names = append(names, m.Name)
			}
			out[i].Roles = domain.FilterElevated(names)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return out, nil
}

// CreateUser creates the user, then applies the role mapping and invitation
// email as separate best-effort steps. The steps are not atomic: once the
// user exists, later failures surface as warnings rather than rolling the
// creation back.
func (s *UserService) CreateUser(ctx context.Context, actor Actor, params CreateUserParams) (keycloak.User, string, error) {
	log := slogx.FromContext(ctx)

	payload := keycloak.User{
		Username:      params.Username,
		Email:         params.Email,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		Enabled:       true,
		EmailVerified: false, // verified via the invitation link
	}
	if params.PhoneNumber != "" {
		payload.Attributes = map[string][]string{
			"phoneNumber": {params.PhoneNumber},
		}
	}

	// Without an invitation the user gets a fixed temporary password and
	// is assumed verified (legacy behaviour).
	if !params.SendInvitation {
		payload.Credentials = []keycloak.Credential{{
			Type:      "password",
			Value:     DefaultTemporaryPassword,
			Temporary: true,
		}}
		payload.EmailVerified = true
	}

	id, err := s.KC.CreateUser(ctx, payload)
	if err != nil {
		s.Audit.Record(ctx, actor, domain.AuditCreateUser, "", domain.OutcomeFailure, err.Error())
		return keycloak.User{}, "", err
	}

	var warnings []string

	if params.Role.Elevated() {
		if warn := s.assignRole(ctx, id, params); warn != "" {
			warnings = append(warnings, warn)
		}
	}

	if params.SendInvitation {
		err := s.KC.ExecuteActionsEmail(ctx, id, []string{
			keycloak.ActionUpdatePassword,
			keycloak.ActionVerifyEmail,
		})
		if err != nil {
			log.Error("failed to send invitation email", "username", params.Username, "err", err)
			warnings = append(warnings, "User created, but Email failed.")
		} else {
			log.Info("invitation email sent", "email", params.Email)
		}
	}

	created, err := s.KC.GetUser(ctx, id)
	if err != nil {
		// The user exists; return what we know rather than failing.
		log.Warn("failed to fetch created user", "id", id, "err", err)
		created = payload
		created.ID = id
		created.Credentials = nil
	}

	warning := strings.Join(warnings, " ")
	outcome := domain.OutcomeSuccess
	if warning != "" {
		outcome = domain.OutcomeWarning
	}
	s.Audit.Record(ctx, actor, domain.AuditCreateUser, id, outcome, warning)

	return created, warning, nil
}

// assignRole looks the role up by name and maps it onto the user. A lookup
// miss or mapping failure is reported as a warning, never an error: the
// user stays created either way.
func (s *UserService) assignRole(ctx context.Context, userID string, params CreateUserParams) string {
	log := slogx.FromContext(ctx)

	role, err := s.KC.FindRoleByName(ctx, params.Role.String())
	if err != nil {
		if errors.Is(err, keycloak.ErrNotFound) {
			log.Warn("role not found, skipping mapping", "role", params.Role)
			return ""
		}
		log.Error("role lookup failed", "role", params.Role, "err", err)
		return fmt.Sprintf("User created, but role %q could not be assigned.", params.Role)
	}

	if err := s.KC.AddRealmRoleMappings(ctx, userID, []keycloak.Role{role}); err != nil {
		log.Error("role mapping failed", "role", params.Role, "err", err)
		return fmt.Sprintf("User created, but role %q could not be assigned.", params.Role)
	}

	log.Info("assigned role to user", "role", params.Role, "username", params.Username)
	return ""
}

// DeleteUser deletes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if err := s.KC.DeleteUser(ctx, id); err != nil {
		s.Audit.Record(ctx, actor, domain.AuditDeleteUser, id, domain.OutcomeFailure, err.Error())
		return err
	}

	s.Audit.Record(ctx, actor, domain.AuditDeleteUser, id, domain.OutcomeSuccess, "")
	return nil
}
