package console_test

import (
	"context"
	"testing"

	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/stretchr/testify/require"
)

// TestConsoleLifecycle drives the whole console through the SDK against a
// real provider: login, user administration, self-service password and MFA,
// and the audit trail. One container serves the full flow, so the subtests
// run in order and share state.
func TestConsoleLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ctx := context.Background()
	providerURL := setupKeycloakContainer(t)
	consoleURL := startConsole(t, providerURL)
	client := newSDK(consoleURL, providerURL)

	var session *consolesdk.Session
	var bobID string

	t.Run("public endpoints respond without a token", func(t *testing.T) {
		welcome, err := client.GetWelcome(ctx)
		require.NoError(t, err)
		require.Equal(t, "Welcome to the Public API!", welcome.Message)

		live, err := client.GetLiveness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", live.Status)

		ready, err := client.GetReadiness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", ready.Status)
		require.NotNil(t, ready.Checks)
		require.Equal(t, "ok", ready.Checks.Database)
		require.Equal(t, "ok", ready.Checks.Provider)
	})

	t.Run("login with password grant", func(t *testing.T) {
		var err error
		session, err = client.Login(ctx, adminUsername, adminPassword)
		require.NoError(t, err)
		require.NotEmpty(t, session.AccessToken())

		_, err = client.Login(ctx, adminUsername, "wrong-password")
		require.Error(t, err)
	})

	t.Run("protected endpoint echoes the caller", func(t *testing.T) {
		resp, err := session.GetProtected(ctx)
		require.NoError(t, err)
		require.Equal(t, "This is a PROTECTED resource.", resp.Message)
		require.Equal(t, adminUsername, resp.User)
	})

	t.Run("listing shows the seeded admin with their role", func(t *testing.T) {
		users, err := session.ListUsers(ctx)
		require.NoError(t, err)

		alice := findUserByUsername(t, users, adminUsername)
		require.Contains(t, alice.Roles, "admin")
		require.True(t, alice.EmailVerified)
	})

	t.Run("create a managed user", func(t *testing.T) {
		created, err := session.CreateUser(ctx, consolesdk.CreateUserRequest{
			Username:    "bob",
			Email:       "bob@example.com",
			FirstName:   "Bob",
			LastName:    "Builder",
			PhoneNumber: "555 0100",
			Role:        "manager",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.Empty(t, created.Warning)
		bobID = created.ID

		users, err := session.ListUsers(ctx)
		require.NoError(t, err)
		bob := findUserByUsername(t, users, "bob")
		require.Contains(t, bob.Roles, "manager")
		require.Equal(t, []string{"555 0100"}, bob.Attributes["phoneNumber"])
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := session.CreateUser(ctx, consolesdk.CreateUserRequest{Username: "bob"})
		require.Error(t, err)
		require.True(t, consolesdk.IsConflict(err))
	})

	t.Run("reset email without smtp is a soft success", func(t *testing.T) {
		msg, err := session.TriggerPasswordReset(ctx, bobID)
		require.NoError(t, err)
		require.Contains(t, msg.Message, "Email failed to send")
	})

	t.Run("mfa enable is deferred until next login", func(t *testing.T) {
		status, err := session.GetMFAStatus(ctx)
		require.NoError(t, err)
		require.False(t, status.Enabled)

		msg, err := session.SetMFAStatus(ctx, true)
		require.NoError(t, err)
		require.Equal(t, "MFA Setup Initiated. Logout and Login to configure.", msg.Message)

		// No authenticator is registered yet, only the pending setup action.
		status, err = session.GetMFAStatus(ctx)
		require.NoError(t, err)
		require.False(t, status.Enabled)

		msg, err = session.SetMFAStatus(ctx, false)
		require.NoError(t, err)
		require.Equal(t, "MFA Disabled.", msg.Message)
	})

	t.Run("self-service password change", func(t *testing.T) {
		_, err := session.UpdatePassword(ctx, "wrong-password", "NewAdmin123!")
		require.Error(t, err)
		require.True(t, consolesdk.IsUnauthorized(err))

		msg, err := session.UpdatePassword(ctx, adminPassword, "NewAdmin123!")
		require.NoError(t, err)
		require.Equal(t, "Password updated successfully", msg.Message)

		// The new password works for a fresh login, the old one is gone.
		fresh, err := client.Login(ctx, adminUsername, "NewAdmin123!")
		require.NoError(t, err)
		require.NotEmpty(t, fresh.AccessToken())
		_, err = client.Login(ctx, adminUsername, adminPassword)
		require.Error(t, err)
	})

	t.Run("audit trail records privileged operations", func(t *testing.T) {
		entries, err := session.ListAudit(ctx, 50)
		require.NoError(t, err)
		require.NotEmpty(t, entries)

		actions := make([]string, 0, len(entries))
		for _, e := range entries {
			actions = append(actions, e.Action)
			require.Equal(t, adminUsername, e.ActorUsername)
		}
		require.Contains(t, actions, "user.create")
		require.Contains(t, actions, "password.reset")
		require.Contains(t, actions, "mfa.toggle")
		require.Contains(t, actions, "password.self_update")
	})

	t.Run("delete the managed user", func(t *testing.T) {
		require.NoError(t, session.DeleteUser(ctx, bobID))

		users, err := session.ListUsers(ctx)
		require.NoError(t, err)
		for _, u := range users {
			require.NotEqual(t, "bob", u.Username)
		}
	})
}
