package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/stretchr/testify/require"
)

func TestCreateUserWithoutInvitation(t *testing.T) {
	t.Parallel()

	var created keycloak.User
	var roleMappingCalls atomic.Int64

	kc := newFakeProvider(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST "+adminPath("/users"), func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.Header().Set("Location", adminPath("/users/new-1"))
			w.WriteHeader(http.StatusCreated)
		})
		mux.HandleFunc("GET "+adminPath("/users/new-1"), func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, keycloak.User{
				ID:            "new-1",
				Username:      created.Username,
				Email:         created.Email,
				Enabled:       true,
				EmailVerified: true,
				Attributes:    created.Attributes,
			})
		})
		mux.HandleFunc("POST "+adminPath("/users/{id}/role-mappings/realm"), func(w http.ResponseWriter, r *http.Request) {
			roleMappingCalls.Add(1)
			w.WriteHeader(http.StatusNoContent)
		})
	})

	svc := &UserService{KC: kc}
	user, warning, err := svc.CreateUser(context.Background(), testActor, CreateUserParams{
		Username:    "bob",
		Email:       "bob@example.com",
		PhoneNumber: "555",
		Role:        domain.RoleStandard,
	})
	require.NoError(t, err)
	require.Empty(t, warning)
	require.Equal(t, "new-1", user.ID)
	require.Equal(t, map[string][]string{"phoneNumber": {"555"}}, user.Attributes)

	// No invitation: fixed temporary password, pre-verified email.
	require.Len(t, created.Credentials, 1)
	require.Equal(t, "password", created.Credentials[0].Value)
	require.True(t, created.Credentials[0].Temporary)
	require.True(t, created.EmailVerified)

	// Standard users get no realm-role mapping at all.
	require.EqualValues(t, 0, roleMappingCalls.Load())
}

func TestCreateUserAssignsElevatedRole(t *testing.T) {
	t.Parallel()

	var mapped []keycloak.Role

	kc := newFakeProvider(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST "+adminPath("/users"), func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", adminPath("/users/new-2"))
			w.WriteHeader(http.StatusCreated)
		})
		mux.HandleFunc("GET "+adminPath("/roles/{name}"), func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "manager", r.PathValue("name"))
			writeJSON(t, w, keycloak.Role{ID: "role-m", Name: "manager"})
		})
		mux.HandleFunc("POST "+adminPath("/users/{id}/role-mappings/realm"), func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "new-2", r.PathValue("id"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&mapped))
			w.WriteHeader(http.StatusNoContent)
		})
		mux.HandleFunc("GET "+adminPath("/users/new-2"), func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, keycloak.User{ID: "new-2", Username: "carol", Enabled: true})
		})
	})

	svc := &UserService{KC: kc}
	_, warning, err := svc.CreateUser(context.Background(), testActor, CreateUserParams{
		Username: "carol",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)
	require.Empty(t, warning)

	require.Len(t, mapped, 1)
	require.Equal(t, "role-m", mapped[0].ID)
}

func TestCreateUserMissingRoleIsSkippedSilently(t *testing.T) {
	t.Parallel()

	kc := newFakeProvider(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST "+adminPath("/users"), func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", adminPath("/users/new-3"))
			w.WriteHeader(http.StatusCreated)
		})
		mux.HandleFunc("GET "+adminPath("/roles/{name}"), func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("GET "+adminPath("/users/new-3"), func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, keycloak.User{ID: "new-3", Username: "dave", Enabled: true})
		})
	})

	svc := &UserService{KC: kc}
	_, warning, err := svc.CreateUser(context.Background(), testActor, CreateUserParams{
		Username: "dave",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Empty(t, warning, "a missing realm role is not the caller's problem")
}

func TestCreateUserInvitationEmailFailureIsAWarning(t *testing.T) {
	t.Parallel()

	var emailActions []string

	kc := newFakeProvider(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST "+adminPath("/users"), func(w http.ResponseWriter, r *http.Request) {
			var user keycloak.User
			require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
			require.Empty(t, user.Credentials, "invited users get no temporary password")
			require.False(t, user.EmailVerified)

			w.Header().Set("Location", adminPath("/users/new-4"))
			w.WriteHeader(http.StatusCreated)
		})
		mux.HandleFunc("PUT "+adminPath("/users/{id}/execute-actions-email"), func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&emailActions))
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"errorMessage":"Failed to send execute actions email"}`))
		})
		mux.HandleFunc("GET "+adminPath("/users/new-4"), func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, keycloak.User{ID: "new-4", Username: "erin", Enabled: true})
		})
	})

	svc := &UserService{KC: kc}
	user, warning, err := svc.CreateUser(context.Background(), testActor, CreateUserParams{
		Username:       "erin",
		Email:          "erin@example.com",
		Role:           domain.RoleStandard,
		SendInvitation: true,
	})
	require.NoError(t, err, "the user exists, so the call succeeds")
	require.Equal(t, "new-4", user.ID)
	require.Equal(t, "User created, but Email failed.", warning)

	require.Equal(t, []string{keycloak.ActionUpdatePassword, keycloak.ActionVerifyEmail}, emailActions)
}

func TestCreateUserConflictFails(t *testing.T) {
	t.Parallel()

	kc := newFakeProvider(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST "+adminPath("/users"), func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"errorMessage":"User exists with same username"}`))
		})
	})

	svc := &UserService{KC: kc}
	_, _, err := svc.CreateUser(context.Background(), testActor, CreateUserParams{Username: "bob"})
	require.ErrorIs(t, err, keycloak.ErrConflict)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	var deleted atomic.Int64

	kc := newFakeProvider(t, func(mux *http.ServeMux) {
		mux.HandleFunc("DELETE "+adminPath("/users/{id}"), func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "u9", r.PathValue("id"))
			deleted.Add(1)
			w.WriteHeader(http.StatusNoContent)
		})
	})

	svc := &UserService{KC: kc}
	require.NoError(t, svc.DeleteUser(context.Background(), testActor, "u9"))
	require.EqualValues(t, 1, deleted.Load())
}
