package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/internal/admin/store/drivers/sqlite"
	"github.com/openclave/realmadmin/pkg/jwtx"
	"github.com/openclave/realmadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testRealm = "learning-realm"

// Bearer tokens understood by the fake verifier.
const (
	tokenAdmin    = "token-admin"
	tokenManager  = "token-manager"
	tokenStandard = "token-standard"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (jwtx.Claims, error) {
	mk := func(sub, username string, roles ...string) jwtx.Claims {
		return jwtx.Claims{
			RegisteredClaims:  jwt.RegisteredClaims{Subject: sub},
			PreferredUsername: username,
			RealmAccess:       jwtx.RealmAccess{Roles: roles},
		}
	}

	switch token {
	case tokenAdmin:
		return mk("sub-admin", "alice", "admin", "offline_access"), nil
	case tokenManager:
		return mk("sub-manager", "mallory", "manager"), nil
	case tokenStandard:
		return mk("sub-standard", "stan"), nil
	default:
		return jwtx.Claims{}, jwtx.ErrInvalidSig
	}
}

// fakeProvider is a stateful in-memory stand-in for the identity provider.
// adminCalls counts every admin API request, which lets tests assert that
// rejected requests never reach the upstream.
type fakeProvider struct {
	mu sync.Mutex

	nextID       int
	users        map[string]*keycloak.User
	creds        map[string][]keycloak.Credential
	roles        map[string]keycloak.Role
	roleMappings map[string][]keycloak.Role
	passwords    map[string]string // username -> password

	emailFail  bool
	adminCalls atomic.Int64
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		users: map[string]*keycloak.User{},
		creds: map[string][]keycloak.Credential{},
		roles: map[string]keycloak.Role{
			"admin":   {ID: "role-a", Name: "admin"},
			"manager": {ID: "role-m", Name: "manager"},
		},
		roleMappings: map[string][]keycloak.Role{},
		passwords:    map[string]string{},
	}
}

func (f *fakeProvider) addUser(user keycloak.User, password string, roles ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := user
	f.users[u.ID] = &u
	f.passwords[u.Username] = password
	for _, name := range roles {
		f.roleMappings[u.ID] = append(f.roleMappings[u.ID], f.roles[name])
	}
}

func (f *fakeProvider) password(username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passwords[username]
}

func (f *fakeProvider) user(id string) keycloak.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return *u
	}
	return keycloak.User{}
}

func (f *fakeProvider) serve(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	admin := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			f.adminCalls.Add(1)
			f.mu.Lock()
			defer f.mu.Unlock()
			h(w, r)
		})
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	prefix := "/admin/realms/" + testRealm

	mux.HandleFunc("POST /realms/"+testRealm+"/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		if r.FormValue("grant_type") == "password" {
			if f.password(r.FormValue("username")) != r.FormValue("password") {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
		}
		writeJSON(w, map[string]any{
			"access_token": "svc-token",
			"token_type":   "Bearer",
			"expires_in":   300,
		})
	})

	// Readiness probe target.
	mux.HandleFunc("GET /realms/"+testRealm+"/protocol/openid-connect/certs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"keys": []any{}})
	})

	admin("GET "+prefix+"/users", func(w http.ResponseWriter, r *http.Request) {
		out := make([]keycloak.User, 0, len(f.users))
		for _, u := range f.users {
			out = append(out, *u)
		}
		slices.SortFunc(out, func(a, b keycloak.User) int {
			if a.Username < b.Username {
				return -1
			}
			return 1
		})
		writeJSON(w, out)
	})
	admin("POST "+prefix+"/users", func(w http.ResponseWriter, r *http.Request) {
		var user keycloak.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))

		for _, existing := range f.users {
			if existing.Username == user.Username {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"errorMessage":"User exists with same username"}`))
				return
			}
		}

		f.nextID++
		user.ID = "u-" + strconv.Itoa(f.nextID)
		for _, cred := range user.Credentials {
			f.creds[user.ID] = append(f.creds[user.ID], cred)
			if cred.Type == "password" {
				f.passwords[user.Username] = cred.Value
			}
		}
		user.Credentials = nil
		f.users[user.ID] = &user

		w.Header().Set("Location", fmt.Sprintf("%s/users/%s", prefix, user.ID))
		w.WriteHeader(http.StatusCreated)
	})
	admin("GET "+prefix+"/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		u, ok := f.users[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, u)
	})
	admin("PUT "+prefix+"/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var user keycloak.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		if _, ok := f.users[r.PathValue("id")]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		user.ID = r.PathValue("id")
		f.users[user.ID] = &user
		w.WriteHeader(http.StatusNoContent)
	})
	admin("DELETE "+prefix+"/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := f.users[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.users, id)
		w.WriteHeader(http.StatusNoContent)
	})
	admin("GET "+prefix+"/roles/{name}", func(w http.ResponseWriter, r *http.Request) {
		role, ok := f.roles[r.PathValue("name")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, role)
	})
	admin("POST "+prefix+"/users/{id}/role-mappings/realm", func(w http.ResponseWriter, r *http.Request) {
		var roles []keycloak.Role
		require.NoError(t, json.NewDecoder(r.Body).Decode(&roles))
		id := r.PathValue("id")
		f.roleMappings[id] = append(f.roleMappings[id], roles...)
		w.WriteHeader(http.StatusNoContent)
	})
	admin("GET "+prefix+"/users/{id}/role-mappings/realm/composite", func(w http.ResponseWriter, r *http.Request) {
		mappings := f.roleMappings[r.PathValue("id")]
		if mappings == nil {
			mappings = []keycloak.Role{}
		}
		writeJSON(w, mappings)
	})
	admin("GET "+prefix+"/users/{id}/credentials", func(w http.ResponseWriter, r *http.Request) {
		creds := f.creds[r.PathValue("id")]
		if creds == nil {
			creds = []keycloak.Credential{}
		}
		writeJSON(w, creds)
	})
	admin("DELETE "+prefix+"/users/{id}/credentials/{credID}", func(w http.ResponseWriter, r *http.Request) {
		id, credID := r.PathValue("id"), r.PathValue("credID")
		f.creds[id] = slices.DeleteFunc(f.creds[id], func(c keycloak.Credential) bool {
			return c.ID == credID
		})
		w.WriteHeader(http.StatusNoContent)
	})
	admin("PUT "+prefix+"/users/{id}/reset-password", func(w http.ResponseWriter, r *http.Request) {
		var cred keycloak.Credential
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cred))
		u, ok := f.users[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.passwords[u.Username] = cred.Value
		w.WriteHeader(http.StatusNoContent)
	})
	admin("PUT "+prefix+"/users/{id}/execute-actions-email", func(w http.ResponseWriter, r *http.Request) {
		if f.emailFail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"errorMessage":"Failed to send execute actions email"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestRouter stands up a full router against a fake provider and a
// throwaway audit store.
func newTestRouter(t *testing.T, provider *fakeProvider) *Router {
	t.Helper()

	srv := provider.serve(t)

	kc := keycloak.New(keycloak.Config{
		BaseURL:        srv.URL,
		Realm:          testRealm,
		ClientID:       "console-backend",
		ClientSecret:   "secret",
		PublicClientID: "learning-client",
	})

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slogx.New(slogx.Config{Service: "test", Level: "error", Format: "text"})

	router := NewRouter(fakeVerifier{}, "test", st, kc, logger)
	audit := &service.AuditService{Store: st}
	router.UserService = &service.UserService{KC: kc, Audit: audit}
	router.PasswordService = &service.PasswordService{KC: kc, Audit: audit}
	router.MFAService = &service.MFAService{KC: kc, Audit: audit}
	router.AuditService = audit
	router.ApplyRoutes()

	return router
}

// do performs a request against the router with an optional bearer token
// and JSON body.
func do(t *testing.T, router *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
