package console_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	consolehttp "github.com/openclave/realmadmin/internal/admin/http"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/internal/admin/store/drivers/sqlite"
	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/openclave/realmadmin/pkg/jwtx"
	"github.com/openclave/realmadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for console end-to-end tests.
 * The tests run the console in-process against a real Keycloak container
 * pre-seeded with the test realm, so they exercise the full path: SDK ->
 * console -> provider admin API, with real JWT verification against the
 * realm's published key set.
 */

const (
	keycloakImage = "quay.io/keycloak/keycloak:26.0"

	realmName     = "learning-realm"
	backendClient = "console-backend"
	backendSecret = "e2e-console-secret"
	publicClient  = "learning-client"
	adminUsername = "alice"
	adminPassword = "Admin123!"
	plainUsername = "sam"
	plainPassword = "Standard123!"
)

// realmImport is the realm definition imported into Keycloak at startup. The
// service account of the confidential client gets the realm-management roles
// the console needs for user administration.
const realmImport = `{
  "realm": "` + realmName + `",
  "enabled": true,
  "roles": {
    "realm": [
      {"name": "admin"},
      {"name": "manager"}
    ]
  },
  "clients": [
    {
      "clientId": "` + publicClient + `",
      "enabled": true,
      "publicClient": true,
      "directAccessGrantsEnabled": true
    },
    {
      "clientId": "` + backendClient + `",
      "enabled": true,
      "publicClient": false,
      "secret": "` + backendSecret + `",
      "serviceAccountsEnabled": true,
      "standardFlowEnabled": false,
      "directAccessGrantsEnabled": false
    }
  ],
  "users": [
    {
      "username": "` + adminUsername + `",
      "enabled": true,
      "email": "alice@example.com",
      "emailVerified": true,
      "firstName": "Alice",
      "lastName": "Admin",
      "credentials": [{"type": "password", "value": "` + adminPassword + `"}],
      "realmRoles": ["admin"]
    },
    {
      "username": "` + plainUsername + `",
      "enabled": true,
      "email": "sam@example.com",
      "emailVerified": true,
      "firstName": "Sam",
      "lastName": "Standard",
      "credentials": [{"type": "password", "value": "` + plainPassword + `"}]
    },
    {
      "username": "service-account-` + backendClient + `",
      "enabled": true,
      "serviceAccountClientId": "` + backendClient + `",
      "clientRoles": {
        "realm-management": ["manage-users", "view-users", "query-users"]
      }
    }
  ]
}`

// setupKeycloakContainer starts a Keycloak container with the test realm
// imported and returns its base URL.
func setupKeycloakContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	realmFile := filepath.Join(t.TempDir(), "realm.json")
	require.NoError(t, os.WriteFile(realmFile, []byte(realmImport), 0o644))

	req := testcontainers.ContainerRequest{
		Image:        keycloakImage,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"KC_BOOTSTRAP_ADMIN_USERNAME": "admin",
			"KC_BOOTSTRAP_ADMIN_PASSWORD": "admin",
		},
		Cmd: []string{"start-dev", "--import-realm"},
		Files: []testcontainers.ContainerFile{
			{
				HostFilePath:      realmFile,
				ContainerFilePath: "/opt/keycloak/data/import/realm.json",
				FileMode:          0o644,
			},
		},
		// The realm is imported before the listener comes up, so waiting for
		// its discovery document means the realm is ready too.
		WaitingFor: wait.ForHTTP("/realms/" + realmName + "/.well-known/openid-configuration").
			WithPort("8080/tcp").
			WithStartupTimeout(3 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// startConsole wires up the full console stack against the given provider
// and serves it over httptest.
func startConsole(t *testing.T, providerURL string) string {
	t.Helper()

	kc := keycloak.New(keycloak.Config{
		BaseURL:        providerURL,
		Realm:          realmName,
		ClientID:       backendClient,
		ClientSecret:   backendSecret,
		PublicClientID: publicClient,
	})

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slogx.New(slogx.Config{Service: "realmadmin-e2e", Level: "error", Format: "text"})

	verifier, err := jwtx.NewRemoteVerifier(
		jwtx.JWKSConfig{URL: kc.JWKSURL(), RefreshInterval: time.Hour},
		jwtx.VerifyOptions{Issuer: kc.IssuerURL(), Leeway: 30 * time.Second},
		logger,
	)
	require.NoError(t, err)

	router := consolehttp.NewRouter(verifier, "e2e", st, kc, logger)
	audit := &service.AuditService{Store: st}
	router.UserService = &service.UserService{KC: kc, Audit: audit}
	router.PasswordService = &service.PasswordService{KC: kc, Audit: audit}
	router.MFAService = &service.MFAService{KC: kc, Audit: audit}
	router.AuditService = audit
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// newSDK builds an SDK client pointed at the console and the realm's token
// endpoint.
func newSDK(consoleURL, providerURL string) *consolesdk.SDKClient {
	tokenURL := providerURL + "/realms/" + realmName + "/protocol/openid-connect/token"
	return consolesdk.NewSDKClient(consoleURL, tokenURL, publicClient)
}

// findUserByUsername returns the listed user with the given username.
func findUserByUsername(t *testing.T, users []consolesdk.User, username string) consolesdk.User {
	t.Helper()
	for _, u := range users {
		if u.Username == username {
			return u
		}
	}
	t.Fatalf("user %q not found in listing", username)
	return consolesdk.User{}
}
