package jwtx

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "http://localhost:8080/realms/learning-realm"

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func testClaims(ttl time.Duration) Claims {
	now := time.Now().UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "7f3a2c1e-user",
			Audience:  jwt.ClaimStrings{"account"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		PreferredUsername: "alice",
		Email:             "alice@example.com",
		RealmAccess:       RealmAccess{Roles: []string{"admin", "offline_access"}},
	}
}

func staticKeyfunc(key *rsa.PrivateKey) jwt.Keyfunc {
	return func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
}

func TestVerify(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	v := NewVerifierWithKeyfunc(staticKeyfunc(key), VerifyOptions{Issuer: testIssuer})

	t.Run("accepts a valid token and exposes claims", func(t *testing.T) {
		raw := signToken(t, key, testClaims(time.Minute))

		claims, err := v.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, "7f3a2c1e-user", claims.Subject)
		require.Equal(t, "alice", claims.PreferredUsername)
		require.True(t, claims.HasRealmRole("admin"))
		require.False(t, claims.HasRealmRole("manager"))
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		raw := signToken(t, key, testClaims(-time.Minute))

		_, err := v.Verify(raw)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := testKey(t)
		raw := signToken(t, other, testClaims(time.Minute))

		_, err := v.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := v.Verify("definitely.not.a.jwt")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("rejects a foreign issuer", func(t *testing.T) {
		claims := testClaims(time.Minute)
		claims.Issuer = "http://evil.example/realms/learning-realm"
		raw := signToken(t, key, claims)

		_, err := v.Verify(raw)
		require.ErrorIs(t, err, ErrIssuer)
	})

	t.Run("enforces audience when configured", func(t *testing.T) {
		strict := NewVerifierWithKeyfunc(staticKeyfunc(key), VerifyOptions{
			Issuer:   testIssuer,
			Audience: []string{"realm-admin-api"},
		})
		raw := signToken(t, key, testClaims(time.Minute))

		_, err := strict.Verify(raw)
		require.ErrorIs(t, err, ErrAudience)
	})

	t.Run("allows skew within leeway", func(t *testing.T) {
		lenient := NewVerifierWithKeyfunc(staticKeyfunc(key), VerifyOptions{
			Issuer: testIssuer,
			Leeway: 2 * time.Minute,
		})
		raw := signToken(t, key, testClaims(-time.Minute))

		_, err := lenient.Verify(raw)
		require.NoError(t, err)
	})
}

func TestClaimsRoleHelpers(t *testing.T) {
	t.Parallel()

	c := Claims{RealmAccess: RealmAccess{Roles: []string{"manager", "uma_authorization"}}}

	require.True(t, c.HasAnyRealmRole("admin", "manager"))
	require.False(t, c.HasAnyRealmRole("admin"))
	require.Equal(t, []string{"manager", "uma_authorization"}, c.RealmRoles())

	var empty Claims
	require.NotNil(t, empty.RealmRoles())
	require.Empty(t, empty.RealmRoles())
}
