package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims issued by the identity provider. Only
// the fields the console consumes are mapped; everything else in the token is
// ignored on purpose.
type Claims struct {
	jwt.RegisteredClaims

	// PreferredUsername is the login name shown in the UI and used for the
	// password proof-of-possession check.
	PreferredUsername string `json:"preferred_username,omitempty"`

	// Email and verification state as reported by the provider.
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`

	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`

	// RealmAccess carries the realm-level roles (realm_access.roles).
	RealmAccess RealmAccess `json:"realm_access,omitempty"`

	// Scope is the space-delimited scope string granted to the token.
	Scope string `json:"scope,omitempty"`

	// Azp is the authorized party (client id the token was issued to).
	Azp string `json:"azp,omitempty"`

	SessionState string `json:"session_state,omitempty"`
}

// RealmAccess is the nested realm_access object in provider tokens.
type RealmAccess struct {
	Roles []string `json:"roles"`
}

// RealmRoles returns the realm roles carried by the token. Never nil.
func (c *Claims) RealmRoles() []string {
	if c.RealmAccess.Roles == nil {
		return []string{}
	}
	return c.RealmAccess.Roles
}

// HasRealmRole reports whether the token carries the given realm role.
func (c *Claims) HasRealmRole(role string) bool {
	return slices.Contains(c.RealmAccess.Roles, role)
}

// HasAnyRealmRole reports whether the token carries at least one of the
// given realm roles.
func (c *Claims) HasAnyRealmRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRealmRole(r) {
			return true
		}
	}
	return false
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf), allowing for clock skew.
func (c *Claims) ValidateExpiry(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
