package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a raw JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures the expectations enforced on every token.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	// For Keycloak this is <server>/realms/<realm>.
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Keycloak realm keys are RSA by default; ES* kept for realms configured
// with elliptic curve keys.
var allowedSigningMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}

// RemoteVerifier verifies tokens against a key-resolution function, normally
// backed by the provider's JWKS endpoint (see NewRemoteVerifier in jwks.go).
type RemoteVerifier struct {
	keyfunc jwt.Keyfunc
	opts    VerifyOptions
}

// NewVerifierWithKeyfunc builds a verifier from an explicit key-resolution
// function. Used by tests to supply a static key without a JWKS endpoint.
func NewVerifierWithKeyfunc(kf jwt.Keyfunc, opts VerifyOptions) *RemoteVerifier {
	return &RemoteVerifier{keyfunc: kf, opts: opts}
}

// Verify parses the raw token, checks its signature against the provider's
// published keys and validates expiry, issuer and audience.
func (v *RemoteVerifier) Verify(raw string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, v.keyfunc,
		jwt.WithValidMethods(allowedSigningMethods),
		jwt.WithLeeway(v.opts.Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// mapParseError reduces golang-jwt's error soup to our sentinels so callers
// can branch without importing the jwt package.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return err
	}
}
