package consolesdk

// ============================================================================
// Error Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the console's standard error body.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is a human-readable description of what went wrong
	Error string `json:"error"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is the identity provider's token endpoint response per
// RFC 6749. Returned for both password and refresh_token grants.
type TokenResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the refresh token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// RefreshExpiresIn is the lifetime in seconds of the refresh token
	RefreshExpiresIn int `json:"refresh_expires_in,omitempty"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// User is the console's view of a provider user. Attribute and field names
// follow the provider's admin API JSON.
type User struct {
	// ID is the provider's stable user identifier
	ID string `json:"id"`

	// Username is the login name
	Username string `json:"username"`

	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	Enabled       bool `json:"enabled"`
	EmailVerified bool `json:"emailVerified"`

	// Attributes holds free-form multi-valued attributes, e.g.
	// {"phoneNumber": ["555"]}
	Attributes map[string][]string `json:"attributes,omitempty"`

	// Roles are the user's business roles (admin/manager), already filtered
	// of provider-internal realm roles
	Roles []string `json:"roles,omitempty"`

	// CreatedTimestamp is epoch milliseconds
	CreatedTimestamp int64 `json:"createdTimestamp,omitempty"`
}

// CreateUserRequest is the request to create a new user.
type CreateUserRequest struct {
	// Username is required
	Username string `json:"username"`

	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	// PhoneNumber is stored as the phoneNumber user attribute
	PhoneNumber string `json:"phoneNumber,omitempty"`

	// Role is "admin", "manager" or "standard" (default when empty)
	Role string `json:"role,omitempty"`

	// SendInvitation controls onboarding: when true the user receives an
	// email walking them through password setup and email verification;
	// when false they get a fixed temporary password instead
	SendInvitation bool `json:"sendInvitation,omitempty"`
}

// CreateUserResponse is the created user plus any non-fatal warning
// accumulated during the follow-up steps (role mapping, invitation email).
type CreateUserResponse struct {
	User

	// Warning is set when the user was created but a follow-up step failed
	Warning string `json:"warning,omitempty"`
}

// ============================================================================
// Password Types
// ============================================================================

// UpdatePasswordRequest is the self-service password change request.
type UpdatePasswordRequest struct {
	// CurrentPassword is re-verified against the provider before any change
	CurrentPassword string `json:"currentPassword"`

	// NewPassword must be at least 4 characters
	NewPassword string `json:"newPassword"`
}

// ============================================================================
// MFA Types
// ============================================================================

// MFAStatusResponse reports whether the caller has a configured second factor.
type MFAStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// SetMFAStatusRequest toggles the caller's MFA state.
type SetMFAStatusRequest struct {
	Enable bool `json:"enable"`
}

// ============================================================================
// Misc Response Types
// ============================================================================

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProtectedResponse echoes the caller's verified identity.
type ProtectedResponse struct {
	Message string `json:"message"`

	// User is the caller's preferred_username
	User string `json:"user"`

	// FullContent is the complete set of verified token claims
	FullContent map[string]any `json:"full_content"`
}

// AuditEntry is one record of a privileged console operation.
type AuditEntry struct {
	ID            string `json:"id"`
	ActorID       string `json:"actorId"`
	ActorUsername string `json:"actorUsername"`
	Action        string `json:"action"`
	TargetID      string `json:"targetId,omitempty"`
	Outcome       string `json:"outcome"`
	Detail        string `json:"detail,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by the /livez and /readyz endpoints (readyz
// includes the Checks field).
type HealthResponse struct {
	// Status is the overall health status (e.g., "ok", "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime as a duration string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains per-dependency readiness results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical backend dependencies.
type HealthChecks struct {
	// Database is the audit store connectivity status
	Database string `json:"database"`

	// Provider is the identity provider reachability status
	Provider string `json:"provider"`
}
