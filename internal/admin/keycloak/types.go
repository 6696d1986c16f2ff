package keycloak

// User is the provider's user representation. Field names follow the admin
// API's JSON so payloads round-trip untouched.
type User struct {
	ID               string              `json:"id,omitempty"`
	Username         string              `json:"username,omitempty"`
	Email            string              `json:"email,omitempty"`
	FirstName        string              `json:"firstName,omitempty"`
	LastName         string              `json:"lastName,omitempty"`
	Enabled          bool                `json:"enabled"`
	EmailVerified    bool                `json:"emailVerified"`
	Attributes       map[string][]string `json:"attributes,omitempty"`
	RequiredActions  []string            `json:"requiredActions,omitempty"`
	Credentials      []Credential        `json:"credentials,omitempty"`
	CreatedTimestamp int64               `json:"createdTimestamp,omitempty"`
}

// Credential is one registered credential. Type is a provider tag such as
// "password" or "otp".
type Credential struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	Value     string `json:"value,omitempty"`
	Temporary bool   `json:"temporary,omitempty"`
}

// Role is a realm-role representation.
type Role struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite,omitempty"`
}

// Required-action names understood by the provider.
const (
	ActionUpdatePassword = "UPDATE_PASSWORD"
	ActionVerifyEmail    = "VERIFY_EMAIL"
	ActionConfigureTOTP  = "CONFIGURE_TOTP"
)

// CredentialTypeOTP tags a second-factor credential.
const CredentialTypeOTP = "otp"
