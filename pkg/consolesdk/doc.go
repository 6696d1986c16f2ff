/*
Package consolesdk provides a client SDK for the realm administration
console.

# Overview

The SDK talks to two services: the identity provider's token endpoint for
authentication, and the console backend for user administration. It is
organized around two types:

  - SDKClient: holds endpoints, performs login, serves public endpoints
  - Session: authenticated operations with automatic token refresh

Create an SDKClient with the console base URL, the provider's token
endpoint, and the public client id:

	client := consolesdk.NewSDKClient(
		"http://localhost:3000",
		"http://localhost:8080/realms/learning-realm/protocol/openid-connect/token",
		"learning-client",
	)

	// Check backend health
	health, err := client.GetLiveness(ctx)

	// Log in to create a session
	session, err := client.Login(ctx, "alice", "password")

Use the Session for everything authenticated:

	users, err := session.ListUsers(ctx)

	created, err := session.CreateUser(ctx, consolesdk.CreateUserRequest{
		Username:    "bob",
		Email:       "bob@example.com",
		PhoneNumber: "555",
		Role:        "manager",
	})
	if created.Warning != "" {
		// The user exists, but a follow-up step failed (e.g. the
		// invitation email could not be sent).
	}

# Automatic Token Refresh

Session methods call getValidToken() internally, which:

 1. Returns the current access token while it is valid (30-second buffer)
 2. Otherwise exchanges the refresh token for a new token pair
 3. Returns ErrSessionExpired when the refresh token is also rejected

On ErrSessionExpired the caller must Login again; there is no silent
re-authentication with stored credentials.

# Error Handling

Non-2xx responses surface as *APIError carrying the HTTP status and the
server's error text. Helpers cover the common checks:

	_, err := session.CreateUser(ctx, req)
	switch {
	case consolesdk.IsConflict(err):
		// username or email already taken
	case consolesdk.IsForbidden(err):
		// caller lacks the admin role
	}

# Thread Safety

Sessions are safe for concurrent use: token state is guarded by a
read/write lock and refreshes are deduplicated across goroutines.
*/
package consolesdk
