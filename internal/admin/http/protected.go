package http

import (
	"encoding/json"
	"net/http"

	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/openclave/realmadmin/pkg/httpx"
)

// HandleWelcome handles GET /
//
//	@Summary		Public welcome
//	@Description	Public endpoint confirming the API is reachable.
//	@Tags			Public
//	@Produce		json
//	@Success		200	{object}	consolesdk.MessageResponse	"Welcome message"
//	@Router			/ [get].
func HandleWelcome(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, consolesdk.MessageResponse{
		Message: "Welcome to the Public API!",
	})
}

// HandleProtected handles GET /api/protected
//
//	@Summary		Authenticated echo
//	@Description	Echoes the caller's verified username and full token claims. Useful
//	@Description	for checking that a token is accepted.
//	@Tags			Public
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	consolesdk.ProtectedResponse	"Caller identity"
//	@Failure		401	{object}	consolesdk.ErrorResponse		"Invalid or missing access token"
//	@Router			/api/protected [get].
func HandleProtected(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, _ := httpx.ClaimsFromContext(ctx)

	// Round-trip through JSON so the response mirrors the raw claim names.
	var full map[string]any
	if buf, err := json.Marshal(claims); err == nil {
		_ = json.Unmarshal(buf, &full)
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.ProtectedResponse{
		Message:     "This is a PROTECTED resource.",
		User:        claims.PreferredUsername,
		FullContent: full,
	})
}
