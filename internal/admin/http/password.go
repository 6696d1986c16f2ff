package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/openclave/realmadmin/pkg/httpx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

// PasswordHandler handles password-related endpoints.
type PasswordHandler struct {
	PasswordService *service.PasswordService
}

// HandleUpdateOwn handles PUT /api/update-password
//
//	@Summary		Update own password
//	@Description	Changes the caller's own password. The current password is verified
//	@Description	against the provider first; a wrong current password returns 401 and
//	@Description	leaves the account untouched.
//	@Tags			Password
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.UpdatePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	consolesdk.MessageResponse			"Password updated"
//	@Failure		400		{object}	consolesdk.ErrorResponse			"Validation failure"
//	@Failure		401		{object}	consolesdk.ErrorResponse			"Incorrect current password or invalid token"
//	@Failure		500		{object}	consolesdk.ErrorResponse			"Upstream provider failure"
//	@Router			/api/update-password [put].
func (h *PasswordHandler) HandleUpdateOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// Validation happens before anything touches the provider.
	if len(req.NewPassword) < 4 {
		httpx.WriteError(w, http.StatusBadRequest, "Password must be at least 4 characters")
		return
	}
	if req.CurrentPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Current Password is required")
		return
	}

	actor := actorFromContext(ctx)
	err := h.PasswordService.UpdateOwnPassword(ctx, actor, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongCurrentPassword) {
			httpx.WriteError(w, http.StatusUnauthorized, "Incorrect Current Password")
			return
		}
		log.Error("failed to update password", "user_id", actor.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.MessageResponse{
		Message: "Password updated successfully",
	})
}

// HandleTriggerReset handles PUT /api/users/{id}/reset-password
//
//	@Summary		Trigger password reset email
//	@Description	Fires an update-password action email at the target user. When the
//	@Description	realm has no mail transport the call still returns 200 with an
//	@Description	explanatory message.
//	@Tags			Password
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string						true	"User id"
//	@Success		200	{object}	consolesdk.MessageResponse	"Reset triggered (possibly soft success)"
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	consolesdk.ErrorResponse	"Caller lacks the admin role"
//	@Failure		500	{object}	consolesdk.ErrorResponse	"Upstream provider failure"
//	@Router			/api/users/{id}/reset-password [put].
func (h *PasswordHandler) HandleTriggerReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := r.PathValue("id")

	msg, err := h.PasswordService.TriggerResetEmail(ctx, actorFromContext(ctx), id)
	if err != nil {
		log.Error("failed to send reset email", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to send reset email")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, consolesdk.MessageResponse{Message: msg})
}
