package http

import (
	"encoding/json"
	"net/http"

	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/openclave/realmadmin/pkg/httpx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

// MFAHandler handles the self-service MFA endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleStatus handles GET /api/users/me/mfa-status
//
//	@Summary		Get own MFA status
//	@Description	Reports whether the caller has a configured second factor. A setup
//	@Description	that was initiated but never completed at login reports false.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	consolesdk.MFAStatusResponse	"MFA status"
//	@Failure		401	{object}	consolesdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	consolesdk.ErrorResponse		"Upstream provider failure"
//	@Router			/api/users/me/mfa-status [get].
func (h *MFAHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sub := httpx.SubjectFromContext(ctx)

	enabled, err := h.MFAService.Status(ctx, sub)
	if err != nil {
		log.Error("failed to check MFA status", "user_id", sub, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to check MFA status")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.MFAStatusResponse{Enabled: enabled})
}

// HandleToggle handles PUT /api/users/me/mfa-status
//
//	@Summary		Toggle own MFA
//	@Description	Enabling primes the next login with a TOTP setup step and creates no
//	@Description	secret; disabling deletes every second-factor credential immediately.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.SetMFAStatusRequest	true	"Desired MFA state"
//	@Success		200		{object}	consolesdk.MessageResponse		"Outcome message"
//	@Failure		400		{object}	consolesdk.ErrorResponse		"Malformed request body"
//	@Failure		401		{object}	consolesdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500		{object}	consolesdk.ErrorResponse		"Upstream provider failure"
//	@Router			/api/users/me/mfa-status [put].
func (h *MFAHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.SetMFAStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	actor := actorFromContext(ctx)
	msg, err := h.MFAService.SetEnabled(ctx, actor, req.Enable)
	if err != nil {
		log.Error("failed to toggle MFA", "user_id", actor.ID, "enable", req.Enable, "err", err)
		writeUpstreamError(w, err, "Failed to update MFA status")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.MessageResponse{Message: msg})
}
