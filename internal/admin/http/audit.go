package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/openclave/realmadmin/pkg/httpx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

const defaultAuditLimit = 50

// AuditHandler serves the local audit trail of privileged operations.
type AuditHandler struct {
	AuditService *service.AuditService
}

// HandleList handles GET /api/audit
//
//	@Summary		List audit entries
//	@Description	Returns recent privileged console operations, newest first.
//	@Tags			Audit
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int							false	"Maximum entries to return (default 50)"
//	@Success		200		{array}		consolesdk.AuditEntry		"Audit entries"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Caller lacks the admin role"
//	@Failure		500		{object}	consolesdk.ErrorResponse	"Audit store failure"
//	@Router			/api/audit [get].
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.AuditService.ListRecent(ctx, limit)
	if err != nil {
		log.Error("failed to list audit entries", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch audit entries")
		return
	}

	out := make([]consolesdk.AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, consolesdk.AuditEntry{
			ID:            e.ID.String(),
			ActorID:       e.ActorID,
			ActorUsername: e.ActorUsername,
			Action:        string(e.Action),
			TargetID:      e.TargetID,
			Outcome:       string(e.Outcome),
			Detail:        e.Detail,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
