package http

import (
	"errors"
	"net/http"

	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/pkg/httpx"
)

// writeUpstreamError maps a provider failure to the console's error body.
// The fallback message is used when the provider gave nothing useful;
// otherwise the provider's own text is appended for operator diagnosis.
func writeUpstreamError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *keycloak.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		httpx.WriteError(w, http.StatusInternalServerError, fallback+": "+apiErr.Message)
		return
	}
	httpx.WriteError(w, http.StatusInternalServerError, fallback)
}
