package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openclave/realmadmin/internal/admin/domain"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/pkg/consolesdk"
	"github.com/openclave/realmadmin/pkg/httpx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

// UsersHandler handles the user administration endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /api/users
//
//	@Summary		List users
//	@Description	Lists all users in the realm with their business roles. A per-user
//	@Description	role lookup failure degrades that user's roles to empty instead of
//	@Description	failing the whole list.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		consolesdk.User			"Users with roles"
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	consolesdk.ErrorResponse	"Upstream provider failure"
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	out := make([]consolesdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toWireUser(u.User, u.Roles))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/users
//
//	@Summary		Create user
//	@Description	Creates a user, optionally assigning an elevated role and sending an
//	@Description	invitation email. Follow-up failures after creation surface as a
//	@Description	warning field on the 201 response, never as an error.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.CreateUserRequest	true	"User to create"
//	@Success		201		{object}	consolesdk.CreateUserResponse	"Created user, possibly with warning"
//	@Failure		400		{object}	consolesdk.ErrorResponse		"Malformed request body"
//	@Failure		401		{object}	consolesdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse		"Caller lacks the admin role"
//	@Failure		409		{object}	consolesdk.ErrorResponse		"Username or email already taken"
//	@Failure		500		{object}	consolesdk.ErrorResponse		"Upstream provider failure"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Username == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Username is required")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor := actorFromContext(ctx)
	created, warning, err := h.UserService.CreateUser(ctx, actor, service.CreateUserParams{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		Role:           role,
		SendInvitation: req.SendInvitation,
	})
	if err != nil {
		if errors.Is(err, keycloak.ErrConflict) {
			httpx.WriteError(w, http.StatusConflict, "User with this username or email already exists.")
			return
		}
		log.Error("failed to create user", "username", req.Username, "err", err)
		writeUpstreamError(w, err, "Failed to create user")
		return
	}

	resp := consolesdk.CreateUserResponse{
		User:    toWireUser(created, nil),
		Warning: warning,
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleDelete handles DELETE /api/users/{id}
//
//	@Summary		Delete user
//	@Description	Deletes a user by id.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User id"
//	@Success		204	"User deleted"
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	consolesdk.ErrorResponse	"Caller lacks the admin or manager role"
//	@Failure		404	{object}	consolesdk.ErrorResponse	"User not found"
//	@Failure		500	{object}	consolesdk.ErrorResponse	"Upstream provider failure"
//	@Router			/api/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := r.PathValue("id")

	if err := h.UserService.DeleteUser(ctx, actorFromContext(ctx), id); err != nil {
		if errors.Is(err, keycloak.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("failed to delete user", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toWireUser converts a provider user representation to the console's wire
// shape. Credentials never cross this boundary.
func toWireUser(u keycloak.User, roles []string) consolesdk.User {
	return consolesdk.User{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Enabled:          u.Enabled,
		EmailVerified:    u.EmailVerified,
		Attributes:       u.Attributes,
		Roles:            roles,
		CreatedTimestamp: u.CreatedTimestamp,
	}
}

// actorFromContext builds the audit actor from the verified token claims.
func actorFromContext(ctx context.Context) service.Actor {
	return service.Actor{
		ID:       httpx.SubjectFromContext(ctx),
		Username: httpx.UsernameFromContext(ctx),
	}
}
