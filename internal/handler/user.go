package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bfarias-dev/movienotes/internal/model"
	"github.com/bfarias-dev/movienotes/internal/service"
)

// UserHandler exposes the account service over HTTP.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// userResponse is the public projection of an account: name and email
// only. The password digest never leaves the service layer boundary.
type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{Name: u.Name, Email: u.Email}
}

// HandleList returns all accounts ordered by name.
//
// HTTP: GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet returns one account's name and email.
//
// HTTP: GET /users/{user_id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleCreate registers a new account.
//
// HTTP: POST /users
// BODY: {"name": "...", "email": "...", "password": "..."}
//
// Responds 201 with an empty body on success.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if _, err := h.users.Create(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// updateUserRequest uses pointers so an absent field is distinguishable
// from a supplied empty one — nil means "leave unchanged".
type updateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	OldPassword *string `json:"old_password"`
}

// HandleUpdate merges the supplied fields into an account. Changing the
// password requires old_password.
//
// HTTP: PUT /users/{user_id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Update(r.Context(), id, service.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
