package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-guard/core"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handlers) registerUser(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	user, token, err := h.users.Register(r.Context(), core.CreateUserInput{
		Email:    body.Email,
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	envelope := core.SuccessEnvelope("User created successfully", toUserResponse(user))
	envelope.Token = token
	writeJSON(w, http.StatusOK, envelope)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	envelope := core.SuccessEnvelope("Login successful", nil)
	envelope.Token = token
	writeJSON(w, http.StatusOK, envelope)
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	filter := userFilterFromQuery(r)
	listed, err := h.users.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("Users retrieved successfully", toUserResponses(listed)))
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("User retrieved successfully", toUserResponse(user)))
}

func (h *Handlers) blockUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Block(r.Context(), chi.URLParam(r, "id"), false)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("User blocked successfully", toUserResponse(user)))
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	var body updateUserRequest
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), core.UpdateUserInput{
		Email: body.Email,
		Name:  body.Name,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("User updated successfully", toUserResponse(user)))
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("User deleted successfully", nil))
}

func userFilterFromQuery(r *http.Request) core.UserFilter {
	query := r.URL.Query()
	filter := core.UserFilter{
		Name: strings.TrimSpace(query.Get("name")),
	}
	if raw := strings.TrimSpace(query.Get("isActive")); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &active
		}
	}
	limit := intQuery(query.Get("limit"), 10)
	page := intQuery(query.Get("page"), 1)
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter
}

func intQuery(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
