package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narlock/alder/internal/model"
	"github.com/narlock/alder/internal/repository"
)

// UserHandler serves the user resource.
type UserHandler struct {
	repo repository.UserRepository
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(repo repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

type createUserRequest struct {
	ID string `json:"id"`
}

type userDeltasRequest struct {
	AddStime  int64 `json:"add_stime"`
	AddTokens int64 `json:"add_tokens"`
}

type searchRequest struct {
	SortField string `json:"sort_field"`
	Limit     int    `json:"limit"`
}

// Create handles POST /user: find-or-create for the given ID.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.repo.EnsureUser(r.Context(), req.ID); err != nil {
		slog.Error("ensure user failed", slog.String("user_id", req.ID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Get handles GET /user/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.repo.FindByID(r.Context(), userID)
	if err != nil {
		slog.Error("find user failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Patch handles PATCH /user/{id}: additive stime/tokens update.
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req userDeltasRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AddStime < 0 || req.AddTokens < 0 {
		writeError(w, http.StatusBadRequest, "deltas must be non-negative")
		return
	}

	if err := h.repo.AddTimeAndTokens(r.Context(), userID, req.AddStime, req.AddTokens); err != nil {
		slog.Error("add time and tokens failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles POST /user/search: top-N by a sortable column.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 10
	}

	users, err := h.repo.TopBy(r.Context(), req.SortField, req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
