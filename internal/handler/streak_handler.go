package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/narlock/alder/internal/model"
	"github.com/narlock/alder/internal/repository"
)

// StreakHandler serves the streak resource. Records are plain storage
// here; the day-difference rules are applied by the bot.
type StreakHandler struct {
	repo repository.StreakRepository
	now  func() time.Time
}

// NewStreakHandler creates a StreakHandler. nil now selects UTC wall
// time.
func NewStreakHandler(repo repository.StreakRepository, now func() time.Time) *StreakHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &StreakHandler{repo: repo, now: now}
}

// GetOrCreate handles POST /streak/{id}: returns the record, creating
// a fresh one dated today when none exists.
func (h *StreakHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	rec, err := h.repo.GetOrCreate(r.Context(), userID, h.now())
	if err != nil {
		slog.Error("get or create streak failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to get streak")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Get handles GET /streak/{id}.
func (h *StreakHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	rec, err := h.repo.GetOrCreate(r.Context(), userID, h.now())
	if err != nil {
		slog.Error("get streak failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to get streak")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Save handles PUT /streak/{id}: overwrites the record.
func (h *StreakHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var rec model.Streak
	if !decodeBody(w, r, &rec) {
		return
	}
	rec.UserID = userID

	if rec.CurrentStreak < 0 || rec.HighestStreak < rec.CurrentStreak {
		writeError(w, http.StatusBadRequest, "highest streak must be at least the current streak")
		return
	}
	if _, err := time.Parse(model.DateLayout, rec.LastActive); err != nil {
		writeError(w, http.StatusBadRequest, "previous_connection_date must be YYYY-MM-DD")
		return
	}

	if err := h.repo.Save(r.Context(), &rec); err != nil {
		slog.Error("save streak failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to save streak")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles POST /streak/search: top-N by a streak column.
func (h *StreakHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 10
	}

	recs, err := h.repo.TopBy(r.Context(), req.SortField, req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if recs == nil {
		recs = []model.Streak{}
	}
	writeJSON(w, http.StatusOK, recs)
}
