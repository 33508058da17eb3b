package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/narlock/alder/internal/model"
	"github.com/narlock/alder/internal/repository"
)

// TimeHandler serves the dailytime and monthtime resources. Buckets
// are keyed by the current UTC day and month; a PATCH after the day or
// month rolls over creates the next bucket on its own.
type TimeHandler struct {
	repo repository.TimeRepository
	now  func() time.Time
}

// NewTimeHandler creates a TimeHandler. now is the clock used to pick
// the current bucket; nil selects UTC wall time.
func NewTimeHandler(repo repository.TimeRepository, now func() time.Time) *TimeHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &TimeHandler{repo: repo, now: now}
}

type timeDeltaRequest struct {
	AddStime int64 `json:"add_stime"`
}

// PatchDaily handles PATCH /dailytime/{id}.
func (h *TimeHandler) PatchDaily(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req timeDeltaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AddStime < 0 {
		writeError(w, http.StatusBadRequest, "add_stime must be non-negative")
		return
	}

	if err := h.repo.AddDailyTime(r.Context(), userID, h.now(), req.AddStime); err != nil {
		slog.Error("add daily time failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update daily time")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDaily handles GET /dailytime/{id}: today's bucket for the user.
func (h *TimeHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	d, err := h.repo.GetDailyTime(r.Context(), userID, h.now())
	if err != nil {
		slog.Error("get daily time failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to get daily time")
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "no daily time recorded today")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// PatchMonthly handles PATCH /monthtime/{id}.
func (h *TimeHandler) PatchMonthly(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req timeDeltaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AddStime < 0 {
		writeError(w, http.StatusBadRequest, "add_stime must be non-negative")
		return
	}

	if err := h.repo.AddMonthlyTime(r.Context(), userID, h.now(), req.AddStime); err != nil {
		slog.Error("add monthly time failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update monthly time")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMonthTotal handles GET /monthtime/{id}/total: month-to-date
// seconds, zero when the user has no bucket this month.
func (h *TimeHandler) GetMonthTotal(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	total, err := h.repo.MonthToDateSeconds(r.Context(), userID, h.now())
	if err != nil {
		slog.Error("get month total failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to get month total")
		return
	}
	writeJSON(w, http.StatusOK, model.MonthTime{
		UserID: userID,
		Month:  int(h.now().Month()),
		Year:   h.now().Year(),
		Stime:  total,
	})
}
