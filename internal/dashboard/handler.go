// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/upcoming", h.GetUpcoming)
		r.Get("/summary", h.GetSummary)
	})
}

func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			core.BadRequest(w, "days must be an integer")
			return
		}
		days = parsed
	}

	resp, err := h.service.Upcoming(r.Context(), householdID, userID, days)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.Summary(r.Context(), householdID, userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}
