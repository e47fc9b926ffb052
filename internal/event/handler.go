// AngelaMos | 2026
// handler.go

package event

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Get("/overdue", h.ListOverdue)
		r.Get("/history", h.ListHistory)
		r.Get("/{eventID}", h.GetEvent)
		r.Post("/{eventID}/complete", h.CompleteEvent)
		r.Post("/{eventID}/postpone", h.PostponeEvent)
		r.Post("/{eventID}/cancel", h.CancelEvent)
		r.Delete("/{eventID}", h.DeleteEvent)
	})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	params := ListEventsParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 20),
		Status:     r.URL.Query().Get("status"),
		AssignedTo: r.URL.Query().Get("assigned_to"),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			core.BadRequest(w, "from must be YYYY-MM-DD")
			return
		}
		params.From = &parsed
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			core.BadRequest(w, "to must be YYYY-MM-DD")
			return
		}
		params.To = &parsed
	}

	events, total, err := h.service.List(r.Context(), householdID, userID, params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToEventResponseList(events, h.service.Today()),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	events, err := h.service.Overdue(r.Context(), householdID, userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToEventResponseList(events, h.service.Today()))
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	rows, total, err := h.service.History(
		r.Context(), householdID, userID, page, pageSize,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, ToHistoryResponseList(rows), page, pageSize, total)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	eventID := chi.URLParam(r, "eventID")
	userID := middleware.GetUserID(r.Context())

	e, err := h.service.Get(r.Context(), householdID, userID, eventID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToEventResponse(e, h.service.Today()))
}

func (h *Handler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	eventID := chi.URLParam(r, "eventID")
	userID := middleware.GetUserID(r.Context())

	var req CompleteEventRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	completed, next, err := h.service.Complete(
		r.Context(), householdID, userID, eventID, req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	today := h.service.Today()
	resp := CompleteEventResponse{
		CompletedEvent: ToEventResponse(completed, today),
	}
	if next != nil {
		nextResp := ToEventResponse(next, today)
		resp.NextEvent = &nextResp
	}

	core.OK(w, resp)
}

func (h *Handler) PostponeEvent(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	eventID := chi.URLParam(r, "eventID")
	userID := middleware.GetUserID(r.Context())

	var req PostponeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Postpone(r.Context(), householdID, userID, eventID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToEventResponse(e, h.service.Today()))
}

func (h *Handler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	eventID := chi.URLParam(r, "eventID")
	userID := middleware.GetUserID(r.Context())

	var req CancelEventRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Cancel(r.Context(), householdID, userID, eventID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToEventResponse(e, h.service.Today()))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	eventID := chi.URLParam(r, "eventID")
	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), householdID, userID, eventID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

// decodeOptionalBody tolerates an empty body for actions where every field
// is optional.
func decodeOptionalBody(r *http.Request, dest any) error {
	err := json.NewDecoder(r.Body).Decode(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
