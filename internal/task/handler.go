// AngelaMos | 2026
// handler.go

package task

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/{taskID}", h.GetTask)
		r.Put("/{taskID}", h.UpdateTask)
		r.Delete("/{taskID}", h.DeleteTask)
	})
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Create(r.Context(), householdID, userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToTaskResponse(t))
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	params := ListTasksParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 20),
		Priority:   r.URL.Query().Get("priority"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			params.CategoryID = &id
		}
	}

	tasks, total, err := h.service.List(r.Context(), householdID, userID, params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToTaskResponseList(tasks),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	taskID := chi.URLParam(r, "taskID")
	userID := middleware.GetUserID(r.Context())

	t, err := h.service.Get(r.Context(), householdID, userID, taskID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToTaskResponse(t))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	taskID := chi.URLParam(r, "taskID")
	userID := middleware.GetUserID(r.Context())

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Update(r.Context(), householdID, userID, taskID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToTaskResponse(t))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	taskID := chi.URLParam(r, "taskID")
	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), householdID, userID, taskID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
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
