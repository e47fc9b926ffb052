// AngelaMos | 2026
// handler.go

package category

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
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.CreateCategory)
		r.Get("/", h.ListCategories)
		r.Get("/{categoryID}", h.GetCategory)
		r.Put("/{categoryID}", h.UpdateCategory)
		r.Delete("/{categoryID}", h.DeleteCategory)
	})
}

// RegisterTypeRoutes mounts the global taxonomy listing, outside any
// household scope.
func (h *Handler) RegisterTypeRoutes(r chi.Router) {
	r.Get("/category-types", h.ListCategoryTypes)
}

func (h *Handler) ListCategoryTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCategoryTypeResponseList(types))
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(r.Context(), householdID, userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToCategoryResponse(c))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	categories, err := h.service.List(r.Context(), householdID, userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCategoryResponseList(categories))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryID"))
	if err != nil {
		core.BadRequest(w, "category id must be an integer")
		return
	}

	c, err := h.service.Get(r.Context(), householdID, userID, categoryID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCategoryResponse(c))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryID"))
	if err != nil {
		core.BadRequest(w, "category id must be an integer")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Update(r.Context(), householdID, userID, categoryID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCategoryResponse(c))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryID"))
	if err != nil {
		core.BadRequest(w, "category id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), householdID, userID, categoryID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
