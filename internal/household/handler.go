// AngelaMos | 2026
// handler.go

package household

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/middleware"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
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

// RegisterRoutes mounts the household surface. Feature routers (tasks,
// events, and so on) are mounted under /households/{householdID} by the
// caller, next to these.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/households", h.CreateHousehold)
	r.Get("/households", h.ListHouseholds)
	r.Post("/invites/accept", h.AcceptInvite)

	r.Route("/households/{householdID}", func(r chi.Router) {
		r.Get("/", h.GetHousehold)
		r.Put("/", h.UpdateHousehold)
		r.Delete("/", h.DeleteHousehold)
		r.Get("/usage", h.GetUsage)
		r.Get("/members", h.ListMembers)
		r.Post("/members/invite", h.InviteMember)
		r.Delete("/members/{memberID}", h.RemoveMember)
	})
}

func (h *Handler) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.Provision(r.Context(), userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToHouseholdResponse(created))
}

func (h *Handler) ListHouseholds(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	households, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToHouseholdResponseList(households))
}

func (h *Handler) GetHousehold(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	found, err := h.service.Get(r.Context(), householdID, userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToHouseholdResponse(found))
}

func (h *Handler) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	var req UpdateHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.Update(r.Context(), householdID, userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToHouseholdResponse(updated))
}

func (h *Handler) DeleteHousehold(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), householdID, userID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	usage, err := h.service.Usage(r.Context(), householdID, userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, plan.ToUsageResponseList(usage))
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	members, err := h.service.ListMembers(r.Context(), householdID, userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToMemberResponseList(members))
}

func (h *Handler) InviteMember(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	userID := middleware.GetUserID(r.Context())

	var req InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, token, err := h.service.Invite(r.Context(), householdID, userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, InviteResponse{
		Member: ToMemberResponse(m),
		Token:  token,
	})
}

func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.AcceptInvite(r.Context(), userID, req.Token)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToMemberResponse(m))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "householdID")
	memberID := chi.URLParam(r, "memberID")
	userID := middleware.GetUserID(r.Context())

	err := h.service.RemoveMember(r.Context(), householdID, userID, memberID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
