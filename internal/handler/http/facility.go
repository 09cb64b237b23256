package http

import (
	"encoding/json"
	"net/http"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/brightline-ops/cleanops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type FacilityHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type facilityHandlerImpl struct {
	facilityService facility.FacilityService
}

func NewFacilityHandler(facilityService facility.FacilityService) FacilityHandler {
	return &facilityHandlerImpl{
		facilityService: facilityService,
	}
}

// Create implements FacilityHandler.
func (h *facilityHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req facility.CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facilityService.CreateFacility(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Facility created", result)
}

// Get implements FacilityHandler.
func (h *facilityHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.facilityService.GetFacility(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements FacilityHandler.
func (h *facilityHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req facility.UpdateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.facilityService.UpdateFacility(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements FacilityHandler.
func (h *facilityHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.facilityService.DeleteFacility(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// List implements FacilityHandler.
func (h *facilityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := facility.FacilityFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("account_id"); v != "" {
		filter.AccountID = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	result, err := h.facilityService.ListFacilities(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
