package http

import (
	"encoding/json"
	"net/http"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/handler/http/response"
	contractsvc "github.com/brightline-ops/cleanops-backend-go/internal/service/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/service/scheduling"
	"github.com/go-chi/chi/v5"
)

type ContractHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateAssignment(w http.ResponseWriter, r *http.Request)
	GenerateJobs(w http.ResponseWriter, r *http.Request)
	ListTeams(w http.ResponseWriter, r *http.Request)
}

type contractHandlerImpl struct {
	contractService   contractsvc.Service
	schedulingService scheduling.Service
}

func NewContractHandler(contractService contractsvc.Service, schedulingService scheduling.Service) ContractHandler {
	return &contractHandlerImpl{
		contractService:   contractService,
		schedulingService: schedulingService,
	}
}

// Get implements ContractHandler.
func (h *contractHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.contractService.GetContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ContractHandler.
func (h *contractHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := contract.ContractFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("account_id"); v != "" {
		filter.AccountID = &v
	}
	if v := r.URL.Query().Get("facility_id"); v != "" {
		filter.FacilityID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.contractService.ListContracts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateAssignment implements ContractHandler.
func (h *contractHandlerImpl) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.contractService.UpdateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateJobs implements ContractHandler.
func (h *contractHandlerImpl) GenerateJobs(w http.ResponseWriter, r *http.Request) {
	var req job.GenerateJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ContractID = chi.URLParam(r, "id")

	result, err := h.schedulingService.GenerateJobs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Jobs generated", result)
}

// ListTeams implements ContractHandler.
func (h *contractHandlerImpl) ListTeams(w http.ResponseWriter, r *http.Request) {
	result, err := h.contractService.ListTeams(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
