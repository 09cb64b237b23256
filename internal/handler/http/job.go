package http

import (
	"encoding/json"
	"net/http"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type JobHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &jobHandlerImpl{
		jobService: jobService,
	}
}

// Get implements JobHandler.
func (h *jobHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobService.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements JobHandler.
func (h *jobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := job.JobFilter{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 20),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if v := r.URL.Query().Get("contract_id"); v != "" {
		filter.ContractID = &v
	}
	if v := r.URL.Query().Get("facility_id"); v != "" {
		filter.FacilityID = &v
	}
	if v := r.URL.Query().Get("account_id"); v != "" {
		filter.AccountID = &v
	}
	if v := r.URL.Query().Get("assigned_user_id"); v != "" {
		filter.AssignedUserID = &v
	}
	if v := r.URL.Query().Get("assigned_team_id"); v != "" {
		filter.AssignedTeamID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.jobService.ListJobs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Start implements JobHandler.
func (h *jobHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	var req job.StartJobRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	userID, isManager, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.Actor = job.Actor{UserID: userID, IsManager: isManager}

	result, err := h.jobService.StartJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job started", result)
}

// Complete implements JobHandler.
func (h *jobHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	var req job.CompleteJobRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	userID, isManager, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.Actor = job.Actor{UserID: userID, IsManager: isManager}

	result, err := h.jobService.CompleteJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job completed", result)
}

// Cancel implements JobHandler.
func (h *jobHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	var req job.CancelJobRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	userID, isManager, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.Actor = job.Actor{UserID: userID, IsManager: isManager}

	result, err := h.jobService.CancelJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job canceled", result)
}

// Assign implements JobHandler.
func (h *jobHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req job.AssignJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	userID, isManager, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.Actor = job.Actor{UserID: userID, IsManager: isManager}

	result, err := h.jobService.AssignJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job assignment updated", result)
}

// decodeOptionalBody decodes a JSON body into dst, treating an empty body as
// an empty request.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
