package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/account"
	"github.com/brightline-ops/cleanops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AccountHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type accountHandlerImpl struct {
	accountService account.AccountService
}

func NewAccountHandler(accountService account.AccountService) AccountHandler {
	return &accountHandlerImpl{
		accountService: accountService,
	}
}

// Create implements AccountHandler.
func (h *accountHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req account.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created", result)
}

// Get implements AccountHandler.
func (h *accountHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.accountService.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AccountHandler.
func (h *accountHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req account.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.accountService.UpdateAccount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AccountHandler.
func (h *accountHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// List implements AccountHandler.
func (h *accountHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := account.AccountFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.accountService.ListAccounts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// queryInt parses an integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
