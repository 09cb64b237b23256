package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/team"
)

// Service is the read-plus-assignment surface over contracts. Contract CRUD
// belongs to the sales workflow; the scheduling side only reads terms and
// moves the team-xor-user assignment.
type Service interface {
	GetContract(ctx context.Context, id string) (contract.ContractResponse, error)
	ListContracts(ctx context.Context, filter contract.ContractFilter) (contract.ListContractsResponse, error)
	UpdateAssignment(ctx context.Context, req contract.UpdateAssignmentRequest) (contract.ContractResponse, error)
	ListTeams(ctx context.Context) ([]team.TeamResponse, error)
}

type ContractServiceImpl struct {
	contractRepo contract.ContractRepository
	teamRepo     team.TeamRepository
	now          func() time.Time
}

func NewContractService(contractRepo contract.ContractRepository, teamRepo team.TeamRepository) Service {
	return &ContractServiceImpl{
		contractRepo: contractRepo,
		teamRepo:     teamRepo,
		now:          time.Now,
	}
}

// GetContract implements Service.
func (s *ContractServiceImpl) GetContract(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return toContractResponse(c), nil
}

// ListContracts implements Service.
func (s *ContractServiceImpl) ListContracts(ctx context.Context, filter contract.ContractFilter) (contract.ListContractsResponse, error) {
	if err := filter.Validate(); err != nil {
		return contract.ListContractsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	contracts, total, err := s.contractRepo.List(ctx, filter)
	if err != nil {
		return contract.ListContractsResponse{}, fmt.Errorf("failed to list contracts: %w", err)
	}

	responses := make([]contract.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, toContractResponse(c))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return contract.ListContractsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Contracts:  responses,
	}, nil
}

// UpdateAssignment implements Service. The team-xor-user invariant is checked
// here so a bad assignment never reaches the store, and a referenced team
// must exist and be active.
func (s *ContractServiceImpl) UpdateAssignment(ctx context.Context, req contract.UpdateAssignmentRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}

	c, err := s.contractRepo.GetByID(ctx, req.ID)
	if err != nil {
		return contract.ContractResponse{}, err
	}

	if err := job.ValidateAssignment(req.AssignedTeamID, req.AssignedUserID); err != nil {
		return contract.ContractResponse{}, err
	}

	if req.AssignedTeamID != nil && *req.AssignedTeamID != "" {
		if _, err := s.teamRepo.GetByID(ctx, *req.AssignedTeamID); err != nil {
			return contract.ContractResponse{}, err
		}
	}

	if err := s.contractRepo.UpdateAssignment(ctx, req.ID, req.AssignedTeamID, req.AssignedUserID); err != nil {
		return contract.ContractResponse{}, fmt.Errorf("failed to update assignment: %w", err)
	}

	c.AssignedTeamID = req.AssignedTeamID
	c.AssignedUserID = req.AssignedUserID
	c.UpdatedAt = s.now()

	return toContractResponse(c), nil
}

// ListTeams implements Service.
func (s *ContractServiceImpl) ListTeams(ctx context.Context) ([]team.TeamResponse, error) {
	teams, err := s.teamRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	responses := make([]team.TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, team.TeamResponse{
			ID:       t.ID,
			Name:     t.Name,
			LeadName: t.LeadName,
			Phone:    t.Phone,
			Active:   t.Active,
		})
	}
	return responses, nil
}

const timeFormat = "2006-01-02 15:04:05"

func toContractResponse(c contract.Contract) contract.ContractResponse {
	resp := contract.ContractResponse{
		ID:               c.ID,
		AccountID:        c.AccountID,
		AccountName:      c.AccountName,
		FacilityID:       c.FacilityID,
		FacilityName:     c.FacilityName,
		Status:           string(c.Status),
		ServiceFrequency: c.ServiceFrequency,
		ScheduleDays:     c.ScheduleDays,
		WindowStartMin:   c.WindowStartMin,
		WindowEndMin:     c.WindowEndMin,
		Timezone:         c.Timezone,
		AssignedTeamID:   c.AssignedTeamID,
		AssignedUserID:   c.AssignedUserID,
		BillingRate:      c.BillingRate,
		EstimatedHours:   c.EstimatedHours,
		StartDate:        c.StartDate.Format("2006-01-02"),
		CreatedAt:        c.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:        c.UpdatedAt.UTC().Format(timeFormat),
	}
	if c.EndDate != nil {
		endDate := c.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}
