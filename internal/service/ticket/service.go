package ticket

import (
	"context"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type Service struct {
	tickets repository.TicketRepository
	members repository.MemberRepository
}

func NewService(tickets repository.TicketRepository, members repository.MemberRepository) *Service {
	return &Service{
		tickets: tickets,
		members: members,
	}
}

// ListTickets returns the full filtered set, newest first. The "all"
// sentinel (or an empty value) means no filter for status, priority and
// category; anything else must be a member of the respective enum.
func (s *Service) ListTickets(ctx context.Context, filters model.TicketFilters) ([]*model.SupportTicket, error) {
	filters.Status = normalizeSentinel(filters.Status)
	filters.Priority = normalizeSentinel(filters.Priority)
	filters.Category = normalizeSentinel(filters.Category)

	if filters.Status != "" && !model.TicketStatus(filters.Status).Valid() {
		return nil, apperror.Validationf("invalid ticket status filter %q", filters.Status)
	}
	if filters.Priority != "" && !model.TicketPriority(filters.Priority).Valid() {
		return nil, apperror.Validationf("invalid ticket priority filter %q", filters.Priority)
	}
	if filters.Category != "" && !model.TicketCategory(filters.Category).Valid() {
		return nil, apperror.Validationf("invalid ticket category filter %q", filters.Category)
	}

	return s.tickets.List(ctx, filters)
}

func normalizeSentinel(v string) string {
	if v == model.TicketFilterAll {
		return ""
	}
	return v
}

func (s *Service) GetTicket(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	return s.tickets.Get(ctx, id)
}

// CreateTicket is ticket intake. The customer's name and email are frozen
// onto the ticket at creation time.
func (s *Service) CreateTicket(ctx context.Context, req *model.CreateTicketRequest) (*model.SupportTicket, error) {
	if !req.Priority.Valid() {
		return nil, apperror.Validationf("invalid ticket priority %q", req.Priority)
	}
	if !req.Category.Valid() {
		return nil, apperror.Validationf("invalid ticket category %q", req.Category)
	}

	member, err := s.members.Get(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	ticket := &model.SupportTicket{
		ID:          uuid.New(),
		Subject:     req.Subject,
		Description: req.Description,
		Status:      model.TicketStatusOpen,
		Priority:    req.Priority,
		Category:    req.Category,
		Member: model.TicketMember{
			ID:    member.ID,
			Name:  member.Name,
			Email: member.Email,
		},
		AssignedTo: req.AssignedTo,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket is the agent response path. Status only moves forward
// through the workflow; closed is terminal.
func (s *Service) UpdateTicket(ctx context.Context, id uuid.UUID, req *model.UpdateTicketRequest) (*model.SupportTicket, error) {
	if req.Empty() {
		return nil, apperror.Validationf("update requires at least one field")
	}

	current, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.Validationf("invalid ticket status %q", *req.Status)
		}
		if !current.Status.CanTransitionTo(*req.Status) {
			return nil, apperror.Validationf("illegal status transition %s -> %s", current.Status, *req.Status)
		}
	}

	if err := s.tickets.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.tickets.Get(ctx, id)
}
