package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type ticketRepo struct {
	s *Store
}

// Tickets returns the support-ticket view of the store.
func (s *Store) Tickets() repository.TicketRepository {
	return &ticketRepo{s: s}
}

func (r *ticketRepo) List(ctx context.Context, filters model.TicketFilters) ([]*model.SupportTicket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []*model.SupportTicket{}
	for _, t := range r.s.tickets {
		if filters.Search != "" &&
			!containsFold(t.Member.Name, filters.Search) &&
			!containsFold(t.Member.Email, filters.Search) &&
			!containsFold(t.Subject, filters.Search) &&
			!strings.Contains(t.ID.String(), strings.ToLower(filters.Search)) {
			continue
		}
		if filters.Status != "" && string(t.Status) != filters.Status {
			continue
		}
		if filters.Priority != "" && string(t.Priority) != filters.Priority {
			continue
		}
		if filters.Category != "" && string(t.Category) != filters.Category {
			continue
		}
		cp := *t
		matched = append(matched, &cp)
	}

	sortNewestFirst(matched,
		func(t *model.SupportTicket) time.Time { return t.CreatedAt },
		func(t *model.SupportTicket) uuid.UUID { return t.ID })

	return matched, nil
}

func (r *ticketRepo) Get(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tickets[id]
	if !ok {
		return nil, apperror.NotFound("support ticket")
	}
	cp := *t
	return &cp, nil
}

func (r *ticketRepo) Create(ctx context.Context, ticket *model.SupportTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket.CreatedAt = time.Now()

	cp := *ticket
	r.s.tickets[ticket.ID] = &cp
	return nil
}

func (r *ticketRepo) Update(ctx context.Context, id uuid.UUID, req *model.UpdateTicketRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tickets[id]
	if !ok {
		return apperror.NotFound("support ticket")
	}

	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	now := time.Now()
	t.LastResponse = &now
	return nil
}
