package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type memberRepo struct {
	s *Store
}

// Members returns the member view of the store.
func (s *Store) Members() repository.MemberRepository {
	return &memberRepo{s: s}
}

func (r *memberRepo) List(ctx context.Context, filters model.MemberFilters, page model.Pagination) ([]*model.Member, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []*model.Member{}
	for _, m := range r.s.members {
		if filters.Search != "" && !containsFold(m.Name, filters.Search) && !containsFold(m.Email, filters.Search) {
			continue
		}
		if filters.Status != "" && m.Status != filters.Status {
			continue
		}
		matched = append(matched, r.s.withDerived(m))
	}

	sortNewestFirst(matched,
		func(m *model.Member) time.Time { return m.CreatedAt },
		func(m *model.Member) uuid.UUID { return m.ID })

	return paginate(matched, page), len(matched), nil
}

func (r *memberRepo) Get(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return nil, apperror.NotFound("member")
	}
	return r.s.withDerived(m), nil
}

func (r *memberRepo) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMemberRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.members[id]
	if !ok {
		return apperror.NotFound("member")
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Phone != nil {
		m.Phone = req.Phone
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	m.UpdatedAt = time.Now()
	return nil
}

// withDerived returns a copy of m with the subscription aggregates
// recomputed, the same way the postgres subqueries do.
func (s *Store) withDerived(m *model.Member) *model.Member {
	cp := *m
	cp.TotalSubscriptions = 0
	cp.MonthlyRevenue = 0
	cp.IsOverdue = false

	for _, sub := range s.subscriptions {
		if sub.MemberID != m.ID {
			continue
		}
		if sub.Status != model.SubscriptionStatusCancelled {
			cp.TotalSubscriptions++
		}
		if sub.Status == model.SubscriptionStatusActive {
			cp.MonthlyRevenue += sub.BillingCycle.MonthlyAmount(sub.Amount)
		}
		if sub.Status == model.SubscriptionStatusOverdue {
			cp.IsOverdue = true
		}
	}
	return &cp
}
