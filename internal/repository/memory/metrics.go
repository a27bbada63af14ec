package memory

import (
	"context"
	"time"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
)

type metricsRepo struct {
	s *Store
}

// Metrics returns the dashboard aggregate view of the store.
func (s *Store) Metrics() repository.MetricsRepository {
	return &metricsRepo{s: s}
}

func (r *metricsRepo) CountMembers(ctx context.Context, status model.MemberStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, m := range r.s.members {
		if status == "" || m.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *metricsRepo) CountSubscriptions(ctx context.Context, status model.SubscriptionStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, sub := range r.s.subscriptions {
		if status == "" || sub.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *metricsRepo) ActiveMonthlyRevenue(ctx context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	revenue := 0.0
	for _, sub := range r.s.subscriptions {
		if sub.Status == model.SubscriptionStatusActive {
			revenue += sub.BillingCycle.MonthlyAmount(sub.Amount)
		}
	}
	return revenue, nil
}

func (r *metricsRepo) CountMembersCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, m := range r.s.members {
		if !m.CreatedAt.Before(from) && m.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *metricsRepo) CountSubscriptionsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, sub := range r.s.subscriptions {
		if !sub.CreatedAt.Before(from) && sub.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *metricsRepo) MonthlyRevenueStartedBetween(ctx context.Context, from, to time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	revenue := 0.0
	for _, sub := range r.s.subscriptions {
		if sub.Status != model.SubscriptionStatusActive {
			continue
		}
		if !sub.StartDate.Before(from) && sub.StartDate.Before(to) {
			revenue += sub.BillingCycle.MonthlyAmount(sub.Amount)
		}
	}
	return revenue, nil
}
