package postgres

import (
	"context"
	"time"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
)

type metricsRepository struct {
	BaseRepository
}

func NewMetricsRepository(base BaseRepository) repository.MetricsRepository {
	return &metricsRepository{base}
}

func (r *metricsRepository) CountMembers(ctx context.Context, status model.MemberStatus) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE ($1 = '' OR status = $1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, translateErr(err, "members")
	}
	return count, nil
}

func (r *metricsRepository) CountSubscriptions(ctx context.Context, status model.SubscriptionStatus) (int, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE ($1 = '' OR status = $1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, translateErr(err, "subscriptions")
	}
	return count, nil
}

// ActiveMonthlyRevenue sums active subscription amounts normalized to a
// monthly cadence: yearly plans contribute a twelfth of their amount.
func (r *metricsRepository) ActiveMonthlyRevenue(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN billing_cycle = 'yearly' THEN amount / 12 ELSE amount END), 0)
		FROM subscriptions
		WHERE status = 'active'`

	var revenue float64
	if err := r.db.GetContext(ctx, &revenue, query); err != nil {
		return 0, translateErr(err, "subscriptions")
	}
	return revenue, nil
}

func (r *metricsRepository) CountMembersCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE created_at >= $1 AND created_at < $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, translateErr(err, "members")
	}
	return count, nil
}

func (r *metricsRepository) CountSubscriptionsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE created_at >= $1 AND created_at < $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, translateErr(err, "subscriptions")
	}
	return count, nil
}

func (r *metricsRepository) MonthlyRevenueStartedBetween(ctx context.Context, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN billing_cycle = 'yearly' THEN amount / 12 ELSE amount END), 0)
		FROM subscriptions
		WHERE status = 'active' AND start_date >= $1 AND start_date < $2`

	var revenue float64
	if err := r.db.GetContext(ctx, &revenue, query, from, to); err != nil {
		return 0, translateErr(err, "subscriptions")
	}
	return revenue, nil
}
