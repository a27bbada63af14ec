package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
)

// trendWindow is the trailing reference period growth figures are computed
// against.
const trendWindow = 30 * 24 * time.Hour

type Service struct {
	metrics repository.MetricsRepository
	now     func() time.Time
}

func NewService(metrics repository.MetricsRepository) *Service {
	return &Service{
		metrics: metrics,
		now:     time.Now,
	}
}

// GetDashboardMetrics produces the portal-wide snapshot. The six counters
// fan out concurrently; each is exact but the set as a whole is only
// read-committed consistent, which the dashboard tolerates.
func (s *Service) GetDashboardMetrics(ctx context.Context) (*model.DashboardMetrics, error) {
	var m model.DashboardMetrics

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		m.TotalMembers, err = s.metrics.CountMembers(ctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		m.ActiveMembers, err = s.metrics.CountMembers(ctx, model.MemberStatusActive)
		return err
	})
	g.Go(func() error {
		var err error
		m.TotalSubscriptions, err = s.metrics.CountSubscriptions(ctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		m.ActiveSubscriptions, err = s.metrics.CountSubscriptions(ctx, model.SubscriptionStatusActive)
		return err
	})
	g.Go(func() error {
		var err error
		m.OverdueSubscriptions, err = s.metrics.CountSubscriptions(ctx, model.SubscriptionStatusOverdue)
		return err
	})
	g.Go(func() error {
		var err error
		m.MonthlyRevenue, err = s.metrics.ActiveMonthlyRevenue(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.fillGrowth(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// fillGrowth compares the trailing window against the one before it. With
// no history in either window the trend is reported as zero/stable rather
// than a fabricated figure.
func (s *Service) fillGrowth(ctx context.Context, m *model.DashboardMetrics) error {
	now := s.now()
	windowStart := now.Add(-trendWindow)
	priorStart := now.Add(-2 * trendWindow)

	curMembers, err := s.metrics.CountMembersCreatedBetween(ctx, windowStart, now)
	if err != nil {
		return err
	}
	prevMembers, err := s.metrics.CountMembersCreatedBetween(ctx, priorStart, windowStart)
	if err != nil {
		return err
	}
	m.MemberGrowth = change(float64(curMembers), float64(prevMembers))

	curSubs, err := s.metrics.CountSubscriptionsCreatedBetween(ctx, windowStart, now)
	if err != nil {
		return err
	}
	prevSubs, err := s.metrics.CountSubscriptionsCreatedBetween(ctx, priorStart, windowStart)
	if err != nil {
		return err
	}
	m.SubscriptionGrowth = change(float64(curSubs), float64(prevSubs))

	curRevenue, err := s.metrics.MonthlyRevenueStartedBetween(ctx, windowStart, now)
	if err != nil {
		return err
	}
	prevRevenue, err := s.metrics.MonthlyRevenueStartedBetween(ctx, priorStart, windowStart)
	if err != nil {
		return err
	}
	m.RevenueGrowth = change(curRevenue, prevRevenue)

	return nil
}

func change(current, previous float64) model.MetricChange {
	c := model.MetricChange{
		Value: current - previous,
		Trend: model.TrendStable,
	}
	if previous > 0 {
		c.Percentage = (current - previous) / previous * 100
	}
	switch {
	case c.Value > 0:
		c.Trend = model.TrendUp
	case c.Value < 0:
		c.Trend = model.TrendDown
	}
	return c
}
