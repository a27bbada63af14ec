package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository/memory"
)

func newTestService(store *memory.Store, now time.Time) *Service {
	svc := NewService(store.Metrics())
	svc.now = func() time.Time { return now }
	return svc
}

func seedMemberAt(store *memory.Store, status model.MemberStatus, createdAt time.Time) *model.Member {
	m := &model.Member{
		ID: uuid.New(), Name: "m", Email: "m@example.com",
		Status: status, CreatedAt: createdAt,
	}
	store.PutMember(m)
	return m
}

func seedSubscriptionAt(store *memory.Store, status model.SubscriptionStatus, cycle model.BillingCycle, amount float64, at time.Time) {
	store.PutSubscription(&model.Subscription{
		ID: uuid.New(), MemberID: uuid.New(), VehicleID: uuid.New(),
		Amount: amount, Status: status, BillingCycle: cycle,
		StartDate: at, CreatedAt: at,
	})
}

func TestDashboardCounters(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()

	seedMemberAt(store, model.MemberStatusActive, now)
	seedMemberAt(store, model.MemberStatusActive, now)
	seedMemberAt(store, model.MemberStatusSuspended, now)
	seedMemberAt(store, model.MemberStatusCancelled, now)

	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleMonthly, 30, now)
	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleMonthly, 20, now)
	seedSubscriptionAt(store, model.SubscriptionStatusOverdue, model.BillingCycleMonthly, 15, now)
	seedSubscriptionAt(store, model.SubscriptionStatusPaused, model.BillingCycleMonthly, 10, now)
	seedSubscriptionAt(store, model.SubscriptionStatusCancelled, model.BillingCycleMonthly, 99, now)

	svc := newTestService(store, now)
	m, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, m.TotalMembers)
	assert.Equal(t, 2, m.ActiveMembers)
	assert.Equal(t, 5, m.TotalSubscriptions)
	assert.Equal(t, 2, m.ActiveSubscriptions)
	assert.Equal(t, 1, m.OverdueSubscriptions)
}

func TestDashboardRevenueNormalizesYearly(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()

	// 30/month plus 240/year; only active subscriptions count.
	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleMonthly, 30, now)
	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleYearly, 240, now)
	seedSubscriptionAt(store, model.SubscriptionStatusPaused, model.BillingCycleMonthly, 50, now)
	seedSubscriptionAt(store, model.SubscriptionStatusCancelled, model.BillingCycleYearly, 1200, now)

	svc := newTestService(store, now)
	m, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 50.0, m.MonthlyRevenue, 1e-9)
}

func TestDashboardGrowthFromWindows(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	inWindow := now.Add(-10 * 24 * time.Hour)
	inPriorWindow := now.Add(-40 * 24 * time.Hour)
	ancient := now.Add(-100 * 24 * time.Hour)

	// 3 members this window, 2 the window before, 1 long ago.
	seedMemberAt(store, model.MemberStatusActive, inWindow)
	seedMemberAt(store, model.MemberStatusActive, inWindow)
	seedMemberAt(store, model.MemberStatusActive, inWindow)
	seedMemberAt(store, model.MemberStatusActive, inPriorWindow)
	seedMemberAt(store, model.MemberStatusActive, inPriorWindow)
	seedMemberAt(store, model.MemberStatusActive, ancient)

	svc := newTestService(store, now)
	m, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.MemberGrowth.Value)
	assert.InDelta(t, 50.0, m.MemberGrowth.Percentage, 1e-9)
	assert.Equal(t, model.TrendUp, m.MemberGrowth.Trend)
}

func TestDashboardGrowthDownward(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()

	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleMonthly, 10, now.Add(-10*24*time.Hour))
	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleMonthly, 10, now.Add(-40*24*time.Hour))
	seedSubscriptionAt(store, model.SubscriptionStatusActive, model.BillingCycleMonthly, 10, now.Add(-45*24*time.Hour))

	svc := newTestService(store, now)
	m, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, -1.0, m.SubscriptionGrowth.Value)
	assert.InDelta(t, -50.0, m.SubscriptionGrowth.Percentage, 1e-9)
	assert.Equal(t, model.TrendDown, m.SubscriptionGrowth.Trend)
}

func TestDashboardGrowthWithoutHistoryIsNeutral(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, time.Now())

	m, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	for name, g := range map[string]model.MetricChange{
		"members":       m.MemberGrowth,
		"subscriptions": m.SubscriptionGrowth,
		"revenue":       m.RevenueGrowth,
	} {
		assert.Zero(t, g.Value, "%s growth value", name)
		assert.Zero(t, g.Percentage, "%s growth percentage", name)
		assert.Equal(t, model.TrendStable, g.Trend, "%s growth trend", name)
	}
}

func TestDashboardEmptyStoreIsAllZeroes(t *testing.T) {
	svc := newTestService(memory.NewStore(), time.Now())

	m, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, m.TotalMembers)
	assert.Zero(t, m.TotalSubscriptions)
	assert.Zero(t, m.MonthlyRevenue)
}
