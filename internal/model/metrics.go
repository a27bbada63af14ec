package model

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// MetricChange describes a counter's movement versus the trailing reference
// period. When no history exists the change is reported as zero/stable,
// never fabricated.
type MetricChange struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Trend      Trend   `json:"trend"`
}

// DashboardMetrics is a point-in-time snapshot of portal-wide counters.
// Each count is exact; the set as a whole is not transactionally
// consistent.
type DashboardMetrics struct {
	TotalMembers         int     `json:"totalMembers"`
	ActiveMembers        int     `json:"activeMembers"`
	TotalSubscriptions   int     `json:"totalSubscriptions"`
	ActiveSubscriptions  int     `json:"activeSubscriptions"`
	OverdueSubscriptions int     `json:"overdueSubscriptions"`
	MonthlyRevenue       float64 `json:"monthlyRevenue"`

	MemberGrowth       MetricChange `json:"memberGrowth"`
	SubscriptionGrowth MetricChange `json:"subscriptionGrowth"`
	RevenueGrowth      MetricChange `json:"revenueGrowth"`
}
