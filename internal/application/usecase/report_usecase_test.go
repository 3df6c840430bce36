package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

type fakeSummaryCache struct {
	entries map[string]*dto.SummaryReport
	sets    int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{entries: map[string]*dto.SummaryReport{}}
}

func (c *fakeSummaryCache) Get(_ context.Context, key string) (*dto.SummaryReport, bool) {
	r, ok := c.entries[key]
	return r, ok
}

func (c *fakeSummaryCache) Set(_ context.Context, key string, report *dto.SummaryReport) {
	c.entries[key] = report
	c.sets++
}

func marchSales() *fakeSaleRepo {
	return newFakeSaleRepo(
		saleOn("s1", "rep-a", "Clinic North", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), 700),
		saleOn("s2", "rep-a", "Clinic North", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 500),
		saleOn("s3", "rep-b", "Clinic South", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 1000),
	)
}

func TestSummaryMemberOwnScope(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	users := newFakeUserRepo(memberUser("rep-a"), memberUser("rep-b"))
	uc := usecase.NewReportUseCase(marchSales(), users, nil, testLogger())

	report, err := uc.Summary(ctx, "rep-a", "", now)
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 2, report.Month)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(1200)), "total %s", report.Total)
	assert.True(t, report.PreviousTotal.IsZero())
	assert.Zero(t, report.MonthlyGrowth)
	assert.True(t, report.Target.Equal(entity.DefaultMonthlyTarget))

	// Ranking runs over the full sale set even for a self-scoped member.
	assert.Equal(t, 1, report.Rank)
	assert.Equal(t, 2, report.TotalUsers)

	require.Len(t, report.DailySeries, 31)
	assert.True(t, report.DailySeries[2].Equal(decimal.NewFromInt(700)))
	assert.True(t, report.DailySeries[3].Equal(decimal.NewFromInt(500)))

	require.NotNil(t, report.BestDay)
	assert.Equal(t, 3, report.BestDay.Date.Day())
	assert.True(t, report.BestDay.Total.Equal(decimal.NewFromInt(700)))

	assert.Equal(t, "Clinic North", report.TopCustomer)

	require.Len(t, report.Leaderboard, 2)
	assert.Equal(t, "rep-a", report.Leaderboard[0].UserID)
	assert.Equal(t, "rep-b", report.Leaderboard[1].UserID)
}

func TestSummaryAdminSeesTeamTotal(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	users := newFakeUserRepo(adminUser("admin-1"), memberUser("rep-a"), memberUser("rep-b"))
	uc := usecase.NewReportUseCase(marchSales(), users, nil, testLogger())

	report, err := uc.Summary(ctx, "admin-1", "", now)
	require.NoError(t, err)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(2200)), "total %s", report.Total)
}

func TestSummaryAdminSelectionUsesOwnersTarget(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	repB := memberUser("rep-b")
	repB.MonthlyTargets = map[int]decimal.Decimal{2: decimal.NewFromInt(5_000_000)}
	users := newFakeUserRepo(adminUser("admin-1"), memberUser("rep-a"), repB)
	uc := usecase.NewReportUseCase(marchSales(), users, nil, testLogger())

	report, err := uc.Summary(ctx, "admin-1", "rep-b", now)
	require.NoError(t, err)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, report.Target.Equal(decimal.NewFromInt(5_000_000)))
}

func TestSummaryRankingDegradesWhenFullSetUnavailable(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sales := marchSales()
	sales.listAllErr = errors.New("connection reset")
	users := newFakeUserRepo(memberUser("rep-a"))
	uc := usecase.NewReportUseCase(sales, users, nil, testLogger())

	report, err := uc.Summary(ctx, "rep-a", "", now)
	require.NoError(t, err)

	// Totals still come from the scoped query; ranking is simply absent.
	assert.True(t, report.Total.Equal(decimal.NewFromInt(1200)))
	assert.Zero(t, report.Rank)
	assert.Zero(t, report.TotalUsers)
	assert.Empty(t, report.Leaderboard)
}

func TestSummaryUsesCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := newFakeSummaryCache()
	sales := marchSales()
	users := newFakeUserRepo(memberUser("rep-a"))
	uc := usecase.NewReportUseCase(sales, users, cache, testLogger())

	first, err := uc.Summary(ctx, "rep-a", "", now)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Data changes after caching; the cached report is served as-is.
	require.NoError(t, sales.Create(ctx, saleOn("s9", "rep-a", "Clinic West", now, 300)))
	second, err := uc.Summary(ctx, "rep-a", "", now)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.True(t, second.Total.Equal(first.Total))
}

func TestSummaryUnknownCaller(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewReportUseCase(marchSales(), newFakeUserRepo(), nil, testLogger())

	_, err := uc.Summary(ctx, "ghost", "", time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMonthlySeriesAndForecast(t *testing.T) {
	ctx := context.Background()
	sales := newFakeSaleRepo(
		saleOn("s1", "rep-a", "Clinic A", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 100),
		saleOn("s2", "rep-a", "Clinic A", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 200),
		saleOn("s3", "rep-a", "Clinic A", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 999),
	)
	users := newFakeUserRepo(memberUser("rep-a"))
	uc := usecase.NewReportUseCase(sales, users, nil, testLogger())

	report, err := uc.Monthly(ctx, "rep-a", "", 2024)
	require.NoError(t, err)

	require.Len(t, report.Months, 12)
	require.Len(t, report.Forecast, 12)
	assert.True(t, report.Months[0].Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Months[1].Equal(decimal.NewFromInt(200)))
	assert.True(t, report.Forecast[1].Equal(decimal.NewFromInt(300)))
	// The cumulative tail is the year total; the 2023 sale stays out.
	assert.True(t, report.Forecast[11].Equal(decimal.NewFromInt(300)))
	assert.True(t, report.Total.Equal(decimal.NewFromInt(300)))
}

func TestFollowUpAdminOnly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	users := newFakeUserRepo(adminUser("admin-1"), memberUser("rep-a"))
	uc := usecase.NewReportUseCase(marchSales(), users, nil, testLogger())

	_, err := uc.FollowUp(ctx, "rep-a", false, now)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	report, err := uc.FollowUp(ctx, "admin-1", false, now)
	require.NoError(t, err)
	assert.Len(t, report.Customers, 2)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(2200)))
}

func TestFollowUpRecentOnly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	sales := newFakeSaleRepo(
		saleOn("s1", "rep-a", "Clinic Old", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 400),
		saleOn("s2", "rep-a", "Clinic New", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 600),
	)
	users := newFakeUserRepo(adminUser("admin-1"))
	uc := usecase.NewReportUseCase(sales, users, nil, testLogger())

	report, err := uc.FollowUp(ctx, "admin-1", true, now)
	require.NoError(t, err)
	require.Len(t, report.Customers, 1)
	assert.Equal(t, "Clinic New", report.Customers[0].CustomerName)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(600)))
}
