package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagardy/mandoubi-api/internal/domain/analytics"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

func sale(userID, customer string, date time.Time, total int64) entity.Sale {
	return entity.Sale{
		UserID:       userID,
		CustomerName: customer,
		Date:         date,
		TotalPrice:   decimal.NewFromInt(total),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestPeriodTotal(t *testing.T) {
	sales := []entity.Sale{
		sale("a", "c1", day(2026, time.March, 3), 500),
		sale("a", "c1", day(2026, time.March, 20), 700),
		sale("a", "c1", day(2026, time.February, 28), 999), // other month
		sale("a", "c1", time.Time{}, 123),                  // zero date excluded
	}

	total := analytics.PeriodTotal(sales, 2026, time.March)
	assert.True(t, decimal.NewFromInt(1200).Equal(total), "got %s", total)
}

func TestTopProduct_SumsQuantitiesAcrossSales(t *testing.T) {
	s1 := sale("a", "c1", day(2026, time.March, 1), 0)
	s1.Items = []entity.SaleItem{
		{Name: "Amoxil", Quantity: 3},
		{Name: "Panadol", Quantity: 2},
	}
	s2 := sale("a", "c2", day(2026, time.March, 2), 0)
	s2.Items = []entity.SaleItem{
		{Name: "Panadol", Quantity: 4},
	}

	name, qty, ok := analytics.TopProduct([]entity.Sale{s1, s2}, 2026, time.March)
	require.True(t, ok)
	assert.Equal(t, "Panadol", name)
	assert.Equal(t, int64(6), qty)
}

func TestTopProduct_TieBreaksLexicographically(t *testing.T) {
	s := sale("a", "c1", day(2026, time.March, 1), 0)
	s.Items = []entity.SaleItem{
		{Name: "Zinc", Quantity: 5},
		{Name: "Amoxil", Quantity: 5},
	}

	name, _, ok := analytics.TopProduct([]entity.Sale{s}, 2026, time.March)
	require.True(t, ok)
	assert.Equal(t, "Amoxil", name)
}

func TestTopCustomer_CountsOncePerSale(t *testing.T) {
	s1 := sale("a", "Pharma One", day(2026, time.March, 1), 0)
	s1.Items = []entity.SaleItem{{Name: "x", Quantity: 9}, {Name: "y", Quantity: 9}}
	s2 := sale("a", "Pharma Two", day(2026, time.March, 2), 0)
	s3 := sale("a", "Pharma Two", day(2026, time.March, 3), 0)

	name, count, ok := analytics.TopCustomer([]entity.Sale{s1, s2, s3}, 2026, time.March)
	require.True(t, ok)
	assert.Equal(t, "Pharma Two", name)
	assert.Equal(t, int64(2), count)
}

func TestTopProduct_EmptyPeriod(t *testing.T) {
	_, _, ok := analytics.TopProduct(nil, 2026, time.March)
	assert.False(t, ok)
}

func TestMonthlyGrowth(t *testing.T) {
	assert.InDelta(t, 50.0, analytics.MonthlyGrowth(
		decimal.NewFromInt(1500), decimal.NewFromInt(1000)), 0.0001)
	assert.InDelta(t, -25.0, analytics.MonthlyGrowth(
		decimal.NewFromInt(750), decimal.NewFromInt(1000)), 0.0001)
}

func TestMonthlyGrowth_ZeroPreviousIsZeroNotInf(t *testing.T) {
	growth := analytics.MonthlyGrowth(decimal.NewFromInt(5000), decimal.Zero)
	assert.Equal(t, 0.0, growth)
}

func TestRank_DescendingOneBased(t *testing.T) {
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 1), 500),
		sale("u2", "c", day(2026, time.March, 2), 1500),
		sale("u3", "c", day(2026, time.March, 3), 1000),
	}

	rank1, total1 := analytics.Rank(sales, "u1", 2026, time.March)
	rank2, _ := analytics.Rank(sales, "u2", 2026, time.March)
	rank3, _ := analytics.Rank(sales, "u3", 2026, time.March)

	assert.Equal(t, 3, rank1)
	assert.Equal(t, 1, rank2)
	assert.Equal(t, 2, rank3)
	assert.Equal(t, 3, total1)
}

func TestRank_ExcludesUsersWithoutPeriodSales(t *testing.T) {
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 1), 500),
		sale("u2", "c", day(2026, time.February, 1), 9000), // previous month only
	}

	rank, total := analytics.Rank(sales, "u1", 2026, time.March)
	assert.Equal(t, 1, rank)
	assert.Equal(t, 1, total)

	rank, _ = analytics.Rank(sales, "u2", 2026, time.March)
	assert.Equal(t, 0, rank, "user with no period sales has no rank")
}

func TestRank_TiesByUserIDAscending(t *testing.T) {
	sales := []entity.Sale{
		sale("u2", "c", day(2026, time.March, 1), 1000),
		sale("u1", "c", day(2026, time.March, 2), 1000),
	}

	rank1, _ := analytics.Rank(sales, "u1", 2026, time.March)
	rank2, _ := analytics.Rank(sales, "u2", 2026, time.March)
	assert.Equal(t, 1, rank1)
	assert.Equal(t, 2, rank2)
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	now := day(2026, time.March, 10)
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 10), 100), // today
		sale("u1", "c", day(2026, time.March, 9), 100),  // yesterday
		sale("u1", "c", day(2026, time.March, 8), 100),  // day before
		// nothing on March 7
		sale("u1", "c", day(2026, time.March, 6), 100),
	}

	assert.Equal(t, 3, analytics.Streak(sales, "u1", now))
}

func TestStreak_ZeroWithoutSaleToday(t *testing.T) {
	now := day(2026, time.March, 10)
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 9), 100),
		sale("u1", "c", day(2026, time.March, 8), 100),
		sale("u1", "c", day(2026, time.March, 7), 100),
	}

	assert.Equal(t, 0, analytics.Streak(sales, "u1", now))
}

func TestStreak_IgnoresOtherUsers(t *testing.T) {
	now := day(2026, time.March, 10)
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 10), 100),
		sale("u2", "c", day(2026, time.March, 9), 100),
	}

	assert.Equal(t, 1, analytics.Streak(sales, "u1", now))
}

func TestBestDay_HighestTotalEarliestOnTie(t *testing.T) {
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 5), 300),
		sale("u1", "c", day(2026, time.March, 5), 400),
		sale("u1", "c", day(2026, time.March, 12), 700), // ties day 5's 700
		sale("u1", "c", day(2026, time.March, 20), 100),
	}

	best, total, ok := analytics.BestDay(sales, 2026, time.March)
	require.True(t, ok)
	assert.Equal(t, 5, best.Day())
	assert.True(t, decimal.NewFromInt(700).Equal(total))
}

func TestBestDay_EmptyPeriod(t *testing.T) {
	_, _, ok := analytics.BestDay(nil, 2026, time.March)
	assert.False(t, ok)
}

func TestDailySeries_LengthMatchesMonth(t *testing.T) {
	assert.Len(t, analytics.DailySeries(nil, 2026, time.January), 31)
	assert.Len(t, analytics.DailySeries(nil, 2026, time.February), 28) // non-leap
	assert.Len(t, analytics.DailySeries(nil, 2024, time.February), 29) // leap
	assert.Len(t, analytics.DailySeries(nil, 2026, time.April), 30)
}

func TestDailySeries_BucketsByDay(t *testing.T) {
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.March, 1), 100),
		sale("u1", "c", day(2026, time.March, 1), 200),
		sale("u1", "c", day(2026, time.March, 31), 50),
	}

	series := analytics.DailySeries(sales, 2026, time.March)
	require.Len(t, series, 31)
	assert.True(t, decimal.NewFromInt(300).Equal(series[0]))
	assert.True(t, decimal.NewFromInt(50).Equal(series[30]))
	assert.True(t, series[15].IsZero())
}

func TestMonthlySeries_AndForecast(t *testing.T) {
	sales := []entity.Sale{
		sale("u1", "c", day(2026, time.January, 10), 100),
		sale("u1", "c", day(2026, time.February, 10), 200),
		sale("u1", "c", day(2025, time.February, 10), 999), // other year
	}

	series := analytics.MonthlySeries(sales, 2026)
	assert.True(t, decimal.NewFromInt(100).Equal(series[0]))
	assert.True(t, decimal.NewFromInt(200).Equal(series[1]))
	assert.True(t, series[11].IsZero())

	forecast := analytics.CumulativeForecast(series)
	assert.True(t, decimal.NewFromInt(100).Equal(forecast[0]))
	assert.True(t, decimal.NewFromInt(300).Equal(forecast[1]))
	assert.True(t, decimal.NewFromInt(300).Equal(forecast[11]))
}

func TestPreviousPeriod_RollsAcrossJanuary(t *testing.T) {
	y, m := analytics.PreviousPeriod(2026, time.January)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	y, m = analytics.PreviousPeriod(2026, time.July)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.June, m)
}

func TestCustomerTotals(t *testing.T) {
	sales := []entity.Sale{
		sale("u1", "Pharma One", day(2026, time.March, 1), 500),
		sale("u2", "Pharma One", day(2026, time.March, 9), 200),
		sale("u1", "Pharma Two", day(2026, time.March, 5), 400),
	}

	out := analytics.CustomerTotals(sales)
	require.Len(t, out, 2)
	assert.Equal(t, "Pharma One", out[0].CustomerName)
	assert.True(t, decimal.NewFromInt(700).Equal(out[0].Total))
	assert.Equal(t, 2, out[0].SalesCount)
	assert.Equal(t, 9, out[0].LastSale.Day())
	assert.Equal(t, "Pharma Two", out[1].CustomerName)
}

func TestEndToEnd_MarchScenario(t *testing.T) {
	// Two sales for user A ($500, $700) and one for user B ($1000) in March.
	sales := []entity.Sale{
		{
			UserID: "userA", CustomerName: "Clinic North",
			Date:       day(2026, time.March, 4),
			TotalPrice: decimal.NewFromInt(500),
			Items:      []entity.SaleItem{{Name: "Amoxil", Quantity: 5}},
		},
		{
			UserID: "userA", CustomerName: "Clinic North",
			Date:       day(2026, time.March, 11),
			TotalPrice: decimal.NewFromInt(700),
			Items:      []entity.SaleItem{{Name: "Panadol", Quantity: 2}},
		},
		{
			UserID: "userB", CustomerName: "Clinic South",
			Date:       day(2026, time.March, 18),
			TotalPrice: decimal.NewFromInt(1000),
			Items:      []entity.SaleItem{{Name: "Amoxil", Quantity: 1}},
		},
	}

	total := analytics.PeriodTotal(sales, 2026, time.March)
	assert.True(t, decimal.NewFromInt(2200).Equal(total))

	product, qty, ok := analytics.TopProduct(sales, 2026, time.March)
	require.True(t, ok)
	assert.Equal(t, "Amoxil", product)
	assert.Equal(t, int64(6), qty)

	customer, count, ok := analytics.TopCustomer(sales, 2026, time.March)
	require.True(t, ok)
	assert.Equal(t, "Clinic North", customer)
	assert.Equal(t, int64(2), count)

	// Ranking goes by period total: user A's 1200 beats user B's 1000.
	rankA, totalUsers := analytics.Rank(sales, "userA", 2026, time.March)
	rankB, _ := analytics.Rank(sales, "userB", 2026, time.March)
	assert.Equal(t, 1, rankA)
	assert.Equal(t, 2, rankB)
	assert.Equal(t, 2, totalUsers)
}
