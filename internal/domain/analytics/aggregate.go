// Package analytics computes per-period sales aggregates: totals, top
// product and customer, growth, ranking, streaks, best day and chart series.
//
// Every function is pure: no I/O, no ambient clock. The caller passes the
// sale set (already scoped to its visibility), the target period and, where
// day arithmetic is involved, an explicit reference time. Sales with a zero
// date are excluded from period buckets rather than counted as zero-valued.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// StreakWindowDays bounds the backward day scan for sales streaks.
const StreakWindowDays = 30

// inPeriod reports whether the sale falls in the given calendar month.
func inPeriod(s *entity.Sale, year int, month time.Month) bool {
	if s.Date.IsZero() {
		return false
	}
	return s.Date.Year() == year && s.Date.Month() == month
}

// PeriodTotal sums TotalPrice over sales dated within the month.
func PeriodTotal(sales []entity.Sale, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for i := range sales {
		if inPeriod(&sales[i], year, month) {
			total = total.Add(sales[i].TotalPrice)
		}
	}
	return total
}

// TopProduct returns the item name with the greatest summed quantity across
// all line items of the period's sales, and that quantity. Ties break
// lexicographically ascending on name so the result is deterministic.
// ok is false when the period has no sales.
func TopProduct(sales []entity.Sale, year int, month time.Month) (name string, quantity int64, ok bool) {
	counts := map[string]int64{}
	for i := range sales {
		if !inPeriod(&sales[i], year, month) {
			continue
		}
		for _, it := range sales[i].Items {
			counts[it.Name] += int64(it.Quantity)
		}
	}
	return maxCount(counts)
}

// TopCustomer returns the customer name with the most sales in the period,
// counting one occurrence per sale regardless of its item count. Same
// tie-break as TopProduct.
func TopCustomer(sales []entity.Sale, year int, month time.Month) (name string, count int64, ok bool) {
	counts := map[string]int64{}
	for i := range sales {
		if inPeriod(&sales[i], year, month) {
			counts[sales[i].CustomerName]++
		}
	}
	return maxCount(counts)
}

func maxCount(counts map[string]int64) (string, int64, bool) {
	var best string
	var bestN int64
	found := false
	for name, n := range counts {
		if !found || n > bestN || (n == bestN && name < best) {
			best, bestN, found = name, n, true
		}
	}
	return best, bestN, found
}

// MonthlyGrowth returns the percentage change from previous to current. When
// previous is zero the growth is defined as 0 — never Inf or NaN.
func MonthlyGrowth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	growth, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return growth
}

// SellerTotal is one leaderboard entry.
type SellerTotal struct {
	UserID     string
	Total      decimal.Decimal
	SalesCount int
}

// Leaderboard computes each user's period total over the full sale set and
// returns users with a non-zero total, sorted by total descending then
// user ID ascending.
func Leaderboard(sales []entity.Sale, year int, month time.Month) []SellerTotal {
	byUser := map[string]*SellerTotal{}
	for i := range sales {
		if !inPeriod(&sales[i], year, month) {
			continue
		}
		st, ok := byUser[sales[i].UserID]
		if !ok {
			st = &SellerTotal{UserID: sales[i].UserID, Total: decimal.Zero}
			byUser[sales[i].UserID] = st
		}
		st.Total = st.Total.Add(sales[i].TotalPrice)
		st.SalesCount++
	}

	board := make([]SellerTotal, 0, len(byUser))
	for _, st := range byUser {
		if st.Total.IsZero() {
			continue
		}
		board = append(board, *st)
	}
	sort.Slice(board, func(i, j int) bool {
		if !board[i].Total.Equal(board[j].Total) {
			return board[i].Total.GreaterThan(board[j].Total)
		}
		return board[i].UserID < board[j].UserID
	})
	return board
}

// Rank returns the user's 1-based position among users with a non-zero
// period total, and the size of that set. rank is 0 when the user has no
// sales in the period.
func Rank(sales []entity.Sale, userID string, year int, month time.Month) (rank, totalUsers int) {
	board := Leaderboard(sales, year, month)
	for i := range board {
		if board[i].UserID == userID {
			return i + 1, len(board)
		}
	}
	return 0, len(board)
}

// Streak counts consecutive calendar days with at least one sale by the
// user, walking backward from now's day over a 30-day window. The walk stops
// at the first day without a sale, so a user with no sale today scores 0
// regardless of any earlier run.
func Streak(sales []entity.Sale, userID string, now time.Time) int {
	days := map[string]bool{}
	for i := range sales {
		if sales[i].UserID != userID || sales[i].Date.IsZero() {
			continue
		}
		days[dayKey(sales[i].Date)] = true
	}

	streak := 0
	for i := 0; i < StreakWindowDays; i++ {
		if !days[dayKey(now.AddDate(0, 0, -i))] {
			break
		}
		streak++
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// BestDay returns the calendar day within the month with the highest summed
// TotalPrice; on equal totals the earliest date wins. ok is false when the
// period has no sales.
func BestDay(sales []entity.Sale, year int, month time.Month) (day time.Time, total decimal.Decimal, ok bool) {
	series := DailySeries(sales, year, month)
	bestIdx := -1
	for i, v := range series {
		if v.IsZero() {
			continue
		}
		if bestIdx == -1 || v.GreaterThan(series[bestIdx]) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return time.Time{}, decimal.Zero, false
	}
	return time.Date(year, month, bestIdx+1, 0, 0, 0, 0, time.UTC), series[bestIdx], true
}

// DailySeries buckets the month's sales by day. Index 0 holds day 1; the
// slice length is the actual number of days in that month and year (28-31).
func DailySeries(sales []entity.Sale, year int, month time.Month) []decimal.Decimal {
	series := make([]decimal.Decimal, DaysInMonth(year, month))
	for i := range series {
		series[i] = decimal.Zero
	}
	for i := range sales {
		if !inPeriod(&sales[i], year, month) {
			continue
		}
		d := sales[i].Date.Day() - 1
		series[d] = series[d].Add(sales[i].TotalPrice)
	}
	return series
}

// MonthlySeries buckets a year's sales by month index 0-11.
func MonthlySeries(sales []entity.Sale, year int) [12]decimal.Decimal {
	var series [12]decimal.Decimal
	for i := range series {
		series[i] = decimal.Zero
	}
	for i := range sales {
		if sales[i].Date.IsZero() || sales[i].Date.Year() != year {
			continue
		}
		m := int(sales[i].Date.Month()) - 1
		series[m] = series[m].Add(sales[i].TotalPrice)
	}
	return series
}

// CumulativeForecast turns a monthly series into a running total, the
// original forecasting screen's model: entry i is the sum of months 0..i.
func CumulativeForecast(series [12]decimal.Decimal) [12]decimal.Decimal {
	var out [12]decimal.Decimal
	running := decimal.Zero
	for i, v := range series {
		running = running.Add(v)
		out[i] = running
	}
	return out
}

// DaysInMonth returns the number of calendar days in the month, accounting
// for leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PreviousPeriod returns the month preceding the given one, rolling the year
// back across January.
func PreviousPeriod(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// CustomerActivity is a per-customer roll-up for the follow-up screen.
type CustomerActivity struct {
	CustomerName string
	Total        decimal.Decimal
	SalesCount   int
	LastSale     time.Time
}

// CustomerTotals aggregates the sale set per customer name, sorted by total
// descending then name ascending. Zero-dated sales still count toward the
// totals but never advance LastSale.
func CustomerTotals(sales []entity.Sale) []CustomerActivity {
	byCustomer := map[string]*CustomerActivity{}
	for i := range sales {
		s := &sales[i]
		ca, ok := byCustomer[s.CustomerName]
		if !ok {
			ca = &CustomerActivity{CustomerName: s.CustomerName, Total: decimal.Zero}
			byCustomer[s.CustomerName] = ca
		}
		ca.Total = ca.Total.Add(s.TotalPrice)
		ca.SalesCount++
		if s.Date.After(ca.LastSale) {
			ca.LastSale = s.Date
		}
	}

	out := make([]CustomerActivity, 0, len(byCustomer))
	for _, ca := range byCustomer {
		out = append(out, *ca)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].CustomerName < out[j].CustomerName
	})
	return out
}
