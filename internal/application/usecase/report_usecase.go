package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/analytics"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
	"github.com/hamagardy/mandoubi-api/pkg/logger"
)

const leaderboardSize = 5 // rows in the summary leaderboard widget

// SummaryCache is an optional read-through cache for summary reports. A nil
// implementation is valid; misses and cache errors just mean recomputing.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*dto.SummaryReport, bool)
	Set(ctx context.Context, key string, report *dto.SummaryReport)
}

// ReportUseCase builds the summary, trends/forecast and follow-up reports.
// The reference time is always an explicit parameter so the aggregation
// stays reproducible.
type ReportUseCase struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
	cache    SummaryCache
	log      *logger.Logger
}

// NewReportUseCase builds the use case. cache may be nil.
func NewReportUseCase(saleRepo repository.SaleRepository, userRepo repository.UserRepository, cache SummaryCache, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, userRepo: userRepo, cache: cache, log: log}
}

func (uc *ReportUseCase) caller(ctx context.Context, callerID string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Summary computes the period dashboard for the caller's scope.
//
// The scoped query feeds totals, top product/customer, best day and the
// daily series. Rank, streak and the leaderboard always derive from the full
// sale set (they are cross-user aggregates, not record retrieval); when that
// secondary query fails the summary degrades to no ranking instead of
// failing the whole report.
func (uc *ReportUseCase) Summary(ctx context.Context, callerID, selectedUserID string, now time.Time) (*dto.SummaryReport, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	scope := ResolveScope(caller, selectedUserID)

	key := summaryCacheKey(callerID, selectedUserID, now)
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	scoped, err := fetchScoped(ctx, uc.saleRepo, scope)
	if err != nil {
		return nil, fmt.Errorf("summary: scoped sales: %w", err)
	}

	year, month := now.Year(), now.Month()
	prevYear, prevMonth := analytics.PreviousPeriod(year, month)

	total := analytics.PeriodTotal(scoped, year, month)
	prevTotal := analytics.PeriodTotal(scoped, prevYear, prevMonth)

	target := uc.targetForScope(ctx, caller, scope, int(month)-1)
	progress := 0.0
	if target.IsPositive() {
		progress, _ = total.Div(target).Mul(decimal.NewFromInt(100)).Float64()
	}

	report := &dto.SummaryReport{
		Year:           year,
		Month:          int(month) - 1,
		Total:          total,
		Target:         target,
		TargetProgress: progress,
		PreviousTotal:  prevTotal,
		MonthlyGrowth:  analytics.MonthlyGrowth(total, prevTotal),
		DailySeries:    analytics.DailySeries(scoped, year, month),
	}
	if name, _, ok := analytics.TopProduct(scoped, year, month); ok {
		report.TopProduct = name
	}
	if name, _, ok := analytics.TopCustomer(scoped, year, month); ok {
		report.TopCustomer = name
	}
	if day, dayTotal, ok := analytics.BestDay(scoped, year, month); ok {
		report.BestDay = &dto.BestDay{Date: day, Total: dayTotal}
	}

	uc.attachRanking(ctx, report, caller, year, month, now)

	if uc.cache != nil {
		uc.cache.Set(ctx, key, report)
	}
	return report, nil
}

// attachRanking fills rank, streak and leaderboard from the full sale set.
func (uc *ReportUseCase) attachRanking(ctx context.Context, report *dto.SummaryReport, caller *entity.User, year int, month time.Month, now time.Time) {
	allSales, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("summary: ranking degraded, full sale set unavailable")
		return
	}
	report.Rank, report.TotalUsers = analytics.Rank(allSales, caller.ID, year, month)
	report.Streak = analytics.Streak(allSales, caller.ID, now)

	board := analytics.Leaderboard(allSales, year, month)
	if len(board) > leaderboardSize {
		board = board[:leaderboardSize]
	}
	names := uc.userNames(ctx)
	entries := make([]dto.LeaderboardEntry, 0, len(board))
	for _, st := range board {
		entries = append(entries, dto.LeaderboardEntry{
			UserID:     st.UserID,
			Name:       names[st.UserID],
			Total:      st.Total,
			SalesCount: st.SalesCount,
		})
	}
	report.Leaderboard = entries
}

func (uc *ReportUseCase) userNames(ctx context.Context) map[string]string {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("summary: user names unavailable")
		return map[string]string{}
	}
	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names
}

// targetForScope picks whose target the summary compares against: the
// scoped user's when a single user is in scope, otherwise the caller's own.
func (uc *ReportUseCase) targetForScope(ctx context.Context, caller *entity.User, scope Scope, monthIndex int) decimal.Decimal {
	if !scope.All && scope.UserID != caller.ID {
		owner, err := uc.userRepo.GetByID(ctx, scope.UserID)
		if err == nil && owner != nil {
			return owner.TargetFor(monthIndex)
		}
	}
	return caller.TargetFor(monthIndex)
}

// Monthly builds the 12-month series and cumulative forecast for a year.
func (uc *ReportUseCase) Monthly(ctx context.Context, callerID, selectedUserID string, year int) (*dto.MonthlyReport, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	scoped, err := fetchScoped(ctx, uc.saleRepo, ResolveScope(caller, selectedUserID))
	if err != nil {
		return nil, fmt.Errorf("monthly report: scoped sales: %w", err)
	}

	series := analytics.MonthlySeries(scoped, year)
	forecast := analytics.CumulativeForecast(series)
	return &dto.MonthlyReport{
		Year:     year,
		Months:   series[:],
		Forecast: forecast[:],
		Total:    forecast[11],
	}, nil
}

// FollowUp aggregates customer activity across all sellers; admin only.
// recentOnly keeps the last 30 days relative to now.
func (uc *ReportUseCase) FollowUp(ctx context.Context, callerID string, recentOnly bool, now time.Time) (*dto.FollowUpReport, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	sales, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("follow-up: sales: %w", err)
	}
	if recentOnly {
		cutoff := now.AddDate(0, 0, -30)
		recent := sales[:0:0]
		for i := range sales {
			if sales[i].Date.After(cutoff) {
				recent = append(recent, sales[i])
			}
		}
		sales = recent
	}

	activity := analytics.CustomerTotals(sales)
	total := decimal.Zero
	entries := make([]dto.CustomerActivityEntry, 0, len(activity))
	for _, ca := range activity {
		total = total.Add(ca.Total)
		entries = append(entries, dto.CustomerActivityEntry{
			CustomerName: ca.CustomerName,
			Total:        ca.Total,
			SalesCount:   ca.SalesCount,
			LastSale:     ca.LastSale,
		})
	}
	return &dto.FollowUpReport{Customers: entries, Total: total}, nil
}

func summaryCacheKey(callerID, selectedUserID string, now time.Time) string {
	return fmt.Sprintf("summary:%s:%s:%s", callerID, selectedUserID, now.Format("2006-01"))
}
