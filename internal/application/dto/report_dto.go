package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaderboardEntry one row of the team leaderboard.
type LeaderboardEntry struct {
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	SalesCount int             `json:"salesCount"`
}

// BestDay the strongest sales day of the period.
type BestDay struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// SummaryReport the aggregation output for one period and one scope. This is
// the exact object handed to the export adapters.
type SummaryReport struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 0-11

	Total          decimal.Decimal    `json:"total"`
	Target         decimal.Decimal    `json:"target"`
	TargetProgress float64            `json:"targetProgress"` // percent
	PreviousTotal  decimal.Decimal    `json:"previousTotal"`
	MonthlyGrowth  float64            `json:"monthlyGrowth"` // percent, 0 when no previous data

	TopProduct  string `json:"topProduct,omitempty"`
	TopCustomer string `json:"topCustomer,omitempty"`

	Rank       int `json:"rank"`       // 0 when the caller has no period sales
	TotalUsers int `json:"totalUsers"` // users with a non-zero period total
	Streak     int `json:"streak"`

	BestDay     *BestDay           `json:"bestDay,omitempty"`
	DailySeries []decimal.Decimal  `json:"dailySeries"` // index 0 = day 1
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// MonthlyReport 12-month series plus the cumulative forecast for one year.
type MonthlyReport struct {
	Year     int               `json:"year"`
	Months   []decimal.Decimal `json:"months"`   // index 0 = January
	Forecast []decimal.Decimal `json:"forecast"` // running cumulative total
	Total    decimal.Decimal   `json:"total"`
}

// CustomerActivityEntry one row of the follow-up report.
type CustomerActivityEntry struct {
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	SalesCount   int             `json:"salesCount"`
	LastSale     time.Time       `json:"lastSale"`
}

// FollowUpReport admin view of customer activity.
type FollowUpReport struct {
	Customers []CustomerActivityEntry `json:"customers"`
	Total     decimal.Decimal         `json:"total"`
}

// TargetUpdateResponse result of a target write. FailedUserIDs is non-empty
// only for an admin fan-out that partially failed.
type TargetUpdateResponse struct {
	MonthIndex    int             `json:"monthIndex"`
	Value         decimal.Decimal `json:"value"`
	UpdatedUsers  int             `json:"updatedUsers"`
	FailedUserIDs []string        `json:"failedUserIds,omitempty"`
	Warning       string          `json:"warning,omitempty"`
}
