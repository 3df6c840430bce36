// Package permission evaluates a user's role and permission flags into an
// access decision for a named capability. Pure functions of current state,
// no I/O.
package permission

import "github.com/hamagardy/mandoubi-api/internal/domain/entity"

// Capabilities gating data mutations.
const (
	CapViewAllSalesData  = "viewAllSalesData"
	CapChangeVisitStatus = "changeVisitStatus"
	CapChangePermissions = "changePermissions"
	CapChangePrice       = "changePrice"
	CapChangeBonus       = "changeBonus"
)

// Per-screen visibility flags.
const (
	CapSalesSummary    = "salesSummary"
	CapDailySales      = "dailySales"
	CapSalesData       = "salesData"
	CapSalesReports    = "salesReports"
	CapItems           = "items"
	CapSettings        = "settings"
	CapSalesForecast   = "salesForecast"
	CapAdminMembers    = "adminMembers"
	CapFollowUp        = "followUp"
	CapPharmaLocations = "pharmaLocations"
	CapBrochure        = "brochure"
)

// Known lists every declared capability, in display order.
var Known = []string{
	CapSalesSummary,
	CapDailySales,
	CapSalesData,
	CapSalesReports,
	CapItems,
	CapSettings,
	CapSalesForecast,
	CapAdminMembers,
	CapFollowUp,
	CapPharmaLocations,
	CapBrochure,
	CapViewAllSalesData,
	CapChangeVisitStatus,
	CapChangePermissions,
	CapChangePrice,
	CapChangeBonus,
}

// CanAccess decides whether the user may use the named capability.
//
// Admin is a superset override: true for every capability string, including
// ones added after this code was written. Members get the stored flag,
// defaulting to false when unset.
func CanAccess(u *entity.User, capability string) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return u.Permissions[capability]
}

// DefaultMemberSet is the grant a freshly created member starts with: the
// member-facing screens enabled, every privileged flag off.
func DefaultMemberSet() map[string]bool {
	return map[string]bool{
		CapSalesSummary:    true,
		CapDailySales:      true,
		CapSalesData:       true,
		CapSalesReports:    true,
		CapItems:           false,
		CapSettings:        false,
		CapSalesForecast:   true,
		CapAdminMembers:    false,
		CapFollowUp:        false,
		CapPharmaLocations: true,
		CapBrochure:        true,

		CapViewAllSalesData:  false,
		CapChangeVisitStatus: false,
		CapChangePermissions: false,
		CapChangePrice:       false,
		CapChangeBonus:       false,
	}
}

// AdminSet enumerates the known capabilities, all true. It exists only for
// display and editing surfaces; access decisions for admins never read a
// stored map (see CanAccess).
func AdminSet() map[string]bool {
	set := make(map[string]bool, len(Known))
	for _, c := range Known {
		set[c] = true
	}
	return set
}
