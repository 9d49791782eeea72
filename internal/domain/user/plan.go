package user

// Plan is the owner's subscription tier. Limits are derived from the
// plan at read time and never stored, so plan and limits cannot drift.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// Unlimited is the sentinel for a limit with no cap.
const Unlimited = -1

// Limits are the per-plan quota caps.
type Limits struct {
	MaxApps           int `json:"max_apps"`
	MaxResellers      int `json:"max_resellers"`
	MaxLicensesPerApp int `json:"max_licenses_per_app"`
}

// Limits returns the quota caps for the plan. Free owners get 2 apps,
// no resellers and 30 licenses per app; premium is unlimited.
func (p Plan) Limits() Limits {
	switch p {
	case PlanPremium:
		return Limits{
			MaxApps:           Unlimited,
			MaxResellers:      Unlimited,
			MaxLicensesPerApp: Unlimited,
		}
	default:
		return Limits{
			MaxApps:           2,
			MaxResellers:      0,
			MaxLicensesPerApp: 30,
		}
	}
}

func (p Plan) IsValid() bool {
	return p == PlanFree || p == PlanPremium
}

func (p Plan) IsPremium() bool {
	return p == PlanPremium
}

func (p Plan) String() string {
	return string(p)
}

// CanCreateApp reports whether an owner with the given app count may
// create another app.
func (l Limits) CanCreateApp(appCount int) bool {
	return l.MaxApps == Unlimited || appCount < l.MaxApps
}

// CanCreateReseller reports whether an owner with the given reseller
// count (across all apps) may create another reseller.
func (l Limits) CanCreateReseller(resellerCount int) bool {
	return l.MaxResellers == Unlimited || resellerCount < l.MaxResellers
}

// CanCreateLicense reports whether an app with the given license count
// may receive another license.
func (l Limits) CanCreateLicense(licenseCount int) bool {
	return l.MaxLicensesPerApp == Unlimited || licenseCount < l.MaxLicensesPerApp
}
