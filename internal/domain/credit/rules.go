package credit

// AllocationRule maps a purchasable service to the credit package it grants.
// Static configuration, not runtime state.
type AllocationRule struct {
	CreditType     string
	Sessions       int
	ExpirationDays int
	PackageName    string
}

var allocationRules = map[string]AllocationRule{
	"morris-12-week": {
		CreditType:     "challenge",
		Sessions:       12,
		ExpirationDays: 84,
		PackageName:    "Morris 12 Week Challenge",
	},
	"intro-5-pack": {
		CreditType:     "standard",
		Sessions:       5,
		ExpirationDays: 180,
		PackageName:    "Intro 5 Pack",
	},
	"monthly-10-pack": {
		CreditType:     "standard",
		Sessions:       10,
		ExpirationDays: 365,
		PackageName:    "Monthly 10 Pack",
	},
}

// RuleFor returns the allocation rule for a service id, if the service
// grants credits at all. Plain session bookings have no rule.
func RuleFor(serviceID string) (AllocationRule, bool) {
	rule, ok := allocationRules[serviceID]
	return rule, ok
}
