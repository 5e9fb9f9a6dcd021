// Package entity contains the core business objects of the project.
package entity

// SubscriptionTier represents the plan an account is on.
type SubscriptionTier string

const (
	// SubscriptionStarter is the default tier.
	SubscriptionStarter SubscriptionTier = "starter"
	// SubscriptionPro is the middle tier.
	SubscriptionPro SubscriptionTier = "pro"
	// SubscriptionBusiness is the top tier.
	SubscriptionBusiness SubscriptionTier = "business"
)

// DefaultSubscription is assigned when registration does not name a tier.
const DefaultSubscription = SubscriptionStarter

// String returns the string representation of the SubscriptionTier.
func (s SubscriptionTier) String() string {
	return string(s)
}

// IsValid checks if the SubscriptionTier is one of the known tiers.
func (s SubscriptionTier) IsValid() bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	default:
		return false
	}
}

// SubscriptionTiers lists every valid tier in display order.
func SubscriptionTiers() []SubscriptionTier {
	return []SubscriptionTier{SubscriptionStarter, SubscriptionPro, SubscriptionBusiness}
}

// SubscriptionOrDefault returns the parsed tier, or the default when raw is empty.
func SubscriptionOrDefault(raw string) SubscriptionTier {
	if raw == "" {
		return DefaultSubscription
	}

	return SubscriptionTier(raw)
}
