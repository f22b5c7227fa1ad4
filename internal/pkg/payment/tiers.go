package payment

import (
	"fmt"
	"strings"
	"time"
)

// tiers is the fixed set of purchasable placements. Amounts are in cents.
var tiers = map[string]Tier{
	TierBasic:      {Name: TierBasic, Duration: 7 * 24 * time.Hour, AmountCents: 1999},
	TierPremium:    {Name: TierPremium, Duration: 14 * 24 * time.Hour, AmountCents: 4999},
	TierEnterprise: {Name: TierEnterprise, Duration: 30 * 24 * time.Hour, AmountCents: 9999},
}

// ResolveTier validates a tier name against the fixed set.
func ResolveTier(name string) (Tier, error) {
	t, ok := tiers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Tier{}, fmt.Errorf("unknown feature tier %q: must be one of basic, premium, enterprise", name)
	}
	return t, nil
}

// Tiers lists the purchasable tiers in ascending price order.
func Tiers() []Tier {
	return []Tier{tiers[TierBasic], tiers[TierPremium], tiers[TierEnterprise]}
}
