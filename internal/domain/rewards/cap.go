package rewards

import (
	"math"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

// EffectiveSpendCeiling normalizes a rule's cap to a spend-denominated
// ceiling so spending caps and reward caps compare uniformly. Returns +Inf
// for uncapped rules.
//
//	reward cap:   ceiling = cap / percentage * 100
//	spending cap: ceiling = cap
func EffectiveSpendCeiling(rule *catalog.RewardRule) float64 {
	if rule.Cap <= 0 {
		return math.Inf(1)
	}
	if rule.EffectiveCapType() == catalog.CapReward {
		if rule.Percentage <= 0 {
			return math.Inf(1)
		}
		return rule.Cap / rule.Percentage * 100
	}
	return rule.Cap
}

// ApplyCap computes the reward a rule yields on amount, honoring the rule's
// cap. Spend beyond the effective ceiling earns nothing under this rule;
// there is no fallback to a lower base rate for the overage. That is a known
// simplification of how issuers bill, kept deliberately.
func ApplyCap(rule *catalog.RewardRule, amount float64) (reward float64, capped bool) {
	ceiling := EffectiveSpendCeiling(rule)
	if amount > ceiling {
		return ceiling * rule.Percentage / 100, true
	}
	return amount * rule.Percentage / 100, false
}
