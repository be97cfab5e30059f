package rewards

import (
	"github.com/pickcard/rewards-backend/internal/catalog"
)

// Evaluation is the outcome of scanning one card's rules against a context.
type Evaluation struct {
	// BestRule is the reward-maximizing matched rule, nil when nothing
	// matched. Percentage and RewardAmount refer to it.
	BestRule     *catalog.RewardRule
	RewardAmount float64
	Capped       bool

	// MissedRule is the best rule (by percentage) that matched
	// structurally but failed only its minimum spend threshold. Feeds the
	// spend-threshold suggestion.
	MissedRule *catalog.RewardRule

	// MissedDateRule is the rule (by would-be reward) that matched
	// structurally and met the minimum spend but failed only a temporal
	// gate. Feeds the date suggestion.
	MissedDateRule   *catalog.RewardRule
	MissedDateReward float64

	// Discount rules are tracked separately from rebates and never summed
	// into reward totals.
	DiscountRule         *catalog.RewardRule
	DiscountAmount       float64
	MissedDiscountRule   *catalog.RewardRule
	MissedDiscountAmount float64
}

// BestPercentage returns the nominal percentage of the best rule, zero when
// nothing matched.
func (e Evaluation) BestPercentage() float64 {
	if e.BestRule == nil {
		return 0
	}
	return e.BestRule.Percentage
}

// EvaluateCard scans every rule on the card and selects the one yielding the
// globally maximum absolute reward — not the highest percentage: an uncapped
// low rate can beat a capped high rate on large amounts.
//
// The function is pure and re-entrant; the suggestion generator re-invokes it
// with perturbed contexts.
func EvaluateCard(card *catalog.Card, ctx Context) Evaluation {
	var ev Evaluation
	maxReward := -1.0
	maxMissedPct := -1.0

	for i := range card.Rules {
		rule := &card.Rules[i]

		if !matchesStructure(rule, ctx) {
			continue
		}

		if !matchesSchedule(rule, ctx) {
			// Outside its window; remember what it would have paid.
			if ctx.Amount < rule.MinSpend {
				continue
			}
			if rule.IsDiscount {
				discount := ctx.Amount * rule.Percentage / 100
				if discount > ev.MissedDiscountAmount {
					ev.MissedDiscountRule = rule
					ev.MissedDiscountAmount = discount
				}
				continue
			}
			potential, _ := ApplyCap(rule, ctx.Amount)
			if potential > ev.MissedDateReward {
				ev.MissedDateRule = rule
				ev.MissedDateReward = potential
			}
			continue
		}

		if rule.IsDiscount {
			if ctx.Amount >= rule.MinSpend && rule.Percentage > discountPct(ev.DiscountRule) {
				ev.DiscountRule = rule
				ev.DiscountAmount = ctx.Amount * rule.Percentage / 100
			}
			continue
		}

		if ctx.Amount < rule.MinSpend {
			if rule.Percentage > maxMissedPct {
				maxMissedPct = rule.Percentage
				ev.MissedRule = rule
			}
			continue
		}

		reward, capped := ApplyCap(rule, ctx.Amount)
		if reward > maxReward {
			maxReward = reward
			ev.BestRule = rule
			ev.RewardAmount = reward
			ev.Capped = capped
		}
	}

	if ev.BestRule == nil {
		ev.RewardAmount = 0
		ev.Capped = false
	}
	return ev
}

func discountPct(rule *catalog.RewardRule) float64 {
	if rule == nil {
		return 0
	}
	return rule.Percentage
}
