package rewards

import (
	"github.com/pickcard/rewards-backend/internal/catalog"
)

// Matches is the full rule predicate: structural match, temporal gates and
// the minimum spend threshold, evaluated as a short-circuiting conjunction.
func Matches(rule *catalog.RewardRule, ctx Context) bool {
	return matchesStructure(rule, ctx) &&
		matchesSchedule(rule, ctx) &&
		ctx.Amount >= rule.MinSpend
}

// matchesStructure checks everything except the temporal gates and minimum
// spend: foreign currency compatibility, exclusion vetoes and the
// type-specific value predicate.
func matchesStructure(rule *catalog.RewardRule, ctx Context) bool {
	if rule.IsForeignCurrency && !ctx.IsForeignCurrency {
		return false
	}
	if excluded(rule, ctx) {
		return false
	}

	switch rule.MatchType {
	case catalog.MatchBase:
		return true
	case catalog.MatchMerchant:
		return ctx.Merchant != nil && rule.MatchesValue(ctx.Merchant.ID)
	case catalog.MatchCategory:
		return matchesCategory(rule, ctx)
	case catalog.MatchPaymentMethod:
		return matchesPaymentMethod(rule, ctx)
	default:
		return false
	}
}

func excluded(rule *catalog.RewardRule, ctx Context) bool {
	if len(rule.ExcludeCategories) > 0 {
		if ctx.Category != nil && contains(rule.ExcludeCategories, ctx.Category.ID) {
			return true
		}
		if ctx.Merchant != nil {
			for _, catID := range ctx.Merchant.CategoryIDs {
				if contains(rule.ExcludeCategories, catID) {
					return true
				}
			}
		}
	}
	if ctx.PaymentMethod != "" && contains(rule.ExcludePaymentMethods, ctx.PaymentMethod) {
		return true
	}
	return false
}

// matchesSchedule checks the weekday, day-of-month and date range gates
// against the context's evaluation time. All three are hard gates; a rule
// outside its window never matches, it can only feed a date suggestion.
func matchesSchedule(rule *catalog.RewardRule, ctx Context) bool {
	if len(rule.ValidDays) > 0 {
		if !containsInt(rule.ValidDays, int(ctx.Now.Weekday())) {
			return false
		}
	}
	if len(rule.ValidDates) > 0 {
		if !containsInt(rule.ValidDates, ctx.Now.Day()) {
			return false
		}
	}
	if rule.ValidDateRange != nil && !rule.ValidDateRange.Contains(ctx.Now) {
		return false
	}
	return true
}

// matchesCategory handles direct category matches, matches inherited through
// the resolved merchant's memberships, and the online gating: rules for the
// "online" category only apply when the transaction actually happens online.
func matchesCategory(rule *catalog.RewardRule, ctx Context) bool {
	online := ctx.IsOnline || ctx.PaymentMethod == PaymentOnline
	isOnlineRule := rule.MatchesValue(OnlineCategoryID)

	// Paying in person with the physical card never earns online rates.
	if isOnlineRule && ctx.physicalPayment() && !ctx.IsOnline {
		return false
	}

	if ctx.Category != nil && rule.MatchesValue(ctx.Category.ID) {
		return true
	}
	if ctx.Merchant != nil {
		for _, catID := range ctx.Merchant.CategoryIDs {
			if catID == OnlineCategoryID && ctx.physicalPayment() && !ctx.IsOnline {
				continue
			}
			if rule.MatchesValue(catID) {
				return true
			}
		}
	}

	// An online scenario matches online category rules even when text
	// resolution found nothing.
	if online && isOnlineRule {
		return true
	}
	return false
}

func matchesPaymentMethod(rule *catalog.RewardRule, ctx Context) bool {
	if ctx.PaymentMethod != "" && rule.MatchesValue(ctx.PaymentMethod) {
		return true
	}
	if rule.MatchesValue(MobileAlias) && IsMobileWallet(ctx.PaymentMethod) {
		return true
	}
	if (ctx.IsOnline || ctx.PaymentMethod == PaymentOnline) && rule.MatchesValue(PaymentOnline) {
		return true
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}
