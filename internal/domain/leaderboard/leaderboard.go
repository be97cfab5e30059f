package leaderboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

// ErrUnknownCategory is returned for category IDs outside the fixed set.
var ErrUnknownCategory = errors.New("unknown leaderboard category")

// Entry is one card's best offer for a leaderboard category.
type Entry struct {
	Card *catalog.Card       `json:"card"`
	Rule *catalog.RewardRule `json:"rule"`

	// Percentage is the rule's nominal rate. For foreign currency
	// categories NetPercentage additionally nets out the card's flat FX
	// fee; the net figure drives the ordering while the nominal one is
	// what gets displayed.
	Percentage         float64 `json:"percentage"`
	NetPercentage      float64 `json:"netPercentage,omitempty"`
	ForeignCurrencyFee float64 `json:"foreignCurrencyFee,omitempty"`

	Cap     float64         `json:"cap,omitempty"`
	CapType catalog.CapType `json:"capType,omitempty"`

	// CapAsSpending normalizes the cap to a spending ceiling for uniform
	// comparison; zero means uncapped.
	CapAsSpending float64 `json:"capAsSpending,omitempty"`

	MinSpend        float64 `json:"minSpend,omitempty"`
	MonthlyMinSpend float64 `json:"monthlyMinSpend,omitempty"`

	// Conditions are human-readable strings describing the fine print.
	Conditions []string `json:"conditions"`
}

// RankByCategory scans every visible card for its single best non-discount
// rule structurally matching the category and returns the top entries,
// best-first. limit <= 0 means a default of 15.
func RankByCategory(categoryID string, limit int, cat *catalog.Catalog) ([]Entry, error) {
	cfg, ok := CategoryByID(categoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	if limit <= 0 {
		limit = 15
	}

	var entries []Entry
	cards := cat.Cards()
	for i := range cards {
		card := &cards[i]
		if card.Hidden {
			continue
		}
		if entry, ok := bestEntry(card, cfg); ok {
			entries = append(entries, entry)
		}
	}

	// For foreign currency categories the fee-netted rate orders the board
	// while the nominal rate is what callers display.
	sortKey := func(e Entry) float64 {
		if cfg.IsForeignCurrency {
			return e.NetPercentage
		}
		return e.Percentage
	}
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := sortKey(entries[i]), sortKey(entries[j])
		if pi != pj {
			return pi > pj
		}
		// Same rate: more cap headroom wins, and uncapped beats capped.
		ci, cj := entries[i].CapAsSpending, entries[j].CapAsSpending
		switch {
		case ci > 0 && cj > 0:
			return ci > cj
		case ci == 0 && cj > 0:
			return true
		default:
			return false
		}
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// RankAll builds every leaderboard at once, keyed by category ID.
func RankAll(limit int, cat *catalog.Catalog) map[string][]Entry {
	all := make(map[string][]Entry, len(Categories))
	for _, cfg := range Categories {
		entries, err := RankByCategory(cfg.ID, limit, cat)
		if err != nil {
			continue
		}
		all[cfg.ID] = entries
	}
	return all
}

// bestEntry finds the card's highest-percentage non-discount rule that
// structurally matches the category. For foreign currency categories the
// comparison subtracts the card's flat FX fee so a high headline rate on an
// expensive card ranks honestly.
func bestEntry(card *catalog.Card, cfg Config) (Entry, bool) {
	var best *catalog.RewardRule
	bestEffective := 0.0

	for i := range card.Rules {
		rule := &card.Rules[i]
		if rule.IsDiscount {
			continue
		}
		if !ruleMatchesConfig(rule, cfg) {
			continue
		}
		effective := rule.Percentage
		if cfg.IsForeignCurrency {
			effective -= card.ForeignCurrencyFee
		}
		if effective > bestEffective {
			bestEffective = effective
			best = rule
		}
	}
	if best == nil {
		return Entry{}, false
	}

	entry := Entry{
		Card:            card,
		Rule:            best,
		Percentage:      best.Percentage,
		Cap:             best.Cap,
		CapType:         best.EffectiveCapType(),
		CapAsSpending:   capAsSpending(best),
		MinSpend:        best.MinSpend,
		MonthlyMinSpend: best.MonthlyMinSpend,
		Conditions:      conditions(best, card),
	}
	if cfg.IsForeignCurrency {
		entry.ForeignCurrencyFee = card.ForeignCurrencyFee
		net := best.Percentage - card.ForeignCurrencyFee
		if net < 0 {
			net = 0
		}
		entry.NetPercentage = net
	}
	return entry, true
}

// ruleMatchesConfig is a structural test, not a transaction match: it checks
// matchType/matchValue overlap, the foreign currency flag, or the mobile
// wallet alias set depending on what the category keys on.
func ruleMatchesConfig(rule *catalog.RewardRule, cfg Config) bool {
	if cfg.IsForeignCurrency {
		if !rule.IsForeignCurrency {
			return false
		}
		if len(cfg.MatchCategories) == 0 {
			return true
		}
		// foreign_online wants foreign rules, online-scoped or general.
		if rule.MatchType != catalog.MatchCategory {
			return rule.MatchType == catalog.MatchBase
		}
		return overlaps(rule.MatchValue, cfg.MatchCategories)
	}

	switch cfg.MatchType {
	case catalog.MatchPaymentMethod:
		return rule.MatchType == catalog.MatchPaymentMethod &&
			overlaps(rule.MatchValue, cfg.PaymentMethods)
	case catalog.MatchBase:
		return rule.MatchType == catalog.MatchBase && !rule.IsForeignCurrency
	}

	return rule.MatchType == catalog.MatchCategory &&
		overlaps(rule.MatchValue, cfg.MatchCategories)
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func capAsSpending(rule *catalog.RewardRule) float64 {
	if rule.Cap <= 0 {
		return 0
	}
	if rule.EffectiveCapType() == catalog.CapReward {
		if rule.Percentage <= 0 {
			return 0
		}
		return rule.Cap / rule.Percentage * 100
	}
	return rule.Cap
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// conditions renders the rule's fine print as display strings.
func conditions(rule *catalog.RewardRule, card *catalog.Card) []string {
	var out []string

	if rule.MinSpend > 0 {
		out = append(out, fmt.Sprintf("Min spend $%s per transaction", formatAmount(rule.MinSpend)))
	}
	if rule.MonthlyMinSpend > 0 {
		out = append(out, fmt.Sprintf("Requires $%s monthly spend", formatAmount(rule.MonthlyMinSpend)))
	}
	if rule.Cap > 0 {
		if rule.EffectiveCapType() == catalog.CapReward {
			out = append(out, fmt.Sprintf("Monthly reward cap $%s", formatAmount(rule.Cap)))
		} else {
			out = append(out, fmt.Sprintf("Monthly spending cap $%s", formatAmount(rule.Cap)))
		}
	}
	if len(rule.ValidDays) > 0 {
		names := make([]string, 0, len(rule.ValidDays))
		for _, d := range rule.ValidDays {
			if d >= 0 && d < len(weekdayNames) {
				names = append(names, weekdayNames[d])
			}
		}
		out = append(out, "Only on "+strings.Join(names, "/"))
	}
	if len(rule.ValidDates) > 0 {
		days := make([]string, len(rule.ValidDates))
		for i, d := range rule.ValidDates {
			days[i] = fmt.Sprintf("%d", d)
		}
		out = append(out, fmt.Sprintf("Day %s of each month only", strings.Join(days, "/")))
	}
	if rule.RequiresRegistration {
		out = append(out, "Registration required")
	}
	if card.ForeignCurrencyFee == 0 {
		out = append(out, "No foreign currency fee")
	} else {
		out = append(out, fmt.Sprintf("%.4g%% foreign currency fee", card.ForeignCurrencyFee))
	}

	return out
}

// formatAmount renders 12345.6 as "12,345.60" and whole amounts without
// decimals.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimSuffix(s, ".00")
	dot := strings.IndexByte(s, '.')
	intPart := s
	frac := ""
	if dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	if len(intPart) <= 3 {
		return intPart + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}
