package rewards

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

// ErrInvalidInput marks requests the engine refuses to evaluate, such as
// negative amounts. Check with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// noRewardRule is the synthetic placeholder returned when no rule on a card
// matches the context. "No applicable reward" is a valid result, not an
// error.
var noRewardRule = catalog.RewardRule{
	Description: "No applicable reward",
	MatchType:   catalog.MatchBase,
	Percentage:  0,
}

// Options carries the transaction context for a best-card query.
type Options struct {
	Amount            float64
	PaymentMethod     string
	IsForeignCurrency bool
	IsOnline          bool

	// CardIDs restricts the pool to the given cards (a user's wallet).
	// Empty means the whole catalog.
	CardIDs []string

	// Now is the evaluation time for temporal rule gates. Zero means
	// time.Now().
	Now time.Time
}

// Result is the per-card outcome of a best-card query.
type Result struct {
	Card        *catalog.Card       `json:"card"`
	MatchedRule *catalog.RewardRule `json:"matchedRule"`
	MatchType   catalog.MatchType   `json:"matchType"`

	// Percentage is the effective rate (reward over amount), which is
	// lower than the rule's nominal rate once a cap bites.
	Percentage   float64 `json:"percentage"`
	RewardAmount float64 `json:"rewardAmount"`
	Capped       bool    `json:"capped"`

	IsForeignCurrency bool    `json:"isForeignCurrency"`
	FXFee             float64 `json:"fxFee"`
	NetRewardAmount   float64 `json:"netRewardAmount"`
	NetPercentage     float64 `json:"netPercentage"`

	PaymentSuggestion *PaymentSuggestion `json:"paymentSuggestion,omitempty"`
	SpendSuggestion   *SpendSuggestion   `json:"spendSuggestion,omitempty"`
	DateSuggestion    *DateSuggestion    `json:"dateSuggestion,omitempty"`

	DiscountRule       *catalog.RewardRule `json:"discountRule,omitempty"`
	DiscountPercentage float64             `json:"discountPercentage,omitempty"`
	DiscountAmount     float64             `json:"discountAmount,omitempty"`

	MissedDiscountRule   *catalog.RewardRule `json:"missedDiscountRule,omitempty"`
	MissedDiscountAmount float64             `json:"missedDiscountAmount,omitempty"`
}

// FindBestCards resolves the query text against the catalog, evaluates every
// card in the pool and returns results ordered best-first: by net reward for
// foreign transactions, by reward amount otherwise. Ties keep catalog order
// (stable sort). Discount savings are reported but never summed into the
// sort key.
func FindBestCards(query string, opts Options, cat *catalog.Catalog) ([]Result, error) {
	if opts.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative, got %v", ErrInvalidInput, opts.Amount)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	merchant, category := cat.Resolve(query)
	ctx := Context{
		Merchant:          merchant,
		Category:          category,
		PaymentMethod:     opts.PaymentMethod,
		Amount:            opts.Amount,
		IsForeignCurrency: opts.IsForeignCurrency,
		IsOnline:          opts.IsOnline,
		Now:               opts.Now,
	}

	pool := selectPool(cat, opts.CardIDs)
	results := make([]Result, 0, len(pool))
	for _, card := range pool {
		results = append(results, evaluateOne(card, ctx))
	}

	if opts.IsForeignCurrency {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].NetRewardAmount > results[j].NetRewardAmount
		})
	} else {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RewardAmount > results[j].RewardAmount
		})
	}
	return results, nil
}

func selectPool(cat *catalog.Catalog, ids []string) []*catalog.Card {
	if len(ids) == 0 {
		cards := cat.Cards()
		pool := make([]*catalog.Card, len(cards))
		for i := range cards {
			pool[i] = &cards[i]
		}
		return pool
	}
	pool := make([]*catalog.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := cat.Card(id); ok {
			pool = append(pool, card)
		}
	}
	return pool
}

func evaluateOne(card *catalog.Card, ctx Context) Result {
	ev := EvaluateCard(card, ctx)

	rule := ev.BestRule
	if rule == nil {
		rule = &noRewardRule
	}

	pct := rule.Percentage
	if ctx.Amount > 0 {
		pct = ev.RewardAmount / ctx.Amount * 100
	}

	fxFee := 0.0
	if ctx.IsForeignCurrency {
		fxFee = card.ForeignCurrencyFee
	}
	net, netPct := NetReward(ev.RewardAmount, ctx.Amount, fxFee, ctx.IsForeignCurrency)

	res := Result{
		Card:              card,
		MatchedRule:       rule,
		MatchType:         rule.MatchType,
		Percentage:        round2(pct),
		RewardAmount:      ev.RewardAmount,
		Capped:            ev.Capped,
		IsForeignCurrency: ctx.IsForeignCurrency,
		FXFee:             fxFee,
		NetRewardAmount:   net,
		NetPercentage:     round2(netPct),

		PaymentSuggestion: SuggestPaymentMethod(card, ctx, ev),
		SpendSuggestion:   SuggestSpendThreshold(ev),
		DateSuggestion:    SuggestDate(ev),
	}

	if ev.DiscountRule != nil {
		res.DiscountRule = ev.DiscountRule
		res.DiscountPercentage = ev.DiscountRule.Percentage
		res.DiscountAmount = ev.DiscountAmount
	}
	if ev.MissedDiscountRule != nil {
		res.MissedDiscountRule = ev.MissedDiscountRule
		res.MissedDiscountAmount = ev.MissedDiscountAmount
	}
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
