package dto

import (
	"github.com/pickcard/rewards-backend/internal/catalog"
	"github.com/pickcard/rewards-backend/internal/domain/leaderboard"
	"github.com/pickcard/rewards-backend/internal/domain/rewards"
)

// CalculationResult is the per-card payload of POST /api/calculate.
type CalculationResult struct {
	CardID   string `json:"cardId"`
	CardName string `json:"cardName"`
	Bank     string `json:"bank"`

	RuleDescription string `json:"ruleDescription"`
	MatchType       string `json:"matchType"`

	Percentage   float64 `json:"percentage"`
	RewardAmount float64 `json:"rewardAmount"`
	Capped       bool    `json:"capped"`

	IsForeignCurrency bool    `json:"isForeignCurrency"`
	FXFee             float64 `json:"fxFee,omitempty"`
	NetRewardAmount   float64 `json:"netRewardAmount"`
	NetPercentage     float64 `json:"netPercentage"`

	PaymentSuggestion *rewards.PaymentSuggestion `json:"paymentSuggestion,omitempty"`
	SpendSuggestion   *rewards.SpendSuggestion   `json:"spendSuggestion,omitempty"`
	DateSuggestion    *rewards.DateSuggestion    `json:"dateSuggestion,omitempty"`

	DiscountDescription string  `json:"discountDescription,omitempty"`
	DiscountPercentage  float64 `json:"discountPercentage,omitempty"`
	DiscountAmount      float64 `json:"discountAmount,omitempty"`
}

// CalculateResponse wraps the ordered results plus what the query resolved to.
type CalculateResponse struct {
	Merchant *catalog.Merchant   `json:"merchant,omitempty"`
	Category *catalog.Category   `json:"category,omitempty"`
	Results  []CalculationResult `json:"results"`
}

// FromResult flattens an engine result for the wire.
func FromResult(r rewards.Result) CalculationResult {
	out := CalculationResult{
		CardID:            r.Card.ID,
		CardName:          r.Card.Name,
		Bank:              r.Card.Bank,
		RuleDescription:   r.MatchedRule.Description,
		MatchType:         string(r.MatchType),
		Percentage:        r.Percentage,
		RewardAmount:      r.RewardAmount,
		Capped:            r.Capped,
		IsForeignCurrency: r.IsForeignCurrency,
		FXFee:             r.FXFee,
		NetRewardAmount:   r.NetRewardAmount,
		NetPercentage:     r.NetPercentage,
		PaymentSuggestion: r.PaymentSuggestion,
		SpendSuggestion:   r.SpendSuggestion,
		DateSuggestion:    r.DateSuggestion,
	}
	if r.DiscountRule != nil {
		out.DiscountDescription = r.DiscountRule.Description
		out.DiscountPercentage = r.DiscountPercentage
		out.DiscountAmount = r.DiscountAmount
	}
	return out
}

// RankingEntry is one row of a category leaderboard.
type RankingEntry struct {
	CardID   string `json:"cardId"`
	CardName string `json:"cardName"`
	Bank     string `json:"bank"`

	RuleDescription string `json:"ruleDescription"`

	Percentage         float64 `json:"percentage"`
	NetPercentage      float64 `json:"netPercentage,omitempty"`
	ForeignCurrencyFee float64 `json:"foreignCurrencyFee,omitempty"`

	Cap           float64 `json:"cap,omitempty"`
	CapType       string  `json:"capType,omitempty"`
	CapAsSpending float64 `json:"capAsSpending,omitempty"`

	MinSpend        float64 `json:"minSpend,omitempty"`
	MonthlyMinSpend float64 `json:"monthlyMinSpend,omitempty"`

	Conditions []string `json:"conditions"`
}

// RankingsResponse wraps one category leaderboard.
type RankingsResponse struct {
	Category leaderboard.Config `json:"category"`
	Entries  []RankingEntry     `json:"entries"`
}

// FromEntry flattens a leaderboard entry for the wire.
func FromEntry(e leaderboard.Entry) RankingEntry {
	return RankingEntry{
		CardID:             e.Card.ID,
		CardName:           e.Card.Name,
		Bank:               e.Card.Bank,
		RuleDescription:    e.Rule.Description,
		Percentage:         e.Percentage,
		NetPercentage:      e.NetPercentage,
		ForeignCurrencyFee: e.ForeignCurrencyFee,
		Cap:                e.Cap,
		CapType:            string(e.CapType),
		CapAsSpending:      e.CapAsSpending,
		MinSpend:           e.MinSpend,
		MonthlyMinSpend:    e.MonthlyMinSpend,
		Conditions:         e.Conditions,
	}
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status string `json:"status"`
	Cards  int    `json:"cards"`
}
