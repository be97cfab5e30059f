package rewards

import (
	"github.com/pickcard/rewards-backend/internal/catalog"
)

// paymentCandidates is the fixed list of alternate methods the payment
// suggestion probes, in probe order.
var paymentCandidates = []string{"apple_pay", "boc_pay", "alipay", "payme"}

// PaymentSuggestion proposes switching payment method for a better reward.
type PaymentSuggestion struct {
	Method       string  `json:"method"`
	RewardAmount float64 `json:"rewardAmount"`
	Percentage   float64 `json:"percentage"`
}

// SpendSuggestion proposes topping the amount up to a rule's minimum spend.
type SpendSuggestion struct {
	TargetAmount    float64 `json:"targetAmount"`
	RuleDescription string  `json:"ruleDescription"`
	Percentage      float64 `json:"percentage"`
	RewardAmount    float64 `json:"rewardAmount"`
}

// DateSuggestion points at a rule that would out-earn the current result on
// its valid days.
type DateSuggestion struct {
	ValidDays       []int   `json:"validDays,omitempty"`
	ValidDates      []int   `json:"validDates,omitempty"`
	RuleDescription string  `json:"ruleDescription"`
	Percentage      float64 `json:"percentage"`
	RewardAmount    float64 `json:"rewardAmount"`
}

// SuggestPaymentMethod probes the fixed candidate list by re-running the real
// evaluator with the method swapped, and returns the strictly-best
// improvement over the current result. Only attempted when the scenario pays
// by physical card (or no method was given) — switching away from an
// explicitly chosen wallet is not our call to make.
func SuggestPaymentMethod(card *catalog.Card, ctx Context, current Evaluation) *PaymentSuggestion {
	if !ctx.physicalPayment() {
		return nil
	}

	var best *PaymentSuggestion
	for _, method := range paymentCandidates {
		probe := EvaluateCard(card, ctx.WithPaymentMethod(method))
		if probe.RewardAmount <= current.RewardAmount {
			continue
		}
		if best != nil && probe.RewardAmount <= best.RewardAmount {
			continue
		}
		best = &PaymentSuggestion{
			Method:       method,
			RewardAmount: probe.RewardAmount,
			Percentage:   probe.BestPercentage(),
		}
	}
	return best
}

// SuggestSpendThreshold compares the missed rule and the actually-selected
// rule at exactly the missed rule's threshold amount; the suggestion only
// surfaces when unlocking the threshold genuinely wins at that spend level.
func SuggestSpendThreshold(current Evaluation) *SpendSuggestion {
	missed := current.MissedRule
	if missed == nil || missed.MinSpend <= 0 {
		return nil
	}

	atThreshold := missed.MinSpend * missed.Percentage / 100
	currentAtThreshold := missed.MinSpend * current.BestPercentage() / 100
	if atThreshold <= currentAtThreshold {
		return nil
	}

	return &SpendSuggestion{
		TargetAmount:    missed.MinSpend,
		RuleDescription: missed.Description,
		Percentage:      missed.Percentage,
		RewardAmount:    atThreshold,
	}
}

// SuggestDate surfaces the best rule blocked only by a temporal gate, when
// it would beat the current result.
func SuggestDate(current Evaluation) *DateSuggestion {
	missed := current.MissedDateRule
	if missed == nil || current.MissedDateReward <= current.RewardAmount {
		return nil
	}
	return &DateSuggestion{
		ValidDays:       missed.ValidDays,
		ValidDates:      missed.ValidDates,
		RuleDescription: missed.Description,
		Percentage:      missed.Percentage,
		RewardAmount:    current.MissedDateReward,
	}
}
