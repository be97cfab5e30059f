// Package catalog holds the static card, merchant and category data the
// reward engine evaluates against.
//
// Everything here is loaded once at startup (from YAML files or a SQLite
// database) and treated as read-only for the lifetime of the process. The
// Catalog type is safe for concurrent readers.
package catalog

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// MatchType says which part of the transaction context a rule matches on.
type MatchType string

const (
	MatchBase          MatchType = "base"
	MatchMerchant      MatchType = "merchant"
	MatchCategory      MatchType = "category"
	MatchPaymentMethod MatchType = "paymentMethod"
)

// CapType distinguishes a ceiling on eligible spend from a ceiling on the
// resulting reward.
type CapType string

const (
	CapSpending CapType = "spending"
	CapReward   CapType = "reward"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] calendar window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range. The end date is
// inclusive of the whole day.
func (r DateRange) Contains(t time.Time) bool {
	if t.Before(r.Start) {
		return false
	}
	return t.Before(r.End.AddDate(0, 0, 1))
}

// UnmarshalYAML accepts {start: "2006-01-02", end: "2006-01-02"}.
func (r *DateRange) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	start, err := time.Parse(dateLayout, raw.Start)
	if err != nil {
		return fmt.Errorf("invalid date range start %q: %w", raw.Start, err)
	}
	end, err := time.Parse(dateLayout, raw.End)
	if err != nil {
		return fmt.Errorf("invalid date range end %q: %w", raw.End, err)
	}
	if end.Before(start) {
		return fmt.Errorf("date range end %q before start %q", raw.End, raw.Start)
	}
	r.Start, r.End = start, end
	return nil
}

// RewardRule is a single conditional formula mapping a transaction shape to a
// percentage-based reward. Rules are owned by exactly one card and immutable
// after load.
type RewardRule struct {
	Description string    `yaml:"description" json:"description"`
	MatchType   MatchType `yaml:"matchType" json:"matchType"`

	// MatchValue is interpreted per MatchType: merchant IDs, category IDs
	// or payment method IDs. Empty for base rules.
	MatchValue []string `yaml:"matchValue,omitempty" json:"matchValue,omitempty"`

	Percentage float64 `yaml:"percentage" json:"percentage"`

	// IsDiscount marks an immediate price cut at the till. Discount rules
	// are reported separately and never summed into reward totals.
	IsDiscount bool `yaml:"isDiscount,omitempty" json:"isDiscount,omitempty"`

	// Cap is a monthly ceiling; zero means uncapped. CapType defaults to
	// "spending" when empty.
	Cap     float64 `yaml:"cap,omitempty" json:"cap,omitempty"`
	CapType CapType `yaml:"capType,omitempty" json:"capType,omitempty"`

	// ShareCapWith is a declared cap-sharing group key. The evaluator does
	// not enforce it: honoring it needs a running spend total per group per
	// billing period, which this system does not carry.
	ShareCapWith string `yaml:"shareCapWith,omitempty" json:"shareCapWith,omitempty"`

	MinSpend float64 `yaml:"minSpend,omitempty" json:"minSpend,omitempty"`

	// MonthlyMinSpend is display-only metadata: there is no persisted
	// monthly spend accumulation to check it against.
	MonthlyMinSpend float64 `yaml:"monthlyMinSpend,omitempty" json:"monthlyMinSpend,omitempty"`

	IsForeignCurrency bool `yaml:"isForeignCurrency,omitempty" json:"isForeignCurrency,omitempty"`

	ExcludeCategories     []string `yaml:"excludeCategories,omitempty" json:"excludeCategories,omitempty"`
	ExcludePaymentMethods []string `yaml:"excludePaymentMethods,omitempty" json:"excludePaymentMethods,omitempty"`

	// ValidDays are weekdays (0=Sunday .. 6=Saturday), ValidDates are days
	// of the month (1-31). Empty means no constraint.
	ValidDays      []int      `yaml:"validDays,omitempty" json:"validDays,omitempty"`
	ValidDates     []int      `yaml:"validDates,omitempty" json:"validDates,omitempty"`
	ValidDateRange *DateRange `yaml:"validDateRange,omitempty" json:"validDateRange,omitempty"`

	RequiresRegistration bool `yaml:"requiresRegistration,omitempty" json:"requiresRegistration,omitempty"`
}

// EffectiveCapType returns the cap type, defaulting to spending.
func (r *RewardRule) EffectiveCapType() CapType {
	if r.CapType == CapReward {
		return CapReward
	}
	return CapSpending
}

// MatchesValue reports whether v is one of the rule's match values.
func (r *RewardRule) MatchesValue(v string) bool {
	for _, mv := range r.MatchValue {
		if mv == v {
			return true
		}
	}
	return false
}

// Card is a financial instrument with an ordered (but order-irrelevant) rule
// set and a flat foreign currency fee percentage.
type Card struct {
	ID                 string       `yaml:"id" json:"id"`
	Name               string       `yaml:"name" json:"name"`
	Bank               string       `yaml:"bank" json:"bank"`
	Rules              []RewardRule `yaml:"rules" json:"rules"`
	ForeignCurrencyFee float64      `yaml:"foreignCurrencyFee,omitempty" json:"foreignCurrencyFee,omitempty"`
	AnnualFee          float64      `yaml:"annualFee,omitempty" json:"annualFee,omitempty"`

	// Hidden cards are still evaluable but excluded from leaderboards.
	Hidden bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Merchant is a known spending target with free-text aliases and category
// memberships.
type Merchant struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	CategoryIDs []string `yaml:"categoryIds" json:"categoryIds"`
	Aliases     []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// InCategory reports whether the merchant belongs to the given category.
func (m *Merchant) InCategory(categoryID string) bool {
	for _, id := range m.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Category is a canonical spending category.
type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}
