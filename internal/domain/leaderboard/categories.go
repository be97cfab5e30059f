// Package leaderboard builds per-category, cross-card rankings: for a fixed
// category it finds each card's single best non-discount rule and orders the
// cards for display. Unlike the transaction evaluator it compares nominal
// percentages, not absolute rewards — there is no amount in a leaderboard.
package leaderboard

import "github.com/pickcard/rewards-backend/internal/catalog"

// Config describes one fixed leaderboard category and how rules qualify for
// it: by category-ID overlap, by the foreign currency flag, by payment
// method overlap, or as a catch-all base rate.
type Config struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	MatchCategories   []string          `json:"matchCategories,omitempty"`
	MatchType         catalog.MatchType `json:"matchType,omitempty"`
	PaymentMethods    []string          `json:"paymentMethods,omitempty"`
	IsForeignCurrency bool              `json:"isForeignCurrency,omitempty"`
}

// Categories is the closed set of leaderboards. Adding one is a code change,
// not configuration: the matching semantics per entry are hand-tuned.
var Categories = []Config{
	{
		ID:              "dining",
		Name:            "Dining",
		Slug:            "best-dining-cards",
		MatchCategories: []string{"dining"},
	},
	{
		ID:              "hkd_online",
		Name:            "Local Online Shopping",
		Slug:            "best-hkd-online-cards",
		MatchCategories: []string{"online"},
	},
	{
		ID:                "foreign_online",
		Name:              "Foreign Online Shopping",
		Slug:              "best-foreign-online-cards",
		MatchCategories:   []string{"online"},
		IsForeignCurrency: true,
	},
	{
		ID:              "supermarket",
		Name:            "Supermarket",
		Slug:            "best-supermarket-cards",
		MatchCategories: []string{"supermarket"},
	},
	{
		ID:              "travel",
		Name:            "Travel",
		Slug:            "best-travel-cards",
		MatchCategories: []string{"travel"},
	},
	{
		ID:                "overseas",
		Name:              "Overseas Spending",
		Slug:              "best-overseas-cards",
		IsForeignCurrency: true,
	},
	{
		ID:             "mobile_payment",
		Name:           "Mobile Payment",
		Slug:           "best-mobile-payment-cards",
		MatchType:      catalog.MatchPaymentMethod,
		PaymentMethods: []string{"mobile", "apple_pay", "google_pay"},
	},
	{
		ID:        "all_round",
		Name:      "All Round",
		Slug:      "best-all-round-cards",
		MatchType: catalog.MatchBase,
	},
}

// CategoryByID finds a leaderboard config by its ID.
func CategoryByID(id string) (Config, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Config{}, false
}

// CategoryBySlug finds a leaderboard config by its URL slug.
func CategoryBySlug(slug string) (Config, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Config{}, false
}
