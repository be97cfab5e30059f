package rewards

import (
	"time"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

// testNow is a Wednesday, the 11th of the month. Every temporal assertion in
// this package pins evaluation time to keep the engine's purity observable.
var testNow = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func testCategories() []catalog.Category {
	return []catalog.Category{
		{ID: "dining", Name: "Dining"},
		{ID: "online", Name: "Online Shopping"},
		{ID: "supermarket", Name: "Supermarket"},
		{ID: "travel", Name: "Travel"},
	}
}

func testMerchants() []catalog.Merchant {
	return []catalog.Merchant{
		{ID: "starbucks", Name: "Starbucks", CategoryIDs: []string{"dining"}, Aliases: []string{"starbucks coffee"}},
		{ID: "amazon", Name: "Amazon", CategoryIDs: []string{"online"}},
		{ID: "wellcome", Name: "Wellcome", CategoryIDs: []string{"supermarket"}},
	}
}

func testCatalog(cards ...catalog.Card) *catalog.Catalog {
	return catalog.New(cards, testMerchants(), testCategories())
}

func baseRule(pct float64) catalog.RewardRule {
	return catalog.RewardRule{
		Description: "Base rebate",
		MatchType:   catalog.MatchBase,
		Percentage:  pct,
	}
}

func diningCtx(amount float64) Context {
	merchants := testMerchants()
	categories := testCategories()
	return Context{
		Merchant: &merchants[0],
		Category: &categories[0],
		Amount:   amount,
		Now:      testNow,
	}
}
