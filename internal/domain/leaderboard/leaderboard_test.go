package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

func boardCatalog(cards ...catalog.Card) *catalog.Catalog {
	return catalog.New(cards, nil, []catalog.Category{
		{ID: "dining", Name: "Dining"},
		{ID: "online", Name: "Online Shopping"},
	})
}

func diningCard(id string, pct float64) catalog.Card {
	return catalog.Card{
		ID:   id,
		Name: id,
		Rules: []catalog.RewardRule{{
			Description: "Dining rebate",
			MatchType:   catalog.MatchCategory,
			MatchValue:  []string{"dining"},
			Percentage:  pct,
		}},
	}
}

func TestRankByCategory_OrdersByPercentage(t *testing.T) {
	cat := boardCatalog(
		diningCard("low", 2),
		diningCard("high", 8),
		diningCard("mid", 5),
	)

	entries, err := RankByCategory("dining", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "high", entries[0].Card.ID)
	assert.Equal(t, "mid", entries[1].Card.ID)
	assert.Equal(t, "low", entries[2].Card.ID)
}

func TestRankByCategory_UnknownCategory(t *testing.T) {
	_, err := RankByCategory("lottery", 0, boardCatalog())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestRankByCategory_ExcludesDiscountRules(t *testing.T) {
	discounter := catalog.Card{
		ID:   "discounter",
		Name: "Discounter",
		Rules: []catalog.RewardRule{{
			Description: "Dining 20% off",
			MatchType:   catalog.MatchCategory,
			MatchValue:  []string{"dining"},
			Percentage:  20,
			IsDiscount:  true,
		}},
	}
	cat := boardCatalog(discounter, diningCard("rebater", 3))

	entries, err := RankByCategory("dining", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rebater", entries[0].Card.ID)
}

func TestRankByCategory_ExcludesHiddenCards(t *testing.T) {
	hidden := diningCard("hidden", 9)
	hidden.Hidden = true
	cat := boardCatalog(hidden, diningCard("visible", 3))

	entries, err := RankByCategory("dining", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Card.ID)
}

func TestRankByCategory_TieBreakPrefersCapHeadroom(t *testing.T) {
	tight := diningCard("tight", 5)
	tight.Rules[0].Cap = 1000
	roomy := diningCard("roomy", 5)
	roomy.Rules[0].Cap = 5000
	uncapped := diningCard("uncapped", 5)

	cat := boardCatalog(tight, roomy, uncapped)

	entries, err := RankByCategory("dining", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "uncapped", entries[0].Card.ID)
	assert.Equal(t, "roomy", entries[1].Card.ID)
	assert.Equal(t, "tight", entries[2].Card.ID)
}

func TestRankByCategory_ForeignNetsCardFee(t *testing.T) {
	flashy := catalog.Card{
		ID:                 "flashy",
		Name:               "Flashy",
		ForeignCurrencyFee: 1.95,
		Rules: []catalog.RewardRule{{
			Description:       "Overseas 5%",
			MatchType:         catalog.MatchBase,
			Percentage:        5,
			IsForeignCurrency: true,
		}},
	}
	feeFree := catalog.Card{
		ID:   "feefree",
		Name: "Fee Free",
		Rules: []catalog.RewardRule{{
			Description:       "Overseas 4%",
			MatchType:         catalog.MatchBase,
			Percentage:        4,
			IsForeignCurrency: true,
		}},
	}
	cat := boardCatalog(flashy, feeFree)

	entries, err := RankByCategory("overseas", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// 4% net beats 5% nominal minus the 1.95% fee.
	assert.Equal(t, "feefree", entries[0].Card.ID)
	assert.Equal(t, 4.0, entries[0].NetPercentage)
	assert.Equal(t, "flashy", entries[1].Card.ID)
	assert.InDelta(t, 3.05, entries[1].NetPercentage, 1e-9)
	assert.Equal(t, 5.0, entries[1].Percentage)
}

func TestRankByCategory_MobilePaymentBoard(t *testing.T) {
	walletCard := catalog.Card{
		ID:   "wallet",
		Name: "Wallet",
		Rules: []catalog.RewardRule{{
			Description: "Mobile 4%",
			MatchType:   catalog.MatchPaymentMethod,
			MatchValue:  []string{"mobile"},
			Percentage:  4,
		}},
	}
	cat := boardCatalog(walletCard, diningCard("diner", 8))

	entries, err := RankByCategory("mobile_payment", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wallet", entries[0].Card.ID)
}

func TestRankByCategory_AllRoundBoardWantsBaseRules(t *testing.T) {
	flat := catalog.Card{
		ID:    "flat",
		Name:  "Flat",
		Rules: []catalog.RewardRule{{Description: "Base 1.5%", MatchType: catalog.MatchBase, Percentage: 1.5}},
	}
	cat := boardCatalog(flat, diningCard("diner", 8))

	entries, err := RankByCategory("all_round", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "flat", entries[0].Card.ID)
}

func TestRankByCategory_LimitTrims(t *testing.T) {
	cat := boardCatalog(
		diningCard("a", 1), diningCard("b", 2), diningCard("c", 3), diningCard("d", 4),
	)

	entries, err := RankByCategory("dining", 2, cat)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "d", entries[0].Card.ID)
	assert.Equal(t, "c", entries[1].Card.ID)
}

func TestRankByCategory_Conditions(t *testing.T) {
	card := catalog.Card{
		ID:                 "fineprint",
		Name:               "Fine Print",
		ForeignCurrencyFee: 1.95,
		Rules: []catalog.RewardRule{{
			Description:          "Dining 6%",
			MatchType:            catalog.MatchCategory,
			MatchValue:           []string{"dining"},
			Percentage:           6,
			Cap:                  300,
			CapType:              catalog.CapReward,
			MinSpend:             500,
			MonthlyMinSpend:      8000,
			ValidDays:            []int{1, 3},
			RequiresRegistration: true,
		}},
	}
	cat := boardCatalog(card)

	entries, err := RankByCategory("dining", 0, cat)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, 5000.0, e.CapAsSpending)
	assert.Contains(t, e.Conditions, "Min spend $500 per transaction")
	assert.Contains(t, e.Conditions, "Requires $8,000 monthly spend")
	assert.Contains(t, e.Conditions, "Monthly reward cap $300")
	assert.Contains(t, e.Conditions, "Only on Mon/Wed")
	assert.Contains(t, e.Conditions, "Registration required")
	assert.Contains(t, e.Conditions, "1.95% foreign currency fee")
}

func TestRankAll_CoversEveryCategory(t *testing.T) {
	cat := boardCatalog(diningCard("diner", 5))

	all := RankAll(0, cat)
	assert.Len(t, all, len(Categories))
	assert.Len(t, all["dining"], 1)
	assert.Empty(t, all["travel"])
}

func TestCategoryLookups(t *testing.T) {
	cfg, ok := CategoryByID("dining")
	require.True(t, ok)
	assert.Equal(t, "best-dining-cards", cfg.Slug)

	bySlug, ok := CategoryBySlug("best-dining-cards")
	require.True(t, ok)
	assert.Equal(t, "dining", bySlug.ID)

	_, ok = CategoryByID("nope")
	assert.False(t, ok)
}
