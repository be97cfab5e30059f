package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogDir(t *testing.T, cards, merchants, categories string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.yaml"), []byte(cards), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merchants.yaml"), []byte(merchants), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(categories), 0o644))
	return dir
}

const validCards = `
- id: red-card
  name: Red Card
  bank: Red Bank
  foreignCurrencyFee: 1.95
  rules:
    - description: Base rebate
      matchType: base
      percentage: 0.4
    - description: Dining 5%
      matchType: category
      matchValue: [dining]
      percentage: 5
      cap: 250
      capType: reward
      minSpend: 300
      validDays: [5, 6, 0]
    - description: Summer promo
      matchType: merchant
      matchValue: [starbucks]
      percentage: 10
      validDateRange:
        start: 2026-06-01
        end: 2026-08-31
`

const validMerchants = `
- id: starbucks
  name: Starbucks
  categoryIds: [dining]
  aliases: [sbux]
`

const validCategories = `
- id: dining
  name: Dining
`

func TestYAMLLoader_Load(t *testing.T) {
	dir := writeCatalogDir(t, validCards, validMerchants, validCategories)

	cat, err := YAMLLoader{Dir: dir}.Load()
	require.NoError(t, err)

	require.Len(t, cat.Cards(), 1)
	card := cat.Cards()[0]
	assert.Equal(t, "red-card", card.ID)
	assert.Equal(t, 1.95, card.ForeignCurrencyFee)
	require.Len(t, card.Rules, 3)

	dining := card.Rules[1]
	assert.Equal(t, MatchCategory, dining.MatchType)
	assert.Equal(t, CapReward, dining.CapType)
	assert.Equal(t, []int{5, 6, 0}, dining.ValidDays)

	promo := card.Rules[2]
	require.NotNil(t, promo.ValidDateRange)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), promo.ValidDateRange.Start)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), promo.ValidDateRange.End)

	require.Len(t, cat.Merchants(), 1)
	assert.Equal(t, []string{"dining"}, cat.Merchants()[0].CategoryIDs)
}

func TestYAMLLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.yaml"), []byte("[]"), 0o644))

	_, err := YAMLLoader{Dir: dir}.Load()
	assert.Error(t, err)
}

func TestYAMLLoader_DuplicateCardID(t *testing.T) {
	cards := `
- id: dupe
  name: One
  bank: B
  rules: []
- id: dupe
  name: Two
  bank: B
  rules: []
`
	dir := writeCatalogDir(t, cards, "[]", "[]")

	_, err := YAMLLoader{Dir: dir}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate card id")
}

func TestYAMLLoader_UnknownMatchType(t *testing.T) {
	cards := `
- id: c
  name: C
  bank: B
  rules:
    - description: Broken
      matchType: telepathy
      percentage: 1
`
	dir := writeCatalogDir(t, cards, "[]", "[]")

	_, err := YAMLLoader{Dir: dir}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown match type")
}

func TestYAMLLoader_NegativePercentage(t *testing.T) {
	cards := `
- id: c
  name: C
  bank: B
  rules:
    - description: Broken
      matchType: base
      percentage: -1
`
	dir := writeCatalogDir(t, cards, "[]", "[]")

	_, err := YAMLLoader{Dir: dir}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative percentage")
}

func TestYAMLLoader_RewardCapNeedsPercentage(t *testing.T) {
	cards := `
- id: c
  name: C
  bank: B
  rules:
    - description: Broken
      matchType: base
      percentage: 0
      cap: 100
      capType: reward
`
	dir := writeCatalogDir(t, cards, "[]", "[]")

	_, err := YAMLLoader{Dir: dir}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reward cap with zero percentage")
}

func TestYAMLLoader_InvalidDateRange(t *testing.T) {
	cards := `
- id: c
  name: C
  bank: B
  rules:
    - description: Broken
      matchType: base
      percentage: 1
      validDateRange:
        start: 2026-08-31
        end: 2026-06-01
`
	dir := writeCatalogDir(t, cards, "[]", "[]")

	_, err := YAMLLoader{Dir: dir}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start")
}
