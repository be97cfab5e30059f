package catalog

import "strings"

// Catalog is the immutable, injected lookup the evaluator runs against.
type Catalog struct {
	cards      []Card
	merchants  []Merchant
	categories []Category

	cardsByID      map[string]*Card
	merchantsByID  map[string]*Merchant
	categoriesByID map[string]*Category
}

// New builds a Catalog from plain data. The slices are not copied; callers
// must not mutate them after handing them over.
func New(cards []Card, merchants []Merchant, categories []Category) *Catalog {
	c := &Catalog{
		cards:          cards,
		merchants:      merchants,
		categories:     categories,
		cardsByID:      make(map[string]*Card, len(cards)),
		merchantsByID:  make(map[string]*Merchant, len(merchants)),
		categoriesByID: make(map[string]*Category, len(categories)),
	}
	for i := range cards {
		c.cardsByID[cards[i].ID] = &cards[i]
	}
	for i := range merchants {
		c.merchantsByID[merchants[i].ID] = &merchants[i]
	}
	for i := range categories {
		c.categoriesByID[categories[i].ID] = &categories[i]
	}
	return c
}

// Cards returns all cards in catalog order.
func (c *Catalog) Cards() []Card { return c.cards }

// Merchants returns all merchants in catalog order.
func (c *Catalog) Merchants() []Merchant { return c.merchants }

// Categories returns all categories in catalog order.
func (c *Catalog) Categories() []Category { return c.categories }

// Card looks up a card by ID.
func (c *Catalog) Card(id string) (*Card, bool) {
	card, ok := c.cardsByID[id]
	return card, ok
}

// Merchant looks up a merchant by ID.
func (c *Catalog) Merchant(id string) (*Merchant, bool) {
	m, ok := c.merchantsByID[id]
	return m, ok
}

// Category looks up a category by ID.
func (c *Catalog) Category(id string) (*Category, bool) {
	cat, ok := c.categoriesByID[id]
	return cat, ok
}

// Resolve maps free query text to a merchant and/or category.
//
// Two passes keep "first match wins" reproducible: an exact ID match is
// preferred, then a case-insensitive containment scan over merchant names and
// aliases (either direction) and category names. A nil result is a valid
// outcome, not an error; callers fall back to base-type rules.
func (c *Catalog) Resolve(query string) (*Merchant, *Category) {
	q := normalize(query)
	if q == "" {
		return nil, nil
	}
	return c.resolveMerchant(q), c.resolveCategory(q)
}

func (c *Catalog) resolveMerchant(q string) *Merchant {
	if m, ok := c.merchantsByID[q]; ok {
		return m
	}
	for i := range c.merchants {
		m := &c.merchants[i]
		if containsEither(normalize(m.Name), q) {
			return m
		}
		for _, alias := range m.Aliases {
			if containsEither(normalize(alias), q) {
				return m
			}
		}
	}
	return nil
}

func (c *Catalog) resolveCategory(q string) *Category {
	if cat, ok := c.categoriesByID[q]; ok {
		return cat
	}
	for i := range c.categories {
		cat := &c.categories[i]
		if containsEither(normalize(cat.Name), q) {
			return cat
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsEither matches substring in either direction so that both
// "starbucks reserve" finds the "starbucks" alias and "star" finds the
// "starbucks" merchant name.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
