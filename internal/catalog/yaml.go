package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads the catalog from a directory containing cards.yaml,
// merchants.yaml and categories.yaml.
type YAMLLoader struct {
	Dir string
}

// NewYAMLLoader creates a loader rooted at dir.
func NewYAMLLoader(dir string) YAMLLoader {
	return YAMLLoader{Dir: dir}
}

// Load reads and validates all three catalog files.
func (l YAMLLoader) Load() (*Catalog, error) {
	var cards []Card
	if err := readYAML(filepath.Join(l.Dir, "cards.yaml"), &cards); err != nil {
		return nil, err
	}
	var merchants []Merchant
	if err := readYAML(filepath.Join(l.Dir, "merchants.yaml"), &merchants); err != nil {
		return nil, err
	}
	var categories []Category
	if err := readYAML(filepath.Join(l.Dir, "categories.yaml"), &categories); err != nil {
		return nil, err
	}

	if err := validate(cards, merchants, categories); err != nil {
		return nil, err
	}

	return New(cards, merchants, categories), nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// validate rejects catalogs that would make evaluation ambiguous or
// silently wrong: duplicate IDs, negative percentages, unknown cap types.
func validate(cards []Card, merchants []Merchant, categories []Category) error {
	seen := make(map[string]bool)
	for _, card := range cards {
		if card.ID == "" {
			return fmt.Errorf("card %q has no id", card.Name)
		}
		if seen[card.ID] {
			return fmt.Errorf("duplicate card id %q", card.ID)
		}
		seen[card.ID] = true

		for _, rule := range card.Rules {
			if rule.Percentage < 0 {
				return fmt.Errorf("card %q: rule %q has negative percentage", card.ID, rule.Description)
			}
			switch rule.MatchType {
			case MatchBase, MatchMerchant, MatchCategory, MatchPaymentMethod:
			default:
				return fmt.Errorf("card %q: rule %q has unknown match type %q", card.ID, rule.Description, rule.MatchType)
			}
			switch rule.CapType {
			case "", CapSpending, CapReward:
			default:
				return fmt.Errorf("card %q: rule %q has unknown cap type %q", card.ID, rule.Description, rule.CapType)
			}
			if rule.EffectiveCapType() == CapReward && rule.Cap > 0 && rule.Percentage == 0 {
				return fmt.Errorf("card %q: rule %q has a reward cap with zero percentage", card.ID, rule.Description)
			}
		}
	}

	seen = make(map[string]bool)
	for _, m := range merchants {
		if m.ID == "" {
			return fmt.Errorf("merchant %q has no id", m.Name)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate merchant id %q", m.ID)
		}
		seen[m.ID] = true
	}

	seen = make(map[string]bool)
	for _, c := range categories {
		if c.ID == "" {
			return fmt.Errorf("category %q has no id", c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
	}

	return nil
}
