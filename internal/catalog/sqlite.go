package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLoader loads the catalog from a SQLite database. The schema mirrors
// the admin-side card database: one row per card, one row per rule, with
// list-valued fields stored as JSON.
type SQLiteLoader struct {
	Path string
}

// NewSQLiteLoader creates a loader for the database at path.
func NewSQLiteLoader(path string) SQLiteLoader {
	return SQLiteLoader{Path: path}
}

// Load opens the database read-only, reads all catalog tables and closes it.
func (l SQLiteLoader) Load() (*Catalog, error) {
	db, err := sql.Open("sqlite3", l.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	defer db.Close()

	cards, err := loadCards(db)
	if err != nil {
		return nil, err
	}
	merchants, err := loadMerchants(db)
	if err != nil {
		return nil, err
	}
	categories, err := loadCategories(db)
	if err != nil {
		return nil, err
	}

	if err := validate(cards, merchants, categories); err != nil {
		return nil, err
	}

	return New(cards, merchants, categories), nil
}

func loadCards(db *sql.DB) ([]Card, error) {
	rows, err := db.Query(`
		SELECT id, name, bank, foreign_currency_fee, annual_fee, hidden
		FROM cards
		WHERE is_active = 1
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []Card
	byID := make(map[string]int)
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Name, &c.Bank, &c.ForeignCurrencyFee, &c.AnnualFee, &c.Hidden); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		byID[c.ID] = len(cards)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachRules(db, cards, byID); err != nil {
		return nil, err
	}
	return cards, nil
}

func attachRules(db *sql.DB, cards []Card, byID map[string]int) error {
	rows, err := db.Query(`
		SELECT card_id, description, match_type, match_values, percentage,
		       is_discount, cap, cap_type, share_cap_with,
		       min_spend, monthly_min_spend, is_foreign_currency,
		       exclude_categories, exclude_payment_methods,
		       valid_days, valid_dates, valid_from, valid_until,
		       requires_registration
		FROM card_rules
		WHERE is_active = 1
		ORDER BY card_id, priority`)
	if err != nil {
		return fmt.Errorf("query card rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cardID     string
			rule       RewardRule
			capType    sql.NullString
			matchVals  sql.NullString
			exclCats   sql.NullString
			exclPM     sql.NullString
			validDays  sql.NullString
			validDates sql.NullString
			validFrom  sql.NullString
			validUntil sql.NullString
		)
		err := rows.Scan(&cardID, &rule.Description, &rule.MatchType, &matchVals,
			&rule.Percentage, &rule.IsDiscount, &rule.Cap, &capType, &rule.ShareCapWith,
			&rule.MinSpend, &rule.MonthlyMinSpend, &rule.IsForeignCurrency,
			&exclCats, &exclPM, &validDays, &validDates, &validFrom, &validUntil,
			&rule.RequiresRegistration)
		if err != nil {
			return fmt.Errorf("scan card rule: %w", err)
		}

		rule.CapType = CapType(capType.String)
		if err := decodeJSONList(matchVals, &rule.MatchValue); err != nil {
			return fmt.Errorf("rule %q match_values: %w", rule.Description, err)
		}
		if err := decodeJSONList(exclCats, &rule.ExcludeCategories); err != nil {
			return fmt.Errorf("rule %q exclude_categories: %w", rule.Description, err)
		}
		if err := decodeJSONList(exclPM, &rule.ExcludePaymentMethods); err != nil {
			return fmt.Errorf("rule %q exclude_payment_methods: %w", rule.Description, err)
		}
		if err := decodeJSONList(validDays, &rule.ValidDays); err != nil {
			return fmt.Errorf("rule %q valid_days: %w", rule.Description, err)
		}
		if err := decodeJSONList(validDates, &rule.ValidDates); err != nil {
			return fmt.Errorf("rule %q valid_dates: %w", rule.Description, err)
		}

		dr, err := decodeDateRange(validFrom, validUntil)
		if err != nil {
			return fmt.Errorf("rule %q date range: %w", rule.Description, err)
		}
		rule.ValidDateRange = dr

		idx, ok := byID[cardID]
		if !ok {
			// Rule for an inactive or unknown card; skip.
			continue
		}
		cards[idx].Rules = append(cards[idx].Rules, rule)
	}
	return rows.Err()
}

func loadMerchants(db *sql.DB) ([]Merchant, error) {
	rows, err := db.Query(`SELECT id, name, category_ids, aliases FROM merchants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query merchants: %w", err)
	}
	defer rows.Close()

	var merchants []Merchant
	for rows.Next() {
		var (
			m       Merchant
			catIDs  sql.NullString
			aliases sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Name, &catIDs, &aliases); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		if err := decodeJSONList(catIDs, &m.CategoryIDs); err != nil {
			return nil, fmt.Errorf("merchant %q category_ids: %w", m.ID, err)
		}
		if err := decodeJSONList(aliases, &m.Aliases); err != nil {
			return nil, fmt.Errorf("merchant %q aliases: %w", m.ID, err)
		}
		merchants = append(merchants, m)
	}
	return merchants, rows.Err()
}

func loadCategories(db *sql.DB) ([]Category, error) {
	rows, err := db.Query(`SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func decodeJSONList[T any](col sql.NullString, out *[]T) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), out)
}

func decodeDateRange(from, until sql.NullString) (*DateRange, error) {
	if !from.Valid || from.String == "" || !until.Valid || until.String == "" {
		return nil, nil
	}
	start, err := time.Parse(dateLayout, from.String)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateLayout, until.String)
	if err != nil {
		return nil, err
	}
	return &DateRange{Start: start, End: end}, nil
}
