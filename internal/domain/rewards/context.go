// Package rewards implements the rule-matching and cap-accounting engine:
// given a resolved transaction context it finds each card's best reward rule,
// derives upsell suggestions by re-running itself under perturbed inputs,
// nets out foreign currency fees and ranks the card pool.
//
// Everything in this package is pure: the same context always produces the
// same result, and evaluation time is part of the context rather than read
// from the wall clock.
package rewards

import (
	"time"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

// Well-known payment method identifiers.
const (
	// PaymentPhysicalCard is the sentinel for paying with the plastic card
	// itself. Payment method suggestions are only attempted for it (or for
	// an unspecified method).
	PaymentPhysicalCard = "physical_card"

	// PaymentOnline marks an online checkout; it force-matches rules for
	// the "online" category.
	PaymentOnline = "online"

	// MobileAlias is the generic token rules use to mean "any mobile
	// wallet" in their match values.
	MobileAlias = "mobile"
)

// OnlineCategoryID is the category whose rules are gated on the transaction
// actually happening online.
const OnlineCategoryID = "online"

// mobileWallets is the closed set the generic "mobile" token expands to.
// This is a documented alias expansion, not configuration.
var mobileWallets = map[string]bool{
	"apple_pay":   true,
	"google_pay":  true,
	"samsung_pay": true,
	"boc_pay":     true,
}

// IsMobileWallet reports whether method is one of the known mobile wallets.
func IsMobileWallet(method string) bool {
	return mobileWallets[method]
}

// Context is one spending scenario to evaluate a card against. Merchant and
// Category may both be nil when free-text resolution found nothing; base
// rules still apply.
type Context struct {
	Merchant          *catalog.Merchant
	Category          *catalog.Category
	PaymentMethod     string
	Amount            float64
	IsForeignCurrency bool

	// IsOnline marks the scenario as an online purchase even when the
	// payment method alone does not imply it.
	IsOnline bool

	// Now is the evaluation time used for weekday, day-of-month and date
	// range gates.
	Now time.Time
}

// WithPaymentMethod returns a copy of the context with the payment method
// swapped. Used by the suggestion generator to probe alternatives.
func (c Context) WithPaymentMethod(method string) Context {
	c.PaymentMethod = method
	return c
}

// WithAmount returns a copy of the context with the amount swapped.
func (c Context) WithAmount(amount float64) Context {
	c.Amount = amount
	return c
}

// physicalPayment reports whether the scenario pays by physical card
// (explicitly or by omission).
func (c Context) physicalPayment() bool {
	return c.PaymentMethod == "" || c.PaymentMethod == PaymentPhysicalCard
}
