// Command bestcard answers "which card should I pay with" from the terminal.
//
//	bestcard -query starbucks -amount 250 -payment apple_pay
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pickcard/rewards-backend/internal/catalog"
	"github.com/pickcard/rewards-backend/internal/domain/rewards"
	"github.com/pickcard/rewards-backend/internal/infrastructure/config"
	"github.com/pickcard/rewards-backend/internal/infrastructure/logging"
)

func main() {
	query := flag.String("query", "", "merchant or category to look up")
	amount := flag.Float64("amount", 0, "transaction amount")
	payment := flag.String("payment", "", "payment method (apple_pay, physical_card, ...)")
	foreign := flag.Bool("foreign", false, "foreign currency transaction")
	online := flag.Bool("online", false, "online transaction")
	cardIDs := flag.String("cards", "", "comma-separated card IDs to restrict the pool")
	top := flag.Int("top", 5, "number of cards to show")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "bestcard")

	var loader catalog.Loader
	if cfg.Catalog.SQLitePath != "" {
		loader = &catalog.SQLiteLoader{Path: cfg.Catalog.SQLitePath}
	} else {
		loader = &catalog.YAMLLoader{Dir: cfg.Catalog.Dir}
	}
	cat, err := loader.Load()
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	opts := rewards.Options{
		Amount:            *amount,
		PaymentMethod:     *payment,
		IsForeignCurrency: *foreign,
		IsOnline:          *online,
	}
	if *cardIDs != "" {
		for _, id := range strings.Split(*cardIDs, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				opts.CardIDs = append(opts.CardIDs, trimmed)
			}
		}
	}

	results, err := rewards.FindBestCards(*query, opts, cat)
	if err != nil {
		logger.Error("calculation failed", "error", err)
		os.Exit(1)
	}
	if len(results) > *top {
		results = results[:*top]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CARD\tRULE\tRATE\tREWARD\tNET\tNOTES")
	for _, r := range results {
		var notes []string
		if r.Capped {
			notes = append(notes, "capped")
		}
		if r.PaymentSuggestion != nil {
			notes = append(notes, fmt.Sprintf("try %s for $%.2f", r.PaymentSuggestion.Method, r.PaymentSuggestion.RewardAmount))
		}
		if r.SpendSuggestion != nil {
			notes = append(notes, fmt.Sprintf("spend $%.0f for %.4g%%", r.SpendSuggestion.TargetAmount, r.SpendSuggestion.Percentage))
		}
		if r.DiscountRule != nil {
			notes = append(notes, fmt.Sprintf("plus %.4g%% discount", r.DiscountPercentage))
		}
		fmt.Fprintf(w, "%s\t%s\t%.4g%%\t$%.2f\t$%.2f\t%s\n",
			r.Card.Name,
			r.MatchedRule.Description,
			r.Percentage,
			r.RewardAmount,
			r.NetRewardAmount,
			strings.Join(notes, "; "))
	}
	w.Flush()
}
