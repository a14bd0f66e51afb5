package main

import (
	"fmt"
	"log/slog"
	"time"

	"teetime/internal/domain/pricing"

	"github.com/spf13/cobra"
)

type quoteFlags struct {
	slotID      int64
	startsAt    string
	basePrice   int64
	clock       string
	rainMm      float64
	precipPct   int
	segment     string
	proximityKm float64
}

func newQuoteCmd(calculator pricing.Calculator) *cobra.Command {
	var f quoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one tee time from flags",
		Example: `  pricectl quote --slot-id 42 --starts-at 2026-05-01T07:30:00Z \
    --base-price 100000 --clock 2026-05-01T06:10:00Z --segment PRESTIGE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := f.toPricingContext(cmd)
			if err != nil {
				return err
			}
			slog.Debug("Pricing context", "slot_id", pc.Slot.ID, "starts_at", pc.Slot.StartsAt, "clock", pc.Clock,
				"customer", pc.Customer != nil, "weather", pc.Weather != nil, "proximity", pc.ProximityKm != nil)
			return writeJSON(cmd.OutOrStdout(), calculator.Calculate(pc))
		},
	}

	cmd.Flags().Int64Var(&f.slotID, "slot-id", 0, "tee time ID (seeds the panic-mode generator)")
	cmd.Flags().StringVar(&f.startsAt, "starts-at", "", "tee-off time, RFC 3339")
	cmd.Flags().Int64Var(&f.basePrice, "base-price", 0, "list price in KRW")
	cmd.Flags().StringVar(&f.clock, "clock", "", "pricing instant, RFC 3339")
	cmd.Flags().Float64Var(&f.rainMm, "rain-mm", 0, "observed rainfall in mm")
	cmd.Flags().IntVar(&f.precipPct, "precip-pct", 0, "precipitation probability in percent")
	cmd.Flags().StringVar(&f.segment, "segment", "", "loyalty segment (FUTURE, SMART, CHERRY, PRESTIGE)")
	cmd.Flags().Float64Var(&f.proximityKm, "proximity-km", 0, "customer distance to the course in km")

	for _, name := range []string{"slot-id", "starts-at", "base-price", "clock"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// Optional inputs are only set when their flag was given, so an omitted
// --segment prices as an anonymous customer rather than an invalid one.
func (f quoteFlags) toPricingContext(cmd *cobra.Command) (pricing.PricingContext, error) {
	startsAt, err := time.Parse(time.RFC3339, f.startsAt)
	if err != nil {
		return pricing.PricingContext{}, fmt.Errorf("invalid --starts-at: %w", err)
	}
	clock, err := time.Parse(time.RFC3339, f.clock)
	if err != nil {
		return pricing.PricingContext{}, fmt.Errorf("invalid --clock: %w", err)
	}

	pc := pricing.PricingContext{
		Slot: pricing.TimeSlot{
			ID:        f.slotID,
			StartsAt:  startsAt,
			BasePrice: f.basePrice,
		},
		Clock: clock,
	}

	flags := cmd.Flags()
	if flags.Changed("segment") {
		segment, err := pricing.ParseLoyaltySegment(f.segment)
		if err != nil {
			return pricing.PricingContext{}, fmt.Errorf("invalid --segment %q: %w", f.segment, err)
		}
		pc.Customer = &pricing.Customer{LoyaltySegment: segment}
	}
	if flags.Changed("rain-mm") || flags.Changed("precip-pct") {
		pc.Weather = &pricing.WeatherSnapshot{
			RainfallMm:                  f.rainMm,
			PrecipitationProbabilityPct: f.precipPct,
		}
	}
	if flags.Changed("proximity-km") {
		km := f.proximityKm
		pc.ProximityKm = &km
	}

	return pc, nil
}
