package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"teetime/internal/domain/pricing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errReplayMismatch = errors.New("replayed price differs from the recorded price")

// replayInput is one persisted pricing input. ExpectedFinalPrice, when set,
// is the price recorded at purchase time and is checked against the replay.
type replayInput struct {
	Name string `yaml:"name"`
	Slot struct {
		ID        int64  `yaml:"id"`
		StartsAt  string `yaml:"startsAt"`
		BasePrice int64  `yaml:"basePrice"`
	} `yaml:"slot"`
	Segment string `yaml:"segment"`
	Weather *struct {
		RainfallMm                  float64 `yaml:"rainfallMm"`
		PrecipitationProbabilityPct int     `yaml:"precipitationProbabilityPct"`
	} `yaml:"weather"`
	ProximityKm        *float64 `yaml:"proximityKm"`
	Clock              string   `yaml:"clock"`
	ExpectedFinalPrice *int64   `yaml:"expectedFinalPrice"`
}

type replayOutput struct {
	Name     string         `json:"name,omitempty"`
	Result   pricing.Result `json:"result"`
	Matches  *bool          `json:"matches,omitempty"`
	Recorded *int64         `json:"recordedFinalPrice,omitempty"`
}

func newReplayCmd(calculator pricing.Calculator) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Recompute prices from persisted inputs",
		Long: `Reads a YAML file holding one pricing input (a mapping) or many (a sequence)
and prints the recomputed results. Inputs carrying expectedFinalPrice are
checked, and any mismatch makes the command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open replay input: %w", err)
			}
			defer r.Close()

			inputs, single, err := decodeReplayInputs(r)
			if err != nil {
				return err
			}
			return runReplay(cmd.OutOrStdout(), calculator, inputs, single)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with pricing inputs")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func decodeReplayInputs(r io.Reader) ([]replayInput, bool, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		return nil, false, fmt.Errorf("decode replay input: %w", err)
	}

	doc := &node
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	if doc.Kind == yaml.SequenceNode {
		var inputs []replayInput
		if err := doc.Decode(&inputs); err != nil {
			return nil, false, fmt.Errorf("decode replay inputs: %w", err)
		}
		return inputs, false, nil
	}

	var input replayInput
	if err := doc.Decode(&input); err != nil {
		return nil, false, fmt.Errorf("decode replay input: %w", err)
	}
	return []replayInput{input}, true, nil
}

func runReplay(w io.Writer, calculator pricing.Calculator, inputs []replayInput, single bool) error {
	outputs := make([]replayOutput, 0, len(inputs))
	mismatches := 0

	for i, in := range inputs {
		pc, err := in.toPricingContext()
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}

		out := replayOutput{Name: in.Name, Result: calculator.Calculate(pc)}
		if in.ExpectedFinalPrice != nil {
			matches := out.Result.FinalPrice == *in.ExpectedFinalPrice
			out.Matches = &matches
			out.Recorded = in.ExpectedFinalPrice
			if !matches {
				mismatches++
				slog.Warn("Replayed price differs", "input", i, "name", in.Name,
					"recorded", *in.ExpectedFinalPrice, "replayed", out.Result.FinalPrice)
			}
		}
		outputs = append(outputs, out)
	}

	var err error
	if single {
		err = writeJSON(w, outputs[0])
	} else {
		err = writeJSON(w, outputs)
	}
	if err != nil {
		return err
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d inputs: %w", mismatches, len(inputs), errReplayMismatch)
	}
	return nil
}

func (in replayInput) toPricingContext() (pricing.PricingContext, error) {
	startsAt, err := time.Parse(time.RFC3339, in.Slot.StartsAt)
	if err != nil {
		return pricing.PricingContext{}, fmt.Errorf("invalid slot.startsAt: %w", err)
	}
	clock, err := time.Parse(time.RFC3339, in.Clock)
	if err != nil {
		return pricing.PricingContext{}, fmt.Errorf("invalid clock: %w", err)
	}

	pc := pricing.PricingContext{
		Slot: pricing.TimeSlot{
			ID:        in.Slot.ID,
			StartsAt:  startsAt,
			BasePrice: in.Slot.BasePrice,
		},
		ProximityKm: in.ProximityKm,
		Clock:       clock,
	}

	if in.Segment != "" {
		segment, err := pricing.ParseLoyaltySegment(in.Segment)
		if err != nil {
			return pricing.PricingContext{}, fmt.Errorf("invalid segment %q: %w", in.Segment, err)
		}
		pc.Customer = &pricing.Customer{LoyaltySegment: segment}
	}
	if in.Weather != nil {
		pc.Weather = &pricing.WeatherSnapshot{
			RainfallMm:                  in.Weather.RainfallMm,
			PrecipitationProbabilityPct: in.Weather.PrecipitationProbabilityPct,
		}
	}

	return pc, nil
}
