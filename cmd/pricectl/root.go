package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"teetime/internal/domain/pricing"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "pricectl",
		Short:        "Offline tee-time pricing and audit replay",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pricing inputs to stderr")

	root.AddCommand(newQuoteCmd(pricing.NewEngine()))
	root.AddCommand(newReplayCmd(pricing.NewEngine()))

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
