package cli

import (
	"fmt"
	"slices"
	"strings"

	"wiserate/internal/app"
	"wiserate/internal/currency"
	"wiserate/internal/domain"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [PAIRS...]",
		Short: "Force-refresh cached rates",
		Long: "Force-refresh cached rates. Pairs are given as SOURCE/TARGET; without " +
			"arguments every pair with an alert or a cached rate is refreshed.",
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			pairs, err := updateTargets(a, args)
			if err != nil {
				return err
			}
			if len(pairs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update")
				return nil
			}

			results := a.Exchange.UpdateAll(cmd.Context(), pairs)

			slices.SortFunc(pairs, func(x, y domain.Pair) int {
				return strings.Compare(x.Key(), y.Key())
			})
			failed := 0
			for _, pair := range pairs {
				outcome := results[pair]
				if outcome.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: update failed: %v\n", pair, outcome.Err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), outcome.Rate)
			}

			if failed == len(pairs) {
				return fmt.Errorf("all %d updates failed", failed)
			}
			return nil
		}),
	}
}

// updateTargets resolves which pairs to refresh: explicit SOURCE/TARGET
// arguments, or everything the tool currently knows about.
func updateTargets(a *app.App, args []string) ([]domain.Pair, error) {
	if len(args) > 0 {
		pairs := make([]domain.Pair, 0, len(args))
		for _, arg := range args {
			source, target, ok := strings.Cut(arg, "/")
			if !ok {
				return nil, fmt.Errorf("%w: pair %q must look like SOURCE/TARGET", domain.ErrValidation, arg)
			}
			pair, err := currency.ParsePair(source, target)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
		return pairs, nil
	}

	seen := make(map[domain.Pair]struct{})
	var pairs []domain.Pair
	for _, al := range a.Alerts.List() {
		if _, ok := seen[al.Pair]; !ok {
			seen[al.Pair] = struct{}{}
			pairs = append(pairs, al.Pair)
		}
	}
	for _, rate := range a.Exchange.Snapshot() {
		if _, ok := seen[rate.Pair]; !ok {
			seen[rate.Pair] = struct{}{}
			pairs = append(pairs, rate.Pair)
		}
	}
	return pairs, nil
}
