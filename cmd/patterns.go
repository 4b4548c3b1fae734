package cmd

import (
	"context"
	"fmt"

	"local-tp/core/config"
	"local-tp/core/pattern"
	"local-tp/core/reconcile"
	"local-tp/feature/lookup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the patterns command
	patternsNPA string
	patternsNXX string
)

// patternsCmd computes and prints the required translation patterns
// without contacting Webex Calling. No token is needed.
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print the translation patterns required for a gateway NPA/NXX",
	Long: `Compute the translation patterns covering all NPA/NXXes local to the given
gateway NPA/NXX and print them. Webex Calling is never contacted.

Example:
  local-tp patterns --npa 816 --nxx 221`,
	RunE: runPatterns,
}

func init() {
	patternsCmd.Flags().StringVar(&patternsNPA, "npa", "", "NPA of the gateway location")
	patternsCmd.Flags().StringVar(&patternsNXX, "nxx", "", "NXX of the gateway location")
	_ = patternsCmd.MarkFlagRequired("npa")
	_ = patternsCmd.MarkFlagRequired("nxx")

	RootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := newLogger(cfg)
	if err != nil {
		return err
	}

	rules, err := computeRules(ctx, cfg, l, patternsNPA, patternsNXX)
	if err != nil {
		return err
	}

	printRules(rules)
	return nil
}

// computeRules fetches the local calling area for an NPA/NXX and builds
// the desired rule set, enforcing the rule ceiling.
func computeRules(ctx context.Context, cfg *config.Config, l *zap.Logger, npa, nxx string) ([]pattern.Rule, error) {
	client := lookup.NewClient(cfg.Lookup)
	prefixes, err := client.LocalPrefixes(ctx, npa, nxx)
	if err != nil {
		return nil, err
	}
	l.Debug("retrieved local calling area",
		zap.String("npa", npa),
		zap.String("nxx", nxx),
		zap.Int("prefixes", len(prefixes)))

	rules, err := pattern.Build(prefixes)
	if err != nil {
		return nil, err
	}

	if err := reconcile.ValidateRuleCount(len(rules)); err != nil {
		return nil, err
	}
	return rules, nil
}

// printRules prints the rule listing with aligned columns.
func printRules(rules []pattern.Rule) {
	fmt.Printf("%d patterns are required\n", len(rules))

	width := 0
	for _, r := range rules {
		if len(r.MatchingPattern) > width {
			width = len(r.MatchingPattern)
		}
	}
	for _, r := range rules {
		fmt.Printf("%-9s: %-*s -> %s\n", r.Name, width, r.MatchingPattern, r.ReplacementPattern)
	}
}
