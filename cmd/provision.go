package cmd

import (
	"context"
	"errors"
	"fmt"

	"local-tp/core/config"
	"local-tp/core/logger"
	"local-tp/core/pattern"
	"local-tp/core/reconcile"
	"local-tp/feature/webex"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// Flags for the provision command
	provisionNPA      string
	provisionNXX      string
	provisionLocation string
	provisionToken    string
	provisionReadonly bool
)

// provisionCmd computes the required translation patterns and reconciles
// them against the patterns provisioned in a Webex Calling location.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision translation patterns for a gateway NPA/NXX into a location",
	Long: `Provision the translation patterns covering all NPA/NXXes local to the given
gateway NPA/NXX into a Webex Calling location.

Existing TP_* patterns in the location are reconciled: stale ones are deleted,
drifted ones updated and missing ones created. Patterns not named by this
tool's convention are never touched.

Examples:
  # Apply changes to the location
  local-tp provision --npa 816 --nxx 221 --location "Kansas City"

  # Show what would change without writing to Webex Calling
  local-tp provision --npa 816 --nxx 221 --location "Kansas City" --readonly`,
	RunE: runProvision,
}

func init() {
	provisionCmd.Flags().StringVar(&provisionNPA, "npa", "", "NPA of the gateway location")
	provisionCmd.Flags().StringVar(&provisionNXX, "nxx", "", "NXX of the gateway location")
	provisionCmd.Flags().StringVar(&provisionLocation, "location", "", "Webex Calling location owning the patterns")
	provisionCmd.Flags().StringVar(&provisionToken, "token", "", "Access token for the Webex Calling APIs")
	provisionCmd.Flags().BoolVar(&provisionReadonly, "readonly", false, "Don't write to Webex Calling; existing patterns are still read")
	_ = provisionCmd.MarkFlagRequired("npa")
	_ = provisionCmd.MarkFlagRequired("nxx")
	_ = provisionCmd.MarkFlagRequired("location")

	RootCmd.AddCommand(provisionCmd)
}

// newLogger builds the logger for a command run.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func runProvision(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if provisionToken != "" {
		cfg.Webex.Token = provisionToken
	}

	l, err := newLogger(cfg)
	if err != nil {
		return err
	}

	token, err := webex.NewTokenProvider(cfg.Webex, cfg.ServiceApp, l).AccessToken(ctx)
	if err != nil {
		return err
	}
	wx := webex.NewClient(cfg.Webex, token, l)

	// The desired set comes from the lookup service, the existing set from
	// Webex Calling. Neither depends on the other, so both are fetched
	// concurrently; any fetch error aborts the run.
	var (
		desired  []pattern.Rule
		existing []reconcile.ExistingRule
		store    *webex.PatternStore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		desired, err = computeRules(gctx, cfg, l, provisionNPA, provisionNXX)
		return err
	})
	g.Go(func() error {
		location, err := wx.ResolveLocation(gctx, provisionLocation)
		if err != nil {
			return err
		}
		l.Debug("resolved location",
			zap.String("name", location.Name),
			zap.String("id", location.ID))

		store = wx.PatternStore(location.ID)
		existing, err = store.ListManagedRules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	l.Debug("fetched existing patterns", zap.Int("count", len(existing)))

	printRules(desired)

	plan, err := reconcile.BuildPlan(desired, existing)
	if err != nil {
		return err
	}
	if plan.Empty() {
		fmt.Println("No changes are required")
		return nil
	}

	fmt.Printf("%d tasks:\n", len(plan.Actions))
	for _, d := range plan.Descriptions() {
		fmt.Printf("  - %s\n", d)
	}

	outcomes, err := reconcile.Apply(ctx, store, plan, reconcile.Options{DryRun: provisionReadonly})
	if provisionReadonly {
		fmt.Println("Readonly mode. No changes are made")
		return nil
	}
	if err != nil {
		var applyErr *reconcile.ApplyError
		if errors.As(err, &applyErr) {
			l.Warn("applied with failures",
				zap.Int("succeeded", len(outcomes)-len(applyErr.Failures)),
				zap.Int("failed", len(applyErr.Failures)))
		}
		return err
	}

	l.Info("applied all changes", zap.Int("count", len(outcomes)))
	return nil
}
