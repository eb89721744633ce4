// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/learnrec/internal/config"
	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/recommend/builder"
	"github.com/tomtom215/learnrec/internal/recommend/storage"
)

// errStorageDisabled is returned when there is nothing to read offline.
var errStorageDisabled = errors.New("persistence is disabled (STORE_ENABLED=false); nothing to read")

var (
	strategy string
	limit    int
)

// recommendCmd ranks content for a learner from persisted state
var recommendCmd = &cobra.Command{
	Use:   "recommend <user-id>",
	Short: "Compute recommendations from the persisted store",
	Long: `Restore the engine from the Badger store and print recommendations for
one learner. The server must be stopped.

Examples:
  # Personalized mix
  learnrecctl recommend alice

  # Only collaborative results, as JSON
  learnrecctl recommend alice --strategy collaborative --limit 5 --json

  # Popular content for anonymous visitors
  learnrecctl recommend "" --strategy popular`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

// insightsCmd summarizes a learner from persisted state
var insightsCmd = &cobra.Command{
	Use:   "insights <user-id>",
	Short: "Summarize a learner from the persisted store",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsights,
}

func init() {
	recommendCmd.Flags().StringVar(&strategy, "strategy", recommend.StrategyPersonalized,
		"one of: "+strings.Join(strategyNames(), ", "))
	recommendCmd.Flags().IntVar(&limit, "limit", 0, "maximum results (0 uses the configured default)")
}

type recommendFunc func(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error)

func strategyTable(engine *recommend.Engine) map[string]recommendFunc {
	return map[string]recommendFunc{
		recommend.StrategyPersonalized:  engine.GetPersonalizedRecommendations,
		recommend.StrategyHybrid:        engine.GetHybridRecommendations,
		recommend.StrategyCollaborative: engine.GetCollaborativeRecommendations,
		recommend.StrategyContentBased:  engine.GetContentBasedRecommendations,
		recommend.StrategyPopular:       engine.GetPopularContent,
		recommend.StrategyTrending:      engine.GetTrendingContent,
	}
}

func strategyNames() []string {
	names := []string{
		recommend.StrategyPersonalized,
		recommend.StrategyHybrid,
		recommend.StrategyCollaborative,
		recommend.StrategyContentBased,
		recommend.StrategyPopular,
		recommend.StrategyTrending,
	}
	sort.Strings(names)
	return names
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, closeStore, err := openEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	recs, err := recommendWith(cmd.Context(), engine, strategy, args[0], limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), recs)
	}
	return writeRecommendations(cmd.Context(), cmd.OutOrStdout(), engine, recs)
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, closeStore, err := openEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	insights := engine.GetRecommendationInsights(cmd.Context(), args[0])
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), insights)
	}
	return writeInsights(cmd.OutOrStdout(), args[0], &insights)
}

// recommendWith dispatches to the named strategy.
func recommendWith(ctx context.Context, engine *recommend.Engine, name, userID string, n int) ([]recommend.Recommendation, error) {
	fn, ok := strategyTable(engine)[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of: %s)", name, strings.Join(strategyNames(), ", "))
	}
	return fn(ctx, userID, n)
}

// openEngine restores an engine from the configured store without write
// through. The returned func closes the store.
func openEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, func(), error) {
	store, err := openStoreOffline(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() { closeQuietly(store) }

	recCfg := cfg.Recommend.Clone()
	recCfg.Cache.Enabled = false
	engine, err := builder.NewEngine(recCfg, logging.Logger(), recommend.WithPersister(readOnly{store}))
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	if err := engine.Restore(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("restore engine state: %w", err)
	}
	stats := engine.Stats()
	logging.Debug().
		Int("profiles", stats.Profiles).
		Int("content", stats.Content).
		Msg("Engine restored")
	return engine, closeStore, nil
}

// readOnly loads from the store and drops writes.
type readOnly struct {
	*storage.Store
}

func (readOnly) SaveProfile(context.Context, recommend.UserProfile) error  { return nil }
func (readOnly) SaveContent(context.Context, recommend.CatalogEntry) error { return nil }
