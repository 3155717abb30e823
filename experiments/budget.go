package experiments

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// BudgetResult is the outcome of the experiment for one time budget.
type BudgetResult struct {
	Budget    time.Duration
	Summaries []Summary
}

// RunBudgetSweep repeats the experiment for every budget to relate thinking
// time to reached depth and strength. Every budget replays the same seeds.
// Result files are not written.
func RunBudgetSweep(ctx context.Context, cfg Config, budgets []time.Duration) ([]BudgetResult, error) {
	cfg.OutDir = ""
	cfg.Seed = resolveSeed(cfg.Seed, time.Now)
	results := make([]BudgetResult, 0, len(budgets))
	for i, budget := range budgets {
		log.Info().Msgf("starting budget %d of %d: %v per move", i+1, len(budgets), budget)
		cfg.Budget = budget
		summaries, err := Run(ctx, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, BudgetResult{Budget: budget, Summaries: summaries})
	}
	return results, nil
}
