package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hybrid/engine"
	"hybrid/experiments"
	"hybrid/game"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	games := flag.String("game", strings.Join(game.Names(), ","), "Comma separated games to play")
	baseline := flag.String("baseline", experiments.BaselineUCT, "Opponent of the hybrid agent: uct or random")
	numGames := flag.Int("games", experiments.DefaultNumGames, "Number of games per game")
	budget := flag.Duration("budget", experiments.DefaultBudget, "Thinking time per move")
	playouts := flag.Int("playouts", 15, "Playouts averaged per leaf")
	playoutDepth := flag.Int("playout-depth", 100, "Max plies of a playout")
	steps := flag.Int("steps", engine.DefaultMaxSteps, "Max moves per game")
	parallel := flag.Int("parallel", 1, "Games played at the same time")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	out := flag.String("out", "", "Directory for CSV records")
	sweep := flag.String("sweep", "", "Comma separated budgets to compare instead of a single run")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	// Agents without their own generator draw from the global one
	rand.Seed(uint64(time.Now().UnixNano()))

	cfg := experiments.Config{
		Games:        strings.Split(*games, ","),
		Baseline:     *baseline,
		NumGames:     *numGames,
		Budget:       *budget,
		Playouts:     *playouts,
		PlayoutDepth: *playoutDepth,
		MaxSteps:     *steps,
		Parallel:     *parallel,
		Seed:         *seed,
		OutDir:       *out,
	}
	if err := validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	output := termenv.NewOutput(os.Stdout)
	if *sweep == "" {
		summaries, err := experiments.Run(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		printSummaries(output, summaries)
		return
	}

	budgets, err := parseBudgets(*sweep)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid sweep")
	}
	results, err := experiments.RunBudgetSweep(ctx, cfg, budgets)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, r := range results {
		fmt.Fprintln(output, output.String(fmt.Sprintf("Budget %v", r.Budget)).Bold())
		printSummaries(output, r.Summaries)
	}
}

func validate(cfg experiments.Config) error {
	if cfg.Baseline != experiments.BaselineUCT && cfg.Baseline != experiments.BaselineRandom {
		return fmt.Errorf("unknown baseline %q", cfg.Baseline)
	}
	if cfg.Playouts < 1 {
		return errors.New("playouts must be at least 1")
	}
	if cfg.PlayoutDepth < 0 {
		return errors.New("playout depth must not be negative")
	}
	if cfg.Budget < 0 {
		return errors.New("budget must not be negative")
	}
	return nil
}

func parseBudgets(s string) ([]time.Duration, error) {
	var budgets []time.Duration
	for _, field := range strings.Split(s, ",") {
		budget, err := time.ParseDuration(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func printSummaries(output *termenv.Output, summaries []experiments.Summary) {
	win := output.Color("2")
	loss := output.Color("1")
	for _, s := range summaries {
		fmt.Fprintln(output, output.String("Game : "+s.Game).Bold())
		fmt.Fprintf(output, "Outcome = %s / %s / %d draws / %d unfinished\n",
			output.String(fmt.Sprintf("%d wins", s.Wins)).Foreground(win),
			output.String(fmt.Sprintf("%d losses", s.Losses)).Foreground(loss),
			s.Draws, s.Unfinished)
		fmt.Fprintf(output, "First reached depth = %.1f\n", s.FirstDepth)
		fmt.Fprintf(output, "Mean reached depth = %.2f\n", s.MeanDepth)
		fmt.Fprintf(output, "Mean spent time = %.3fs\n", s.MeanSeconds)
		fmt.Fprintln(output, "===============================")
	}
}
