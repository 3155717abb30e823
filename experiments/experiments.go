package experiments

import (
	"context"
	"errors"
	"fmt"
	"hybrid/agent"
	"hybrid/engine"
	"hybrid/experiments/metrics"
	"hybrid/game"
	"hybrid/searcher"
	"hybrid/searcher/uct"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultNumGames = 20 // Per game
	DefaultBudget   = 5 * time.Second

	BaselineUCT    = "uct"
	BaselineRandom = "random"

	hybridID   = 1
	baselineID = 2
)

// Config describes an experiment of the hybrid agent against a baseline
type Config struct {
	Games        []string
	Baseline     string // BaselineUCT or BaselineRandom
	NumGames     int
	Budget       time.Duration
	Playouts     int
	PlayoutDepth int
	MaxSteps     int
	Parallel     int    // games played at the same time
	Seed         uint64 // 0 seeds from the clock
	OutDir       string // no files are written if empty
}

// Summary aggregates the games of one game name from the hybrid agent's side.
type Summary struct {
	Game        string
	Games       int
	Wins        int
	Losses      int
	Draws       int
	Unfinished  int
	FirstDepth  float64 // mean over games
	MeanDepth   float64
	MeanSeconds float64
}

type job struct {
	id           int
	game         string
	hybridPlayer game.Player
}

type gameResult struct {
	job
	record    metrics.GameRecord
	moves     []metrics.MoveRecord
	decisions []metrics.DecisionRecord
	winners   []game.Player
	decided   bool
	first     int
	depth     float64
	seconds   float64
}

// Run plays cfg.NumGames games of every game in cfg.Games between the hybrid
// agent and the baseline, alternating the hybrid agent's side.
func Run(ctx context.Context, cfg Config) ([]Summary, error) {
	cfg = withDefaults(cfg)
	for _, name := range cfg.Games {
		if _, err := game.Load(name); err != nil {
			return nil, err
		}
	}
	if cfg.Baseline != BaselineUCT && cfg.Baseline != BaselineRandom {
		return nil, fmt.Errorf("unknown baseline %q", cfg.Baseline)
	}
	cfg.Seed = resolveSeed(cfg.Seed, time.Now)

	log.Info().Uint64("seed", cfg.Seed).Msgf("starting experiment: %d games of %v against %s with %v per move", cfg.NumGames, cfg.Games, cfg.Baseline, cfg.Budget)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job)
	results := make(chan gameResult)

	g.Go(func() error {
		defer close(jobs)
		count := 0
		for _, name := range cfg.Games {
			for i := 0; i < cfg.NumGames; i++ {
				count++
				j := job{id: count, game: name, hybridPlayer: game.Player(i % 2)}
				select {
				case jobs <- j:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < cfg.Parallel; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := runGame(cfg, j)
				if err != nil {
					return err
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	collected := make([]gameResult, cfg.NumGames*len(cfg.Games))
	for res := range results {
		collected[res.id-1] = res
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msg("completed experiment")

	if cfg.OutDir != "" {
		if err := store(cfg, collected); err != nil {
			return nil, err
		}
	}
	return summarize(cfg.Games, collected), nil
}

func withDefaults(cfg Config) Config {
	if len(cfg.Games) == 0 {
		cfg.Games = game.Names()
	}
	if cfg.Baseline == "" {
		cfg.Baseline = BaselineUCT
	}
	if cfg.NumGames <= 0 {
		cfg.NumGames = DefaultNumGames
	}
	if cfg.Budget < 0 {
		cfg.Budget = DefaultBudget
	}
	if cfg.Playouts <= 0 {
		cfg.Playouts = searcher.DefaultEvaluationPlayouts
	}
	if cfg.PlayoutDepth < 0 {
		cfg.PlayoutDepth = searcher.DefaultMaxPlayoutDepth
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = engine.DefaultMaxSteps
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = 1
	}
	return cfg
}

// runGame plays a single game between fresh agents
func runGame(cfg Config, j job) (gameResult, error) {
	g, err := game.Load(j.game)
	if err != nil {
		return gameResult{}, err
	}

	hybridRand, baselineRand := jobRands(cfg.Seed, j.id)
	hybrid := searcher.NewHybrid(
		searcher.WithEvaluationPlayouts(cfg.Playouts),
		searcher.WithMaxPlayoutDepth(cfg.PlayoutDepth),
		searcher.WithRand(hybridRand),
		searcher.WithMetrics(),
	)
	baseline := newBaseline(cfg.Baseline, baselineRand)

	agents := []agent.Agent{hybrid, baseline}
	ids := []int{hybridID, baselineID}
	if j.hybridPlayer == game.Second {
		agents[0], agents[1] = agents[1], agents[0]
		ids[0], ids[1] = ids[1], ids[0]
	}

	log.Debug().Msgf("starting game %d: %s with %s as player %d against %s", j.id, j.game, hybrid.Name(), j.hybridPlayer, baseline.Name())
	e := engine.NewLocalEngine(g, agents, cfg.Budget, cfg.MaxSteps)
	winners, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return gameResult{}, fmt.Errorf("game %d (%s): %w", j.id, j.game, err)
	}

	res := gameResult{
		job:     j,
		winners: winners,
		record: metrics.GameRecord{
			ID:         j.id,
			Agent1:     ids[0],
			Agent2:     ids[1],
			GameMetric: gameMetric,
		},
	}
	for _, mm := range moveMetrics {
		res.moves = append(res.moves, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
	}
	res.decisions = decisionRecords(j.id, hybridID, hybrid)
	if r, ok := baseline.(recorder); ok {
		res.decisions = append(res.decisions, decisionRecords(j.id, baselineID, r)...)
	}

	res.first, err = hybrid.FirstReachedDepth()
	switch {
	case errors.Is(err, searcher.ErrNoDecisions):
		log.Info().Msgf("completed game %d (%s): %s, hybrid never moved", j.id, j.game, outcome(winners, j.hybridPlayer, gameMetric.Finished))
		return res, nil
	case err != nil:
		return gameResult{}, err
	}
	res.decided = true
	// Both queries have records once the first one succeeded
	res.depth, _ = hybrid.MeanReachedDepth()
	res.seconds, _ = hybrid.MeanSpentSeconds()

	log.Info().
		Int("game", j.id).
		Str("name", j.game).
		Str("outcome", outcome(winners, j.hybridPlayer, gameMetric.Finished)).
		Int("first_depth", res.first).
		Float64("mean_depth", res.depth).
		Float64("mean_seconds", res.seconds).
		Msg("completed game")
	return res, nil
}

// recorder is an agent that keeps a record of its decisions
type recorder interface {
	Records() []searcher.DecisionRecord
}

func decisionRecords(gameID, agentID int, r recorder) []metrics.DecisionRecord {
	var records []metrics.DecisionRecord
	for i, d := range r.Records() {
		records = append(records, metrics.DecisionRecord{
			Game:  gameID,
			Agent: agentID,
			DecisionMetric: metrics.DecisionMetric{
				Step:         i + 1,
				Depth:        d.Depth,
				Elapsed:      d.Elapsed,
				Score:        d.Score,
				Nodes:        d.Nodes,
				Playouts:     d.Playouts,
				FullPlayouts: d.FullPlayouts,
			},
		})
	}
	return records
}

func newBaseline(name string, r *rand.Rand) agent.Agent {
	if name == BaselineRandom {
		return agent.NewRandom(r)
	}
	return uct.New(uct.WithRand(r), uct.WithMetrics())
}

// resolveSeed returns seed, or a seed taken from the clock if seed is 0.
func resolveSeed(seed uint64, now func() time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(now().UnixNano())
}

// jobRands returns independent generators of the two agents of a game
func jobRands(seed uint64, id int) (hybrid, baseline *rand.Rand) {
	hybrid = rand.New(rand.NewSource(seed + 2*uint64(id)))
	baseline = rand.New(rand.NewSource(seed + 2*uint64(id) + 1))
	return hybrid, baseline
}

func outcome(winners []game.Player, player game.Player, finished bool) string {
	switch {
	case !finished:
		return "unfinished"
	case len(winners) == 0:
		return "draw"
	case len(winners) == 1 && winners[0] == player:
		return "win"
	case len(winners) == 1:
		return "loss"
	default:
		return "shared"
	}
}

func summarize(names []string, results []gameResult) []Summary {
	summaries := make([]Summary, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		summaries[i].Game = name
		index[name] = i
	}

	decided := make([]int, len(names))
	for _, res := range results {
		s := &summaries[index[res.game]]
		s.Games++
		switch outcome(res.winners, res.hybridPlayer, res.record.Finished) {
		case "win", "shared":
			s.Wins++
		case "loss":
			s.Losses++
		case "draw":
			s.Draws++
		default:
			s.Unfinished++
		}
		if res.decided {
			decided[index[res.game]]++
			s.FirstDepth += float64(res.first)
			s.MeanDepth += res.depth
			s.MeanSeconds += res.seconds
		}
	}
	for i := range summaries {
		if n := float64(decided[i]); n > 0 {
			summaries[i].FirstDepth /= n
			summaries[i].MeanDepth /= n
			summaries[i].MeanSeconds /= n
		}
	}
	return summaries
}

func store(cfg Config, results []gameResult) error {
	writer, err := metrics.NewWriter(cfg.OutDir, "hybrid_vs_"+cfg.Baseline)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	baselineConfig := metrics.AgentConfig{ID: baselineID, Name: newBaseline(cfg.Baseline, nil).Name()}
	if cfg.Baseline == BaselineUCT {
		baselineConfig.Budget = cfg.Budget
	}
	configs := []metrics.AgentConfig{
		{ID: hybridID, Name: searcher.Name, Budget: cfg.Budget, Playouts: cfg.Playouts, PlayoutDepth: cfg.PlayoutDepth},
		baselineConfig,
	}
	var (
		gameRecords     []metrics.GameRecord
		moveRecords     []metrics.MoveRecord
		decisionRecords []metrics.DecisionRecord
	)
	for _, res := range results {
		gameRecords = append(gameRecords, res.record)
		moveRecords = append(moveRecords, res.moves...)
		decisionRecords = append(decisionRecords, res.decisions...)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	if err := writer.WriteDecisionRecords(decisionRecords); err != nil {
		return fmt.Errorf("failed to store decision records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}
