package metrics

import "time"

type MoveMetric struct {
	Step     int
	Player   int // game.Player of the mover
	Agent    string
	Move     string
	Duration time.Duration
}

type GameMetric struct {
	Game           string
	StartingPlayer int
	Winners        []int // empty for a draw or an unfinished game
	Finished       bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// DecisionMetric is one decision of a searching agent
type DecisionMetric struct {
	Step         int // decision index within the game
	Depth        int
	Elapsed      time.Duration
	Score        float64
	Nodes        int64
	Playouts     int64
	FullPlayouts int64
}

// Collector gathers the metrics of one game.
type Collector interface {
	Start(game string, startingPlayer int)
	AddMove(move MoveMetric)
	Complete(winners []int, finished bool) (GameMetric, []MoveMetric)
}

type collector struct {
	game  GameMetric
	moves []MoveMetric
	now   func() time.Time
}

func NewCollector() Collector {
	return &collector{now: time.Now}
}

func (c *collector) Start(game string, startingPlayer int) {
	c.game = GameMetric{
		Game:           game,
		StartingPlayer: startingPlayer,
		StartTime:      c.now(),
	}
	c.moves = nil
}

func (c *collector) AddMove(move MoveMetric) {
	c.moves = append(c.moves, move)
}

func (c *collector) Complete(winners []int, finished bool) (GameMetric, []MoveMetric) {
	c.game.EndTime = c.now()
	c.game.Duration = c.game.EndTime.Sub(c.game.StartTime)
	c.game.Winners = winners
	c.game.Finished = finished
	c.game.TotalMoves = len(c.moves)
	return c.game, c.moves
}
