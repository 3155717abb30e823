package engine

import (
	"hybrid/experiments/metrics"
	"hybrid/game"
)

const DefaultMaxSteps = 100

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (winners []game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
