package uct

import (
	"hybrid/game"
	"math"
)

// node is a position of the search tree reached by move
type node struct {
	parent   *node
	move     game.Move // nil at the root
	untried  []game.Move
	children []*node
	rewards  float64 // from the perspective of move's mover
	visits   int
}

func newNode(parent *node, move game.Move, moves []game.Move) *node {
	return &node{
		parent:   parent,
		move:     move,
		untried:  moves,
		children: make([]*node, 0, len(moves)),
	}
}

// selectOrExpand applies the next untried move or, once every move was tried,
// the move of the child with the highest UCB1 score to state. Terminal nodes
// return themselves.
func (n *node) selectOrExpand(state game.State, cSquared float64) (child *node, expanded bool, err error) {
	if len(n.untried) > 0 { // Expandable node
		move := n.untried[0]
		n.untried = n.untried[1:]
		if err := state.Apply(move); err != nil {
			return nil, false, err
		}
		child = newNode(n, move, state.LegalMoves())
		n.children = append(n.children, child)
		return child, true, nil
	}

	if len(n.children) == 0 { // Terminal node
		return n, false, nil
	}

	// Fully expanded node
	child = n.children[n.pickChild(cSquared)]
	if err := state.Apply(child.move); err != nil {
		return nil, false, err
	}
	return child, false, nil
}

func (n *node) pickChild(cSquared float64) int {
	normalizer := cSquared * math.Log(float64(n.visits))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := ucb1(child.rewards, child.visits, normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// backup adds the score of the finished playout to n and its ancestors
func (n *node) backup(reward func(game.Player) float64) {
	for current := n; current != nil; current = current.parent {
		if current.move != nil {
			current.rewards += reward(current.move.Mover())
		}
		current.visits++
	}
}

// mostVisited returns the first child with the most visits.
func (n *node) mostVisited() *node {
	var best *node
	for _, child := range n.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

func (n *node) value() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}
