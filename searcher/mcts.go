package searcher

import (
	"context"

	"golang.org/x/exp/rand"

	"isolation/experiments/metrics"
	"isolation/game"
)

// DefaultIterations is the MCTS iteration budget per search.
const DefaultIterations = 200

// MCTS grows a game tree one playout at a time: descend by the UCT policy,
// expand one child, play the position out with uniformly random moves, then
// credit the outcome back up the path. Once the budget is spent, the most
// visited root child wins (robust child rule), which is steadier than the
// highest average when visit counts are small.
type MCTS struct {
	iterations  int
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func NewMCTS(opts ...Option) *MCTS {
	o := newOptions(opts)
	return &MCTS{
		iterations:  o.iterations,
		exploration: o.exploration,
		rng:         o.rng,
		metrics:     o.metrics,
	}
}

func (m *MCTS) String() string { return "mcts" }

// Search runs the configured iteration budget from a fresh root. The depth
// argument is ignored: every call spends a full budget. When the context
// ends mid-budget the best action so far is returned once at least one
// iteration has completed, the context error otherwise.
func (m *MCTS) Search(ctx context.Context, state game.State, _ int) (game.Square, metrics.SearchMetric, error) {
	m.metrics.Start(m.String(), 0)
	if len(state.Actions()) == 0 {
		return game.NoSquare, m.metrics.Complete(), nil
	}
	root := newNode(nil, game.NoSquare, state)
	completed := 0
	for i := 0; i < m.iterations; i++ {
		if err := ctx.Err(); err != nil {
			if completed == 0 {
				return game.NoSquare, m.metrics.Complete(), err
			}
			break
		}
		m.simulate(root)
		completed++
		m.metrics.AddEpisode()
	}
	return root.robustChild(), m.metrics.Complete(), nil
}

// simulate runs one iteration: tree policy down to a new or terminal node,
// a random playout from there, then backpropagation.
func (m *MCTS) simulate(root *node) {
	leaf := m.selectThenExpand(root)
	reward := m.rollout(leaf.state, leaf.state.Player().Opponent())
	leaf.backup(reward)
}

// selectThenExpand descends from the root, expanding the first untried
// action of the current node, or following the best UCT child when the node
// is fully expanded. Descent ends at a fresh child or a terminal state.
func (m *MCTS) selectThenExpand(root *node) *node {
	node := root
	for !node.state.Terminal() {
		if len(node.untried) > 0 {
			child := node.expand()
			m.metrics.AddNode()
			return child
		}
		node = node.bestChild(m.exploration)
	}
	return node
}

// rollout plays uniformly random actions to the end of the game and scores
// the outcome as a Win or Loss reward for the given player. Callers anchor
// the reward to the player who moved into the playout's starting state,
// matching how node rewards are stored.
func (m *MCTS) rollout(state game.State, anchor game.PlayerID) float64 {
	for !state.Terminal() {
		actions := state.Actions()
		state = state.Result(actions[m.rng.Intn(len(actions))])
	}
	switch u := state.Utility(anchor); {
	case u > 0:
		return Win
	case u < 0:
		return Loss
	default:
		return 0
	}
}
