package searcher

import (
	"math"

	"isolation/game"
)

// node is one explored state in an MCTS tree. Rewards are stored from the
// perspective of the player who moved into the node, so a parent maximizing
// a child's average reward is maximizing its own mover's outcome. The tree
// lives for a single search; nothing is shared or reused across calls.
type node struct {
	parent   *node
	action   game.Square // action that led here; NoSquare at the root
	state    game.State
	untried  []game.Square
	children []*node
	rewards  float64
	visits   float64
}

func newNode(parent *node, action game.Square, state game.State) *node {
	return &node{
		parent:  parent,
		action:  action,
		state:   state,
		untried: state.Actions(),
		visits:  1,
	}
}

// expand pops the first untried action and adds the resulting child.
func (n *node) expand() *node {
	a := n.untried[0]
	n.untried = n.untried[1:]
	child := newNode(n, a, n.state.Result(a))
	n.children = append(n.children, child)
	return child
}

// bestChild returns the child maximizing the UCT score. Ties keep the first
// child in expansion order.
func (n *node) bestChild(exploration float64) *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}
	policy := newUCT(exploration, n.visits)
	best := 0
	bestScore := math.Inf(-1)
	for i, child := range n.children {
		if score := policy.evaluate(child.rewards, child.visits); score > bestScore {
			bestScore = score
			best = i
		}
	}
	return n.children[best]
}

// backup credits every node from here to the root with a visit and the
// reward, flipping the reward's sign at each level to account for the
// alternating perspective.
func (n *node) backup(reward float64) {
	for node := n; node != nil; node = node.parent {
		node.visits++
		node.rewards += reward
		reward = -reward
	}
}

// robustChild returns the action of the most visited child. Ties keep the
// first child in expansion order.
func (n *node) robustChild() game.Square {
	if len(n.children) == 0 {
		panic("node has no children")
	}
	best := 0
	for i, child := range n.children[1:] {
		if child.visits > n.children[best].visits {
			best = i + 1
		}
	}
	return n.children[best].action
}
