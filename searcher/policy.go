package searcher

import "math"

// Hyperparameters for MCTS

// DefaultExploration weighs the exploration term of the UCT score.
const DefaultExploration = 1.2

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)

// uct scores children during selection, trading the average reward of a
// child against an exploration bonus that grows with the parent's visits.
type uct struct {
	numerator float64
}

func newUCT(c float64, parentVisits float64) *uct {
	if parentVisits == 0 {
		panic("parent visits cannot be 0")
	}
	return &uct{numerator: 2 * c * c * math.Log(parentVisits)}
}

func (u uct) evaluate(rewards float64, visits float64) float64 {
	if visits == 0 {
		panic("child visits cannot be 0")
	}
	// UCT = q/n + c*sqrt(2*ln(N)/n)
	return rewards/visits + math.Sqrt(u.numerator/visits)
}
