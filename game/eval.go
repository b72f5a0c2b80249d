package game

// EvaluateLibertyDifference scores a state by the player's mobility surplus:
// the number of squares the player can reach minus the number the opponent
// can reach. Antisymmetric between the two players, which makes it safe for
// negamax-style searchers.
func EvaluateLibertyDifference(s State, p PlayerID) float64 {
	own := len(s.Liberties(s.Loc(p)))
	opp := len(s.Liberties(s.Loc(p.Opponent())))
	return float64(own - opp)
}

// EvaluateOwnLiberties scores a state by the player's own mobility alone.
// Not antisymmetric: meaningful only for fixed-perspective searchers.
func EvaluateOwnLiberties(s State, p PlayerID) float64 {
	return float64(len(s.Liberties(s.Loc(p))))
}

// EvaluateAggressive favors chasing the opponent. Terminal states score at
// their exact utility. Otherwise the player earns a 2.0 bonus for sitting on
// one of the opponent's liberties (blocking a reply) plus the truncated
// integer ratio of own to opponent liberties; truncation keeps the ratio a
// discrete bonus rather than a smooth scale, and the floor of 1 on the
// denominator guards the zero-liberty case.
func EvaluateAggressive(s State, p PlayerID) float64 {
	if s.Terminal() {
		return s.Utility(p)
	}
	own := s.Liberties(s.Loc(p))
	opp := s.Liberties(s.Loc(p.Opponent()))

	score := 0.0
	for _, sq := range opp {
		if sq == s.Loc(p) {
			score += 2.0
			break
		}
	}
	denom := len(opp)
	if denom < 1 {
		denom = 1
	}
	return score + float64(len(own)/denom)
}
