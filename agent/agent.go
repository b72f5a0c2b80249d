package agent

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"isolation/config"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

// Agent picks actions under a deadline. Act submits a uniformly random legal
// action immediately, then runs its strategy in rounds of increasing depth,
// submitting every completed round's choice, so the caller always holds a
// valid latest answer when the deadline interrupts the search.
type Agent struct {
	strategy  searcher.Strategy
	rng       *rand.Rand
	maxRounds int
}

// Report summarizes one Act call.
type Report struct {
	Rounds      int
	Submissions int
	Elapsed     time.Duration
	Last        metrics.SearchMetric // the deepest completed round
}

type Option func(a *Agent)

// WithRand injects a seeded random source for reproducible play.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithMaxRounds caps the deepening loop. Without a cap the loop runs until
// the context is done, so callers without a deadline must set one.
func WithMaxRounds(rounds int) Option {
	return func(a *Agent) {
		if rounds > 0 {
			a.maxRounds = rounds
		}
	}
}

func New(strategy searcher.Strategy, opts ...Option) *Agent {
	if strategy == nil {
		panic("agent needs a strategy")
	}
	a := &Agent{strategy: strategy}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return a
}

// FromConfig builds an agent and its strategy from one agent config. The
// strategy and the agent share a random source, so a fixed seed reproduces
// the whole decision sequence. Depth-limited strategies default their round
// cap to the configured depth; MCTS keeps rerunning its budget until the
// deadline unless max_rounds says otherwise.
func FromConfig(cfg config.Agent) (*Agent, error) {
	evaluate, err := evaluatorFor(cfg.Evaluator)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	rng := rand.New(rand.NewSource(seed))

	common := []searcher.Option{
		searcher.WithEvaluationFn(evaluate),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	}

	var strategy searcher.Strategy
	maxRounds := cfg.MaxRounds
	switch cfg.Strategy {
	case "", "alphabeta":
		strategy = searcher.NewAlphaBeta(common...)
		if maxRounds == 0 {
			maxRounds = cfg.Depth
		}
	case "negamax":
		strategy = searcher.NewNegamax(common...)
		if maxRounds == 0 {
			maxRounds = cfg.Depth
		}
	case "mcts":
		strategy = searcher.NewMCTS(append(common,
			searcher.WithIterations(cfg.Iterations),
			searcher.WithExploration(cfg.Exploration))...)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}

	return New(strategy, WithRand(rng), WithMaxRounds(maxRounds)), nil
}

func evaluatorFor(name string) (game.Evaluate, error) {
	switch name {
	case "", "liberties":
		return game.EvaluateLibertyDifference, nil
	case "own-liberties":
		return game.EvaluateOwnLiberties, nil
	case "aggressive":
		return game.EvaluateAggressive, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}

// Act picks actions for the state and submits them to the sink until the
// context is done or the round cap is reached. With no legal actions it
// submits nothing. The first two plies are placements and stay random:
// searching an almost empty board adds nothing. Interruption is not an
// error; the aborted round is discarded and earlier submissions stand.
func (a *Agent) Act(ctx context.Context, state game.State, sink Sink) Report {
	start := time.Now()
	var report Report

	actions := state.Actions()
	if len(actions) == 0 {
		report.Elapsed = time.Since(start)
		return report
	}

	// Safe fallback so the deadline can never catch us without an answer.
	sink.Submit(actions[a.rng.Intn(len(actions))])
	report.Submissions++

	if state.PlyCount() < 2 {
		report.Elapsed = time.Since(start)
		return report
	}

	for round := 1; a.maxRounds == 0 || round <= a.maxRounds; round++ {
		action, metric, err := a.strategy.Search(ctx, state, round)
		if err != nil {
			break // aborted round: the previous submission stands
		}
		report.Rounds++
		report.Last = metric
		if action == game.NoSquare {
			break
		}
		sink.Submit(action)
		report.Submissions++
		log.Debug().
			Int("round", round).
			Stringer("action", action).
			Int64("nodes", metric.Nodes).
			Msg("deepening-iteratively")
		if ctx.Err() != nil {
			break
		}
	}

	report.Elapsed = time.Since(start)
	return report
}
