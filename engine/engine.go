package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"isolation/agent"
	"isolation/experiments/metrics"
	"isolation/game"
)

// MaxPlies caps runaway games. Every move closes a square, so a real board
// game ends long before this; the cap guards misbehaving state
// implementations.
const MaxPlies = 10000

// Player is what the engine needs from an agent: fill the sink with move
// proposals before the move deadline.
type Player interface {
	Act(ctx context.Context, state game.State, sink agent.Sink) agent.Report
}

type Option func(e *Engine)

// WithMoveTime sets the per-move deadline. Zero means no deadline, for
// players that bound their own work.
func WithMoveTime(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.moveTime = d
		}
	}
}

// WithStart replaces the standard opening position.
func WithStart(state game.State) Option {
	return func(e *Engine) {
		if state != nil {
			e.state = state
		}
	}
}

// WithMoveLog streams one YAML list item per move to w.
func WithMoveLog(w io.Writer) Option {
	return func(e *Engine) {
		e.logStream = w
	}
}

// WithTrace prints the board after every move, for watching a game live.
func WithTrace(w io.Writer) Option {
	return func(e *Engine) {
		e.trace = w
	}
}

// Engine runs one game between two players, enforcing the move deadline and
// the legality of every adopted proposal.
type Engine struct {
	agents    [2]Player
	state     game.State
	moveTime  time.Duration
	logStream io.Writer
	trace     io.Writer
}

func New(p0, p1 Player, opts ...Option) *Engine {
	if p0 == nil || p1 == nil {
		panic("engine needs two players")
	}
	e := &Engine{
		agents: [2]Player{p0, p1},
		state:  game.NewBoard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state; after Run it is the final position.
func (e *Engine) State() game.State { return e.state }

type logEntry struct {
	Ply      int    `yaml:"ply"`
	Player   int    `yaml:"player"`
	Action   string `yaml:"action"`
	Fallback bool   `yaml:"fallback,omitempty"`
	Rounds   int    `yaml:"rounds"`
	Nodes    int64  `yaml:"nodes,omitempty"`
	Episodes int64  `yaml:"episodes,omitempty"`
	Elapsed  string `yaml:"elapsed"`
}

// Run plays the game to completion and reports its metrics. A mover whose
// sink stays empty forfeits; an illegal proposal burns the turn down to the
// first legal move. The returned error is non-nil only when the parent
// context ends the game early or the move log cannot be written.
func (e *Engine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gm := metrics.GameMetric{Winner: game.NoPlayer, StartTime: time.Now()}
	var moves []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", e.state.Player())

	for !e.state.Terminal() && e.state.PlyCount() < MaxPlies {
		if err := ctx.Err(); err != nil {
			gm.Plies = e.state.PlyCount()
			gm.Duration = time.Since(gm.StartTime)
			return gm, moves, err
		}

		mover := e.state.Player()
		proposal := agent.NewProposal()

		moveCtx, cancel := e.moveContext(ctx)
		report := e.agents[mover].Act(moveCtx, e.state, proposal)
		cancel()

		action, ok := proposal.Latest()
		if !ok {
			gm.Winner = mover.Opponent()
			gm.Forfeit = true
			log.Info().Msgf("player %d forfeits: no move proposed", mover)
			break
		}

		fallback := false
		if legal := e.state.Actions(); !lo.Contains(legal, action) {
			proposed := action
			action = legal[0]
			fallback = true
			log.Warn().Msgf("player %d proposed illegal move %s, using %s instead", mover, proposed, action)
		}

		mm := metrics.MoveMetric{
			Ply:          e.state.PlyCount(),
			Player:       mover,
			Action:       action,
			Rounds:       report.Rounds,
			Submissions:  report.Submissions,
			Elapsed:      report.Elapsed,
			SearchMetric: report.Last,
		}
		moves = append(moves, mm)

		e.state = e.state.Result(action)

		log.Info().Msgf("player %d played %s at ply %d", mover, action, mm.Ply)

		if e.logStream != nil {
			if err := e.logMove(mm, fallback); err != nil {
				gm.Plies = e.state.PlyCount()
				gm.Duration = time.Since(gm.StartTime)
				return gm, moves, err
			}
		}
		if e.trace != nil {
			fmt.Fprintf(e.trace, "ply %d: player %d -> %s\n%s\n", mm.Ply, mover, action, e.state)
		}
	}

	if e.state.Terminal() {
		gm.Winner = e.state.Player().Opponent()
	}
	gm.Plies = e.state.PlyCount()
	gm.Duration = time.Since(gm.StartTime)

	log.Info().Msgf("game over after %d plies, winner: player %d", gm.Plies, gm.Winner)
	return gm, moves, nil
}

func (e *Engine) moveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.moveTime > 0 {
		return context.WithTimeout(ctx, e.moveTime)
	}
	return context.WithCancel(ctx)
}

func (e *Engine) logMove(mm metrics.MoveMetric, fallback bool) error {
	entry := []logEntry{{
		Ply:      mm.Ply,
		Player:   int(mm.Player),
		Action:   mm.Action.String(),
		Fallback: fallback,
		Rounds:   mm.Rounds,
		Nodes:    mm.Nodes,
		Episodes: mm.Episodes,
		Elapsed:  mm.Elapsed.String(),
	}}
	data, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode move log entry: %w", err)
	}
	if _, err := e.logStream.Write(data); err != nil {
		return fmt.Errorf("failed to write move log entry: %w", err)
	}
	return nil
}
