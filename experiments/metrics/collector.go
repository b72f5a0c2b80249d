package metrics

import (
	"sync/atomic"
	"time"

	"isolation/game"
)

// SearchMetric summarizes one strategy invocation.
type SearchMetric struct {
	Strategy string
	Depth    int // requested search depth; 0 for budgeted strategies
	Duration time.Duration
	Nodes    int64 // states visited, or tree nodes expanded for MCTS
	Episodes int64 // completed MCTS iterations
}

// MoveMetric describes one decision inside a game.
type MoveMetric struct {
	Ply         int
	Player      game.PlayerID
	Action      game.Square
	Rounds      int           // completed search rounds behind the decision
	Submissions int           // proposals made, including the random fallback
	Elapsed     time.Duration // wall time of the whole decision
	SearchMetric              // the deepest completed round
}

// GameMetric describes one finished game.
type GameMetric struct {
	Winner    game.PlayerID // game.NoPlayer when the game was truncated
	Forfeit   bool          // the loser proposed no move at all
	Plies     int
	StartTime time.Time
	Duration  time.Duration
}

// Collector accumulates search counters during one strategy invocation.
// Start resets the counters, so one collector serves consecutive rounds.
type Collector interface {
	Start(strategy string, depth int)
	AddNode()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	strategy  string
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	episodes  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, depth int) {
	m.strategy = strategy
	m.depth = depth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.episodes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy: m.strategy,
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes.Load(),
		Episodes: m.episodes.Load(),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a collector that records nothing, for searches
// that do not want the bookkeeping.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddEpisode()                      {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
