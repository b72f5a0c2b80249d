package agent

import (
	"sync"

	"isolation/game"
)

// Sink receives proposed actions during one decision. Submissions are cheap
// and may happen several times per decision as the search deepens; the
// receiver decides which proposal to honor, normally the latest.
type Sink interface {
	Submit(game.Square)
}

// Proposal is a latest-value Sink: whatever was submitted last before the
// deadline is the move that counts.
type Proposal struct {
	mu     sync.Mutex
	action game.Square
	count  int
}

func NewProposal() *Proposal {
	return &Proposal{action: game.NoSquare}
}

func (p *Proposal) Submit(action game.Square) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.action = action
	p.count++
}

// Latest returns the most recent submission. ok is false when nothing was
// submitted at all.
func (p *Proposal) Latest() (action game.Square, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.action, p.count > 0
}
