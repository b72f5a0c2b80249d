package agent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"isolation/game"
)

func TestProposalStartsEmpty(t *testing.T) {
	p := NewProposal()

	action, ok := p.Latest()

	require.False(t, ok, "nothing was submitted yet")
	require.Equal(t, game.NoSquare, action)
}

func TestProposalLatestWins(t *testing.T) {
	p := NewProposal()
	p.Submit(game.Square(4))
	p.Submit(game.Square(17))

	action, ok := p.Latest()

	require.True(t, ok)
	require.Equal(t, game.Square(17), action)
}

func TestProposalConcurrentSubmissions(t *testing.T) {
	p := NewProposal()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Submit(game.Square(i % game.BoardSize))
		}()
	}
	wg.Wait()

	action, ok := p.Latest()
	require.True(t, ok)
	require.GreaterOrEqual(t, int(action), 0)
	require.Less(t, int(action), game.BoardSize)
}
