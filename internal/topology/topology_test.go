package topology_test

import (
	"testing"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ant(n uint8) board.Piece { return board.Piece{Color: board.White, Kind: board.KindAnt, Number: n} }

func TestAllOccupiedConnected(t *testing.T) {
	b := board.New()
	b = b.WithPushed(hexcoord.Hex{Q: 0, R: 0}, ant(1))
	b = b.WithPushed(hexcoord.Hex{Q: 2, R: 0}, ant(2))
	assert.True(t, topology.AllOccupiedConnected(b, nil))

	b = b.WithPushed(hexcoord.Hex{Q: 10, R: 0}, ant(3))
	assert.False(t, topology.AllOccupiedConnected(b, nil))
}

func TestCanRemoveTwoPieceShortcut(t *testing.T) {
	b := board.New()
	b = b.WithPushed(hexcoord.Hex{Q: 0, R: 0}, ant(1))
	b = b.WithPushed(hexcoord.Hex{Q: 2, R: 0}, ant(2))
	assert.True(t, topology.CanRemove(b, hexcoord.Hex{Q: 0, R: 0}))
	assert.True(t, topology.CanRemove(b, hexcoord.Hex{Q: 2, R: 0}))
}

func TestCanRemoveArticulationPoint(t *testing.T) {
	// A straight line of three: the middle one cannot be removed.
	b := board.New()
	b = b.WithPushed(hexcoord.Hex{Q: 0, R: 0}, ant(1))
	b = b.WithPushed(hexcoord.Hex{Q: 2, R: 0}, ant(2))
	b = b.WithPushed(hexcoord.Hex{Q: 4, R: 0}, ant(3))
	assert.False(t, topology.CanRemove(b, hexcoord.Hex{Q: 2, R: 0}))
	assert.True(t, topology.CanRemove(b, hexcoord.Hex{Q: 0, R: 0}))
}

func TestCanRemoveHeightTwo(t *testing.T) {
	b := board.New()
	b = b.WithPushed(hexcoord.Hex{Q: 0, R: 0}, ant(1))
	b = b.WithPushed(hexcoord.Hex{Q: 2, R: 0}, ant(2))
	b = b.WithPushed(hexcoord.Hex{Q: 4, R: 0}, ant(3))
	b = b.WithPushed(hexcoord.Hex{Q: 2, R: 0}, board.Piece{Color: board.White, Kind: board.KindBeetle, Number: 1})
	// Now (2,0) has height 2: removing its top piece never pins the hive.
	require.Equal(t, 2, b.Height(hexcoord.Hex{Q: 2, R: 0}))
	assert.True(t, topology.CanRemove(b, hexcoord.Hex{Q: 2, R: 0}))
}

func TestCanSlidePinchedRing(t *testing.T) {
	center := hexcoord.Hex{Q: 6, R: 2}
	ring := []hexcoord.Hex{{Q: 5, R: 1}, {Q: 7, R: 1}, {Q: 8, R: 2}, {Q: 7, R: 3}, {Q: 5, R: 3}, {Q: 4, R: 2}}

	// Leave (4,2) out of the board: that's the piece hypothetically lifted
	// and attempting to slide into the center.
	b := board.New()
	var n uint8 = 1
	for _, h := range ring[:5] {
		b = b.WithPushed(h, ant(n))
		n++
	}
	from := hexcoord.Hex{Q: 4, R: 2}
	assert.False(t, topology.CanSlide(b, from, center, 0))
}

func TestCanSlideOpenGate(t *testing.T) {
	b := board.New()
	b = b.WithPushed(hexcoord.Hex{Q: 0, R: 0}, ant(1))
	from := hexcoord.Hex{Q: 0, R: 0}
	to := hexcoord.Hex{Q: 2, R: 0}
	assert.True(t, topology.CanSlide(b, from, to, 0))
}
