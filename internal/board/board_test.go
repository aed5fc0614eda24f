package board_test

import (
	"testing"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopImmutable(t *testing.T) {
	b0 := board.New()
	queen := board.Piece{Color: board.White, Kind: board.KindQueen, Number: 1}
	b1 := b0.WithPushed(hexcoord.Origin, queen)

	assert.Equal(t, 0, b0.NumOccupied(), "original board must be unchanged")
	require.Equal(t, 1, b1.NumOccupied())

	top, ok := b1.Top(hexcoord.Origin)
	require.True(t, ok)
	assert.Equal(t, queen, top)

	beetle := board.Piece{Color: board.Black, Kind: board.KindBeetle, Number: 1}
	b2 := b1.WithPushed(hexcoord.Origin, beetle)
	assert.Equal(t, 2, b2.Height(hexcoord.Origin))
	assert.Equal(t, 1, b1.Height(hexcoord.Origin), "b1 must stay at height 1")

	b3, popped := b2.WithPopped(hexcoord.Origin)
	assert.Equal(t, beetle, popped)
	assert.Equal(t, 1, b3.Height(hexcoord.Origin))

	b4, popped2 := b3.WithPopped(hexcoord.Origin)
	assert.Equal(t, queen, popped2)
	assert.False(t, b4.Occupied(hexcoord.Origin))
}

func TestFind(t *testing.T) {
	b := board.New()
	p := board.Piece{Color: board.White, Kind: board.KindAnt, Number: 2}
	b = b.WithPushed(hexcoord.Hex{Q: 2, R: 0}, p)
	h, idx, found := b.Find(p)
	require.True(t, found)
	assert.Equal(t, hexcoord.Hex{Q: 2, R: 0}, h)
	assert.Equal(t, 0, idx)

	_, _, found = b.Find(board.Piece{Color: board.Black, Kind: board.KindQueen, Number: 1})
	assert.False(t, found)
}

func TestReserve(t *testing.T) {
	r := board.NewReserve(false)
	assert.Equal(t, uint8(1), r[board.KindQueen])
	assert.Equal(t, uint8(0), r[board.KindLadybug])

	r = board.NewReserve(true)
	assert.Equal(t, uint8(1), r[board.KindLadybug])
	assert.Equal(t, uint8(1), r[board.KindMosquito])
	assert.Equal(t, uint8(1), r[board.KindPillbug])
}
