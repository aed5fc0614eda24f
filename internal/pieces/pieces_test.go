package pieces_test

import (
	"testing"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/board/boardtest"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/pieces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hex(q, r int) hexcoord.Hex { return hexcoord.Hex{Q: q, R: r} }

func TestGrasshopperJump(t *testing.T) {
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(-8, 0), Color: boardtest.White, Kind: board.KindGrasshopper},
		{Pos: hex(-6, 0), Color: boardtest.Black, Kind: board.KindAnt},
		{Pos: hex(-4, 0), Color: boardtest.White, Kind: board.KindAnt},
		{Pos: hex(-2, 0), Color: boardtest.Black, Kind: board.KindAnt},
		{Pos: hex(0, 0), Color: boardtest.White, Kind: board.KindQueen},
		{Pos: hex(2, 0), Color: boardtest.Black, Kind: board.KindQueen},
		{Pos: hex(4, 0), Color: boardtest.White, Kind: board.KindSpider},
		{Pos: hex(6, 0), Color: boardtest.Black, Kind: board.KindSpider},
		{Pos: hex(8, 0), Color: boardtest.White, Kind: board.KindBeetle},
	}
	b := boardtest.Build(layout)
	moves := pieces.Moves(b, hex(-8, 0))
	require.Len(t, moves, 1)
	assert.Equal(t, hex(10, 0), moves[0])
}

func TestBeetleStack(t *testing.T) {
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(0, 0), Color: boardtest.White, Kind: board.KindQueen},
		{Pos: hex(-2, 0), Color: boardtest.Black, Kind: board.KindAnt},
		{Pos: hex(2, 0), Color: boardtest.White, Kind: board.KindBeetle},
	}
	b := boardtest.Build(layout)
	moves := pieces.Moves(b, hex(2, 0))
	assert.Contains(t, moves, hex(0, 0))

	onQueen := b.WithPushed(hex(0, 0), board.Piece{Color: board.White, Kind: board.KindBeetle, Number: 1})
	onQueen, _ = onQueen.WithPopped(hex(2, 0))
	require.Equal(t, 2, onQueen.Height(hex(0, 0)))
	backMoves := pieces.Moves(onQueen, hex(0, 0))
	assert.Contains(t, backMoves, hex(2, 0))
}

func TestPillbugTransfer(t *testing.T) {
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(0, 0), Color: boardtest.White, Kind: board.KindQueen},
		{Pos: hex(2, 0), Color: boardtest.Black, Kind: board.KindPillbug},
	}
	b := boardtest.Build(layout)
	transfers := pieces.Transfers(b, hex(2, 0))
	require.NotEmpty(t, transfers)
	for _, tr := range transfers {
		assert.Equal(t, hex(0, 0), tr.Neighbor)
	}
}

func TestMosquitoCopiesPillbug(t *testing.T) {
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(0, 0), Color: boardtest.White, Kind: board.KindQueen},
		{Pos: hex(2, 0), Color: boardtest.White, Kind: board.KindPillbug},
		{Pos: hex(1, -1), Color: boardtest.White, Kind: board.KindMosquito},
	}
	b := boardtest.Build(layout)
	require.True(t, pieces.IsPillbugLike(b, hex(1, -1)))
	transfers := pieces.Transfers(b, hex(1, -1))
	assert.NotEmpty(t, transfers)
}

func TestMosquitoMutualLock(t *testing.T) {
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(0, 0), Color: boardtest.White, Kind: board.KindMosquito},
		{Pos: hex(2, 0), Color: boardtest.Black, Kind: board.KindMosquito},
		{Pos: hex(-2, 0), Color: boardtest.White, Kind: board.KindAnt},
	}
	b := boardtest.Build(layout)
	assert.Empty(t, pieces.Moves(b, hex(0, 0)))
}

func TestMosquitoAtopHiveIsStrictBeetle(t *testing.T) {
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(0, 0), Color: boardtest.White, Kind: board.KindQueen},
		{Pos: hex(1, 1), Color: boardtest.Black, Kind: board.KindGrasshopper},
	}
	b := boardtest.Build(layout)
	b = b.WithPushed(hex(1, 1), board.Piece{Color: board.White, Kind: board.KindMosquito, Number: 1})
	moves := pieces.Moves(b, hex(1, 1))
	assert.Contains(t, moves, hex(0, 0))
}

func TestAntPinchedRingExcludesCenter(t *testing.T) {
	center := hex(6, 2)
	layout := []boardtest.PieceOnBoard{
		{Pos: hex(5, 1), Color: boardtest.White, Kind: board.KindAnt},
		{Pos: hex(7, 1), Color: boardtest.Black, Kind: board.KindAnt},
		{Pos: hex(8, 2), Color: boardtest.White, Kind: board.KindAnt},
		{Pos: hex(7, 3), Color: boardtest.Black, Kind: board.KindAnt},
		{Pos: hex(5, 3), Color: boardtest.White, Kind: board.KindAnt},
		{Pos: hex(4, 2), Color: boardtest.Black, Kind: board.KindAnt},
	}
	b := boardtest.Build(layout)
	moves := pieces.Moves(b, hex(4, 2))
	assert.NotContains(t, moves, center)
}
