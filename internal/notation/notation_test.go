package notation_test

import (
	"testing"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/gamestate"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/movegen"
	"github.com/janpfeifer/hivekit/internal/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMoveParsesAsOriginPlacement(t *testing.T) {
	s := gamestate.Initial(true)
	m, err := notation.ParseMove(s, "wS1")
	require.NoError(t, err)
	p, ok := m.(movegen.Placement)
	require.True(t, ok)
	assert.Equal(t, "wS1", p.Piece.String())
}

// TestRoundTripThroughSeveralPlacements drives real placements (the first
// legal move, which is a placement while reserves remain) out of
// gamestate.LegalMoves and checks that
// formatting a move and re-parsing it reproduces the same Move, without
// hand-deriving hex geometry.
func TestRoundTripThroughSeveralPlacements(t *testing.T) {
	s := gamestate.Initial(true)
	for i := 0; i < 8; i++ {
		moves := gamestate.LegalMoves(s)
		require.NotEmpty(t, moves)
		m := moves[0]

		text, err := notation.FormatMove(s, m)
		require.NoError(t, err)
		parsed, err := notation.ParseMove(s, text)
		require.NoError(t, err, text)
		assert.Equal(t, m, parsed, text)

		s, err = gamestate.Apply(s, m)
		require.NoError(t, err, text)
	}
}

func TestBeetleOnStackNotationHasNoIndicator(t *testing.T) {
	s := gamestate.Initial(true)
	s.Board = s.Board.WithPushed(hexcoord.Origin, board.Piece{Color: board.White, Kind: board.KindBeetle, Number: 1})
	s.Board = s.Board.WithPushed(hexcoord.Hex{Q: 2, R: 0}, board.Piece{Color: board.Black, Kind: board.KindAnt, Number: 1})
	s.QueenPlaced[board.White] = true
	s.QueenPlaced[board.Black] = true
	s.CurrentTurn = board.White

	var climb movegen.Motion
	found := false
	for _, mv := range gamestate.LegalMoves(s) {
		if mo, ok := mv.(movegen.Motion); ok && mo.Piece.Kind == board.KindBeetle {
			if _, occupied := s.Board.Get(mo.To); occupied {
				climb, found = mo, true
				break
			}
		}
	}
	require.True(t, found, "expected the Beetle to have a climb available")
	text, err := notation.FormatMove(s, climb)
	require.NoError(t, err)
	assert.NotContains(t, text, "-")
	assert.NotContains(t, text, "/")
	assert.NotContains(t, text, "\\")
}

func TestPassRoundTrips(t *testing.T) {
	s := gamestate.Initial(true)
	m, err := notation.ParseMove(s, "pass")
	require.NoError(t, err)
	_, ok := m.(movegen.Pass)
	assert.True(t, ok)
	text, err := notation.FormatMove(s, m)
	require.NoError(t, err)
	assert.Equal(t, "pass", text)
}

func TestMalformedNotationIsRejected(t *testing.T) {
	s := gamestate.Initial(true)
	_, err := notation.ParseMove(s, "xZ9")
	assert.Error(t, err)
}

func TestUnknownReferenceIsRejected(t *testing.T) {
	s := gamestate.Initial(true)
	_, err := notation.ParseMove(s, "bA1 wS1-")
	assert.ErrorIs(t, err, gamestate.ErrUnknownReference)
}
