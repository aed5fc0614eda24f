// Package boardtest provides declarative board-layout helpers for tests.
package boardtest

import (
	"fmt"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
)

// PieceOnBoard describes one piece to place when building a fixture board.
type PieceOnBoard struct {
	Pos    hexcoord.Hex
	Color  board.Color
	Kind   board.PieceKind
	Number uint8
}

// Build constructs a board with every piece in layout stacked in listing
// order (so later entries at the same Pos land on top).
func Build(layout []PieceOnBoard) *board.Board {
	b := board.New()
	counts := map[board.Color]map[board.PieceKind]uint8{White: {}, Black: {}}
	for _, entry := range layout {
		num := entry.Number
		if num == 0 {
			key := entry.Color
			counts[key][entry.Kind]++
			num = counts[key][entry.Kind]
		}
		b = b.WithPushed(entry.Pos, board.Piece{Color: entry.Color, Kind: entry.Kind, Number: num})
	}
	return b
}

// White and Black re-export board.Color values for terser fixtures.
const (
	White = board.White
	Black = board.Black
)

// Print writes a human-readable dump of the board's occupied hexes, useful
// while debugging a test.
func Print(b *board.Board) {
	hexes := b.OccupiedHexes()
	hexcoord.Sort(hexes)
	for _, h := range hexes {
		s, _ := b.Get(h)
		fmt.Printf("%s: %v\n", h, s)
	}
}
