// Package board implements the hex-addressed stack-of-pieces board: the
// Color/PieceKind/Piece value types, ordered Stacks, Reserves, and the Board
// itself with its pure push/pop constructors.
package board

import (
	"fmt"
	"maps"

	"github.com/janpfeifer/hivekit/internal/hexcoord"
)

// Color is one of the two sides.
//
//go:generate go tool enumer -type=Color -trimprefix=Color -values -text -json board.go
type Color uint8

const (
	White Color = iota
	Black
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return 1 - c
}

// PieceKind is the closed set of the eight Hive species.
//
//go:generate go tool enumer -type=PieceKind -trimprefix=Kind -values -text -json board.go
type PieceKind uint8

const (
	KindQueen PieceKind = iota
	KindAnt
	KindBeetle
	KindGrasshopper
	KindSpider
	KindLadybug
	KindMosquito
	KindPillbug
	numKinds
)

// ShortLetter is the single uppercase letter used in short names and
// notation ("Q", "A", "B", "G", "S", "L", "M", "P").
func (k PieceKind) ShortLetter() string {
	return kindLetters[k]
}

var kindLetters = [numKinds]string{"Q", "A", "B", "G", "S", "L", "M", "P"}

// KindFromLetter resolves a short-name letter back to a PieceKind.
func KindFromLetter(letter string) (PieceKind, bool) {
	for k, l := range kindLetters {
		if l == letter {
			return PieceKind(k), true
		}
	}
	return 0, false
}

// AllKinds enumerates every PieceKind.
var AllKinds = [numKinds]PieceKind{
	KindQueen, KindAnt, KindBeetle, KindGrasshopper, KindSpider,
	KindLadybug, KindMosquito, KindPillbug,
}

// BaseInitialCount is the starting reserve count for the base set (no
// expansion pieces).
var BaseInitialCount = map[PieceKind]uint8{
	KindQueen:       1,
	KindAnt:         3,
	KindBeetle:      2,
	KindGrasshopper: 3,
	KindSpider:      2,
}

// ExpansionInitialCount adds the Ladybug/Mosquito/Pillbug expansion pieces to
// BaseInitialCount.
var ExpansionInitialCount = map[PieceKind]uint8{
	KindLadybug:   1,
	KindMosquito:  1,
	KindPillbug:   1,
}

// Piece is a value record identified globally by (Color, Kind, Number); Number
// disambiguates copies of the same (Color, Kind) within a side.
type Piece struct {
	Color  Color
	Kind   PieceKind
	Number uint8
}

// String renders a short name, e.g. "wS1".
func (p Piece) String() string {
	return fmt.Sprintf("%s%s%d", colorLetter(p.Color), p.Kind.ShortLetter(), p.Number)
}

func colorLetter(c Color) string {
	if c == White {
		return "w"
	}
	return "b"
}

// Stack is a non-empty ordered sequence of Pieces at one Hex, bottom-first.
// The last element is the top, the only piece that acts and is visible to
// adjacency.
type Stack []Piece

// Top returns the acting piece of the stack. Panics if the stack is empty;
// callers only hold non-empty stacks (Board never stores an empty one).
func (s Stack) Top() Piece {
	return s[len(s)-1]
}

// Height is the number of pieces in the stack.
func (s Stack) Height() int {
	return len(s)
}

// Reserve is the not-yet-placed multiset of one side's pieces, keyed by kind.
type Reserve map[PieceKind]uint8

// cloneReserve returns a shallow copy.
func cloneReserve(r Reserve) Reserve {
	return maps.Clone(r)
}

// NewReserve returns the starting reserve for one side.
func NewReserve(expansion bool) Reserve {
	r := make(Reserve, numKinds)
	for k, n := range BaseInitialCount {
		r[k] = n
	}
	if expansion {
		for k, n := range ExpansionInitialCount {
			r[k] = n
		}
	}
	return r
}

// Board maps hex coordinates to non-empty stacks of pieces. Only Hexes with
// at least one piece are present in the map.
type Board struct {
	stacks map[hexcoord.Hex]Stack
}

// New returns an empty board.
func New() *Board {
	return &Board{stacks: make(map[hexcoord.Hex]Stack)}
}

// Clone returns a board with the same contents as b, sharing no mutable
// state with it (full copy of the stacks map and its slices).
func (b *Board) Clone() *Board {
	nb := &Board{stacks: make(map[hexcoord.Hex]Stack, len(b.stacks))}
	for h, s := range b.stacks {
		cp := make(Stack, len(s))
		copy(cp, s)
		nb.stacks[h] = cp
	}
	return nb
}

// Get returns the stack at h and whether it is occupied.
func (b *Board) Get(h hexcoord.Hex) (Stack, bool) {
	s, ok := b.stacks[h]
	return s, ok
}

// Top returns the top piece at h, if any.
func (b *Board) Top(h hexcoord.Hex) (Piece, bool) {
	s, ok := b.stacks[h]
	if !ok {
		return Piece{}, false
	}
	return s.Top(), true
}

// Height returns the number of pieces stacked at h (0 if empty).
func (b *Board) Height(h hexcoord.Hex) int {
	return len(b.stacks[h])
}

// Occupied reports whether h holds at least one piece.
func (b *Board) Occupied(h hexcoord.Hex) bool {
	return len(b.stacks[h]) > 0
}

// NumOccupied is the number of non-empty hexes on the board.
func (b *Board) NumOccupied() int {
	return len(b.stacks)
}

// OccupiedHexes returns every occupied hex, in unspecified order.
func (b *Board) OccupiedHexes() []hexcoord.Hex {
	out := make([]hexcoord.Hex, 0, len(b.stacks))
	for h := range b.stacks {
		out = append(out, h)
	}
	return out
}

// NeighborsWithPiece returns the subset of h's six neighbors that are
// occupied.
func (b *Board) NeighborsWithPiece(h hexcoord.Hex) []hexcoord.Hex {
	var out []hexcoord.Hex
	for _, n := range h.Neighbors() {
		if b.Occupied(n) {
			out = append(out, n)
		}
	}
	return out
}

// EmptyAdjacent returns the subset of h's six neighbors that are empty.
func (b *Board) EmptyAdjacent(h hexcoord.Hex) []hexcoord.Hex {
	var out []hexcoord.Hex
	for _, n := range h.Neighbors() {
		if !b.Occupied(n) {
			out = append(out, n)
		}
	}
	return out
}

// WithPushed returns a new Board with p appended to the stack at h (creating
// a length-1 stack if h was empty). b is left unmodified.
func (b *Board) WithPushed(h hexcoord.Hex, p Piece) *Board {
	nb := b.Clone()
	nb.stacks[h] = append(nb.stacks[h], p)
	return nb
}

// WithPopped returns a new Board with the top piece removed from the stack
// at h (deleting the key entirely if the stack becomes empty), along with
// the piece that was removed. b is left unmodified. Panics if h is empty.
func (b *Board) WithPopped(h hexcoord.Hex) (*Board, Piece) {
	s, ok := b.stacks[h]
	if !ok || len(s) == 0 {
		panic("board: WithPopped on empty hex " + h.String())
	}
	popped := s.Top()
	nb := b.Clone()
	if len(s) == 1 {
		delete(nb.stacks, h)
	} else {
		nb.stacks[h] = nb.stacks[h][:len(s)-1]
	}
	return nb, popped
}

// Find returns the hex and stack index (0 = bottom) of the given piece, if
// it is currently on the board.
func (b *Board) Find(p Piece) (h hexcoord.Hex, index int, found bool) {
	for hex, s := range b.stacks {
		for i, piece := range s {
			if piece == p {
				return hex, i, true
			}
		}
	}
	return hexcoord.Hex{}, 0, false
}
