// Package movegen implements player-level legal move enumeration: the
// must-play-queen gate, placements with the color-adjacency rule, per-piece
// motions, Pillbug transfers, the Pillbug-ban post-filter, and the Pass
// fallback.
package movegen

import (
	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/generics"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/pieces"
)

// Move is any of Placement, Motion or Pass.
type Move interface {
	isMove()
}

// Placement introduces a piece from the reserves onto an empty hex.
type Placement struct {
	Piece board.Piece
	Dest  hexcoord.Hex
}

func (Placement) isMove() {}

// Motion relocates the top piece of a stack to another hex (an empty one, or
// for a climbing Beetle/Mosquito an occupied one). ActingColor is whose turn
// it is, which differs from Piece.Color when a Pillbug transfer
// (PillbugAssist) moves an opposing piece.
type Motion struct {
	Piece         board.Piece
	From, To      hexcoord.Hex
	ActingColor   board.Color
	PillbugAssist bool
}

func (Motion) isMove() {}

// Pass is only legal when the acting color has no Placement or Motion
// available.
type Pass struct {
	ActingColor board.Color
}

func (Pass) isMove() {}

// Context is every piece of state LegalMoves needs beyond the board itself:
// reserves, per-color progress, and the Pillbug-ban carried from the
// previous turn.
type Context struct {
	Board *board.Board

	Reserves        map[board.Color]board.Reserve
	InitialReserves map[board.Color]board.Reserve
	TurnCount       map[board.Color]int
	QueenPlaced     map[board.Color]bool

	Color board.Color

	// PillbugBanned, when true, marks BannedPiece as ineligible for any
	// Motion this turn: it was relocated by a Pillbug transfer last turn.
	PillbugBanned bool
	BannedPiece   board.Piece
}

// nextPieceNumber returns the Number the next placed piece of kind should
// carry for color, derived from how many of that kind remain in reserve.
func nextPieceNumber(ctx *Context, color board.Color, kind board.PieceKind) uint8 {
	initial := ctx.InitialReserves[color][kind]
	remaining := ctx.Reserves[color][kind]
	return initial - remaining + 1
}

// placeableHexes returns the set of empty hexes color may place a piece on.
func placeableHexes(b *board.Board, color board.Color, firstPlacement bool) []hexcoord.Hex {
	if b.NumOccupied() == 0 {
		return []hexcoord.Hex{hexcoord.Origin}
	}
	candidates := generics.MakeSet[hexcoord.Hex]()
	for _, h := range b.OccupiedHexes() {
		for _, n := range b.EmptyAdjacent(h) {
			candidates.Insert(n)
		}
	}
	if firstPlacement {
		return generics.KeysSlice(candidates)
	}
	var out []hexcoord.Hex
	for h := range candidates {
		touchesOpponent := false
		for _, n := range b.NeighborsWithPiece(h) {
			top, _ := b.Top(n)
			if top.Color != color {
				touchesOpponent = true
				break
			}
		}
		if !touchesOpponent {
			out = append(out, h)
		}
	}
	return out
}

// placements enumerates every legal Placement for color.
func placements(ctx *Context, color board.Color, queenOnly bool) []Move {
	firstPlacement := ctx.TurnCount[color] == 0
	hexes := placeableHexes(ctx.Board, color, firstPlacement)
	if len(hexes) == 0 {
		return nil
	}
	var moves []Move
	for _, kind := range board.AllKinds {
		if queenOnly && kind != board.KindQueen {
			continue
		}
		if ctx.Reserves[color][kind] == 0 {
			continue
		}
		piece := board.Piece{Color: color, Kind: kind, Number: nextPieceNumber(ctx, color, kind)}
		for _, h := range hexes {
			moves = append(moves, Placement{Piece: piece, Dest: h})
		}
	}
	return moves
}

// motions enumerates every legal Motion (including Pillbug transfers,
// before the ban post-filter) for color.
func motions(ctx *Context, color board.Color) []Move {
	if !ctx.QueenPlaced[color] {
		return nil
	}
	var moves []Move
	for _, h := range ctx.Board.OccupiedHexes() {
		top, _ := ctx.Board.Top(h)
		if top.Color != color {
			continue
		}
		for _, dest := range pieces.Moves(ctx.Board, h) {
			moves = append(moves, Motion{Piece: top, From: h, To: dest, ActingColor: color})
		}
		if pieces.IsPillbugLike(ctx.Board, h) {
			for _, tr := range pieces.Transfers(ctx.Board, h) {
				moved, _ := ctx.Board.Top(tr.Neighbor)
				moves = append(moves, Motion{
					Piece:         moved,
					From:          tr.Neighbor,
					To:            tr.Dest,
					ActingColor:   color,
					PillbugAssist: true,
				})
			}
		}
	}
	return moves
}

// applyPillbugBan removes every Motion relocating ctx.BannedPiece.
func applyPillbugBan(ctx *Context, moves []Move) []Move {
	if !ctx.PillbugBanned {
		return moves
	}
	filtered := moves[:0]
	for _, m := range moves {
		if motion, ok := m.(Motion); ok && motion.Piece == ctx.BannedPiece {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// LegalMoves returns every legal Move for ctx.Color in the position
// described by ctx, or a single Pass if there is none.
func LegalMoves(ctx Context) []Move {
	mustPlayQueen := ctx.TurnCount[ctx.Color] >= 3 && !ctx.QueenPlaced[ctx.Color]

	var moves []Move
	moves = append(moves, placements(&ctx, ctx.Color, mustPlayQueen)...)
	if !mustPlayQueen {
		moves = append(moves, motions(&ctx, ctx.Color)...)
	}
	moves = applyPillbugBan(&ctx, moves)

	if len(moves) == 0 {
		return []Move{Pass{ActingColor: ctx.Color}}
	}
	return moves
}
