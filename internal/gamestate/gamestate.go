// Package gamestate implements the immutable GameState history: the root
// state, the place/move/pass transitions, and the outcome queries
// (has_lost/winner). Each transition validates against movegen.LegalMoves
// and returns a new value with parent set to the state it came from;
// GameStates are never mutated in place.
package gamestate

import (
	"maps"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/movegen"
	"github.com/janpfeifer/hivekit/internal/topology"
	"github.com/pkg/errors"
)

// GameState is an immutable snapshot of one position in a game, with a
// parent link forming a linear history back to the root.
type GameState struct {
	Board *board.Board

	Reserves        map[board.Color]board.Reserve
	InitialReserves map[board.Color]board.Reserve
	TurnCount       map[board.Color]int
	QueenLocation   map[board.Color]hexcoord.Hex
	QueenPlaced     map[board.Color]bool

	CurrentTurn board.Color

	LastMove          movegen.Move
	LastMovedPiece    board.Piece
	HasLastMovedPiece bool

	Parent *GameState
}

// Initial returns the empty root state. expansion selects whether the
// Ladybug/Mosquito/Pillbug reserve is included.
func Initial(expansion bool) *GameState {
	return &GameState{
		Board: board.New(),
		Reserves: map[board.Color]board.Reserve{
			board.White: board.NewReserve(expansion),
			board.Black: board.NewReserve(expansion),
		},
		InitialReserves: map[board.Color]board.Reserve{
			board.White: board.NewReserve(expansion),
			board.Black: board.NewReserve(expansion),
		},
		TurnCount:     map[board.Color]int{},
		QueenLocation: map[board.Color]hexcoord.Hex{},
		QueenPlaced:   map[board.Color]bool{},
		CurrentTurn:   board.White,
	}
}

// LegalMoves returns every legal Move for s.CurrentTurn, derived from s
// (including the Pillbug ban carried over from a pillbug-assisted previous
// move).
func LegalMoves(s *GameState) []movegen.Move {
	ctx := movegen.Context{
		Board:           s.Board,
		Reserves:        s.Reserves,
		InitialReserves: s.InitialReserves,
		TurnCount:       s.TurnCount,
		QueenPlaced:     s.QueenPlaced,
		Color:           s.CurrentTurn,
	}
	if m, ok := s.LastMove.(movegen.Motion); ok && m.PillbugAssist {
		ctx.PillbugBanned = true
		ctx.BannedPiece = m.Piece
	}
	return movegen.LegalMoves(ctx)
}

func cloneTurnCount(m map[board.Color]int) map[board.Color]int {
	return maps.Clone(m)
}

func cloneQueenLocation(m map[board.Color]hexcoord.Hex) map[board.Color]hexcoord.Hex {
	return maps.Clone(m)
}

func cloneQueenPlaced(m map[board.Color]bool) map[board.Color]bool {
	return maps.Clone(m)
}

func cloneReserves(m map[board.Color]board.Reserve) map[board.Color]board.Reserve {
	out := make(map[board.Color]board.Reserve, len(m))
	for c, r := range m {
		out[c] = maps.Clone(r)
	}
	return out
}

// isLegal reports whether m is present in LegalMoves(s).
func isLegal(s *GameState, m movegen.Move) bool {
	for _, lm := range LegalMoves(s) {
		if lm == m {
			return true
		}
	}
	return false
}

// placementViolation reports, in prose, why p fails the placement rules:
// an occupied destination, one disconnected from the hive, or one touching
// an opposing color before the color-adjacency exemption for a color's own
// first placement lifts.
func placementViolation(s *GameState, p movegen.Placement) string {
	if s.Board.Occupied(p.Dest) {
		return "destination is already occupied"
	}
	if s.Board.NumOccupied() == 0 {
		return "only the origin hex is legal for the very first placement"
	}
	neighbors := s.Board.NeighborsWithPiece(p.Dest)
	if len(neighbors) == 0 {
		return "destination does not touch the hive"
	}
	if s.TurnCount[p.Piece.Color] > 0 {
		for _, n := range neighbors {
			top, _ := s.Board.Top(n)
			if top.Color != p.Piece.Color {
				return "destination touches an opposing color's piece"
			}
		}
	}
	return "destination is not a legal placement"
}

// Apply validates m against LegalMoves(s) and returns the resulting state.
// s is left unmodified; transitions never partially apply.
func Apply(s *GameState, m movegen.Move) (*GameState, error) {
	if !isLegal(s, m) {
		switch mv := m.(type) {
		case movegen.Placement:
			if mv.Piece.Kind != board.KindQueen &&
				s.TurnCount[mv.Piece.Color] >= 3 && !s.QueenPlaced[mv.Piece.Color] {
				return nil, errors.Wrapf(ErrNoQueen, "%v must place its queen by turn 4", mv.Piece.Color)
			}
			return nil, errors.Wrapf(ErrInvalidPlacement, "%v for %v: %s", mv.Dest, mv.Piece, placementViolation(s, mv))
		case movegen.Motion:
			top, occupied := s.Board.Top(mv.From)
			if !occupied || top != mv.Piece {
				return nil, errors.Wrapf(ErrInvalidMove, "top of %v is %v, not %v", mv.From, top, mv.Piece)
			}
			if !topology.CanRemove(s.Board, mv.From) {
				return nil, errors.Wrapf(ErrBreaksConnection, "lifting %v from %v would disconnect the hive", mv.Piece, mv.From)
			}
			return nil, errors.Wrapf(ErrInvalidMove, "%v is not a legal destination for %v from %v", mv.To, mv.Piece, mv.From)
		default:
			return nil, errors.Wrapf(ErrInvalidMove, "%#v is not legal for %v to move", m, s.CurrentTurn)
		}
	}
	switch mv := m.(type) {
	case movegen.Placement:
		return applyPlacement(s, mv)
	case movegen.Motion:
		return applyMotion(s, mv)
	case movegen.Pass:
		return applyPass(s, mv), nil
	default:
		return nil, errors.Errorf("gamestate: unknown move type %T", m)
	}
}

func applyPlacement(s *GameState, mv movegen.Placement) (*GameState, error) {
	if !mv.Dest.ParityOK() {
		return nil, errors.Wrapf(ErrInvalidLocation, "placement destination %v", mv.Dest)
	}

	reserves := cloneReserves(s.Reserves)
	reserves[mv.Piece.Color][mv.Piece.Kind]--

	queenLocation := cloneQueenLocation(s.QueenLocation)
	queenPlaced := cloneQueenPlaced(s.QueenPlaced)
	if mv.Piece.Kind == board.KindQueen {
		queenLocation[mv.Piece.Color] = mv.Dest
		queenPlaced[mv.Piece.Color] = true
	}

	turnCount := cloneTurnCount(s.TurnCount)
	turnCount[mv.Piece.Color]++

	return &GameState{
		Board:             s.Board.WithPushed(mv.Dest, mv.Piece),
		Reserves:          reserves,
		InitialReserves:   s.InitialReserves,
		TurnCount:         turnCount,
		QueenLocation:     queenLocation,
		QueenPlaced:       queenPlaced,
		CurrentTurn:       mv.Piece.Color.Opponent(),
		LastMove:          mv,
		LastMovedPiece:    mv.Piece,
		HasLastMovedPiece: true,
		Parent:            s,
	}, nil
}

func applyMotion(s *GameState, mv movegen.Motion) (*GameState, error) {
	lifted, popped := s.Board.WithPopped(mv.From)
	if popped != mv.Piece {
		return nil, errors.Wrapf(ErrInvalidMove, "top of %v is %v, not %v", mv.From, popped, mv.Piece)
	}

	queenLocation := s.QueenLocation
	if mv.Piece.Kind == board.KindQueen {
		queenLocation = cloneQueenLocation(s.QueenLocation)
		queenLocation[mv.Piece.Color] = mv.To
	}

	turnCount := cloneTurnCount(s.TurnCount)
	turnCount[mv.ActingColor]++

	return &GameState{
		Board:             lifted.WithPushed(mv.To, mv.Piece),
		Reserves:          s.Reserves,
		InitialReserves:   s.InitialReserves,
		TurnCount:         turnCount,
		QueenLocation:     queenLocation,
		QueenPlaced:       s.QueenPlaced,
		CurrentTurn:       mv.ActingColor.Opponent(),
		LastMove:          mv,
		LastMovedPiece:    mv.Piece,
		HasLastMovedPiece: true,
		Parent:            s,
	}, nil
}

func applyPass(s *GameState, mv movegen.Pass) *GameState {
	turnCount := cloneTurnCount(s.TurnCount)
	turnCount[mv.ActingColor]++
	return &GameState{
		Board:             s.Board,
		Reserves:          s.Reserves,
		InitialReserves:   s.InitialReserves,
		TurnCount:         turnCount,
		QueenLocation:     s.QueenLocation,
		QueenPlaced:       s.QueenPlaced,
		CurrentTurn:       mv.ActingColor.Opponent(),
		LastMove:          mv,
		HasLastMovedPiece: false,
		Parent:            s,
	}
}

// HasLost reports whether color's Queen is on the board and completely
// surrounded (all six top-adjacent neighbors occupied).
func HasLost(s *GameState, color board.Color) bool {
	h, ok := s.QueenLocation[color]
	if !ok {
		return false
	}
	return len(s.Board.NeighborsWithPiece(h)) == 6
}

// Winner returns the surviving color and true iff exactly one color has
// lost. A simultaneous double-surround, like the case where neither has
// lost, reports (zero value, false) — "no winner" (see DESIGN.md's Open
// Question decision).
func Winner(s *GameState) (board.Color, bool) {
	whiteLost, blackLost := HasLost(s, board.White), HasLost(s, board.Black)
	switch {
	case whiteLost == blackLost:
		return 0, false
	case whiteLost:
		return board.Black, true
	default:
		return board.White, true
	}
}
