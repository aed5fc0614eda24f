// Package pieces implements the per-species legal-destination rules: pure
// functions of (board, origin) returning candidate destination hexes for
// the piece currently on top at origin, plus the Pillbug's neighbor-transfer
// ability.
package pieces

import (
	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/generics"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/topology"
)

// Moves returns the candidate ground/own-motion destinations of the top
// piece at origin, dispatching on its PieceKind. It returns nil if origin is
// unoccupied. The Pillbug's transfer ability is not included here; see
// Transfers.
func Moves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	s, ok := b.Get(origin)
	if !ok {
		return nil
	}
	switch s.Top().Kind {
	case board.KindQueen:
		return queenMoves(b, origin)
	case board.KindAnt:
		return antMoves(b, origin)
	case board.KindBeetle:
		return beetleMoves(b, origin)
	case board.KindGrasshopper:
		return grasshopperMoves(b, origin)
	case board.KindSpider:
		return spiderMoves(b, origin)
	case board.KindLadybug:
		return ladybugMoves(b, origin)
	case board.KindPillbug:
		// Own motion is queen-like; transfer ability is separate (Transfers).
		return queenMoves(b, origin)
	case board.KindMosquito:
		return mosquitoMoves(b, origin)
	}
	return nil
}

// hasOccupiedNeighbor reports whether h has at least one occupied neighbor
// on b.
func hasOccupiedNeighbor(b *board.Board, h hexcoord.Hex) bool {
	return len(b.NeighborsWithPiece(h)) > 0
}

// queenMoves: one slide step to an empty neighbor that stays attached to the
// hive and passes the ground-level slide test.
func queenMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	if !topology.CanRemove(b, origin) {
		return nil
	}
	lifted, _ := b.WithPopped(origin)
	var out []hexcoord.Hex
	for _, n := range origin.Neighbors() {
		if lifted.Occupied(n) {
			continue
		}
		if !hasOccupiedNeighbor(lifted, n) {
			continue
		}
		if !topology.CanSlide(lifted, origin, n, 0) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// groundSlideReachable returns every empty hex reachable from origin by an
// arbitrary-length sequence of ground-level slides on lifted (which must
// already have origin removed), excluding origin itself.
func groundSlideReachable(lifted *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	visited := generics.SetWith(origin)
	queue := []hexcoord.Hex{origin}
	var reach []hexcoord.Hex
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if lifted.Occupied(n) || visited.Has(n) {
				continue
			}
			if !hasOccupiedNeighbor(lifted, n) {
				continue
			}
			if !topology.CanSlide(lifted, cur, n, 0) {
				continue
			}
			visited.Insert(n)
			queue = append(queue, n)
			reach = append(reach, n)
		}
	}
	return reach
}

// antMoves: any hex reachable by an arbitrary-length sequence of
// ground-level slides.
func antMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	if !topology.CanRemove(b, origin) {
		return nil
	}
	lifted, _ := b.WithPopped(origin)
	return groundSlideReachable(lifted, origin)
}

// spiderMoves: the union of endpoints of every length-3, non-self-
// intersecting ground-level slide path from origin.
func spiderMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	if !topology.CanRemove(b, origin) {
		return nil
	}
	lifted, _ := b.WithPopped(origin)
	destinations := generics.MakeSet[hexcoord.Hex]()

	var walk func(cur hexcoord.Hex, visited generics.Set[hexcoord.Hex], depth int)
	walk = func(cur hexcoord.Hex, visited generics.Set[hexcoord.Hex], depth int) {
		if depth == 3 {
			destinations.Insert(cur)
			return
		}
		for _, n := range cur.Neighbors() {
			if lifted.Occupied(n) || visited.Has(n) {
				continue
			}
			if !hasOccupiedNeighbor(lifted, n) {
				continue
			}
			if !topology.CanSlide(lifted, cur, n, 0) {
				continue
			}
			next := visited.Clone()
			next.Insert(n)
			walk(n, next, depth+1)
		}
	}
	walk(origin, generics.SetWith(origin), 0)
	return generics.KeysSlice(destinations)
}

// grasshopperMoves: for each of the six line directions, jump over any run
// of occupied hexes to the first empty hex beyond it.
func grasshopperMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	if !topology.CanRemove(b, origin) {
		return nil
	}
	lifted, _ := b.WithPopped(origin)
	var out []hexcoord.Hex
	for d := hexcoord.Direction(0); d < 6; d++ {
		cur := origin.Neighbor(d)
		if !lifted.Occupied(cur) {
			continue
		}
		for lifted.Occupied(cur) {
			cur = cur.Neighbor(d)
		}
		out = append(out, cur)
	}
	return out
}

// beetleMoves: one step to any neighbor. Ground-to-ground moves are gated by
// the slide test; climbing onto an occupied neighbor, or moving while
// already above ground, ignores it.
func beetleMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	if !topology.CanRemove(b, origin) {
		return nil
	}
	s, _ := b.Get(origin)
	aboveGround := s.Height() > 1
	lifted, _ := b.WithPopped(origin)
	var out []hexcoord.Hex
	for _, n := range origin.Neighbors() {
		if aboveGround || lifted.Occupied(n) {
			out = append(out, n)
			continue
		}
		if topology.CanSlide(lifted, origin, n, 0) {
			out = append(out, n)
		}
	}
	return out
}

// ladybugMoves: two steps across the top of the hive, then one step down to
// an empty ground hex.
func ladybugMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	if !topology.CanRemove(b, origin) {
		return nil
	}
	lifted, _ := b.WithPopped(origin)

	s1 := lifted.NeighborsWithPiece(origin)
	s2 := generics.MakeSet[hexcoord.Hex]()
	for _, h := range s1 {
		for _, n := range lifted.NeighborsWithPiece(h) {
			if n == origin {
				continue
			}
			s2.Insert(n)
		}
	}
	destinations := generics.MakeSet[hexcoord.Hex]()
	for h := range s2 {
		for _, n := range lifted.EmptyAdjacent(h) {
			if n == origin {
				continue
			}
			destinations.Insert(n)
		}
	}
	return generics.KeysSlice(destinations)
}

// mosquitoMoves: atop the hive, the Mosquito moves strictly as a Beetle. At
// ground level, a same-level neighboring Mosquito locks it entirely;
// otherwise it is the union, over every top-neighbor, of that neighbor's own
// move rule applied to the Mosquito's origin. Copying another Mosquito
// contributes nothing.
func mosquitoMoves(b *board.Board, origin hexcoord.Hex) []hexcoord.Hex {
	s, ok := b.Get(origin)
	if !ok {
		return nil
	}
	if s.Height() > 1 {
		return beetleMoves(b, origin)
	}

	neighbors := b.NeighborsWithPiece(origin)
	for _, n := range neighbors {
		if t, _ := b.Top(n); t.Kind == board.KindMosquito && b.Height(n) == 1 {
			return nil
		}
	}

	destinations := generics.MakeSet[hexcoord.Hex]()
	for _, n := range neighbors {
		t, _ := b.Top(n)
		var sub []hexcoord.Hex
		switch t.Kind {
		case board.KindQueen, board.KindPillbug:
			sub = queenMoves(b, origin)
		case board.KindAnt:
			sub = antMoves(b, origin)
		case board.KindBeetle:
			sub = beetleMoves(b, origin)
		case board.KindGrasshopper:
			sub = grasshopperMoves(b, origin)
		case board.KindSpider:
			sub = spiderMoves(b, origin)
		case board.KindLadybug:
			sub = ladybugMoves(b, origin)
		case board.KindMosquito:
			continue
		}
		destinations.Insert(sub...)
	}
	return generics.KeysSlice(destinations)
}

// IsPillbugLike reports whether the top piece at h acts as a Pillbug for the
// purpose of the transfer ability: it is a Pillbug outright, or a
// ground-level Mosquito copying an adjacent Pillbug (and not mutual-locked
// by an adjacent Mosquito).
func IsPillbugLike(b *board.Board, h hexcoord.Hex) bool {
	s, ok := b.Get(h)
	if !ok {
		return false
	}
	switch s.Top().Kind {
	case board.KindPillbug:
		return true
	case board.KindMosquito:
		if s.Height() > 1 {
			return false
		}
		neighbors := b.NeighborsWithPiece(h)
		sawPillbug := false
		for _, n := range neighbors {
			t, _ := b.Top(n)
			if t.Kind == board.KindMosquito && b.Height(n) == 1 {
				return false
			}
			if t.Kind == board.KindPillbug {
				sawPillbug = true
			}
		}
		return sawPillbug
	}
	return false
}

// Transfer describes one candidate Pillbug-ability relocation: the piece
// currently at Neighbor is lifted onto the pillbug's hex and set down at
// Dest.
type Transfer struct {
	Neighbor hexcoord.Hex
	Dest     hexcoord.Hex
}

// Transfers enumerates the Pillbug transfer moves available to the
// Pillbug-like piece at h (see IsPillbugLike). The caller is responsible for
// excluding the piece banned by the previous turn's Pillbug move.
func Transfers(b *board.Board, h hexcoord.Hex) []Transfer {
	if !IsPillbugLike(b, h) {
		return nil
	}
	pStack, _ := b.Get(h)
	height := pStack.Height()

	var out []Transfer
	for _, n := range h.Neighbors() {
		nStack, ok := b.Get(n)
		if !ok || nStack.Height() != 1 {
			continue
		}
		if !topology.CanRemove(b, n) {
			continue
		}
		lifted, _ := b.WithPopped(n)
		if !topology.CanSlide(lifted, n, h, height) {
			continue
		}
		for _, d := range h.Neighbors() {
			if d == n || lifted.Occupied(d) {
				continue
			}
			if !topology.CanSlide(lifted, h, d, height) {
				continue
			}
			out = append(out, Transfer{Neighbor: n, Dest: d})
		}
	}
	return out
}
