// Package topology implements the hive-connectivity invariants: connected
// components, removability (the one-hive rule), and slideability (the
// two-gate freedom-to-move rule), height-aware for beetles, mosquitoes and
// pillbug transfers.
package topology

import (
	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/generics"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
)

// ConnectedComponent returns the set of occupied hexes reachable from start
// by BFS over NeighborsWithPiece, skipping any hex in ignore. If start
// itself is in ignore or unoccupied, it returns an empty set (start is
// conceptually not part of the hive being examined).
func ConnectedComponent(b *board.Board, start hexcoord.Hex, ignore generics.Set[hexcoord.Hex]) generics.Set[hexcoord.Hex] {
	visited := generics.MakeSet[hexcoord.Hex]()
	if ignore.Has(start) || !b.Occupied(start) {
		return visited
	}
	queue := []hexcoord.Hex{start}
	visited.Insert(start)
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		for _, n := range b.NeighborsWithPiece(h) {
			if ignore.Has(n) || visited.Has(n) {
				continue
			}
			visited.Insert(n)
			queue = append(queue, n)
		}
	}
	return visited
}

// AllOccupiedConnected reports whether the occupied hexes of b, minus
// ignore, form a single connected component (or are empty).
func AllOccupiedConnected(b *board.Board, ignore generics.Set[hexcoord.Hex]) bool {
	var start hexcoord.Hex
	found := false
	total := 0
	for _, h := range b.OccupiedHexes() {
		if ignore.Has(h) {
			continue
		}
		total++
		if !found {
			start = h
			found = true
		}
	}
	if total == 0 {
		return true
	}
	return len(ConnectedComponent(b, start, ignore)) == total
}

// CanRemove reports whether the top piece at h can be lifted without
// disconnecting the hive: always true above ground level (height >= 2),
// true when the board has two or fewer pieces total (lifting either of them
// cannot disconnect anything), and otherwise equivalent to
// AllOccupiedConnected with h ignored.
func CanRemove(b *board.Board, h hexcoord.Hex) bool {
	height := b.Height(h)
	if height == 0 {
		return false
	}
	if height >= 2 {
		return true
	}
	if b.NumOccupied() <= 2 {
		return true
	}
	return AllOccupiedConnected(b, generics.SetWith(h))
}

// gateDirections returns the two directions, relative to a slide direction
// d, of the hexes that gate a slide in that direction: the neighbors
// immediately flanking it in clockwise order.
func gateDirections(d hexcoord.Direction) (hexcoord.Direction, hexcoord.Direction) {
	return (d + 5) % 6, (d + 1) % 6
}

// CanSlide encodes the ground-level freedom-to-move rule for a slide between
// adjacent hexes from->to, ignoring the piece currently being moved (it must
// already have been lifted from the board, or from/to computed as if it
// had). heightThreshold is 0 for ground-level movers; for a piece moving
// atop the hive at height k (beetle/mosquito-as-beetle, or a pillbug-
// transferred piece riding over a stack) it is k. The move is blocked iff
// both gate hexes have stacks strictly taller than heightThreshold.
func CanSlide(b *board.Board, from, to hexcoord.Hex, heightThreshold int) bool {
	d, ok := hexcoord.DirectionOf(from, to)
	if !ok {
		return false
	}
	g1dir, g2dir := gateDirections(d)
	gate1 := from.Neighbor(g1dir)
	gate2 := from.Neighbor(g2dir)
	return b.Height(gate1) <= heightThreshold || b.Height(gate2) <= heightThreshold
}
