// Package notation implements the BoardSpace-style textual move format:
// parsing, emission, whole-trajectory replay, and the is-pillbug-move
// heuristic used to detect ambiguous pillbug-assisted motions when replaying
// a trajectory recorded by another tool.
package notation

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/janpfeifer/hivekit/internal/board"
	"github.com/janpfeifer/hivekit/internal/gamestate"
	"github.com/janpfeifer/hivekit/internal/generics"
	"github.com/janpfeifer/hivekit/internal/hexcoord"
	"github.com/janpfeifer/hivekit/internal/movegen"
	"github.com/janpfeifer/hivekit/internal/pieces"
	"github.com/pkg/errors"
)

// indicator associates a '-', '/', '\' token and its position relative to
// the reference piece with the direction from reference to target, per the
// authoritative table.
type indicatorPos int

const (
	posBefore indicatorPos = iota
	posAfter
)

type indicatorKey struct {
	char rune
	pos  indicatorPos
}

var indicatorToDirection = map[indicatorKey]hexcoord.Direction{
	{'-', posBefore}: hexcoord.DirectionW,
	{'-', posAfter}:  hexcoord.DirectionE,
	{'/', posBefore}: hexcoord.DirectionSW,
	{'/', posAfter}:  hexcoord.DirectionNE,
	{'\\', posBefore}: hexcoord.DirectionNW,
	{'\\', posAfter}:  hexcoord.DirectionSE,
}

var directionToIndicator = func() map[hexcoord.Direction]indicatorKey {
	m := make(map[hexcoord.Direction]indicatorKey, len(indicatorToDirection))
	for k, d := range indicatorToDirection {
		m[d] = k
	}
	return m
}()

// clockwiseFromEast reorders h's six neighbors starting from the East
// neighbor: the deterministic reference-piece scan order used for emission
// (see findReference).
func clockwiseFromEast(h hexcoord.Hex) [6]hexcoord.Hex {
	all := h.Neighbors()
	var out [6]hexcoord.Hex
	for i := range all {
		out[i] = all[(i+int(hexcoord.DirectionE))%6]
	}
	return out
}

// parseShortName splits a short-name token into color, kind and an optional
// number (0 if the token omitted it).
func parseShortName(tok string) (board.Color, board.PieceKind, uint8, error) {
	if len(tok) < 2 {
		return 0, 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "short name %q too short", tok)
	}
	var color board.Color
	switch tok[0] {
	case 'w':
		color = board.White
	case 'b':
		color = board.Black
	default:
		return 0, 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "unknown color letter in %q", tok)
	}
	kind, ok := board.KindFromLetter(tok[1:2])
	if !ok {
		return 0, 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "unknown piece letter in %q", tok)
	}
	var number uint8
	if len(tok) > 2 {
		n, err := strconv.Atoi(tok[2:])
		if err != nil || n <= 0 {
			return 0, 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "bad piece number in %q", tok)
		}
		number = uint8(n)
	}
	return color, kind, number, nil
}

// resolvePiece finds the actual Piece a short name denotes on s: if it is
// already on the board, the existing Piece (with its true Number, whether or
// not the token carried one); otherwise a newly-numbered Piece to come from
// reserves.
func resolvePiece(s *gamestate.GameState, tok string) (piece board.Piece, onBoard bool, err error) {
	color, kind, number, err := parseShortName(tok)
	if err != nil {
		return board.Piece{}, false, err
	}
	if number != 0 {
		p := board.Piece{Color: color, Kind: kind, Number: number}
		_, _, found := s.Board.Find(p)
		return p, found, nil
	}
	// No number given: if the side has exactly one placed copy of this
	// kind, that's the piece; more than one placed copy is ambiguous and
	// rejected; with none placed it is the (first) reserve copy.
	var found *board.Piece
	for _, h := range s.Board.OccupiedHexes() {
		stk, _ := s.Board.Get(h)
		for _, p := range stk {
			if p.Color == color && p.Kind == kind {
				if found != nil {
					return board.Piece{}, false, errors.Wrapf(gamestate.ErrUnknownReference,
						"ambiguous short name %q: more than one copy on the board", tok)
				}
				cp := p
				found = &cp
			}
		}
	}
	if found != nil {
		return *found, true, nil
	}
	initial := s.InitialReserves[color][kind]
	remaining := s.Reserves[color][kind]
	return board.Piece{Color: color, Kind: kind, Number: initial - remaining + 1}, false, nil
}

// parseRefToken splits a reference token into the bare short name and the
// direction from the reference to the target, or reports beetleOnStack if
// there was no direction indicator at all.
func parseRefToken(tok string) (shortName string, dir hexcoord.Direction, beetleOnStack bool) {
	if tok == "" {
		return tok, 0, true
	}
	first := rune(tok[0])
	last := rune(tok[len(tok)-1])
	if d, ok := indicatorToDirection[indicatorKey{first, posBefore}]; ok {
		return tok[1:], d, false
	}
	if d, ok := indicatorToDirection[indicatorKey{last, posAfter}]; ok {
		return tok[:len(tok)-1], d, false
	}
	return tok, 0, true
}

// ParseMove decodes one notation token into a Move, resolving pieces and
// references against s (acting color, reserves, board). It does not itself validate the move
// against gamestate.LegalMoves; callers that need that call
// gamestate.Apply.
func ParseMove(s *gamestate.GameState, text string) (movegen.Move, error) {
	text = strings.TrimSpace(text)
	if text == "pass" {
		return movegen.Pass{ActingColor: s.CurrentTurn}, nil
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, errors.Wrapf(gamestate.ErrMalformedNotation, "empty move text")
	}

	moverPiece, onBoard, err := resolvePiece(s, fields[0])
	if err != nil {
		return nil, err
	}

	if len(fields) == 1 {
		if onBoard {
			return nil, errors.Wrapf(gamestate.ErrMalformedNotation,
				"%q names a piece already on the board but gives no reference", text)
		}
		return movegen.Placement{Piece: moverPiece, Dest: hexcoord.Origin}, nil
	}
	if len(fields) != 2 {
		return nil, errors.Wrapf(gamestate.ErrMalformedNotation, "too many tokens in %q", text)
	}

	refName, dir, beetleOnStack := parseRefToken(fields[1])
	refColor, refKind, refNumber, err := parseShortName(refName)
	if err != nil {
		return nil, err
	}
	var refPiece board.Piece
	if refNumber != 0 {
		refPiece = board.Piece{Color: refColor, Kind: refKind, Number: refNumber}
	} else {
		p, found, err := resolvePiece(s, refName)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.Wrapf(gamestate.ErrUnknownReference, "reference %q not on board", refName)
		}
		refPiece = p
	}
	refHex, _, found := s.Board.Find(refPiece)
	if !found {
		return nil, errors.Wrapf(gamestate.ErrUnknownReference, "reference %v not on board", refPiece)
	}

	var dest hexcoord.Hex
	if beetleOnStack {
		dest = refHex
	} else {
		dest = refHex.Neighbor(dir)
	}

	if !onBoard {
		return movegen.Placement{Piece: moverPiece, Dest: dest}, nil
	}
	fromHex, _, found := s.Board.Find(moverPiece)
	if !found {
		return nil, errors.Wrapf(gamestate.ErrUnknownReference, "mover %v not on board", moverPiece)
	}
	return movegen.Motion{
		Piece:         moverPiece,
		From:          fromHex,
		To:            dest,
		ActingColor:   s.CurrentTurn,
		PillbugAssist: moverPiece.Color != s.CurrentTurn,
	}, nil
}

// noExclusion is passed to formatRelative for a Placement, which has no
// "from" hex to exclude from reference-piece candidates.
var noExclusion = hexcoord.Hex{Q: 1 << 20, R: 1 << 20}

// findReference scans dest's neighbors in clockwise order starting from
// East for the first occupied hex other than exclude, returning its top
// piece and the direction from that piece's hex to dest.
func findReference(b *board.Board, dest, exclude hexcoord.Hex) (board.Piece, hexcoord.Direction, bool) {
	for _, n := range clockwiseFromEast(dest) {
		if n == exclude || !b.Occupied(n) {
			continue
		}
		top, _ := b.Top(n)
		d, _ := hexcoord.DirectionOf(n, dest)
		return top, d, true
	}
	return board.Piece{}, 0, false
}

// FormatMove renders m as notation text relative to s (the state m is about
// to be applied to).
func FormatMove(s *gamestate.GameState, m movegen.Move) (string, error) {
	switch mv := m.(type) {
	case movegen.Pass:
		return "pass", nil
	case movegen.Placement:
		if s.Board.NumOccupied() == 0 {
			return mv.Piece.String(), nil
		}
		return formatRelative(s.Board, mv.Piece, mv.Dest, noExclusion)
	case movegen.Motion:
		return formatRelative(s.Board, mv.Piece, mv.To, mv.From)
	default:
		return "", errors.Errorf("notation: unknown move type %T", m)
	}
}

// formatRelative renders "<piece> <ref><indicator>" or the beetle-on-stack
// form "<piece> <ref>", excluding the mover's own (pre-move) hex as a
// candidate reference.
func formatRelative(b *board.Board, piece board.Piece, dest, exclude hexcoord.Hex) (string, error) {
	if b.Occupied(dest) {
		top, _ := b.Top(dest)
		return piece.String() + " " + top.String(), nil
	}
	ref, dir, ok := findReference(b, dest, exclude)
	if !ok {
		return "", errors.Wrapf(gamestate.ErrUnknownReference, "no reference piece adjacent to %v", dest)
	}
	key := directionToIndicator[dir]
	if key.pos == posBefore {
		return piece.String() + " " + string(key.char) + ref.String(), nil
	}
	return piece.String() + " " + ref.String() + string(key.char), nil
}

// Replay constructs the root state (with the expansion set enabled, since
// Ladybug/Mosquito/Pillbug short names may appear) and applies moves in
// order, alternating acting color starting with White. turnHint, if
// non-empty, is a string like "Black[18]" that overrides the final
// CurrentTurn (the move count itself is informational only). A parsed Motion
// that IsPillbugMove recognizes as pillbug-assisted is flagged as such before
// it is applied.
func Replay(moves []string, turnHint string) (*gamestate.GameState, error) {
	s := gamestate.Initial(true)
	for i, text := range moves {
		m, err := ParseMove(s, text)
		if err != nil {
			return nil, errors.Wrapf(err, "move %d (%q)", i+1, text)
		}
		if mo, ok := m.(movegen.Motion); ok && !mo.PillbugAssist && IsPillbugMove(s, mo) {
			mo.PillbugAssist = true
			m = mo
		}
		s, err = gamestate.Apply(s, m)
		if err != nil {
			return nil, errors.Wrapf(err, "move %d (%q)", i+1, text)
		}
	}
	if turnHint != "" {
		color, _, err := parseTurnHint(turnHint)
		if err != nil {
			return nil, err
		}
		s.CurrentTurn = color
	}
	return s, nil
}

// parseTurnHint decodes a "White[12]" / "Black[18]" style field into a color
// and the full-move count.
func parseTurnHint(hint string) (board.Color, int, error) {
	open := strings.IndexByte(hint, '[')
	if open < 0 || !strings.HasSuffix(hint, "]") {
		return 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "bad turn hint %q", hint)
	}
	colorText, countText := hint[:open], hint[open+1:len(hint)-1]
	var color board.Color
	switch colorText {
	case "White":
		color = board.White
	case "Black":
		color = board.Black
	default:
		return 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "bad turn hint color %q", colorText)
	}
	n, err := strconv.Atoi(countText)
	if err != nil {
		return 0, 0, errors.Wrapf(gamestate.ErrMalformedNotation, "bad turn hint count %q", countText)
	}
	return color, n, nil
}

// SaveTrajectory writes moves to path, one move per line, overwriting any
// existing file.
func SaveTrajectory(moves []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "notation: creating %q", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, m := range moves {
		if _, err := w.WriteString(m + "\n"); err != nil {
			return errors.Wrapf(err, "notation: writing %q", path)
		}
	}
	return errors.Wrapf(w.Flush(), "notation: flushing %q", path)
}

// LoadTrajectory reads path's move-per-line text and returns the raw move
// texts, in order. Blank lines are skipped.
func LoadTrajectory(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "notation: opening %q", path)
	}
	defer f.Close()
	var moves []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		moves = append(moves, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "notation: reading %q", path)
	}
	return moves, nil
}

// commonNeighbors returns the hexes that are neighbors of both a and b.
func commonNeighbors(a, b hexcoord.Hex) []hexcoord.Hex {
	bSet := generics.MakeSet[hexcoord.Hex]()
	for _, h := range b.Neighbors() {
		bSet.Insert(h)
	}
	var out []hexcoord.Hex
	for _, h := range a.Neighbors() {
		if bSet.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// IsPillbugMove reports whether m (a Motion legal in, or about to be applied
// to, s) was made with Pillbug assistance: either it is flagged directly, or
// some Pillbug/Mosquito is adjacent to both endpoints and either the piece's
// own color differs from the acting color, or the piece could not have made
// the same move unassisted in s.
func IsPillbugMove(s *gamestate.GameState, m movegen.Move) bool {
	mo, ok := m.(movegen.Motion)
	if !ok {
		return false
	}
	if mo.PillbugAssist {
		return true
	}
	hasAdjacentPillbugLike := false
	for _, h := range commonNeighbors(mo.From, mo.To) {
		top, ok := s.Board.Top(h)
		if ok && (top.Kind == board.KindPillbug || top.Kind == board.KindMosquito) {
			hasAdjacentPillbugLike = true
			break
		}
	}
	if !hasAdjacentPillbugLike {
		return false
	}
	if mo.Piece.Color != mo.ActingColor {
		return true
	}
	for _, d := range pieces.Moves(s.Board, mo.From) {
		if d == mo.To {
			return false
		}
	}
	return true
}
