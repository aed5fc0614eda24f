package gamestate

import "github.com/pkg/errors"

// Error taxonomy (§7): tagged sentinels, exhaustively matchable with
// errors.Is. Every package that raises a contract violation wraps one of
// these with errors.Wrapf to add context.
var (
	// ErrInvalidLocation means a hex fails the doubled-width parity rule.
	ErrInvalidLocation = errors.New("hivekit: invalid location")

	// ErrInvalidPlacement means a placement is disconnected, violates the
	// color-adjacency rule, or targets an occupied hex.
	ErrInvalidPlacement = errors.New("hivekit: invalid placement")

	// ErrInvalidMove means a motion of a buried piece, a destination not in
	// the legal set, or no piece at the named source.
	ErrInvalidMove = errors.New("hivekit: invalid move")

	// ErrBreaksConnection means removing a piece would disconnect the hive.
	ErrBreaksConnection = errors.New("hivekit: move breaks hive connection")

	// ErrNoQueen means the required Queen placement by turn 4 was not
	// honored.
	ErrNoQueen = errors.New("hivekit: queen not placed by turn 4")

	// ErrMalformedNotation means the notation parser could not decode a
	// move string.
	ErrMalformedNotation = errors.New("hivekit: malformed notation")

	// ErrUnknownReference means notation names a piece not currently on the
	// board.
	ErrUnknownReference = errors.New("hivekit: unknown piece reference")
)
