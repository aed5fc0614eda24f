// Package replaystore implements the indexed, line-oriented replay file: one
// game per line, `;`-separated fields (units, result, turn, moves…), with a
// byte-offset index built on open for O(1) random access and lazy batch
// iteration. Malformed lines are skipped with diagnostic counting rather
// than aborting the stream.
package replaystore

import (
	"bufio"
	"os"
	"strings"

	"github.com/janpfeifer/hivekit/internal/gamestate"
	"github.com/janpfeifer/hivekit/internal/notation"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Record is one parsed replay line, before it is replayed into a GameState.
type Record struct {
	Units    string
	Result   string
	TurnHint string
	Moves    []string
}

// parseLine splits a raw line into a Record. A line with fewer than three
// fields (units, result, turn) is malformed.
func parseLine(line string) (Record, error) {
	fields := strings.Split(line, ";")
	if len(fields) < 3 {
		return Record{}, errors.Errorf("replaystore: line has %d fields, want at least 3", len(fields))
	}
	return Record{
		Units:    fields[0],
		Result:   fields[1],
		TurnHint: fields[2],
		Moves:    fields[3:],
	}, nil
}

// State replays r's moves into the final GameState.
func (r Record) State() (*gamestate.GameState, error) {
	return notation.Replay(r.Moves, r.TurnHint)
}

// Store is an opened replay file with a byte-offset index of every line
// start, enabling random access to the nth game without scanning the whole
// file.
type Store struct {
	path    string
	file    *os.File
	offsets []int64

	cursor int // next unread index, for batch iteration
}

// Open indexes path's line starts and returns a Store ready for random
// access and batch iteration. The file is kept open for the Store's
// lifetime; callers must call Close.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "replaystore: opening %q", path)
	}
	s := &Store{path: path, file: f}
	if err := s.buildIndex(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) buildIndex() error {
	if _, err := s.file.Seek(0, 0); err != nil {
		return errors.Wrapf(err, "replaystore: seeking %q", s.path)
	}
	var offset int64
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			s.offsets = append(s.offsets, offset)
		}
		offset += int64(len(line)) + 1 // +1 for the newline the scanner stripped
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "replaystore: indexing %q", s.path)
	}
	return nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	return s.file.Close()
}

// Len returns the number of non-blank lines (games) in the store.
func (s *Store) Len() int {
	return len(s.offsets)
}

// readLineAt seeks to the byte offset of the n-th line and reads it back.
func (s *Store) readLineAt(n int) (string, error) {
	if n < 0 || n >= len(s.offsets) {
		return "", errors.Errorf("replaystore: index %d out of range [0, %d)", n, len(s.offsets))
	}
	if _, err := s.file.Seek(s.offsets[n], 0); err != nil {
		return "", errors.Wrapf(err, "replaystore: seeking to game %d", n)
	}
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errors.Wrapf(err, "replaystore: reading game %d", n)
		}
		return "", errors.Errorf("replaystore: game %d is empty", n)
	}
	return scanner.Text(), nil
}

// Record returns the n-th game's parsed Record, by direct seek — O(1)
// random access regardless of file size.
func (s *Store) Record(n int) (Record, error) {
	line, err := s.readLineAt(n)
	if err != nil {
		return Record{}, err
	}
	return parseLine(line)
}

// State returns the n-th game replayed to its final GameState.
func (s *Store) State(n int) (*gamestate.GameState, error) {
	r, err := s.Record(n)
	if err != nil {
		return nil, err
	}
	return r.State()
}

// Batch is the result of one NextBatch call: the Records that parsed and
// replayed successfully, and how many of the batchSize lines scanned were
// skipped (malformed notation or a replay failure), each logged via klog.
type Batch struct {
	Records []Record
	Skipped int
}

// Reset rewinds batch iteration to the start of the store.
func (s *Store) Reset() {
	s.cursor = 0
}

// NextBatch advances the iteration cursor by up to batchSize lines,
// returning the Records that parsed and replayed cleanly plus a count of
// skipped lines, and whether any lines remained to scan. Skipped lines never
// abort the batch; they are counted and logged.
func (s *Store) NextBatch(batchSize int) (Batch, bool) {
	if s.cursor >= len(s.offsets) {
		return Batch{}, false
	}
	end := min(s.cursor+batchSize, len(s.offsets))
	var batch Batch
	for i := s.cursor; i < end; i++ {
		line, err := s.readLineAt(i)
		if err != nil {
			klog.Warningf("replaystore: reading game %d: %v", i, err)
			batch.Skipped++
			continue
		}
		record, err := parseLine(line)
		if err != nil {
			klog.Warningf("replaystore: parsing game %d: %v", i, err)
			batch.Skipped++
			continue
		}
		if _, err := record.State(); err != nil {
			klog.Warningf("replaystore: replaying game %d: %v", i, err)
			batch.Skipped++
			continue
		}
		batch.Records = append(batch.Records, record)
	}
	s.cursor = end
	return batch, true
}
