// Command hivereplay inspects, validates, and reindexes replay-store files:
// it reports how many games a file indexes, replays and prints one game by
// index, or scans the whole file in batches and writes out a cleaned copy
// with malformed lines dropped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/janpfeifer/hivekit/internal/replaystore"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagInput     = flag.String("input", "", "Replay-store file to read.")
	flagOutput    = flag.String("output", "", "If set, write a reindexed copy with malformed lines dropped.")
	flagIndex     = flag.Int("index", -1, "If >= 0, print just this one game's record and final state.")
	flagBatchSize = flag.Int("batch_size", 256, "Batch size used when scanning the whole file.")
)

func writeRecord(w *bufio.Writer, r replaystore.Record) error {
	fields := append([]string{r.Units, r.Result, r.TurnHint}, r.Moves...)
	_, err := w.WriteString(strings.Join(fields, ";") + "\n")
	return err
}

func inspectOne(store *replaystore.Store, index int) error {
	record, err := store.Record(index)
	if err != nil {
		return errors.Wrapf(err, "reading game %d", index)
	}
	state, err := record.State()
	if err != nil {
		return errors.Wrapf(err, "replaying game %d", index)
	}
	fmt.Printf("game %d: units=%q result=%q moves=%d final_turn=%v\n",
		index, record.Units, record.Result, len(record.Moves), state.CurrentTurn)
	return nil
}

func scanAll(store *replaystore.Store, batchSize int) (kept []replaystore.Record, skipped int) {
	store.Reset()
	for {
		batch, more := store.NextBatch(batchSize)
		kept = append(kept, batch.Records...)
		skipped += batch.Skipped
		if !more {
			return kept, skipped
		}
	}
}

func writeReindexed(path string, records []replaystore.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, r := range records {
		if err := writeRecord(w, r); err != nil {
			return errors.Wrapf(err, "writing %q", path)
		}
	}
	return errors.Wrapf(w.Flush(), "flushing %q", path)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagInput == "" {
		klog.Fatal("-input is required")
	}

	store := must.M1(replaystore.Open(*flagInput))
	defer store.Close()
	fmt.Printf("%d games indexed in %q\n", store.Len(), *flagInput)

	if *flagIndex >= 0 {
		must.M(inspectOne(store, *flagIndex))
		return
	}

	kept, skipped := scanAll(store, *flagBatchSize)
	fmt.Printf("scanned %d games: %d valid, %d skipped\n", store.Len(), len(kept), skipped)

	if *flagOutput != "" {
		must.M(writeReindexed(*flagOutput, kept))
		fmt.Printf("wrote %d games to %q\n", len(kept), *flagOutput)
	}
}
