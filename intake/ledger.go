package intake

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Ledger maps thread ids to their latest processing record. It grows
// monotonically during a run; recording the same thread id twice
// overwrites the earlier record.
type Ledger struct {
	records map[string]ProcessingRecord
}

func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]ProcessingRecord)}
}

// Record stores rec under threadID, replacing any prior record.
func (l *Ledger) Record(threadID string, rec ProcessingRecord) {
	l.records[threadID] = rec
}

func (l *Ledger) Get(threadID string) (ProcessingRecord, bool) {
	rec, ok := l.records[threadID]
	return rec, ok
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// ThreadIDs returns the recorded thread ids in sorted order.
func (l *Ledger) ThreadIDs() []string {
	ids := make([]string, 0, len(l.records))
	for id := range l.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Persist writes the whole ledger to path as one indented JSON document,
// replacing any prior contents. Map keys are emitted sorted, so
// persist/load/persist round-trips are byte-identical.
func (l *Ledger) Persist(path string) error {
	b, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("persist ledger to %s: %w", path, err)
	}
	return nil
}

// Load merges a previously persisted ledger into memory. Records loaded
// from disk overwrite in-memory records for the same thread id. A
// missing file is not an error; a run may start from an empty ledger.
func (l *Ledger) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load ledger from %s: %w", path, err)
	}
	var loaded map[string]ProcessingRecord
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("decode ledger %s: %w", path, err)
	}
	for id, rec := range loaded {
		l.records[id] = rec
	}
	return nil
}
