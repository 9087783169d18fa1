package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RunnerConfig struct {
	// LedgerPath is where the JSON ledger is persisted after each run.
	LedgerPath string
	// DBPath enables the sqlite archive when set.
	DBPath string
	// ErrorDir receives input files that could not be read or decoded.
	ErrorDir string
	Debug    bool
	// Documents are processed in order, one at a time.
	Documents []DocumentDescriptor
}

type Runner struct {
	cfg    RunnerConfig
	db     *gorm.DB
	ledger *Ledger
}

type runStats struct {
	Documents   int
	ReadErrors  int
	Anomalies   int
	Archived    int
	ArchiveErrs int
	FilesMoved  int
}

func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if strings.TrimSpace(cfg.LedgerPath) == "" {
		return nil, fmt.Errorf("LedgerPath is required")
	}
	r := &Runner{cfg: cfg, ledger: NewLedger()}
	if strings.TrimSpace(cfg.DBPath) != "" {
		db, err := OpenDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		r.db = db
	}
	return r, nil
}

func (r *Runner) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	r.db = nil
	return err
}

// Ledger exposes the in-memory ledger, mainly for inspection after a run.
func (r *Runner) Ledger() *Ledger {
	return r.ledger
}

func (r *Runner) debugf(format string, args ...any) {
	if r == nil || !r.cfg.Debug {
		return
	}
	log.Printf(format, args...)
}

// RunOnce processes the configured documents in order and persists the
// ledger. Per-document failures are contained in that document's record;
// only a ledger persist failure aborts with an error.
func (r *Runner) RunOnce() error {
	start := time.Now()
	stats := &runStats{}

	if err := r.ledger.Load(r.cfg.LedgerPath); err != nil {
		// A broken prior ledger should not block new work; start fresh.
		log.Printf("ledger load failed, starting empty: %v", err)
	}

	for _, d := range r.cfg.Documents {
		threadID, rec := r.process(d, stats)
		r.ledger.Record(threadID, rec)
		r.debugf("processed thread=%s format=%s intent=%s anomalies=%d", threadID, d.Format, rec.Intent, len(rec.Anomalies))
	}

	if err := r.ledger.Persist(r.cfg.LedgerPath); err != nil {
		return err
	}

	r.debugf("run done: documents=%d readErrors=%d anomalies=%d archived=%d archiveErrs=%d filesMoved=%d elapsed=%s",
		stats.Documents, stats.ReadErrors, stats.Anomalies, stats.Archived, stats.ArchiveErrs, stats.FilesMoved, time.Since(start))
	return nil
}

func (r *Runner) process(d DocumentDescriptor, stats *runStats) (string, ProcessingRecord) {
	stats.Documents++

	threadID := strings.TrimSpace(d.ThreadID)
	trace := []string{}
	if threadID == "" {
		threadID = "thread-" + uuid.NewString()
		trace = append(trace, fmt.Sprintf("Router: descriptor without thread id, assigned %s", threadID))
	}
	timestamp := d.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	trace = append(trace, fmt.Sprintf("Router: detected %s from %s", d.Format, sourceName(d)))

	content, decoded, readErr := ReadDocument(d)

	intent := IntentOther
	var fields map[string]any
	var anomalies []string

	switch {
	case readErr != nil && content == "":
		// Content read failure: degrade to Other with empty fields.
		trace = append(trace, fmt.Sprintf("Router: read error: %v", readErr))
		fields = map[string]any{}
		stats.ReadErrors++
		r.quarantine(d, stats)
	case readErr != nil:
		// Content was read but the JSON payload did not parse.
		trace = append(trace, fmt.Sprintf("Router: %v", readErr))
		fields = map[string]any{}
		anomalies = []string{fmt.Sprintf("unparsable JSON payload: %v", readErr)}
		stats.ReadErrors++
		r.quarantine(d, stats)
	default:
		var ctrace []string
		intent, ctrace = Classify(content, d.Format, decoded)
		trace = append(trace, ctrace...)
		if d.Format == FormatJSON {
			var etrace []string
			fields, anomalies, etrace = ExtractFromJSON(decoded, intent)
			trace = append(trace, etrace...)
		} else {
			var etrace []string
			fields, etrace = ExtractFromText(content, intent)
			trace = append(trace, etrace...)
		}
	}
	stats.Anomalies += len(anomalies)

	if d.Sender != "" {
		fields["sender"] = d.Sender
	}

	rec := ProcessingRecord{
		Source:    d.Sender,
		Type:      d.Format,
		Timestamp: timestamp,
		FilePath:  d.Path,
		Intent:    intent,
		Extracted: fields,
		Logs:      trace,
		Anomalies: anomalies,
	}

	if err := r.archive(threadID, d, rec, content, decoded); err != nil {
		r.debugf("archive failed thread=%s err=%v", threadID, err)
		stats.ArchiveErrs++
	} else if r.db != nil {
		stats.Archived++
	}

	return threadID, rec
}

func sourceName(d DocumentDescriptor) string {
	if d.Path != "" {
		return d.Path
	}
	return "inline content"
}

// quarantine moves a failed input file out of the input directory so the
// next run does not trip over it again.
func (r *Runner) quarantine(d DocumentDescriptor, stats *runStats) {
	if strings.TrimSpace(r.cfg.ErrorDir) == "" || d.Path == "" {
		return
	}
	if _, err := os.Stat(d.Path); err != nil {
		return
	}
	if _, err := QuarantineFile(d.Path, r.cfg.ErrorDir); err != nil {
		r.debugf("quarantine failed path=%q err=%v", d.Path, err)
		return
	}
	stats.FilesMoved++
}

func (r *Runner) archive(threadID string, d DocumentDescriptor, rec ProcessingRecord, content string, decoded any) error {
	if r.db == nil {
		return nil
	}
	now := time.Now().UTC()
	sha := HashContent([]byte(content))

	fieldsJSON, err := json.Marshal(rec.Extracted)
	if err != nil {
		return err
	}
	flatJSON := "{}"
	if decoded != nil {
		b, err := json.Marshal(FlattenJSON(decoded))
		if err != nil {
			return err
		}
		flatJSON = string(b)
	}
	traceJSON, err := json.Marshal(rec.Logs)
	if err != nil {
		return err
	}

	ar := ArchiveRecord{
		IngestedAt: now,
		ThreadID:   threadID,
		Sender:     d.Sender,
		Format:     string(d.Format),
		Intent:     string(rec.Intent),
		SourcePath: d.Path,
		ContentSHA: sha,
		RawContent: content,
		FieldsJSON: string(fieldsJSON),
		FlatJSON:   flatJSON,
		Anomalies:  strings.Join(rec.Anomalies, "; "),
		TraceJSON:  string(traceJSON),
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ar).Error; err != nil {
			return err
		}
		var pd ProcessedDocument
		err := tx.Where("path = ? AND sha256 = ?", d.Path, sha).First(&pd).Error
		switch {
		case err == nil:
			return tx.Model(&ProcessedDocument{}).
				Where("id = ?", pd.ID).
				Updates(map[string]any{"processed_at": now, "thread_id": threadID}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			pd = ProcessedDocument{
				Path:        d.Path,
				SHA256:      sha,
				ThreadID:    threadID,
				SizeBytes:   int64(len(content)),
				ProcessedAt: now,
			}
			return tx.Create(&pd).Error
		default:
			return err
		}
	})
}
