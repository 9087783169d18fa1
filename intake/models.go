package intake

import "time"

// ProcessedDocument is the per-file audit row, keyed by path + content
// digest. Re-processing the same file updates ProcessedAt; it never
// blocks the run, since re-runs must overwrite ledger entries.
type ProcessedDocument struct {
	ID          uint   `gorm:"primaryKey"`
	Path        string `gorm:"uniqueIndex:uniq_doc_path_sha;size:1024"`
	SHA256      string `gorm:"uniqueIndex:uniq_doc_path_sha;size:64"`
	ThreadID    string `gorm:"index;size:128"`
	SizeBytes   int64
	ProcessedAt time.Time `gorm:"index"`
	LastError   string    `gorm:"type:text"`
}

// ArchiveRecord is one append-only row per pipeline run per document.
type ArchiveRecord struct {
	ID         uint      `gorm:"primaryKey"`
	IngestedAt time.Time `gorm:"index"`
	ThreadID   string    `gorm:"index;size:128"`
	Sender     string    `gorm:"index;size:256"`
	Format     string    `gorm:"index;size:16"`
	Intent     string    `gorm:"index;size:16"`
	SourcePath string    `gorm:"index;size:1024"`
	// ContentSHA links the row to its ProcessedDocument by digest.
	ContentSHA string `gorm:"column:content_sha256;index;size:64"`
	RawContent string `gorm:"type:text"`
	FieldsJSON string `gorm:"type:text"`
	FlatJSON   string `gorm:"type:text"`
	Anomalies  string `gorm:"type:text"`
	TraceJSON  string `gorm:"type:text"`
}
