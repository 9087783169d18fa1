package intake

// Format identifies how a document's content is encoded on disk.
type Format string

const (
	FormatEmail Format = "email"
	FormatPDF   Format = "pdf"
	FormatJSON  Format = "json"
)

// Intent is the classified business purpose of a document.
type Intent string

const (
	IntentRFQ        Intent = "RFQ"
	IntentInvoice    Intent = "Invoice"
	IntentComplaint  Intent = "Complaint"
	IntentRegulation Intent = "Regulation"
	IntentOther      Intent = "Other"
)

// NotAvailable is the sentinel recorded for every expected field that
// could not be extracted. Consumers can rely on key presence.
const NotAvailable = "N/A"

// DocumentDescriptor describes one input document. Content, when set,
// takes precedence over Path (inline payloads skip the file read).
type DocumentDescriptor struct {
	Format    Format `yaml:"format"`
	Path      string `yaml:"path"`
	Content   string `yaml:"content"`
	Sender    string `yaml:"sender"`
	ThreadID  string `yaml:"thread_id"`
	Timestamp string `yaml:"timestamp"`
}

// ProcessingRecord is the per-thread result written into the ledger.
// Field order matters: it defines the persisted JSON layout.
type ProcessingRecord struct {
	Source    string         `json:"source"`
	Type      Format         `json:"type"`
	Timestamp string         `json:"timestamp"`
	FilePath  string         `json:"file_path"`
	Intent    Intent         `json:"intent"`
	Extracted map[string]any `json:"extracted_values"`
	Logs      []string       `json:"logs"`
	Anomalies []string       `json:"anomalies,omitempty"`
}
