package intake

import (
	"os"
	"path/filepath"
	"time"
)

type sampleFile struct {
	name    string
	format  Format
	sender  string
	thread  string
	content string
}

// Demo inputs mirroring a small day of intake traffic: two emails, two
// structured invoices, one regulation notice and one plain contact note
// (the notice and the note stand in for extracted PDF text).
var sampleFiles = []sampleFile{
	{
		name:    "email_rfq.txt",
		format:  FormatEmail,
		sender:  "john.doe@example.com",
		thread:  "thread_123",
		content: "Urgent RFQ: need 250 units of Product Widget for the assembly line.\nPlease send a quote by Friday.\n",
	},
	{
		name:    "email_complaint.txt",
		format:  FormatEmail,
		sender:  "jane.smith@example.com",
		thread:  "thread_124",
		content: "Complaint - Damaged Order #98765, item arrived broken.\nPlease advise on replacement.\n",
	},
	{
		name:    "sales_invoice.json",
		format:  FormatJSON,
		sender:  "system@example.com",
		thread:  "thread_456",
		content: `{"DocDtls":{"Typ":"INV","No":"SALE2025-114","Dt":"2025-05-12"},"ValDtls":{"TotInvVal":23600,"CgstVal":1800,"SgstVal":1800},"ItemList":[{"PrdDesc":"Steel brackets","Qty":400}]}`,
	},
	{
		name:    "service_invoice.json",
		format:  FormatJSON,
		sender:  "system@example.com",
		thread:  "thread_457",
		content: `{"DocDtls":{"Typ":"INV","No":"SERV2025-007","Dt":"2025-05-28"},"ValDtls":{"TotInvVal":1180}}`,
	},
	{
		name:    "regulation_notice.txt",
		format:  FormatPDF,
		sender:  "alice.brown@example.com",
		thread:  "thread_789",
		content: "Updated regulation notice for all suppliers.\nCompliance with directive 2025/14 is mandatory from August.\n",
	},
	{
		name:    "contact_note.txt",
		format:  FormatPDF,
		sender:  "bob.wilson@example.com",
		thread:  "thread_790",
		content: "Bob Wilson\nPlease reach me at bob.wilson@example.com or +1 555-010-7788.\nLooking forward to our meeting next week.\n",
	},
}

// WriteSampleDocuments materialises the demo inputs under dir and
// returns ready-to-process descriptors pointing at them.
func WriteSampleDocuments(dir string) ([]DocumentDescriptor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	descs := make([]DocumentDescriptor, 0, len(sampleFiles))
	for _, s := range sampleFiles {
		p := filepath.Join(dir, s.name)
		if err := os.WriteFile(p, []byte(s.content), 0o644); err != nil {
			return nil, err
		}
		descs = append(descs, DocumentDescriptor{
			Format:    s.format,
			Path:      p,
			Sender:    s.sender,
			ThreadID:  s.thread,
			Timestamp: now,
		})
	}
	return descs, nil
}
