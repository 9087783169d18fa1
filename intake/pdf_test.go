package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextFromContentStream_SingleLine(t *testing.T) {
	stream := "BT /F1 12 Tf 72 720 Td (Urgent RFQ: need 250 units of Product Widget) Tj ET"
	got := textFromContentStream([]byte(stream))
	if got != "Urgent RFQ: need 250 units of Product Widget" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextFromContentStream_MultiLine(t *testing.T) {
	stream := "BT\n/F1 12 Tf\n72 720 Td\n(line one) Tj\n0 -14 Td\n(line two) Tj\nET"
	got := textFromContentStream([]byte(stream))
	if got != "line one\nline two" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextFromContentStream_TJArray(t *testing.T) {
	stream := "BT 72 720 Td [(Total) -250 ( due: ) -250 ($400)] TJ ET"
	got := textFromContentStream([]byte(stream))
	if got != "Total due: $400" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextFromContentStream_EscapesAndOctal(t *testing.T) {
	// \050 and \051 are the octal codes for the parens themselves.
	stream := `BT 72 720 Td (units \(qty\): \061\060) Tj ET`
	got := textFromContentStream([]byte(stream))
	if got != "units (qty): 10" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextFromContentStream_NestedParens(t *testing.T) {
	stream := "BT (outer (inner) tail) Tj ET"
	got := textFromContentStream([]byte(stream))
	if got != "outer (inner) tail" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextFromContentStream_IgnoresHexAndComments(t *testing.T) {
	stream := "BT <4e6f> Tj % (not shown)\n(shown) Tj ET"
	got := textFromContentStream([]byte(stream))
	if got != "shown" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractPDFText_SingleLineContentStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notice.pdf")
	raw := buildTextPDF("Updated regulation notice for all suppliers")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := extractPDFText(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "regulation notice") {
		t.Fatalf("unexpected text: %q", got)
	}
}

// buildTextPDF assembles a minimal single-page PDF with a valid xref
// table and the whole content stream on one line.
func buildTextPDF(text string) []byte {
	escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
	stream := "BT /F1 12 Tf 72 720 Td (" + escaped + ") Tj ET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return []byte(b.String())
}
