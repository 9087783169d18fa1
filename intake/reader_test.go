package intake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadDocument_EmailFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mail.txt")
	if err := os.WriteFile(p, []byte("hello there"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, decoded, err := ReadDocument(DocumentDescriptor{Format: FormatEmail, Path: p})
	if err != nil {
		t.Fatal(err)
	}
	if content != "hello there" || decoded != nil {
		t.Fatalf("unexpected read result: %q %v", content, decoded)
	}
}

func TestReadDocument_MockPDFAsText(t *testing.T) {
	p := filepath.Join(t.TempDir(), "extracted.txt")
	if err := os.WriteFile(p, []byte("pdf text here"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, _, err := ReadDocument(DocumentDescriptor{Format: FormatPDF, Path: p})
	if err != nil {
		t.Fatal(err)
	}
	if content != "pdf text here" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestReadDocument_JSONDecodes(t *testing.T) {
	content, decoded, err := ReadDocument(DocumentDescriptor{
		Format:  FormatJSON,
		Content: `{"DocDtls":{"Typ":"INV"}}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if content == "" || decoded == nil {
		t.Fatalf("expected content and decoded payload")
	}
	if v, ok := lookupPath(decoded, "DocDtls", "Typ"); !ok || v != "INV" {
		t.Fatalf("unexpected decoded payload: %v", decoded)
	}
}

func TestReadDocument_BadJSONReturnsContentAndError(t *testing.T) {
	content, decoded, err := ReadDocument(DocumentDescriptor{Format: FormatJSON, Content: "not json"})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if content != "not json" || decoded != nil {
		t.Fatalf("expected raw content preserved, got %q %v", content, decoded)
	}
	if !strings.Contains(err.Error(), "parse json") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadDocument_MissingEverything(t *testing.T) {
	if _, _, err := ReadDocument(DocumentDescriptor{Format: FormatEmail}); err == nil {
		t.Fatalf("expected error for descriptor without content or path")
	}
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, _, err := ReadDocument(DocumentDescriptor{
		Format: FormatEmail,
		Path:   filepath.Join(t.TempDir(), "gone.txt"),
	})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
