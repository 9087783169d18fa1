package intake

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadDocument resolves a descriptor to its raw content and, for JSON
// documents, the decoded payload. Inline content on the descriptor takes
// precedence over the file path. A JSON payload that fails to parse is
// returned with its raw content and a non-nil error so the caller can
// record the degraded document instead of dropping it.
func ReadDocument(d DocumentDescriptor) (string, any, error) {
	content := d.Content
	if content == "" {
		if strings.TrimSpace(d.Path) == "" {
			return "", nil, fmt.Errorf("descriptor has neither content nor path")
		}
		raw, err := readByFormat(d.Path, d.Format)
		if err != nil {
			return "", nil, err
		}
		content = raw
	}

	if d.Format == FormatJSON {
		var decoded any
		if err := json.Unmarshal([]byte(content), &decoded); err != nil {
			return content, nil, fmt.Errorf("parse json: %w", err)
		}
		return content, decoded, nil
	}
	return content, nil, nil
}

func readByFormat(path string, format Format) (string, error) {
	switch format {
	case FormatPDF:
		// Text files declared as pdf carry pre-extracted text.
		if strings.HasSuffix(strings.ToLower(path), ".txt") {
			b, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
		text, err := extractPDFText(path)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("no text extracted from pdf %s", path)
		}
		return text, nil
	case FormatEmail, FormatJSON:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported format: %q", format)
	}
}
