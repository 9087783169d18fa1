package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// QuarantineFile moves an unreadable or undecodable input file into dir
// so later runs do not trip over it again. Name collisions get a
// numeric suffix before the extension: doc.json, doc-1.json, doc-2.json.
func QuarantineFile(path string, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("quarantine dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create quarantine dir: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	dst := filepath.Join(dir, base)
	for n := 1; ; n++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
	}

	if err := os.Rename(path, dst); err == nil {
		return dst, nil
	}

	// Rename failed (likely a cross-device dir); input documents are
	// small enough to buffer whole.
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("quarantine %s: %w", path, err)
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return "", fmt.Errorf("quarantine %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("remove quarantined source %s: %w", path, err)
	}
	return dst, nil
}
