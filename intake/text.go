package intake

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CollapseWhitespace folds all runs of whitespace into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HashContent returns the hex SHA-256 digest of raw document content.
// Used to correlate archive rows with their source file.
func HashContent(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
