package intake

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("  a \n\t b  c "); got != "a b c" {
		t.Fatalf("unexpected collapse: %q", got)
	}
}

func TestHashContent_StableAndDistinct(t *testing.T) {
	a := HashContent([]byte("doc one"))
	b := HashContent([]byte("doc one"))
	c := HashContent([]byte("doc two"))
	if a != b {
		t.Fatalf("expected stable hash")
	}
	if a == c {
		t.Fatalf("expected distinct hashes")
	}
	if len(a) != 64 {
		t.Fatalf("expected full hex sha256, got %d chars", len(a))
	}
}
