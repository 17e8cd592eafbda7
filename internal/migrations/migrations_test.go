package migrations

import (
	"strings"
	"testing"
)

func TestNamesSortedAndEmbedded(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("migrations not sorted: %v", names)
		}
	}

	b, err := files.ReadFile(names[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "CREATE TABLE IF NOT EXISTS todos") {
		t.Fatalf("first migration should create the todos table")
	}
}
