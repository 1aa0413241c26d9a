package cache

import (
	"strings"
	"testing"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/0", false},
		{"empty", "", true},
		{"wrong-scheme", "http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKey(t *testing.T) {
	a := Key("analyze", []byte(`[{"subject":"Biology","isCorrect":true}]`))
	b := Key("analyze", []byte(`[{"subject":"Biology","isCorrect":true}]`))
	if a != b {
		t.Errorf("Key() not deterministic: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "pai-quiz:analyze:") {
		t.Errorf("Key() = %q, want namespaced prefix", a)
	}
	if len(a) != len("pai-quiz:analyze:")+64 {
		t.Errorf("len(Key()) = %d, want prefix + 64 hex chars", len(a))
	}

	if Key("plan", []byte("60"), []byte("x")) == Key("plan", []byte("6"), []byte("0x")) {
		t.Error("Key() should not collide when part boundaries move")
	}
	if Key("analyze", []byte("x")) == Key("plan", []byte("x")) {
		t.Error("Key() should differ across namespaces")
	}
}

func TestNew_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	ctx := t.Context()
	_, err := New(ctx, "redis://localhost:59999", 0)
	if err == nil {
		t.Fatal("New() should return error for unreachable host")
	}
}
