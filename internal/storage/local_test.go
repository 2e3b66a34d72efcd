package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	ctx := context.Background()

	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	ref, err := store.Store(ctx, data, "photo.PNG")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("reference %q does not keep the original extension", ref)
	}
	if strings.Contains(ref, "/") {
		t.Errorf("local reference %q must be a bare filename", ref)
	}

	got, err := store.Fetch(ctx, ref)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if string(got) != string(data) {
		t.Error("fetched bytes differ from stored bytes")
	}
}

func TestLocalStoreRejectsUnsupportedFormat(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := store.Store(context.Background(), []byte("gif"), "anim.gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLocalStoreFetchMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := store.Fetch(context.Background(), "nope.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// path traversal in a reference must not escape the directory
	if _, err := store.Fetch(context.Background(), "../secret.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for path ref, got %v", err)
	}
}

func TestExtAllowed(t *testing.T) {
	allowed := []string{"a.jpg", "b.JPEG", "c.png", "d.webp"}
	for _, name := range allowed {
		if !extAllowed(name) {
			t.Errorf("%s should be allowed", name)
		}
	}
	denied := []string{"x.gif", "y.svg", "z.pdf", "noext", "trailingdot."}
	for _, name := range denied {
		if extAllowed(name) {
			t.Errorf("%s should be denied", name)
		}
	}
}
