package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	body := "hello blob"
	if err := store.Save(ctx, "abc.mp3", strings.NewReader(body), int64(len(body)), "audio/mpeg"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	r, size, err := store.Open(ctx, "abc.mp3")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	if size != int64(len(body)) {
		t.Errorf("size = %d, want %d", size, len(body))
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != body {
		t.Errorf("read %q, want %q", got, body)
	}

	// seek back to a mid offset, as range serving does
	if _, err := r.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "blob" {
		t.Errorf("after seek read %q, want %q", rest, "blob")
	}
}

func TestFileStoreMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = store.Open(context.Background(), "nope.mp3")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open missing = %v, want fs.ErrNotExist", err)
	}
	if err := store.Remove(context.Background(), "nope.mp3"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove missing = %v, want fs.ErrNotExist", err)
	}
}

func TestFileStoreRejectsTraversalKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		if err := store.Save(context.Background(), key, strings.NewReader("x"), 1, "audio/mpeg"); err == nil {
			t.Errorf("Save(%q) succeeded, want error", key)
		}
	}
}

func TestFileStoreRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, "gone.ogg", strings.NewReader("x"), 1, "audio/ogg"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, "gone.ogg"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, _, err := store.Open(ctx, "gone.ogg"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open after remove = %v, want fs.ErrNotExist", err)
	}
}
