package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	wcerrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/result"
)

func sampleLayout(text string) result.Layout {
	return result.Layout{
		Width:  100,
		Height: 80,
		Spiral: "archimedean",
		Words:  []result.PlacedWord{{Text: text, Font: "serif", Size: 12, X: -3, Y: 4, X0: -16, Y0: -6, X1: 16, Y1: 6}},
	}
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
	if uri := os.Getenv("WORDCLOUD_TEST_MONGO_URI"); uri != "" {
		ms, err := NewMongoStore(context.Background(), uri, "wordcloud_test")
		if err != nil {
			t.Fatalf("NewMongoStore: %v", err)
		}
		stores["mongo"] = ms
	}
	return stores
}

func TestStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer st.Close()

			in := sampleLayout("hello")
			in.ID = "caller-chosen"
			id, err := st.Save(ctx, in)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if id == "" || id == "caller-chosen" {
				t.Errorf("Save returned id %q, want a fresh id", id)
			}

			got, err := st.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != id {
				t.Errorf("ID = %q, want %q", got.ID, id)
			}
			if got.CreatedAt.IsZero() {
				t.Error("CreatedAt should be set")
			}
			if len(got.Words) != 1 || got.Words[0] != in.Words[0] {
				t.Errorf("Words = %+v, want %+v", got.Words, in.Words)
			}

			if err := st.Delete(ctx, id); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := st.Get(ctx, id); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
			}
			if err := st.Delete(ctx, id); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer st.Close()
			for _, id := range []string{"00000000-0000-0000-0000-000000000000", "../etc/passwd", ""} {
				_, err := st.Get(ctx, id)
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Get(%q) err = %v, want ErrNotFound", id, err)
				}
				if !wcerrors.Is(err, wcerrors.ErrCodeNotFound) {
					t.Errorf("Get(%q) should carry NOT_FOUND", id)
				}
			}
		})
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	var ids []string
	for _, w := range []string{"a", "b", "c"} {
		id, _ := st.Save(ctx, sampleLayout(w))
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	got, err := st.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(2) returned %d layouts", len(got))
	}
	if got[0].ID != ids[2] || got[1].ID != ids[1] {
		t.Errorf("List order = [%s %s], want newest first", got[0].ID, got[1].ID)
	}

	all, _ := st.List(ctx, 0)
	if len(all) != 3 {
		t.Errorf("List(0) returned %d layouts, want 3", len(all))
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if st.Path() != dir {
		t.Errorf("Path = %q, want %q", st.Path(), dir)
	}
	if _, err := st.Save(ctx, sampleLayout("x")); err != nil {
		t.Fatal(err)
	}
	// Stray files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := st.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Words[0].Text != "x" {
		t.Errorf("List = %+v", got)
	}
}
