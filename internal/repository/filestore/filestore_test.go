package filestore

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/factory/internal/repository/blob"
)

func TestSaveThenLoad(t *testing.T) {
	repo, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if _, err := repo.Load(ctx, "factory_models"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("Load missing = %v, want ErrNotFound", err)
	}
	if err := repo.Save(ctx, "factory_models", []byte(`[{"id":"m1"}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, "factory_models", []byte(`[]`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	data, err := repo.Load(ctx, "factory_models")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("Load = %s, want []", data)
	}
}

func TestRejectsPathNames(t *testing.T) {
	repo, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"../escape", "a/b", ""} {
		if err := repo.Save(context.Background(), name, []byte("x")); err == nil {
			t.Fatalf("Save(%q) accepted", name)
		}
	}
}
