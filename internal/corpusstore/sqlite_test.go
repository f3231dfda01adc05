package corpusstore

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/msto63/taletekst/internal/phoneme"
	tterr "github.com/msto63/taletekst/pkg/core/error"
	"github.com/msto63/taletekst/pkg/core/version"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "sub", "ranked.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func collect(t *testing.T, store *Store) []phoneme.RankedDocument {
	t.Helper()
	var docs []phoneme.RankedDocument
	for doc, err := range store.Documents(context.Background()) {
		if err != nil {
			t.Fatalf("Documents() error = %v", err)
		}
		docs = append(docs, doc)
	}
	return docs
}

func TestStore_InsertAndStreamInOrder(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first := []phoneme.RankedDocument{
		{Text: "rig sætning", Phonemes: []string{"a", "ø"}, Annotation: phoneme.Annotation{
			"all": {PhonemeCount: 2, UniquePhonemes: []string{"a", "ø"}, UniqueCount: 2},
		}},
		{Text: "fattig sætning", Phonemes: []string{"a"}},
	}
	if err := store.Insert(ctx, first...); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := store.Insert(ctx, phoneme.RankedDocument{Text: "tom sætning"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil || count != 3 {
		t.Fatalf("Count() = %d, %v, want 3", count, err)
	}

	docs := collect(t, store)
	var texts []string
	for _, d := range docs {
		texts = append(texts, d.Text)
	}
	if !reflect.DeepEqual(texts, []string{"rig sætning", "fattig sætning", "tom sætning"}) {
		t.Errorf("order = %v", texts)
	}
	if !reflect.DeepEqual(docs[0].Phonemes, []string{"a", "ø"}) {
		t.Errorf("Phonemes = %v", docs[0].Phonemes)
	}
	if docs[0].Annotation["all"].UniqueCount != 2 {
		t.Errorf("Annotation = %+v", docs[0].Annotation)
	}
	if docs[1].Annotation != nil {
		t.Errorf("Annotation of unannotated document = %+v", docs[1].Annotation)
	}
}

func TestStore_Reset(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, phoneme.RankedDocument{Text: "a"}, phoneme.RankedDocument{Text: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if count, _ := store.Count(ctx); count != 0 {
		t.Errorf("Count() after Reset = %d", count)
	}

	// Positions restart after a reset
	if err := store.Insert(ctx, phoneme.RankedDocument{Text: "c"}); err != nil {
		t.Fatal(err)
	}
	if docs := collect(t, store); len(docs) != 1 || docs[0].Text != "c" {
		t.Errorf("documents = %+v", docs)
	}
}

func TestStore_StreamFeedsCoveringSet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	docs := []phoneme.RankedDocument{
		{Text: "doc1", Phonemes: []string{"X"}},
		{Text: "doc2", Phonemes: []string{"X"}},
		{Text: "doc3", Phonemes: []string{"Y"}},
	}
	if err := store.Insert(ctx, docs...); err != nil {
		t.Fatal(err)
	}

	sel, err := phoneme.BuildCoveringSet(store.Documents(ctx), phoneme.Target{"X": 1, "Y": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(sel.Selected) != 2 || sel.Selected[1].Text != "doc3" || !sel.Complete() {
		t.Errorf("selection = %+v", sel)
	}
}

func TestStore_Meta(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	schema, err := store.Meta(ctx, "schema")
	if err != nil || schema != version.StoreSchema {
		t.Errorf("Meta(schema) = %q, %v", schema, err)
	}

	if err := store.SetMeta(ctx, "strategy", "da"); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.Meta(ctx, "strategy"); v != "da" {
		t.Errorf("Meta(strategy) = %q", v)
	}

	if _, err := store.Meta(ctx, "missing"); !tterr.HasCode(err, tterr.CodeNotFound) {
		t.Errorf("Meta(missing) error = %v", err)
	}
}

func TestStore_DocumentsCanceledContext(t *testing.T) {
	store := createTestStore(t)
	if err := store.Insert(context.Background(), phoneme.RankedDocument{Text: "a"}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range store.Documents(ctx) {
		if err != nil {
			gotErr = err
			break
		}
	}
	if !tterr.HasCode(gotErr, tterr.CodeStoreError) {
		t.Errorf("error = %v, want STORE_ERROR", gotErr)
	}
}
