package storage

import (
	"reflect"
	"testing"
)

type testRecord struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	want := testRecord{Name: "pasta", Count: 2.5}
	if err := store.Set("pantry:1:a", want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got testRecord
	if err := store.Get("pantry:1:a", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	var got testRecord
	err := store.Get("missing", &got)
	if err == nil {
		t.Fatal("expected an error for a missing key")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false, want true", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Set("k", testRecord{Name: "x"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var got testRecord
	if err := store.Get("k", &got); !IsNotFound(err) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}

	// Deleting a key that is already gone is not an error.
	if err := store.Delete("k"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestMemoryStoreSetBatch(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	entries := []Entry{
		{Key: "pantry:1:a", Value: testRecord{Name: "pasta", Count: 2}},
		{Key: "pantry:1:b", Value: testRecord{Name: "rice", Count: 5}},
	}
	if err := store.SetBatch(entries); err != nil {
		t.Fatalf("SetBatch failed: %v", err)
	}

	var got testRecord
	if err := store.Get("pantry:1:b", &got); err != nil {
		t.Fatalf("Get after batch failed: %v", err)
	}
	if got.Name != "rice" {
		t.Fatalf("Get = %+v", got)
	}
}

func TestMemoryStoreSetBatchAtomic(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	// Channels don't marshal; the whole batch must be rejected.
	entries := []Entry{
		{Key: "good", Value: testRecord{Name: "pasta"}},
		{Key: "bad", Value: make(chan int)},
	}
	if err := store.SetBatch(entries); err == nil {
		t.Fatal("expected a marshal error")
	}

	var got testRecord
	if err := store.Get("good", &got); !IsNotFound(err) {
		t.Fatalf("failed batch must write nothing, Get(good) = %v", err)
	}
}

func TestMemoryStoreListPrefix(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	for _, key := range []string{"pantry:1:b", "pantry:1:a", "pantry:2:a", "recipe:1:a"} {
		if err := store.Set(key, testRecord{}); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	keys, err := store.List("pantry:1:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"pantry:1:a", "pantry:1:b"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("List = %v, want %v", keys, want)
	}
}
