package store

import (
	"bytes"
	"encoding/gob"
	"reflect"
	"testing"
)

func TestCandidateStoreReplace(t *testing.T) {
	cs := NewCandidateStore()

	cs.Replace([]string{"Apple", "Banana", "Apple", "Grape"})

	candidates, version := cs.Snapshot()
	want := []string{"Apple", "Banana", "Grape"}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("Snapshot after Replace = %v, want %v", candidates, want)
	}
	if version != 1 {
		t.Errorf("Version = %d, want 1", version)
	}

	cs.Replace([]string{"Mango"})
	candidates, version = cs.Snapshot()
	if !reflect.DeepEqual(candidates, []string{"Mango"}) || version != 2 {
		t.Errorf("second Replace: candidates=%v version=%d", candidates, version)
	}
}

func TestCandidateStoreAppend(t *testing.T) {
	cs := NewCandidateStore()
	cs.Replace([]string{"Apple", "Banana"})

	before, _ := cs.Snapshot()
	cs.Append([]string{"Banana", "Grape"})

	candidates, version := cs.Snapshot()
	want := []string{"Apple", "Banana", "Grape"}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("Snapshot after Append = %v, want %v", candidates, want)
	}
	if version != 2 {
		t.Errorf("Version = %d, want 2", version)
	}

	// Copy-on-write: the earlier snapshot is untouched.
	if !reflect.DeepEqual(before, []string{"Apple", "Banana"}) {
		t.Errorf("earlier snapshot was mutated: %v", before)
	}
}

func TestCandidateStoreAppendNothingNewStillBumpsVersion(t *testing.T) {
	cs := NewCandidateStore()
	cs.Replace([]string{"Apple"})
	_, before := cs.Snapshot()

	cs.Append([]string{"Apple"})
	_, after := cs.Snapshot()
	if after != before+1 {
		t.Errorf("Version after no-op append = %d, want %d", after, before+1)
	}
}

func TestCandidateStoreDeleteAll(t *testing.T) {
	cs := NewCandidateStore()
	cs.Replace([]string{"Apple", "Banana"})
	cs.DeleteAll()

	if count := cs.Count(); count != 0 {
		t.Errorf("Count after DeleteAll = %d, want 0", count)
	}
	_, version := cs.Snapshot()
	if version != 2 {
		t.Errorf("Version = %d, want 2", version)
	}
}

func TestCandidateStoreGobRoundTrip(t *testing.T) {
	cs := NewCandidateStore()
	cs.Replace([]string{"Apple", "Banana", "Grape"})
	cs.Append([]string{"Mango"})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cs); err != nil {
		t.Fatalf("gob encode failed: %v", err)
	}

	restored := NewCandidateStore()
	if err := gob.NewDecoder(&buf).Decode(restored); err != nil {
		t.Fatalf("gob decode failed: %v", err)
	}

	wantCandidates, wantVersion := cs.Snapshot()
	gotCandidates, gotVersion := restored.Snapshot()
	if !reflect.DeepEqual(gotCandidates, wantCandidates) {
		t.Errorf("restored candidates = %v, want %v", gotCandidates, wantCandidates)
	}
	if gotVersion != wantVersion {
		t.Errorf("restored version = %d, want %d", gotVersion, wantVersion)
	}

	// The dedupe index is rebuilt, not persisted.
	restored.Append([]string{"Apple", "Cherry"})
	candidates, _ := restored.Snapshot()
	want := []string{"Apple", "Banana", "Grape", "Mango", "Cherry"}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("append after decode = %v, want %v", candidates, want)
	}
}
