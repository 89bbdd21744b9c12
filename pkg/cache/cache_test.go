package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	store := NewStore(time.Minute)

	if _, found := store.Get("missing"); found {
		t.Error("empty store should not return a value")
	}

	store.Set("roles:all", []string{"ADMIN"})
	value, found := store.Get("roles:all")
	if !found {
		t.Fatal("expected key to be found")
	}
	roles, ok := value.([]string)
	if !ok || len(roles) != 1 || roles[0] != "ADMIN" {
		t.Errorf("value = %v, want [ADMIN]", value)
	}
}

func TestExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	store.Set("k", 1)

	time.Sleep(30 * time.Millisecond)

	if _, found := store.Get("k"); found {
		t.Error("entry should have expired")
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Errorf("Keys() = %v, want empty", keys)
	}
}

func TestClearAndClearPrefix(t *testing.T) {
	store := NewStore(time.Minute)
	store.Set("roles:all", 1)
	store.Set("roles:enabled", 2)
	store.Set("classrooms:all", 3)

	if removed := store.ClearPrefix("roles:"); removed != 2 {
		t.Errorf("ClearPrefix removed %d, want 2", removed)
	}
	if _, found := store.Get("classrooms:all"); !found {
		t.Error("entries outside the prefix must survive")
	}

	if removed := store.Clear(); removed != 1 {
		t.Errorf("Clear removed %d, want 1", removed)
	}
	if snap := store.Snapshot(); snap.Entries != 0 || snap.ClearedAt == nil {
		t.Errorf("after Clear: entries = %d, clearedAt = %v", snap.Entries, snap.ClearedAt)
	}
}

func TestSnapshotCounters(t *testing.T) {
	store := NewStore(time.Minute)
	store.Set("k", 1)

	store.Get("k")       // hit
	store.Get("k")       // hit
	store.Get("missing") // miss

	snap := store.Snapshot()
	if snap.Hits != 2 || snap.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", snap.Hits, snap.Misses)
	}
	if snap.HitRate < 0.66 || snap.HitRate > 0.67 {
		t.Errorf("hitRate = %f, want ~0.667", snap.HitRate)
	}
	if snap.WarmedAt != nil {
		t.Error("warmedAt should be nil before MarkWarmed")
	}

	store.MarkWarmed()
	if snap := store.Snapshot(); snap.WarmedAt == nil {
		t.Error("warmedAt should be set after MarkWarmed")
	}
}
