package cache

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("hello", "en-US", "1.0")
	b := Key("hello", "en-US", "1.0")
	if a != b {
		t.Errorf("same parts gave different keys: %q vs %q", a, b)
	}
	if Key("hello", "en-US") == Key("hello", "en-GB") {
		t.Error("different parts gave the same key")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	d, err := New(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatal(err)
	}

	data := bytes.Repeat([]byte("audio sample "), 100)
	key := Key("the arch", "en-US")
	if err := d.Put(key, data); err != nil {
		t.Fatal(err)
	}

	got, ok := d.Get(key)
	if !ok {
		t.Fatal("entry missing after Put")
	}
	if !bytes.Equal(got, data) {
		t.Error("round-tripped data differs")
	}

	if _, ok := d.Get(Key("never stored")); ok {
		t.Error("Get returned a hit for an unknown key")
	}
}

func TestIndexSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	d, err := New(dir, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	key := Key("persisted")
	if err := d.Put(key, []byte("persisted blob")); err != nil {
		t.Fatal(err)
	}

	reopened, err := New(dir, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := reopened.Get(key)
	if !ok {
		t.Fatal("entry missing after reopen")
	}
	if string(got) != "persisted blob" {
		t.Errorf("got %q after reopen", got)
	}
}

func TestEvictionKeepsCacheUnderCap(t *testing.T) {
	// Incompressible payloads so the cap is actually exceeded on disk.
	payload := func(seed int64) []byte {
		data := make([]byte, 4096)
		rng := rand.New(rand.NewSource(seed))
		rng.Read(data)
		return data
	}

	d, err := New(t.TempDir(), 10*1024)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 8; i++ {
		if err := d.Put(Key("unit", string(rune('a'+i))), payload(int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	if got := d.Len(); got >= 8 {
		t.Errorf("no eviction happened, %d entries indexed", got)
	}
	// The most recent entry must have survived.
	if _, ok := d.Get(Key("unit", string(rune('a'+7)))); !ok {
		t.Error("most recently written entry was evicted")
	}
}
