// Package cache provides a disk cache for synthesized audio so repeated
// narration of the same unit does not re-run the synthesizer.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Disk is a size-bounded, zstd-compressed cache of audio blobs. Entries are
// evicted least-recently-used when the on-disk size exceeds the cap.
type Disk struct {
	dir      string
	maxBytes int64

	enc *zstd.Encoder
	dec *zstd.Decoder

	mu    sync.Mutex
	index map[string]*entry
	size  int64
}

type entry struct {
	path       string
	size       int64
	lastAccess time.Time
}

// New opens (or creates) a disk cache rooted at dir with the given size cap
// in bytes.
func New(dir string, maxBytes int64) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	d := &Disk{
		dir:      dir,
		maxBytes: maxBytes,
		enc:      enc,
		dec:      dec,
		index:    make(map[string]*entry),
	}
	d.loadIndex()
	return d, nil
}

// Key derives a stable cache key from the given parts.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached blob for key, if present.
func (d *Disk) Get(key string) ([]byte, bool) {
	d.mu.Lock()
	e, ok := d.index[key]
	if !ok {
		d.mu.Unlock()
		return nil, false
	}
	e.lastAccess = time.Now()
	path := e.path
	d.mu.Unlock()

	compressed, err := os.ReadFile(path)
	if err != nil {
		d.drop(key)
		return nil, false
	}
	data, err := d.dec.DecodeAll(compressed, nil)
	if err != nil {
		d.drop(key)
		return nil, false
	}
	return data, true
}

// Put stores a blob under key, evicting old entries if the cache would grow
// past its cap.
func (d *Disk) Put(key string, data []byte) error {
	compressed := d.enc.EncodeAll(data, nil)
	path := filepath.Join(d.dir, key+".zst")
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	d.mu.Lock()
	if old, ok := d.index[key]; ok {
		d.size -= old.size
	}
	d.index[key] = &entry{path: path, size: int64(len(compressed)), lastAccess: time.Now()}
	d.size += int64(len(compressed))
	d.evictLocked()
	d.mu.Unlock()
	return nil
}

// Len returns the number of entries currently indexed.
func (d *Disk) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.index)
}

func (d *Disk) drop(key string) {
	d.mu.Lock()
	if e, ok := d.index[key]; ok {
		d.size -= e.size
		delete(d.index, key)
		_ = os.Remove(e.path)
	}
	d.mu.Unlock()
}

// evictLocked removes least-recently-used entries until under the cap.
// Caller holds the mutex.
func (d *Disk) evictLocked() {
	if d.maxBytes <= 0 || d.size <= d.maxBytes {
		return
	}
	type keyed struct {
		key string
		e   *entry
	}
	entries := make([]keyed, 0, len(d.index))
	for k, e := range d.index {
		entries = append(entries, keyed{k, e})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].e.lastAccess.Before(entries[j].e.lastAccess)
	})
	for _, kv := range entries {
		if d.size <= d.maxBytes {
			break
		}
		d.size -= kv.e.size
		delete(d.index, kv.key)
		_ = os.Remove(kv.e.path)
	}
}

// loadIndex rebuilds the index from files already on disk. Access times are
// unknown after a restart, so file modification times stand in.
func (d *Disk) loadIndex() {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return
	}
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".zst") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		key := strings.TrimSuffix(de.Name(), ".zst")
		d.index[key] = &entry{
			path:       filepath.Join(d.dir, de.Name()),
			size:       info.Size(),
			lastAccess: info.ModTime(),
		}
		d.size += info.Size()
	}
}
