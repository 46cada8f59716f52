// Package score persists the all-time high score.
package score

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

// MaxScoreKey is the key under which the high score is stored.
const MaxScoreKey = "maxScore"

// scoresObject groups all score properties in the gdata store.
const scoresObject = "scores"

// ErrNotFound is returned by Store.Get when the key has never been written.
var ErrNotFound = errors.New("score: key not found")

// Store reads and writes integers by key.
type Store interface {
	Get(key string) (int, error)
	Set(key string, value int) error
}

// MemoryStore keeps values in memory only. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (m *MemoryStore) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// DataStore persists values through gdata, which picks the platform's
// application data directory. A nil manager runs in degraded mode: nothing is
// persisted and every Get reports ErrNotFound.
type DataStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
}

// OpenDataStore opens the gdata storage for appName.
func OpenDataStore(appName string) (*DataStore, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open score storage %q: %w", appName, err)
	}
	return NewDataStore(manager), nil
}

// NewDataStore wraps an already opened gdata manager. manager may be nil.
func NewDataStore(manager *gdata.Manager) *DataStore {
	return &DataStore{manager: manager}
}

// Get implements Store. Values that are not integers are reported as errors;
// callers treat them like a missing key.
func (d *DataStore) Get(key string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.manager == nil || !d.manager.ObjectPropExists(scoresObject, key) {
		return 0, ErrNotFound
	}

	data, err := d.manager.LoadObjectProp(scoresObject, key)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", key, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

// Set implements Store.
func (d *DataStore) Set(key string, value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.manager == nil {
		return nil
	}
	if err := d.manager.SaveObjectProp(scoresObject, key, []byte(strconv.Itoa(value))); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Board tracks the high score on top of a Store. Submissions are serialised so
// that concurrent sessions (one per SSH or websocket connection) never lose
// an update between the read and the write.
type Board struct {
	mu    sync.Mutex
	store Store
}

// NewBoard creates a board backed by store. A nil store keeps scores in memory.
func NewBoard(store Store) *Board {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Board{store: store}
}

// High returns the stored high score, or 0 when it is absent or unreadable.
func (b *Board) High() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readLocked()
}

// Submit records a final score. It returns the high score after the
// submission and whether this score replaced it.
func (b *Board) Submit(final int) (high int, updated bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	high = b.readLocked()
	if final <= high {
		return high, false
	}
	if err := b.store.Set(MaxScoreKey, final); err != nil {
		log.Error("Failed to save high score", "score", final, "err", err)
	}
	return final, true
}

func (b *Board) readLocked() int {
	v, err := b.store.Get(MaxScoreKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("Ignoring unreadable high score", "err", err)
		}
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}
