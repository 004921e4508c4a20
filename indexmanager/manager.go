package indexmanager

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Enielezi/FlexSearch/analyzer"
	"github.com/Enielezi/FlexSearch/internal/ferrors"
	"github.com/Enielezi/FlexSearch/rules"
	"github.com/Enielezi/FlexSearch/shard"
	"github.com/Enielezi/FlexSearch/versioncache"
)

// Manager owns the two process-wide registries (§3's indexRegistration,
// indexStatus) and drives the per-index lifecycle state machine.
type Manager struct {
	mu           sync.RWMutex
	registration map[string]*Runtime // only Online indices
	status       map[string]State    // every known index

	store     PersistenceStore
	analyzers *analyzer.Registry
	rulesEng  *rules.Engine
}

// NewManager returns a Manager backed by store (use NewMemStore() for a
// standalone in-process store) and the given analyzer registry / rules
// engine.
func NewManager(store PersistenceStore, analyzers *analyzer.Registry, rulesEng *rules.Engine) *Manager {
	return &Manager{
		registration: make(map[string]*Runtime),
		status:       make(map[string]State),
		store:        store,
		analyzers:    analyzers,
		rulesEng:     rulesEng,
	}
}

// Add registers a new index definition (§4.6's Add operation). If
// online, a runtime is built immediately; otherwise the index is
// persisted Offline for a later Open.
func (m *Manager) Add(setting *IndexSetting, online bool) error {
	key := strings.ToLower(setting.Name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.status[key]; exists {
		return fmt.Errorf("%s: %w", setting.Name, ferrors.ErrIndexAlreadyExists)
	}

	m.store.Put(toPersisted(setting))

	if !online {
		m.status[key] = Offline
		return nil
	}
	return m.openLocked(key)
}

// Update closes and re-opens an index with a new definition (§4.6's
// Update: "close then re-add; reject if Opening").
func (m *Manager) Update(setting *IndexSetting) error {
	key := strings.ToLower(setting.Name)

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exists := m.status[key]
	if !exists {
		return fmt.Errorf("%s: %w", setting.Name, ferrors.ErrIndexNotFound)
	}
	if cur == Opening {
		return fmt.Errorf("%s: %w", setting.Name, ferrors.ErrIndexIsOpening)
	}
	if cur == Online {
		m.closeLocked(key)
	}

	m.store.Put(toPersisted(setting))
	return m.openLocked(key)
}

// Delete removes an index's definition and runtime entirely (§4.6).
func (m *Manager) Delete(name string) error {
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exists := m.status[key]
	if !exists {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexNotFound)
	}
	if cur == Opening {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexIsOpening)
	}
	if cur == Online {
		m.closeLocked(key)
	}

	if def, ok := m.store.Get(key); ok && def.BaseDirectoryPath != "" {
		dir := filepath.Join(def.BaseDirectoryPath, def.Name)
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("indexmanager: delete %s: remove %s: %v", name, dir, err)
		}
	}

	m.store.Delete(key)
	delete(m.status, key)
	return nil
}

// Close transitions an Online index to Offline, committing and
// releasing all of its shards. Close errors are non-fatal: the state
// still transitions to Offline (§7).
func (m *Manager) Close(name string) error {
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exists := m.status[key]
	if !exists {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexNotFound)
	}
	if cur != Online {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexIsOffline)
	}
	m.closeLocked(key)
	return nil
}

// Open builds a runtime from a persisted definition and transitions an
// Offline index to Online (§4.6).
func (m *Manager) Open(name string) error {
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exists := m.status[key]
	if !exists {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexNotFound)
	}
	if cur == Online {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexAlreadyExists)
	}
	if cur == Opening {
		return fmt.Errorf("%s: %w", name, ferrors.ErrIndexIsOpening)
	}
	return m.openLocked(key)
}

// Status returns an index's current lifecycle state.
func (m *Manager) Status(name string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.status[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ferrors.ErrIndexNotFound)
	}
	return st, nil
}

// Resolve returns the live runtime for an Online index. The root
// flexsearch.Service adapts it into a writepipeline.Resolver.
func (m *Manager) Resolve(name string) (*Runtime, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rt, ok := m.registration[strings.ToLower(name)]
	return rt, ok
}

// openLocked builds a runtime from the persisted definition under key and
// transitions it to Online. Caller must hold m.mu.
func (m *Manager) openLocked(key string) error {
	def, ok := m.store.Get(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, ferrors.ErrRegistrationMissing)
	}

	m.status[key] = Opening

	setting, err := rehydrate(def, m.rulesEng.EvaluateString)
	if err != nil {
		m.status[key] = Offline
		return fmt.Errorf("%s: %w: %v", key, ferrors.ErrOpeningIndexWriter, err)
	}

	shards := make([]*shard.Shard, setting.ShardCount)
	for i := range shards {
		path := filepath.Join(setting.BaseDirectory, setting.Name, "shards", strconv.Itoa(i))
		shards[i] = shard.Open(i, path)
	}

	rt := &Runtime{
		setting:    setting,
		shards:     shards,
		versioning: versioncache.New(),
		analyzers:  m.analyzers,
		rulesEng:   m.rulesEng,
		cancel:     make(chan struct{}),
	}

	m.registration[key] = rt
	m.status[key] = Online
	m.startSchedulers(rt)
	return nil
}

// closeLocked stops rt's schedulers, commits and closes its shards, and
// transitions it to Offline. Caller must hold m.mu.
func (m *Manager) closeLocked(key string) {
	rt, ok := m.registration[key]
	if ok {
		close(rt.cancel)
		for i := 0; i < rt.ShardCount(); i++ {
			if err := rt.Shard(i).Close(); err != nil {
				logClose(rt.Name(), i, err)
			}
		}
		delete(m.registration, key)
	}
	m.status[key] = Offline
}
