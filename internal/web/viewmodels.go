package web

import (
	"sync"
	"time"

	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/common/metrics"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/directory"
	"pizza-dashboard/internal/session"
)

type viewModelEntry struct {
	vm       *dashboard.ViewModel
	lastSeen time.Time
}

// viewModels holds one dashboard view-model per browser session. Entries idle
// for longer than ttl belong to sessions Redis has already expired and are
// swept on the next access.
type viewModels struct {
	mu        sync.Mutex
	entries   map[string]*viewModelEntry
	directory *directory.Client
	settings  dashboard.Settings
	ttl       time.Duration
	now       func() time.Time
	logger    logger.Logger
}

func newViewModels(dir *directory.Client, settings dashboard.Settings, ttl time.Duration, log logger.Logger) *viewModels {
	return &viewModels{
		entries:   make(map[string]*viewModelEntry),
		directory: dir,
		settings:  settings,
		ttl:       ttl,
		now:       time.Now,
		logger:    log,
	}
}

// get returns the session's view-model, creating it bound to the session token.
func (v *viewModels) get(sess *session.Session) *dashboard.ViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	v.sweepLocked(now)
	if e, ok := v.entries[sess.ID]; ok {
		e.lastSeen = now
		return e.vm
	}
	vm := dashboard.NewViewModel(
		v.directory.WithToken(sess.Token),
		v.settings,
		v.logger.WithFields(map[string]interface{}{"sessionId": sess.ID}),
	)
	v.entries[sess.ID] = &viewModelEntry{vm: vm, lastSeen: now}
	metrics.ActiveSessions.Set(float64(len(v.entries)))
	return vm
}

// touch records activity for a session whose stored TTL was just extended.
func (v *viewModels) touch(sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	v.sweepLocked(now)
	if e, ok := v.entries[sessionID]; ok {
		e.lastSeen = now
	}
}

func (v *viewModels) drop(sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.entries, sessionID)
	metrics.ActiveSessions.Set(float64(len(v.entries)))
}

func (v *viewModels) len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sweepLocked(v.now())
	return len(v.entries)
}

func (v *viewModels) sweepLocked(now time.Time) {
	if v.ttl <= 0 {
		return
	}
	var evicted int
	for id, e := range v.entries {
		if now.Sub(e.lastSeen) > v.ttl {
			delete(v.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		v.logger.Debug("evicted idle view-models", map[string]interface{}{"count": evicted})
		metrics.ActiveSessions.Set(float64(len(v.entries)))
	}
}
