package maintenance

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/metrics"
)

// State is the maintenance gate position.
type State int

const (
	StateLoading State = iota
	StateActive
	StateInactive
)

// String returns the lowercase state name used in logs.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// AdminPath is never gated so admins can switch maintenance off again.
const AdminPath = "/admin"

// Gate tracks whether the public site is in maintenance mode. It starts in
// StateLoading and only moves on through Apply or, if no settings arrive in
// time, a single fallback to StateInactive.
type Gate struct {
	mu       sync.RWMutex
	state    State
	message  string
	resolved chan struct{}
	once     sync.Once
	timer    *time.Timer
}

// NewGate returns a loading gate that falls back to inactive after timeout.
// A zero timeout disables the fallback.
func NewGate(timeout time.Duration) *Gate {
	g := &Gate{state: StateLoading, resolved: make(chan struct{})}
	if timeout > 0 {
		g.timer = time.AfterFunc(timeout, g.expire)
	}
	return g
}

func (g *Gate) expire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateLoading {
		return
	}
	log.Println("Settings did not arrive in time; maintenance gate falling back to inactive.")
	g.setLocked(StateInactive, "")
}

// Apply moves the gate according to a settings push.
func (g *Gate) Apply(s models.Settings) {
	next := StateInactive
	if s.MaintenanceMode {
		next = StateActive
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != next {
		log.Printf("Maintenance gate %s -> %s", g.state, next)
	}
	g.setLocked(next, s.MaintenanceMessage)
}

func (g *Gate) setLocked(state State, message string) {
	g.state = state
	g.message = message
	if state == StateActive {
		metrics.MaintenanceState.Set(1)
	} else {
		metrics.MaintenanceState.Set(0)
	}
	g.once.Do(func() {
		if g.timer != nil {
			g.timer.Stop()
		}
		close(g.resolved)
	})
}

// State returns the current state and maintenance message.
func (g *Gate) State() (State, string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state, g.message
}

// Wait blocks until the gate has left StateLoading or ctx is done, then
// returns the current state.
func (g *Gate) Wait(ctx context.Context) (State, string) {
	select {
	case <-g.resolved:
	case <-ctx.Done():
	}
	return g.State()
}

// Exempt reports whether path bypasses the gate.
func Exempt(path string) bool {
	return path == AdminPath || strings.HasPrefix(path, AdminPath+"/")
}
