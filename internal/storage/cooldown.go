package storage

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CooldownGate enforces a fixed per-user reply cooldown. Entries expire with
// the window and are swept by the cache janitor, so the registry stays bounded
// no matter how many users pass through.
type CooldownGate struct {
	window time.Duration
	c      *cache.Cache
}

// NewCooldownGate creates a gate with the given window.
func NewCooldownGate(window time.Duration) *CooldownGate {
	return &CooldownGate{
		window: window,
		c:      cache.New(window, time.Minute),
	}
}

// Allow reports whether the user is outside the cooldown window, and arms the
// window when they are.
func (g *CooldownGate) Allow(userID string) bool {
	if _, found := g.c.Get(userID); found {
		return false
	}
	g.c.Set(userID, struct{}{}, g.window)
	return true
}
