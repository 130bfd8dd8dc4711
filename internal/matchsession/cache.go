// Package matchsession implements the process-wide live-match cache: a
// sharded mutex-guarded map from fixture to its in-flight match engine and
// innings state, plus the pending-toss and just-completed side tables. It
// is modeled on a sharded in-memory run-state map for a live simulation,
// generalised to per-fixture exclusion instead of a single global lock.
package matchsession

import (
	"sync"

	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/engine/match"
)

const shardCount = 16

// Session is one fixture's live match state: the engine plus both innings
// (Innings2 is nil until the first innings completes).
type Session struct {
	mu       sync.Mutex
	Engine   *match.Engine
	Innings1 *match.InningsState
	Innings2 *match.InningsState
}

// Lock acquires the session's per-fixture exclusive guard. Callers must
// Unlock when done; every play_ball/simulate_over/simulate_innings/
// select_bowler call is made under this guard.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

type shard struct {
	mu       sync.RWMutex
	sessions map[core.FixtureID]*Session
}

// Cache is the sharded live-match store. Zero value is not usable; use New.
type Cache struct {
	shards [shardCount]*shard

	tossMu     sync.Mutex
	pendingToss map[core.FixtureID]core.TeamID

	completedMu sync.Mutex
	completed   map[core.FixtureID]core.Match
}

// New creates an empty Cache.
func New() *Cache {
	c := &Cache{
		pendingToss: map[core.FixtureID]core.TeamID{},
		completed:   map[core.FixtureID]core.Match{},
	}
	for i := range c.shards {
		c.shards[i] = &shard{sessions: map[core.FixtureID]*Session{}}
	}
	return c
}

func (c *Cache) shardFor(id core.FixtureID) *shard {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	return c.shards[h%shardCount]
}

// DoToss records the pending toss winner for a fixture and returns it.
func (c *Cache) DoToss(fixtureID core.FixtureID, winner core.TeamID) core.TeamID {
	c.tossMu.Lock()
	defer c.tossMu.Unlock()
	c.pendingToss[fixtureID] = winner
	return winner
}

// PendingToss returns the recorded toss winner, if any.
func (c *Cache) PendingToss(fixtureID core.FixtureID) (core.TeamID, bool) {
	c.tossMu.Lock()
	defer c.tossMu.Unlock()
	winner, ok := c.pendingToss[fixtureID]
	return winner, ok
}

// StartMatch installs a freshly constructed session for fixtureID and
// clears its pending-toss entry.
func (c *Cache) StartMatch(fixtureID core.FixtureID, session *Session) {
	sh := c.shardFor(fixtureID)
	sh.mu.Lock()
	sh.sessions[fixtureID] = session
	sh.mu.Unlock()

	c.tossMu.Lock()
	delete(c.pendingToss, fixtureID)
	c.tossMu.Unlock()
}

// Get returns the live session for fixtureID, if any.
func (c *Cache) Get(fixtureID core.FixtureID) (*Session, bool) {
	sh := c.shardFor(fixtureID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[fixtureID]
	return s, ok
}

// Finish removes a fixture's live session and records its completed result
// for short-lived retrieval by callers that haven't yet fetched it.
func (c *Cache) Finish(fixtureID core.FixtureID, result core.Match) {
	sh := c.shardFor(fixtureID)
	sh.mu.Lock()
	delete(sh.sessions, fixtureID)
	sh.mu.Unlock()

	c.completedMu.Lock()
	c.completed[fixtureID] = result
	c.completedMu.Unlock()
}

// TakeCompleted returns and clears a just-completed match result.
func (c *Cache) TakeCompleted(fixtureID core.FixtureID) (core.Match, bool) {
	c.completedMu.Lock()
	defer c.completedMu.Unlock()
	m, ok := c.completed[fixtureID]
	if ok {
		delete(c.completed, fixtureID)
	}
	return m, ok
}

// Reset drops a fixture's live session without recording a result, for the
// Restart-recovery rule: a fixture found InProgress with no active
// session is reset to Scheduled on the next start-match call.
func (c *Cache) Reset(fixtureID core.FixtureID) {
	sh := c.shardFor(fixtureID)
	sh.mu.Lock()
	delete(sh.sessions, fixtureID)
	sh.mu.Unlock()
}
