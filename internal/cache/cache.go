// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache implements the per-session research cache. One instance is
// scoped to one interactive session; it accumulates query results until
// cleared. There is deliberately no eviction, TTL, or size bound: this is a
// flat accumulate-until-cleared store, not a general-purpose cache.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Payload is a cached result payload. The cache treats the original result
// opaquely except for the two fields it injects on Set: "cached_at" (RFC
// 3339 insertion time) and "session_id".
type Payload map[string]any

// Stats is a point-in-time snapshot of cache state.
type Stats struct {
	// SessionID is the current session identifier.
	SessionID string `json:"session_id" yaml:"session_id"`

	// CreatedAt is when this cache instance was constructed.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Size is the number of cached entries.
	Size int `json:"cache_size" yaml:"cache_size"`

	// AgentTypes lists the distinct agent-type tags present among
	// entries, sorted.
	AgentTypes []string `json:"agent_types" yaml:"agent_types"`
}

// ResearchCache caches agent query results within one session, keyed by the
// normalized query plus an agent-type tag. It prevents redundant API calls
// when the same question is asked again in the same session.
type ResearchCache struct {
	mu        sync.RWMutex
	entries   map[string]Payload
	sessionID string
	createdAt time.Time

	// now is the clock, overridable in tests.
	now func() time.Time
}

// New returns an empty cache with a fresh session id.
func New() *ResearchCache {
	return &ResearchCache{
		entries:   make(map[string]Payload),
		sessionID: uuid.NewString(),
		createdAt: time.Now(),
		now:       time.Now,
	}
}

// keySeparator joins the agent-type tag and the normalized query. The tag
// comes first so Stats can recover the set of tags from the keys.
const keySeparator = ":"

// normalizeQuery trims surrounding whitespace and lowercases the query.
// Two raw queries differing only in case or leading/trailing whitespace map
// to the same cache slot. Internal whitespace is preserved.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// makeKey builds the cache key for a query under an agent-type tag. The
// same normalized query under two different tags occupies two slots.
func makeKey(query, agentType string) string {
	return agentType + keySeparator + normalizeQuery(query)
}

// Set stores a shallow copy of result under the normalized key, overwriting
// any prior entry, and injects the cached_at and session_id fields.
func (c *ResearchCache) Set(query, agentType string, result map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := make(Payload, len(result)+2)
	for k, v := range result {
		entry[k] = v
	}
	entry["cached_at"] = c.now().Format(time.RFC3339)
	entry["session_id"] = c.sessionID

	c.entries[makeKey(query, agentType)] = entry
}

// Get returns the cached payload for the query under the agent-type tag.
// A miss reports ok == false; it is never an error.
func (c *ResearchCache) Get(query, agentType string) (Payload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.entries[makeKey(query, agentType)]
	return p, ok
}

// Has reports whether an entry exists for the query under the agent-type
// tag. It uses the same normalization as Get and never mutates state.
func (c *ResearchCache) Has(query, agentType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[makeKey(query, agentType)]
	return ok
}

// Clear discards all entries and issues a new session id. The creation
// timestamp is kept: it marks the start of the cache instance's lifetime,
// not of the current session id.
func (c *ResearchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Payload)
	c.sessionID = uuid.NewString()
}

// SessionID returns the current session identifier.
func (c *ResearchCache) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// GetStats returns a snapshot of entry count, session identity, and the
// distinct agent-type tags present among entries.
func (c *ResearchCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tags := make(map[string]struct{})
	for key := range c.entries {
		tag, _, _ := strings.Cut(key, keySeparator)
		tags[tag] = struct{}{}
	}

	agentTypes := make([]string, 0, len(tags))
	for tag := range tags {
		agentTypes = append(agentTypes, tag)
	}
	sort.Strings(agentTypes)

	return Stats{
		SessionID:  c.sessionID,
		CreatedAt:  c.createdAt,
		Size:       len(c.entries),
		AgentTypes: agentTypes,
	}
}
