package topic

import "sync"

// Matcher tracks a set of subscription patterns and answers which of them
// match a concrete event topic. It is safe for concurrent use.
type Matcher struct {
	mu       sync.RWMutex
	patterns map[Topic]int // pattern -> reference count
}

// NewMatcher creates a new topic matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: make(map[Topic]int),
	}
}

// Add registers a pattern. The pattern may contain wildcards (* and **).
// Adding the same pattern multiple times is reference-counted.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns[pattern]++
}

// Remove unregisters one reference to a pattern.
// The pattern stops matching once all references are removed.
func (m *Matcher) Remove(pattern Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n, ok := m.patterns[pattern]; ok {
		if n <= 1 {
			delete(m.patterns, pattern)
		} else {
			m.patterns[pattern] = n - 1
		}
	}
}

// Match returns all registered patterns that match the given event topic.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []Topic
	for pattern := range m.patterns {
		if eventTopic.Matches(pattern) {
			matched = append(matched, pattern)
		}
	}
	return matched
}

// Count returns the number of distinct registered patterns.
func (m *Matcher) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.patterns)
}

// Clear removes all patterns.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = make(map[Topic]int)
}
