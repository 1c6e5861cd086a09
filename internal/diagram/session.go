package diagram

import "fmt"

// IDPrefix prefixes the element ids handed to the diagramming engine.
const IDPrefix = "mdpdf-diagram-"

// Session is the per-conversion initialization context. It hands out diagram
// ids and owns one-time resources (an initialized engine page, a canvas page)
// so nothing is shared between conversions through package state.
//
// A Session serves one document at a time and is not safe for concurrent use.
type Session struct {
	next      int
	resources map[string]any
	releases  []func()
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{resources: make(map[string]any)}
}

// NextID returns a fresh element id, unique within the session.
func (s *Session) NextID() string {
	id := fmt.Sprintf("%s%d", IDPrefix, s.next)
	s.next++
	return id
}

// Resource returns the value stored under key, creating it with open on first
// use. A failed open is not cached, so a later diagram may retry.
func (s *Session) Resource(key string, open func() (any, func(), error)) (any, error) {
	if v, ok := s.resources[key]; ok {
		return v, nil
	}
	v, release, err := open()
	if err != nil {
		return nil, err
	}
	s.resources[key] = v
	if release != nil {
		s.releases = append(s.releases, release)
	}
	return v, nil
}

// Initialized reports whether key has been opened in this session.
func (s *Session) Initialized(key string) bool {
	_, ok := s.resources[key]
	return ok
}

// Close releases resources in reverse order of creation.
func (s *Session) Close() {
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
	s.resources = make(map[string]any)
}
