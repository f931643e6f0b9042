// Package session implements the mock-test session engine: an ordered section
// registry, a per-user session state machine (navigation, answer collection,
// submission gate), and an in-memory manager owning the live sessions. Sessions
// are deliberately volatile; only submission persists anything.
package session

import (
	"errors"
	"sort"
	"time"

	"github.com/Loikaaa/neplia-sub001/internal/model"
)

var ErrEmptyRegistry = errors.New("session: registry needs at least one section")

// Section is the registry's immutable view of one test section.
type Section struct {
	ID       uint
	Title    string
	Type     model.SectionType
	Duration time.Duration
	AudioURL string // empty unless the section has an audio source
}

// Registry is the ordered, immutable list of sections for one sitting.
// Ordering is significant: it defines the navigation sequence.
type Registry struct {
	sections []Section
}

func NewRegistry(sections []Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyRegistry
	}
	out := make([]Section, len(sections))
	copy(out, sections)
	return &Registry{sections: out}, nil
}

// NewRegistryFromModel builds a registry from persisted sections, ordered by
// their position in the test.
func NewRegistryFromModel(sections []model.Section) (*Registry, error) {
	ordered := make([]model.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderInTest < ordered[j].OrderInTest
	})

	out := make([]Section, 0, len(ordered))
	for _, s := range ordered {
		sec := Section{
			ID:       s.ID,
			Title:    s.Title,
			Type:     s.Type,
			Duration: time.Duration(s.DurationSeconds) * time.Second,
		}
		if s.AudioURL != nil {
			sec.AudioURL = *s.AudioURL
		}
		out = append(out, sec)
	}
	return NewRegistry(out)
}

func (r *Registry) Len() int { return len(r.sections) }

func (r *Registry) At(i int) Section { return r.sections[i] }

func (r *Registry) LastIndex() int { return len(r.sections) - 1 }
