package store

import (
	"time"

	"github.com/google/uuid"
)

// AddIdea assigns a fresh id and timestamp and prepends, keeping the list
// newest-first. Tag order and duplicates are preserved as entered.
func (s *Store) AddIdea(draft Idea) Idea {
	i := draft
	i.ID = uuid.NewString()
	i.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.bundle.Ideas = append([]Idea{i}, s.bundle.Ideas...)
	s.mu.Unlock()
	s.notify()
	return i
}

func (s *Store) UpdateIdea(id string, patch IdeaPatch) {
	s.mu.Lock()
	changed := false
	for idx := range s.bundle.Ideas {
		if s.bundle.Ideas[idx].ID != id {
			continue
		}
		i := &s.bundle.Ideas[idx]
		if patch.Text != nil {
			i.Text = *patch.Text
		}
		if patch.Tags != nil {
			tags := make([]string, len(*patch.Tags))
			copy(tags, *patch.Tags)
			i.Tags = tags
		}
		if patch.ProjectID != nil {
			i.ProjectID = *patch.ProjectID
		}
		if patch.Pinned != nil {
			i.Pinned = *patch.Pinned
		}
		changed = true
		break
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) DeleteIdea(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.bundle.Ideas {
		if s.bundle.Ideas[i].ID == id {
			s.bundle.Ideas = append(s.bundle.Ideas[:i], s.bundle.Ideas[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) Ideas() []Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Idea, len(s.bundle.Ideas))
	for i, idea := range s.bundle.Ideas {
		if idea.Tags != nil {
			tags := make([]string, len(idea.Tags))
			copy(tags, idea.Tags)
			idea.Tags = tags
		}
		out[i] = idea
	}
	return out
}
