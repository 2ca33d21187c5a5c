package store

import (
	"time"

	"github.com/google/uuid"
)

// AddProject assigns a fresh id and creation timestamp, forces the status
// to Drafting and appends. The stored copy is returned.
func (s *Store) AddProject(draft Project) Project {
	p := draft
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.Status = StatusDrafting
	p.Archived = false
	if p.TargetWords < 0 {
		p.TargetWords = 0
	}

	s.mu.Lock()
	s.bundle.Projects = append(s.bundle.Projects, p)
	s.mu.Unlock()
	s.notify()
	return p
}

// UpdateProject shallow-merges the patch into the matching record.
// Unknown ids are a no-op.
func (s *Store) UpdateProject(id string, patch ProjectPatch) {
	s.mu.Lock()
	changed := false
	for i := range s.bundle.Projects {
		if s.bundle.Projects[i].ID != id {
			continue
		}
		p := &s.bundle.Projects[i]
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.TargetWords != nil {
			p.TargetWords = *patch.TargetWords
			if p.TargetWords < 0 {
				p.TargetWords = 0
			}
		}
		if patch.Deadline != nil {
			p.Deadline = *patch.Deadline
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		changed = true
		break
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ArchiveProject soft-deletes: the project disappears from active views but
// stays around for historical session attribution.
func (s *Store) ArchiveProject(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.bundle.Projects {
		if s.bundle.Projects[i].ID == id && !s.bundle.Projects[i].Archived {
			s.bundle.Projects[i].Archived = true
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// PurgeProject removes the record outright. Sessions referencing it become
// unattributed in display; the reference itself is left untouched.
func (s *Store) PurgeProject(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.bundle.Projects {
		if s.bundle.Projects[i].ID == id {
			s.bundle.Projects = append(s.bundle.Projects[:i], s.bundle.Projects[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Projects returns a copy of the project list, optionally including
// archived records.
func (s *Store) Projects(includeArchived bool) []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, 0, len(s.bundle.Projects))
	for _, p := range s.bundle.Projects {
		if !includeArchived && p.Archived {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProjectTitle resolves a project id for display. Unknown or empty ids
// report as unattributed.
func (s *Store) ProjectTitle(id string) string {
	if id == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.bundle.Projects {
		if p.ID == id {
			return p.Title
		}
	}
	return ""
}
