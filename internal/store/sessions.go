package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptySession rejects a log attempt with neither time nor words.
// It is a validation signal for the UI, not a hard failure.
var ErrEmptySession = errors.New("session needs minutes or words")

// LogSession assigns a fresh id and appends. The date is normalized to a
// plain calendar-day string; an empty date means today. Negative counts
// clamp to zero, and a session with both minutes<=0 and words<=0 is
// rejected without writing anything.
func (s *Store) LogSession(draft Session) (Session, error) {
	if draft.Minutes <= 0 && draft.Words <= 0 {
		return Session{}, ErrEmptySession
	}

	sess := draft
	sess.ID = uuid.NewString()
	if sess.Minutes < 0 {
		sess.Minutes = 0
	}
	if sess.Words < 0 {
		sess.Words = 0
	}
	if sess.Date == "" {
		sess.Date = time.Now().Format(DayFormat)
	} else if t, err := time.Parse(DayFormat, sess.Date); err == nil {
		sess.Date = t.Format(DayFormat)
	} else {
		sess.Date = time.Now().Format(DayFormat)
	}

	s.mu.Lock()
	s.bundle.Sessions = append(s.bundle.Sessions, sess)
	s.mu.Unlock()
	s.notify()
	return sess, nil
}

func (s *Store) DeleteSession(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.bundle.Sessions {
		if s.bundle.Sessions[i].ID == id {
			s.bundle.Sessions = append(s.bundle.Sessions[:i], s.bundle.Sessions[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Session, len(s.bundle.Sessions))
	copy(out, s.bundle.Sessions)
	return out
}
