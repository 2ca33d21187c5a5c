package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// DocumentVersion is the current schema of the persisted envelope. The
// local cache slot and the remote account row both hold exactly this shape.
const DocumentVersion = 1

// Document is the versioned envelope around a Bundle. Decoding is a
// deliberate contract: absent lists become empty, an absent goal becomes
// the default, and versions newer than this build are rejected rather
// than silently dropped on the floor.
type Document struct {
	Version   int       `json:"version"`
	Projects  []Project `json:"projects"`
	Sessions  []Session `json:"sessions"`
	Ideas     []Idea    `json:"ideas"`
	DailyGoal int       `json:"daily_goal"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewDocument wraps a bundle in the current envelope with a fresh
// updated_at stamp.
func NewDocument(b Bundle) Document {
	return Document{
		Version:   DocumentVersion,
		Projects:  b.Projects,
		Sessions:  b.Sessions,
		Ideas:     b.Ideas,
		DailyGoal: b.DailyGoal,
		UpdatedAt: time.Now().UTC(),
	}
}

// Bundle unpacks the envelope, applying the missing-field defaults.
func (d Document) Bundle() Bundle {
	b := Bundle{
		Projects:  d.Projects,
		Sessions:  d.Sessions,
		Ideas:     d.Ideas,
		DailyGoal: d.DailyGoal,
	}
	if b.Projects == nil {
		b.Projects = []Project{}
	}
	if b.Sessions == nil {
		b.Sessions = []Session{}
	}
	if b.Ideas == nil {
		b.Ideas = []Idea{}
	}
	if b.DailyGoal <= 0 {
		b.DailyGoal = DefaultDailyGoal
	}
	return b
}

func EncodeDocument(b Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a persisted envelope. Version 0 is accepted as the
// legacy unversioned shape; anything newer than DocumentVersion is an error.
func DecodeDocument(data []byte) (Bundle, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Bundle{}, fmt.Errorf("parse document: %w", err)
	}
	if d.Version > DocumentVersion {
		return Bundle{}, fmt.Errorf("document version %d is newer than supported version %d", d.Version, DocumentVersion)
	}
	return d.Bundle(), nil
}
