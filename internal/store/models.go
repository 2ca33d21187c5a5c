package store

import "time"

// DayFormat is the calendar-day key used for all "same day" aggregation.
// Session dates carry no time component.
const DayFormat = "2006-01-02"

type Status string

const (
	StatusDrafting Status = "Drafting"
	StatusEditing  Status = "Editing"
	StatusComplete Status = "Complete"
)

type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetWords int       `json:"target_words"`
	Deadline    string    `json:"deadline,omitempty"` // DayFormat, optional
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Archived    bool      `json:"archived,omitempty"`
}

// Session is one recorded writing sitting. Append-only; never mutated
// after creation.
type Session struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"` // empty = unattributed
	Date      string `json:"date"`                 // DayFormat
	Minutes   int    `json:"minutes"`
	Words     int    `json:"words"`
	Notes     string `json:"notes,omitempty"`
}

// Idea tags are an ordered multiset: input order preserved, duplicates kept.
type Idea struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags,omitempty"`
	ProjectID string    `json:"project_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Pinned    bool      `json:"pinned,omitempty"`
}

// Bundle is the full persisted snapshot of the store.
type Bundle struct {
	Projects  []Project `json:"projects"`
	Sessions  []Session `json:"sessions"`
	Ideas     []Idea    `json:"ideas"`
	DailyGoal int       `json:"daily_goal"`
}

// ProjectPatch carries the fields UpdateProject may change; nil means
// leave as-is.
type ProjectPatch struct {
	Title       *string
	Description *string
	TargetWords *int
	Deadline    *string
	Status      *Status
}

type IdeaPatch struct {
	Text      *string
	Tags      *[]string
	ProjectID *string
	Pinned    *bool
}

func (b Bundle) clone() Bundle {
	out := Bundle{
		Projects:  make([]Project, len(b.Projects)),
		Sessions:  make([]Session, len(b.Sessions)),
		Ideas:     make([]Idea, len(b.Ideas)),
		DailyGoal: b.DailyGoal,
	}
	copy(out.Projects, b.Projects)
	copy(out.Sessions, b.Sessions)
	for i, idea := range b.Ideas {
		if idea.Tags != nil {
			tags := make([]string, len(idea.Tags))
			copy(tags, idea.Tags)
			idea.Tags = tags
		}
		out.Ideas[i] = idea
	}
	return out
}
