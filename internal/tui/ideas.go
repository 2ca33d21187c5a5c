package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/djb242/inkwell/internal/store"
)

type ideasModel struct {
	store  *store.Store
	width  int
	height int

	ideas  []store.Idea
	titles map[string]string
	cursor int

	formActive bool
	form       *huh.Form
	editing    bool
	editingID  string

	formText    *string
	formTags    *string
	formProject *string
}

func newIdeasModel(s *store.Store) ideasModel {
	text, tags, project := "", "", ""
	return ideasModel{
		store:       s,
		titles:      map[string]string{},
		formText:    &text,
		formTags:    &tags,
		formProject: &project,
	}
}

func (m *ideasModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ideasModel) refresh() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return ideasDataMsg{
			ideas:  st.Ideas(),
			titles: projectTitles(st.Projects(true)),
		}
	}
}

func (m ideasModel) update(msg tea.Msg) (ideasModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case ideasDataMsg:
		m.ideas = msg.ideas
		m.titles = msg.titles
		if m.cursor >= len(m.ideas) {
			m.cursor = max(0, len(m.ideas)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.ideas)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(false)
		case key.Matches(msg, keys.Edit):
			if len(m.ideas) > 0 {
				return m.showForm(true)
			}
		case key.Matches(msg, keys.Pin):
			if len(m.ideas) > 0 {
				idea := m.ideas[m.cursor]
				pinned := !idea.Pinned
				m.store.UpdateIdea(idea.ID, store.IdeaPatch{Pinned: &pinned})
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Delete):
			if len(m.ideas) > 0 {
				m.store.DeleteIdea(m.ideas[m.cursor].ID)
				return m, tea.Batch(m.refresh(), func() tea.Msg {
					return statusMsg{text: "Idea deleted"}
				})
			}
		}
	}
	return m, nil
}

func (m ideasModel) showForm(edit bool) (ideasModel, tea.Cmd) {
	m.editing = edit
	if edit {
		idea := m.ideas[m.cursor]
		m.editingID = idea.ID
		*m.formText = idea.Text
		*m.formTags = strings.Join(idea.Tags, ", ")
		*m.formProject = idea.ProjectID
	} else {
		*m.formText = ""
		*m.formTags = ""
		*m.formProject = ""
	}

	options := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, p := range m.store.Projects(false) {
		options = append(options, huh.NewOption(p.Title, p.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Idea").Value(m.formText),
			huh.NewInput().Title("Tags (comma-separated)").Value(m.formTags),
			huh.NewSelect[string]().Title("Project").Options(options...).Value(m.formProject),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m ideasModel) updateForm(msg tea.Msg) (ideasModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}

	return m, cmd
}

// parseTags splits the comma-separated input. Order is preserved and
// duplicates are kept; tags are an ordered multiset.
func parseTags(input string) []string {
	var tags []string
	for _, t := range strings.Split(input, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (m ideasModel) submitForm() (ideasModel, tea.Cmd) {
	text := strings.TrimSpace(*m.formText)
	if text == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "Idea text is required", isError: true}
		}
	}
	tags := parseTags(*m.formTags)

	if m.editing {
		m.store.UpdateIdea(m.editingID, store.IdeaPatch{
			Text:      &text,
			Tags:      &tags,
			ProjectID: m.formProject,
		})
	} else {
		m.store.AddIdea(store.Idea{
			Text:      text,
			Tags:      tags,
			ProjectID: *m.formProject,
		})
	}
	return m, m.refresh()
}

func (m ideasModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Idea")
		if m.editing {
			title = titleStyle.Render("Edit Idea")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Ideas")

	if len(m.ideas) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No ideas captured yet. Press n to add one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, idea := range m.ideas {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pin := "  "
		if idea.Pinned {
			pin = pinStyle.Render("★ ")
		}
		line := style.Render(cursor+pin+truncate(idea.Text, 48))
		if len(idea.Tags) > 0 {
			line += mutedStyle.Render(" [" + strings.Join(idea.Tags, ", ") + "]")
		}
		if t := m.titles[idea.ProjectID]; t != "" {
			line += highlightStyle.Render(" → " + t)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d ideas · n: new  e: edit  p: pin  d: delete", len(m.ideas))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
