package tui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/djb242/inkwell/internal/store"
)

type sessionsModel struct {
	store  *store.Store
	width  int
	height int

	sessions []store.Session
	titles   map[string]string
	cursor   int

	formActive bool
	form       *huh.Form

	formProject *string
	formDate    *string
	formMinutes *string
	formWords   *string
	formNotes   *string
}

func newSessionsModel(s *store.Store) sessionsModel {
	project, date, minutes, words, notes := "", "", "", "", ""
	return sessionsModel{
		store:       s,
		titles:      map[string]string{},
		formProject: &project,
		formDate:    &date,
		formMinutes: &minutes,
		formWords:   &words,
		formNotes:   &notes,
	}
}

func (m *sessionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m sessionsModel) refresh() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		sessions := st.Sessions()
		// Newest first; the stored order is append order.
		sort.SliceStable(sessions, func(i, j int) bool {
			return sessions[i].Date > sessions[j].Date
		})
		return sessionsDataMsg{
			sessions: sessions,
			titles:   projectTitles(st.Projects(true)),
		}
	}
}

func (m sessionsModel) update(msg tea.Msg) (sessionsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case sessionsDataMsg:
		m.sessions = msg.sessions
		m.titles = msg.titles
		if m.cursor >= len(m.sessions) {
			m.cursor = max(0, len(m.sessions)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showLogForm(0)
		case key.Matches(msg, keys.Delete):
			if len(m.sessions) > 0 {
				m.store.DeleteSession(m.sessions[m.cursor].ID)
				return m, tea.Batch(m.refresh(), func() tea.Msg {
					return statusMsg{text: "Session deleted"}
				})
			}
		}
	}
	return m, nil
}

// showLogForm opens the log form. A non-zero suggestedMinutes prefills the
// minutes field (the timer's elapsed estimate).
func (m sessionsModel) showLogForm(suggestedMinutes int) (sessionsModel, tea.Cmd) {
	*m.formProject = ""
	*m.formDate = time.Now().Format(store.DayFormat)
	*m.formMinutes = ""
	if suggestedMinutes > 0 {
		*m.formMinutes = strconv.Itoa(suggestedMinutes)
	}
	*m.formWords = ""
	*m.formNotes = ""

	options := []huh.Option[string]{huh.NewOption("(unattributed)", "")}
	for _, p := range m.store.Projects(false) {
		options = append(options, huh.NewOption(p.Title, p.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Project").Options(options...).Value(m.formProject),
			huh.NewInput().Title("Date").Value(m.formDate),
			huh.NewInput().Title("Minutes").Value(m.formMinutes),
			huh.NewInput().Title("Words").Value(m.formWords),
			huh.NewInput().Title("Notes").Value(m.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sessionsModel) updateForm(msg tea.Msg) (sessionsModel, tea.Cmd) {
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

func (m sessionsModel) submitForm() (sessionsModel, tea.Cmd) {
	minutes, _ := strconv.Atoi(strings.TrimSpace(*m.formMinutes))
	words, _ := strconv.Atoi(strings.TrimSpace(*m.formWords))

	_, err := m.store.LogSession(store.Session{
		ProjectID: *m.formProject,
		Date:      strings.TrimSpace(*m.formDate),
		Minutes:   minutes,
		Words:     words,
		Notes:     strings.TrimSpace(*m.formNotes),
	})
	if errors.Is(err, store.ErrEmptySession) {
		return m, func() tea.Msg {
			return statusMsg{text: "Nothing to log: add minutes or words", isError: true}
		}
	}
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}

	return m, tea.Batch(m.refresh(), func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Logged %d words", words)}
	})
}

func (m sessionsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Session")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Sessions")

	if len(m.sessions) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No sessions yet. Press n to log one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-24s %8s %8s  %s", "Date", "Project", "Minutes", "Words", "Notes")))

	for i, s := range m.sessions {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		project := m.titles[s.ProjectID]
		if project == "" && s.ProjectID != "" {
			project = "(deleted)"
		}
		row := style.Render(fmt.Sprintf("%s%-12s %-24s %8d %8d  %s",
			cursor, s.Date, truncate(project, 24), s.Minutes, s.Words, truncate(s.Notes, 24)))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: log  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
