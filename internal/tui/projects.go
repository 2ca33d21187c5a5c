package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/djb242/inkwell/internal/store"
)

type projectsModel struct {
	store  *store.Store
	width  int
	height int

	projects     []store.Project
	cursor       int
	showArchived bool

	formActive bool
	form       *huh.Form
	editing    bool
	editingID  string

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
	formTarget      *string
	formDeadline    *string
	formStatus      *string
}

func newProjectsModel(s *store.Store) projectsModel {
	title, desc, target, deadline, status := "", "", "", "", ""
	return projectsModel{
		store:           s,
		formTitle:       &title,
		formDescription: &desc,
		formTarget:      &target,
		formDeadline:    &deadline,
		formStatus:      &status,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p projectsModel) refresh() tea.Cmd {
	showArchived := p.showArchived
	st := p.store
	return func() tea.Msg {
		return projectsDataMsg{projects: st.Projects(showArchived)}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.projects)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showForm(false)
		case key.Matches(msg, keys.Edit):
			if len(p.projects) > 0 {
				return p.showForm(true)
			}
		case key.Matches(msg, keys.Delete):
			if len(p.projects) > 0 {
				proj := p.projects[p.cursor]
				p.store.ArchiveProject(proj.ID)
				return p, tea.Batch(p.refresh(), func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Archived %q", proj.Title)}
				})
			}
		case key.Matches(msg, keys.Purge):
			if len(p.projects) > 0 {
				proj := p.projects[p.cursor]
				p.store.PurgeProject(proj.ID)
				return p, tea.Batch(p.refresh(), func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Deleted %q", proj.Title)}
				})
			}
		case key.Matches(msg, keys.Archived):
			p.showArchived = !p.showArchived
			return p, p.refresh()
		}
	}
	return p, nil
}

func (p projectsModel) showForm(edit bool) (projectsModel, tea.Cmd) {
	p.editing = edit
	if edit {
		proj := p.projects[p.cursor]
		p.editingID = proj.ID
		*p.formTitle = proj.Title
		*p.formDescription = proj.Description
		*p.formTarget = strconv.Itoa(proj.TargetWords)
		*p.formDeadline = proj.Deadline
		*p.formStatus = string(proj.Status)
	} else {
		*p.formTitle = ""
		*p.formDescription = ""
		*p.formTarget = ""
		*p.formDeadline = ""
		*p.formStatus = string(store.StatusDrafting)
	}

	fields := []huh.Field{
		huh.NewInput().Title("Title").Value(p.formTitle),
		huh.NewInput().Title("Description").Value(p.formDescription),
		huh.NewInput().Title("Target words").Value(p.formTarget),
		huh.NewInput().Title("Deadline (YYYY-MM-DD, optional)").Value(p.formDeadline),
	}
	if edit {
		fields = append(fields, huh.NewSelect[string]().Title("Status").
			Options(
				huh.NewOption(string(store.StatusDrafting), string(store.StatusDrafting)),
				huh.NewOption(string(store.StatusEditing), string(store.StatusEditing)),
				huh.NewOption(string(store.StatusComplete), string(store.StatusComplete)),
			).Value(p.formStatus))
	}

	p.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p.submitForm()
	}

	return p, cmd
}

func (p projectsModel) submitForm() (projectsModel, tea.Cmd) {
	title := strings.TrimSpace(*p.formTitle)
	if title == "" {
		return p, func() tea.Msg {
			return statusMsg{text: "Project title is required", isError: true}
		}
	}

	target, _ := strconv.Atoi(strings.TrimSpace(*p.formTarget))
	deadline := strings.TrimSpace(*p.formDeadline)
	if deadline != "" {
		if _, err := time.Parse(store.DayFormat, deadline); err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: "Deadline must be YYYY-MM-DD", isError: true}
			}
		}
	}
	desc := strings.TrimSpace(*p.formDescription)

	if p.editing {
		status := store.Status(*p.formStatus)
		p.store.UpdateProject(p.editingID, store.ProjectPatch{
			Title:       &title,
			Description: &desc,
			TargetWords: &target,
			Deadline:    &deadline,
			Status:      &status,
		})
		return p, tea.Batch(p.refresh(), func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Updated %q", title)}
		})
	}

	p.store.AddProject(store.Project{
		Title:       title,
		Description: desc,
		TargetWords: target,
		Deadline:    deadline,
	})
	return p, tea.Batch(p.refresh(), func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Created %q", title)}
	})
}

func (p projectsModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		if p.editing {
			title = titleStyle.Render("Edit Project")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	heading := "Projects"
	if p.showArchived {
		heading = "Projects (incl. archived)"
	}
	title := titleStyle.Render(heading)

	if len(p.projects) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %-10s %10s  %-10s", "Title", "Status", "Target", "Deadline")))

	for i, proj := range p.projects {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := truncate(proj.Title, 28)
		if proj.Archived {
			name = name + " ⊘"
		}
		row := style.Render(fmt.Sprintf("%s%-28s %-10s %10s  %-10s",
			cursor, name, proj.Status, formatWords(proj.TargetWords), proj.Deadline))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: archive  x: purge  a: toggle archived"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
