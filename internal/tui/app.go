package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/djb242/inkwell/internal/config"
	"github.com/djb242/inkwell/internal/export"
	"github.com/djb242/inkwell/internal/persist"
	"github.com/djb242/inkwell/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	bridge *persist.Bridge
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	projects  projectsModel
	sessions  sessionsModel
	ideas     ideasModel
	focus     focusModel
	settings  settingsModel

	help        help.Model
	status      string
	statusIsErr bool
}

func NewApp(s *store.Store, bridge *persist.Bridge, cfg config.Config) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		bridge:     bridge,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s),
		projects:   newProjectsModel(s),
		sessions:   newSessionsModel(s),
		ideas:      newIdeasModel(s),
		focus:      newFocusModel(),
		settings:   newSettingsModel(s, bridge, cfg),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.projects.setSize(a.width, contentHeight)
		a.sessions.setSize(a.width, contentHeight)
		a.ideas.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewProjects
			return a, a.projects.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSessions
			return a, a.sessions.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewIdeas
			return a, a.ideas.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 6
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// The timer is the only consumer of the shared 1s tick.
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case timerDoneMsg:
		// One-shot expiry edge: jump to the prefilled log form.
		a.activeView = viewSessions
		var cmd tea.Cmd
		a.sessions, cmd = a.sessions.showLogForm(msg.suggestedMinutes)
		return a, cmd

	case signInResultMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, tea.Batch(cmd, a.refreshCurrentView())

	case statusMsg:
		a.status = msg.text
		a.statusIsErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusIsErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewSessions:
		a.sessions, cmd = a.sessions.update(msg)
	case viewIdeas:
		a.ideas, cmd = a.ideas.update(msg)
	case viewTimer:
		a.focus, cmd = a.focus.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewProjects:
		return a.projects.formActive
	case viewSessions:
		return a.sessions.formActive
	case viewIdeas:
		return a.ideas.formActive
	case viewTimer:
		return a.focus.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewProjects:
		return a.projects.refresh()
	case viewSessions:
		return a.sessions.refresh()
	case viewIdeas:
		return a.ideas.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewProjects:
		content = a.projects.view()
	case viewSessions:
		content = a.sessions.view()
	case viewIdeas:
		content = a.ideas.view()
	case viewTimer:
		content = a.focus.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("inkwell")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusIsErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	timerInfo := ""
	if a.focus.timer.running() {
		timerInfo = successStyle.Render(" ◔ " + formatClock(a.focus.timer.remaining))
	} else if a.focus.timer.paused() {
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.focus.timer.remaining))
	}

	syncInfo := ""
	if a.bridge != nil && a.bridge.Hydrated() {
		syncInfo = highlightStyle.Render(" ⇅")
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + syncInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"JSON bundle", "Sessions CSV"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	st := a.store
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(store.DayFormat)

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("inkwell-export-%s.json", dateStr))
			if err := export.WriteJSON(st.Snapshot(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("inkwell-export-%s.csv", dateStr))
			titles := projectTitles(st.Projects(true))
			if err := export.WriteCSV(st.Sessions(), titles, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
