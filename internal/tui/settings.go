package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/djb242/inkwell/internal/config"
	"github.com/djb242/inkwell/internal/export"
	"github.com/djb242/inkwell/internal/persist"
	"github.com/djb242/inkwell/internal/store"
)

type settingsModel struct {
	store  *store.Store
	bridge *persist.Bridge
	cfg    config.Config
	width  int
	height int

	signingIn bool

	formActive bool
	form       *huh.Form
	formKind   string // "goal", "import"

	formGoal *string
	formPath *string
}

func newSettingsModel(s *store.Store, bridge *persist.Bridge, cfg config.Config) settingsModel {
	goal, path := "", ""
	return settingsModel{
		store:    s,
		bridge:   bridge,
		cfg:      cfg,
		formGoal: &goal,
		formPath: &path,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case signInResultMsg:
		m.signingIn = false
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Sync unavailable — working locally", isError: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Signed in as " + msg.account}
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return m.showGoalForm()
		case key.Matches(msg, keys.Import):
			return m.showImportForm()
		case key.Matches(msg, keys.SignIn):
			return m.signIn()
		case key.Matches(msg, keys.SignOut):
			if m.bridge != nil {
				m.bridge.SignOut()
				return m, func() tea.Msg {
					return statusMsg{text: "Signed out"}
				}
			}
		}
	}
	return m, nil
}

func (m settingsModel) signIn() (settingsModel, tea.Cmd) {
	if m.bridge == nil || m.cfg.SyncURL == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "No sync server configured (INKWELL_SYNC_URL)", isError: true}
		}
	}
	if m.cfg.AccountID == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "No account configured (INKWELL_ACCOUNT_ID)", isError: true}
		}
	}
	if m.signingIn {
		return m, nil
	}
	m.signingIn = true

	bridge := m.bridge
	account := m.cfg.AccountID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := bridge.SignIn(ctx, account)
		return signInResultMsg{account: account, err: err}
	}
}

func (m settingsModel) showGoalForm() (settingsModel, tea.Cmd) {
	*m.formGoal = strconv.Itoa(m.store.DailyGoal())
	m.formKind = "goal"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily word goal").Value(m.formGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	*m.formPath = ""
	m.formKind = "import"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Import file path").Value(m.formPath),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		switch m.formKind {
		case "goal":
			return m.submitGoal()
		case "import":
			return m.submitImport()
		}
	}

	return m, cmd
}

func (m settingsModel) submitGoal() (settingsModel, tea.Cmd) {
	goal, err := strconv.Atoi(strings.TrimSpace(*m.formGoal))
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: "Daily goal must be a number", isError: true}
		}
	}
	m.store.SetDailyGoal(goal)
	return m, func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Daily goal set to %d", m.store.DailyGoal())}
	}
}

func (m settingsModel) submitImport() (settingsModel, tea.Cmd) {
	path := strings.TrimSpace(*m.formPath)
	bundle, err := export.ReadJSON(path)
	if err != nil {
		// Parse failure: report, change nothing.
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Import failed: %v", err), isError: true}
		}
	}
	m.store.Replace(bundle)
	return m, func() tea.Msg {
		return statusMsg{text: "Imported " + path}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Daily Goal")
		if m.formKind == "import" {
			title = titleStyle.Render("Import Bundle")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	goalLine := fmt.Sprintf("  %-16s %s", "Daily goal", highlightStyle.Render(strconv.Itoa(m.store.DailyGoal())+" words"))

	syncLine := "  " + fmt.Sprintf("%-16s ", "Sync")
	switch {
	case m.cfg.SyncURL == "":
		syncLine += mutedStyle.Render("not configured")
	case m.signingIn:
		syncLine += warningStyle.Render("signing in…")
	case m.bridge != nil && m.bridge.Hydrated():
		syncLine += successStyle.Render("signed in as " + m.bridge.Account())
	default:
		syncLine += mutedStyle.Render("signed out (" + m.cfg.AccountID + ")")
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, goalLine)
	rows = append(rows, syncLine)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit goal  i: import  s: sign in  o: sign out"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
