package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// focusModel is the Timer tab: the countdown plus its controls and the
// custom-duration form.
type focusModel struct {
	timer  timerModel
	width  int
	height int

	formActive  bool
	form        *huh.Form
	formMinutes *string
}

func newFocusModel() focusModel {
	mins := ""
	return focusModel{
		timer:       newTimerModel(),
		formMinutes: &mins,
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		if f.timer.tick() {
			suggested := f.timer.suggestedMinutes()
			return f, tea.Batch(
				func() tea.Msg { return timerDoneMsg{suggestedMinutes: suggested} },
				func() tea.Msg { return statusMsg{text: "Focus session complete! \a"} },
			)
		}
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			f.timer.start()
		case key.Matches(msg, keys.Pause):
			f.timer.toggle()
		case key.Matches(msg, keys.Reset):
			f.timer.reset()
		case msg.String() == "[":
			f.timer.set(15)
		case msg.String() == "]":
			f.timer.set(50)
		case msg.String() == "c":
			return f.showCustomForm()
		}
	}
	return f, nil
}

func (f focusModel) showCustomForm() (focusModel, tea.Cmd) {
	*f.formMinutes = strconv.Itoa(f.timer.configured / 60)

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Minutes").Value(f.formMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f focusModel) updateForm(msg tea.Msg) (focusModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		if mins, err := strconv.Atoi(strings.TrimSpace(*f.formMinutes)); err == nil {
			f.timer.set(mins)
		}
		return f, nil
	}

	return f, cmd
}

func (f focusModel) view() string {
	w := f.width - 4

	if f.formActive && f.form != nil {
		title := titleStyle.Render("Custom Duration")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", f.form.View()),
		)
	}

	title := titleStyle.Render("Focus Timer")

	var timeDisplay, label, controls string
	switch f.timer.phase {
	case timerIdle:
		timeDisplay = countdownStyle.Width(w - 6).Render(formatClock(f.timer.remaining))
		label = mutedStyle.Render("Ready")
		controls = mutedStyle.Render("s: start  [: 15m  ]: 50m  c: custom")
	case timerRunning:
		timeDisplay = countdownRunStyle.Width(w - 6).Render(formatClock(f.timer.remaining))
		label = successStyle.Bold(true).Render("FOCUS")
		controls = mutedStyle.Render("space: pause  r: reset")
	case timerPaused:
		timeDisplay = countdownPauseStyle.Width(w - 6).Render(formatClock(f.timer.remaining))
		label = warningStyle.Bold(true).Render("PAUSED")
		controls = mutedStyle.Render("space: resume  r: reset")
	case timerExpired:
		timeDisplay = countdownRunStyle.Width(w - 6).Render("Done!")
		label = successStyle.Bold(true).Render("TIME'S UP — log your session")
		controls = mutedStyle.Render("s: start again  r: reset")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		label,
		"",
		f.renderConfigured(),
		"",
		controls,
	)

	return panelStyle.Width(w).Render(content)
}

func (f focusModel) renderConfigured() string {
	mins := f.timer.configured / 60
	parts := []string{}
	for _, preset := range []int{15, 25, 50} {
		s := strconv.Itoa(preset) + "m"
		if preset == mins {
			parts = append(parts, highlightStyle.Render(s))
		} else {
			parts = append(parts, mutedStyle.Render(s))
		}
	}
	if mins != 15 && mins != 25 && mins != 50 {
		parts = append(parts, highlightStyle.Render(strconv.Itoa(mins)+"m"))
	}
	return strings.Join(parts, "  ")
}
