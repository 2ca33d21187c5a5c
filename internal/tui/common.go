package tui

import (
	"fmt"
	"time"

	"github.com/djb242/inkwell/internal/stats"
	"github.com/djb242/inkwell/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewProjects
	viewSessions
	viewIdeas
	viewTimer
	viewSettings
)

var viewNames = []string{"Dashboard", "Projects", "Sessions", "Ideas", "Timer", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// timerDoneMsg is the one-shot expiry edge: the app jumps to the session
// log form prefilled with the suggested minutes.
type timerDoneMsg struct {
	suggestedMinutes int
}

type dashboardDataMsg struct {
	todayWords int
	dailyGoal  int
	streak     int
	totalWords int
	wph        int
	trend      []stats.DayTotal
	recent     []store.Session
	titles     map[string]string
}

type projectsDataMsg struct {
	projects []store.Project
}

type sessionsDataMsg struct {
	sessions []store.Session
	titles   map[string]string
}

type ideasDataMsg struct {
	ideas  []store.Idea
	titles map[string]string
}

type signInResultMsg struct {
	account string
	err     error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatWords(n int) string {
	if n >= 10000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// projectTitles builds the id → title lookup used for session attribution,
// including archived projects.
func projectTitles(projects []store.Project) map[string]string {
	titles := make(map[string]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}
	return titles
}

func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
