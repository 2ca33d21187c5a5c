package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/djb242/inkwell/internal/stats"
	"github.com/djb242/inkwell/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	todayWords int
	dailyGoal  int
	streak     int
	totalWords int
	wph        int
	trend      []stats.DayTotal
	recent     []store.Session
	titles     map[string]string

	chart barchart.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store:  s,
		titles: map[string]string{},
		chart:  barchart.New(60, 8),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) loadData() tea.Cmd {
	st := d.store
	return func() tea.Msg {
		sessions := st.Sessions()
		now := time.Now()

		recent := make([]store.Session, len(sessions))
		copy(recent, sessions)
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].Date > recent[j].Date
		})
		if len(recent) > 5 {
			recent = recent[:5]
		}

		return dashboardDataMsg{
			todayWords: stats.TodayWords(sessions, now),
			dailyGoal:  st.DailyGoal(),
			streak:     stats.Streak(sessions, now),
			totalWords: stats.TotalWords(sessions),
			wph:        stats.WordsPerHour(sessions),
			trend:      stats.Trend(sessions, now),
			recent:     recent,
			titles:     projectTitles(st.Projects(true)),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayWords = msg.todayWords
		d.dailyGoal = msg.dailyGoal
		d.streak = msg.streak
		d.totalWords = msg.totalWords
		d.wph = msg.wph
		d.trend = msg.trend
		d.recent = msg.recent
		d.titles = msg.titles
		d.buildChart()
		return d, nil
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 28 {
		chartWidth = 28
	}
	chartHeight := 8
	if d.height > 30 {
		chartHeight = 12
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, day := range d.trend {
		style := barStyle
		if day.Words == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: day.Label[4:], // day of month
			Values: []barchart.BarValue{
				{Name: day.Label, Value: float64(day.Words), Style: style},
			},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.width - 4

	goalPanel := d.renderGoalPanel(w)
	trendPanel := d.renderTrendPanel(w)
	recentPanel := d.renderRecentPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, goalPanel, trendPanel, recentPanel)
}

func (d dashboardModel) renderGoalPanel(w int) string {
	today := highlightStyle.Bold(true).Render(formatWords(d.todayWords))
	goal := mutedStyle.Render(fmt.Sprintf(" / %s words today", formatWords(d.dailyGoal)))

	bar := renderProgressBar(d.todayWords, d.dailyGoal, min(w-8, 40))

	streak := fmt.Sprintf("🔥 %d day streak", d.streak)
	if d.streak == 0 {
		streak = mutedStyle.Render("No streak yet — write today!")
	}

	totals := mutedStyle.Render(fmt.Sprintf("%s words all time · %d words/hour", formatWords(d.totalWords), d.wph))

	content := lipgloss.JoinVertical(lipgloss.Left,
		today+goal,
		bar,
		"",
		streak,
		totals,
	)
	if d.dailyGoal > 0 && d.todayWords >= d.dailyGoal {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func renderProgressBar(value, goal, width int) string {
	if width < 4 {
		width = 4
	}
	if goal <= 0 {
		return ""
	}
	filled := value * width / goal
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	pct := value * 100 / goal
	return bar + mutedStyle.Render(fmt.Sprintf(" %d%%", pct))
}

func (d dashboardModel) renderTrendPanel(w int) string {
	title := titleStyle.Render("Last 14 Days")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", d.chart.View()),
	)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(d.recent) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No sessions yet"),
		))
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.recent {
		project := d.titles[s.ProjectID]
		if project == "" {
			project = "—"
		}
		rows = append(rows, fmt.Sprintf("  %s  %-20s %6d words  %4d min",
			s.Date, truncate(project, 20), s.Words, s.Minutes))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
