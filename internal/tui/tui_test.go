package tui

import (
	"strings"
	"testing"

	"github.com/djb242/inkwell/internal/config"
	"github.com/djb242/inkwell/internal/store"
)

// ============================================================
// Timer model
// ============================================================

func TestTimerDefaults(t *testing.T) {
	tm := newTimerModel()
	if tm.phase != timerIdle {
		t.Fatal("timer should start idle")
	}
	if tm.remaining != defaultTimerMinutes*60 {
		t.Fatalf("expected %d seconds, got %d", defaultTimerMinutes*60, tm.remaining)
	}
}

func TestTimerStartPauseResume(t *testing.T) {
	tm := newTimerModel()
	tm.start()
	if !tm.running() {
		t.Fatal("timer should be running after start")
	}

	tm.toggle()
	if !tm.paused() {
		t.Fatal("toggle should pause")
	}

	tm.toggle()
	if !tm.running() {
		t.Fatal("toggle should resume")
	}
}

func TestTimerToggleWhenIdle(t *testing.T) {
	tm := newTimerModel()
	// Toggle when idle — should be a no-op
	tm.toggle()
	if tm.running() || tm.paused() {
		t.Fatal("toggle should not start the timer")
	}
}

func TestTimerTickOnlyWhileRunning(t *testing.T) {
	tm := newTimerModel()
	before := tm.remaining

	tm.tick() // idle
	if tm.remaining != before {
		t.Fatal("tick while idle should not count down")
	}

	tm.start()
	tm.toggle() // paused
	tm.tick()
	if tm.remaining != before {
		t.Fatal("tick while paused should not count down")
	}

	tm.toggle()
	tm.tick()
	if tm.remaining != before-1 {
		t.Fatalf("tick while running should count down, got %d", tm.remaining)
	}
}

func TestTimerExpiryFiresOnce(t *testing.T) {
	tm := newTimerModel()
	tm.set(1) // 60 seconds
	tm.start()

	fired := 0
	for i := 0; i < 60; i++ {
		if tm.tick() {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expiry should fire exactly once, got %d", fired)
	}
	if !tm.expired() {
		t.Fatal("timer should be expired")
	}
	if tm.remaining != 0 {
		t.Fatalf("remaining should be 0, got %d", tm.remaining)
	}

	// Further ticks in the expired phase stay silent.
	for i := 0; i < 10; i++ {
		if tm.tick() {
			t.Fatal("expired timer should not fire again")
		}
	}
}

func TestTimerSetClampsToOneMinute(t *testing.T) {
	tm := newTimerModel()
	tm.set(0)
	if tm.configured != 60 {
		t.Fatalf("expected 60 seconds, got %d", tm.configured)
	}
	tm.set(-5)
	if tm.configured != 60 {
		t.Fatalf("expected 60 seconds, got %d", tm.configured)
	}
}

func TestTimerSetClearsExpired(t *testing.T) {
	tm := newTimerModel()
	tm.set(1)
	tm.start()
	for i := 0; i < 60; i++ {
		tm.tick()
	}
	if !tm.expired() {
		t.Fatal("timer should be expired")
	}

	tm.set(25)
	if tm.phase != timerIdle {
		t.Fatal("set should return to idle")
	}
	if tm.remaining != 25*60 {
		t.Fatalf("remaining should reseed, got %d", tm.remaining)
	}
}

func TestTimerResetReturnsToIdle(t *testing.T) {
	tm := newTimerModel()
	tm.start()
	tm.tick()
	tm.reset()
	if tm.phase != timerIdle {
		t.Fatal("reset should return to idle")
	}
	if tm.remaining != tm.configured {
		t.Fatal("reset should restore the configured duration")
	}
}

func TestTimerStartFromExpiredReseeds(t *testing.T) {
	tm := newTimerModel()
	tm.set(1)
	tm.start()
	for i := 0; i < 60; i++ {
		tm.tick()
	}

	tm.start()
	if !tm.running() {
		t.Fatal("start from expired should run again")
	}
	if tm.remaining != 60 {
		t.Fatalf("start from expired should reseed, got %d", tm.remaining)
	}
}

func TestTimerSuggestedMinutes(t *testing.T) {
	tm := newTimerModel()
	tm.set(25)
	tm.start()
	// 10 minutes elapsed
	for i := 0; i < 600; i++ {
		tm.tick()
	}
	if got := tm.suggestedMinutes(); got != 10 {
		t.Fatalf("expected 10 suggested minutes, got %d", got)
	}
}

func TestTimerSuggestedMinutesFloorsAtOne(t *testing.T) {
	tm := newTimerModel()
	tm.set(25)
	tm.start()
	tm.tick() // one second elapsed
	if got := tm.suggestedMinutes(); got != 1 {
		t.Fatalf("short runs should suggest 1 minute, got %d", got)
	}
}

func TestTimerSuggestedMinutesFullRun(t *testing.T) {
	tm := newTimerModel()
	tm.set(1)
	tm.start()
	for i := 0; i < 60; i++ {
		tm.tick()
	}
	if got := tm.suggestedMinutes(); got != 1 {
		t.Fatalf("a full 60 second run should suggest 1 minute, got %d", got)
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{60, "01:00"},
		{1500, "25:00"},
		{330, "05:30"},
		{-5, "00:00"}, // negative should clamp to 0
	}
	for _, tt := range tests {
		got := formatClock(tt.secs)
		if got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{500, "500"},
		{9999, "9999"},
		{10000, "10.0k"},
		{12500, "12.5k"},
	}
	for _, tt := range tests {
		got := formatWords(tt.n)
		if got != tt.want {
			t.Errorf("formatWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should leave short strings alone, got %q", got)
	}
	got := truncate("a very long project title", 10)
	if len([]rune(got)) != 10 {
		t.Errorf("truncated length = %d, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated string should end with ellipsis, got %q", got)
	}
}

func TestParseTags(t *testing.T) {
	tags := parseTags(" horror, act2 ,horror,, ")
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %v", tags)
	}
	if tags[0] != "horror" || tags[1] != "act2" || tags[2] != "horror" {
		t.Fatalf("tags should keep order and duplicates, got %v", tags)
	}
}

func TestParseTagsEmpty(t *testing.T) {
	if tags := parseTags(""); tags != nil {
		t.Fatalf("empty input should yield no tags, got %v", tags)
	}
}

func TestProjectTitles(t *testing.T) {
	titles := projectTitles([]store.Project{
		{ID: "a", Title: "Novel"},
		{ID: "b", Title: "Essay"},
	})
	if titles["a"] != "Novel" || titles["b"] != "Essay" {
		t.Fatalf("unexpected map: %v", titles)
	}
}

func TestRenderProgressBar(t *testing.T) {
	if renderProgressBar(100, 0, 20) != "" {
		t.Fatal("zero goal should render nothing")
	}
	bar := renderProgressBar(50, 100, 20)
	if !strings.Contains(bar, "50%") {
		t.Fatalf("bar should show percentage, got %q", bar)
	}
	over := renderProgressBar(300, 100, 20)
	if !strings.Contains(over, "300%") {
		t.Fatalf("overshoot should still report true percent, got %q", over)
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 6 {
		t.Fatalf("expected 6 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Projects", "Sessions", "Ideas", "Timer", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewProjects != 1 || viewSessions != 2 ||
		viewIdeas != 3 || viewTimer != 4 || viewSettings != 5 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T) App {
	t.Helper()
	return NewApp(store.New(), nil, config.Config{})
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app := newTestApp(t)
	for v := viewDashboard; v <= viewSettings; v++ {
		app.activeView = v
		if app.isFormActive() {
			t.Fatalf("no forms should be active initially (view %d)", v)
		}
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40

	for v := viewDashboard; v <= viewSettings; v++ {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t)
	if app.View() != "Loading..." {
		t.Fatalf("unsized app should show loading, got %q", app.View())
	}
}

func TestAppHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40
	app.status = "saved"

	if !strings.Contains(app.renderFooter(), "saved") {
		t.Fatal("footer should contain the status message")
	}
}

func TestAppTimerDoneOpensLogForm(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40

	model, _ := app.Update(timerDoneMsg{suggestedMinutes: 25})
	updated := model.(App)
	if updated.activeView != viewSessions {
		t.Fatal("timer expiry should jump to the sessions view")
	}
	if !updated.sessions.formActive {
		t.Fatal("timer expiry should open the log form")
	}
	if *updated.sessions.formMinutes != "25" {
		t.Fatalf("minutes should be prefilled, got %q", *updated.sessions.formMinutes)
	}
}

func TestAppExportPicker(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	content := app.View()
	if !strings.Contains(content, "Export Format") {
		t.Fatal("export picker should render")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"countdown", func() string { return countdownStyle.Render("test") }},
		{"countdownRun", func() string { return countdownRunStyle.Render("test") }},
		{"countdownPause", func() string { return countdownPauseStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"pin", func() string { return pinStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
