package tui

// timerPhase tracks the countdown state machine.
type timerPhase int

const (
	timerIdle timerPhase = iota
	timerRunning
	timerPaused
	timerExpired
)

const defaultTimerMinutes = 25

// timerModel is the focus countdown, independent of the store. It is
// driven by the app's shared one-second tick; ticks are ignored outside
// the Running phase, so nothing periodic leaks when the timer is idle.
type timerModel struct {
	configured int // seconds
	remaining  int
	phase      timerPhase
}

func newTimerModel() timerModel {
	secs := defaultTimerMinutes * 60
	return timerModel{configured: secs, remaining: secs}
}

// set reseeds the countdown with a new duration in whole minutes (clamped
// to at least 1) and returns to Idle, cancelling any expired edge.
func (t *timerModel) set(minutes int) {
	if minutes < 1 {
		minutes = 1
	}
	t.configured = minutes * 60
	t.remaining = t.configured
	t.phase = timerIdle
}

// reset reseeds with the currently configured duration.
func (t *timerModel) reset() {
	t.remaining = t.configured
	t.phase = timerIdle
}

func (t *timerModel) start() {
	switch t.phase {
	case timerIdle, timerExpired:
		if t.phase == timerExpired {
			t.remaining = t.configured
		}
		t.phase = timerRunning
	case timerPaused:
		t.phase = timerRunning
	}
}

// toggle pauses or resumes without touching the remaining count.
func (t *timerModel) toggle() {
	switch t.phase {
	case timerRunning:
		t.phase = timerPaused
	case timerPaused:
		t.phase = timerRunning
	}
}

// tick advances the countdown by one second. It reports true exactly once,
// on the transition to Expired.
func (t *timerModel) tick() bool {
	if t.phase != timerRunning {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.phase = timerExpired
	return true
}

func (t timerModel) running() bool { return t.phase == timerRunning }
func (t timerModel) paused() bool  { return t.phase == timerPaused }
func (t timerModel) expired() bool { return t.phase == timerExpired }

// suggestedMinutes is the elapsed-time estimate offered as the session log
// default: max(1, round(elapsed/60)).
func (t timerModel) suggestedMinutes() int {
	elapsed := t.configured - t.remaining
	mins := (elapsed + 30) / 60
	if mins < 1 {
		mins = 1
	}
	return mins
}
