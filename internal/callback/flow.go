// Package callback finishes an external redirect flow: it reads a toast
// message and a redirect target from the query string, shows the toast
// once, and navigates to the target.
package callback

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// ToastDelay is how long a toast stays visible before navigation.
const ToastDelay = 1500 * time.Millisecond

// DefaultRedirect is used when no redirect target is given.
const DefaultRedirect = "/"

// Navigator changes the current location.
type Navigator interface {
	Navigate(target string)
}

// Notifier shows a one-shot notification.
type Notifier interface {
	Notify(message string)
}

// Clock schedules deferred work.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

// SystemClock schedules with the runtime timer.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Instruction is what the query string asks for.
type Instruction struct {
	Toast    string
	Redirect string
}

// Parse reads the toast and redirect parameters. The toast is kept verbatim.
// A missing redirect, or one that would leave the site through a script or a
// protocol-relative URL, resolves to DefaultRedirect; any other target,
// relative ones included, is passed through unchanged.
func Parse(query url.Values) Instruction {
	return Instruction{
		Toast:    query.Get("toast"),
		Redirect: resolveTarget(query.Get("redirect")),
	}
}

func resolveTarget(raw string) string {
	// Browsers ignore surrounding control characters and embedded tabs or
	// newlines, and treat "\" like "/".
	check := strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return -1
		case '\\':
			return '/'
		}
		return r
	}, strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' }))

	if check == "" || strings.HasPrefix(check, "//") {
		return DefaultRedirect
	}

	scheme, _, ok := strings.Cut(check, ":")
	if !ok || !isScheme(scheme) {
		return raw
	}
	switch strings.ToLower(scheme) {
	case "http", "https":
		u, err := url.Parse(check)
		if err != nil || u.Host == "" {
			return DefaultRedirect
		}
		return raw
	default:
		return DefaultRedirect
	}
}

// isScheme reports whether s is a URL scheme: a letter followed by letters,
// digits, "+", "-" or ".".
func isScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// State is a step of the flow.
type State int

const (
	StateInitial State = iota
	StateNotifying
	StateNavigating
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateNotifying:
		return "notifying"
	case StateNavigating:
		return "navigating"
	default:
		return "unknown"
	}
}

// Flow runs the callback steps exactly once.
type Flow struct {
	navigator Navigator
	notifier  Notifier
	clock     Clock

	once  sync.Once
	mu    sync.Mutex
	state State
	instr Instruction
}

// NewFlow creates a flow. A nil clock uses SystemClock.
func NewFlow(navigator Navigator, notifier Notifier, clock Clock) *Flow {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Flow{
		navigator: navigator,
		notifier:  notifier,
		clock:     clock,
	}
}

// Activate parses the query and starts the flow. Calls after the first are ignored.
// There is no cancellation: a scheduled navigation fires even if the caller
// has moved on.
func (f *Flow) Activate(query url.Values) {
	f.once.Do(func() {
		instr := Parse(query)

		f.mu.Lock()
		f.instr = instr
		f.mu.Unlock()

		if instr.Toast == "" {
			f.navigate()
			return
		}

		f.setState(StateNotifying)
		f.notifier.Notify(instr.Toast)
		f.clock.AfterFunc(ToastDelay, f.navigate)
	})
}

// State returns the current step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Instruction returns what Activate parsed.
func (f *Flow) Instruction() Instruction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.instr
}

func (f *Flow) navigate() {
	f.mu.Lock()
	f.state = StateNavigating
	target := f.instr.Redirect
	f.mu.Unlock()

	f.navigator.Navigate(target)
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
