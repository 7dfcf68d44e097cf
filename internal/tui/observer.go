package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/service"
)

// SessionObserver adapts service.Session change notifications to a channel
// for Bubble Tea.
type SessionObserver struct {
	ch   chan SessionChangedMsg
	done chan struct{}

	mu          sync.Mutex
	unsubscribe func()
	closed      bool
}

// NewSessionObserver creates a new channel-based observer.
func NewSessionObserver() *SessionObserver {
	return &SessionObserver{
		ch:   make(chan SessionChangedMsg, 8),
		done: make(chan struct{}),
	}
}

// Attach subscribes to session. Only the first call has an effect.
func (o *SessionObserver) Attach(session *service.Session) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.unsubscribe != nil || o.closed || session == nil {
		return
	}
	o.unsubscribe = session.Subscribe(o.OnChange)
}

// OnChange sends the change to the channel (non-blocking if full).
func (o *SessionObserver) OnChange(user domain.User, ok bool) {
	select {
	case o.ch <- SessionChangedMsg{User: user, LoggedIn: ok}:
	default: // Non-blocking if channel full
	}
}

// Listen returns a command that waits for the next session change.
// It yields nil once the observer is closed.
func (o *SessionObserver) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-o.ch:
			return msg
		case <-o.done:
			return nil
		}
	}
}

// Close unsubscribes from the session and releases any waiting Listen.
func (o *SessionObserver) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
	close(o.done)
}
