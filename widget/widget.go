// Package widget implements the chat widget: an observable UI state holding
// the input text, message log, loading flag and panel visibility, and the
// submit flow that sends one request to the chat endpoint at a time.
package widget

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Sender delivers text to the chat endpoint and returns the reply
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// SenderFunc adapts a function to a Sender
type SenderFunc func(ctx context.Context, text string) (string, error)

// Send calls f
func (f SenderFunc) Send(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Anchor is the view element at the end of the message list
type Anchor interface {
	ScrollIntoView()
}

// AnchorFunc adapts a function to an Anchor
type AnchorFunc func()

// ScrollIntoView calls f
func (f AnchorFunc) ScrollIntoView() {
	f()
}

// Option configures a ChatWidget
type Option func(*ChatWidget)

// WithLogger sets the logger used for request traces
func WithLogger(logger *zap.Logger) Option {
	return func(w *ChatWidget) {
		w.logger = logger
	}
}

// WithAnchor scrolls anchor into view after every message list change
func WithAnchor(anchor Anchor) Option {
	return func(w *ChatWidget) {
		w.anchor = anchor
	}
}

// WithVisible sets the initial panel visibility. Panels start closed.
func WithVisible(visible bool) Option {
	return func(w *ChatWidget) {
		w.visible = visible
	}
}

// ChatWidget is a mounted chat widget
type ChatWidget struct {
	store   *Store
	sender  Sender
	logger  *zap.Logger
	anchor  Anchor
	visible bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New mounts a ChatWidget that sends requests through sender
func New(sender Sender, opts ...Option) *ChatWidget {
	w := &ChatWidget{
		sender: sender,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.store = NewStore(State{Messages: []Message{}, Visible: w.visible})

	if w.anchor != nil {
		w.store.Effect(MessagesChanged, func(State) {
			w.anchor.ScrollIntoView()
		})
	}

	return w
}

// State returns the current state
func (w *ChatWidget) State() State {
	return w.store.Get()
}

// Subscribe calls l after every state change until the returned function is
// called or the widget is unmounted. l must not call back into the widget's
// mutating methods.
func (w *ChatWidget) Subscribe(l Listener) func() {
	return w.store.Subscribe(l)
}

// SetInput replaces the input text. It is ignored while a request is in flight.
func (w *ChatWidget) SetInput(text string) {
	w.store.Update(func(s *State) bool {
		if s.InputDisabled() || s.Input == text {
			return false
		}
		s.Input = text
		return true
	})
}

// Submit sends the current input. Blank input, or input submitted while a
// request is in flight, is ignored. Otherwise the input is appended as a user
// message, cleared, and a request is started in the background; its reply
// (or ErrorText) is appended as a bot message when it completes. Submit
// reports whether a request was started.
func (w *ChatWidget) Submit() bool {
	var text string
	started := w.store.Update(func(s *State) bool {
		if s.Loading || strings.TrimSpace(s.Input) == "" {
			return false
		}

		text = s.Input
		s.Messages = append(s.Messages, Message{Text: text, Type: TypeUser})
		s.Input = ""
		s.Loading = true
		w.wg.Add(1)
		return true
	})

	if started {
		go w.request(text)
	}
	return started
}

func (w *ChatWidget) request(text string) {
	defer w.wg.Done()

	reply, err := w.sender.Send(w.ctx, text)
	if w.ctx.Err() != nil {
		w.logger.Debug("Widget unmounted, discarding reply", zap.Error(w.ctx.Err()))
		return
	}

	msg := Message{Text: reply, Type: TypeBot}
	if err != nil {
		w.logger.Warn("Error fetching chatbot response", zap.Error(err))
		msg.Text = ErrorText
	}

	w.store.Update(func(s *State) bool {
		s.Messages = append(s.Messages, msg)
		s.Loading = false
		return true
	})
}

// Toggle flips panel visibility
func (w *ChatWidget) Toggle() {
	w.store.Update(func(s *State) bool {
		s.Visible = !s.Visible
		return true
	})
}

// Wait blocks until no request is in flight
func (w *ChatWidget) Wait() {
	w.wg.Wait()
}

// Unmount ends the widget's lifetime: an in-flight request is cancelled and
// its result discarded, listeners are dropped, and further operations are
// no-ops. It must not be called from a listener.
func (w *ChatWidget) Unmount() {
	w.cancel()
	w.store.Close()
}
