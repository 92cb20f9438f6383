package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samanthauoviawe/chatbot-web-interface/widget"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// createUpgrader creates a WebSocket upgrader that accepts same-host pages,
// the given allowed origins, and clients that send no Origin
func createUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowedMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowedMap[origin] = true
	}

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedMap[origin] {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		},
	}
}

// ViewHandler mounts one widget per WebSocket connection. The widget lives
// as long as the page view: it is unmounted when the connection closes.
type ViewHandler struct {
	sender   widget.Sender
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(sender widget.Sender, allowedOrigins []string, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		sender:   sender,
		upgrader: createUpgrader(allowedOrigins),
		logger:   logger,
	}
}

// ServeHTTP handles the WebSocket upgrade and runs the view until the
// browser disconnects
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	v := newView(conn, h.sender, h.logger.With(zap.String("view", uuid.NewString())))
	v.run()
}

type view struct {
	conn   *websocket.Conn
	widget *widget.ChatWidget
	logger *zap.Logger

	dirty  chan struct{}
	scroll chan struct{}
	events chan ServerEvent
	done   chan struct{}
}

func newView(conn *websocket.Conn, sender widget.Sender, logger *zap.Logger) *view {
	v := &view{
		conn:   conn,
		logger: logger,
		dirty:  make(chan struct{}, 1),
		scroll: make(chan struct{}, 1),
		events: make(chan ServerEvent, 8),
		done:   make(chan struct{}),
	}

	v.widget = widget.New(sender,
		widget.WithLogger(logger),
		widget.WithAnchor(widget.AnchorFunc(func() { signal(v.scroll) })),
	)
	v.widget.Subscribe(func(prev, next widget.State) { signal(v.dirty) })

	return v
}

// signal marks ch pending without blocking. Every write sends the latest
// state, so pending signals coalesce.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (v *view) run() {
	v.logger.Debug("View mounted")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		v.writeLoop()
	}()

	signal(v.dirty)
	v.readLoop()

	v.widget.Unmount()
	close(v.done)
	<-writerDone
	v.conn.Close()

	v.logger.Debug("View unmounted")
}

func (v *view) readLoop() {
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				v.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}

		var ev ClientEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			v.sendError("Failed to read event")
			continue
		}

		switch ev.Type {
		case EventInput:
			v.widget.SetInput(ev.Text)
		case EventSubmit:
			v.widget.Submit()
		case EventToggle:
			v.widget.Toggle()
		default:
			v.sendError("Unknown event type: " + ev.Type)
		}
	}
}

func (v *view) sendError(msg string) {
	select {
	case v.events <- ServerEvent{Type: EventError, Error: msg}:
	default:
		v.logger.Warn("Dropping error event", zap.String("error", msg))
	}
}

// writeLoop is the connection's only writer
func (v *view) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		var err error
		select {
		case <-v.done:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-v.dirty:
			err = v.writeState()
		case <-v.scroll:
			// the view must reflect the new messages before it scrolls
			select {
			case <-v.dirty:
			default:
			}
			if err = v.writeState(); err == nil {
				err = v.write(ServerEvent{Type: EventScroll})
			}
		case ev := <-v.events:
			err = v.write(ev)
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = v.conn.WriteMessage(websocket.PingMessage, nil)
		}

		if err != nil {
			v.logger.Warn("WebSocket write failed", zap.Error(err))
			// unblocks readLoop
			v.conn.Close()
			<-v.done
			return
		}
	}
}

func (v *view) writeState() error {
	return v.write(ServerEvent{Type: EventState, State: NewStateView(v.widget.State())})
}

func (v *view) write(ev ServerEvent) error {
	v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return v.conn.WriteJSON(ev)
}
