package httpapi

import "github.com/samanthauoviawe/chatbot-web-interface/widget"

// ClientEvent is the event format from browser to server
type ClientEvent struct {
	Type string `json:"type"`           // "input", "submit", or "toggle"
	Text string `json:"text,omitempty"` // sent with "input"
}

// ServerEvent is the event format from server to browser
type ServerEvent struct {
	Type  string     `json:"type"`            // "state", "scroll", or "error"
	State *StateView `json:"state,omitempty"` // sent with "state"
	Error string     `json:"error,omitempty"` // sent with "error"
}

// Event types
const (
	EventInput  = "input"
	EventSubmit = "submit"
	EventToggle = "toggle"

	EventState  = "state"
	EventScroll = "scroll" // sent after the state that changed the message list
	EventError  = "error"
)

// MessageView is a message as rendered in the panel
type MessageView struct {
	Text   string             `json:"text"`
	Type   widget.MessageType `json:"type"`
	Author string             `json:"author"`
}

// StateView is the widget state as the browser renders it
type StateView struct {
	Input         string        `json:"input"`
	Messages      []MessageView `json:"messages"`
	Loading       bool          `json:"loading"`
	Visible       bool          `json:"visible"`
	InputDisabled bool          `json:"input_disabled"`
	SendLabel     string        `json:"send_label"`
}

// NewStateView returns the view of s
func NewStateView(s widget.State) *StateView {
	msgs := make([]MessageView, len(s.Messages))
	for i, m := range s.Messages {
		msgs[i] = MessageView{Text: m.Text, Type: m.Type, Author: m.Author()}
	}

	return &StateView{
		Input:         s.Input,
		Messages:      msgs,
		Loading:       s.Loading,
		Visible:       s.Visible,
		InputDisabled: s.InputDisabled(),
		SendLabel:     s.SendLabel(),
	}
}
