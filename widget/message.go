package widget

// MessageType tags who a Message came from
type MessageType string

// Message types
const (
	TypeUser MessageType = "user"
	TypeBot  MessageType = "bot"
)

// ErrorText is shown as a bot message when a request fails for any reason
const ErrorText = "Error: Could not reach the server."

// Message is one chat-log entry
type Message struct {
	Text string      `json:"text"`
	Type MessageType `json:"type"`
}

// Author returns the label shown next to the message
func (m Message) Author() string {
	if m.Type == TypeUser {
		return "You"
	}
	return "AI"
}
