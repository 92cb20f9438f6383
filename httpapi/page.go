package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	Title    string
	Subtitle string
	// initial render, before the WebSocket delivers state
	State *StateView
}

type pageHandler struct {
	logger *zap.Logger
}

func newPageHandler(logger *zap.Logger) *pageHandler {
	return &pageHandler{logger: logger}
}

//GET /
func (h *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, &pageData{
		Title:    "Chatbot",
		Subtitle: "Start interacting with the bot below.",
		State:    &StateView{Messages: []MessageView{}, SendLabel: "Send"},
	})
	if err != nil {
		h.logger.Error("Could not render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
