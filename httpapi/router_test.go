package httpapi_test

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/samanthauoviawe/chatbot-web-interface/httpapi"
	"github.com/samanthauoviawe/chatbot-web-interface/widget"
)

func setupRouter() http.Handler {
	return httpapi.NewRouter(&httpapi.Config{
		Sender: widget.SenderFunc(nil),
	})
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body httpapi.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("unexpected body: %+v", body)
	}
	if strings.Contains(resp.Body.String(), "localhost:8000") {
		t.Error("health response leaks the chat endpoint")
	}
}

func TestNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	var body httpapi.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode body: %v", err)
	}
	if body.Code != http.StatusNotFound || body.Error != "Not Found" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}

	body := resp.Body.String()
	for _, want := range []string{"Welcome to the Chatbot!", `placeholder="Type your message"`, `id="panel"`, "hidden"} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if strings.Contains(body, `input.value = "";`) {
		t.Error("page clears the input locally instead of following server state")
	}
}

func TestPageCompressed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	if enc := resp.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", enc)
	}

	r, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("could not read gzip body: %v", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("could not read gzip body: %v", err)
	}
	if !strings.Contains(string(body), "Welcome to the Chatbot!") {
		t.Error("decompressed page missing welcome heading")
	}
}

func TestMount(t *testing.T) {
	h := httpapi.Mount("/chat/", setupRouter())

	tests := []struct {
		path     string
		code     int
		location string
	}{
		{"/chat", http.StatusMovedPermanently, "/chat/"},
		{"/chat?debug=1", http.StatusMovedPermanently, "/chat/?debug=1"},
		{"/chat/", http.StatusOK, ""},
		{"/chat/healthz", http.StatusOK, ""},
		{"/healthz", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		req := httptest.NewRequest(http.MethodGet, test.path, nil)
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)

		if resp.Code != test.code {
			t.Errorf("%s: expected %d, got %d", test.path, test.code, resp.Code)
			continue
		}
		if loc := resp.Header().Get("Location"); loc != test.location {
			t.Errorf("%s: expected Location %q, got %q", test.path, test.location, loc)
		}
	}
}

func TestMountWebSocket(t *testing.T) {
	server := httptest.NewServer(httpapi.Mount("/chat", setupRouter()))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/chat/ws", nil)
	if err != nil {
		t.Fatalf("could not dial prefixed WebSocket: %v", err)
	}
	defer conn.Close()

	var event httpapi.ServerEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("could not read first event: %v", err)
	}
	if event.Type != httpapi.EventState {
		t.Errorf("expected state event, got %q", event.Type)
	}
}

func TestMountEmptyPrefix(t *testing.T) {
	h := httpapi.Mount("", setupRouter())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.Code)
	}
}
