package chatbot_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samanthauoviawe/chatbot-web-interface/chatapi"
	"github.com/samanthauoviawe/chatbot-web-interface/chatbot"
)

type failingModel struct{}

func (failingModel) Reply(ctx context.Context, text string) (string, error) {
	return "", errors.New("model offline")
}

func setupRouter(model chatbot.Model) http.Handler {
	return chatbot.NewRouter(chatbot.NewHandler(model, nil), []string{"http://localhost:3000"})
}

func postChat(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestChatEcho(t *testing.T) {
	payload, _ := json.Marshal(chatapi.Request{Text: "hello"})
	resp := postChat(setupRouter(chatbot.EchoModel{}), string(payload))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body chatapi.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if body.Response != "hello" {
		t.Errorf("expected hello, got %q", body.Response)
	}
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name  string
		model chatbot.Model
		body  string
		code  int
	}{
		{"invalid json", chatbot.EchoModel{}, `{"text":`, http.StatusBadRequest},
		{"empty text", chatbot.EchoModel{}, `{"text":"   "}`, http.StatusBadRequest},
		{"missing text", chatbot.EchoModel{}, `{}`, http.StatusBadRequest},
		{"model failure", failingModel{}, `{"text":"hello"}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postChat(setupRouter(tt.model), tt.body)
			if resp.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, resp.Code)
			}

			var body chatbot.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("could not decode error: %v", err)
			}
			if body.Code != tt.code || body.Error == "" {
				t.Errorf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	resp := httptest.NewRecorder()
	setupRouter(chatbot.EchoModel{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestChatCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp := httptest.NewRecorder()
	setupRouter(chatbot.EchoModel{}).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
}

func TestAIClientReply(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("could not decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"tinyllama",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"hi there"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := chatbot.NewAIClient(server.URL+"/v1/", "test-key", "tinyllama", 100)
	reply, err := client.Reply(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("expected hi there, got %q", reply)
	}

	if got.Model != "tinyllama" || got.MaxTokens != 100 {
		t.Errorf("unexpected request: model=%q max_tokens=%d", got.Model, got.MaxTokens)
	}
	if len(got.Messages) != 2 || got.Messages[1].Role != "user" || got.Messages[1].Content != "hello" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestAIClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := chatbot.NewAIClient(server.URL, "k", "m", 0).Reply(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestAIClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	router := setupRouter(chatbot.NewAIClient(server.URL, "k", "m", 0))
	resp := postChat(router, `{"text":"hello"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("AI request failed")) {
		t.Errorf("unexpected body %s", resp.Body.String())
	}
}
