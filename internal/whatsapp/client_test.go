package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotebot/platform/config"
	"quotebot/platform/logger"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		MetaAccessToken: "token-123",
		PhoneNumberID:   "5550001111",
		GraphAPIBaseURL: baseURL,
	}
}

func TestSendReplyPostsTextMessage(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload textPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.New("development"))
	if client == nil {
		t.Fatal("expected client to be constructed")
	}

	if err := client.SendReply(context.Background(), "+919876543210", "Success!"); err != nil {
		t.Fatalf("SendReply: %v", err)
	}

	if gotPath != "/5550001111/messages" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPayload.MessagingProduct != "whatsapp" || gotPayload.Type != "text" {
		t.Fatalf("unexpected payload envelope: %+v", gotPayload)
	}
	if gotPayload.To != "919876543210" {
		t.Fatalf("expected normalized recipient without plus, got %q", gotPayload.To)
	}
	if gotPayload.Text.Body != "Success!" {
		t.Fatalf("unexpected message body %q", gotPayload.Text.Body)
	}
}

func TestSendReplyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.New("development"))
	if err := client.SendReply(context.Background(), "919876543210", "hello"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestNewClientWithoutCredentials(t *testing.T) {
	cfg := &config.Config{GraphAPIBaseURL: "https://graph.facebook.com/v19.0"}
	if NewClient(cfg, logger.New("development")) != nil {
		t.Fatal("expected nil client when credentials are missing")
	}
}

func TestNilClientSendReplyIsNoop(t *testing.T) {
	var client *Client
	if err := client.SendReply(context.Background(), "919876543210", "hello"); err != nil {
		t.Fatalf("nil client SendReply should be a no-op, got %v", err)
	}
}
