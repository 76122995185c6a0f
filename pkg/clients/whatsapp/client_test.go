package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mamadbah2/factory/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.WhatsAppConfig{
		AccessToken:   "token",
		PhoneNumberID: "123",
		BaseURL:       srv.URL + "/",
		APIVersion:    "v20.0",
	})
}

func TestSendText(t *testing.T) {
	var got textMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v20.0/123/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	})

	id, err := c.SendText(context.Background(), "201000", strings.Repeat("x", maxBodyLength+10))
	if err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if id != "wamid.1" {
		t.Fatalf("id = %q", id)
	}
	if got.To != "201000" || got.Type != "text" || len(got.Text.Body) != maxBodyLength {
		t.Fatalf("payload = %+v (body %d)", got, len(got.Text.Body))
	}
}

func TestSendTextErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad number","code":131030}}`))
	})

	_, err := c.SendText(context.Background(), "1", "hi")
	if err == nil || !strings.Contains(err.Error(), "131030") {
		t.Fatalf("SendText error = %v", err)
	}
	if _, err := c.SendText(context.Background(), "", "hi"); err == nil {
		t.Fatalf("empty recipient accepted")
	}
}

func TestInboundMessageBody(t *testing.T) {
	var msg InboundMessage
	raw := `{"from":"1","type":"interactive","interactive":{"type":"button_reply","button_reply":{"id":"/stock","title":"Stock"}}}`
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Body() != "/stock" {
		t.Fatalf("Body = %q", msg.Body())
	}
}
