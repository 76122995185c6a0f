package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/factory/internal/ledger"
	"github.com/mamadbah2/factory/internal/repository/blob"
	"github.com/mamadbah2/factory/internal/server/handlers"
	"github.com/mamadbah2/factory/internal/service/factory"
	"github.com/mamadbah2/factory/internal/service/reporting"
	"github.com/mamadbah2/factory/internal/service/whatsapp"
	"github.com/mamadbah2/factory/internal/store"
	client "github.com/mamadbah2/factory/pkg/clients/whatsapp"
)

func newEngineHandlers(t *testing.T) Handlers {
	t.Helper()
	st := store.New(blob.NewMemory(), nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	svc := factory.NewService(st, ledger.New(ledger.PolicyReject, nil), nil)
	reports := reporting.NewService(st, nil, time.UTC, nil)
	return Handlers{
		Factory: handlers.NewFactoryHandler(svc, nil),
		Reports: handlers.NewReportsHandler(reports, nil),
	}
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	return New(newEngineHandlers(t), nil)
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	out := map[string]any{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func mustStatus(t *testing.T, got, want int, body map[string]any) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d, body %v", got, want, body)
	}
}

func TestProductionFlowOverHTTP(t *testing.T) {
	engine := newEngine(t)

	code, model := do(t, engine, http.MethodPost, "/api/v1/models", `{"name":"Polo","code":"P-1"}`)
	mustStatus(t, code, http.StatusCreated, model)
	modelID := model["id"].(string)

	code, producer := do(t, engine, http.MethodPost, "/api/v1/accounts/producers", `{"name":"Knitter"}`)
	mustStatus(t, code, http.StatusCreated, producer)
	producerID := producer["id"].(string)

	code, body := do(t, engine, http.MethodPost, "/api/v1/stocks/receipts", `{"type":"DOUGH","size":24,"color":"white","quantity":10}`)
	mustStatus(t, code, http.StatusCreated, body)

	work := func(raw int) string {
		return `{"customerId":"` + producerID + `","machineName":"K1","entries":[{"raw":{"type":"DOUGH","size":24,"color":"white","quantity":` +
			strconv.Itoa(raw) + `},"produced":{"modelId":"` + modelID + `","quantity":20,"price":2.5}}]}`
	}

	code, body = do(t, engine, http.MethodPost, "/api/v1/machine-works", work(4))
	mustStatus(t, code, http.StatusCreated, body)

	code, body = do(t, engine, http.MethodPost, "/api/v1/machine-works", work(7))
	mustStatus(t, code, http.StatusConflict, body)
	if body["error"] != "insufficient_stock" || body["shortfall"] != float64(1) || body["kind"] != "raw" {
		t.Fatalf("unexpected conflict body %v", body)
	}

	code, body = do(t, engine, http.MethodGet, "/api/v1/accounts/producers/"+producerID, "")
	mustStatus(t, code, http.StatusOK, body)
	if body["balance"] != float64(50) {
		t.Fatalf("producer balance = %v, want 50", body["balance"])
	}

	code, body = do(t, engine, http.MethodGet, "/api/v1/reports/audit", "")
	mustStatus(t, code, http.StatusOK, body)
	if body["ok"] != true {
		t.Fatalf("audit = %v", body)
	}

	code, body = do(t, engine, http.MethodDelete, "/api/v1/models/"+modelID, "")
	mustStatus(t, code, http.StatusBadRequest, body)
}

func TestErrorMapping(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown machine work", http.MethodGet, "/api/v1/machine-works/nope", "", http.StatusNotFound},
		{"unknown role", http.MethodGet, "/api/v1/accounts/suppliers", "", http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/v1/models", `{"name":`, http.StatusBadRequest},
		{"missing required field", http.MethodPost, "/api/v1/accounts/customers", `{"phone":"1"}`, http.StatusBadRequest},
		{"unknown material", http.MethodPost, "/api/v1/stocks/receipts", `{"type":"wool","size":24,"color":"red","quantity":1}`, http.StatusBadRequest},
		{"invoice for unknown customer", http.MethodPost, "/api/v1/customers/nope/invoices", `{"items":[]}`, http.StatusNotFound},
		{"export disabled", http.MethodPost, "/api/v1/reports/export", "", http.StatusServiceUnavailable},
		{"health", http.MethodGet, "/healthz", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, engine, tc.method, tc.path, tc.body)
			mustStatus(t, code, tc.want, body)
		})
	}
}

type fakeMessaging struct {
	handled int
	sendErr error
}

func (f *fakeMessaging) VerifyWebhookToken(mode, token, challenge string) (string, error) {
	if mode != "subscribe" || token != "secret" {
		return "", errors.New("token mismatch")
	}
	return challenge, nil
}

func (f *fakeMessaging) HandleWebhook(context.Context, client.WebhookPayload) error {
	f.handled++
	return errors.New("send failed")
}

func (f *fakeMessaging) SendSummary(context.Context) error { return f.sendErr }

func TestWebhookRoutes(t *testing.T) {
	messaging := &fakeMessaging{sendErr: whatsapp.ErrNoRecipient}
	h := newEngineHandlers(t)
	h.Webhook = handlers.NewWebhookHandler(messaging, nil)
	engine := New(h, nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=42", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "42" {
		t.Fatalf("verify = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bad token = %d", rec.Code)
	}

	code, body := do(t, engine, http.MethodPost, "/webhook", `{"object":"whatsapp_business_account","entry":[]}`)
	mustStatus(t, code, http.StatusOK, body)
	if messaging.handled != 1 {
		t.Fatalf("webhook handled %d times", messaging.handled)
	}

	code, body = do(t, engine, http.MethodPost, "/api/v1/reports/summary/send", "")
	mustStatus(t, code, http.StatusServiceUnavailable, body)
}
