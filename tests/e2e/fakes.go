//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeLink is one payment link as the provider would report it.
type FakeLink struct {
	Amount   int64
	Status   string
	Passcode string
	Sender   string
}

// FakeProvider serves the subset of the payment provider API the client uses.
type FakeProvider struct {
	server *httptest.Server

	mu      sync.Mutex
	access  string
	refresh string
	links   map[string]*FakeLink
	claims  int
}

func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()
	p := &FakeProvider{}
	p.Reset()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /me", p.me)
	mux.HandleFunc("POST /oauth/refresh", p.oauthRefresh)
	mux.HandleFunc("GET /links/{id}", p.getLink)
	mux.HandleFunc("POST /links/{id}/receive", p.receive)
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func (p *FakeProvider) URL() string { return p.server.URL }

func (p *FakeProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.access = "provider-access"
	p.refresh = "provider-refresh"
	p.links = map[string]*FakeLink{}
	p.claims = 0
}

// Tokens returns the pair the provider currently accepts.
func (p *FakeProvider) Tokens() (access, refresh string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.access, p.refresh
}

// RotateAccess invalidates the current access token.
func (p *FakeProvider) RotateAccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.access = "rotated-" + p.access
}

func (p *FakeProvider) AddLink(id string, l FakeLink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l.Status == "" {
		l.Status = "PENDING"
	}
	p.links[id] = &l
}

func (p *FakeProvider) Claims() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.claims
}

func (p *FakeProvider) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+p.access
}

func (p *FakeProvider) me(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (p *FakeProvider) oauthRefresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	p.mu.Lock()
	defer p.mu.Unlock()
	if in.RefreshToken != p.refresh {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	p.access = strings.TrimPrefix(p.access, "rotated-") + "-refreshed"
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": p.access, "refreshToken": p.refresh})
}

func (p *FakeProvider) getLink(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	l, ok := p.links[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"header": map[string]any{"resultCode": "S0000"},
		"payload": map[string]any{
			"sender":         map[string]any{"displayName": l.Sender, "externalId": "ext-" + l.Sender},
			"pendingP2PInfo": map[string]any{"amount": l.Amount},
			"message":        map[string]any{"data": map[string]any{"status": l.Status}},
		},
	})
}

func (p *FakeProvider) receive(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Passcode string `json:"passcode"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	l, ok := p.links[r.PathValue("id")]
	switch {
	case !ok:
		w.WriteHeader(http.StatusNotFound)
	case l.Status == "COMPLETED":
		w.WriteHeader(http.StatusConflict)
	case l.Passcode != in.Passcode:
		w.WriteHeader(http.StatusBadRequest)
	default:
		l.Status = "COMPLETED"
		p.claims++
		w.WriteHeader(http.StatusOK)
	}
}

// FakeGateway records everything posted to the chat gateway.
type FakeGateway struct {
	server *httptest.Server

	mu         sync.Mutex
	failing    bool
	deliveries []map[string]any
	roles      []map[string]any
	logs       []map[string]any
}

func NewFakeGateway(t *testing.T) *FakeGateway {
	t.Helper()
	g := &FakeGateway{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /deliveries", g.record(func() *[]map[string]any { return &g.deliveries }))
	mux.HandleFunc("POST /roles", g.record(func() *[]map[string]any { return &g.roles }))
	mux.HandleFunc("POST /purchase-logs", g.record(func() *[]map[string]any { return &g.logs }))
	g.server = httptest.NewServer(mux)
	t.Cleanup(g.server.Close)
	return g
}

func (g *FakeGateway) URL() string { return g.server.URL }

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failing = false
	g.deliveries, g.roles, g.logs = nil, nil, nil
}

// FailDeliveries makes every delivery return 503 until Reset.
func (g *FakeGateway) FailDeliveries() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failing = true
}

func (g *FakeGateway) Deliveries() []map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]any(nil), g.deliveries...)
}

func (g *FakeGateway) Roles() []map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]any(nil), g.roles...)
}

func (g *FakeGateway) Logs() []map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]any(nil), g.logs...)
}

func (g *FakeGateway) record(into func() *[]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.failing && r.URL.Path == "/deliveries" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		list := into()
		*list = append(*list, body)
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
