package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRefreshRouteAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "Bearer secret-key", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong token", "Bearer wrong-key", http.StatusUnauthorized, false},
		{"basic scheme", "Basic secret-key", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPortfolioService{}
			srv := NewServer("0", svc, &mockKlines{}, "secret-key")

			req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/refresh", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called := svc.refreshCalls > 0; called != tt.wantCalled {
				t.Errorf("refresh called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestRefreshRouteOpenWithoutKey(t *testing.T) {
	svc := &mockPortfolioService{}
	srv := NewServer("0", svc, &mockKlines{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/refresh", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if svc.refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", svc.refreshCalls)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	handler := withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(requestIDKey{}).(string); !ok {
			t.Error("request ID missing from context")
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if id := w.Header().Get(requestIDHeader); len(id) != 36 {
		t.Errorf("%s = %q, want a UUID", requestIDHeader, id)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	handler := withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if id := w.Header().Get(requestIDHeader); id != "abc-123" {
		t.Errorf("%s = %q, want abc-123", requestIDHeader, id)
	}
}
