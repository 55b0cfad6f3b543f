package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantAllow   string
		wantStatus  int
		wantReached bool
	}{
		{"listed origin", []string{"http://localhost:5500"}, http.MethodPost, "http://localhost:5500", "http://localhost:5500", http.StatusOK, true},
		{"trailing slash in config", []string{"https://audyt.example.com/"}, http.MethodPost, "https://audyt.example.com", "https://audyt.example.com", http.StatusOK, true},
		{"unlisted origin gets no header", []string{"http://localhost:5500"}, http.MethodPost, "https://evil.example", "", http.StatusOK, true},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example", "*", http.StatusOK, true},
		{"preflight answered here", []string{"http://localhost:5500"}, http.MethodOptions, "http://localhost:5500", "http://localhost:5500", http.StatusOK, false},
		{"preflight from unlisted origin", []string{"http://localhost:5500"}, http.MethodOptions, "https://evil.example", "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			h := CORS(tt.origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			}))

			req := httptest.NewRequest(tt.method, "/api/analyze", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
			assert.Equal(t, tt.wantReached, reached)
		})
	}
}
