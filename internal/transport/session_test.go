package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	var seen string
	h := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionIDFromContext(r.Context())
	}))

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rpc", nil)
		req.Header.Set(SessionHeader, "sess1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, "sess1", seen)
		require.Equal(t, "sess1", rec.Header().Get(SessionHeader))
	})

	t.Run("mints id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rpc", nil))
		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get(SessionHeader))
	})
}

func TestSessionIDFromContext_Missing(t *testing.T) {
	_, ok := SessionIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.False(t, ok)
}
