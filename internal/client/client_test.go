package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/stretchr/testify/assert"
)

// newTestClient starts a server with the given routes and returns a client
// pointed at it.
func newTestClient(t *testing.T, routes map[string]http.HandlerFunc) (*ServiceClient, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewServiceClient(Options{
		BaseURL:   server.URL,
		Endpoints: models.DefaultEndpoints(),
	}), server
}

// unreachableClient points at a server that has already been shut down.
func unreachableClient(t *testing.T) *ServiceClient {
	t.Helper()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	return NewServiceClient(Options{BaseURL: url})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}
