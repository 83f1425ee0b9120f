package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postalServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/01310100/json/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP","complemento":"de 612 a 1510 - lado par"}`))
	})
	mux.HandleFunc("/ws/99999999/json/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestPostalLookup(t *testing.T) {
	server := postalServer(t)
	client := NewPostalClient(server.URL, 2*time.Second)

	addr, err := client.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "Bela Vista", addr.Neighborhood)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
}

func TestPostalLookupUnknownCode(t *testing.T) {
	server := postalServer(t)
	client := NewPostalClient(server.URL, 2*time.Second)

	_, err := client.Lookup(context.Background(), "99999-999")
	assert.ErrorIs(t, err, ErrPostalNotFound)
}

func TestPostalLookupRejectsMalformedCode(t *testing.T) {
	client := NewPostalClient("http://127.0.0.1:1", time.Second)

	for _, code := range []string{"", "1234", "01310-10", "abcdefgh"} {
		_, err := client.Lookup(context.Background(), code)
		assert.ErrorIs(t, err, ErrPostalCodeInvalid, "code %q", code)
	}
}

func TestPostalLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewPostalClient(server.URL, 2*time.Second)
	_, err := client.Lookup(context.Background(), "01310100")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPostalNotFound)
}
