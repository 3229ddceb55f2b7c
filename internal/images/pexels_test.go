package images

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*PexelsClient, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"photos":[{"src":{"large":"%s/photo.jpg","medium":""}}]}`, srv.URL)
	})
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("fakejpegbytes"))
	})

	client := NewPexelsClient("test-key")
	client.baseURL = srv.URL + "/v1"
	return client, srv
}

func TestFetchDataURI(t *testing.T) {
	client, _ := newTestClient(t)

	uri, err := client.FetchDataURI("mushrooms")
	require.NoError(t, err)
	want := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("fakejpegbytes"))
	assert.Equal(t, want, uri)
}

func TestFetchDataURIsWithoutKey(t *testing.T) {
	client := NewPexelsClient("")

	_, err := client.FetchDataURIs("mushrooms", 3)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchSearchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewPexelsClient("test-key")
	client.baseURL = srv.URL

	_, err := client.FetchDataURIs("mushrooms", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
