package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"iusearch/constant"
	"iusearch/gateway"
	"iusearch/repository/credential"
	"iusearch/utils/errors"
)

func TestClient_InjectsPersistedToken(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Set(ctx, constant.KeyAuthToken, "tok-abc"))

	var gotAuth, gotContentType, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, store)

	var out map[string]string
	require.NoError(t, client.PostJSON(ctx, "/ping", map[string]string{}, &out))

	require.Equal(t, "Bearer tok-abc", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, "yes", out["ok"])
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()

	var sawAuthHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, store)
	require.NoError(t, client.PostJSON(ctx, "/ping", map[string]string{}, nil))
	require.False(t, sawAuthHeader)
}

func TestClient_RejectionClearsSession(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Set(ctx, constant.KeyAuthToken, "stale"))
	require.NoError(t, store.Set(ctx, constant.KeyUserInfo, `{"id":7}`))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, store)
	err := client.PostJSON(ctx, "/search/people", map[string]string{}, nil)

	require.Error(t, err)
	require.True(t, errors.IsType(err, constant.ErrUnauthorized))

	_, ok, gerr := store.Get(ctx, constant.KeyAuthToken)
	require.NoError(t, gerr)
	require.False(t, ok)
	_, ok, gerr = store.Get(ctx, constant.KeyUserInfo)
	require.NoError(t, gerr)
	require.False(t, ok)
}

// A second request that captured a stale token fails the same way and
// re-triggers an idempotent clear.
func TestClient_RepeatedRejectionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Set(ctx, constant.KeyAuthToken, "stale"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, store)
	for i := 0; i < 2; i++ {
		err := client.PostJSON(ctx, "/x", map[string]string{}, nil)
		require.True(t, errors.IsType(err, constant.ErrUnauthorized))
	}
}

func TestClient_TransportFailureNormalized(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := gateway.NewClient(server.URL, credential.NewMemoryStore())
	err := client.PostJSON(ctx, "/ping", map[string]string{}, nil)

	require.Error(t, err)
	require.True(t, errors.IsType(err, constant.ErrTransport))
	require.Equal(t, "Network error. Please check your connection.", err.Error())
}

func TestClient_BackendMessagePreferredOnFailure(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "index rebuilding, try later"})
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, credential.NewMemoryStore())
	err := client.PostJSON(ctx, "/search/people", map[string]string{}, nil)

	require.Error(t, err)
	require.Equal(t, "index rebuilding, try later", err.Error())
}

func TestClient_GetJSONQueryString(t *testing.T) {
	ctx := context.Background()

	var gotPath, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.URL.Query().Get("type")
		w.Write([]byte(`{"id":3}`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, credential.NewMemoryStore())

	var out map[string]any
	query := url.Values{}
	query.Set("type", "people")
	require.NoError(t, client.GetJSON(ctx, "/records/3", query, &out))

	require.Equal(t, "/records/3", gotPath)
	require.Equal(t, "people", gotType)
}

type failingDoer struct{ err error }

func (d failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, d.err
}

// The Doer seam lets the pipeline run against a fake transport; a timeout
// surfaces exactly like any other transport failure.
func TestClient_FakeTransportTimeout(t *testing.T) {
	ctx := context.Background()
	client := gateway.NewClient("http://backend", credential.NewMemoryStore(),
		gateway.WithDoer(failingDoer{err: context.DeadlineExceeded}))

	err := client.PostJSON(ctx, "/ping", map[string]string{}, nil)
	require.True(t, errors.IsType(err, constant.ErrTransport))
	require.Equal(t, "Network error. Please check your connection.", err.Error())
}

func TestClient_MalformedBodyIsInvalidResponse(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, credential.NewMemoryStore())

	var out map[string]any
	err := client.PostJSON(ctx, "/ping", map[string]string{}, &out)
	require.True(t, errors.IsType(err, constant.ErrInvalidResponse))
}
