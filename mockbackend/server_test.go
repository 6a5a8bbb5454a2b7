package mockbackend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"iusearch/application/auth"
	"iusearch/application/search"
	"iusearch/constant"
	"iusearch/gateway"
	"iusearch/mockbackend"
	"iusearch/repository/credential"
)

func newStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(mockbackend.NewHandler("test-secret"))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLogin(t *testing.T) {
	server := newStub(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "success",
			body:       map[string]string{"username": "investigator", "password": "fielddesk"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       map[string]string{"username": "investigator", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			body:       map[string]string{"username": "ghost", "password": "x"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       map[string]string{"username": "investigator"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/api/auth/login", tt.body, "")
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				var body struct {
					Token string         `json:"token"`
					User  map[string]any `json:"user"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				require.NotEmpty(t, body.Token)
				require.Equal(t, "A. Marlowe", body.User["name"])
			}
		})
	}
}

func TestSearchRequiresToken(t *testing.T) {
	server := newStub(t)

	resp := postJSON(t, server.URL+"/api/search/people", map[string]string{
		"query": "John", "searchType": "name",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/search/people", map[string]string{
		"query": "John", "searchType": "name",
	}, "garbage-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Drives the stub through the real client stack: login, authorized search,
// detail fetch, and the session teardown a rejection causes.
func TestEndToEndClientFlow(t *testing.T) {
	ctx := context.Background()
	server := newStub(t)

	store := credential.NewMemoryStore()
	gw := gateway.NewClient(server.URL+"/api", store)
	authApp := auth.NewAuthApp(store, gw)
	searchApp := search.NewSearchApp(gw)

	// Unauthenticated search is rejected and the envelope hides the raw error.
	result := searchApp.SearchPeople(ctx, "John", constant.SearchTypeName)
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)

	login := authApp.Login(ctx, "investigator", "fielddesk")
	require.True(t, login.Success)
	require.True(t, authApp.IsAuthenticated(ctx))

	result = searchApp.SearchPeople(ctx, "John", constant.SearchTypeName)
	require.True(t, result.Success)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "contacts", result.Data[0].TableName())

	id, ok := result.Data[0].Identifier()
	require.True(t, ok)
	detail := searchApp.RecordDetails(ctx, id, "people")
	require.True(t, detail.Success)
	name, _ := detail.Data.Get("name")
	require.Equal(t, "John Reyes", name)

	vehicles := searchApp.SearchVehicles(ctx, "KJD")
	require.True(t, vehicles.Success)
	require.Equal(t, 1, vehicles.Total)

	// Corrupt the stored token: the next call is rejected and the gateway
	// clears the session as a side effect.
	require.NoError(t, store.Set(ctx, constant.KeyAuthToken, "expired-token"))
	result = searchApp.SearchPeople(ctx, "John", constant.SearchTypeName)
	require.False(t, result.Success)
	require.False(t, authApp.IsAuthenticated(ctx))
}

func TestRecordDetails(t *testing.T) {
	server := newStub(t)

	login := postJSON(t, server.URL+"/api/auth/login", map[string]string{
		"username": "analyst", "password": "deskfield",
	}, "")
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(login.Body).Decode(&body))

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/records/101?type=vehicles", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	require.Equal(t, "KJD-4821", rec["plate"])

	req, err = http.NewRequest(http.MethodGet, server.URL+"/api/records/999?type=vehicles", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	missing, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}
