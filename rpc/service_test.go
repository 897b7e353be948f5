package rpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stakeengine/config"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	svc := NewService(config.Default(), nil, nil)
	router := NewRouter(svc, RouterConfig{})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return svc, server
}

func postJSONT(t *testing.T, endpoint, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	resp, err := http.Post(endpoint+path, "application/json", reader)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHealthzReportsOK(t *testing.T) {
	_, server := newTestServer(t)
	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDelegateFundWithdrawRoundTrip(t *testing.T) {
	_, server := newTestServer(t)

	account := strings.Repeat("11", 20)
	destination := strings.Repeat("33", 20)
	voter := strings.Repeat("22", 32)

	_, registerResp := postJSONT(t, server.URL, "/voters", map[string]any{
		"voterPubkey": voter,
		"key":         account,
	})
	require.Equal(t, "0x"+voter, registerResp["voterPubkey"])

	resp, fundResp := postJSONT(t, server.URL, "/accounts/"+account+"/fund", map[string]any{"lamports": 100})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 100, fundResp["lamports"], 0)

	resp, delegateResp := postJSONT(t, server.URL, "/accounts/"+account+"/delegate", map[string]any{
		"voterPubkey": voter,
		"amount":      42,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "stake", delegateResp["kind"])
	require.InDelta(t, 42, delegateResp["amount"], 0)

	resp, secondDelegate := postJSONT(t, server.URL, "/accounts/"+account+"/delegate", map[string]any{
		"voterPubkey": voter,
		"amount":      1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, secondDelegate["error"], "invalid account data")

	resp, overWithdraw := postJSONT(t, server.URL, "/accounts/"+account+"/withdraw", map[string]any{
		"to":       destination,
		"lamports": 59,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, overWithdraw["error"], "insufficient funds")

	resp, okWithdraw := postJSONT(t, server.URL, "/accounts/"+account+"/withdraw", map[string]any{
		"to":       destination,
		"lamports": 58,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 42, okWithdraw["lamports"], 0)
}

func TestAuthMiddlewareRejectsMissingOrInvalidBearerToken(t *testing.T) {
	svc := NewService(config.Default(), nil, nil)
	router := NewRouter(svc, RouterConfig{Auth: AuthConfig{Enabled: true, HMACSecret: "test-secret", Issuer: "stakenode"}})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	account := strings.Repeat("44", 20)

	resp, body := postJSONT(t, server.URL, "/accounts/"+account+"/fund", map[string]any{"lamports": 1})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = body

	req, err := http.NewRequest(http.MethodPost, server.URL+"/accounts/"+account+"/fund", strings.NewReader(`{"lamports":1}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "stakenode",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req, err = http.NewRequest(http.MethodPost, server.URL+"/accounts/"+account+"/fund", strings.NewReader(`{"lamports":1}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signed)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdvanceEpochBuildsRetainedHistory(t *testing.T) {
	_, server := newTestServer(t)

	resp, entry := postJSONT(t, server.URL, "/epoch/advance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 0, entry["effective"], 0)

	resp, err := http.Get(server.URL + "/epoch/0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
