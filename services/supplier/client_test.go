package supplier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelhub/apperr"
	"travelhub/obs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc, auth Authenticator) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient("test-supplier", srv.URL, auth, 5*time.Second, obs.NewNopMetrics(), zap.NewNop())
}

func TestSignature_IsHexSHA256OfKeySecretTimestamp(t *testing.T) {
	// sha256("keysecret1700000000")
	sig := Signature("key", "secret", 1700000000)
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, Signature("key", "secret", 1700000000))
	assert.NotEqual(t, sig, Signature("key", "secret", 1700000001))
}

func TestClient_SignatureHeaders(t *testing.T) {
	fixed := time.Unix(1700000000, 0)
	var gotKey, gotSig string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Api-key")
		gotSig = r.Header.Get("X-Signature")
		w.Write([]byte(`{}`))
	}, SignatureAuth{APIKey: "key", Secret: "secret"})
	c.now = func() time.Time { return fixed }

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/ping", nil, nil, nil))
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, Signature("key", "secret", fixed.Unix()), gotSig)
}

func TestClient_BasicAuth(t *testing.T) {
	var user, pass string
	var ok bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
		w.Write([]byte(`{"status":"ok","data":null}`))
	}, BasicAuth{Username: "1234", Password: "s3cret"})

	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/x", nil, map[string]string{"a": "b"}, nil))
	require.True(t, ok)
	assert.Equal(t, "1234", user)
	assert.Equal(t, "s3cret", pass)
}

func TestClient_EncodesBodyAndDecodesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]int{"sum": in["a"] + in["b"]})
	}, nil)

	var out struct {
		Sum int `json:"sum"`
	}
	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/sum", nil, map[string]int{"a": 2, "b": 3}, &out))
	assert.Equal(t, 5, out.Sum)
}

func TestClient_Non2xxIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"AUTH","message":"invalid signature"}}`))
	}, nil)

	err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindUpstream, appErr.Kind)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "invalid signature")
}

func TestClient_NonOkEnvelopeIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error":"rate_not_found","data":null}`))
	}, nil)

	var env hotelEnvelope[interface{}]
	err := c.Do(context.Background(), http.MethodPost, "/x", nil, nil, &env)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindUpstream, appErr.Kind)
	assert.Equal(t, http.StatusOK, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "rate_not_found")
}

func TestClient_TransportErrorIsUpstreamError(t *testing.T) {
	c := NewClient("down", "http://127.0.0.1:1", nil, time.Second, obs.NewNopMetrics(), zap.NewNop())

	err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
}

func TestClient_DoesNotRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}, nil)

	_ = c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.Equal(t, 1, calls)
}
