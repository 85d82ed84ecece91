package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/httpapi"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	clock := ports.ClockFunc(func() time.Time {
		return time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	})
	handler := httpapi.NewHandler(
		classify.NewDefaultRegistry(clock),
		&evaluate.Weighted{},
		prometheus.NewRegistry(),
		nil,
	)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestIdentifyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tree := `{
		"kind": "FrameLayout",
		"children": [
			{"kind": "TextView", "resource_id": "com.dd:id/order_value", "text": "$14.50"},
			{"kind": "TextView", "text": "Deliver by 5:45 PM"},
			{"kind": "Button", "text": "Decline"}
		]
	}`

	resp, err := http.Post(srv.URL+"/identify", "application/json", strings.NewReader(tree))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got struct {
		Screen string `json:"screen"`
		Offer  *struct {
			PayAmount *float64 `json:"pay_amount"`
		} `json:"offer"`
	}
	require.NoError(t, decodeBody(resp, &got))
	assert.Equal(t, "offer", got.Screen)
	require.NotNil(t, got.Offer)
	require.NotNil(t, got.Offer.PayAmount)
	assert.Equal(t, 14.50, *got.Offer.PayAmount)
}

func TestIdentifyEndpointBadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/identify", "application/json", strings.NewReader("{broken"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	offer := `{"pay_amount": 15, "distance_miles": 1, "minutes_to_complete": 10, "item_count": 2, "hash": "aaaa"}`
	resp, err := http.Post(srv.URL+"/evaluate", "application/json", strings.NewReader(offer))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v struct {
		Score  float64 `json:"score"`
		Action string  `json:"action"`
	}
	require.NoError(t, decodeBody(resp, &v))
	assert.Equal(t, "accept", v.Action)
	assert.Greater(t, v.Score, 70.0)
}

func decodeBody(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
