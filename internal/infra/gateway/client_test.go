//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/infra/gateway"
	"gst-lifecycle/internal/pkg/clock"
	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/shared"
	"gst-lifecycle/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var token = shared.Token{Value: "tok-123"}

type recorded struct {
	method string
	path   string
	auth   string
	gstin  string
	body   map[string]any
}

func newClient(t *testing.T, handler http.HandlerFunc) (*gateway.Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
			gstin:  r.Header.Get("Gstin"),
		}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		calls = append(calls, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Gateway
	cfg.BaseURL = srv.URL + "/"
	client, err := gateway.NewClient(cfg, clock.NewMockClock(builder.FixtureNow), nil)
	require.NoError(t, err)
	return client, &calls
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestClient_Authenticate(t *testing.T) {
	ctx := context.Background()
	creds := gateway.NewEnvCredentialsProvider(config.NewTestConfig().Gateway)

	t.Run("success: token with expiry", func(t *testing.T) {
		client, calls := newClient(t, respond(http.StatusOK, `{"status_code":1,"token":"abc","expires_in":3600}`))
		c, err := creds.Credentials(ctx)
		require.NoError(t, err)

		tok, err := client.Authenticate(ctx, c)

		require.NoError(t, err)
		assert.Equal(t, "abc", tok.Value)
		assert.Equal(t, builder.FixtureNow.Add(time.Hour), tok.ExpiresAt)
		require.Len(t, *calls, 1)
		assert.Equal(t, "/auth", (*calls)[0].path)
		assert.Equal(t, "test-user", (*calls)[0].body["username"])
		assert.Equal(t, "29AAACB1234C1Z5", (*calls)[0].gstin)
	})

	testCases := []struct {
		name       string
		handler    http.HandlerFunc
		authFailed bool
	}{
		{name: "error: unauthorized", handler: respond(http.StatusUnauthorized, `{}`), authFailed: true},
		{name: "error: portal refuses without token", handler: respond(http.StatusOK, `{"status_code":"0","description":"Invalid password"}`), authFailed: true},
		{name: "error: portal down", handler: respond(http.StatusBadGateway, `<html>bad gateway</html>`)},
		{name: "error: garbage body", handler: respond(http.StatusOK, `not json`)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newClient(t, tc.handler)

			_, err := client.Authenticate(ctx, shared.Credentials{Username: "u"})

			require.Error(t, err)
			assert.Equal(t, tc.authFailed, errs.Is(err, shared.ErrAuthFailed), "got %v", err)
			if !tc.authFailed {
				var gwErr *gateway.GatewayError
				assert.True(t, errors.As(err, &gwErr))
			}
		})
	}
}

func TestClient_Transitions(t *testing.T) {
	ctx := context.Background()
	ok := `{"status_code":"1","description":"Success","correlation_id":"corr-9"}`

	testCases := []struct {
		name     string
		invoke   func(*gateway.Client) (shared.GatewayResponse, error)
		wantPath string
		wantBody map[string]any
	}{
		{
			name: "accept",
			invoke: func(c *gateway.Client) (shared.GatewayResponse, error) {
				return c.AcceptDocument(ctx, "EWB001", token)
			},
			wantPath: "/documents/EWB001/accept",
			wantBody: map[string]any{},
		},
		{
			name: "reject",
			invoke: func(c *gateway.Client) (shared.GatewayResponse, error) {
				return c.RejectDocument(ctx, "EWB001", "Goods damaged in transit", token)
			},
			wantPath: "/documents/EWB001/reject",
			wantBody: map[string]any{"reason": "Goods damaged in transit"},
		},
		{
			name: "update vehicle",
			invoke: func(c *gateway.Client) (shared.GatewayResponse, error) {
				return c.UpdateVehicle(ctx, "EWB001", shared.VehiclePayload{
					VehicleNumber: "KA05MN6789",
					TransportMode: document.TransportRoad,
					DistanceKm:    0,
					FromPlace:     "Bengaluru",
					ReasonCode:    "2",
				}, token)
			},
			wantPath: "/documents/EWB001/vehicle",
			wantBody: map[string]any{
				"vehicle_number": "KA05MN6789",
				"transport_mode": "ROAD",
				"distance_km":    float64(0),
				"from_place":     "Bengaluru",
				"reason_code":    "2",
			},
		},
		{
			name: "cancel",
			invoke: func(c *gateway.Client) (shared.GatewayResponse, error) {
				return c.CancelDocument(ctx, document.KindEInvoice, "IRN0001", shared.CancelPayload{ReasonCode: "1"}, token)
			},
			wantPath: "/documents/IRN0001/cancel",
			wantBody: map[string]any{"kind": "E_INVOICE", "reason_code": "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, calls := newClient(t, respond(http.StatusOK, ok))

			resp, err := tc.invoke(client)

			require.NoError(t, err)
			assert.Equal(t, "1", resp.StatusCode)
			assert.Equal(t, "corr-9", resp.CorrelationID)
			require.Len(t, *calls, 1)
			assert.Equal(t, http.MethodPost, (*calls)[0].method)
			assert.Equal(t, tc.wantPath, (*calls)[0].path)
			assert.Equal(t, "Bearer tok-123", (*calls)[0].auth)
			assert.Equal(t, tc.wantBody, (*calls)[0].body)
		})
	}
}

func TestClient_ResponseNormalization(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection on 4xx is a response, not an error", func(t *testing.T) {
		client, _ := newClient(t, respond(http.StatusBadRequest, `{"status_code":"2","description":"Bill already accepted"}`))

		resp, err := client.AcceptDocument(ctx, "EWB001", token)

		require.NoError(t, err)
		assert.Equal(t, "2", resp.StatusCode)
		assert.Equal(t, "Bill already accepted", resp.Description)
	})

	t.Run("correlation id falls back to header", func(t *testing.T) {
		client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Correlation-ID", "hdr-1")
			_, _ = io.WriteString(w, `{"status_code":1}`)
		})

		resp, err := client.AcceptDocument(ctx, "EWB001", token)

		require.NoError(t, err)
		assert.Equal(t, "hdr-1", resp.CorrelationID)
	})

	t.Run("portal timestamp read as IST", func(t *testing.T) {
		client, _ := newClient(t, respond(http.StatusOK,
			`{"status_code":"1","document_number":"EWB777","ack_number":112233,"valid_until":"15/03/2025 11:59:00 PM"}`))

		resp, err := client.GenerateDocument(ctx, shared.GeneratePayload{Kind: document.KindEWayBill, Payload: builder.DefaultPayload()}, token)

		require.NoError(t, err)
		assert.Equal(t, "EWB777", resp.DocumentNumber)
		assert.Equal(t, "112233", resp.AckNumber)
		require.NotNil(t, resp.ValidUntil)
		assert.Equal(t, time.Date(2025, 3, 15, 18, 29, 0, 0, time.UTC), *resp.ValidUntil)
	})

	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: respond(http.StatusInternalServerError, `oops`)},
		{name: "html body", handler: respond(http.StatusOK, `<html></html>`)},
		{name: "missing status code", handler: respond(http.StatusOK, `{"description":"ok"}`)},
		{name: "bad timestamp", handler: respond(http.StatusOK, `{"status_code":"1","valid_until":"tomorrow"}`)},
	}
	for _, tc := range testCases {
		t.Run("malformed: "+tc.name, func(t *testing.T) {
			client, _ := newClient(t, tc.handler)

			_, err := client.AcceptDocument(ctx, "EWB001", token)

			var gwErr *gateway.GatewayError
			require.True(t, errors.As(err, &gwErr), "got %v", err)
			assert.Equal(t, "accept", gwErr.Op)
		})
	}
}

func TestClient_FetchDocument(t *testing.T) {
	ctx := context.Background()
	payload, err := json.Marshal(builder.DefaultPayload())
	require.NoError(t, err)

	client, calls := newClient(t, respond(http.StatusOK,
		`{"status_code":"1","valid_until":"2025-03-15T02:00:00Z","document":{"kind":"EWAY_BILL","payload":`+string(payload)+`}}`))

	fetched, err := client.FetchDocument(ctx, "EWB001", token)

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, "/documents/EWB001", (*calls)[0].path)
	assert.Equal(t, document.KindEWayBill, fetched.Kind)
	assert.Equal(t, builder.DefaultPayload(), fetched.Payload)
	require.NotNil(t, fetched.ValidUntil)
	assert.Equal(t, time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC), *fetched.ValidUntil)
}

func TestClient_DeadlineSurvivesWrapping(t *testing.T) {
	release := make(chan struct{})
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.AcceptDocument(ctx, "EWB001", token)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	cfg := config.NewTestConfig().Gateway
	cfg.BaseURL = "portal.local"

	_, err := gateway.NewClient(cfg, clock.NewRealClock(), nil)

	assert.Error(t, err)
}
