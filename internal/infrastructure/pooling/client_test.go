package pooling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/config"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
)

func strptr(s string) *string { return &s }

func testClient(baseURL string) *Client {
	cfg := config.PoolingConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}
	logCfg := logging.DefaultConfig("test")
	logCfg.Level = logging.LevelError
	return NewClient(cfg, logging.New(logCfg), nil)
}

func TestMessageKeyForStatus(t *testing.T) {
	tests := []struct {
		status int
		key    string
	}{
		{http.StatusUnauthorized, "poolingApiUnauthorized"},
		{http.StatusForbidden, "poolingApiForbidden"},
		{http.StatusNotFound, "poolingApiNotFound"},
		{http.StatusInternalServerError, "poolingApiInternalServerError"},
		{http.StatusBadGateway, "poolingApiInternalServerError"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.key, MessageKeyForStatus(tt.status))
	}
}

func TestBookSlot(t *testing.T) {
	var gotPayload slotPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/slots", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(SlotDTO{ID: "slot-42"})
	}))
	defer server.Close()

	shipping := &domain.Shipping{ID: "s1", ShippingNumber: "SH-001", CarrierID: strptr("c1")}
	orders := []*domain.Order{{ID: "o1", OrderNumber: "ORD-1"}}

	slotID, result := testClient(server.URL).BookSlot(context.Background(), shipping, orders)

	require.False(t, result.IsError)
	assert.Equal(t, "slot-42", slotID)
	assert.Equal(t, "s1", gotPayload.ShippingID)
	assert.Equal(t, []string{"ORD-1"}, gotPayload.OrderNumbers)
}

func TestBookSlotRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, result := testClient(server.URL).BookSlot(context.Background(), &domain.Shipping{ID: "s1"}, nil)

	require.True(t, result.IsError)
	assert.Equal(t, "poolingApiForbidden", result.Message)
}

func TestUpdateSlot(t *testing.T) {
	t.Run("Requires a booked slot", func(t *testing.T) {
		result := testClient("http://unused").UpdateSlot(context.Background(), &domain.Shipping{ID: "s1"}, nil)

		require.True(t, result.IsError)
		assert.Equal(t, "slotId", result.Field)
		assert.Equal(t, domain.ValueIsRequired, result.ErrorType)
	})

	t.Run("Puts to the slot resource", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
		}))
		defer server.Close()

		shipping := &domain.Shipping{ID: "s1", SlotID: strptr("slot-1")}
		result := testClient(server.URL).UpdateSlot(context.Background(), shipping, nil)

		require.False(t, result.IsError)
		assert.Equal(t, "PUT /api/slots/slot-1", gotPath)
	})
}

func TestCancelSlot(t *testing.T) {
	t.Run("Requires a booked slot", func(t *testing.T) {
		result := testClient("http://unused").CancelSlot(context.Background(), &domain.Shipping{ID: "s1"})

		require.True(t, result.IsError)
		assert.Equal(t, domain.ValueIsRequired, result.ErrorType)
	})

	t.Run("Deletes the slot resource", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
		}))
		defer server.Close()

		shipping := &domain.Shipping{ID: "s1", SlotID: strptr("slot-1")}
		result := testClient(server.URL).CancelSlot(context.Background(), shipping)

		require.False(t, result.IsError)
		assert.Equal(t, "DELETE /api/slots/slot-1", gotPath)
	})
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server.URL)
	shipping := &domain.Shipping{ID: "s1", SlotID: strptr("slot-1")}

	for i := 0; i < 5; i++ {
		result := client.UpdateSlot(context.Background(), shipping, nil)
		require.True(t, result.IsError)
		assert.Equal(t, "poolingApiInternalServerError", result.Message)
	}

	// The breaker is open now; requests fail fast without hitting the remote.
	result := client.UpdateSlot(context.Background(), shipping, nil)
	require.True(t, result.IsError)
	assert.Equal(t, "poolingApiUnavailable", result.Message)
}
