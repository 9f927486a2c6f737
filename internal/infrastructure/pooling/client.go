package pooling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/config"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/metrics"
)

// SlotDTO is the pooling service's slot representation
type SlotDTO struct {
	ID              string     `json:"id"`
	ConsolidationID string     `json:"consolidationId,omitempty"`
	DeliveryDate    *time.Time `json:"deliveryDate,omitempty"`
	PalletsCount    int        `json:"palletsCount,omitempty"`
	Status          string     `json:"status,omitempty"`
}

// Client talks to the external pooling service over HTTP. Failures come
// back as ValidateResult values with a localization key per status code;
// the circuit breaker prevents hammering a failing remote.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewClient creates a pooling API client
func NewClient(cfg config.PoolingConfig, logger *logging.Logger, m *metrics.Metrics) *Client {
	componentLogger := logger.WithComponent("poolingClient")

	settings := gobreaker.Settings{
		Name:        "pooling-api",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Warn("Circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
			if m != nil {
				m.SetCircuitBreakerState(name, int(to))
			}
		},
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  componentLogger,
		metrics: m,
	}
}

// slotPayload is the outbound slot update/booking body
type slotPayload struct {
	ShippingID        string   `json:"shippingId"`
	ShippingNumber    string   `json:"shippingNumber"`
	CarrierID         *string  `json:"carrierId,omitempty"`
	VehicleTypeID     *string  `json:"vehicleTypeId,omitempty"`
	BodyTypeID        *string  `json:"bodyTypeId,omitempty"`
	TotalDeliveryCost *float64 `json:"totalDeliveryCost,omitempty"`
	OrderNumbers      []string `json:"orderNumbers"`
}

func buildSlotPayload(shipping *domain.Shipping, orders []*domain.Order) slotPayload {
	numbers := make([]string, 0, len(orders))
	for _, o := range orders {
		numbers = append(numbers, o.OrderNumber)
	}
	return slotPayload{
		ShippingID:        shipping.ID,
		ShippingNumber:    shipping.ShippingNumber,
		CarrierID:         shipping.CarrierID,
		VehicleTypeID:     shipping.VehicleTypeID,
		BodyTypeID:        shipping.BodyTypeID,
		TotalDeliveryCost: shipping.TotalDeliveryCost,
		OrderNumbers:      numbers,
	}
}

// GetSlot fetches one slot by ID
func (c *Client) GetSlot(ctx context.Context, slotID string) (*SlotDTO, domain.ValidateResult) {
	var slot SlotDTO
	result := c.do(ctx, http.MethodGet, "/api/slots/"+slotID, nil, &slot)
	if result.IsError {
		return nil, result
	}
	return &slot, domain.ValidationOK()
}

// BookSlot books a slot for the shipping and returns the assigned slot ID
func (c *Client) BookSlot(ctx context.Context, shipping *domain.Shipping, orders []*domain.Order) (string, domain.ValidateResult) {
	var slot SlotDTO
	payload := buildSlotPayload(shipping, orders)
	result := c.do(ctx, http.MethodPost, "/api/slots", payload, &slot)
	if result.IsError {
		return "", result
	}
	return slot.ID, domain.ValidationOK()
}

// UpdateSlot pushes changed shipping data to an existing slot
func (c *Client) UpdateSlot(ctx context.Context, shipping *domain.Shipping, orders []*domain.Order) domain.ValidateResult {
	if shipping.SlotID == nil {
		return domain.ValidationError("slotId", domain.ValueIsRequired, "shipping has no booked slot")
	}
	payload := buildSlotPayload(shipping, orders)
	return c.do(ctx, http.MethodPut, "/api/slots/"+*shipping.SlotID, payload, nil)
}

// CancelSlot releases the shipping's booked slot
func (c *Client) CancelSlot(ctx context.Context, shipping *domain.Shipping) domain.ValidateResult {
	if shipping.SlotID == nil {
		return domain.ValidationError("slotId", domain.ValueIsRequired, "shipping has no booked slot")
	}
	return c.do(ctx, http.MethodDelete, "/api/slots/"+*shipping.SlotID, nil, nil)
}

// do runs one request through the circuit breaker and decodes the response
func (c *Client) do(ctx context.Context, method, path string, body any, out any) domain.ValidateResult {
	operation := method + " " + path

	_, err := c.breaker.Execute(func() (any, error) {
		var reqBody *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request: %w", err)
			}
			reqBody = bytes.NewReader(data)
		} else {
			reqBody = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if c.metrics != nil {
			c.metrics.RecordPoolingRequest(operation, resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return nil, &statusError{Code: resp.StatusCode}
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
		}
		return nil, nil
	})

	if err == nil {
		return domain.ValidationOK()
	}

	c.logger.WithError(err).Warn("Pooling request failed", "operation", operation)
	return mapError(err)
}

// statusError carries a remote HTTP status through the breaker
type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("pooling api returned status %d", e.Code)
}

// mapError converts transport failures into localizable validate results
func mapError(err error) domain.ValidateResult {
	if se, ok := err.(*statusError); ok {
		return domain.ValidateResult{IsError: true, Message: MessageKeyForStatus(se.Code)}
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return domain.ValidateResult{IsError: true, Message: "poolingApiUnavailable"}
	}
	return domain.ValidateResult{IsError: true, Message: "poolingApiInternalServerError"}
}

// MessageKeyForStatus maps a pooling HTTP status code to a message key
func MessageKeyForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "poolingApiUnauthorized"
	case http.StatusForbidden:
		return "poolingApiForbidden"
	case http.StatusNotFound:
		return "poolingApiNotFound"
	default:
		return "poolingApiInternalServerError"
	}
}
