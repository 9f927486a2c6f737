package kafka

import (
	"time"
)

// Config holds Kafka connection and producer settings
type Config struct {
	Brokers  []string
	ClientID string

	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:  []string{"localhost:9092"},
		ClientID: "tms-backoffice",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1,
	}
}

// Topics contains the outbound topic names
var Topics = struct {
	ShippingEvents string
	CarrierEvents  string
}{
	ShippingEvents: "tms.shipping.events",
	CarrierEvents:  "tms.carrier.events",
}
