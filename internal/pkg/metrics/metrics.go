package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns a default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "tms",
	}
}

// Metrics holds all Prometheus collectors for the back office
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	mongoOperationsTotal   *prometheus.CounterVec
	mongoOperationDuration *prometheus.HistogramVec

	kafkaPublishTotal    *prometheus.CounterVec
	kafkaPublishDuration *prometheus.HistogramVec

	triggerExecutionsTotal   *prometheus.CounterVec
	triggerExecutionDuration *prometheus.HistogramVec

	actionInvocationsTotal *prometheus.CounterVec

	validationFailuresTotal *prometheus.CounterVec

	poolingRequestsTotal     *prometheus.CounterVec
	circuitBreakerState      *prometheus.GaugeVec
	outboxPublishedTotal     *prometheus.CounterVec
	reconciliationRunsTotal  *prometheus.CounterVec
	reconciliationLastUnixTS prometheus.Gauge
}

// New creates a new Metrics instance with a dedicated registry
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	constLabels := prometheus.Labels{"service": config.ServiceName}

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),
		mongoOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "mongodb_operations_total",
			Help:        "Total number of MongoDB operations",
			ConstLabels: constLabels,
		}, []string{"collection", "operation", "success"}),
		mongoOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "mongodb_operation_duration_seconds",
			Help:        "MongoDB operation duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"collection", "operation"}),
		kafkaPublishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "kafka_publish_total",
			Help:        "Total number of Kafka publish attempts",
			ConstLabels: constLabels,
		}, []string{"topic", "event_type", "success"}),
		kafkaPublishDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "kafka_publish_duration_seconds",
			Help:        "Kafka publish duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"topic"}),
		triggerExecutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "trigger_executions_total",
			Help:        "Total number of trigger executions",
			ConstLabels: constLabels,
		}, []string{"trigger", "category", "success"}),
		triggerExecutionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "trigger_execution_duration_seconds",
			Help:        "Trigger execution duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"trigger", "category"}),
		actionInvocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "action_invocations_total",
			Help:        "Total number of business action invocations",
			ConstLabels: constLabels,
		}, []string{"action", "result"}),
		validationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "validation_failures_total",
			Help:        "Total number of save validation failures",
			ConstLabels: constLabels,
		}, []string{"entity", "error_type"}),
		poolingRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "pooling_requests_total",
			Help:        "Total number of pooling API requests",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		circuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "circuit_breaker_state",
			Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: constLabels,
		}, []string{"name"}),
		outboxPublishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "outbox_published_total",
			Help:        "Total number of outbox events published",
			ConstLabels: constLabels,
		}, []string{"success"}),
		reconciliationRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "reconciliation_runs_total",
			Help:        "Total number of pooling reconciliation runs",
			ConstLabels: constLabels,
		}, []string{"success"}),
		reconciliationLastUnixTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "reconciliation_last_run_timestamp_seconds",
			Help:        "Unix timestamp of the last reconciliation run",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.mongoOperationsTotal,
		m.mongoOperationDuration,
		m.kafkaPublishTotal,
		m.kafkaPublishDuration,
		m.triggerExecutionsTotal,
		m.triggerExecutionDuration,
		m.actionInvocationsTotal,
		m.validationFailuresTotal,
		m.poolingRequestsTotal,
		m.circuitBreakerState,
		m.outboxPublishedTotal,
		m.reconciliationRunsTotal,
		m.reconciliationLastUnixTS,
	)

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments the in-flight gauge
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements the in-flight gauge
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Dec()
}

// RecordMongoDBOperation records a MongoDB operation
func (m *Metrics) RecordMongoDBOperation(collection, operation string, success bool, duration time.Duration) {
	m.mongoOperationsTotal.WithLabelValues(collection, operation, strconv.FormatBool(success)).Inc()
	m.mongoOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

// RecordKafkaPublish records a Kafka publish attempt
func (m *Metrics) RecordKafkaPublish(topic, eventType string, success bool, duration time.Duration) {
	m.kafkaPublishTotal.WithLabelValues(topic, eventType, strconv.FormatBool(success)).Inc()
	m.kafkaPublishDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

// RecordTriggerExecution records a trigger execution
func (m *Metrics) RecordTriggerExecution(trigger, category string, success bool, duration time.Duration) {
	m.triggerExecutionsTotal.WithLabelValues(trigger, category, strconv.FormatBool(success)).Inc()
	m.triggerExecutionDuration.WithLabelValues(trigger, category).Observe(duration.Seconds())
}

// RecordActionInvocation records a business action invocation
func (m *Metrics) RecordActionInvocation(action string, isError bool) {
	result := "success"
	if isError {
		result = "error"
	}
	m.actionInvocationsTotal.WithLabelValues(action, result).Inc()
}

// RecordValidationFailure records a save validation failure
func (m *Metrics) RecordValidationFailure(entity, errorType string) {
	m.validationFailuresTotal.WithLabelValues(entity, errorType).Inc()
}

// RecordPoolingRequest records a pooling API request outcome
func (m *Metrics) RecordPoolingRequest(operation string, status int) {
	m.poolingRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// SetCircuitBreakerState sets the circuit breaker state gauge
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.circuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordOutboxPublished records an outbox publish outcome
func (m *Metrics) RecordOutboxPublished(success bool) {
	m.outboxPublishedTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordReconciliationRun records a reconciliation run
func (m *Metrics) RecordReconciliationRun(success bool) {
	m.reconciliationRunsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.reconciliationLastUnixTS.SetToCurrentTime()
}
