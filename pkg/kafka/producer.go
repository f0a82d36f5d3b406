package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/GittyRyan/compass/pkg/tracing"
)

// Config holds Kafka configuration
type Config struct {
	Brokers    []string
	EventTopic string
	ErrorTopic string
}

// ParseConfig parses a comma-separated broker string
func ParseConfig(brokers string, eventTopic string, errorTopic string) Config {
	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}

	return Config{
		Brokers:    brokerList,
		EventTopic: eventTopic,
		ErrorTopic: errorTopic,
	}
}

// Plan lifecycle event types.
const (
	EventPlanCreated       = "plan.created"
	EventPlanUpdated       = "plan.updated"
	EventPlanStatusChanged = "plan.status_changed"
	EventPlanRenamed       = "plan.renamed"
	EventPlanDeleted       = "plan.deleted"
	EventStrategyRequested = "plan.strategy_requested"
)

// PlanEventMessage is a plan lifecycle event for downstream consumers.
type PlanEventMessage struct {
	Type     string `json:"type"`
	TenantID string `json:"tenant_id"`
	PlanID   string `json:"plan_id"`
	MotionID string `json:"motion_id,omitempty"`
	Status   string `json:"status,omitempty"`

	// Populated for status changes only.
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status,omitempty"`

	Timestamp time.Time `json:"timestamp"`

	// Tracing
	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// Emitter publishes plan lifecycle events. Handlers depend on this interface
// so event publishing can be disabled or faked.
type Emitter interface {
	PublishPlanEvent(ctx context.Context, evt *PlanEventMessage) error
}

// NoopEmitter drops every event. Used when Kafka is disabled.
type NoopEmitter struct{}

func (NoopEmitter) PublishPlanEvent(context.Context, *PlanEventMessage) error {
	return nil
}

// Producer handles producing messages to Kafka
type Producer struct {
	writer      *kafka.Writer
	errorWriter *kafka.Writer
	logger      ectologger.Logger
	topic       string
	errorTopic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg Config, logger ectologger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		// Allow Kafka to auto-create the topic in dev environments when it doesn't exist yet.
		// Without this, a first publish may fail with "Unknown Topic Or Partition".
		AllowAutoTopicCreation: true,
	}

	errorWriter := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.ErrorTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              100,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer:      writer,
		errorWriter: errorWriter,
		logger:      logger,
		topic:       cfg.EventTopic,
		errorTopic:  cfg.ErrorTopic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	stats := p.Stats()
	p.logger.Infof("Kafka producer closing: messages=%d errors=%d", stats.Messages, stats.Errors)

	var firstErr error
	if err := p.writer.Close(); err != nil {
		firstErr = err
	}
	if p.errorWriter != nil {
		if err := p.errorWriter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *Producer) buildMessage(ctx context.Context, evt *PlanEventMessage) (kafka.Message, error) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.TraceID = tracing.GetTraceID(ctx)
	evt.SpanID = tracing.GetSpanID(ctx)

	data, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal plan event: %w", err)
	}

	// Use tenant_id + plan_id as key so one plan's events stay ordered
	// within a partition.
	key := fmt.Sprintf("%s:%s", evt.TenantID, evt.PlanID)

	headers := []kafka.Header{
		{Key: "tenant_id", Value: []byte(evt.TenantID)},
		{Key: "plan_id", Value: []byte(evt.PlanID)},
		{Key: "type", Value: []byte(evt.Type)},
	}
	if traceparent := tracing.GetTraceParent(ctx); traceparent != "" {
		headers = append(headers, kafka.Header{Key: "traceparent", Value: []byte(traceparent)})
	}

	return kafka.Message{
		Key:     []byte(key),
		Value:   data,
		Headers: headers,
	}, nil
}

// PublishPlanEvent publishes a plan lifecycle event
func (p *Producer) PublishPlanEvent(ctx context.Context, evt *PlanEventMessage) error {
	if evt == nil {
		return fmt.Errorf("plan event is nil")
	}

	ctx, span := tracing.StartSpan(ctx, "Kafka.PublishPlanEvent")
	defer span.End()

	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", p.topic),
		attribute.String("messaging.operation", "publish"),
		attribute.String("tenant_id", evt.TenantID),
		attribute.String("plan_id", evt.PlanID),
		attribute.String("type", evt.Type),
	)

	msg, err := p.buildMessage(ctx, evt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal event")
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to publish event")
		p.logger.WithContext(ctx).WithError(err).Errorf("Failed to publish plan event to Kafka topic %s", p.topic)
		// Best effort: park the event on the error topic so it is not lost.
		if dlqErr := p.PublishError(ctx, evt); dlqErr != nil {
			p.logger.WithContext(ctx).WithError(dlqErr).Errorf("Failed to park plan event on error topic %s", p.errorTopic)
		}
		return err
	}

	span.SetStatus(codes.Ok, "event published")
	p.logger.WithContext(ctx).Debugf("Published plan event: type=%s plan=%s trace=%s",
		evt.Type, evt.PlanID, evt.TraceID)
	return nil
}

// PublishError publishes a plan event to the error topic. Used for strategy
// generation failures so operators can alert on them separately.
func (p *Producer) PublishError(ctx context.Context, evt *PlanEventMessage) error {
	if evt == nil {
		return fmt.Errorf("plan event is nil")
	}
	if p.errorWriter == nil {
		return fmt.Errorf("errorWriter is nil (error topic not configured)")
	}

	ctx, span := tracing.StartSpan(ctx, "Kafka.PublishError")
	defer span.End()

	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", p.errorTopic),
		attribute.String("messaging.operation", "publish"),
		attribute.String("tenant_id", evt.TenantID),
		attribute.String("plan_id", evt.PlanID),
	)

	msg, err := p.buildMessage(ctx, evt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal event")
		return err
	}

	if err := p.errorWriter.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to publish event")
		p.logger.WithContext(ctx).WithError(err).Errorf("Failed to publish to Kafka error topic %s", p.errorTopic)
		return err
	}

	span.SetStatus(codes.Ok, "event published")
	return nil
}

// Stats returns producer statistics
func (p *Producer) Stats() kafka.WriterStats {
	return p.writer.Stats()
}
