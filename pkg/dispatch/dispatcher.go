package dispatch

import (
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"swap-link/pkg/metrics"
	"swap-link/pkg/parser"
	"swap-link/pkg/types"
)

// Log tags attached to rejected links
const (
	TagComponent = "handleSwapLinkSaga"
	TagOperation = "handleSwapLink"
)

// EventSink consumes the event produced for each handled link
type EventSink interface {
	Emit(event types.Event)
}

// SinkFunc adapts a function to an EventSink
type SinkFunc func(event types.Event)

// Emit calls f(event)
func (f SinkFunc) Emit(event types.Event) {
	f(event)
}

// Dispatcher opens the swap view for incoming swap deep links
type Dispatcher struct {
	validator *parser.Validator
	sink      EventSink
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithSink delivers every event to sink in addition to returning it
func WithSink(sink EventSink) Option {
	return func(d *Dispatcher) {
		d.sink = sink
	}
}

// WithLogger sets the logger that records rejected links
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics records an outcome counter for every link
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher around validator
func NewDispatcher(validator *parser.Validator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		validator: validator,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle validates u and emits exactly one swap event. Invalid links produce
// an event without initial state; the error is logged, never returned.
func (d *Dispatcher) Handle(u *url.URL) types.Event {
	params, err := d.validator.Validate(u)
	if err != nil {
		return d.reject(err)
	}

	event := types.Event{Name: types.EventSwap, InitialState: params.FormState()}
	d.metrics.ObserveLink(metrics.OutcomePrefilled, "none")
	d.emit(event)
	return event
}

// HandleString is Handle for a raw link
func (d *Dispatcher) HandleString(raw string) types.Event {
	u, err := url.Parse(raw)
	if err != nil {
		return d.reject(err)
	}
	return d.Handle(u)
}

func (d *Dispatcher) reject(err error) types.Event {
	kind := "none"
	if k := parser.KindOf(err); k != 0 {
		kind = k.String()
	}

	d.logger.Error("swap link rejected",
		zap.Error(err),
		zap.String("kind", kind),
		zap.String("link_id", uuid.NewString()),
		zap.String("component", TagComponent),
		zap.String("operation", TagOperation),
	)

	event := types.Event{Name: types.EventSwap}
	d.metrics.ObserveLink(metrics.OutcomeEmpty, kind)
	d.emit(event)
	return event
}

func (d *Dispatcher) emit(event types.Event) {
	if d.sink != nil {
		d.sink.Emit(event)
	}
}
