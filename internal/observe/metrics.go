// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments shared by the frame
// transforms and the example programs.
//
// Metrics are recorded through the OpenTelemetry Metrics API. [InitProvider]
// bridges them to a Prometheus exporter so they can be scraped from
// /metrics. Tests should use [NewMetrics] with their own
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ik5/audframe"

// Metrics holds the metric instruments. All fields are safe for concurrent
// use.
type Metrics struct {
	// FramesProcessed counts processor invocations. Attribute: "stream".
	FramesProcessed metric.Int64Counter

	// ProcessDuration tracks the time spent inside one processor call.
	ProcessDuration metric.Float64Histogram

	// LiveNodes tracks frame-chain nodes currently holding data.
	LiveNodes metric.Int64UpDownCounter

	// StreamsExhausted counts transforms whose upstream ran dry.
	StreamsExhausted metric.Int64Counter
}

// frameBuckets are histogram boundaries in seconds sized for audio
// callbacks, where a 1024-sample frame at 48kHz has about 21ms of budget.
var frameBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.02, 0.05,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.FramesProcessed, err = m.Int64Counter("audframe.frames.processed",
		metric.WithDescription("Total frames passed through a processor."),
	); err != nil {
		return nil, err
	}
	if met.ProcessDuration, err = m.Float64Histogram("audframe.frame.process.duration",
		metric.WithDescription("Latency of a single processor invocation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(frameBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LiveNodes, err = m.Int64UpDownCounter("audframe.chain.nodes.live",
		metric.WithDescription("Frame-chain nodes currently holding processed samples."),
	); err != nil {
		return nil, err
	}
	if met.StreamsExhausted, err = m.Int64Counter("audframe.stream.exhausted",
		metric.WithDescription("Transforms whose upstream stream ended."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] built on
// [otel.GetMeterProvider] at first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Recorder binds the instruments to one stream name. The attribute set is
// built once so recording does not rebuild it per frame. A nil *Recorder
// records nothing.
type Recorder struct {
	m     *Metrics
	attrs metric.MeasurementOption
}

// Stream returns a Recorder tagging every measurement with stream=name.
// It returns nil when m is nil.
func (m *Metrics) Stream(name string) *Recorder {
	if m == nil {
		return nil
	}
	return &Recorder{
		m:     m,
		attrs: metric.WithAttributeSet(attribute.NewSet(attribute.String("stream", name))),
	}
}

// Frame records one processor call that took d.
func (r *Recorder) Frame(d time.Duration) {
	if r == nil {
		return
	}
	ctx := context.Background()
	r.m.FramesProcessed.Add(ctx, 1, r.attrs)
	r.m.ProcessDuration.Record(ctx, d.Seconds(), r.attrs)
}

// Nodes adjusts the live node gauge by delta.
func (r *Recorder) Nodes(delta int64) {
	if r == nil || delta == 0 {
		return
	}
	r.m.LiveNodes.Add(context.Background(), delta, r.attrs)
}

// Exhausted records that the stream ended.
func (r *Recorder) Exhausted() {
	if r == nil {
		return
	}
	r.m.StreamsExhausted.Add(context.Background(), 1, r.attrs)
}
