package eventtree

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// treeMetrics holds the OpenTelemetry counters of one tree. A disabled
// instance records nothing.
type treeMetrics struct {
	enabled      bool
	attrs        metric.MeasurementOption
	subscribes   metric.Int64Counter
	unsubscribes metric.Int64Counter
	prunes       metric.Int64Counter
	sends        metric.Int64Counter
	invocations  metric.Int64Counter
	failures     metric.Int64Counter
}

func newTreeMetrics(name string, enabled bool) *treeMetrics {
	if !enabled {
		return &treeMetrics{}
	}
	meter := otel.Meter(name)
	m := &treeMetrics{
		enabled: true,
		attrs:   metric.WithAttributes(attribute.String("tree", name)),
	}
	m.subscribes, _ = meter.Int64Counter("eventtree.subscribed",
		metric.WithDescription("Total number of handlers subscribed"),
		metric.WithUnit("{handler}"))
	m.unsubscribes, _ = meter.Int64Counter("eventtree.unsubscribed",
		metric.WithDescription("Total number of handlers removed"),
		metric.WithUnit("{handler}"))
	m.prunes, _ = meter.Int64Counter("eventtree.pruned",
		metric.WithDescription("Total number of empty nodes detached"),
		metric.WithUnit("{node}"))
	m.sends, _ = meter.Int64Counter("eventtree.sent",
		metric.WithDescription("Total number of messages sent"),
		metric.WithUnit("{message}"))
	m.invocations, _ = meter.Int64Counter("eventtree.invoked",
		metric.WithDescription("Total number of handler invocations"),
		metric.WithUnit("{call}"))
	m.failures, _ = meter.Int64Counter("eventtree.failed",
		metric.WithDescription("Total number of handler invocations returning an error"),
		metric.WithUnit("{call}"))
	return m
}

func (m *treeMetrics) add(ctx context.Context, c metric.Int64Counter, depth int) {
	if !m.enabled || c == nil {
		return
	}
	if depth < 0 {
		c.Add(ctx, 1, m.attrs)
		return
	}
	c.Add(ctx, 1, m.attrs, metric.WithAttributes(attribute.Int("depth", depth)))
}

func (m *treeMetrics) subscribed(ctx context.Context, depth int)   { m.add(ctx, m.subscribes, depth) }
func (m *treeMetrics) unsubscribed(ctx context.Context, depth int) { m.add(ctx, m.unsubscribes, depth) }
func (m *treeMetrics) pruned(ctx context.Context)                  { m.add(ctx, m.prunes, -1) }
func (m *treeMetrics) sent(ctx context.Context, depth int)         { m.add(ctx, m.sends, depth) }
func (m *treeMetrics) invoked(ctx context.Context, depth int)      { m.add(ctx, m.invocations, depth) }
func (m *treeMetrics) failed(ctx context.Context, depth int)       { m.add(ctx, m.failures, depth) }
