package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are created without a meter
var ErrMeterNil = errors.New("NewMetrics: meter cannot be nil")

// OrderValueBuckets are histogram boundaries for order totals in BRL
var OrderValueBuckets = []float64{25, 50, 100, 150, 200, 300, 500, 1000, 2000}

// Metrics records storefront business metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	cartActions      metric.Int64Counter
	cartRejections   metric.Int64Counter
	orders           metric.Int64Counter
	orderValue       metric.Float64Histogram
	orderItems       metric.Int64Histogram
	contactMessages  metric.Int64Counter
	catalogFallbacks metric.Int64Counter
}

// NewMetrics creates the storefront instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &Metrics{}
	var err error
	if m.cartActions, err = meter.Int64Counter("storefront_cart_actions_total",
		metric.WithDescription("Cart actions applied, by action type"),
		metric.WithUnit("{action}"),
	); err != nil {
		return nil, err
	}
	if m.cartRejections, err = meter.Int64Counter("storefront_cart_rejections_total",
		metric.WithDescription("Cart actions refused, by error code"),
		metric.WithUnit("{action}"),
	); err != nil {
		return nil, err
	}
	if m.orders, err = meter.Int64Counter("storefront_checkout_orders_total",
		metric.WithDescription("Orders handed off to WhatsApp"),
		metric.WithUnit("{order}"),
	); err != nil {
		return nil, err
	}
	if m.orderValue, err = meter.Float64Histogram("storefront_checkout_order_value",
		metric.WithDescription("Order total distribution"),
		metric.WithUnit("BRL"),
		metric.WithExplicitBucketBoundaries(OrderValueBuckets...),
	); err != nil {
		return nil, err
	}
	if m.orderItems, err = meter.Int64Histogram("storefront_checkout_order_items",
		metric.WithDescription("Units per order"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 10, 20, 50),
	); err != nil {
		return nil, err
	}
	if m.contactMessages, err = meter.Int64Counter("storefront_contact_messages_total",
		metric.WithDescription("Contact form messages handed off to WhatsApp"),
		metric.WithUnit("{message}"),
	); err != nil {
		return nil, err
	}
	if m.catalogFallbacks, err = meter.Int64Counter("storefront_catalog_fallbacks_total",
		metric.WithDescription("Catalog queries served by the built-in catalog after a source failure"),
		metric.WithUnit("{query}"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordCartAction counts an applied cart action
func (m *Metrics) RecordCartAction(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.cartActions.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

// RecordCartRejection counts a refused cart action
func (m *Metrics) RecordCartRejection(ctx context.Context, action, code string) {
	if m == nil {
		return
	}
	m.cartRejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("code", code),
	))
}

// RecordOrder records a handed-off order with its total and unit count
func (m *Metrics) RecordOrder(ctx context.Context, total decimal.Decimal, items int, hasCustomer bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("has_customer", hasCustomer))
	m.orders.Add(ctx, 1, attrs)
	m.orderValue.Record(ctx, total.InexactFloat64(), attrs)
	m.orderItems.Record(ctx, int64(items), attrs)
}

// RecordContact counts a handed-off contact message
func (m *Metrics) RecordContact(ctx context.Context) {
	if m == nil {
		return
	}
	m.contactMessages.Add(ctx, 1)
}

// RecordCatalogFallback counts a query served by the built-in catalog
func (m *Metrics) RecordCatalogFallback(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.catalogFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
