package checkout

import (
	"context"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/checkout"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Dispatcher hands a deep link off to the messaging app. Delivery is not
// confirmed and there is no failure path.
type Dispatcher interface {
	Dispatch(ctx context.Context, link string)
}

// CartReader exposes the current cart of a session
type CartReader interface {
	Snapshot(ctx context.Context, sessionID string) cart.State
}

// Service turns a session's cart into a WhatsApp order
type Service struct {
	carts      CartReader
	formatter  *checkout.OrderFormatter
	dispatcher Dispatcher
	logger     *zap.Logger
	metrics    *telemetry.Metrics
}

// NewService creates a new checkout Service
func NewService(carts CartReader, formatter *checkout.OrderFormatter, dispatcher Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:      carts,
		formatter:  formatter,
		dispatcher: dispatcher,
		logger:     logger.Named("checkout"),
	}
}

// SetMetrics sets the business metrics recorder
func (s *Service) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// Checkout formats the session's cart and hands the order link off. The
// cart is left as is.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*CheckoutResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "checkout.Checkout", attribute.String("cart_session", sessionID))
	defer span.End()

	state := s.carts.Snapshot(ctx, sessionID)
	if state.IsEmpty() {
		telemetry.RecordError(span, shared.ErrEmptyCart)
		return nil, shared.ErrEmptyCart
	}

	message := s.formatter.FormatState(state)
	link := checkout.BuildWhatsAppLink(s.formatter.Business().WhatsAppNumber, message)
	s.dispatcher.Dispatch(ctx, link)

	total := state.Total()
	s.metrics.RecordOrder(ctx, total.Amount(), state.TotalItems(), state.Customer != nil)
	span.SetAttributes(
		attribute.Int("order.total_items", state.TotalItems()),
		attribute.String("order.total_price", total.Amount().StringFixed(2)),
	)
	s.logger.Info("Order handed off",
		zap.String("cart_session", sessionID),
		zap.Int("total_items", state.TotalItems()),
		zap.String("total_price", total.Amount().StringFixed(2)),
		zap.Bool("has_customer", state.Customer != nil),
	)

	return &CheckoutResponse{
		SessionID:           sessionID,
		Message:             message,
		Link:                link,
		TotalItems:          state.TotalItems(),
		TotalPrice:          total.Amount(),
		TotalPriceFormatted: total.Format(),
	}, nil
}

// Contact formats a contact form submission and hands it off
func (s *Service) Contact(ctx context.Context, req ContactRequest) *ContactResponse {
	message := s.formatter.FormatContact(checkout.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	link := checkout.BuildWhatsAppLink(s.formatter.Business().WhatsAppNumber, message)
	s.dispatcher.Dispatch(ctx, link)
	s.metrics.RecordContact(ctx)

	s.logger.Debug("Contact message handed off", zap.String("subject", req.Subject))
	return &ContactResponse{Message: message, Link: link}
}
