package messaging

import (
	"context"
	"net/url"
	"strings"

	"github.com/respawnadega/storefront/internal/domain/checkout"
	"github.com/respawnadega/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// WhatsAppDispatcher hands click-to-chat links to the customer's client.
// Delivery happens on the customer's device, so there is nothing to confirm
// and dispatch never fails. Every hand-off is logged for support lookups.
type WhatsAppDispatcher struct {
	logger *zap.Logger
}

// NewWhatsAppDispatcher creates a new WhatsAppDispatcher
func NewWhatsAppDispatcher(log *zap.Logger) *WhatsAppDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &WhatsAppDispatcher{logger: log.Named("whatsapp")}
}

// Dispatch records the hand-off of link. Links that do not point at the
// click-to-chat endpoint are still handed off but logged as warnings.
func (d *WhatsAppDispatcher) Dispatch(ctx context.Context, link string) {
	log := d.logger
	if id := logger.GetRequestID(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	if sid := logger.GetSessionID(ctx); sid != "" {
		log = log.With(zap.String("cart_session", sid))
	}

	recipient, textLen, ok := inspectLink(link)
	if !ok {
		log.Warn("Handing off unexpected link", zap.String("link", link))
		return
	}
	log.Info("Order link handed off",
		zap.String("recipient", recipient),
		zap.Int("text_length", textLen),
	)
}

// inspectLink extracts the recipient and decoded text length of a wa.me link
func inspectLink(link string) (recipient string, textLen int, ok bool) {
	if !strings.HasPrefix(link, checkout.WhatsAppBaseURL) {
		return "", 0, false
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", 0, false
	}
	text := u.Query().Get("text")
	return strings.TrimPrefix(u.Path, "/"), len([]rune(text)), true
}
