package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TimestampLayout renders order times as dd/MM/yyyy HH:mm:ss
const TimestampLayout = "02/01/2006 15:04:05"

// Clock returns the current time
type Clock func() time.Time

// OrderFormatter renders cart contents into the WhatsApp order message.
// Output depends only on its inputs and the clock.
type OrderFormatter struct {
	business BusinessInfo
	clock    Clock
	location *time.Location
}

// FormatterOption configures an OrderFormatter
type FormatterOption func(*OrderFormatter)

// WithClock overrides the time source
func WithClock(clock Clock) FormatterOption {
	return func(f *OrderFormatter) {
		f.clock = clock
	}
}

// WithLocation sets the time zone timestamps are rendered in
func WithLocation(loc *time.Location) FormatterOption {
	return func(f *OrderFormatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

// NewOrderFormatter creates a formatter for business. Timestamps default to
// America/Sao_Paulo, or UTC when the zone database is unavailable.
func NewOrderFormatter(business BusinessInfo, opts ...FormatterOption) *OrderFormatter {
	f := &OrderFormatter{
		business: business,
		clock:    time.Now,
		location: defaultLocation(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.UTC
	}
	return loc
}

// Business returns the business the formatter writes orders for
func (f *OrderFormatter) Business() BusinessInfo {
	return f.business
}

// FormatOrder renders items, their total and optional customer info
func (f *OrderFormatter) FormatOrder(items []cart.Item, totalPrice decimal.Decimal, customer *cart.CustomerInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 *NOVO PEDIDO - %s*\n\n", f.business.Name)

	if customer != nil {
		if customer.Name != "" {
			fmt.Fprintf(&b, "👤 *Cliente:* %s\n", customer.Name)
		}
		if customer.Phone != "" {
			fmt.Fprintf(&b, "📱 *Telefone:* %s\n", valueobject.FormatBrazilianPhone(customer.Phone))
		}
		if addr := customer.Address.FullAddress(); addr != "" {
			fmt.Fprintf(&b, "📍 *Endereço:* %s\n", addr)
		}
	}

	lines := make([]string, len(items))
	totalItems := 0
	for i, it := range items {
		lines[i] = fmt.Sprintf("• %s\n  Qtd: %dx | Preço: %s | Subtotal: %s",
			it.Product.Name,
			it.Quantity,
			valueobject.FormatBRL(it.Product.Price),
			it.SubtotalMoney().Format(),
		)
		totalItems += it.Quantity
	}

	fmt.Fprintf(&b, "\n📦 *ITENS DO PEDIDO:*\n\n%s\n\n", strings.Join(lines, "\n\n"))
	b.WriteString("📊 *RESUMO:*\n")
	fmt.Fprintf(&b, "• Total de itens: %d\n", totalItems)
	fmt.Fprintf(&b, "• Valor total: %s\n\n", valueobject.FormatBRL(totalPrice))
	fmt.Fprintf(&b, "⏰ *Horário do pedido:* %s\n\n", f.timestamp())
	b.WriteString("✅ Gostaria de confirmar este pedido!\n\n")
	fmt.Fprintf(&b, "📍 *Endereço da loja:* %s\n", f.business.Address)
	fmt.Fprintf(&b, "🕒 *Horário de funcionamento:* %s", f.business.Hours)

	return b.String()
}

// FormatState renders the order for a full cart state
func (f *OrderFormatter) FormatState(state cart.State) string {
	return f.FormatOrder(state.Items, state.TotalPrice(), state.Customer)
}

// ContactMessage is a free-form message sent through the contact page
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// FormatContact renders a contact request for the business
func (f *OrderFormatter) FormatContact(msg ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📞 *CONTATO - %s*\n\n", f.business.Name)
	fmt.Fprintf(&b, "👤 *Nome:* %s\n", msg.Name)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", msg.Email)
	fmt.Fprintf(&b, "📋 *Assunto:* %s\n\n", msg.Subject)
	fmt.Fprintf(&b, "💬 *Mensagem:*\n%s\n\n", msg.Message)
	fmt.Fprintf(&b, "⏰ *Enviado em:* %s", f.timestamp())
	return b.String()
}

func (f *OrderFormatter) timestamp() string {
	return f.clock().In(f.location).Format(TimestampLayout)
}
