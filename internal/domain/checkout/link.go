package checkout

import (
	"net/url"
	"strings"

	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
)

// WhatsAppBaseURL is the click-to-chat endpoint
const WhatsAppBaseURL = "https://wa.me/"

// componentUnescaper restores the characters encodeURIComponent leaves as is
// and writes spaces as %20
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeMessage escapes message for use as a query value with the same
// output as JavaScript's encodeURIComponent.
func EncodeMessage(message string) string {
	return componentUnescaper.Replace(url.QueryEscape(message))
}

// BuildWhatsAppLink returns https://wa.me/<digits>?text=<encoded message>
func BuildWhatsAppLink(phone, message string) string {
	return WhatsAppBaseURL + valueobject.OnlyDigits(phone) + "?text=" + EncodeMessage(message)
}
