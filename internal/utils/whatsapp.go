package utils

import (
	"fmt"     // Message formatting
	"net/url" // Query escaping
	"strings" // Space encoding
)

// WhatsAppProductLink builds the pre-filled wa.me deep-link for a product page
func WhatsAppProductLink(number, title, shareURL string) string {
	msg := fmt.Sprintf("Bonjour, je suis intéressé(e) par: %s (%s)", title, shareURL)
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20") // Spaces as %20, literal plus is already %2B
	return "https://wa.me/" + number + "?text=" + text
}
