// Package links builds the contact deep links shown next to products,
// inquiries and job openings: phone calls, WhatsApp chats and e-mail.
package links

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

// CountryCode is prefixed to bare local phone numbers.
const CountryCode = "91"

var nonDigit = regexp.MustCompile(`\D`)

// Call returns a tel: link for the business phone.
func Call(s domain.SiteSettings) string {
	return "tel:+" + CountryCode + s.Phone
}

// WhatsAppBase returns the chat URL without a message. An explicit
// whatsappLink setting wins over one derived from the phone number.
func WhatsAppBase(s domain.SiteSettings) string {
	if link := strings.TrimSpace(s.WhatsappLink); link != "" {
		return link
	}
	return PhoneWhatsAppBase(s)
}

// PhoneWhatsAppBase returns the chat URL for the business phone, ignoring
// any whatsappLink setting.
func PhoneWhatsAppBase(s domain.SiteSettings) string {
	return "https://wa.me/" + CountryCode + nonDigit.ReplaceAllString(s.Phone, "")
}

// WhatsApp returns a chat link prefilled with message.
func WhatsApp(s domain.SiteSettings, message string) string {
	return WhatsAppBase(s) + "?text=" + encodeComponent(message)
}

// Mail returns a mailto: link with the given subject.
func Mail(address, subject string) string {
	return "mailto:" + address + "?subject=" + encodeComponent(subject)
}

// CareerEmail is the address resumes go to, falling back to the general one.
func CareerEmail(s domain.SiteSettings) string {
	if s.CareerEmail != "" {
		return s.CareerEmail
	}
	return s.Email
}

// encodeComponent percent-encodes s for use inside a query value, with
// spaces as %20 so chat apps show the text verbatim.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ProductMessage is the chat text for a product at a chosen pack size.
func ProductMessage(p domain.Product, v domain.SizeVariant, price float64) string {
	return "Hi, I'm interested in " + p.Name + " (" + v.Label + ") - ₹" + strconv.FormatFloat(price, 'f', -1, 64)
}

// BulkOrderMessage is the chat text summarising a bulk-order inquiry.
func BulkOrderMessage(in domain.BulkOrderInquiry) string {
	var b strings.Builder
	b.WriteString("Hi, I'm interested in bulk ordering.\n\n")
	b.WriteString("Name: " + in.Name + "\n")
	b.WriteString("Company: " + in.Company + "\n")
	b.WriteString("Product: " + in.ProductType + "\n")
	b.WriteString("Quantity: " + in.Quantity + "\n\n")
	b.WriteString("Message: " + in.Message)
	return b.String()
}

// ApplicationMessage is the chat text for applying to an opening.
func ApplicationMessage(j domain.JobOpening) string {
	return "Hi, I would like to apply for the position of " + j.Title + ".\n\n" +
		"Location: " + j.Location + "\nType: " + j.Type + "\n\n" +
		"Please let me know the next steps."
}

// Contact bundles the links rendered in a contact block.
type Contact struct {
	Call     string `json:"call"`
	WhatsApp string `json:"whatsapp"`
}

// ContactFor returns the call and chat links shown on a product page. The
// chat link always targets the business phone.
func ContactFor(s domain.SiteSettings, message string) Contact {
	return Contact{
		Call:     Call(s),
		WhatsApp: PhoneWhatsAppBase(s) + "?text=" + encodeComponent(message),
	}
}
