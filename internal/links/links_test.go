package links

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

func TestCall(t *testing.T) {
	assert.Equal(t, "tel:+919870990795", Call(domain.DefaultSiteSettings()))
}

func TestWhatsAppBase(t *testing.T) {
	s := domain.DefaultSiteSettings()
	assert.Equal(t, "https://wa.me/919870990795", WhatsAppBase(s))

	s.WhatsappLink = ""
	s.Phone = "98709-90 795"
	assert.Equal(t, "https://wa.me/919870990795", WhatsAppBase(s), "derived link keeps digits only")

	s.WhatsappLink = "https://wa.me/911234567890"
	assert.Equal(t, "https://wa.me/911234567890", WhatsAppBase(s))
}

func TestWhatsApp_EncodesLikeURIComponent(t *testing.T) {
	link := WhatsApp(domain.DefaultSiteSettings(), "Hi there & bye\n₹348")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919870990795?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Hi%20there%20%26%20bye%0A%E2%82%B9348")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi there & bye\n₹348", u.Query().Get("text"))
}

func TestMail(t *testing.T) {
	assert.Equal(t, "mailto:careers@dryfruto.com?subject=Job%20Application%20-%20General",
		Mail("careers@dryfruto.com", "Job Application - General"))
}

func TestCareerEmail_FallsBackToEmail(t *testing.T) {
	s := domain.DefaultSiteSettings()
	assert.Equal(t, "careers@dryfruto.com", CareerEmail(s))

	s.CareerEmail = ""
	assert.Equal(t, "info@dryfruto.com", CareerEmail(s))
}

func TestProductMessage(t *testing.T) {
	p := domain.Product{Name: "Premium California Almonds"}
	v, _ := domain.VariantByKey("250g")

	assert.Equal(t, "Hi, I'm interested in Premium California Almonds (250 gram) - ₹348", ProductMessage(p, v, 348))
	assert.Equal(t, "Hi, I'm interested in Premium California Almonds (250 gram) - ₹349.5", ProductMessage(p, v, 349.5))
}

func TestBulkOrderMessage(t *testing.T) {
	msg := BulkOrderMessage(domain.BulkOrderInquiry{
		Name: "Asha", Company: "Asha Traders", ProductType: "Nuts", Quantity: "50 kg", Message: "Monthly supply",
	})
	assert.Equal(t, "Hi, I'm interested in bulk ordering.\n\nName: Asha\nCompany: Asha Traders\nProduct: Nuts\nQuantity: 50 kg\n\nMessage: Monthly supply", msg)
}

func TestApplicationMessage(t *testing.T) {
	msg := ApplicationMessage(domain.JobOpening{Title: "Store Manager", Location: "Delhi", Type: "Full-time"})
	assert.Equal(t, "Hi, I would like to apply for the position of Store Manager.\n\nLocation: Delhi\nType: Full-time\n\nPlease let me know the next steps.", msg)
}

func TestContactFor(t *testing.T) {
	c := ContactFor(domain.DefaultSiteSettings(), "hello")
	assert.Equal(t, "tel:+919870990795", c.Call)
	assert.Equal(t, "https://wa.me/919870990795?text=hello", c.WhatsApp)
}

func TestContactFor_IgnoresWhatsappLinkSetting(t *testing.T) {
	s := domain.DefaultSiteSettings()
	s.WhatsappLink = "https://wa.me/911234567890"
	s.Phone = "98709 90795"

	c := ContactFor(s, "hello")
	assert.Equal(t, "https://wa.me/919870990795?text=hello", c.WhatsApp)
	assert.Equal(t, "https://wa.me/911234567890?text=hello", WhatsApp(s, "hello"), "other flows keep the configured link")
}
