package domain

import "slices"

// SiteSettings is the singleton business configuration record.
type SiteSettings struct {
	BusinessName          string       `json:"businessName"`
	Slogan                string       `json:"slogan"`
	Logo                  string       `json:"logo"`
	Phone                 string       `json:"phone"`
	Email                 string       `json:"email"`
	CareerEmail           string       `json:"careerEmail"`
	Address               string       `json:"address"`
	WhatsappLink          string       `json:"whatsappLink"`
	FacebookLink          string       `json:"facebookLink"`
	InstagramLink         string       `json:"instagramLink"`
	TwitterLink           string       `json:"twitterLink"`
	YoutubeLink           string       `json:"youtubeLink"`
	BulkOrderProductTypes []string     `json:"bulkOrderProductTypes"`
	BulkOrderBenefits     []string     `json:"bulkOrderBenefits"`
	AboutTitle            string       `json:"aboutTitle,omitempty"`
	AboutSubtitle         string       `json:"aboutSubtitle,omitempty"`
	AboutStory            string       `json:"aboutStory,omitempty"`
	AboutMission          string       `json:"aboutMission,omitempty"`
	AboutVision           string       `json:"aboutVision,omitempty"`
	AboutValues           []AboutValue `json:"aboutValues,omitempty"`
	AboutStats            []AboutStat  `json:"aboutStats,omitempty"`
}

// AboutValue is one card in the About Us values section.
type AboutValue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AboutStat is one figure in the About Us stats strip.
type AboutStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DefaultSiteSettings returns the settings used until the backend supplies a
// non-empty record.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		BusinessName: "DryFruto",
		Slogan:       "Live With Health",
		Phone:        "9870990795",
		Email:        "info@dryfruto.com",
		CareerEmail:  "careers@dryfruto.com",
		Address:      "123, Main Street, New Delhi, India",
		WhatsappLink: "https://wa.me/919870990795",
		BulkOrderProductTypes: []string{
			"Dry Fruits", "Nuts", "Seeds", "Berries", "Gift Boxes", "Mixed Products",
		},
		BulkOrderBenefits: []string{
			"Direct sourcing from farms ensures freshness",
			"Minimum order quantity: 10 kg",
			"Special rates for orders above 100 kg",
			"Custom packaging with your branding",
			"Regular supply contracts available",
			"Quality testing certificates provided",
		},
	}
}

// Clone returns a deep copy so callers can't mutate a shared snapshot.
func (s SiteSettings) Clone() SiteSettings {
	s.BulkOrderProductTypes = slices.Clone(s.BulkOrderProductTypes)
	s.BulkOrderBenefits = slices.Clone(s.BulkOrderBenefits)
	s.AboutValues = slices.Clone(s.AboutValues)
	s.AboutStats = slices.Clone(s.AboutStats)
	return s
}
