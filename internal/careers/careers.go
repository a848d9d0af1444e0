// Package careers serves the static list of job openings and the links a
// candidate uses to apply.
package careers

import (
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/links"
)

// Openings are the positions currently advertised.
var Openings = []domain.JobOpening{
	{
		Title:       "Sales Executive",
		Location:    "Delhi NCR",
		Type:        "Full-time",
		Experience:  "1-3 years",
		Description: "Looking for enthusiastic sales professionals to expand our retail network.",
	},
	{
		Title:       "Delivery Partner",
		Location:    "Multiple Cities",
		Type:        "Full-time",
		Experience:  "Freshers welcome",
		Description: "Join our delivery team and ensure timely delivery of premium products.",
	},
	{
		Title:       "Store Manager",
		Location:    "Delhi",
		Type:        "Full-time",
		Experience:  "3-5 years",
		Description: "Manage store operations, inventory, and lead a team of associates.",
	},
	{
		Title:       "Digital Marketing Executive",
		Location:    "Remote",
		Type:        "Full-time",
		Experience:  "2-4 years",
		Description: "Drive our online presence through social media and digital campaigns.",
	},
}

// Perk is a reason to join, shown above the openings.
type Perk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Perks are the fixed employee benefits.
var Perks = []Perk{
	{Title: "Health Benefits", Description: "Comprehensive health insurance for you and family"},
	{Title: "Growth Opportunities", Description: "Clear career progression paths"},
	{Title: "Great Team", Description: "Work with passionate professionals"},
	{Title: "Recognition", Description: "Performance bonuses and rewards"},
}

// ResumeSubject is the subject of the general application e-mail.
const ResumeSubject = "Job Application - General"

// Position is an opening together with its apply link.
type Position struct {
	domain.JobOpening
	ApplyLink string `json:"applyLink"`
}

// Page is everything the careers page renders.
type Page struct {
	Perks      []Perk     `json:"perks"`
	Positions  []Position `json:"positions"`
	ResumeLink string     `json:"resumeLink"`
}

// Build assembles the careers page for the current settings.
func Build(s domain.SiteSettings) Page {
	positions := make([]Position, 0, len(Openings))
	for _, o := range Openings {
		positions = append(positions, Position{
			JobOpening: o,
			ApplyLink:  links.WhatsApp(s, links.ApplicationMessage(o)),
		})
	}
	return Page{
		Perks:      Perks,
		Positions:  positions,
		ResumeLink: links.Mail(links.CareerEmail(s), ResumeSubject),
	}
}
