package domain

// JobOpening is a position listed on the careers page.
type JobOpening struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Experience  string `json:"experience"`
	Description string `json:"description"`
}
