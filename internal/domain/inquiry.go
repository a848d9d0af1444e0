package domain

// BulkOrderInquiry is a wholesale lead submitted from the bulk-order form.
// It is create-only.
type BulkOrderInquiry struct {
	Name        string `json:"name" validate:"required,max=255"`
	Company     string `json:"company,omitempty" validate:"max=255"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"required,max=32"`
	ProductType string `json:"productType" validate:"required"`
	Quantity    string `json:"quantity" validate:"required,max=64"`
	Message     string `json:"message,omitempty" validate:"max=4000"`
}
