package domain

import "time"

// ContactInquiry is a stored contact-form submission.
type ContactInquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInquiryInput is the contact-form payload. Fields are stored exactly
// as submitted.
type ContactInquiryInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10"`
	Service string `json:"service" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

var services = []string{
	"Mattresses",
	"Curtains",
	"Sofas",
	"Wallpapers",
	"PVC Flooring",
	"Carpets & Rugs",
	"Window Blinds",
	"Artificial Grass",
	"Other",
}

// Services returns the options offered by the contact form.
func Services() []string {
	out := make([]string, len(services))
	copy(out, services)
	return out
}

// IsKnownService reports whether s is one of Services. Unknown values are
// still accepted.
func IsKnownService(s string) bool {
	for _, known := range services {
		if s == known {
			return true
		}
	}
	return false
}
