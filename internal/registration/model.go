package registration

import "fmt"

// Role selects which step-2 detail set a registrant must provide.
type Role string

const (
	// RoleFarmer registers a selling farm with a pickup location.
	RoleFarmer Role = "Farmer"
	// RoleBuyer registers a purchasing account with a delivery address.
	RoleBuyer Role = "Buyer"
)

// ParseRole validates a role string coming from the step-1 form.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFarmer, RoleBuyer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IdentityInput carries the step-1 form fields.
type IdentityInput struct {
	FullName       string
	Email          string
	Phone          string
	Password       string
	RepeatPassword string
	Role           string
}

// Draft is the step-1 data held between the two form steps. The repeated
// password never enters the draft.
type Draft struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// DetailsInput carries the step-2 form fields. Which fields are required
// depends on the draft's role; the rest are ignored.
type DetailsInput struct {
	BusinessName       string
	StreetAddress      string
	DeliveryAddress    string
	District           string
	City               string
	Province           string
	ZipCode            string
	RegistrationNumber string
	Latitude           *float64
	Longitude          *float64
}

// Payload is the composite body submitted to the upstream registrar. Field
// names match the identity service's RegisterRequest DTO.
type Payload struct {
	FullName         string   `json:"fullname"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Password         string   `json:"password"`
	Role             Role     `json:"role"`
	BusinessName     string   `json:"businessName"`
	StreetAddress    string   `json:"streetAddress"`
	District         string   `json:"district"`
	ZipCode          string   `json:"zipcode"`
	Province         string   `json:"province,omitempty"`
	City             string   `json:"city,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	BusinessRegOrNic string   `json:"businessRegOrNic"`
}
