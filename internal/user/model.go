package user

import "pawmart-web/internal/order"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SessionUser is who the backend says is logged in.
type SessionUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Profile struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Role    Role   `json:"role,omitempty"`

	// DeliveryDetails is set once the user saved details "for future orders".
	DeliveryDetails *order.DeliveryDetails `json:"deliveryDetails,omitempty"`
}

// DeliveryPrefill derives the initial checkout form: saved delivery details
// when present, otherwise the top-level name/address/phone with city and
// postal code left blank.
func (p *Profile) DeliveryPrefill() order.DeliveryDetails {
	if p == nil {
		return order.DeliveryDetails{}
	}
	if p.DeliveryDetails != nil {
		return *p.DeliveryDetails
	}
	return order.DeliveryDetails{
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
	}
}

type UpdateProfileParams struct {
	Name            *string                `json:"name,omitempty"`
	Address         *string                `json:"address,omitempty"`
	Phone           *string                `json:"phone,omitempty"`
	DeliveryDetails *order.DeliveryDetails `json:"deliveryDetails,omitempty"`
}
