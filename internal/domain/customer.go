package domain

import "time"

type Customer struct {
	ID          int32     `json:"id"`
	Phone       string    `json:"phone"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	QRCode      string    `json:"qr_code"`
	DeviceToken string    `json:"-"`
	IsMobile    bool      `json:"is_mobile"`
	CreatedOn   time.Time `json:"created_on"`
}

// FullName returns "first last", or an empty string for auto-provisioned
// customers that never completed a profile.
func (c *Customer) FullName() string {
	if c.FirstName == "" && c.LastName == "" {
		return ""
	}
	return c.FirstName + " " + c.LastName
}

// HasProfile reports whether the customer signed up on the mobile app, as
// opposed to being provisioned on first contact at a point of sale.
func (c *Customer) HasProfile() bool {
	return c.FirstName != "" || c.LastName != ""
}
