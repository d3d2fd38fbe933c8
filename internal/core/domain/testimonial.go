package domain

import "time"

// Testimonial is a quote from a customer. Only active testimonials appear in
// the public listing; the admin listing returns all of them.
type Testimonial struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	ClientID  string    `gorm:"size:36;not null;index" json:"client_id"`
	Client    *User     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Quote     string    `gorm:"type:text;not null" json:"quote"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string { return "testimonials" }
