package domain

import "time"

// Role is the closed set of roles an authenticated user can hold.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User models an account in the portal: either the admin (the freelancer) or
// a customer who owns projects, invoices and testimonials.
type User struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Company      string    `gorm:"size:120" json:"company,omitempty"`
	Phone        string    `gorm:"size:40" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:120;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
