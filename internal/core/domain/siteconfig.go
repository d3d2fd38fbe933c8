package domain

import "time"

// SiteConfigID is the fixed identifier of the singleton configuration row.
const SiteConfigID = "main"

// SiteConfiguration holds the editable public-site text. One row, fixed id;
// publicly readable, admin-writable.
type SiteConfiguration struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	HeroTitle    string    `gorm:"size:200" json:"hero_title"`
	HeroSubtitle string    `gorm:"size:300" json:"hero_subtitle"`
	AboutText    string    `gorm:"type:text" json:"about_text"`
	ContactEmail string    `gorm:"size:254" json:"contact_email"`
	GithubURL    string    `gorm:"size:500" json:"github_url,omitempty"`
	LinkedinURL  string    `gorm:"size:500" json:"linkedin_url,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SiteConfiguration) TableName() string { return "site_configurations" }

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Email     string    `gorm:"size:254;not null" json:"email"`
	Company   string    `gorm:"size:120" json:"company,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }
