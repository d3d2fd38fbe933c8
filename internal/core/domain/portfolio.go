package domain

import (
	"strings"
	"time"
)

// PortfolioCategory is the closed catalog taxonomy.
type PortfolioCategory string

const (
	CategoryWeb    PortfolioCategory = "WEB"
	CategoryMobile PortfolioCategory = "MOBILE"
	CategoryAPI    PortfolioCategory = "API"
	CategoryCLI    PortfolioCategory = "CLI"
	CategoryOther  PortfolioCategory = "OTHER"
)

var PortfolioCategories = []PortfolioCategory{CategoryWeb, CategoryMobile, CategoryAPI, CategoryCLI, CategoryOther}

// ValidCategory matches an inbound value against the closed enumeration,
// case-insensitively, returning the canonical stored form.
func ValidCategory(s string) (PortfolioCategory, bool) {
	want := strings.ToUpper(s)
	for _, c := range PortfolioCategories {
		if string(c) == want {
			return c, true
		}
	}
	return "", false
}

// PortfolioProject is a public catalog entry, admin-writable.
type PortfolioProject struct {
	ID          string            `gorm:"primarykey;size:36" json:"id"`
	Title       string            `gorm:"size:160;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Category    PortfolioCategory `gorm:"type:varchar(20);not null" json:"category"`
	Tags        string            `gorm:"size:300" json:"tags,omitempty"`
	ImageURL    string            `gorm:"size:500" json:"image_url,omitempty"`
	LiveURL     string            `gorm:"size:500" json:"live_url,omitempty"`
	RepoURL     string            `gorm:"size:500" json:"repo_url,omitempty"`
	Featured    bool              `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (PortfolioProject) TableName() string { return "portfolio_projects" }
