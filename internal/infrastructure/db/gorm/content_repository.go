package gormdb

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// TestimonialRepository persists testimonials.
type TestimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*domain.Testimonial, error) {
	var t domain.Testimonial
	if err := r.db.WithContext(ctx).Preload("Client").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTestimonialNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepository) List(ctx context.Context, f ports.TestimonialFilter) ([]*domain.Testimonial, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Testimonial{})

	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.Testimonial
	err := q.Preload("Client").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *TestimonialRepository) Update(ctx context.Context, t *domain.Testimonial) error {
	return r.db.WithContext(ctx).Omit("Client").Save(t).Error
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Testimonial{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

// PortfolioRepository persists the public catalog.
type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) Create(ctx context.Context, p *domain.PortfolioProject) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PortfolioRepository) FindByID(ctx context.Context, id string) (*domain.PortfolioProject, error) {
	var p domain.PortfolioProject
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PortfolioRepository) List(ctx context.Context, f ports.PortfolioFilter) ([]*domain.PortfolioProject, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.PortfolioProject{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(tags) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.PortfolioProject
	err := q.Order("featured DESC, created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PortfolioRepository) Update(ctx context.Context, p *domain.PortfolioProject) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.PortfolioProject{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

// SiteConfigRepository persists the singleton configuration row.
type SiteConfigRepository struct {
	db *gorm.DB
}

func NewSiteConfigRepository(db *gorm.DB) *SiteConfigRepository {
	return &SiteConfigRepository{db: db}
}

// Get returns the singleton row, creating an empty one on first read so the
// public site always has something to render.
func (r *SiteConfigRepository) Get(ctx context.Context) (*domain.SiteConfiguration, error) {
	var cfg domain.SiteConfiguration
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", domain.SiteConfigID).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cfg = domain.SiteConfiguration{ID: domain.SiteConfigID}
	if err := r.db.WithContext(ctx).Create(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *SiteConfigRepository) Save(ctx context.Context, cfg *domain.SiteConfiguration) error {
	cfg.ID = domain.SiteConfigID
	return r.db.WithContext(ctx).Save(cfg).Error
}

// ContactRepository persists contact-form submissions.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, s *domain.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ContactRepository) List(ctx context.Context, f ports.ContactFilter) ([]*domain.ContactSubmission, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ContactSubmission{})

	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.ContactSubmission
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.ContactSubmission{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}
