// Package catalog owns product queries and catalog mutation. Filtering,
// sorting and pagination all happen in the database; every sort carries a
// secondary id ordering so ties keep stable insertion order.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/dwarkawear/storefront-api/models"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"

	DefaultLimit  = 20
	FeaturedLimit = 8
	RelatedLimit  = 4
)

var (
	ErrNotFound  = errors.New("catalog: product not found")
	ErrSlugTaken = errors.New("catalog: slug already in use")
)

// Filters is one catalog listing request. Category and fabric accept "all"
// (or empty) to mean unfiltered; search matches name or description
// case-insensitively.
type Filters struct {
	Category string
	Fabric   string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type Page struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of matching products. A page past the end yields an
// empty product list, not an error.
func (r *Repository) List(f Filters) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}

	query := r.db.Model(&models.Product{})
	if f.Category != "" && f.Category != "all" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Fabric != "" && f.Fabric != "all" {
		query = query.Where("fabric = ?", f.Fabric)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("catalog: count products: %w", err)
	}

	switch f.Sort {
	case SortPriceAsc:
		query = query.Order("price_npr ASC, id ASC")
	case SortPriceDesc:
		query = query.Order("price_npr DESC, id ASC")
	default:
		query = query.Order("created_at DESC, id DESC")
	}

	products := []models.Product{}
	offset := (f.Page - 1) * f.Limit
	if err := query.Offset(offset).Limit(f.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}

	return &Page{
		Products: products,
		Pagination: Pagination{
			Total: total,
			Page:  f.Page,
			Limit: f.Limit,
			Pages: int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}

func (r *Repository) BySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: fetch product %q: %w", slug, err)
	}
	return &product, nil
}

// Featured returns up to FeaturedLimit in-stock featured products, newest
// first.
func (r *Repository) Featured() ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.
		Where("featured = ? AND in_stock = ?", true, true).
		Order("created_at DESC, id DESC").
		Limit(FeaturedLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("catalog: featured products: %w", err)
	}
	return products, nil
}

// Related returns up to RelatedLimit in-stock products sharing a category,
// excluding the product being viewed.
func (r *Repository) Related(category models.Category, excludeSlug string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.
		Where("category = ? AND slug <> ? AND in_stock = ?", category, excludeSlug, true).
		Order("created_at DESC, id DESC").
		Limit(RelatedLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("catalog: related products: %w", err)
	}
	return products, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL identifier from a product name.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// Create inserts a product, deriving the slug from the name when absent.
// A colliding slug fails with ErrSlugTaken.
func (r *Repository) Create(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	taken, err := r.slugTaken(product.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("catalog: create product: %w", err)
	}
	return nil
}

// Update replaces a product's attributes, keeping its identity and creation
// time.
func (r *Repository) Update(id uint, updated *models.Product) (*models.Product, error) {
	var existing models.Product
	if err := r.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: fetch product %d: %w", id, err)
	}

	if updated.Slug == "" {
		updated.Slug = Slugify(updated.Name)
	}
	taken, err := r.slugTaken(updated.Slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := r.db.Save(updated).Error; err != nil {
		return nil, fmt.Errorf("catalog: update product %d: %w", id, err)
	}
	return updated, nil
}

func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("catalog: delete product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) slugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("catalog: check slug %q: %w", slug, err)
	}
	return count > 0, nil
}
