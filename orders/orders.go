// Package orders persists checkout submissions and governs the order status
// lifecycle. A submitted cart is snapshotted verbatim: line prices and totals
// are validated for shape but never recomputed from the live catalog, so
// later product edits can't rewrite history.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dwarkawear/storefront-api/models"
)

var (
	ErrNotFound        = errors.New("orders: order not found")
	ErrValidation      = errors.New("orders: invalid order")
	ErrUnauthenticated = errors.New("orders: missing user identity")
)

// ItemInput is one submitted cart line.
type ItemInput struct {
	ProductID uint    `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Slug      string  `json:"slug" binding:"required"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	PriceNPR  float64 `json:"priceNPR" binding:"required,gt=0"`
	PriceUSD  float64 `json:"priceUSD" binding:"required,gt=0"`
}

type AddressInput struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone" binding:"required"`
}

// CreateInput is a full checkout submission.
type CreateInput struct {
	Items           []ItemInput  `json:"items" binding:"required,min=1,dive"`
	TotalNPR        float64      `json:"totalNPR" binding:"required,gt=0"`
	TotalUSD        float64      `json:"totalUSD" binding:"required,gt=0"`
	CustomerName    string       `json:"customerName" binding:"required,min=2"`
	CustomerEmail   string       `json:"customerEmail" binding:"required,email"`
	ShippingAddress AddressInput `json:"shippingAddress" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ParseStatus maps a request string onto a known order status.
func ParseStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToLower(status)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusConfirmed:
		return models.OrderStatusConfirmed, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusDelivered:
		return models.OrderStatusDelivered, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: status: unknown order status %q", ErrValidation, status)
	}
}

// Create validates a checkout submission and persists it as a new order in
// status pending. Creation always enters the lifecycle at pending; admins
// confirm explicitly.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			PriceNPR:  item.PriceNPR,
			PriceUSD:  item.PriceUSD,
		})
	}

	order := &models.Order{
		Reference:     newReference(),
		UserID:        userID,
		Items:         items,
		TotalNPR:      in.TotalNPR,
		TotalUSD:      in.TotalUSD,
		Status:        models.OrderStatusPending,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		ShippingAddress: models.ShippingAddress{
			Street:     in.ShippingAddress.Street,
			City:       in.ShippingAddress.City,
			State:      in.ShippingAddress.State,
			Country:    in.ShippingAddress.Country,
			PostalCode: in.ShippingAddress.PostalCode,
			Phone:      in.ShippingAddress.Phone,
		},
	}

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("orders: failed to create order")
		return nil, fmt.Errorf("orders: create order: %w", err)
	}

	log.Info().
		Uint("order_id", order.ID).
		Str("reference", order.Reference).
		Str("user_id", userID).
		Float64("total_npr", order.TotalNPR).
		Msg("orders: order created")

	return order, nil
}

func validateInput(in CreateInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: items: order must contain at least one item", ErrValidation)
	}
	for i, item := range in.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity: must be at least 1", ErrValidation, i)
		}
		if item.PriceNPR <= 0 || item.PriceUSD <= 0 {
			return fmt.Errorf("%w: items[%d]: both prices must be positive", ErrValidation, i)
		}
		if item.ProductID == 0 {
			return fmt.Errorf("%w: items[%d].productId: missing product reference", ErrValidation, i)
		}
	}
	addr := in.ShippingAddress
	for field, value := range map[string]string{
		"street":  addr.Street,
		"city":    addr.City,
		"country": addr.Country,
		"phone":   addr.Phone,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: shippingAddress.%s: required", ErrValidation, field)
		}
	}
	return nil
}

// UpdateStatus overwrites an order's status. Any of the five known statuses
// may replace any other; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("orders: fetch order %d: %w", id, err)
	}

	previous := order.Status
	if err := s.db.WithContext(ctx).Model(&order).Update("status", parsed).Error; err != nil {
		return nil, fmt.Errorf("orders: update order %d status: %w", id, err)
	}
	order.Status = parsed

	log.Info().
		Uint("order_id", order.ID).
		Str("old_status", previous.String()).
		Str("new_status", parsed.String()).
		Msg("orders: status updated")

	return &order, nil
}

// ByUser returns the identity's orders, newest first. No orders is an empty
// slice, not an error.
func (s *Service) ByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("orders: list orders for user: %w", err)
	}
	return orders, nil
}

// All returns every order, newest first. Callers gate this behind the admin
// policy.
func (s *Service) All(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("orders: list all orders: %w", err)
	}
	return orders, nil
}

func (s *Service) ByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("orders: fetch order %d: %w", id, err)
	}
	return &order, nil
}

func newReference() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}
