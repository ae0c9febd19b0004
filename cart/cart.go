// Package cart holds one shopper session's cart. The service is constructed
// once by the session shell and passed by reference; it never lives in global
// state. Every mutation is mirrored to the session's durable store on a
// best-effort basis — the in-memory lines stay authoritative if the store
// misbehaves.
package cart

import (
	"github.com/rs/zerolog/log"

	"github.com/dwarkawear/storefront-api/orders"
)

// LineItem is one (product, size, color) selection with display fields
// captured at add-time.
type LineItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	PriceNPR  float64 `json:"priceNPR"`
	PriceUSD  float64 `json:"priceUSD"`
}

type lineKey struct {
	productID uint
	size      string
	color     string
}

func (i LineItem) key() lineKey {
	return lineKey{i.ProductID, i.Size, i.Color}
}

// Store persists cart lines between sessions.
type Store interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
}

type Service struct {
	store Store
	items []LineItem
}

// NewService rehydrates the cart from the store. An unreadable or corrupt
// store starts the session with an empty cart rather than failing.
func NewService(store Store) *Service {
	s := &Service{store: store}
	if store != nil {
		items, err := store.Load()
		if err != nil {
			log.Warn().Err(err).Msg("cart: stored cart unreadable, starting empty")
			items = nil
		}
		s.items = items
	}
	return s
}

// AddItem inserts a line, or merges into an existing line with the same
// (product, size, color) key by adding the incoming quantity.
func (s *Service) AddItem(item LineItem) {
	key := item.key()
	for i := range s.items {
		if s.items[i].key() == key {
			s.items[i].Quantity += item.Quantity
			s.persist()
			return
		}
	}
	s.items = append(s.items, item)
	s.persist()
}

// RemoveItem deletes the matching line. A missing key is a no-op.
func (s *Service) RemoveItem(productID uint, size, color string) {
	key := lineKey{productID, size, color}
	for i := range s.items {
		if s.items[i].key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// UpdateQuantity replaces a line's quantity. Quantities below one are
// ignored: dropping a line is RemoveItem's job, never a decrement side
// effect.
func (s *Service) UpdateQuantity(productID uint, size, color string, quantity int) {
	if quantity < 1 {
		return
	}
	key := lineKey{productID, size, color}
	for i := range s.items {
		if s.items[i].key() == key {
			s.items[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Clear empties the cart. Called once, after an order submission succeeds.
func (s *Service) Clear() {
	s.items = nil
	s.persist()
}

func (s *Service) Items() []LineItem {
	return append([]LineItem(nil), s.items...)
}

func (s *Service) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Service) TotalNPR() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.PriceNPR * float64(item.Quantity)
	}
	return total
}

func (s *Service) TotalUSD() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.PriceUSD * float64(item.Quantity)
	}
	return total
}

// CheckoutPayload assembles the order submission for the current cart.
func (s *Service) CheckoutPayload(customerName, customerEmail string, address orders.AddressInput) orders.CreateInput {
	in := orders.CreateInput{
		TotalNPR:        s.TotalNPR(),
		TotalUSD:        s.TotalUSD(),
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		ShippingAddress: address,
	}
	for _, item := range s.items {
		in.Items = append(in.Items, orders.ItemInput{
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
	return in
}

func (s *Service) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(append([]LineItem(nil), s.items...)); err != nil {
		// The session cart stays authoritative; a dead store only costs
		// persistence across restarts.
		log.Warn().Err(err).Msg("cart: failed to persist cart")
	}
}
