package orders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dwarkawear/storefront-api/models"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return NewService(db)
}

func validInput() CreateInput {
	return CreateInput{
		Items: []ItemInput{
			{
				ProductID: 1,
				Name:      "Himalayan Hemp Kurta",
				Slug:      "himalayan-hemp-kurta",
				Image:     "https://media.example.com/kurta.jpg",
				Size:      "M",
				Color:     "Natural",
				Quantity:  2,
				PriceNPR:  8500,
				PriceUSD:  64,
			},
		},
		TotalNPR:      17000,
		TotalUSD:      128,
		CustomerName:  "Asha Shrestha",
		CustomerEmail: "asha@example.com",
		ShippingAddress: AddressInput{
			Street:  "12 Thamel Marg",
			City:    "Kathmandu",
			Country: "Nepal",
			Phone:   "+977-9800000000",
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc := setupService(t)

	order, err := svc.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 8500.0, order.Items[0].PriceNPR)

	fetched, err := svc.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Reference, fetched.Reference)
	assert.Equal(t, "Kathmandu", fetched.ShippingAddress.City)
}

func TestCreateAcceptsSubmittedTotalsVerbatim(t *testing.T) {
	svc := setupService(t)

	// Totals deliberately disagree with quantity*price: the server must not
	// recompute them at creation time.
	in := validInput()
	in.TotalNPR = 99999
	in.TotalUSD = 1

	order, err := svc.Create(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, 99999.0, order.TotalNPR)
	assert.Equal(t, 1.0, order.TotalUSD)
}

func TestCreateValidation(t *testing.T) {
	svc := setupService(t)

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"no items", func(in *CreateInput) { in.Items = nil }},
		{"zero quantity", func(in *CreateInput) { in.Items[0].Quantity = 0 }},
		{"negative quantity", func(in *CreateInput) { in.Items[0].Quantity = -2 }},
		{"zero npr price", func(in *CreateInput) { in.Items[0].PriceNPR = 0 }},
		{"negative usd price", func(in *CreateInput) { in.Items[0].PriceUSD = -1 }},
		{"missing product reference", func(in *CreateInput) { in.Items[0].ProductID = 0 }},
		{"missing street", func(in *CreateInput) { in.ShippingAddress.Street = "" }},
		{"missing city", func(in *CreateInput) { in.ShippingAddress.City = "  " }},
		{"missing country", func(in *CreateInput) { in.ShippingAddress.Country = "" }},
		{"missing phone", func(in *CreateInput) { in.ShippingAddress.Phone = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), "user-1", in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateRequiresIdentity(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Create(context.Background(), "", validInput())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestStateAndPostalCodeAreOptional(t *testing.T) {
	svc := setupService(t)
	in := validInput()
	in.ShippingAddress.State = ""
	in.ShippingAddress.PostalCode = ""

	_, err := svc.Create(context.Background(), "user-1", in)
	assert.NoError(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "shipped", "delivered", "cancelled", "Shipped"} {
		_, err := ParseStatus(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseStatus("returned")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus(t *testing.T) {
	svc := setupService(t)
	order, err := svc.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	// Everything else stays untouched.
	assert.Equal(t, order.Reference, updated.Reference)
	assert.Equal(t, order.TotalNPR, updated.TotalNPR)
	assert.Equal(t, order.CustomerEmail, updated.CustomerEmail)
	require.Len(t, updated.Items, 1)

	fetched, err := svc.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, fetched.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := setupService(t)
	_, err := svc.UpdateStatus(context.Background(), 404, "confirmed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := setupService(t)
	order, err := svc.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, "lost-in-transit")
	assert.ErrorIs(t, err, ErrValidation)

	fetched, err := svc.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, fetched.Status, "a rejected update must leave the status unchanged")
}

func TestOrderSnapshotSurvivesCatalogChanges(t *testing.T) {
	svc := setupService(t)
	order, err := svc.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	// Simulate the catalog moving on after the sale.
	require.NoError(t, svc.db.AutoMigrate(&models.Product{}))
	product := &models.Product{
		ID:          1,
		Name:        "Himalayan Hemp Kurta",
		Slug:        "himalayan-hemp-kurta",
		Description: "The original cut.",
		PriceNPR:    8500,
		PriceUSD:    64,
		Category:    models.CategoryTops,
		Fabric:      models.FabricHemp,
	}
	require.NoError(t, svc.db.Create(product).Error)
	require.NoError(t, svc.db.Model(product).Updates(map[string]interface{}{"price_npr": 12000, "price_usd": 90}).Error)

	fetched, err := svc.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, fetched.Items[0].PriceNPR)
	assert.Equal(t, 17000.0, fetched.TotalNPR)
}

func TestByUserNewestFirst(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-1", validInput())
	require.NoError(t, err)
	// Force distinct creation times for a deterministic order.
	require.NoError(t, svc.db.Model(&models.Order{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := svc.Create(ctx, "user-1", validInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", validInput())
	require.NoError(t, err)

	mine, err := svc.ByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	require.Len(t, mine[0].Items, 1)

	none, err := svc.ByUser(ctx, "user-without-orders")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
