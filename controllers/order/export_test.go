package ordercontroller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dwarkawear/storefront-api/models"
	"github.com/dwarkawear/storefront-api/orders"
)

func setupExportService(t *testing.T) *orders.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return orders.NewService(db)
}

func exportRequest(t *testing.T, svc *orders.Service) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders/export", ExportOrders(svc))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil))
	return rec
}

func TestExportOrdersWorkbook(t *testing.T) {
	svc := setupExportService(t)

	order, err := svc.Create(context.Background(), "user-1", orders.CreateInput{
		Items: []orders.ItemInput{
			{
				ProductID: 1,
				Name:      "Himalayan Hemp Kurta",
				Slug:      "himalayan-hemp-kurta",
				Size:      "M",
				Color:     "Natural",
				Quantity:  2,
				PriceNPR:  8500,
				PriceUSD:  64,
			},
			{
				ProductID: 2,
				Name:      "Linen Wrap Dress",
				Slug:      "linen-wrap-dress",
				Size:      "S",
				Color:     "Sand",
				Quantity:  1,
				PriceNPR:  12000,
				PriceUSD:  90,
			},
		},
		TotalNPR:      29000,
		TotalUSD:      218,
		CustomerName:  "Asha Shrestha",
		CustomerEmail: "asha@example.com",
		ShippingAddress: orders.AddressInput{
			Street:  "12 Thamel Marg",
			City:    "Kathmandu",
			Country: "Nepal",
			Phone:   "+977-9800000000",
		},
	})
	require.NoError(t, err)

	rec := exportRequest(t, svc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="orders.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))

	workbook, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, workbook.Sheets, 1)

	sheet := workbook.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 2, "one header row plus one order row")

	header := sheet.Rows[0]
	assert.Equal(t, "ID", header.Cells[0].String())
	assert.Equal(t, "Reference", header.Cells[1].String())
	assert.Equal(t, "Items", header.Cells[8].String())

	row := sheet.Rows[1]
	assert.Equal(t, order.Reference, row.Cells[1].String())
	assert.Equal(t, "user-1", row.Cells[2].String())
	assert.Equal(t, "pending", row.Cells[3].String())
	assert.Equal(t, "Asha Shrestha", row.Cells[4].String())
	assert.Equal(t, "himalayan-hemp-kurta x2 (M/Natural); linen-wrap-dress x1 (S/Sand)",
		row.Cells[8].String())
	assert.Equal(t, "Kathmandu", row.Cells[9].String())
}

func TestExportOrdersEmpty(t *testing.T) {
	svc := setupExportService(t)

	rec := exportRequest(t, svc)
	require.Equal(t, http.StatusOK, rec.Code)

	workbook, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, workbook.Sheets, 1)
	assert.Len(t, workbook.Sheets[0].Rows, 1, "header row only")
}
