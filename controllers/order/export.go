package ordercontroller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"

	"github.com/dwarkawear/storefront-api/models"
	"github.com/dwarkawear/storefront-api/orders"
)

// GET /admin/orders/export — streams every order as an Excel workbook.
func ExportOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := svc.All(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("order: export listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			log.Error().Err(err).Msg("order: export sheet creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export orders"})
			return
		}

		headers := []string{
			"ID", "Reference", "UserID", "Status", "CustomerName", "CustomerEmail",
			"TotalNPR", "TotalUSD", "Items", "City", "Country", "Phone", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range all {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(order.ID))
			row.AddCell().SetValue(order.Reference)
			row.AddCell().SetValue(order.UserID)
			row.AddCell().SetValue(string(order.Status))
			row.AddCell().SetValue(order.CustomerName)
			row.AddCell().SetValue(order.CustomerEmail)
			row.AddCell().SetValue(order.TotalNPR)
			row.AddCell().SetValue(order.TotalUSD)
			row.AddCell().SetValue(itemSummary(order.Items))
			row.AddCell().SetValue(order.ShippingAddress.City)
			row.AddCell().SetValue(order.ShippingAddress.Country)
			row.AddCell().SetValue(order.ShippingAddress.Phone)
			row.AddCell().SetValue(order.CreatedAt.Format(time.RFC3339))
		}

		c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			log.Error().Err(err).Msg("order: export write failed")
		}
	}
}

func itemSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d (%s/%s)", item.Slug, item.Quantity, item.Size, item.Color))
	}
	return strings.Join(parts, "; ")
}
