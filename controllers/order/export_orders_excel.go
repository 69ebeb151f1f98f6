package orderControllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/junaidrashid-git/biryani-house/orders"
	"github.com/tealeg/xlsx"
)

var orderSheetHeaders = []string{
	"ID", "UserID", "CustomerName", "CustomerPhone", "DeliveryAddress",
	"Items", "Quantity", "TotalAmount", "PaymentMethod", "Status", "CreatedAt",
}

// GET /admin/orders/export-excel
func ExportOrdersToExcel(store orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file, err := buildOrdersWorkbook(list)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func buildOrdersWorkbook(list []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range orderSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range list {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerPhone)
		row.AddCell().SetValue(o.DeliveryAddress)
		row.AddCell().SetValue(describeItems(o.Items))
		row.AddCell().SetValue(o.Quantity)
		row.AddCell().SetValue(o.TotalAmount)
		row.AddCell().SetValue(string(o.PaymentMethod))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// describeItems renders lines as "2x Biriyanis (Dum); 1x Thalis (Wings)".
func describeItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s (%s)", it.Quantity, it.Name, it.PreparationType))
	}
	return strings.Join(parts, "; ")
}
