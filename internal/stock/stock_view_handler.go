package stock

import (
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type InventoryStockRow struct {
	MaterialID   uint                `json:"material_id"`
	MaterialName string              `json:"material_name"`
	CodeName     string              `json:"code_name,omitempty"`
	Type         models.MaterialType `json:"type"`
	Unit         string              `json:"unit"`
	Quantity     float64             `json:"quantity"`
	Status       StockStatus         `json:"status"`
}

// GET /api/inventories/:id/stock
// Kişisel depo görünümü: her malzemenin bu depodaki kesime girmemiş miktarı.
// Miktar, malzemenin wire dağılımı üzerinden okunur; dağılımda olmayan depo 0 görür.
func InventoryStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var materials []models.Material
		if err := database.DB.
			Preload("Stocks.Inventory").
			Order("name asc").
			Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzemeler listelenemedi")
		}

		rows := make([]InventoryStockRow, 0, len(materials))
		for i := range materials {
			m := &materials[i]
			dist := DistributionFor(m, m.Stocks)
			qty := dist.QuantityFor(inv.Name)

			rows = append(rows, InventoryStockRow{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				CodeName:     m.CodeName,
				Type:         m.Type,
				Unit:         m.Unit,
				Quantity:     qty,
				Status:       Classify(qty, m.MinThreshold),
			})
		}

		return c.JSON(fiber.Map{
			"inventory_id":   inv.ID,
			"inventory_name": inv.Name,
			"rows":           rows,
		})
	}
}
