package stock

import (
	"fmt"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePurchaseRequest struct {
	MaterialID  uint    `json:"material_id"`
	InventoryID *uint   `json:"inventory_id"` // super_admin için
	Quantity    float64 `json:"quantity"`     // AREAL: levha adedi
	Note        string  `json:"note"`
}

// POST /api/purchases
// Depoya stok girişi. AREAL malzemede giren her levha için tek tek takip edilen
// ArealPiece kaydı açılır (started=finished=false, kesim dosyası yok).
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.MaterialID == 0 || body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "material_id zorunlu, quantity 0'dan büyük olmalı")
		}

		inventoryID, err := auth.ResolveInventoryID(c, body.InventoryID)
		if err != nil {
			return err
		}

		var material models.Material
		if err := database.DB.First(&material, "id = ?", body.MaterialID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Malzeme bulunamadı")
		}

		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", inventoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Depo bulunamadı (ID: %d)", inventoryID))
		}

		sheetCount := 0
		if material.Type == models.MaterialAreal {
			// Levha adedi tam sayı olmalı
			sheetCount = int(body.Quantity)
			if float64(sheetCount) != body.Quantity {
				return fiber.NewError(fiber.StatusBadRequest, "AREAL malzemede quantity tam levha adedi olmalı")
			}
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var stock models.InventoryStock
			res := tx.Where("material_id = ? AND inventory_id = ?", material.ID, inventoryID).
				First(&stock)
			if res.Error != nil {
				stock = models.InventoryStock{MaterialID: material.ID, InventoryID: inventoryID}
			}

			stock.Total += body.Quantity
			stock.Unstarted += body.Quantity

			if err := tx.Save(&stock).Error; err != nil {
				return err
			}

			if material.Type == models.MaterialAreal {
				var existing int64
				tx.Model(&models.ArealPiece{}).Where("material_id = ?", material.ID).Count(&existing)

				prefix := material.CodeName
				if prefix == "" {
					prefix = "LEVHA"
				}

				for i := 0; i < sheetCount; i++ {
					piece := models.ArealPiece{
						MaterialID:  material.ID,
						InventoryID: inventoryID,
						Code:        fmt.Sprintf("%s-%d", prefix, existing+int64(i)+1),
						Width:       *material.Width,
						Height:      *material.Height,
					}
					if err := tx.Create(&piece).Error; err != nil {
						return err
					}
				}
			}

			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok girişi kaydedilemedi")
		}

		// Audit log
		userID, userName, uerr := auth.UserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				InventoryID: &inventoryID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "purchase",
				EntityID:    material.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Stok girişi: %s - %.2f %s (%s)", material.Name, body.Quantity, material.Unit, inv.Name),
				Before:      nil,
				After:       body,
			})
		}

		// Güncel dağılımı döndür
		var fresh models.Material
		if err := database.DB.Preload("Stocks.Inventory").First(&fresh, material.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme okunamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(&fresh))
	}
}
