package stock

import (
	"fmt"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateTransferRequest struct {
	MaterialID      uint    `json:"material_id"`
	FromInventoryID uint    `json:"from_inventory_id"`
	ToInventoryID   uint    `json:"to_inventory_id"`
	Quantity        float64 `json:"quantity"`
}

// POST /api/transfers
// Depolar arası stok aktarımı. Sadece kesime girmemiş stok taşınabilir; kaynak
// depodaki miktar wire dağılımı üzerinden doğrulanır. Aktarım kaynak depoda
// TRANSFER sebepli bir çıkış kaydı üretir (çıkışlar asla silinmez).
func CreateTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.MaterialID == 0 || body.FromInventoryID == 0 || body.ToInventoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "material_id, from_inventory_id ve to_inventory_id zorunlu")
		}
		if body.FromInventoryID == body.ToInventoryID {
			return fiber.NewError(fiber.StatusBadRequest, "Kaynak ve hedef depo aynı olamaz")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity 0'dan büyük olmalı")
		}

		var material models.Material
		if err := database.DB.Preload("Stocks.Inventory").First(&material, "id = ?", body.MaterialID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Malzeme bulunamadı")
		}

		var fromInv, toInv models.Inventory
		if err := database.DB.First(&fromInv, "id = ?", body.FromInventoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kaynak depo bulunamadı")
		}
		if err := database.DB.First(&toInv, "id = ?", body.ToInventoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Hedef depo bulunamadı")
		}

		// Kaynak depodaki kullanılabilir miktar
		dist := DistributionFor(&material, material.Stocks)
		availableAtSource := dist.QuantityFor(fromInv.Name)
		if body.Quantity > availableAtSource {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Kaynak depoda yeterli stok yok (mevcut: %.2f)", availableAtSource))
		}

		sheetCount := 0
		if material.Type == models.MaterialAreal {
			sheetCount = int(body.Quantity)
			if float64(sheetCount) != body.Quantity {
				return fiber.NewError(fiber.StatusBadRequest, "AREAL malzemede quantity tam levha adedi olmalı")
			}
		}

		userID, userName, err := auth.UserInfo(c)
		if err != nil {
			return err
		}

		var transferRelease models.Release
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// Kaynaktan düş
			var from models.InventoryStock
			if err := tx.Where("material_id = ? AND inventory_id = ?", material.ID, fromInv.ID).
				First(&from).Error; err != nil {
				return err
			}
			from.Total -= body.Quantity
			from.Unstarted -= body.Quantity
			if err := tx.Save(&from).Error; err != nil {
				return err
			}

			// Hedefe ekle
			var to models.InventoryStock
			if err := tx.Where("material_id = ? AND inventory_id = ?", material.ID, toInv.ID).
				First(&to).Error; err != nil {
				to = models.InventoryStock{MaterialID: material.ID, InventoryID: toInv.ID}
			}
			to.Total += body.Quantity
			to.Unstarted += body.Quantity
			if err := tx.Save(&to).Error; err != nil {
				return err
			}

			// AREAL: kesilmemiş levhaları hedef depoya taşı
			if material.Type == models.MaterialAreal {
				var pieceIDs []uint
				if err := tx.Model(&models.ArealPiece{}).
					Where("material_id = ? AND inventory_id = ? AND started = false AND finished = false",
						material.ID, fromInv.ID).
					Order("id asc").
					Limit(sheetCount).
					Pluck("id", &pieceIDs).Error; err != nil {
					return err
				}
				if len(pieceIDs) < sheetCount {
					return fmt.Errorf("kaynak depoda %d kesilmemiş levha var, %d istendi", len(pieceIDs), sheetCount)
				}
				if err := tx.Model(&models.ArealPiece{}).
					Where("id IN ?", pieceIDs).
					Update("inventory_id", toInv.ID).Error; err != nil {
					return err
				}
			}

			// Kaynak depoda TRANSFER sebepli çıkış kaydı
			transferRelease = models.Release{
				MaterialID:  material.ID,
				InventoryID: fromInv.ID,
				Reason:      models.ReleaseReasonTransfer,
				Amount:      decimal.NewFromFloat(body.Quantity),
				Confirmed:   true,
				CreatedBy:   userID,
			}
			return tx.Create(&transferRelease).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transfer kaydedilemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			InventoryID: &fromInv.ID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transfer",
			EntityID:    transferRelease.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Transfer: %s - %.2f %s (%s -> %s)",
				material.Name, body.Quantity, material.Unit, fromInv.Name, toInv.Name),
			Before: nil,
			After:  body,
		})

		var fresh models.Material
		if err := database.DB.Preload("Stocks.Inventory").First(&fresh, material.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme okunamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(&fresh))
	}
}
