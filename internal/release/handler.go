package release

import (
	"errors"
	"fmt"
	"sync"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/database"
	"atolye-backend/internal/metrics"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Aynı çıkış için eşzamanlı düzeltme isteklerini engelleyen in-flight kilidi
var (
	editMu       sync.Mutex
	editInFlight = make(map[uint]bool)
)

type CreateReleaseRequest struct {
	MaterialID  uint   `json:"material_id"`
	InventoryID *uint  `json:"inventory_id"` // super_admin için
	Reason      string `json:"reason"`
	Amount      string `json:"amount"` // decimal string
	OrderCode   string `json:"order_code"`
}

type EditRecordResponse struct {
	OldAmount  string `json:"old_amount"`
	NewAmount  string `json:"new_amount"`
	Delta      string `json:"delta"`
	EditorName string `json:"editor_name"`
	CreatedAt  string `json:"created_at"`
}

type ReleaseResponse struct {
	ID           uint                 `json:"id"`
	MaterialID   uint                 `json:"material_id"`
	MaterialName string               `json:"material_name"`
	InventoryID  uint                 `json:"inventory_id"`
	OrderCode    string               `json:"order_code,omitempty"`
	Reason       models.ReleaseReason `json:"reason"`
	Amount       string               `json:"amount"`
	Confirmed    bool                 `json:"confirmed"`
	ProofImage   string               `json:"proof_image,omitempty"`
	IsEdited     bool                 `json:"is_edited"`
	EditRecords  []EditRecordResponse `json:"edit_records,omitempty"`
	CreatedAt    string               `json:"created_at"`
}

func validReason(r models.ReleaseReason) bool {
	switch r {
	case models.ReleaseReasonOrder, models.ReleaseReasonAdd, models.ReleaseReasonMaintenance,
		models.ReleaseReasonSales, models.ReleaseReasonTransfer, models.ReleaseReasonWaste,
		models.ReleaseReasonDamaged:
		return true
	}
	return false
}

func toReleaseResponse(rel *models.Release) ReleaseResponse {
	resp := ReleaseResponse{
		ID:           rel.ID,
		MaterialID:   rel.MaterialID,
		MaterialName: rel.Material.Name,
		InventoryID:  rel.InventoryID,
		OrderCode:    rel.OrderCode,
		Reason:       rel.Reason,
		Amount:       rel.Amount.String(),
		Confirmed:    rel.Confirmed,
		ProofImage:   rel.ProofImage,
		IsEdited:     rel.IsEdited,
		CreatedAt:    rel.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, er := range rel.EditRecords {
		resp.EditRecords = append(resp.EditRecords, EditRecordResponse{
			OldAmount:  er.OldAmount.String(),
			NewAmount:  er.NewAmount.String(),
			Delta:      er.Delta.String(),
			EditorName: er.EditorName,
			CreatedAt:  er.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp
}

// GET /api/releases?material_id=1&inventory_id=1&reason=ORDER
func ListReleasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Release{}).
			Preload("Material").
			Preload("EditRecords", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			})

		if mid := c.QueryInt("material_id"); mid > 0 {
			dbq = dbq.Where("material_id = ?", mid)
		}
		if iid := c.QueryInt("inventory_id"); iid > 0 {
			dbq = dbq.Where("inventory_id = ?", iid)
		}
		if reason := c.Query("reason"); reason != "" {
			dbq = dbq.Where("reason = ?", reason)
		}
		if oc := c.Query("order_code"); oc != "" {
			dbq = dbq.Where("order_code = ?", oc)
		}

		var releases []models.Release
		if err := dbq.Order("created_at DESC").Limit(500).Find(&releases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çıkışlar listelenemedi")
		}

		res := make([]ReleaseResponse, 0, len(releases))
		for i := range releases {
			res = append(res, toReleaseResponse(&releases[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/releases
// Depodan malzeme çıkışı: stoktan düşer, audit log yazar
func CreateReleaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReleaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.MaterialID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "material_id zorunlu")
		}
		reason := models.ReleaseReason(body.Reason)
		if !validReason(reason) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çıkış sebebi")
		}
		if reason == models.ReleaseReasonOrder && body.OrderCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "ORDER sebepli çıkış için order_code zorunlu")
		}

		amount, err := parseAmount(body.Amount)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		inventoryID, err := auth.ResolveInventoryID(c, body.InventoryID)
		if err != nil {
			return err
		}

		var material models.Material
		if err := database.DB.First(&material, "id = ?", body.MaterialID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Malzeme bulunamadı")
		}

		userID, userName, err := auth.UserInfo(c)
		if err != nil {
			return err
		}

		amountF := amount.InexactFloat64()

		var rel models.Release
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var stock models.InventoryStock
			if err := tx.Where("material_id = ? AND inventory_id = ?", material.ID, inventoryID).
				First(&stock).Error; err != nil {
				return fmt.Errorf("bu depoda stok kaydı yok")
			}
			if stock.Unstarted < amountF {
				return fmt.Errorf("yetersiz stok (mevcut: %.2f)", stock.Unstarted)
			}

			stock.Unstarted -= amountF
			stock.Total -= amountF
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}

			rel = models.Release{
				MaterialID:  material.ID,
				InventoryID: inventoryID,
				OrderCode:   body.OrderCode,
				Reason:      reason,
				Amount:      amount,
				Confirmed:   true,
				CreatedBy:   userID,
			}
			return tx.Create(&rel).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		metrics.ReleasesCreated.Inc()

		_ = audit.WriteLog(audit.LogOptions{
			InventoryID: &inventoryID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "release",
			EntityID:    rel.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Çıkış: %s - %s %s (%s)", material.Name, amount.String(), material.Unit, reason),
			Before:      nil,
			After:       rel,
		})

		rel.Material = material
		return c.Status(fiber.StatusCreated).JSON(toReleaseResponse(&rel))
	}
}

type EditReleaseRequest struct {
	Amount string `json:"amount"`
}

// POST /api/releases/:id/edit
// Çıkış düzeltmesi. Tek yönlüdür: miktar yalnızca azalabilir; fark depoya iade edilir.
// X-Idempotency-Key başlığı taşıyan tekrar istekleri ikinci kez uygulanmaz.
func EditReleaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body EditReleaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var rel models.Release
		if err := database.DB.Preload("Material").
			Preload("EditRecords", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			First(&rel, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çıkış kaydı bulunamadı")
		}

		// Idempotency: aynı anahtarla gelen istek daha önce uygulandıysa mevcut hali döndür
		idemKey := c.Get("X-Idempotency-Key")
		if idemKey != "" {
			var prior int64
			database.DB.Model(&models.ReleaseEditRecord{}).
				Where("release_id = ? AND idempotency_key = ?", rel.ID, idemKey).
				Count(&prior)
			if prior > 0 {
				return c.JSON(toReleaseResponse(&rel))
			}
		}

		// Aynı çıkış için eşzamanlı düzeltmeyi reddet
		editMu.Lock()
		if editInFlight[rel.ID] {
			editMu.Unlock()
			return fiber.NewError(fiber.StatusConflict, "Bu çıkış için bir düzeltme zaten işleniyor")
		}
		editInFlight[rel.ID] = true
		editMu.Unlock()
		defer func() {
			editMu.Lock()
			delete(editInFlight, rel.ID)
			editMu.Unlock()
		}()

		intent, err := ProposeCorrection(&rel, body.Amount)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidNumber):
				metrics.CorrectionsRejected.WithLabelValues("invalid_number").Inc()
			case errors.Is(err, ErrNegativeAmount):
				metrics.CorrectionsRejected.WithLabelValues("negative_amount").Inc()
			case errors.Is(err, ErrNoChange):
				metrics.CorrectionsRejected.WithLabelValues("no_change").Inc()
			case errors.Is(err, ErrIncreaseNotAllowed):
				metrics.CorrectionsRejected.WithLabelValues("increase_not_allowed").Inc()
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, userName, err := auth.UserInfo(c)
		if err != nil {
			return err
		}

		before := toReleaseResponse(&rel)
		deltaF := intent.Delta.InexactFloat64()

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// Fark depoya iade edilir
			var stock models.InventoryStock
			if err := tx.Where("material_id = ? AND inventory_id = ?", rel.MaterialID, rel.InventoryID).
				First(&stock).Error; err != nil {
				stock = models.InventoryStock{MaterialID: rel.MaterialID, InventoryID: rel.InventoryID}
			}
			stock.Unstarted += deltaF
			stock.Total += deltaF
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}

			rel.Amount = intent.NewAmount
			rel.IsEdited = true
			if err := tx.Save(&rel).Error; err != nil {
				return err
			}

			record := models.ReleaseEditRecord{
				ReleaseID:      rel.ID,
				OldAmount:      intent.OldAmount,
				NewAmount:      intent.NewAmount,
				Delta:          intent.Delta,
				EditedBy:       userID,
				EditorName:     userName,
				IdempotencyKey: idemKey,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			rel.EditRecords = append(rel.EditRecords, record)
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Düzeltme kaydedilemedi")
		}

		metrics.CorrectionsApplied.Inc()

		after := toReleaseResponse(&rel)
		_ = audit.WriteLog(audit.LogOptions{
			InventoryID: &rel.InventoryID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "release",
			EntityID:    rel.ID,
			Action:      models.AuditActionCorrect,
			Description: fmt.Sprintf("Çıkış düzeltmesi: %s, %s -> %s (iade: %s)",
				rel.Material.Name, intent.OldAmount.String(), intent.NewAmount.String(), intent.Delta.String()),
			Before: before,
			After:  after,
		})

		return c.JSON(after)
	}
}
