package release

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/config"
	"atolye-backend/internal/database"
	"atolye-backend/internal/metrics"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POST /api/orders/:code/additional-release
// Siparişe ek malzeme çıkışı. Multipart: "releases" alanı JSON kalem listesi,
// "proofImage" opsiyonel dosya. LENGTH kalemlerinin toplamı 0.5 metreyi aşıyorsa
// kanıt fotoğrafı olmadan istek reddedilir; kanıtlı çıkışlar onay bekler
// (confirmed=false), küçük çıkışlar anında onaylıdır.
func AdditionalReleaseHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderCode := c.Params("code")

		var order models.Order
		if err := database.DB.First(&order, "code = ?", orderCode).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		releasesJSON := c.FormValue("releases")
		if releasesJSON == "" {
			return fiber.NewError(fiber.StatusBadRequest, "releases alanı zorunlu")
		}

		var drafts []ReleaseDraft
		if err := json.Unmarshal([]byte(releasesJSON), &drafts); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "releases alanı geçerli JSON listesi olmalı")
		}
		if len(drafts) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir kalem eklenmelidir")
		}

		// Malzeme tiplerini yükle ve kalemleri doğrula
		materials := make(map[uint]models.Material, len(drafts))
		for i := range drafts {
			d := &drafts[i]
			if d.MaterialID == 0 || d.InventoryID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Her kalem için material_id ve inventory_id zorunlu")
			}
			if d.Amount.IsZero() || d.Amount.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Her kalem için amount 0'dan büyük olmalı")
			}

			mat, ok := materials[d.MaterialID]
			if !ok {
				if err := database.DB.First(&mat, "id = ?", d.MaterialID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Malzeme bulunamadı (ID: %d)", d.MaterialID))
				}
				materials[d.MaterialID] = mat
			}
			d.MaterialType = mat.Type
		}

		// Kanıt politikası: 0.5 metrenin üzerindeki toplam LENGTH çıkışı fotoğraf ister
		requiresProof := RequiresProof(drafts)

		proofPath := ""
		fileHeader, ferr := c.FormFile("proofImage")
		if requiresProof && ferr != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Toplam uzunluk %s m: kanıt fotoğrafı zorunlu", TotalLengthAmount(drafts).String()))
		}
		if ferr == nil {
			if err := os.MkdirAll(cfg.ProofImagePath, 0o755); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kanıt klasörü oluşturulamadı")
			}
			ext := filepath.Ext(fileHeader.Filename)
			proofPath = filepath.Join(cfg.ProofImagePath, uuid.NewString()+ext)
			if err := c.SaveFile(fileHeader, proofPath); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kanıt fotoğrafı kaydedilemedi")
			}
		}

		userID, userName, err := auth.UserInfo(c)
		if err != nil {
			return err
		}

		var created []models.Release
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for _, d := range drafts {
				amountF := d.Amount.InexactFloat64()

				var stock models.InventoryStock
				if err := tx.Where("material_id = ? AND inventory_id = ?", d.MaterialID, d.InventoryID).
					First(&stock).Error; err != nil {
					return fmt.Errorf("%s için bu depoda stok kaydı yok", materials[d.MaterialID].Name)
				}
				if stock.Unstarted < amountF {
					return fmt.Errorf("%s için yetersiz stok (mevcut: %.2f)", materials[d.MaterialID].Name, stock.Unstarted)
				}

				stock.Unstarted -= amountF
				stock.Total -= amountF
				if err := tx.Save(&stock).Error; err != nil {
					return err
				}

				rel := models.Release{
					MaterialID:  d.MaterialID,
					InventoryID: d.InventoryID,
					OrderCode:   order.Code,
					Reason:      models.ReleaseReasonOrder,
					Amount:      d.Amount,
					Confirmed:   !requiresProof, // kanıtlı çıkışlar onay bekler
					ProofImage:  proofPath,
					CreatedBy:   userID,
				}
				if err := tx.Create(&rel).Error; err != nil {
					return err
				}
				created = append(created, rel)
			}
			return nil
		})
		if err != nil {
			// Yarım kalan işlemde kaydedilmiş kanıt dosyasını bırakma
			if proofPath != "" {
				_ = os.Remove(proofPath)
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := make([]ReleaseResponse, 0, len(created))
		for i := range created {
			rel := &created[i]
			metrics.ReleasesCreated.Inc()

			_ = audit.WriteLog(audit.LogOptions{
				InventoryID: &rel.InventoryID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "release",
				EntityID:    rel.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ek çıkış (%s): %s - %s", order.Code,
					materials[rel.MaterialID].Name, rel.Amount.String()),
				Before: nil,
				After:  rel,
			})

			rel.Material = materials[rel.MaterialID]
			res = append(res, toReleaseResponse(rel))
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"order_code":     order.Code,
			"requires_proof": requiresProof,
			"releases":       res,
		})
	}
}
