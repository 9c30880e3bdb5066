package stock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/config"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POST /api/pieces/:id/cuts
// Levhaya kesim kaydı ekler. Multipart: "status" zorunlu etiket, "date" opsiyonel
// (YYYY-AA-GG, varsayılan bugün), "orders" virgülle sipariş kodları, "finished"
// levhayı bitmiş sayar; "image" ve "crv3d" opsiyonel dosyalar. İlk kesim levhayı
// started yapar ve depo sayaçlarını unstarted -> started kaydırır; bitmiş levhaya
// yeni kesim eklenemez.
func CreateCuttingFileHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var piece models.ArealPiece
		if err := database.DB.Preload("Material").First(&piece, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Levha bulunamadı")
		}
		if piece.Finished {
			return fiber.NewError(fiber.StatusBadRequest, "Bitmiş levhaya kesim eklenemez")
		}

		status := strings.TrimSpace(c.FormValue("status"))
		if status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status alanı zorunlu")
		}

		date := time.Now()
		if ds := c.FormValue("date"); ds != "" {
			parsed, err := time.Parse("2006-01-02", ds)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date formatı YYYY-AA-GG olmalı")
			}
			date = parsed
		}

		finished := c.FormValue("finished") == "true"
		orderCodes := strings.TrimSpace(c.FormValue("orders"))

		saveUpload := func(field string) (string, error) {
			fh, err := c.FormFile(field)
			if err != nil {
				return "", nil // opsiyonel
			}
			if err := os.MkdirAll(cfg.CuttingFilePath, 0o755); err != nil {
				return "", fiber.NewError(fiber.StatusInternalServerError, "Kesim dosyası klasörü oluşturulamadı")
			}
			path := filepath.Join(cfg.CuttingFilePath, uuid.NewString()+filepath.Ext(fh.Filename))
			if err := c.SaveFile(fh, path); err != nil {
				return "", fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
			}
			return path, nil
		}

		imagePath, err := saveUpload("image")
		if err != nil {
			return err
		}
		crv3dPath, err := saveUpload("crv3d")
		if err != nil {
			return err
		}

		wasStarted := piece.Started

		var cut models.CuttingFile
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var stock models.InventoryStock
			if err := tx.Where("material_id = ? AND inventory_id = ?", piece.MaterialID, piece.InventoryID).
				First(&stock).Error; err != nil {
				return fmt.Errorf("levhanın deposunda stok kaydı yok")
			}

			// İlk kesim: levha artık tam levha değil
			if !piece.Started {
				piece.Started = true
				stock.Unstarted -= 1
				stock.Started += 1
			}
			if finished {
				piece.Finished = true
				stock.Started -= 1
				stock.Finished += 1
			}

			if err := tx.Save(&stock).Error; err != nil {
				return err
			}
			if err := tx.Save(&piece).Error; err != nil {
				return err
			}

			cut = models.CuttingFile{
				PieceID:    piece.ID,
				Status:     status,
				Date:       date,
				Image:      imagePath,
				Crv3DFile:  crv3dPath,
				OrderCodes: orderCodes,
			}
			return tx.Create(&cut).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, userName, uerr := auth.UserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				InventoryID: &piece.InventoryID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "cutting_file",
				EntityID:    cut.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Kesim kaydı: %s / %s (%s)", piece.Material.Name, piece.Code, status),
				Before:      fiber.Map{"started": wasStarted, "finished": false},
				After:       fiber.Map{"started": piece.Started, "finished": piece.Finished},
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"piece_id": piece.ID,
			"code":     piece.Code,
			"started":  piece.Started,
			"finished": piece.Finished,
			"cut":      toCuttingFileResponse(&cut),
		})
	}
}
