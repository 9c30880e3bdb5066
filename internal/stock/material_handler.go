package stock

import (
	"strings"

	"atolye-backend/internal/areal"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MaterialResponse struct {
	ID                 uint                `json:"id"`
	Name               string              `json:"name"`
	CodeName           string              `json:"code_name,omitempty"`
	Type               models.MaterialType `json:"type"`
	Unit               string              `json:"unit"`
	MinThreshold       float64             `json:"min_threshold"`
	Width              *float64            `json:"width,omitempty"`
	Height             *float64            `json:"height,omitempty"`
	Available          float64             `json:"available"`
	PartiallyAvailable float64             `json:"partially_available"`
	Status             StockStatus         `json:"status"`
	Distribution       Distribution        `json:"inventory_distribution"`
}

type CuttingFileResponse struct {
	ID         uint   `json:"id"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	Image      string `json:"image,omitempty"`
	Crv3DFile  string `json:"crv3d_file,omitempty"`
	OrderCodes string `json:"orders"`
}

type PieceResponse struct {
	ID            uint                  `json:"id"`
	Code          string                `json:"code"`
	Width         float64               `json:"width"`
	Height        float64               `json:"height"`
	AreaM2        float64               `json:"area_m2"`
	InventoryName string                `json:"inventory_name"`
	Started       bool                  `json:"started"`
	Finished      bool                  `json:"finished"`
	LatestCut     *CuttingFileResponse  `json:"latest_cut,omitempty"`
	History       []CuttingFileResponse `json:"cutting_history"`
}

type MaterialDetailResponse struct {
	MaterialResponse
	AvailableFullSheets int             `json:"available_full_sheets,omitempty"`
	Pieces              []PieceResponse `json:"pieces,omitempty"`
}

type CreateMaterialRequest struct {
	Name         string              `json:"name"`
	CodeName     string              `json:"code_name"`
	Type         models.MaterialType `json:"type"`
	Unit         string              `json:"unit"`
	MinThreshold float64             `json:"min_threshold"`
	Width        *float64            `json:"width"`
	Height       *float64            `json:"height"`
}

type UpdateMaterialRequest struct {
	Name         *string  `json:"name"`
	CodeName     *string  `json:"code_name"`
	MinThreshold *float64 `json:"min_threshold"`
}

func validMaterialType(t models.MaterialType) bool {
	return t == models.MaterialLength || t == models.MaterialAreal || t == models.MaterialPiece
}

// Malzemenin toplam kullanılabilir miktarı: depolardaki kesime girmemiş stok toplamı.
// AREAL için bu tam levha sayısıdır.
func availableOf(stocks []models.InventoryStock) float64 {
	total := 0.0
	for _, s := range stocks {
		total += s.Unstarted
	}
	return total
}

// AREAL malzemede devam eden levhaların alan toplamı (m²). available ile karıştırılmaz.
func partiallyAvailableOf(materialID uint) float64 {
	var pieces []models.ArealPiece
	if err := database.DB.
		Where("material_id = ? AND started = true AND finished = false", materialID).
		Find(&pieces).Error; err != nil {
		return 0
	}

	total := 0.0
	for _, p := range pieces {
		total += areal.AreaM2(p.Width, p.Height)
	}
	return total
}

func toMaterialResponse(m *models.Material) MaterialResponse {
	available := availableOf(m.Stocks)

	resp := MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		CodeName:     m.CodeName,
		Type:         m.Type,
		Unit:         m.Unit,
		MinThreshold: m.MinThreshold,
		Width:        m.Width,
		Height:       m.Height,
		Available:    available,
		Status:       Classify(available, m.MinThreshold),
		Distribution: DistributionFor(m, m.Stocks),
	}
	if m.Type == models.MaterialAreal {
		resp.PartiallyAvailable = partiallyAvailableOf(m.ID)
	}
	return resp
}

// GET /api/materials
// Stok listesi: her malzeme için kullanılabilir miktar, durum ve depo dağılımı
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Material{}).Preload("Stocks.Inventory")

		if t := c.Query("type"); t != "" {
			dbq = dbq.Where("type = ?", t)
		}

		var materials []models.Material
		if err := dbq.Order("name asc").Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzemeler listelenemedi")
		}

		res := make([]MaterialResponse, 0, len(materials))
		for i := range materials {
			res = append(res, toMaterialResponse(&materials[i]))
		}
		return c.JSON(res)
	}
}

func toCuttingFileResponse(cf *models.CuttingFile) CuttingFileResponse {
	return CuttingFileResponse{
		ID:         cf.ID,
		Status:     cf.Status,
		Date:       cf.Date.Format("2006-01-02"),
		Image:      cf.Image,
		Crv3DFile:  cf.Crv3DFile,
		OrderCodes: cf.OrderCodes,
	}
}

// GET /api/materials/:id
// Malzeme detayı; AREAL için levha defteri de döner
func GetMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var material models.Material
		if err := database.DB.Preload("Stocks.Inventory").First(&material, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Malzeme bulunamadı")
		}

		detail := MaterialDetailResponse{MaterialResponse: toMaterialResponse(&material)}

		if material.Type == models.MaterialAreal {
			var pieces []models.ArealPiece
			if err := database.DB.
				Preload("Inventory").
				Preload("CuttingFiles", func(db *gorm.DB) *gorm.DB {
					return db.Order("date DESC, created_at DESC") // en yeni kesim önce
				}).
				Where("material_id = ?", material.ID).
				Order("id asc").
				Find(&pieces).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Levhalar listelenemedi")
			}

			detail.AvailableFullSheets = areal.AvailableFullSheets(pieces)

			active := areal.ActivePieces(pieces)
			detail.Pieces = make([]PieceResponse, 0, len(active))
			for i := range active {
				p := &active[i]
				pr := PieceResponse{
					ID:            p.ID,
					Code:          p.Code,
					Width:         p.Width,
					Height:        p.Height,
					AreaM2:        areal.AreaM2(p.Width, p.Height),
					InventoryName: p.Inventory.Name,
					Started:       p.Started,
					Finished:      p.Finished,
					History:       make([]CuttingFileResponse, 0, len(p.CuttingFiles)),
				}
				if latest := areal.LatestCut(p); latest != nil {
					lc := toCuttingFileResponse(latest)
					pr.LatestCut = &lc
					for j := 1; j < len(p.CuttingFiles); j++ {
						pr.History = append(pr.History, toCuttingFileResponse(&p.CuttingFiles[j]))
					}
				}
				detail.Pieces = append(detail.Pieces, pr)
			}
		}

		return c.JSON(detail)
	}
}

// POST /api/admin/materials (sadece super_admin)
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Unit = strings.TrimSpace(body.Unit)
		body.CodeName = strings.TrimSpace(body.CodeName)

		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name ve unit zorunlu")
		}
		if !validMaterialType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "type LENGTH, AREAL veya PIECE olmalı")
		}
		if body.MinThreshold < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "min_threshold negatif olamaz")
		}
		if body.Type == models.MaterialAreal {
			if body.Width == nil || body.Height == nil || *body.Width <= 0 || *body.Height <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "AREAL malzeme için width ve height (cm) zorunlu")
			}
		}

		m := models.Material{
			Name:         body.Name,
			CodeName:     body.CodeName,
			Type:         body.Type,
			Unit:         body.Unit,
			MinThreshold: body.MinThreshold,
			Width:        body.Width,
			Height:       body.Height,
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(&m))
	}
}

// PUT /api/admin/materials/:id (sadece super_admin)
// Tip ve levha boyutu sonradan değiştirilemez; mevcut parça geçmişiyle çelişir
func UpdateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.Material
		if err := database.DB.Preload("Stocks.Inventory").First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Malzeme bulunamadı")
		}

		var body UpdateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Malzeme adı boş olamaz")
			}
			m.Name = name
		}
		if body.CodeName != nil {
			m.CodeName = strings.TrimSpace(*body.CodeName)
		}
		if body.MinThreshold != nil {
			if *body.MinThreshold < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "min_threshold negatif olamaz")
			}
			m.MinThreshold = *body.MinThreshold
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme güncellenemedi")
		}

		return c.JSON(toMaterialResponse(&m))
	}
}
