package reports

import (
	"fmt"
	"time"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"
	"atolye-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/stock.xlsx
// Tüm malzemelerin stok durumunu Excel olarak indirir (yönetim raporu).
func StockReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var materials []models.Material
		if err := database.DB.Preload("Stocks.Inventory").
			Order("name asc").Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzemeler okunamadı")
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Stok Durumu"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Malzeme", "Kod", "Tip", "Birim", "Min. Eşik", "Mevcut", "Durum", "Depo Dağılımı"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		headerStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
		})
		f.SetCellStyle(sheet, "A1", "H1", headerStyle)
		f.SetColWidth(sheet, "A", "A", 30)
		f.SetColWidth(sheet, "H", "H", 40)

		for row, m := range materials {
			available := 0.0
			dist := ""
			for _, s := range m.Stocks {
				available += s.Unstarted
				if dist != "" {
					dist += ", "
				}
				dist += fmt.Sprintf("%s: %.2f", s.Inventory.Name, s.Unstarted)
			}

			values := []interface{}{
				m.Name,
				m.CodeName,
				string(m.Type),
				m.Unit,
				m.MinThreshold,
				available,
				string(stock.Classify(available, m.MinThreshold)),
				dist,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}

		filename := fmt.Sprintf("stok-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
