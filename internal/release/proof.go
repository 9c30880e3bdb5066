package release

import (
	"atolye-backend/internal/models"

	"github.com/shopspring/decimal"
)

// 0.5 metrenin üzerindeki toplam LENGTH çıkışı fotoğraf kanıtı gerektirir.
var proofThreshold = decimal.RequireFromString("0.5")

// ReleaseDraft: additional-release isteğindeki tek kalem.
type ReleaseDraft struct {
	MaterialID   uint                `json:"material_id"`
	MaterialType models.MaterialType `json:"-"`
	InventoryID  uint                `json:"inventory_id"`
	Amount       decimal.Decimal     `json:"amount"`
}

// TotalLengthAmount: Seçili kalemlerdeki LENGTH tipli miktarların toplamı.
// PIECE (ve AREAL) kalemler toplama hiç girmez.
func TotalLengthAmount(items []ReleaseDraft) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.MaterialType == models.MaterialLength {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// RequiresProof: Toplam LENGTH miktarı 0.5 metreyi aşıyorsa kanıt fotoğrafı zorunludur.
// Eşik strict: tam 0.5 kanıt istemez.
func RequiresProof(items []ReleaseDraft) bool {
	return TotalLengthAmount(items).GreaterThan(proofThreshold)
}
