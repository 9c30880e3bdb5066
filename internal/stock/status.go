package stock

import "math"

// StockStatus: Stok sağlık kategorisi. Her stok gösteren ekran bu sınıflandırmayı kullanır.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StatusCritical   StockStatus = "CRITICAL"
	StatusWarning    StockStatus = "WARNING"
	StatusGood       StockStatus = "GOOD"
)

// Classify: Mevcut miktar ve eşiğe göre stok durumu.
// Bantlar:
//
//	available == 0                        -> OUT_OF_STOCK
//	0 < available < threshold             -> CRITICAL
//	threshold <= available <= threshold+1 -> WARNING
//	available > threshold+1               -> GOOD
//
// Eşiğin tam kendisi WARNING'dir, CRITICAL değil; +1 bandı bir sonraki tüketimde
// eşiğin altına inecek malzemeyi işaretler. Fonksiyon totaldir: her girdi için bir
// kategori döner. NaN veya negatif available OUT_OF_STOCK, bozuk threshold 0 sayılır.
func Classify(available, threshold float64) StockStatus {
	if math.IsNaN(available) || available <= 0 {
		return StatusOutOfStock
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		threshold = 0
	}
	if available < threshold {
		return StatusCritical
	}
	if available <= threshold+1 {
		return StatusWarning
	}
	return StatusGood
}
