package models

import "time"

type MaterialType string

const (
	MaterialLength MaterialType = "LENGTH" // metre bazlı (profil, boru vs.)
	MaterialAreal  MaterialType = "AREAL"  // levha bazlı, parça parça takip edilir
	MaterialPiece  MaterialType = "PIECE"  // adet bazlı
)

type Material struct {
	ID           uint         `gorm:"primaryKey"`
	Name         string       `gorm:"size:100;not null;unique"`
	CodeName     string       `gorm:"size:50;index"` // Opsiyonel kısa kod
	Type         MaterialType `gorm:"size:20;not null"`
	Unit         string       `gorm:"size:20;not null"` // m, adet, levha
	MinThreshold float64      `gorm:"not null;default:0"`
	Width        *float64     // levha genişliği (cm), sadece AREAL
	Height       *float64     // levha yüksekliği (cm), sadece AREAL
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Stocks []InventoryStock `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

// InventoryStock: Malzemenin depo bazlı stok dağılımı.
// AREAL malzemede miktarlar levha adedidir; unstarted = hiç kesime girmemiş levhalar.
type InventoryStock struct {
	ID          uint `gorm:"primaryKey"`
	MaterialID  uint `gorm:"index:idx_inventory_stocks_mat_inv,unique;not null"`
	InventoryID uint `gorm:"index:idx_inventory_stocks_mat_inv,unique;not null"`
	Inventory   Inventory
	Total       float64 `gorm:"not null;default:0"`
	Unstarted   float64 `gorm:"not null;default:0"`
	Started     float64 `gorm:"not null;default:0"`
	Finished    float64 `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
