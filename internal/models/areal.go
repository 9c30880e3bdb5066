package models

import "time"

// ArealPiece: AREAL malzemenin tek tek takip edilen levhası.
// started/finished bayrakları backend'de kesim kaydı (CuttingFile) eklenince güncellenir;
// kesim kaydı olmayan levha started=finished=false olmalıdır.
type ArealPiece struct {
	ID          uint `gorm:"primaryKey"`
	MaterialID  uint `gorm:"index;not null"`
	Material    Material
	InventoryID uint `gorm:"index;not null"`
	Inventory   Inventory
	Code        string  `gorm:"size:50;index"`
	Width       float64 `gorm:"not null"` // cm
	Height      float64 `gorm:"not null"` // cm
	Started     bool    `gorm:"not null;default:false"`
	Finished    bool    `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CuttingFiles []CuttingFile `gorm:"foreignKey:PieceID;constraint:OnDelete:CASCADE"`
}

// CuttingFile: Levhaya uygulanmış tek bir kesim/üretim kaydı. Oluşturulduktan sonra değişmez.
type CuttingFile struct {
	ID         uint      `gorm:"primaryKey"`
	PieceID    uint      `gorm:"index;not null"`
	Status     string    `gorm:"size:50;not null"` // serbest operasyon etiketi: "CUTTING", "DELIVERED" vs.
	Date       time.Time `gorm:"index;not null"`
	Image      string    `gorm:"size:255"`
	Crv3DFile  string    `gorm:"size:255"`
	OrderCodes string    `gorm:"size:255"` // bu kesimin karşıladığı sipariş kodları (virgülle)
	CreatedAt  time.Time
}
