package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReleaseReason string

const (
	ReleaseReasonOrder       ReleaseReason = "ORDER"
	ReleaseReasonAdd         ReleaseReason = "ADD"
	ReleaseReasonMaintenance ReleaseReason = "MAINTENANCE"
	ReleaseReasonSales       ReleaseReason = "SALES"
	ReleaseReasonTransfer    ReleaseReason = "TRANSFER"
	ReleaseReasonWaste       ReleaseReason = "WASTE"
	ReleaseReasonDamaged     ReleaseReason = "DAMAGED"
)

// Release: Depodan yapılan malzeme çıkışı. Asla silinmez; sadece aşağı yönlü düzeltilebilir.
type Release struct {
	ID          uint `gorm:"primaryKey"`
	MaterialID  uint `gorm:"index;not null"`
	Material    Material
	InventoryID uint `gorm:"index;not null"`
	Inventory   Inventory
	OrderCode   string          `gorm:"size:50;index"` // ORDER sebebi için sipariş kodu
	Reason      ReleaseReason   `gorm:"size:20;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Confirmed   bool            `gorm:"not null;default:false"`
	ProofImage  string          `gorm:"size:255"`
	IsEdited    bool            `gorm:"not null;default:false"`
	CreatedBy   uint
	CreatedAt   time.Time
	UpdatedAt   time.Time

	EditRecords []ReleaseEditRecord `gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE"`
}

// ReleaseEditRecord: Düzeltme geçmişi (append-only).
type ReleaseEditRecord struct {
	ID             uint            `gorm:"primaryKey"`
	ReleaseID      uint            `gorm:"index;not null"`
	OldAmount      decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	NewAmount      decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Delta          decimal.Decimal `gorm:"type:numeric(14,4);not null"` // depoya iade edilen fark
	EditedBy       uint
	EditorName     string `gorm:"size:100"` // kullanıcı adı (denormalize)
	IdempotencyKey string `gorm:"size:64;index"`
	CreatedAt      time.Time
}
