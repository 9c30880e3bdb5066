package models

import "time"

// OrderContainer: Bir müşteri siparişinin kapsayıcısı; birden fazla iş emri (Order) içerebilir.
type OrderContainer struct {
	ID              uint   `gorm:"primaryKey"`
	Code            string `gorm:"size:50;not null;unique"`
	ClientName      string `gorm:"size:100;not null"`
	ClientPhone     string `gorm:"size:50"`
	DeliveryAddress string `gorm:"size:255"`
	DeliveryDate    *time.Time
	PaymentNote     string `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Orders []Order `gorm:"foreignKey:ContainerID;constraint:OnDelete:CASCADE"`
}

// Order: Tek iş emri. Status, orders paketindeki 9 aşamalı akışın string'lerinden biridir;
// aşama ilerletme backend'de ayrı uçlarla yapılır, asla geri gitmez.
type Order struct {
	ID          uint `gorm:"primaryKey"`
	ContainerID uint `gorm:"index;not null"`
	Code        string `gorm:"size:50;not null;uniqueIndex"`
	Name        string `gorm:"size:100"`
	Status      string `gorm:"size:30;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
