package models

import "time"

// Inventory: Fiziksel depo/atölye lokasyonu. Malzeme stoğu depo bazında tutulur.
type Inventory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User
}
