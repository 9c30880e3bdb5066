package database

import (
	"log"

	"atolye-backend/internal/config"
	"atolye-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Inventory{},
		&models.User{},
		&models.Material{},
		&models.InventoryStock{},
		&models.ArealPiece{},
		&models.CuttingFile{},
		&models.Release{},
		&models.ReleaseEditRecord{},
		&models.OrderContainer{},
		&models.Order{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// Çıkış sorguları hep (malzeme, depo) çifti üzerinden gelir; AutoMigrate
	// bileşik indeksi üretmediği için burada elle açılır
	if DB.Migrator().HasTable(&models.Release{}) {
		DB.Exec("CREATE INDEX IF NOT EXISTS idx_releases_material_inventory ON releases(material_id, inventory_id)")
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
