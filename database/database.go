package database

import (
	"log"
	"os"
	"time"

	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB global, dipakai semua handler
var DB *gorm.DB

func ConnectDatabase() {
	var (
		db  *gorm.DB
		err error
	)

	// Production: MySQL via DATABASE_URL
	// cth: user:pass@tcp(127.0.0.1:3306)/huniankita?charset=utf8mb4&parseTime=True&loc=Local
	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		// Dev lokal: fallback ke file sqlite biar gak perlu install MySQL
		log.Println("DATABASE_URL kosong, pakai sqlite lokal (huniankita.db)")
		db, err = gorm.Open(sqlite.Open("huniankita.db"), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Gagal konek database: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Gagal ambil koneksi sql: ", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatal("Gagal migrate: ", err)
	}

	DB = db
	log.Println("Database siap!")
}

// Migrate dipisah biar bisa dipakai juga oleh test (in-memory sqlite)
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.TokenSetting{},
		&models.TokenTransaction{},
		&models.SiteContent{},
	); err != nil {
		return err
	}

	seedTokenSettings(db)
	seedSiteContent(db)
	return nil
}

// Seed biaya default (15/15). Kalau row sudah ada, jangan ditimpa —
// nilainya mungkin sudah diubah admin lewat dashboard.
func seedTokenSettings(db *gorm.DB) {
	defaults := map[string]int{
		models.SettingUploadCost: models.DefaultUploadCost,
		models.SettingBoostCost:  models.DefaultBoostCost,
	}

	for key, value := range defaults {
		var setting models.TokenSetting
		if err := db.Where("`key` = ?", key).First(&setting).Error; err == gorm.ErrRecordNotFound {
			db.Create(&models.TokenSetting{Key: key, Value: value})
		}
	}
}

func seedSiteContent(db *gorm.DB) {
	defaults := map[string]string{
		"footer_text":   "HunianKita - Cari kost, guest house, dan villa jadi gampang.",
		"landing_title": "Temukan Hunian Impianmu",
		"landing_sub":   "Ribuan kost, guest house, dan villa dari mitra terpercaya.",
	}

	for key, value := range defaults {
		var content models.SiteContent
		if err := db.Where("`key` = ?", key).First(&content).Error; err == gorm.ErrRecordNotFound {
			db.Create(&models.SiteContent{Key: key, Value: value})
		}
	}
}
