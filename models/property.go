package models

import "time"

type Property struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerUserID uint   `gorm:"index" json:"owner_user_id"`
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"index" json:"type"` // kost / guesthouse / villa
	Price       int    `json:"price"`
	PriceUnit   string `json:"price_unit"` // bulan / malam / tahun
	City        string `gorm:"index" json:"city"`
	Address     string `json:"address"`

	// Fasilitas disimpan sebagai JSON array string, cth: ["WiFi","AC","Parkir"]
	Facilities string `gorm:"type:text" json:"-"`

	Status         string    `gorm:"default:available" json:"status"` // available / pending / sold
	IsBoosted      bool      `json:"is_boosted"`
	BoostExpiresAt time.Time `json:"boost_expires_at"`
	IsFeatured     bool      `json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relasi
	Owner  User            `gorm:"foreignKey:OwnerUserID" json:"-"`
	Images []PropertyImage `gorm:"foreignKey:PropertyID" json:"images"`
}

type PropertyImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"index" json:"property_id"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"created_at"`
}
