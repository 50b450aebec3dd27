package models

import "time"

// Konten statis site yang bisa diedit admin (footer, copy landing page, dll)
type SiteContent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"unique" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
