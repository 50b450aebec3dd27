package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique" json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"` // guest / mitra / admin

	// Nomor WA untuk tombol "Hubungi Pemilik" di halaman detail
	Whatsapp string `json:"whatsapp"`

	// Saldo token mitra. HANYA boleh berubah lewat tokengate (Settle/Grant),
	// jangan pernah di-Save langsung dari handler.
	TokenBalance int `gorm:"default:0" json:"token_balance"`

	CreatedAt time.Time `json:"created_at"`
}
