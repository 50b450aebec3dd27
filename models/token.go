package models

import "time"

// Key setting biaya token (tabel token_settings)
const (
	SettingUploadCost = "upload_property_cost"
	SettingBoostCost  = "boost_property_cost"
)

// Biaya default kalau row setting belum ada (di-seed saat migrate)
const (
	DefaultUploadCost = 15
	DefaultBoostCost  = 15
)

// Paket top-up yang boleh di-grant admin
var TokenPackages = []int{15, 30, 75, 150, 330}

type TokenSetting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"unique" json:"key"`
	Value int    `json:"value"`
}

// TokenTransaction = buku besar. Append-only: setiap perubahan saldo
// (settle upload/boost, grant admin) wajib nulis satu row di sini
// dalam transaksi DB yang sama dengan perubahan saldonya.
type TokenTransaction struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index" json:"user_id"`
	Delta      int    `json:"delta"`  // negatif = pemakaian, positif = top-up
	Reason     string `json:"reason"` // upload / boost / grant
	PropertyID *uint  `json:"property_id,omitempty"`
	Note       string `json:"note"`

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
