// Package tokengate mengatur ekonomi token HunianKita: setiap aksi berbayar
// (upload listing, boost listing) harus lolos Authorize dulu, lalu dibayar
// lewat Settle. Saldo user TIDAK pernah dihitung di aplikasi
// (balance - cost lalu Save) — pengurangan dilakukan satu kali di level SQL
// dengan syarat saldo masih cukup, jadi dua request barengan tidak bisa
// sama-sama lolos dengan saldo basi.
package tokengate

import (
	"errors"

	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"gorm.io/gorm"
)

type ActionKind string

const (
	ActionUpload ActionKind = "upload"
	ActionBoost  ActionKind = "boost"
)

var (
	ErrInsufficientTokens     = errors.New("token tidak cukup")
	ErrForbidden              = errors.New("tidak punya akses")
	ErrInvalidAmount          = errors.New("jumlah tidak valid")
	ErrConcurrentModification = errors.New("saldo berubah, silakan coba lagi")
	ErrUnknownAction          = errors.New("jenis aksi tidak dikenal")
	ErrUserNotFound           = errors.New("user tidak ditemukan")
)

// Decision = hasil Authorize. Kalau Denied, Shortfall = kekurangan token
// (dipakai frontend buat nawarin paket top-up yang pas).
type Decision struct {
	Approved  bool `json:"approved"`
	Cost      int  `json:"cost"`
	Shortfall int  `json:"shortfall,omitempty"`
}

type Gate struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Gate {
	return &Gate{DB: db}
}

// Cost baca biaya aksi dari token_settings (bisa diubah admin tanpa deploy).
// Kalau row-nya hilang, pakai default compile-time.
func (g *Gate) Cost(db *gorm.DB, action ActionKind) (int, error) {
	key, fallback, err := settingFor(action)
	if err != nil {
		return 0, err
	}

	var setting models.TokenSetting
	if err := db.Where("`key` = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return 0, err
	}
	return setting.Value, nil
}

// Authorize = cek read-only: boleh nggak user ini melakukan aksi berbayar?
// Saldo SELALU dibaca fresh dari DB, jangan percaya angka kiriman client.
func (g *Gate) Authorize(userID uint, action ActionKind) (Decision, error) {
	cost, err := g.Cost(g.DB, action)
	if err != nil {
		return Decision{}, err
	}

	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{}, ErrUserNotFound
		}
		return Decision{}, err
	}

	// Upload/boost khusus mitra (admin ikut boleh, buat bantu koreksi)
	if user.Role != "mitra" && user.Role != "admin" {
		return Decision{}, ErrForbidden
	}

	if user.TokenBalance < cost {
		return Decision{Approved: false, Cost: cost, Shortfall: cost - user.TokenBalance}, nil
	}
	return Decision{Approved: true, Cost: cost}, nil
}

// Settle memotong saldo SETELAH aksinya sendiri sukses. WAJIB dipanggil di
// dalam DB.Transaction yang sama dengan insert/update listing-nya, supaya
// "listing jadi tapi token gak kepotong" (atau sebaliknya) mustahil terjadi.
//
// Potongan dilakukan conditional di SQL:
//
//	UPDATE users SET token_balance = token_balance - ? WHERE id = ? AND token_balance >= ?
//
// RowsAffected == 0 artinya saldo keburu dipakai request lain setelah
// Authorize — kembalikan ErrConcurrentModification dan biarkan transaksi
// di-rollback, jangan pernah biarkan saldo jadi minus.
func (g *Gate) Settle(tx *gorm.DB, userID uint, action ActionKind, cost int, propertyID *uint) error {
	if cost < 0 {
		return ErrInvalidAmount
	}
	if _, _, err := settingFor(action); err != nil {
		return err
	}

	res := tx.Model(&models.User{}).
		Where("id = ? AND token_balance >= ?", userID, cost).
		UpdateColumn("token_balance", gorm.Expr("token_balance - ?", cost))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentModification
	}

	// Catatan buku besar, satu transaksi dengan potongan saldonya
	entry := models.TokenTransaction{
		UserID:     userID,
		Delta:      -cost,
		Reason:     string(action),
		PropertyID: propertyID,
	}
	return tx.Create(&entry).Error
}

// Grant = top-up dari admin. Jumlah harus salah satu paket resmi.
func (g *Gate) Grant(adminID, targetID uint, amount int) error {
	if err := g.requireAdmin(adminID); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	validPackage := false
	for _, p := range models.TokenPackages {
		if amount == p {
			validPackage = true
			break
		}
	}
	if !validPackage {
		return ErrInvalidAmount
	}

	return g.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", targetID).
			UpdateColumn("token_balance", gorm.Expr("token_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		entry := models.TokenTransaction{
			UserID: targetID,
			Delta:  amount,
			Reason: "grant",
			Note:   "Top-up oleh admin",
		}
		return tx.Create(&entry).Error
	})
}

// SetCost ubah biaya per-aksi. Minimal 1 token — gratis bukan opsi,
// kalau mau gratis ya matikan gating-nya sekalian.
func (g *Gate) SetCost(adminID uint, action ActionKind, newCost int) error {
	if err := g.requireAdmin(adminID); err != nil {
		return err
	}
	if newCost < 1 {
		return ErrInvalidAmount
	}

	key, _, err := settingFor(action)
	if err != nil {
		return err
	}

	var setting models.TokenSetting
	if err := g.DB.Where("`key` = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return g.DB.Create(&models.TokenSetting{Key: key, Value: newCost}).Error
		}
		return err
	}

	setting.Value = newCost
	return g.DB.Save(&setting).Error
}

// Balance buat tampilan dashboard. Angkanya boleh basi sedetik-dua detik,
// keputusan beneran tetap lewat Authorize/Settle.
func (g *Gate) Balance(userID uint) (int, error) {
	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.TokenBalance, nil
}

// History = riwayat mutasi token user, terbaru duluan
func (g *Gate) History(userID uint, limit int) ([]models.TokenTransaction, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var entries []models.TokenTransaction
	err := g.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (g *Gate) requireAdmin(userID uint) error {
	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if user.Role != "admin" {
		return ErrForbidden
	}
	return nil
}

func settingFor(action ActionKind) (key string, fallback int, err error) {
	switch action {
	case ActionUpload:
		return models.SettingUploadCost, models.DefaultUploadCost, nil
	case ActionBoost:
		return models.SettingBoostCost, models.DefaultBoostCost, nil
	default:
		return "", 0, ErrUnknownAction
	}
}
