package handlers

import (
	"net/http"
	"testing"

	"github.com/Bintangpa/Hunian-Kita-sub000/models"
)

func TestAddTokensAsAdmin(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	admin := seedUser(t, db, "admin-utama", "admin", 0)
	mitra := seedUser(t, db, "bu-wati", "mitra", 5)

	w, body := doJSON(t, r, "POST", "/api/admin/add-tokens", bearer(t, admin), map[string]interface{}{
		"user_id": mitra.ID,
		"tokens":  30,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add-tokens: status %d %v", w.Code, body)
	}
	if body["token_balance"].(float64) != 35 {
		t.Fatalf("saldo 5 + 30 harus 35, dapat %v", body["token_balance"])
	}
}

func TestAddTokensRejections(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	admin := seedUser(t, db, "admin-dua", "admin", 0)
	mitra := seedUser(t, db, "pak-joko", "mitra", 5)

	// Bukan admin
	w, _ := doJSON(t, r, "POST", "/api/admin/add-tokens", bearer(t, mitra), map[string]interface{}{
		"user_id": mitra.ID,
		"tokens":  30,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("mitra nambah token sendiri harus 403, dapat %d", w.Code)
	}
	if got := currentBalance(t, db, mitra.ID); got != 5 {
		t.Fatalf("saldo tidak boleh berubah, dapat %d", got)
	}

	// Di luar paket resmi
	w, _ = doJSON(t, r, "POST", "/api/admin/add-tokens", bearer(t, admin), map[string]interface{}{
		"user_id": mitra.ID,
		"tokens":  40,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("jumlah di luar paket harus 400, dapat %d", w.Code)
	}
}

func TestTokenSettingsRoundTrip(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	admin := seedUser(t, db, "admin-tiga", "admin", 0)
	mitra := seedUser(t, db, "bu-lastri", "mitra", 20)

	// Default seed 15/15
	w, body := doJSON(t, r, "GET", "/api/admin/token-settings", bearer(t, admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get settings: status %d", w.Code)
	}
	if body["upload_property_cost"].(float64) != 15 || body["boost_property_cost"].(float64) != 15 {
		t.Fatalf("seed default salah: %v", body)
	}

	// Ubah biaya upload jadi 25
	w, _ = doJSON(t, r, "PUT", "/api/admin/token-settings", bearer(t, admin), map[string]interface{}{
		"upload_property_cost": 25,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put settings: status %d", w.Code)
	}

	// Mitra saldo 20 sekarang kurang 5
	w, body = doJSON(t, r, "POST", "/api/properties", bearer(t, mitra), listingPayload("Kost Kemahalan"))
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("setelah biaya naik harus 402, dapat %d", w.Code)
	}
	if body["shortfall"].(float64) != 5 {
		t.Fatalf("shortfall harus 5, dapat %v", body["shortfall"])
	}

	// Biaya 0 ditolak, setting lama tetap
	w, _ = doJSON(t, r, "PUT", "/api/admin/token-settings", bearer(t, admin), map[string]interface{}{
		"upload_property_cost": 0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("biaya 0 harus 400, dapat %d", w.Code)
	}

	var setting models.TokenSetting
	db.Where("`key` = ?", models.SettingUploadCost).First(&setting)
	if setting.Value != 25 {
		t.Fatalf("biaya harus tetap 25, dapat %d", setting.Value)
	}

	// Non-admin gak boleh utak-atik setting
	w, _ = doJSON(t, r, "PUT", "/api/admin/token-settings", bearer(t, mitra), map[string]interface{}{
		"upload_property_cost": 1,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("mitra ubah setting harus 403, dapat %d", w.Code)
	}
}

func TestGetTokenBalanceScoped(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	admin := seedUser(t, db, "admin-empat", "admin", 0)
	mitra := seedUser(t, db, "bu-yuni", "mitra", 75)
	other := seedUser(t, db, "tetangga", "mitra", 0)

	// Lihat saldo sendiri
	w, body := doJSON(t, r, "GET", "/api/users/"+itoa(mitra.ID)+"/tokens", bearer(t, mitra), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("saldo sendiri: status %d", w.Code)
	}
	if body["token_balance"].(float64) != 75 {
		t.Fatalf("saldo harus 75, dapat %v", body["token_balance"])
	}

	// Orang lain ditolak
	w, _ = doJSON(t, r, "GET", "/api/users/"+itoa(mitra.ID)+"/tokens", bearer(t, other), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("intip saldo orang harus 403, dapat %d", w.Code)
	}

	// Admin boleh
	w, _ = doJSON(t, r, "GET", "/api/users/"+itoa(mitra.ID)+"/tokens", bearer(t, admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin lihat saldo: status %d", w.Code)
	}
}

func TestTokenHistory(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	admin := seedUser(t, db, "admin-lima", "admin", 0)
	mitra := seedUser(t, db, "bu-nia", "mitra", 0)

	doJSON(t, r, "POST", "/api/admin/add-tokens", bearer(t, admin), map[string]interface{}{
		"user_id": mitra.ID,
		"tokens":  15,
	})
	doJSON(t, r, "POST", "/api/properties", bearer(t, mitra), listingPayload("Kost Riwayat"))

	w, body := doJSON(t, r, "GET", "/api/tokens/history", bearer(t, mitra), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d", w.Code)
	}
	entries := body["data"].([]interface{})
	if len(entries) != 2 {
		t.Fatalf("riwayat harus 2 mutasi (grant + upload), dapat %d", len(entries))
	}
}
