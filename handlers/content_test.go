package handlers

import (
	"net/http"
	"testing"
)

func TestSiteContentReadAndUpdate(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	admin := seedUser(t, db, "admin-konten", "admin", 0)
	mitra := seedUser(t, db, "mitra-biasa", "mitra", 0)

	// Seed default kebaca publik
	w, body := doJSON(t, r, "GET", "/content/footer_text", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get konten: status %d", w.Code)
	}
	if body["value"] == "" {
		t.Fatal("footer default harus ada isinya")
	}

	// Admin edit
	w, _ = doJSON(t, r, "PUT", "/api/admin/content/footer_text", bearer(t, admin), map[string]interface{}{
		"value": "HunianKita © 2026",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update konten: status %d", w.Code)
	}

	w, body = doJSON(t, r, "GET", "/content/footer_text", "", nil)
	if body["value"] != "HunianKita © 2026" {
		t.Fatalf("konten tidak keupdate: %v", body["value"])
	}

	// Key baru = upsert
	w, _ = doJSON(t, r, "PUT", "/api/admin/content/promo_banner", bearer(t, admin), map[string]interface{}{
		"value": "Diskon token 20% bulan ini!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upsert konten baru: status %d", w.Code)
	}

	// Map semua konten buat frontend
	w, body = doJSON(t, r, "GET", "/content", "", nil)
	data := body["data"].(map[string]interface{})
	if data["promo_banner"] != "Diskon token 20% bulan ini!" {
		t.Fatalf("konten baru hilang dari map: %v", data)
	}

	// Non-admin ditolak
	w, _ = doJSON(t, r, "PUT", "/api/admin/content/footer_text", bearer(t, mitra), map[string]interface{}{
		"value": "vandal",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("mitra edit konten harus 403, dapat %d", w.Code)
	}
}
