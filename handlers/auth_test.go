package handlers

import (
	"net/http"
	"testing"
)

func TestRegisterThenLogin(t *testing.T) {
	setupTest(t)
	r := newRouter()

	w, body := doJSON(t, r, "POST", "/register", "", map[string]interface{}{
		"username":         "mitra-baru",
		"password":         "rahasia123",
		"confirm_password": "rahasia123",
		"whatsapp":         "081298765432",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: status %d %v", w.Code, body)
	}

	user := body["user"].(map[string]interface{})
	if user["role"] != "mitra" {
		t.Fatalf("register harus jadi mitra, dapat %v", user["role"])
	}

	w, body = doJSON(t, r, "POST", "/login", "", map[string]interface{}{
		"username": "mitra-baru",
		"password": "rahasia123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d %v", w.Code, body)
	}

	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login harus balikin token")
	}
	loggedIn := body["user"].(map[string]interface{})
	if loggedIn["token_balance"].(float64) != 0 {
		t.Fatalf("mitra baru harus saldo 0, dapat %v", loggedIn["token_balance"])
	}

	// Token hasil login harus bisa dipakai akses endpoint protected
	w, body = doJSON(t, r, "GET", "/api/me", "Bearer "+token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("/api/me: status %d %v", w.Code, body)
	}
	if body["username"] != "mitra-baru" {
		t.Fatalf("profil salah: %v", body["username"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	seedUser(t, db, "bu-rina", "mitra", 0)

	w, _ := doJSON(t, r, "POST", "/login", "", map[string]interface{}{
		"username": "bu-rina",
		"password": "salah-total",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("password salah harus 401, dapat %d", w.Code)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	setupTest(t)
	r := newRouter()

	w, _ := doJSON(t, r, "POST", "/register", "", map[string]interface{}{
		"username":         "ceroboh",
		"password":         "rahasia123",
		"confirm_password": "rahasia321",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("konfirmasi beda harus 400, dapat %d", w.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	setupTest(t)
	r := newRouter()

	w, _ := doJSON(t, r, "GET", "/api/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("tanpa token harus 401, dapat %d", w.Code)
	}
}
