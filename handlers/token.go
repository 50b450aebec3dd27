package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/Bintangpa/Hunian-Kita-sub000/tokengate"
	"github.com/gin-gonic/gin"
)

// 1. GET SALDO TOKEN
// GET /api/users/:id/tokens — user cuma boleh lihat saldo sendiri, admin bebas
func GetTokenBalance(c *gin.Context) {
	requesterID := getUserID(c)

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID tidak valid"})
		return
	}

	if uint(targetID) != requesterID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Tidak boleh intip saldo orang lain"})
		return
	}

	gate := tokengate.New(database.DB)
	balance, err := gate.Balance(uint(targetID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": targetID, "token_balance": balance})
}

// 2. GET RIWAYAT TOKEN (buku besar milik sendiri)
func GetTokenHistory(c *gin.Context) {
	userID := getUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	gate := tokengate.New(database.DB)
	entries, err := gate.History(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal ambil riwayat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// 3. ADMIN: TOP-UP TOKEN
// POST /api/admin/add-tokens {user_id, tokens} — tokens harus paket resmi
func AddTokens(c *gin.Context) {
	adminID := getUserID(c)

	var input struct {
		UserID uint `json:"user_id" binding:"required"`
		Tokens int  `json:"tokens" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	gate := tokengate.New(database.DB)
	if err := gate.Grant(adminID, input.UserID, input.Tokens); err != nil {
		switch {
		case errors.Is(err, tokengate.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		case errors.Is(err, tokengate.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Jumlah harus salah satu paket: 15 / 30 / 75 / 150 / 330"})
		case errors.Is(err, tokengate.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User tidak ditemukan"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal top-up token"})
		}
		return
	}

	balance, _ := gate.Balance(input.UserID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Token berhasil ditambahkan!",
		"user_id":       input.UserID,
		"token_balance": balance,
	})
}

// 4. ADMIN: LIHAT SETTING BIAYA
// GET /api/admin/token-settings
func GetTokenSettings(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	gate := tokengate.New(database.DB)
	uploadCost, err := gate.Cost(database.DB, tokengate.ActionUpload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal baca setting"})
		return
	}
	boostCost, err := gate.Cost(database.DB, tokengate.ActionBoost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal baca setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_property_cost": uploadCost,
		"boost_property_cost":  boostCost,
		"packages":             models.TokenPackages,
	})
}

// 5. ADMIN: UBAH SETTING BIAYA
// PUT /api/admin/token-settings {upload_property_cost?, boost_property_cost?}
func UpdateTokenSettings(c *gin.Context) {
	adminID := getUserID(c)

	var input struct {
		UploadCost *int `json:"upload_property_cost"`
		BoostCost  *int `json:"boost_property_cost"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah"})
		return
	}

	if input.UploadCost == nil && input.BoostCost == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tidak ada setting yang diubah"})
		return
	}

	gate := tokengate.New(database.DB)

	if input.UploadCost != nil {
		if err := gate.SetCost(adminID, tokengate.ActionUpload, *input.UploadCost); err != nil {
			respondSetCostError(c, err)
			return
		}
	}
	if input.BoostCost != nil {
		if err := gate.SetCost(adminID, tokengate.ActionBoost, *input.BoostCost); err != nil {
			respondSetCostError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Setting biaya token berhasil diperbarui!"})
}

func respondSetCostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tokengate.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
	case errors.Is(err, tokengate.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Biaya minimal 1 token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal simpan setting"})
	}
}
