package handlers

import (
	"net/http"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/me — profil sendiri (dipakai navbar & halaman akun)
func GetProfile(c *gin.Context) {
	userID := getUserID(c)
	var user models.User

	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"role":          user.Role,
		"whatsapp":      user.Whatsapp,
		"token_balance": user.TokenBalance,
	})
}

// Struct Input Khusus Update Profil
type UpdateProfileInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Whatsapp string `json:"whatsapp"`
}

// PUT /api/me — update profil sendiri
func UpdateProfile(c *gin.Context) {
	userID := getUserID(c)
	var user models.User

	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak valid"})
		return
	}

	// 1. Update Username (cek duplikat otomatis handled by Gorm unique index)
	if input.Username != "" {
		user.Username = input.Username
	}

	// 2. Update Password (hash dulu)
	if input.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	// 3. Update nomor WA (tampil di tombol kontak semua listing user ini)
	if input.Whatsapp != "" {
		user.Whatsapp = input.Whatsapp
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal update. Username mungkin sudah dipakai orang lain."})
		return
	}

	// Kembalikan data user terbaru agar frontend bisa update localStorage
	c.JSON(http.StatusOK, gin.H{
		"message": "Profil berhasil diperbarui!",
		"user": gin.H{
			"username":      user.Username,
			"role":          user.Role,
			"whatsapp":      user.Whatsapp,
			"token_balance": user.TokenBalance,
		},
	})
}
