package handlers

import (
	"net/http"
	"os"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/Bintangpa/Hunian-Kita-sub000/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Struct untuk Validasi Input Login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Struct untuk Validasi Input Register
type RegisterInput struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Whatsapp        string `json:"whatsapp"`
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah", "details": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah"})
		return
	}

	// Buat Token JWT
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat token"})
		return
	}

	// Kirim response lengkap (saldo token ikut, buat ditampilkan di navbar)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"role":          user.Role,
			"whatsapp":      user.Whatsapp,
			"token_balance": user.TokenBalance,
		},
	})
}

// Register = daftar jadi mitra. Saldo token awal 0, harus top-up dulu
// sebelum bisa upload listing.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	// 1. Cek Konfirmasi Password
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Konfirmasi password tidak cocok!"})
		return
	}

	// 2. Hash Password
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	// 3. Siapkan Data Mitra Baru
	newUser := models.User{
		Username:     input.Username,
		Password:     string(hashedPassword),
		Role:         "mitra",
		Whatsapp:     input.Whatsapp,
		TokenBalance: 0,
	}

	// 4. Simpan ke Database
	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username sudah dipakai!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registrasi berhasil! Silakan top-up token untuk mulai pasang listing.",
		"user": gin.H{
			"id":       newUser.ID,
			"username": newUser.Username,
			"role":     newUser.Role,
		},
	})
}

// FUNGSI KHUSUS: Buat Super Admin (sekali pakai, dikunci secret dari .env)
func RegisterOwner(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Secret   string `json:"secret" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	// 1. Cek Kunci Rahasia
	ownerSecret := os.Getenv("OWNER_SECRET")
	if ownerSecret == "" || input.Secret != ownerSecret {
		c.JSON(http.StatusForbidden, gin.H{"error": "Kunci rahasia salah! Anda bukan owner."})
		return
	}

	// 2. Hash Password
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	// 3. Buat User dengan Level Tertinggi
	superAdmin := models.User{
		Username: input.Username,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	// 4. Simpan ke Database
	if err := database.DB.Create(&superAdmin).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal buat admin. Username mungkin sudah ada."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "👑 Super Admin berhasil dibuat!",
		"data": gin.H{
			"username": superAdmin.Username,
			"role":     superAdmin.Role,
		},
	})
}
