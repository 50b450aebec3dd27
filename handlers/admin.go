package handlers

import (
	"net/http"
	"time"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Helper: Cek Admin
func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == "admin"
}

// 1. LIST USER (saldo token ikut ditampilkan)
func GetAllUsers(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	var users []models.User
	database.DB.Select("id, username, role, whatsapp, token_balance, created_at").Find(&users)

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// 2. CREATE USER (versi admin, bisa pilih role)
func CreateUser(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
		Whatsapp string `json:"whatsapp"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap"})
		return
	}

	if input.Role == "" {
		input.Role = "mitra"
	}
	if input.Role != "guest" && input.Role != "mitra" && input.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role harus: guest / mitra / admin"})
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	newUser := models.User{
		Username: input.Username,
		Password: string(hashedPassword),
		Role:     input.Role,
		Whatsapp: input.Whatsapp,
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal buat user (username kembar)"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User berhasil dibuat!", "data": newUser})
}

// 3. DELETE USER (listing, foto, dan riwayat token ikut terhapus)
func DeleteUser(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var propertyIDs []uint
		tx.Model(&models.Property{}).Where("owner_user_id = ?", id).Pluck("id", &propertyIDs)

		if len(propertyIDs) > 0 {
			if err := tx.Where("property_id IN ?", propertyIDs).Delete(&models.PropertyImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("owner_user_id = ?", id).Delete(&models.Property{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.TokenTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal hapus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User dihapus"})
}

// 4. GET USER STATS (detail + jumlah listing + pemakaian token bulan ini)
func GetUserStats(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	userID := c.Param("id")
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User tidak ditemukan"})
		return
	}

	var listingCount int64
	database.DB.Model(&models.Property{}).Where("owner_user_id = ?", userID).Count(&listingCount)

	// Pemakaian token bulan ini (delta negatif = pemakaian)
	var spent int
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	database.DB.Model(&models.TokenTransaction{}).
		Where("user_id = ? AND delta < 0 AND created_at >= ?", userID, startOfMonth).
		Select("COALESCE(SUM(-delta), 0)").Row().Scan(&spent)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"role":          user.Role,
			"whatsapp":      user.Whatsapp,
			"token_balance": user.TokenBalance,
		},
		"stats": gin.H{
			"listing_count":          listingCount,
			"tokens_spent_this_month": spent,
		},
	})
}

// 5. UPDATE DATA USER (username / password / whatsapp / role)
func UpdateUser(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	id := c.Param("id")
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User hilang"})
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Whatsapp string `json:"whatsapp"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input salah"})
		return
	}

	// Update Field. Saldo token TIDAK bisa diedit di sini —
	// top-up hanya lewat /admin/add-tokens biar ada jejak di buku besar.
	if input.Username != "" { user.Username = input.Username }
	if input.Password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		user.Password = string(hash)
	}
	if input.Whatsapp != "" { user.Whatsapp = input.Whatsapp }
	if input.Role != "" {
		if input.Role != "guest" && input.Role != "mitra" && input.Role != "admin" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role harus: guest / mitra / admin"})
			return
		}
		user.Role = input.Role
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal update (username mungkin kembar)"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data user berhasil diperbarui!"})
}

// 6. FEATURE LISTING (admin pilih listing buat section "Pilihan Kami")
// PATCH /api/admin/properties/:id/feature {is_featured}
func FeatureProperty(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	id := c.Param("id")
	var property models.Property
	if err := database.DB.First(&property, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing tidak ditemukan"})
		return
	}

	var input struct {
		IsFeatured bool `json:"is_featured"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah"})
		return
	}

	if err := database.DB.Model(&property).Update("is_featured", input.IsFeatured).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status featured diperbarui!", "is_featured": input.IsFeatured})
}
