package handlers

import (
	"net/http"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 1. GET SEMUA KONTEN SITE (publik, dipakai frontend buat render copy)
func GetAllSiteContent(c *gin.Context) {
	var contents []models.SiteContent
	database.DB.Find(&contents)

	// Dikirim sebagai map key -> value biar gampang dipakai di frontend
	result := make(map[string]string, len(contents))
	for _, content := range contents {
		result[content.Key] = content.Value
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// 2. GET SATU KONTEN (publik)
func GetSiteContent(c *gin.Context) {
	key := c.Param("key")

	var content models.SiteContent
	if err := database.DB.Where("`key` = ?", key).First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Konten tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": content.Key, "value": content.Value})
}

// 3. ADMIN: UPDATE KONTEN (upsert, key baru otomatis dibuat)
// PUT /api/admin/content/:key {value}
func UpdateSiteContent(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	key := c.Param("key")

	var input struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value wajib diisi"})
		return
	}

	var content models.SiteContent
	err := database.DB.Where("`key` = ?", key).First(&content).Error
	if err == gorm.ErrRecordNotFound {
		content = models.SiteContent{Key: key, Value: input.Value}
		if err := database.DB.Create(&content).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal simpan konten"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal baca konten"})
		return
	} else {
		content.Value = input.Value
		if err := database.DB.Save(&content).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal simpan konten"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Konten berhasil diperbarui!", "key": key})
}
