package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/gin-gonic/gin"
)

// UPLOAD FOTO LISTING
// POST /api/properties/:id/images (multipart, field "file", maks 5MB)
func UploadPropertyImage(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	// 1. Pastikan listing ada dan milik user (atau admin)
	var property models.Property
	if err := database.DB.First(&property, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing tidak ditemukan"})
		return
	}
	if property.OwnerUserID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ini bukan listing milikmu"})
		return
	}

	// 2. Ambil File dari Form Upload
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File diperlukan"})
		return
	}
	defer file.Close()

	// Validasi Ukuran File (Maks 5MB)
	if header.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maksimal ukuran file 5MB"})
		return
	}

	// Validasi ekstensi biar gak ada yang iseng upload .exe
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format foto harus jpg/jpeg/png/webp"})
		return
	}

	// 3. SIMPAN FILE KE SERVER (Local Storage)
	uploadDir := "./uploads"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.Mkdir(uploadDir, 0755)
	}

	// Generate nama file unik: propertyID_timestamp_namaasli
	filename := fmt.Sprintf("%d_%d_%s", property.ID, time.Now().Unix(), filepath.Base(header.Filename))
	savePath := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(header, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan file gambar"})
		return
	}

	// 4. Catat di database
	image := models.PropertyImage{
		PropertyID: property.ID,
		Path:       savePath,
	}
	if err := database.DB.Create(&image).Error; err != nil {
		os.Remove(savePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan data foto"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Foto berhasil diupload!", "data": image})
}
