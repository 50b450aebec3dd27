package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/Bintangpa/Hunian-Kita-sub000/tokengate"
	"github.com/Bintangpa/Hunian-Kita-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Helper: Ambil UserID dari Token
func getUserID(c *gin.Context) uint {
	id, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return id.(uint)
}

// Helper: parse kolom facilities (JSON string) jadi array beneran
func parseFacilities(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

// Helper: bentuk response listing + facilities yang sudah diparse
func propertyJSON(p models.Property) gin.H {
	return gin.H{
		"id":               p.ID,
		"owner_user_id":    p.OwnerUserID,
		"title":            p.Title,
		"description":      p.Description,
		"type":             p.Type,
		"price":            p.Price,
		"price_unit":       p.PriceUnit,
		"city":             p.City,
		"address":          p.Address,
		"facilities":       parseFacilities(p.Facilities),
		"status":           p.Status,
		"is_boosted":       p.IsBoosted,
		"boost_expires_at": p.BoostExpiresAt,
		"is_featured":      p.IsFeatured,
		"images":           p.Images,
		"created_at":       p.CreatedAt,
	}
}

// Helper: boost yang sudah lewat masa berlakunya dimatikan saat dibaca
// (tidak ada background worker, jadi dibersihkan lazy di read path)
func expireStaleBoosts() {
	database.DB.Model(&models.Property{}).
		Where("is_boosted = ? AND boost_expires_at < ?", true, time.Now()).
		Updates(map[string]interface{}{"is_boosted": false})
}

var validPropertyTypes = map[string]bool{"kost": true, "guesthouse": true, "villa": true}
var validPriceUnits = map[string]bool{"bulan": true, "malam": true, "tahun": true}
var validStatuses = map[string]bool{"available": true, "pending": true, "sold": true}

// 1. GET ALL PROPERTIES (PUBLIK, PAGINATION + FILTER)
// GET /properties?type=kost&city=Malang&search=dekat+kampus&page=1&limit=10
func ListProperties(c *gin.Context) {
	expireStaleBoosts()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 { page = 1 }
	if limit < 1 { limit = 10 }
	if limit > 100 { limit = 100 }

	offset := (page - 1) * limit

	query := database.DB.Model(&models.Property{})

	if tipe := c.Query("type"); tipe != "" {
		query = query.Where("type = ?", tipe)
	}

	if city := c.Query("city"); city != "" {
		query = query.Where("city LIKE ?", "%"+city+"%")
	}

	if search := c.Query("search"); search != "" {
		search = "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR address LIKE ?", search, search, search)
	}

	// Default cuma tampilkan yang available, kecuali diminta eksplisit
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", "available")
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	// Boosted paling atas, lalu featured, sisanya terbaru duluan
	query.Preload("Images").
		Order("is_boosted desc, is_featured desc, created_at desc").
		Limit(limit).Offset(offset).
		Find(&properties)

	data := make([]gin.H, 0, len(properties))
	for _, p := range properties {
		data = append(data, propertyJSON(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"current_page": page,
			"limit":        limit,
			"total_data":   total,
			"total_pages":  math.Ceil(float64(total) / float64(limit)),
		},
	})
}

// 2. GET FEATURED (buat section "Pilihan Kami" di landing page)
func GetFeaturedProperties(c *gin.Context) {
	expireStaleBoosts()

	var properties []models.Property
	database.DB.Preload("Images").
		Where("is_featured = ? AND status = ?", true, "available").
		Order("created_at desc").
		Limit(8).
		Find(&properties)

	data := make([]gin.H, 0, len(properties))
	for _, p := range properties {
		data = append(data, propertyJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// 3. GET DETAIL (PUBLIK) + link WhatsApp pemilik
func GetProperty(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	if err := database.DB.Preload("Images").Preload("Owner").First(&property, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing tidak ditemukan"})
		return
	}

	resp := propertyJSON(property)
	resp["whatsapp_link"] = buildWhatsappLink(property.Owner.Whatsapp, property.Title)
	resp["owner"] = gin.H{
		"id":       property.Owner.ID,
		"username": property.Owner.Username,
	}

	c.JSON(http.StatusOK, resp)
}

// Helper: bikin deep-link wa.me dari nomor pemilik.
// Nomor lokal 08xx dinormalisasi ke format internasional 628xx.
func buildWhatsappLink(number, title string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}

	text := fmt.Sprintf("Halo, saya tertarik dengan \"%s\" yang ada di HunianKita. Apakah masih tersedia?", title)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text))
}

// Struct input upload listing (dipakai create & update)
type PropertyInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" binding:"required"`
	Price       int      `json:"price" binding:"required"`
	PriceUnit   string   `json:"price_unit"`
	City        string   `json:"city" binding:"required"`
	Address     string   `json:"address"`
	Facilities  []string `json:"facilities"`
	Status      string   `json:"status"`
}

// 4. CREATE PROPERTY (MITRA, BERBAYAR TOKEN)
// Alurnya: Authorize (cek saldo) -> insert listing + Settle (potong saldo)
// dalam SATU transaksi DB. Kalau potongannya gagal, listing ikut batal.
func CreateProperty(c *gin.Context) {
	userID := getUserID(c)

	var input PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	if !validPropertyTypes[input.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipe harus: kost / guesthouse / villa"})
		return
	}
	if input.PriceUnit == "" {
		input.PriceUnit = "bulan"
	}
	if !validPriceUnits[input.PriceUnit] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Satuan harga harus: bulan / malam / tahun"})
		return
	}

	// 1. Cek saldo dulu (read-only)
	gate := tokengate.New(database.DB)
	decision, err := gate.Authorize(userID, tokengate.ActionUpload)
	if err != nil {
		if errors.Is(err, tokengate.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Upload listing khusus akun mitra"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal cek saldo token"})
		return
	}
	if !decision.Approved {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "Token tidak cukup untuk pasang listing",
			"cost":      decision.Cost,
			"shortfall": decision.Shortfall,
		})
		return
	}

	facilitiesJSON, _ := json.Marshal(input.Facilities)
	property := models.Property{
		OwnerUserID: userID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		City:        input.City,
		Address:     input.Address,
		Facilities:  string(facilitiesJSON),
		Status:      "available",
	}

	// 2. Insert + potong token, sekali jalan
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return err
		}
		return gate.Settle(tx, userID, tokengate.ActionUpload, decision.Cost, &property.ID)
	})

	if err != nil {
		if errors.Is(err, tokengate.ErrConcurrentModification) {
			c.JSON(http.StatusConflict, gin.H{"error": "Saldo token berubah, silakan coba lagi"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan listing"})
		return
	}

	// Kirim saldo terbaru biar frontend bisa update tampilan
	balance, _ := gate.Balance(userID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Listing berhasil dipasang!",
		"data":          propertyJSON(property),
		"tokens_used":   decision.Cost,
		"token_balance": balance,
	})
}

// 5. UPDATE PROPERTY (pemilik atau admin)
func UpdateProperty(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	var property models.Property
	if err := database.DB.First(&property, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing tidak ditemukan"})
		return
	}

	if property.OwnerUserID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ini bukan listing milikmu"})
		return
	}

	var input PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	if !validPropertyTypes[input.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipe harus: kost / guesthouse / villa"})
		return
	}
	if input.Status != "" && !validStatuses[input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status harus: available / pending / sold"})
		return
	}

	facilitiesJSON, _ := json.Marshal(input.Facilities)
	property.Title = input.Title
	property.Description = input.Description
	property.Type = input.Type
	property.Price = input.Price
	if input.PriceUnit != "" {
		property.PriceUnit = input.PriceUnit
	}
	property.City = input.City
	property.Address = input.Address
	property.Facilities = string(facilitiesJSON)
	if input.Status != "" {
		property.Status = input.Status
	}

	if err := database.DB.Save(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal update listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing berhasil diperbarui!", "data": propertyJSON(property)})
}

// 6. DELETE PROPERTY (pemilik atau admin, foto ikut terhapus)
func DeleteProperty(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	var property models.Property
	if err := database.DB.Preload("Images").First(&property, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing tidak ditemukan"})
		return
	}

	if property.OwnerUserID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ini bukan listing milikmu"})
		return
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal hapus listing"})
		return
	}

	// File fisik dihapus terakhir, di luar transaksi DB
	for _, img := range property.Images {
		os.Remove(img.Path)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing dihapus"})
}

// 7. BOOST PROPERTY (MITRA, BERBAYAR TOKEN)
// Boost naik ke urutan teratas hasil pencarian selama 7 hari
func BoostProperty(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	var property models.Property
	if err := database.DB.First(&property, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing tidak ditemukan"})
		return
	}

	if property.OwnerUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ini bukan listing milikmu"})
		return
	}

	gate := tokengate.New(database.DB)
	decision, err := gate.Authorize(userID, tokengate.ActionBoost)
	if err != nil {
		if errors.Is(err, tokengate.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Boost khusus akun mitra"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal cek saldo token"})
		return
	}
	if !decision.Approved {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "Token tidak cukup untuk boost",
			"cost":      decision.Cost,
			"shortfall": decision.Shortfall,
		})
		return
	}

	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&property).Updates(map[string]interface{}{
			"is_boosted":       true,
			"boost_expires_at": expiresAt,
		}).Error; err != nil {
			return err
		}
		return gate.Settle(tx, userID, tokengate.ActionBoost, decision.Cost, &property.ID)
	})

	if err != nil {
		if errors.Is(err, tokengate.ErrConcurrentModification) {
			c.JSON(http.StatusConflict, gin.H{"error": "Saldo token berubah, silakan coba lagi"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal boost listing"})
		return
	}

	balance, _ := gate.Balance(userID)
	c.JSON(http.StatusOK, gin.H{
		"message":          "Listing berhasil di-boost selama 7 hari! 🚀",
		"boost_expires_at": expiresAt,
		"tokens_used":      decision.Cost,
		"token_balance":    balance,
	})
}

// 8. MY PROPERTIES (dashboard mitra)
func GetMyProperties(c *gin.Context) {
	userID := getUserID(c)
	expireStaleBoosts()

	var properties []models.Property
	database.DB.Preload("Images").
		Where("owner_user_id = ?", userID).
		Order("created_at desc").
		Find(&properties)

	data := make([]gin.H, 0, len(properties))
	for _, p := range properties {
		data = append(data, propertyJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// 9. SUGGEST DESCRIPTION (AI bantu mitra nulis deskripsi iklan)
func SuggestDescription(c *gin.Context) {
	var input struct {
		Title      string   `json:"title" binding:"required"`
		Type       string   `json:"type" binding:"required"`
		City       string   `json:"city" binding:"required"`
		Facilities []string `json:"facilities"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	description, err := utils.GenerateListingDescription(c.Request.Context(), input.Title, input.Type, input.City, input.Facilities)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI lagi gak bisa dihubungi, tulis manual dulu ya"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}
