package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/middleware"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/Bintangpa/Hunian-Kita-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Siapkan DB sqlite sekali pakai dan pasang ke global database.DB
// (handler semuanya baca dari situ, persis seperti di production).
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("buka db test: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("ambil sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	database.DB = db
	return db
}

// Router dengan route yang sama seperti main.go
func newRouter() *gin.Engine {
	r := gin.New()

	r.POST("/login", Login)
	r.POST("/register", Register)

	r.GET("/properties", ListProperties)
	r.GET("/properties/featured", GetFeaturedProperties)
	r.GET("/properties/:id", GetProperty)
	r.GET("/content", GetAllSiteContent)
	r.GET("/content/:key", GetSiteContent)

	api := r.Group("/api")
	api.Use(middleware.JwtAuthMiddleware())
	{
		api.GET("/me", GetProfile)
		api.PUT("/me", UpdateProfile)
		api.GET("/users/:id/tokens", GetTokenBalance)
		api.GET("/tokens/history", GetTokenHistory)

		mitra := api.Group("/")
		mitra.Use(middleware.RequireMitra())
		{
			mitra.POST("/properties", CreateProperty)
			mitra.PUT("/properties/:id", UpdateProperty)
			mitra.DELETE("/properties/:id", DeleteProperty)
			mitra.POST("/properties/:id/boost", BoostProperty)
			mitra.GET("/my/properties", GetMyProperties)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/add-tokens", AddTokens)
			admin.GET("/token-settings", GetTokenSettings)
			admin.PUT("/token-settings", UpdateTokenSettings)
			admin.GET("/users", GetAllUsers)
			admin.PUT("/content/:key", UpdateSiteContent)
		}
	}

	return r
}

func seedUser(t *testing.T, db *gorm.DB, username, role string, balance int) models.User {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	user := models.User{
		Username:     username,
		Password:     string(hash),
		Role:         role,
		Whatsapp:     "081234567890",
		TokenBalance: balance,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

// Helper request JSON, balikin recorder + body yang sudah diparse
func doJSON(t *testing.T, r *gin.Engine, method, path, auth string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	parsed := map[string]interface{}{}
	if w.Body.Len() > 0 {
		json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func currentBalance(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("baca user: %v", err)
	}
	return user.TokenBalance
}
