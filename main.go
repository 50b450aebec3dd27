package main

import (
	"log"
	"os"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/handlers"
	"github.com/Bintangpa/Hunian-Kita-sub000/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("File .env tidak ditemukan, pakai environment bawaan")
	}

	database.ConnectDatabase()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Foto listing diserve statis dari disk
	r.Static("/uploads", "./uploads")

	// Public Routes (browsing gak butuh login)
	r.POST("/login", handlers.Login)
	r.POST("/register", handlers.Register) // Daftar jadi mitra
	r.POST("/setup-owner", handlers.RegisterOwner)

	r.GET("/properties", handlers.ListProperties)
	r.GET("/properties/featured", handlers.GetFeaturedProperties)
	r.GET("/properties/:id", handlers.GetProperty)

	r.GET("/content", handlers.GetAllSiteContent)
	r.GET("/content/:key", handlers.GetSiteContent)

	// Protected Routes (Butuh Token JWT)
	api := r.Group("/api")
	api.Use(middleware.JwtAuthMiddleware())
	{
		// Akun
		api.GET("/me", handlers.GetProfile)
		api.PUT("/me", handlers.UpdateProfile)
		api.GET("/users/:id/tokens", handlers.GetTokenBalance)
		api.GET("/tokens/history", handlers.GetTokenHistory)

		// Fitur Mitra (upload & boost dipotong token)
		mitra := api.Group("/")
		mitra.Use(middleware.RequireMitra())
		{
			mitra.POST("/properties", handlers.CreateProperty)
			mitra.PUT("/properties/:id", handlers.UpdateProperty)
			mitra.DELETE("/properties/:id", handlers.DeleteProperty)
			mitra.POST("/properties/:id/boost", handlers.BoostProperty)
			mitra.POST("/properties/:id/images", handlers.UploadPropertyImage)
			mitra.POST("/properties/describe", handlers.SuggestDescription)
			mitra.GET("/my/properties", handlers.GetMyProperties)
		}

		// Fitur Super Admin
		// Aksesnya nanti: POST /api/admin/add-tokens dst
		admin := api.Group("/admin")
		{
			admin.POST("/add-tokens", handlers.AddTokens)
			admin.GET("/token-settings", handlers.GetTokenSettings)
			admin.PUT("/token-settings", handlers.UpdateTokenSettings)

			admin.GET("/users", handlers.GetAllUsers)
			admin.POST("/users", handlers.CreateUser)
			admin.DELETE("/users/:id", handlers.DeleteUser)
			admin.GET("/users/:id/stats", handlers.GetUserStats)
			admin.PUT("/users/:id", handlers.UpdateUser)

			admin.PATCH("/properties/:id/feature", handlers.FeatureProperty)
			admin.PUT("/content/:key", handlers.UpdateSiteContent)

			admin.GET("/export/tokens", handlers.ExportTokenLedger)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
