package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Bintangpa/Hunian-Kita-sub000/database"
	"github.com/Bintangpa/Hunian-Kita-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ADMIN: EXPORT BUKU BESAR TOKEN KE EXCEL
// GET /api/admin/export/tokens?month=11&year=2025
func ExportTokenLedger(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
		return
	}

	// 1. Ambil Filter Bulan & Tahun (Opsional, default = semua)
	monthStr := c.Query("month")
	yearStr := c.Query("year")

	var entries []models.TokenTransaction
	query := database.DB.Preload("User").Order("created_at desc")

	if monthStr != "" && yearStr != "" {
		month, _ := strconv.Atoi(monthStr)
		year, _ := strconv.Atoi(yearStr)

		startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		endDate := startDate.AddDate(0, 1, 0) // Awal bulan depan

		query = query.Where("created_at >= ? AND created_at < ?", startDate, endDate)
	}

	query.Find(&entries)

	// 2. Buat File Excel
	f := excelize.NewFile()
	sheetName := "Buku Besar Token"
	f.SetSheetName("Sheet1", sheetName)

	// 3. Bikin Header (Baris 1)
	headers := []string{"No", "Tanggal", "Jam", "Username", "Jenis", "Delta", "Listing ID", "Catatan"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Style Header (Bold + Warna)
	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#0D9488"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "H1", styleHeader)

	// 4. Isi Data (Mulai Baris 2)
	row := 2
	for i, entry := range entries {
		dateStr := entry.CreatedAt.Format("02-01-2006")
		timeStr := entry.CreatedAt.Format("15:04")

		propertyID := ""
		if entry.PropertyID != nil {
			propertyID = strconv.Itoa(int(*entry.PropertyID))
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), dateStr)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), timeStr)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), entry.User.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), entry.Reason)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), entry.Delta)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), propertyID)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), entry.Note)

		// Hijau top-up, merah pemakaian
		if entry.Delta > 0 {
			styleIn, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#10B981"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), styleIn)
		} else {
			styleOut, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#EF4444"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), styleOut)
		}

		row++
	}

	// Auto Width (Biar kolom lebar sesuai isi)
	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "C", 15)
	f.SetColWidth(sheetName, "D", "E", 18)
	f.SetColWidth(sheetName, "F", "G", 12)
	f.SetColWidth(sheetName, "H", "H", 30)

	// 5. Kirim File ke Browser
	fileName := fmt.Sprintf("BukuBesar_Token_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal generate excel"})
	}
}
