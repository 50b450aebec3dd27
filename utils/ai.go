package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerateListingDescription minta Gemini bikinin draft deskripsi iklan
// untuk form upload mitra. Hasilnya cuma saran, mitra tetap bisa edit.
func GenerateListingDescription(ctx context.Context, title, propertyType, city string, facilities []string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", errors.New("GEMINI_API_KEY belum disetting di .env")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	prompt := fmt.Sprintf(
		"Buatkan deskripsi iklan properti dalam Bahasa Indonesia, maksimal 3 paragraf, "+
			"nada ramah dan menjual. Jenis: %s. Nama: %s. Kota: %s. Fasilitas: %s. "+
			"Jangan pakai format markdown, langsung teks biasa.",
		propertyType, title, city, strings.Join(facilities, ", "),
	)

	model := client.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("AI tidak memberi jawaban")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
