package enhance

import (
	"context"
	"fmt"
	"strings"

	"doctorsmile/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEnhancer calls the Gemini image model to generate the "after" preview.
// Its output may vary between calls; callers needing determinism use the local
// fallback instead.
type GeminiEnhancer struct {
	model *genai.GenerativeModel
}

func NewGeminiEnhancer(apiKey string) *GeminiEnhancer {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-2.0-flash-exp")
	return &GeminiEnhancer{model: model}
}

func (g *GeminiEnhancer) Enhance(ctx context.Context, photo []byte, mimeType string, opts Options) (*models.ImagePair, error) {
	if len(photo) == 0 {
		return nil, models.NewValidationError("photo")
	}

	level := opts.Level
	if level <= 0 {
		level = DefaultLevel
	}

	prompt := fmt.Sprintf(
		"Whiten and straighten the teeth in this smile photo. Target shade: %s. Style: %s. Strength: %d of 10. Return only the edited image, keeping everything outside the mouth untouched.",
		valueOr(opts.TeethColor, "natural white"),
		valueOr(opts.Style, "natural"),
		level,
	)

	resp, err := g.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(imageSubtype(mimeType), photo),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && strings.HasPrefix(blob.MIMEType, "image/") {
			return &models.ImagePair{
				Before: DataURI(photo, mimeType),
				After:  DataURI(blob.Data, blob.MIMEType),
			}, nil
		}
	}
	return nil, fmt.Errorf("gemini returned no image part")
}

func imageSubtype(mimeType string) string {
	if sub, ok := strings.CutPrefix(mimeType, "image/"); ok && sub != "" {
		return sub
	}
	return "jpeg"
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
