package stylist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/wardrobe"
)

// Gemini models.
const (
	TextModel  = "gemini-2.5-flash"
	ImageModel = "gemini-2.5-flash-image"
)

// Gemini is a Stylist backed by the Gemini API.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGemini creates a Gemini stylist authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, textModel: TextModel, imageModel: ImageModel}, nil
}

var (
	stringSchema = func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	itemSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type":    stringSchema("e.g., 'T-Shirt', 'Jeans', 'Sneakers'"),
			"color":   stringSchema("The dominant color of the item."),
			"pattern": stringSchema("e.g., 'solid', 'striped', 'floral'"),
			"style":   stringSchema("e.g., 'casual', 'formal', 'sporty'"),
		},
		Required: []string{"type", "color", "pattern", "style"},
	}

	skinToneSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"skin_tone": stringSchema("A description of the skin tone, e.g., 'Fair with cool undertones'."),
			"color_palette": {
				Type:        genai.TypeArray,
				Description: "An array of 5 color objects (name and hex code) that would flatter this skin tone.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": stringSchema("The name of the color."),
						"hex":  stringSchema("The hex code for the color, e.g., '#RRGGBB'."),
					},
					Required: []string{"name", "hex"},
				},
			},
		},
		Required: []string{"skin_tone", "color_palette"},
	}

	outfitSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"outfit": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"top":       stringSchema("The name of the top item from the wardrobe."),
					"bottom":    stringSchema("The name of the bottom item from the wardrobe."),
					"shoes":     stringSchema("The name of the shoes item from the wardrobe (optional)."),
					"accessory": stringSchema("The name of the accessory item from the wardrobe (optional)."),
				},
				Required: []string{"top", "bottom"},
			},
			"justification": stringSchema("A brief explanation of why this outfit works."),
		},
		Required: []string{"outfit", "justification"},
	}
)

func jsonConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

func imageContent(img Image, prompt string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, img.MIME),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
}

func (g *Gemini) generateText(ctx context.Context, op, modelName string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: empty response", op)
	}
	return text, nil
}

// AnalyzeItem describes a photographed garment.
func (g *Gemini) AnalyzeItem(ctx context.Context, img Image) (ItemAnalysis, error) {
	text, err := g.generateText(ctx, "analyzing item", g.textModel, imageContent(img, promptAnalyzeItem), jsonConfig(itemSchema))
	if err != nil {
		return ItemAnalysis{}, err
	}
	return decodeAnalysis(text)
}

// AnalyzeSkinTone describes the skin tone of the person in a photo.
func (g *Gemini) AnalyzeSkinTone(ctx context.Context, img Image) (SkinToneAnalysis, error) {
	text, err := g.generateText(ctx, "analyzing skin tone", g.textModel, imageContent(img, promptSkinTone), jsonConfig(skinToneSchema))
	if err != nil {
		return SkinToneAnalysis{}, err
	}
	return decodeSkinTone(text)
}

// SuggestOutfit picks an outfit for the occasion from available items.
func (g *Gemini) SuggestOutfit(ctx context.Context, available []model.ClothingItem, profile model.UserProfile, occasion string) (OutfitSuggestion, error) {
	available, err := wardrobe.OutfitCandidates(available)
	if err != nil {
		return OutfitSuggestion{}, err
	}
	text, err := g.generateText(ctx, "suggesting outfit", g.textModel,
		genai.Text(outfitPrompt(available, profile, occasion)), jsonConfig(outfitSchema))
	if err != nil {
		return OutfitSuggestion{}, err
	}
	return decodeOutfit(text)
}

// TryOn dresses the person in the given garments.
func (g *Gemini) TryOn(ctx context.Context, req TryOnRequest) (Image, error) {
	if req.Garments() == 0 {
		return Image{}, ErrNoGarments
	}

	parts := []*genai.Part{genai.NewPartFromBytes(req.Person.Data, req.Person.MIME)}
	for _, garment := range []*Image{req.Upper, req.Lower, req.Accessory} {
		if garment != nil {
			parts = append(parts, genai.NewPartFromBytes(garment.Data, garment.MIME))
		}
	}
	parts = append(parts, genai.NewPartFromText(tryOnPrompt(req)))

	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE"}},
	)
	if err != nil {
		return Image{}, fmt.Errorf("generating try-on image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return Image{Data: part.InlineData.Data, MIME: part.InlineData.MIMEType}, nil
			}
		}
	}
	slog.Warn("try-on response carried no image", "candidates", len(resp.Candidates))
	return Image{}, ErrNoImage
}

// FashionTrends summarizes current trends in a region using web search.
func (g *Gemini) FashionTrends(ctx context.Context, region string) (string, error) {
	return g.generateText(ctx, "getting fashion trends", g.textModel, genai.Text(trendsPrompt(region)),
		&genai.GenerateContentConfig{Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}})
}

// ShoppingAdvice judges a prospective purchase against the wardrobe.
func (g *Gemini) ShoppingAdvice(ctx context.Context, description string, items []model.ClothingItem, profile model.UserProfile) (string, error) {
	return g.generateText(ctx, "getting shopping advice", g.textModel,
		genai.Text(shoppingPrompt(description, items, profile)), nil)
}
