// Package stylist is the boundary to the generative-AI service that
// describes garments, picks outfits, composes try-on images and writes
// fashion advice.
package stylist

import (
	"context"
	"errors"

	"github.com/erazemk/omara/internal/model"
)

// Errors returned by stylists.
var (
	ErrNoGarments = errors.New("try-on needs at least one garment image")
	ErrNoImage    = errors.New("could not generate try-on image")
)

// Image is an encoded picture.
type Image struct {
	Data []byte
	MIME string
}

// ItemAnalysis describes a photographed garment.
type ItemAnalysis struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Color   string `json:"color"`
	Pattern string `json:"pattern"`
	Style   string `json:"style"`
}

// SkinToneAnalysis is a skin tone description and a flattering palette.
type SkinToneAnalysis struct {
	SkinTone     string            `json:"skin_tone"`
	ColorPalette []model.ColorInfo `json:"color_palette"`
}

// OutfitSuggestion maps outfit roles (top, bottom, shoes, accessory) to item
// names from the wardrobe.
type OutfitSuggestion struct {
	Outfit        map[string]string `json:"outfit"`
	Justification string            `json:"justification"`
}

// TryOnRequest is a photo of a person and the garments to dress them in.
type TryOnRequest struct {
	Person    Image
	Upper     *Image
	Lower     *Image
	Accessory *Image
}

// Garments returns the number of garment images in the request.
func (r TryOnRequest) Garments() int {
	n := 0
	for _, g := range []*Image{r.Upper, r.Lower, r.Accessory} {
		if g != nil && len(g.Data) > 0 {
			n++
		}
	}
	return n
}

// Stylist is implemented by generative-AI backends.
type Stylist interface {
	AnalyzeItem(ctx context.Context, img Image) (ItemAnalysis, error)
	AnalyzeSkinTone(ctx context.Context, img Image) (SkinToneAnalysis, error)
	// SuggestOutfit picks an outfit from available items. Callers check
	// wardrobe.OutfitCandidates first.
	SuggestOutfit(ctx context.Context, available []model.ClothingItem, profile model.UserProfile, occasion string) (OutfitSuggestion, error)
	TryOn(ctx context.Context, req TryOnRequest) (Image, error)
	FashionTrends(ctx context.Context, region string) (string, error)
	ShoppingAdvice(ctx context.Context, description string, wardrobe []model.ClothingItem, profile model.UserProfile) (string, error)
}
