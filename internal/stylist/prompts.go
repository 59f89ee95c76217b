package stylist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erazemk/omara/internal/model"
)

const (
	promptAnalyzeItem = "Analyze this clothing item and describe it. Provide a concise, one-word name for the item type."
	promptSkinTone    = "Analyze the skin tone of the person in this image. Suggest a flattering color palette of 5 colors. For each color, provide its name and hex code."
)

// itemSummary is the part of an item the model sees.
type itemSummary struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Style string `json:"style"`
}

func summarize(items []model.ClothingItem, withName bool) []itemSummary {
	out := make([]itemSummary, 0, len(items))
	for _, it := range items {
		s := itemSummary{Type: it.Type, Color: it.Color, Style: it.Style}
		if withName {
			s.Name = it.Name
		}
		out = append(out, s)
	}
	return out
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func outfitPrompt(available []model.ClothingItem, profile model.UserProfile, occasion string) string {
	return fmt.Sprintf(`You are a fashion stylist. Based on the user's profile and available wardrobe, create an outfit for a '%s' occasion.
User Profile: %s
Available Wardrobe: %s

Suggest one top, one bottom, and optionally shoes or an accessory. The outfit should be stylish and coherent.
Provide your response in JSON format.`,
		occasion, mustJSON(profile), mustJSON(summarize(available, true)))
}

func trendsPrompt(region string) string {
	return fmt.Sprintf("What are the top 5 current fashion trends for this season in %s? Provide a concise summary.", region)
}

func shoppingPrompt(description string, wardrobe []model.ClothingItem, profile model.UserProfile) string {
	return fmt.Sprintf(`A user is thinking about buying: %q.
Based on their existing wardrobe and style profile, is this a good purchase?
How would it pair with items they already own? Suggest 2-3 outfit combinations.
User Profile: %s
Existing Wardrobe: %s`,
		description, mustJSON(profile), mustJSON(summarize(wardrobe, false)))
}

func tryOnPrompt(req TryOnRequest) string {
	var wear []string
	if req.Upper != nil {
		wear = append(wear, "wear the upper body clothing, replacing their current top")
	}
	if req.Lower != nil {
		wear = append(wear, "wear the lower body clothing, replacing their current bottoms")
	}
	if req.Accessory != nil {
		wear = append(wear, "wear the accessory")
	}
	return fmt.Sprintf("Edit the first image of the person to make them %s. Maintain the original background and person's pose.",
		strings.Join(wear, " and "))
}

// decodeAnalysis parses an item analysis; the name falls back to the type.
func decodeAnalysis(text string) (ItemAnalysis, error) {
	var a ItemAnalysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return ItemAnalysis{}, fmt.Errorf("decoding item analysis: %w", err)
	}
	if a.Type == "" {
		return ItemAnalysis{}, fmt.Errorf("item analysis has no type")
	}
	if a.Name == "" {
		a.Name = a.Type
	}
	return a, nil
}

func decodeSkinTone(text string) (SkinToneAnalysis, error) {
	var s SkinToneAnalysis
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return SkinToneAnalysis{}, fmt.Errorf("decoding skin tone analysis: %w", err)
	}
	for i := range s.ColorPalette {
		s.ColorPalette[i].Hex = strings.ToUpper(s.ColorPalette[i].Hex)
	}
	return s, nil
}

func decodeOutfit(text string) (OutfitSuggestion, error) {
	var o OutfitSuggestion
	if err := json.Unmarshal([]byte(text), &o); err != nil {
		return OutfitSuggestion{}, fmt.Errorf("decoding outfit: %w", err)
	}
	if len(o.Outfit) == 0 {
		return OutfitSuggestion{}, fmt.Errorf("outfit is empty")
	}
	return o, nil
}
