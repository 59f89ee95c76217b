package stylist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/model"
)

func TestDecodeAnalysisNameFallsBackToType(t *testing.T) {
	a, err := decodeAnalysis(`{"type":"Jeans","color":"blue","pattern":"solid","style":"casual"}`)
	require.NoError(t, err)
	assert.Equal(t, "Jeans", a.Name)
	assert.Equal(t, "blue", a.Color)

	a, err = decodeAnalysis(`{"name":"Denim","type":"Jeans"}`)
	require.NoError(t, err)
	assert.Equal(t, "Denim", a.Name)
}

func TestDecodeAnalysisErrors(t *testing.T) {
	_, err := decodeAnalysis(`not json`)
	assert.Error(t, err)

	_, err = decodeAnalysis(`{"color":"blue"}`)
	assert.Error(t, err)
}

func TestDecodeSkinToneUppercasesHex(t *testing.T) {
	s, err := decodeSkinTone(`{"skin_tone":"Warm","color_palette":[{"name":"Coral","hex":"#ff7f50"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Warm", s.SkinTone)
	require.Len(t, s.ColorPalette, 1)
	assert.Equal(t, "#FF7F50", s.ColorPalette[0].Hex)
}

func TestDecodeOutfit(t *testing.T) {
	o, err := decodeOutfit(`{"outfit":{"top":"Shirt","bottom":"Jeans"},"justification":"Classic."}`)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", o.Outfit["top"])
	assert.Equal(t, "Classic.", o.Justification)

	_, err = decodeOutfit(`{"outfit":{},"justification":"nothing"}`)
	assert.Error(t, err)
}

func TestOutfitPromptListsItems(t *testing.T) {
	items := []model.ClothingItem{
		{ID: "1", Name: "Shirt", Type: "Shirt", Color: "white", Style: "formal"},
		{ID: "2", Name: "Jeans", Type: "Jeans", Color: "blue", Style: "casual"},
	}
	p := outfitPrompt(items, model.DefaultProfile(), "work")

	assert.Contains(t, p, "'work' occasion")
	assert.Contains(t, p, `"name":"Shirt"`)
	assert.Contains(t, p, `"region":"US"`)
	assert.NotContains(t, p, `"id"`)
}

func TestShoppingPromptOmitsNames(t *testing.T) {
	items := []model.ClothingItem{{ID: "1", Name: "Secret", Type: "Coat", Color: "black", Style: "chic"}}
	p := shoppingPrompt("a red scarf", items, model.DefaultProfile())

	assert.Contains(t, p, `"a red scarf"`)
	assert.Contains(t, p, `"type":"Coat"`)
	assert.NotContains(t, p, "Secret")
}

func TestTryOnPrompt(t *testing.T) {
	img := &Image{Data: []byte{1}, MIME: "image/jpeg"}

	p := tryOnPrompt(TryOnRequest{Upper: img, Accessory: img})
	assert.Contains(t, p, "replacing their current top and wear the accessory")
	assert.False(t, strings.Contains(p, "bottoms"))
}

func TestTryOnRequestGarments(t *testing.T) {
	img := &Image{Data: []byte{1}, MIME: "image/jpeg"}

	assert.Zero(t, TryOnRequest{}.Garments())
	assert.Zero(t, TryOnRequest{Upper: &Image{}}.Garments())
	assert.Equal(t, 2, TryOnRequest{Upper: img, Lower: img}.Garments())
}

func TestTrendsPrompt(t *testing.T) {
	assert.Contains(t, trendsPrompt("Japan"), "this season in Japan")
}
