package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/stylist"
	"github.com/erazemk/omara/internal/wardrobe"
)

// DefaultOccasion is used when an outfit request names none.
const DefaultOccasion = "casual"

// OutfitsHandler handles outfit suggestion and the worn commit.
type OutfitsHandler struct {
	Wardrobe *wardrobe.Manager
	Profile  *store.Cell[model.UserProfile]
	Stylist  stylist.Stylist
}

type suggestRequest struct {
	Occasion string `json:"occasion"`
}

type suggestResponse struct {
	Outfit        map[string]string    `json:"outfit"`
	Justification string               `json:"justification"`
	Items         []model.ClothingItem `json:"items"`
}

type wornRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// Suggest handles POST /api/outfits.
func (h *OutfitsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	occasion := strings.TrimSpace(req.Occasion)
	if occasion == "" {
		occasion = DefaultOccasion
	}

	available, err := wardrobe.OutfitCandidates(h.Wardrobe.Items())
	if err != nil {
		writeOutfitError(w, err)
		return
	}

	suggestion, err := h.Stylist.SuggestOutfit(r.Context(), available, h.Profile.Get(), occasion)
	if err != nil {
		writeOutfitError(w, err)
		return
	}

	items := wardrobe.ResolveOutfit(available, suggestion.Outfit)
	if items == nil {
		items = []model.ClothingItem{}
	}
	jsonResponse(w, http.StatusOK, suggestResponse{
		Outfit:        suggestion.Outfit,
		Justification: suggestion.Justification,
		Items:         items,
	})
}

// Worn handles POST /api/outfits/worn.
func (h *OutfitsHandler) Worn(w http.ResponseWriter, r *http.Request) {
	var req wornRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worn, err := h.Wardrobe.CommitWorn(r.Context(), req.ItemIDs)
	if err != nil {
		writeWardrobeError(w, err)
		return
	}
	if worn == nil {
		worn = []model.ClothingItem{}
	}
	jsonResponse(w, http.StatusOK, worn)
}

func writeOutfitError(w http.ResponseWriter, err error) {
	if errors.Is(err, wardrobe.ErrNotEnoughItems) {
		jsonError(w, http.StatusUnprocessableEntity, "not enough available items, add more items to your wardrobe")
		return
	}
	slog.Error("suggesting outfit", "error", err)
	jsonError(w, http.StatusBadGateway, "failed to generate an outfit, please try again")
}
